package tests

import (
	"net/http"
	"testing"
)

func TestRegister(t *testing.T) {

	// Arrange
	payload := map[string]string{
		"name":                  "Test User",
		"email":                 uniqueEmail("real-register"),
		"password":              testPassword,
		"password_confirmation": testPassword,
	}

	// Act
	status, body := doJSON(t, http.MethodPost, "/auth/register", payload, "")

	// Assert
	if status != http.StatusCreated {
		errEnv := decodeError(t, body)
		t.Fatalf("register failed: status=%d message=%q", status, errEnv.Message)
	}
	var data registerData
	decodeBody(t, body, &data)
	if data.UserID == 0 {
		t.Fatal("expected a user id")
	}
	if data.DebugOTP == "" {
		t.Fatal("debug_otp missing; the server must run with modules.auth.debug_reveal_otp: true")
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {

	// Arrange
	email := uniqueEmail("real-register-dup")
	registerUser(t, email)

	payload := map[string]string{
		"name":                  "Test User",
		"email":                 email,
		"password":              testPassword,
		"password_confirmation": testPassword,
	}

	// Act
	status, body := doJSON(t, http.MethodPost, "/auth/register", payload, "")

	// Assert
	if status != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for duplicate email, got %d", status)
	}
	errEnv := decodeError(t, body)
	if errEnv.Errors["email"] == "" {
		t.Fatalf("expected field error for email, got %+v", errEnv)
	}
}

func TestRegisterValidation(t *testing.T) {

	tests := []struct {
		name    string
		payload map[string]string
	}{
		{"bad email", map[string]string{"name": "Test User", "email": "nope", "password": testPassword, "password_confirmation": testPassword}},
		{"short password", map[string]string{"name": "Test User", "email": uniqueEmail("real-reg-val"), "password": "x", "password_confirmation": "x"}},
		{"confirmation mismatch", map[string]string{"name": "Test User", "email": uniqueEmail("real-reg-val"), "password": testPassword, "password_confirmation": "Other123!"}},
		{"missing name", map[string]string{"email": uniqueEmail("real-reg-val"), "password": testPassword, "password_confirmation": testPassword}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			status, _ := doJSON(t, http.MethodPost, "/auth/register", tc.payload, "")
			if status != http.StatusUnprocessableEntity {
				t.Fatalf("expected 422, got %d", status)
			}
		})
	}
}
