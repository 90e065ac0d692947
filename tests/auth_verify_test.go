package tests

import (
	"net/http"
	"testing"
)

func TestVerify(t *testing.T) {

	// Arrange
	email := uniqueEmail("real-verify")
	registerUser(t, email)
	resp := login(t, email, testPassword)

	// Act
	data := verify(t, email, resp.DebugOTP)

	// Assert
	if data.TokenType != "Bearer" || data.AccessToken == "" {
		t.Fatalf("expected Bearer token, got %+v", data)
	}
	if data.UserID == 0 || data.FullName == "" {
		t.Fatalf("expected user identity in response, got %+v", data)
	}
}

func TestVerifyRegistrationCode(t *testing.T) {

	// Arrange: registration issues a code without a separate login
	email := uniqueEmail("real-verify-reg")
	reg := registerUser(t, email)

	// Act
	data := verify(t, email, reg.DebugOTP)

	// Assert
	if data.AccessToken == "" {
		t.Fatal("expected an access token from the registration code")
	}
}

func TestVerifyWrongCode(t *testing.T) {

	// Arrange
	email := uniqueEmail("real-verify-wrong")
	registerUser(t, email)
	resp := login(t, email, testPassword)

	wrong := "000000"
	if resp.DebugOTP == wrong {
		wrong = "000001"
	}

	payload := map[string]string{
		"email": email,
		"code":  wrong,
	}

	// Act
	status, body := doJSON(t, http.MethodPost, "/auth/verify", payload, "")

	// Assert
	if status != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for wrong code, got %d", status)
	}
	errEnv := decodeError(t, body)
	if errEnv.Errors["code"] == "" {
		t.Fatalf("expected field error for code, got %+v", errEnv)
	}
}

func TestVerifyCodeSingleUse(t *testing.T) {

	// Arrange
	email := uniqueEmail("real-verify-reuse")
	registerUser(t, email)
	resp := login(t, email, testPassword)
	verify(t, email, resp.DebugOTP)

	payload := map[string]string{
		"email": email,
		"code":  resp.DebugOTP,
	}

	// Act: replay the consumed code
	status, _ := doJSON(t, http.MethodPost, "/auth/verify", payload, "")

	// Assert
	if status != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 replaying a consumed code, got %d", status)
	}
}

func TestVerifyInvalidatesSiblingCodes(t *testing.T) {

	// Arrange: issue two codes, consume the second
	email := uniqueEmail("real-verify-sibling")
	registerUser(t, email)
	first := login(t, email, testPassword)
	second := login(t, email, testPassword)
	verify(t, email, second.DebugOTP)

	payload := map[string]string{
		"email": email,
		"code":  first.DebugOTP,
	}

	// Act: the first code must have been deleted alongside the consume
	status, _ := doJSON(t, http.MethodPost, "/auth/verify", payload, "")

	// Assert
	if status != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for an invalidated sibling code, got %d", status)
	}
}
