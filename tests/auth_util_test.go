package tests

import (
	"fmt"
	"net/http"
	"testing"
	"time"
)

// The suite runs against a server configured with
// modules.auth.debug_reveal_otp: true, so /auth/login returns the emailed
// code in debug_otp and the verify step can be driven end to end.

const testPassword = "Secret123!"

type loginData struct {
	Message  string `json:"message"`
	DebugOTP string `json:"debug_otp"`
}

type verifyData struct {
	TokenType   string `json:"token_type"`
	AccessToken string `json:"access_token"`
	UserID      int64  `json:"user_id"`
	FullName    string `json:"name"`
}

type registerData struct {
	Message  string `json:"message"`
	UserID   int64  `json:"user_id"`
	DebugOTP string `json:"debug_otp"`
}

func uniqueEmail(prefix string) string {
	return fmt.Sprintf("%s-%d@example.com", prefix, time.Now().UnixNano())
}

func registerUser(t *testing.T, email string) registerData {
	t.Helper()

	payload := map[string]string{
		"name":                  "Test User",
		"email":                 email,
		"password":              testPassword,
		"password_confirmation": testPassword,
	}

	status, body := doJSON(t, http.MethodPost, "/auth/register", payload, "")
	if status != http.StatusCreated {
		errEnv := decodeError(t, body)
		t.Fatalf("register failed: status=%d message=%q", status, errEnv.Message)
	}

	var data registerData
	decodeBody(t, body, &data)

	return data
}

func login(t *testing.T, email, password string) loginData {
	t.Helper()

	payload := map[string]string{
		"email":    email,
		"password": password,
	}

	status, body := doJSON(t, http.MethodPost, "/auth/login", payload, "")
	if status != http.StatusOK {
		errEnv := decodeError(t, body)
		t.Fatalf("login failed: status=%d message=%q", status, errEnv.Message)
	}

	var data loginData
	decodeBody(t, body, &data)
	if data.DebugOTP == "" {
		t.Fatal("debug_otp missing; the server must run with modules.auth.debug_reveal_otp: true")
	}

	return data
}

func verify(t *testing.T, email, code string) verifyData {
	t.Helper()

	payload := map[string]string{
		"email":       email,
		"code":        code,
		"device_name": "real-tests",
	}

	status, body := doJSON(t, http.MethodPost, "/auth/verify", payload, "")
	if status != http.StatusOK {
		errEnv := decodeError(t, body)
		t.Fatalf("verify failed: status=%d message=%q", status, errEnv.Message)
	}

	var data verifyData
	decodeBody(t, body, &data)

	return data
}

// authenticate registers a fresh account and walks it through the full
// login flow, returning the email and a live access token.
func authenticate(t *testing.T, prefix string) (string, string) {
	t.Helper()

	email := uniqueEmail(prefix)
	registerUser(t, email)
	resp := login(t, email, testPassword)
	data := verify(t, email, resp.DebugOTP)
	if data.AccessToken == "" {
		t.Fatal("missing access token")
	}

	return email, data.AccessToken
}
