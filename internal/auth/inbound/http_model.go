package inbound

import "net/http"

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Message string `json:"message"`
	// DebugCode is only populated when the local debug reveal flag is on.
	DebugCode string `json:"debug_otp,omitempty"`
}

type VerifyRequest struct {
	Email      string `json:"email"`
	Code       string `json:"code"`
	DeviceName string `json:"device_name"`
}

type VerifyResponse struct {
	TokenType   string `json:"token_type"`
	AccessToken string `json:"access_token"`
	UserID      int64  `json:"user_id"`
	FullName    string `json:"name"`
}

type RegisterRequest struct {
	Name                 string `json:"name"`
	Email                string `json:"email"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
}

type RegisterResponse struct {
	Message string `json:"message"`
	UserID  int64  `json:"user_id"`
	// DebugCode is only populated when the local debug reveal flag is on.
	DebugCode string `json:"debug_otp,omitempty"`
}

func (RegisterResponse) StatusCode() int {
	return http.StatusCreated
}
