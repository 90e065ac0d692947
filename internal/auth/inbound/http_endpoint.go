package inbound

import (
	"github.com/aurora-api/aurora/internal/auth/usecase"
	"github.com/aurora-api/aurora/internal/pkg/router"
)

// HTTPEndpoint exposes HTTP handlers for the authentication workflows.
type HTTPEndpoint struct {
	uc uc
}

// Login validates credentials and emails a one time code.
// @Summary Start login
// @Description Validates the email and password, then sends a 6-digit code to the account email.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login payload"
// @Success 200 {object} LoginResponse "Code sent"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 403 {object} router.errorResponse "Account inactive"
// @Failure 422 {object} router.errorResponse "Validation error or invalid credentials"
// @Failure 429 {object} router.errorResponse "Too many active codes"
// @Router /auth/login [post]
func (h *HTTPEndpoint) Login(r *router.Request) (any, error) {
	var req LoginRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.Login(r.Context(), usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return nil, err
	}

	return LoginResponse{
		Message:   "We have emailed you a one-time code.",
		DebugCode: resp.DebugCode,
	}, nil
}

// Verify exchanges a one time code for an access token.
// @Summary Complete login
// @Description Verifies the emailed code and returns a bearer access token.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body VerifyRequest true "Verify payload"
// @Success 200 {object} VerifyResponse "Authentication result"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 422 {object} router.errorResponse "Validation error or invalid code"
// @Router /auth/verify [post]
func (h *HTTPEndpoint) Verify(r *router.Request) (any, error) {
	var req VerifyRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.Verify(r.Context(), usecase.VerifyInput{
		Email:      req.Email,
		Code:       req.Code,
		DeviceName: req.DeviceName,
	})
	if err != nil {
		return nil, err
	}

	return VerifyResponse{
		TokenType:   resp.TokenType,
		AccessToken: resp.AccessToken,
		UserID:      resp.UserID,
		FullName:    resp.FullName,
	}, nil
}

// Register creates a new account.
// @Summary Register account
// @Description Creates an active account and emails a first login code.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration payload"
// @Success 201 {object} RegisterResponse "Account created"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 422 {object} router.errorResponse "Validation error or email taken"
// @Router /auth/register [post]
func (h *HTTPEndpoint) Register(r *router.Request) (any, error) {
	var req RegisterRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.Register(r.Context(), usecase.RegisterInput{
		Email:                req.Email,
		Password:             req.Password,
		PasswordConfirmation: req.PasswordConfirmation,
		FullName:             req.Name,
	})
	if err != nil {
		return nil, err
	}

	return RegisterResponse{
		Message:   "Registration successful. We have emailed you a one-time code.",
		UserID:    resp.UserID,
		DebugCode: resp.DebugCode,
	}, nil
}

// Logout revokes the current access token.
// @Summary Logout
// @Description Revokes the token used to authenticate this request.
// @Tags Auth
// @Produce json
// @Success 204 "Token revoked"
// @Failure 401 {object} router.errorResponse "Authentication required"
// @Router /auth/logout [post]
func (h *HTTPEndpoint) Logout(r *router.Request) (any, error) {
	if err := h.uc.Logout(r.Context()); err != nil {
		return nil, err
	}

	return nil, nil
}
