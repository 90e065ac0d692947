package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/aurora-api/aurora/internal/auth/entity"
	"github.com/aurora-api/aurora/internal/pkg/goerror"
)

type LoginInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

type LoginOutput struct {
	DebugCode string
}

// Login verifies the password and, when it matches, issues a one time code
// for the second step. Unknown emails and wrong passwords share one error so
// the endpoint cannot be used to enumerate accounts.
func (s *Usecase) Login(ctx context.Context, in LoginInput) (*LoginOutput, error) {
	ctx, span := s.startSpan(ctx, "Login")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))
	user, err := s.repoDB.GetUserByEmail(ctx, email)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "user account not found", "email", email)
		return nil, goerror.NewInvalidInput(nil, "email", "The provided credentials are incorrect.")
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get user by email", "email", email, "error", err)
		return nil, goerror.NewServer(err)
	}

	if !s.password.Verify(user.Password, in.Password) {
		slog.WarnContext(ctx, "password user account not match", "user_id", user.ID)
		return nil, goerror.NewInvalidInput(nil, "email", "The provided credentials are incorrect.")
	}

	code, err := s.issueOTP(ctx, user, entity.OTPPurposeLogin)
	if err != nil {
		return nil, err
	}

	return &LoginOutput{DebugCode: s.revealCode(code)}, nil
}
