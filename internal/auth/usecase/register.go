package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/aurora-api/aurora/internal/auth/entity"
	"github.com/aurora-api/aurora/internal/pkg/goerror"
	"github.com/aurora-api/aurora/internal/pkg/idempotency"
)

type RegisterInput struct {
	Email                string `validate:"required,email"`
	Password             string `validate:"required,password"`
	PasswordConfirmation string `validate:"required,eqfield=Password"`
	FullName             string `validate:"required,min=5,max=100,alphaspace"`
}

type RegisterOutput struct {
	UserID    int64
	DebugCode string
}

// Register creates a new active account and issues a first login code.
// Concurrent submits for the same
// email are serialized through a short redis lock so only one insert reaches
// the database; the unique index on email remains the final arbiter.
func (s *Usecase) Register(ctx context.Context, in RegisterInput) (*RegisterOutput, error) {
	ctx, span := s.startSpan(ctx, "Register")
	defer span.End()

	in.Email = strings.TrimSpace(strings.ToLower(in.Email))
	in.FullName = strings.TrimSpace(in.FullName)

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	newUserID := s.uid.Generate()
	err := s.idemp.Exec(ctx, "auth:register:"+in.Email, func(ctx context.Context) error {
		_, err := s.repoDB.GetUserByEmail(ctx, in.Email)
		if err == nil {
			return goerror.ErrConflict
		}
		if !errors.Is(err, goerror.ErrNotFound) {
			slog.ErrorContext(ctx, "failed to repo get user by email", "email", in.Email, "error", err)
			return goerror.NewServer(err)
		}

		hashedPassword, err := s.password.Hash(in.Password)
		if err != nil {
			slog.ErrorContext(ctx, "failed to hash password", "error", err)
			return goerror.NewServer(err)
		}

		if err := s.repoDB.CreateUser(ctx, entity.NewUser{
			ID:       newUserID,
			Email:    in.Email,
			FullName: in.FullName,
			Password: string(hashedPassword),
			IsActive: true,
		}); err != nil {
			if errors.Is(err, goerror.ErrConflict) {
				return goerror.ErrConflict
			}
			slog.ErrorContext(ctx, "failed to repo create user", "email", in.Email, "error", err)
			return goerror.NewServer(err)
		}

		return nil
	})

	switch {
	case err == nil:
	case errors.Is(err, goerror.ErrConflict),
		errors.Is(err, idempotency.ErrAlreadyInProgress),
		errors.Is(err, idempotency.ErrAlreadyCompleted):
		return nil, goerror.NewInvalidInput(nil, "email", "The email has already been taken.")
	case errors.Is(err, idempotency.ErrAlreadyFailed):
		return nil, goerror.NewBusiness("Registration could not be completed. Please try again later.", goerror.CodeTooManyRequest)
	default:
		var gerr *goerror.Error
		if errors.As(err, &gerr) {
			return nil, err
		}
		slog.ErrorContext(ctx, "failed to register user", "email", in.Email, "error", err)
		return nil, goerror.NewServer(err)
	}

	// A fresh account has no pending codes unless an earlier attempt for
	// this email got partway through; clear them so only the new code works.
	if _, err := s.repoDB.DeleteUnconsumedOTPs(ctx, newUserID); err != nil {
		slog.ErrorContext(ctx, "failed to repo delete unconsumed otps", "user_id", newUserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	code, err := s.issueOTP(ctx, &entity.User{
		ID:       newUserID,
		Email:    in.Email,
		FullName: in.FullName,
		IsActive: true,
	}, entity.OTPPurposeLogin)
	if err != nil {
		return nil, err
	}

	return &RegisterOutput{UserID: newUserID, DebugCode: s.revealCode(code)}, nil
}
