package usecase

import (
	"context"
	"crypto/rand"
	"errors"
	"log/slog"
	"math/big"
	"strings"

	"github.com/aurora-api/aurora/internal/auth/entity"
	"github.com/aurora-api/aurora/internal/pkg/goerror"
)

// maxOTPCandidates bounds the per-verify hash comparisons. It matches the
// issuance throttle, so every live code is always inside the scan.
const maxOTPCandidates = 5

type VerifyInput struct {
	Email      string `validate:"required,email"`
	Code       string `validate:"required,otpcode"`
	DeviceName string `validate:"omitempty,max=100"`
}

type VerifyOutput struct {
	TokenType   string
	AccessToken string
	UserID      int64
	FullName    string
}

// Verify exchanges a one time code for a bearer token. The submitted code is
// compared against the newest unconsumed, unexpired records for the user; the
// first match is consumed and every other unconsumed login code is deleted in
// the same transaction. All failure modes share one message so the endpoint
// leaks nothing about which step rejected.
func (s *Usecase) Verify(ctx context.Context, in VerifyInput) (*VerifyOutput, error) {
	ctx, span := s.startSpan(ctx, "Verify")
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

	now := s.clock.Now()
	candidates, err := s.repoDB.GetOTPCandidates(ctx, user.ID, entity.OTPPurposeLogin, now, maxOTPCandidates)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get otp candidates", "user_id", user.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	var matched *entity.OTPRecord
	for i := range candidates {
		// The query already filters on expiry, but the usability rule
		// (unconsumed and not past expires_at) is re-checked here so a
		// stale read can never redeem a dead code.
		if candidates[i].UsedAt != nil || candidates[i].ExpiresAt.Before(now) {
			continue
		}
		if s.password.Verify(candidates[i].CodeHash, in.Code) {
			matched = &candidates[i]
			break
		}
	}
	if matched == nil {
		slog.WarnContext(ctx, "otp code not match any candidate", "user_id", user.ID, "candidates", len(candidates))
		return nil, invalidCodeError()
	}

	consumed, err := s.repoDB.ConsumeOTP(ctx, entity.ConsumeOTP{
		RecordID: matched.ID,
		UserID:   user.ID,
		Purpose:  entity.OTPPurposeLogin,
		UsedAt:   now,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo consume otp", "user_id", user.ID, "otp_id", matched.ID, "error", err)
		return nil, goerror.NewServer(err)
	}
	if !consumed {
		// Another request won the race for this record.
		slog.WarnContext(ctx, "otp already consumed", "user_id", user.ID, "otp_id", matched.ID)
		return nil, invalidCodeError()
	}

	device := strings.TrimSpace(in.DeviceName)
	if device == "" {
		device = randomDeviceName()
	}

	token, err := s.session.Mint(ctx, user.ID, device)
	if err != nil {
		slog.ErrorContext(ctx, "failed to mint session token", "user_id", user.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &VerifyOutput{
		TokenType:   "Bearer",
		AccessToken: token,
		UserID:      user.ID,
		FullName:    user.FullName,
	}, nil
}

func invalidCodeError() error {
	return goerror.NewInvalidInput(nil, "code", "The provided code is invalid or has expired.")
}

const deviceNameAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// randomDeviceName labels sessions minted without a client supplied device
// name, e.g. "api-x7k20q".
func randomDeviceName() string {
	b := make([]byte, 6)
	for i := range b {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(deviceNameAlphabet))))
		if err != nil {
			return "api-client"
		}
		b[i] = deviceNameAlphabet[n.Int64()]
	}

	return "api-" + string(b)
}
