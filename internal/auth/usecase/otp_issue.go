package usecase

import (
	"context"
	"log/slog"

	"github.com/aurora-api/aurora/internal/auth/entity"
	"github.com/aurora-api/aurora/internal/pkg/goerror"
)

// defaultMaxActiveOTPs caps unconsumed codes per user inside the throttle
// window when no limit is configured.
const defaultMaxActiveOTPs = 5

// issueOTP runs the shared issuance path: throttle, activity gate, generate,
// hash, persist, announce.
//
// The throttle is evaluated before the activity gate on purpose, so a
// deactivated account cannot be used to probe the rate limit. The code is
// hashed with the same slow primitive as passwords; the plaintext is returned
// to the caller and otherwise only leaves through the published event.
func (s *Usecase) issueOTP(ctx context.Context, user *entity.User, purpose entity.OTPPurpose) (string, error) {
	now := s.clock.Now()

	window := s.cfg.GetHour("modules.auth.otp_window_hours")
	maxActive := int64(s.cfg.GetInt("modules.auth.otp_max_active"))
	if maxActive <= 0 {
		maxActive = defaultMaxActiveOTPs
	}

	recent, err := s.repoDB.CountRecentOTPs(ctx, user.ID, now.Add(-window))
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo count recent otps", "user_id", user.ID, "error", err)
		return "", goerror.NewServer(err)
	}

	if recent >= maxActive {
		slog.WarnContext(ctx, "otp issuance throttled", "user_id", user.ID, "recent", recent)
		return "", goerror.NewBusiness("Too many OTP requests. Please try again later.", goerror.CodeTooManyRequest)
	}

	if !user.IsActive {
		slog.WarnContext(ctx, "otp issuance for inactive account", "user_id", user.ID)
		return "", goerror.NewBusiness("Your account is inactive.", goerror.CodeForbidden)
	}

	code, err := s.otp.Generate()
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate otp code", "user_id", user.ID, "error", err)
		return "", goerror.NewServer(err)
	}

	codeHash, err := s.password.Hash(code)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash otp code", "user_id", user.ID, "error", err)
		return "", goerror.NewServer(err)
	}

	expiresAt := now.Add(s.cfg.GetMinute("modules.auth.otp_ttl_minutes"))
	if err := s.repoDB.CreateOTP(ctx, entity.NewOTP{
		ID:        s.uid.Generate(),
		UserID:    user.ID,
		CodeHash:  string(codeHash),
		Purpose:   purpose,
		ExpiresAt: expiresAt,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to repo create otp", "user_id", user.ID, "error", err)
		return "", goerror.NewServer(err)
	}

	// Delivery is best effort. The code is durable at this point, so a
	// broker outage must not fail the request.
	if err := s.repoMessaging.PublishOTPIssued(ctx, OTPIssuedEvent{
		UserID:    user.ID,
		Email:     user.Email,
		FullName:  user.FullName,
		Code:      code,
		Purpose:   purpose,
		ExpiresAt: expiresAt,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to publish otp issued", "user_id", user.ID, "error", err)
	}

	return code, nil
}

// revealCode returns the plaintext code when the debug reveal flag is on,
// and "" otherwise. Only ever enabled in local environments.
func (s *Usecase) revealCode(code string) string {
	if s.cfg.GetBool("modules.auth.debug_reveal_otp") {
		return code
	}

	return ""
}
