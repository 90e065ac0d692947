package usecase

import (
	"bytes"
	"context"
	"log/slog"
	"text/template"
	"time"

	"github.com/aurora-api/aurora/internal/pkg/mail"
)

type ConsumeOTPIssuedInput struct {
	UserID    int64  `validate:"required,gt=0"`
	Email     string `validate:"required,email"`
	FullName  string `validate:"required"`
	Code      string `validate:"required,otpcode"`
	Purpose   string `validate:"required"`
	ExpiresAt string `validate:"required"`
}

var otpEmailTemplate = template.Must(template.New("otp_email").Parse(`Hi {{.FullName}},

Your one-time login code is:

    {{.Code}}

It expires at {{.ExpiresAt}}. If you did not request this code, you can
safely ignore this email.

{{.AppName}}
`))

// ConsumeOTPIssued emails the one time code to the account address.
// Malformed payloads are dropped, delivery failures are returned so the
// broker can redeliver.
func (s *Usecase) ConsumeOTPIssued(ctx context.Context, in ConsumeOTPIssuedInput) error {
	ctx, span := s.startSpan(ctx, "ConsumeOTPIssued")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		slog.ErrorContext(ctx, "Validation failed", "error", err)
		return nil
	}

	expiresAt := in.ExpiresAt
	if ts, err := time.Parse(time.RFC3339, in.ExpiresAt); err == nil {
		expiresAt = ts.Format("15:04 MST, Jan 2 2006")
	}

	var body bytes.Buffer
	if err := otpEmailTemplate.Execute(&body, map[string]string{
		"FullName":  in.FullName,
		"Code":      in.Code,
		"ExpiresAt": expiresAt,
		"AppName":   s.cfg.GetString("app.name"),
	}); err != nil {
		slog.ErrorContext(ctx, "failed to render otp email", "user_id", in.UserID, "error", err)
		return nil
	}

	if err := s.repoMail.Send(ctx, mail.Message{
		To:       []string{in.Email},
		Subject:  "Your login code",
		TextBody: body.String(),
	}); err != nil {
		slog.ErrorContext(ctx, "failed to send otp email", "user_id", in.UserID, "error", err)
		return err
	}

	return nil
}
