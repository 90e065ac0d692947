package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aurora-api/aurora/internal/pkg/config"
	"github.com/aurora-api/aurora/internal/pkg/instrument"
	"github.com/aurora-api/aurora/internal/pkg/mail"
	"github.com/aurora-api/aurora/internal/pkg/validator"
)

type fakeMail struct {
	sent []mail.Message
	err  error
}

func (f *fakeMail) Send(_ context.Context, msg mail.Message) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

func newTestUsecase(t *testing.T, m *fakeMail) *Usecase {
	t.Helper()

	cfg, err := config.NewViperFromBytes("yaml", []byte("app:\n  name: Aurora\n"))
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	t.Cleanup(func() { cfg.Close() })

	v, err := validator.NewV10Validator()
	if err != nil {
		t.Fatalf("validator: %v", err)
	}

	return NewNotification(Dependency{
		RepoMail:   m,
		Validator:  v,
		Config:     cfg,
		Instrument: instrument.NewNoop(),
	})
}

func validInput() ConsumeOTPIssuedInput {
	return ConsumeOTPIssuedInput{
		UserID:    42,
		Email:     "jane@example.com",
		FullName:  "Jane Miller",
		Code:      "123456",
		Purpose:   "login",
		ExpiresAt: "2025-06-15T10:35:00Z",
	}
}

func TestConsumeOTPIssuedSendsEmail(t *testing.T) {
	m := &fakeMail{}
	uc := newTestUsecase(t, m)

	if err := uc.ConsumeOTPIssued(t.Context(), validInput()); err != nil {
		t.Fatalf("consume: %v", err)
	}

	if len(m.sent) != 1 {
		t.Fatalf("sent = %d, want 1", len(m.sent))
	}
	msg := m.sent[0]
	if msg.To[0] != "jane@example.com" {
		t.Fatalf("to = %v", msg.To)
	}
	if !strings.Contains(msg.TextBody, "123456") {
		t.Fatalf("body should contain the code:\n%s", msg.TextBody)
	}
	if !strings.Contains(msg.TextBody, "Jane Miller") {
		t.Fatalf("body should greet the user:\n%s", msg.TextBody)
	}
}

func TestConsumeOTPIssuedDropsInvalidPayload(t *testing.T) {
	m := &fakeMail{}
	uc := newTestUsecase(t, m)

	in := validInput()
	in.Code = "12345" // not a valid code

	if err := uc.ConsumeOTPIssued(t.Context(), in); err != nil {
		t.Fatalf("invalid payloads should be dropped, not retried: %v", err)
	}
	if len(m.sent) != 0 {
		t.Fatal("no email should be sent for an invalid payload")
	}
}

func TestConsumeOTPIssuedReturnsSendFailure(t *testing.T) {
	m := &fakeMail{err: errors.New("smtp down")}
	uc := newTestUsecase(t, m)

	if err := uc.ConsumeOTPIssued(t.Context(), validInput()); err == nil {
		t.Fatal("delivery failure must propagate for redelivery")
	}
}
