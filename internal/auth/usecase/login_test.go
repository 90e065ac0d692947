package usecase

import (
	"net/http"
	"testing"
	"time"
)

func TestLoginInvalidInput(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Login(t.Context(), LoginInput{Email: "not-an-email", Password: "x"})
	wantStatus(t, err, http.StatusUnprocessableEntity)
}

func TestLoginUnknownEmail(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Login(t.Context(), LoginInput{Email: "nobody@example.com", Password: "Sup3rSecret!"})
	gerr := wantStatus(t, err, http.StatusUnprocessableEntity)
	if gerr.Fields()["email"] != "The provided credentials are incorrect." {
		t.Fatalf("fields = %v", gerr.Fields())
	}
	if len(f.db.createdOTPs) != 0 {
		t.Fatal("no otp should be created for unknown email")
	}
}

func TestLoginWrongPassword(t *testing.T) {
	f := newFixture(t)
	seedUser(f.db, true)

	_, err := f.uc.Login(t.Context(), LoginInput{Email: "jane@example.com", Password: "wrong-password"})
	gerr := wantStatus(t, err, http.StatusUnprocessableEntity)
	if gerr.Fields()["email"] != "The provided credentials are incorrect." {
		t.Fatalf("fields = %v", gerr.Fields())
	}
}

func TestLoginInactiveAccount(t *testing.T) {
	f := newFixture(t)
	seedUser(f.db, false)

	_, err := f.uc.Login(t.Context(), LoginInput{Email: "jane@example.com", Password: "Sup3rSecret!"})
	wantStatus(t, err, http.StatusForbidden)
	if len(f.db.createdOTPs) != 0 {
		t.Fatal("no otp should be created for an inactive account")
	}
}

func TestLoginThrottled(t *testing.T) {
	f := newFixture(t)
	seedUser(f.db, true)
	f.db.recentCount = 5

	_, err := f.uc.Login(t.Context(), LoginInput{Email: "jane@example.com", Password: "Sup3rSecret!"})
	wantStatus(t, err, http.StatusTooManyRequests)
	if len(f.db.createdOTPs) != 0 {
		t.Fatal("no otp should be created while throttled")
	}
}

func TestLoginThrottleCheckedBeforeActivity(t *testing.T) {
	f := newFixture(t)
	seedUser(f.db, false)
	f.db.recentCount = 5

	_, err := f.uc.Login(t.Context(), LoginInput{Email: "jane@example.com", Password: "Sup3rSecret!"})
	wantStatus(t, err, http.StatusTooManyRequests)
}

func TestLoginIssuesOTP(t *testing.T) {
	f := newFixture(t)
	user := seedUser(f.db, true)

	out, err := f.uc.Login(t.Context(), LoginInput{Email: "Jane@Example.com", Password: "Sup3rSecret!"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if out.DebugCode != "" {
		t.Fatalf("debug code should be hidden by default, got %q", out.DebugCode)
	}

	if len(f.db.createdOTPs) != 1 {
		t.Fatalf("created otps = %d, want 1", len(f.db.createdOTPs))
	}
	rec := f.db.createdOTPs[0]
	if rec.UserID != user.ID {
		t.Fatalf("otp user = %d, want %d", rec.UserID, user.ID)
	}
	if rec.CodeHash != "h:123456" {
		t.Fatalf("otp code hash = %q", rec.CodeHash)
	}
	if got, want := rec.ExpiresAt, testNow.Add(5*time.Minute); !got.Equal(want) {
		t.Fatalf("otp expiry = %v, want %v", got, want)
	}

	if len(f.mq.published) != 1 {
		t.Fatalf("published events = %d, want 1", len(f.mq.published))
	}
	evt := f.mq.published[0]
	if evt.Code != "123456" || evt.Email != user.Email || evt.FullName != user.FullName {
		t.Fatalf("event = %+v", evt)
	}
}

func TestLoginDebugReveal(t *testing.T) {
	f := newFixture(t, func(dep *Dependency) {
		cfg, err := newTestConfig(`
modules:
  auth:
    otp_ttl_minutes: 5
    otp_window_hours: 1
    debug_reveal_otp: true
`)
		if err != nil {
			t.Fatalf("config: %v", err)
		}
		dep.Config = cfg
	})
	seedUser(f.db, true)

	out, err := f.uc.Login(t.Context(), LoginInput{Email: "jane@example.com", Password: "Sup3rSecret!"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if out.DebugCode != "123456" {
		t.Fatalf("debug code = %q, want 123456", out.DebugCode)
	}
}

func TestLoginPublishFailureIsSwallowed(t *testing.T) {
	f := newFixture(t)
	seedUser(f.db, true)
	f.mq.err = errBroker

	out, err := f.uc.Login(t.Context(), LoginInput{Email: "jane@example.com", Password: "Sup3rSecret!"})
	if err != nil {
		t.Fatalf("login should survive a broker outage: %v", err)
	}
	if out == nil {
		t.Fatal("output should not be nil")
	}
	if len(f.db.createdOTPs) != 1 {
		t.Fatal("otp must still be persisted")
	}
}
