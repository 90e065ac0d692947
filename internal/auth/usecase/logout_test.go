package usecase

import (
	"errors"
	"net/http"
	"testing"

	"github.com/aurora-api/aurora/internal/pkg/session"
)

func TestLogoutWithoutAuth(t *testing.T) {
	f := newFixture(t)

	err := f.uc.Logout(t.Context())
	wantStatus(t, err, http.StatusUnauthorized)
}

func TestLogoutRevokesToken(t *testing.T) {
	f := newFixture(t)

	ctx := session.SetAuth(t.Context(), session.Auth{UserID: 42, TokenID: 7, Device: "iphone-15"})
	if err := f.uc.Logout(ctx); err != nil {
		t.Fatalf("logout: %v", err)
	}

	if len(f.session.revoked) != 1 || f.session.revoked[0] != 7 {
		t.Fatalf("revoked = %v, want [7]", f.session.revoked)
	}
}

func TestLogoutRevokeFailure(t *testing.T) {
	f := newFixture(t)
	f.session.revokErr = errors.New("db down")

	ctx := session.SetAuth(t.Context(), session.Auth{UserID: 42, TokenID: 7})
	err := f.uc.Logout(ctx)
	wantStatus(t, err, http.StatusInternalServerError)
}
