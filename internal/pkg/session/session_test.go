package session

import (
	"context"
	"errors"
	"testing"
)

func TestTokenRoundTrip(t *testing.T) {
	token := encodeToken(987654321, "deadbeef")

	id, secret, err := decodeToken(token)
	if err != nil {
		t.Fatalf("decodeToken() error = %v", err)
	}

	if id != 987654321 || secret != "deadbeef" {
		t.Errorf("decodeToken() = (%d, %q)", id, secret)
	}
}

func TestDecodeTokenRejectsMalformed(t *testing.T) {
	cases := []string{
		"",
		"no-separator",
		"|secret-only",
		"123|",
		"abc|secret",
		"-5|secret",
		"0|secret",
	}

	for _, token := range cases {
		if _, _, err := decodeToken(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("decodeToken(%q) error = %v, want ErrInvalidToken", token, err)
		}
	}
}

func TestAuthContext(t *testing.T) {
	ctx := context.Background()

	if got := GetAuth(ctx); got != nil {
		t.Errorf("GetAuth(empty) = %+v, want nil", got)
	}

	want := Auth{UserID: 7, TokenID: 11, Device: "api-abc123"}
	got := GetAuth(SetAuth(ctx, want))
	if got == nil || *got != want {
		t.Errorf("GetAuth() = %+v, want %+v", got, want)
	}
}
