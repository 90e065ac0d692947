package session

import (
	"context"
	"errors"
	"strconv"
	"strings"
)

var (
	// ErrInvalidToken is returned when a token is malformed, unknown, or revoked.
	ErrInvalidToken = errors.New("invalid token")
)

// Auth describes the authenticated caller attached to a request context.
type Auth struct {
	// UserID is the authenticated user identifier.
	UserID int64
	// TokenID identifies the access token row used on this request.
	TokenID int64
	// Device is the label the token was minted under.
	Device string
}

// Session defines the operations for opaque bearer tokens.
type Session interface {
	// Mint creates a token for the user under the given device label and
	// returns its wire form.
	Mint(ctx context.Context, userID int64, device string) (string, error)
	// Verify resolves a wire token to the caller it authenticates.
	Verify(ctx context.Context, token string) (Auth, error)
	// Revoke invalidates the token with the given ID.
	Revoke(ctx context.Context, tokenID int64) error
}

type authContextKey struct{}

// SetAuth stores the authenticated caller in the context.
func SetAuth(ctx context.Context, auth Auth) context.Context {
	return context.WithValue(ctx, authContextKey{}, auth)
}

// GetAuth returns the authenticated caller stored in the context, if any.
func GetAuth(ctx context.Context) *Auth {
	auth, ok := ctx.Value(authContextKey{}).(Auth)
	if !ok {
		return nil
	}

	return &auth
}

// encodeToken builds the wire form "<id>|<secret>".
func encodeToken(id int64, secret string) string {
	return strconv.FormatInt(id, 10) + "|" + secret
}

// decodeToken splits a wire token back into its ID and secret.
func decodeToken(token string) (int64, string, error) {
	idStr, secret, ok := strings.Cut(token, "|")
	if !ok || secret == "" {
		return 0, "", ErrInvalidToken
	}

	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		return 0, "", ErrInvalidToken
	}

	return id, secret, nil
}
