package usecase

import (
	"context"
	"log/slog"

	"github.com/aurora-api/aurora/internal/pkg/goerror"
	"github.com/aurora-api/aurora/internal/pkg/session"
)

// Logout revokes the token that authenticated the request. The revoked row is
// deleted, so replaying the same token afterwards fails verification.
func (s *Usecase) Logout(ctx context.Context) error {
	ctx, span := s.startSpan(ctx, "Logout")
	defer span.End()

	auth := session.GetAuth(ctx)
	if auth == nil {
		return goerror.NewBusiness("Authentication required", goerror.CodeUnauthorized)
	}

	if err := s.session.Revoke(ctx, auth.TokenID); err != nil {
		slog.ErrorContext(ctx, "failed to revoke session token", "user_id", auth.UserID, "token_id", auth.TokenID, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}
