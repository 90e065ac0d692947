package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/aurora-api/aurora/internal/pkg/clock"
	"github.com/aurora-api/aurora/internal/pkg/hash"
	"github.com/aurora-api/aurora/internal/pkg/uid"
)

const secretBytes = 20

// Commander defines the pgx operations required by the token store.
type Commander interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Config defines the inputs for building a PGX-backed Session.
type Config struct {
	// DB executes queries, usually a pgxpool.Pool.
	DB Commander
	// Hash produces and verifies the stored token hash. Use a keyed hash;
	// tokens are high-entropy so a slow hash is unnecessary.
	Hash hash.Hash
	// NumberID generates token row IDs.
	NumberID uid.NumberID
	// Clock provides the current time source.
	Clock clock.Clocker
}

// PGX is a Session implementation storing tokens in Postgres.
type PGX struct {
	db    Commander
	hash  hash.Hash
	numID uid.NumberID
	clock clock.Clocker
}

// NewPGX constructs a PGX session store.
func NewPGX(cfg Config) *PGX {
	return &PGX{
		db:    cfg.DB,
		hash:  cfg.Hash,
		numID: cfg.NumberID,
		clock: cfg.Clock,
	}
}

// Mint creates a token row and returns the wire token. The plaintext secret
// exists only in the returned string.
func (p *PGX) Mint(ctx context.Context, userID int64, device string) (string, error) {
	raw := make([]byte, secretBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	secret := hex.EncodeToString(raw)

	hashed, err := p.hash.Hash(secret)
	if err != nil {
		return "", err
	}

	id := p.numID.Generate()
	now := p.clock.Now()

	query := `
		INSERT INTO auth_access_tokens (id, user_id, name, token_hash, created_at)
		VALUES ($1, $2, $3, $4, $5)`

	if _, err := p.db.Exec(ctx, query, id, userID, device, string(hashed), now); err != nil {
		return "", err
	}

	return encodeToken(id, secret), nil
}

// Verify looks up the token row and compares the secret hash. Any failure
// mode collapses to ErrInvalidToken so callers cannot probe for token IDs.
func (p *PGX) Verify(ctx context.Context, token string) (Auth, error) {
	id, secret, err := decodeToken(token)
	if err != nil {
		return Auth{}, err
	}

	query := `SELECT user_id, name, token_hash FROM auth_access_tokens WHERE id = $1`

	var userID int64
	var name, tokenHash string
	if err := p.db.QueryRow(ctx, query, id).Scan(&userID, &name, &tokenHash); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Auth{}, ErrInvalidToken
		}
		return Auth{}, err
	}

	if !p.hash.Verify(tokenHash, secret) {
		return Auth{}, ErrInvalidToken
	}

	touch := `UPDATE auth_access_tokens SET last_used_at = $2 WHERE id = $1`
	if _, err := p.db.Exec(ctx, touch, id, p.clock.Now()); err != nil {
		slog.WarnContext(ctx, "failed to touch access token", "token_id", id, "error", err)
	}

	return Auth{UserID: userID, TokenID: id, Device: name}, nil
}

// Revoke deletes the token row. Revoking an already-deleted token is a no-op.
func (p *PGX) Revoke(ctx context.Context, tokenID int64) error {
	_, err := p.db.Exec(ctx, `DELETE FROM auth_access_tokens WHERE id = $1`, tokenID)
	return err
}
