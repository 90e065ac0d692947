package db

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/aurora-api/aurora/internal/auth/entity"
)

const countRecentOTPs = `
SELECT COUNT(*)
FROM auth_email_otps
WHERE user_id = $1
  AND used_at IS NULL
  AND created_at >= $2
`

// CountRecentOTPs counts unconsumed codes created since the cutoff, across
// all purposes, for the issuance throttle.
func (s *DB) CountRecentOTPs(ctx context.Context, userID int64, since time.Time) (_ int64, err error) {
	ctx, span := s.startSpan(ctx, "CountRecentOTPs")
	defer func() { s.endSpan(span, err) }()

	var count int64
	if err = s.conn.QueryRow(ctx, countRecentOTPs, userID, since).Scan(&count); err != nil {
		return 0, s.mapError(err)
	}

	return count, nil
}

const createOTP = `
INSERT INTO auth_email_otps (id, user_id, code_hash, purpose, expires_at)
VALUES ($1, $2, $3, $4, $5)
`

func (s *DB) CreateOTP(ctx context.Context, in entity.NewOTP) (err error) {
	ctx, span := s.startSpan(ctx, "CreateOTP")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx, createOTP, in.ID, in.UserID, in.CodeHash, in.Purpose.String(), in.ExpiresAt)
	err = s.mapError(err)
	return err
}

const getOTPCandidates = `
SELECT id, user_id, code_hash, purpose, expires_at, used_at, created_at, updated_at
FROM auth_email_otps
WHERE user_id = $1
  AND purpose = $2
  AND used_at IS NULL
  AND expires_at >= $3
ORDER BY id DESC
LIMIT $4
`

// GetOTPCandidates returns the newest usable records first.
func (s *DB) GetOTPCandidates(ctx context.Context, userID int64, purpose entity.OTPPurpose, now time.Time, limit int32) (_ []entity.OTPRecord, err error) {
	ctx, span := s.startSpan(ctx, "GetOTPCandidates")
	defer func() { s.endSpan(span, err) }()

	rows, err := s.conn.Query(ctx, getOTPCandidates, userID, purpose.String(), now, limit)
	if err != nil {
		return nil, s.mapError(err)
	}
	defer rows.Close()

	var records []entity.OTPRecord
	for rows.Next() {
		var rec entity.OTPRecord
		if err = rows.Scan(
			&rec.ID,
			&rec.UserID,
			&rec.CodeHash,
			&rec.Purpose,
			&rec.ExpiresAt,
			&rec.UsedAt,
			&rec.CreatedAt,
			&rec.UpdatedAt,
		); err != nil {
			return nil, s.mapError(err)
		}
		records = append(records, rec)
	}
	if err = rows.Err(); err != nil {
		return nil, s.mapError(err)
	}

	return records, nil
}

const deleteUnconsumedOTPs = `
DELETE FROM auth_email_otps
WHERE user_id = $1
  AND used_at IS NULL
`

// DeleteUnconsumedOTPs removes every pending code for the user, across all
// purposes. Registration calls this before issuing a fresh code.
func (s *DB) DeleteUnconsumedOTPs(ctx context.Context, userID int64) (_ int64, err error) {
	ctx, span := s.startSpan(ctx, "DeleteUnconsumedOTPs")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx, deleteUnconsumedOTPs, userID)
	if err != nil {
		return 0, s.mapError(err)
	}

	return tag.RowsAffected(), nil
}

const consumeOTP = `
UPDATE auth_email_otps
SET used_at = $2, updated_at = $2
WHERE id = $1
  AND used_at IS NULL
`

const deleteSiblingOTPs = `
DELETE FROM auth_email_otps
WHERE user_id = $1
  AND purpose = $2
  AND used_at IS NULL
  AND id <> $3
`

// ConsumeOTP marks one record used and deletes the user's other unconsumed
// codes for the purpose in the same transaction. It returns false when the
// record was already consumed by a concurrent request; in that case nothing
// is deleted.
func (s *DB) ConsumeOTP(ctx context.Context, in entity.ConsumeOTP) (_ bool, err error) {
	ctx, span := s.startSpan(ctx, "ConsumeOTP")
	defer func() { s.endSpan(span, err) }()

	tx, err := s.conn.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return false, err
	}
	defer func() {
		if rErr := tx.Rollback(ctx); rErr != nil && !errors.Is(rErr, pgx.ErrTxClosed) {
			slog.ErrorContext(ctx, "failed to rolback", "error", rErr)
		}
	}()

	tag, err := tx.Exec(ctx, consumeOTP, in.RecordID, in.UsedAt)
	if err != nil {
		return false, s.mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return false, nil
	}

	if _, err = tx.Exec(ctx, deleteSiblingOTPs, in.UserID, in.Purpose.String(), in.RecordID); err != nil {
		return false, s.mapError(err)
	}

	if err = tx.Commit(ctx); err != nil {
		return false, s.mapError(err)
	}

	return true, nil
}
