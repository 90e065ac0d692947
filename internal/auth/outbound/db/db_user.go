package db

import (
	"context"

	"github.com/aurora-api/aurora/internal/auth/entity"
)

const getUserByEmail = `
SELECT id, email, full_name, password, is_active, created_at, updated_at
FROM auth_users
WHERE email = $1
`

func (s *DB) GetUserByEmail(ctx context.Context, email string) (_ *entity.User, err error) {
	ctx, span := s.startSpan(ctx, "GetUserByEmail")
	defer func() { s.endSpan(span, err) }()

	var user entity.User
	err = s.conn.QueryRow(ctx, getUserByEmail, email).Scan(
		&user.ID,
		&user.Email,
		&user.FullName,
		&user.Password,
		&user.IsActive,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &user, nil
}

const createUser = `
INSERT INTO auth_users (id, email, full_name, password, is_active)
VALUES ($1, $2, $3, $4, $5)
`

func (s *DB) CreateUser(ctx context.Context, user entity.NewUser) (err error) {
	ctx, span := s.startSpan(ctx, "CreateUser")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx, createUser, user.ID, user.Email, user.FullName, user.Password, user.IsActive)
	err = s.mapError(err)
	return err
}
