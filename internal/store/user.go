// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"

	"agora/internal/models"
)

const userColumns = `id, account, nickname, password_hash, role, totp_secret, totp_enabled, created_time`

// ErrAccountTaken is returned by Create when the account name already exists.
var ErrAccountTaken = errors.New("account already taken")

// uniqueViolation is the PostgreSQL SQLSTATE for a unique constraint failure.
const uniqueViolation = "23505"

// UserStore handles all user-related database operations.
type UserStore struct {
	db *sqlx.DB
}

// NewUserStore creates a new UserStore with the given connection pool.
func NewUserStore(db *sqlx.DB) *UserStore {
	return &UserStore{db: db}
}

// find runs a single-user select. Returns nil if no row matched.
func (s *UserStore) find(ctx context.Context, b sq.SelectBuilder) (*models.User, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build user query: %w", err)
	}
	u := &models.User{}
	err = s.db.GetContext(ctx, u, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

// FindByAccount retrieves a user by login name. Returns nil if not found.
func (s *UserStore) FindByAccount(ctx context.Context, account string) (*models.User, error) {
	u, err := s.find(ctx, psql.Select(userColumns).From("users").Where(sq.Eq{"account": account}))
	if err != nil {
		return nil, fmt.Errorf("find user by account: %w", err)
	}
	return u, nil
}

// FindByID retrieves a user by their UUID. Returns nil if not found.
func (s *UserStore) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	u, err := s.find(ctx, psql.Select(userColumns).From("users").Where(sq.Eq{"id": id}))
	if err != nil {
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	return u, nil
}

// List returns every user ordered by account name.
func (s *UserStore) List(ctx context.Context) ([]models.User, error) {
	query, args, err := psql.Select(userColumns).From("users").OrderBy("account ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build user list: %w", err)
	}
	users := []models.User{}
	if err := s.db.SelectContext(ctx, &users, query, args...); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// Create inserts a new user with a bcrypt-hashed password.
func (s *UserStore) Create(ctx context.Context, n models.UserNew) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(n.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	query, args, err := psql.Insert("users").
		Columns("account", "nickname", "password_hash", "role").
		Values(n.Account, n.Nickname, string(hash), n.Role).
		Suffix("RETURNING " + userColumns).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build user insert: %w", err)
	}

	u := &models.User{}
	if err := s.db.GetContext(ctx, u, query, args...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, ErrAccountTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

// exec runs an update statement against users.
func (s *UserStore) exec(ctx context.Context, b sq.UpdateBuilder) error {
	query, args, err := b.ToSql()
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, query, args...)
	return err
}

// SetTOTPSecret saves the TOTP secret for a user (during 2FA setup).
func (s *UserStore) SetTOTPSecret(ctx context.Context, userID uuid.UUID, secret string) error {
	err := s.exec(ctx, psql.Update("users").Set("totp_secret", secret).Where(sq.Eq{"id": userID}))
	if err != nil {
		return fmt.Errorf("set totp secret: %w", err)
	}
	return nil
}

// EnableTOTP marks 2FA as active for a user (after successful code verification).
func (s *UserStore) EnableTOTP(ctx context.Context, userID uuid.UUID) error {
	err := s.exec(ctx, psql.Update("users").Set("totp_enabled", true).Where(sq.Eq{"id": userID}))
	if err != nil {
		return fmt.Errorf("enable totp: %w", err)
	}
	return nil
}

// ResetTOTP clears the TOTP secret and disables 2FA for a user.
// The user will be forced to set up 2FA again on their next login.
func (s *UserStore) ResetTOTP(ctx context.Context, userID uuid.UUID) error {
	err := s.exec(ctx, psql.Update("users").
		Set("totp_secret", nil).
		Set("totp_enabled", false).
		Where(sq.Eq{"id": userID}))
	if err != nil {
		return fmt.Errorf("reset totp: %w", err)
	}
	return nil
}

// CheckPassword verifies a plaintext password against the user's stored hash.
func (s *UserStore) CheckPassword(user *models.User, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) == nil
}
