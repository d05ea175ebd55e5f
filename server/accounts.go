package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/existflow/upcycle/internal/model"
	"github.com/lib/pq"
)

var (
	// ErrAccountExists is returned when a username or email is taken
	ErrAccountExists = errors.New("username or email already exists")
	// ErrAccountNotFound is returned for unknown users
	ErrAccountNotFound = errors.New("account not found")
	// ErrSessionNotFound is returned for unknown tokens
	ErrSessionNotFound = errors.New("session not found")
)

// Accounts stores users and their sessions
type Accounts interface {
	CreateUser(ctx context.Context, username, email, passwordHash string) (string, error)
	UserByUsername(ctx context.Context, username string) (model.User, error)
	UserByID(ctx context.Context, id string) (model.User, error)
	CreateSession(ctx context.Context, session model.Session) error
	SessionByToken(ctx context.Context, token string) (model.Session, error)
	DeleteSession(ctx context.Context, token string) error
}

// PostgresAccounts keeps accounts in the users and sessions tables
type PostgresAccounts struct {
	db *sql.DB
}

// NewPostgresAccounts wraps an open database
func NewPostgresAccounts(db *sql.DB) *PostgresAccounts {
	return &PostgresAccounts{db: db}
}

// CreateUser inserts a user and returns its id
func (a *PostgresAccounts) CreateUser(ctx context.Context, username, email, passwordHash string) (string, error) {
	var userID string
	err := a.db.QueryRowContext(ctx, `
		INSERT INTO users (username, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id`,
		username, email, passwordHash,
	).Scan(&userID)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return "", ErrAccountExists
	}
	if err != nil {
		return "", fmt.Errorf("failed to create user: %w", err)
	}
	return userID, nil
}

// UserByUsername finds a user by login name
func (a *PostgresAccounts) UserByUsername(ctx context.Context, username string) (model.User, error) {
	return a.user(ctx, `
		SELECT id, username, email, password_hash, created_at FROM users WHERE username = $1`, username)
}

// UserByID finds a user by id
func (a *PostgresAccounts) UserByID(ctx context.Context, id string) (model.User, error) {
	return a.user(ctx, `
		SELECT id, username, email, password_hash, created_at FROM users WHERE id = $1`, id)
}

func (a *PostgresAccounts) user(ctx context.Context, query string, arg string) (model.User, error) {
	var u model.User
	err := a.db.QueryRowContext(ctx, query, arg).
		Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, ErrAccountNotFound
	}
	if err != nil {
		return model.User{}, fmt.Errorf("failed to load user: %w", err)
	}
	return u, nil
}

// CreateSession stores a session token
func (a *PostgresAccounts) CreateSession(ctx context.Context, session model.Session) error {
	_, err := a.db.ExecContext(ctx, `
		INSERT INTO sessions (user_id, token, expires_at)
		VALUES ($1, $2, $3)`,
		session.UserID, session.Token, session.ExpiresAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

// SessionByToken looks up a session
func (a *PostgresAccounts) SessionByToken(ctx context.Context, token string) (model.Session, error) {
	s := model.Session{Token: token}
	err := a.db.QueryRowContext(ctx, `
		SELECT user_id, expires_at FROM sessions WHERE token = $1`, token,
	).Scan(&s.UserID, &s.ExpiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Session{}, ErrSessionNotFound
	}
	if err != nil {
		return model.Session{}, fmt.Errorf("failed to load session: %w", err)
	}
	return s, nil
}

// DeleteSession revokes a token
func (a *PostgresAccounts) DeleteSession(ctx context.Context, token string) error {
	if _, err := a.db.ExecContext(ctx, `DELETE FROM sessions WHERE token = $1`, token); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
