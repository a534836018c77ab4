package repository

import (
	"context"
	"fmt"
	"time"
)

// TokenRepository records issued session tokens. Every login inserts a row
// for audit; the read path only matters when revocation checks are enabled.
type TokenRepository interface {
	Insert(ctx context.Context, token string, uid int, expiresAt time.Time) error
	Exists(ctx context.Context, token string) (bool, error)
}

type tokenRepository struct {
	db DB
}

// NewTokenRepository creates a new TokenRepository
func NewTokenRepository(db DB) TokenRepository {
	return &tokenRepository{db: db}
}

// Insert stores an issued token against its owning user
func (r *tokenRepository) Insert(ctx context.Context, token string, uid int, expiresAt time.Time) error {
	sql := `INSERT INTO user_tokens (token, uid, expires_at) VALUES ($1, $2, $3)`
	if _, err := r.db.Exec(ctx, sql, token, uid, expiresAt); err != nil {
		return fmt.Errorf("failed to insert token record: %w", err)
	}
	return nil
}

// Exists reports whether an unexpired record of the token is on file
func (r *tokenRepository) Exists(ctx context.Context, token string) (bool, error) {
	sql := `SELECT EXISTS(SELECT 1 FROM user_tokens WHERE token = $1 AND expires_at > NOW())`
	var exists bool
	if err := r.db.QueryRow(ctx, sql, token).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to look up token record: %w", err)
	}
	return exists, nil
}
