package repository

import (
	"context"
	"errors"
	"fmt"

	"kodask_bank/internal/model"

	"github.com/jackc/pgx/v5"
)

// UserRepository defines operations for user data
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
}

type userRepository struct {
	db DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db DB) UserRepository {
	return &userRepository{db: db}
}

// Create inserts a new user into the database. The uid, opening balance and
// creation time come back from the database defaults.
func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	sql := `INSERT INTO users (username, email, password_hash, phone, role)
            VALUES ($1, $2, $3, $4, $5) RETURNING uid, balance::text, created_at`
	err := r.db.QueryRow(ctx, sql, user.Username, user.Email, user.PasswordHash, user.Phone, user.Role).
		Scan(&user.UID, &user.Balance, &user.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// FindByUsername retrieves a user by their username
func (r *userRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	user := &model.User{}
	sql := `SELECT uid, username, email, password_hash, balance::text, phone, role, created_at
            FROM users WHERE username = $1`
	err := r.db.QueryRow(ctx, sql, username).Scan(
		&user.UID, &user.Username, &user.Email, &user.PasswordHash,
		&user.Balance, &user.Phone, &user.Role, &user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // User not found is not an error for this method's contract, service layer handles it
		}
		return nil, fmt.Errorf("failed to find user by username: %w", err)
	}
	return user, nil
}

// FindByEmail retrieves a user by their email address
func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	user := &model.User{}
	sql := `SELECT uid, username, email, password_hash, balance::text, phone, role, created_at
            FROM users WHERE email = $1`
	err := r.db.QueryRow(ctx, sql, email).Scan(
		&user.UID, &user.Username, &user.Email, &user.PasswordHash,
		&user.Balance, &user.Phone, &user.Role, &user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // User not found
		}
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}
	return user, nil
}
