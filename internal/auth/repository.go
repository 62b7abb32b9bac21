package auth

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jaakkopy/todo-backend/internal/shared"
)

// Repository defines persistence operations for user accounts.
type Repository interface {
	CreateUser(ctx context.Context, email, passwordHash string) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	UpdatePassword(ctx context.Context, email, passwordHash string) error
}

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

const uniqueViolation = "23505"

// CreateUser inserts a new user row. A duplicate email surfaces as an
// InvalidArgument conflict.
func (r *PGRepository) CreateUser(ctx context.Context, email, passwordHash string) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO users (email, password) VALUES ($1, $2)`,
		email, passwordHash)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return shared.InvalidArgument("email already registered")
		}
		return err
	}
	return nil
}

// FindByEmail fetches a user by email.
func (r *PGRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	var user User
	err := r.pool.QueryRow(ctx,
		`SELECT id, email, password, created, updated FROM users WHERE email = $1`,
		email).Scan(&user.ID, &user.Email, &user.PasswordHash, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.NotFound("no such user")
		}
		return nil, err
	}
	return &user, nil
}

// UpdatePassword overwrites the stored hash and bumps the updated stamp.
func (r *PGRepository) UpdatePassword(ctx context.Context, email, passwordHash string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE users SET password = $1, updated = CURRENT_DATE WHERE email = $2`,
		passwordHash, email)
	return err
}

var _ Repository = (*PGRepository)(nil)
