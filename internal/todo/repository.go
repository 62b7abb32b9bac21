package todo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound indicates no todo matched the id and owner pair.
var ErrNotFound = errors.New("todo: not found")

// Repository defines persistence operations for todos. Every query that
// touches a single todo filters by both id and owner, so a row belonging to
// another user is indistinguishable from a missing one.
type Repository interface {
	ListByOwner(ctx context.Context, ownerID int64) ([]Todo, error)
	ListByOwnerAndStatus(ctx context.Context, ownerID int64, status Status) ([]Todo, error)
	Insert(ctx context.Context, input Input) error
	LatestOfOwner(ctx context.Context, ownerID int64) (*Todo, error)
	FindOwned(ctx context.Context, id, ownerID int64) (*Todo, error)
	Update(ctx context.Context, id, ownerID int64, input Input) error
	Delete(ctx context.Context, id, ownerID int64) error
}

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

const todoColumns = `id, name, description, userid, created, updated, status`

func scanTodo(row pgx.Row) (*Todo, error) {
	var t Todo
	err := row.Scan(&t.ID, &t.Name, &t.Description, &t.OwnerID, &t.CreatedAt, &t.UpdatedAt, &t.Status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *PGRepository) queryTodos(ctx context.Context, query string, args ...any) ([]Todo, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var todos []Todo
	for rows.Next() {
		var t Todo
		if err := rows.Scan(&t.ID, &t.Name, &t.Description, &t.OwnerID, &t.CreatedAt, &t.UpdatedAt, &t.Status); err != nil {
			return nil, err
		}
		todos = append(todos, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return todos, nil
}

// ListByOwner returns all todos belonging to the owner.
func (r *PGRepository) ListByOwner(ctx context.Context, ownerID int64) ([]Todo, error) {
	return r.queryTodos(ctx,
		`SELECT `+todoColumns+` FROM todos WHERE userid = $1`, ownerID)
}

// ListByOwnerAndStatus returns the owner's todos in the given state.
func (r *PGRepository) ListByOwnerAndStatus(ctx context.Context, ownerID int64, status Status) ([]Todo, error) {
	return r.queryTodos(ctx,
		`SELECT `+todoColumns+` FROM todos WHERE status = $1 AND userid = $2`, status, ownerID)
}

// Insert creates a new todo row.
func (r *PGRepository) Insert(ctx context.Context, input Input) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO todos (name, description, userid, status) VALUES ($1, $2, $3, $4)`,
		input.Name, input.Description, input.OwnerID, input.Status)
	return err
}

// LatestOfOwner returns the owner's most recently inserted todo.
func (r *PGRepository) LatestOfOwner(ctx context.Context, ownerID int64) (*Todo, error) {
	return scanTodo(r.pool.QueryRow(ctx,
		`SELECT `+todoColumns+` FROM todos WHERE userid = $1 ORDER BY id DESC LIMIT 1`, ownerID))
}

// FindOwned returns the todo with the given id when the owner matches.
func (r *PGRepository) FindOwned(ctx context.Context, id, ownerID int64) (*Todo, error) {
	return scanTodo(r.pool.QueryRow(ctx,
		`SELECT `+todoColumns+` FROM todos WHERE id = $1 AND userid = $2`, id, ownerID))
}

// Update applies name, description and status and bumps the updated stamp.
func (r *PGRepository) Update(ctx context.Context, id, ownerID int64, input Input) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE todos SET name = $1, description = $2, updated = CURRENT_DATE, status = $3 WHERE id = $4 AND userid = $5`,
		input.Name, input.Description, input.Status, id, ownerID)
	return err
}

// Delete removes the todo when the owner matches.
func (r *PGRepository) Delete(ctx context.Context, id, ownerID int64) error {
	_, err := r.pool.Exec(ctx,
		`DELETE FROM todos WHERE id = $1 AND userid = $2`, id, ownerID)
	return err
}

var _ Repository = (*PGRepository)(nil)
