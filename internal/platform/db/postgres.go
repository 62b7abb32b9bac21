// Package db constructs the PostgreSQL connection pool and bootstraps the
// schema the service depends on.
package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// New creates a new PostgreSQL connection pool.
func New(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("platform/db: parse config: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("platform/db: new pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("platform/db: ping: %w", err)
	}

	return pool, nil
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
	id SERIAL PRIMARY KEY,
	email VARCHAR(320) NOT NULL UNIQUE,
	password TEXT NOT NULL,
	created DATE NOT NULL DEFAULT CURRENT_DATE,
	updated DATE NOT NULL DEFAULT CURRENT_DATE
)`,
	`CREATE TABLE IF NOT EXISTS todos (
	id SERIAL PRIMARY KEY,
	name TEXT NOT NULL,
	description TEXT,
	userid INTEGER NOT NULL REFERENCES users (id) ON DELETE CASCADE,
	created DATE NOT NULL DEFAULT CURRENT_DATE,
	updated DATE NOT NULL DEFAULT CURRENT_DATE,
	status VARCHAR(10) NOT NULL
)`,
}

// Setup creates the users and todos tables when they do not exist yet.
// Users must be created first: todos carries a cascade-delete foreign key to it.
func Setup(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schema {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("platform/db: setup schema: %w", err)
		}
	}
	return nil
}
