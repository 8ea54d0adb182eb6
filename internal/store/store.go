// Package store is the Postgres persistence layer: users, font projects,
// and append-only document snapshots.
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Store wraps a pgx pool with typed queries.
type Store struct {
	pool *pgxpool.Pool
}

// Connect opens a pool against the given URL and verifies connectivity.
func Connect(ctx context.Context, databaseURL string) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &Store{pool: pool}, nil
}

// Close releases the pool.
func (s *Store) Close() {
	s.pool.Close()
}

// Migrate applies the schema. Idempotent; safe to run on every boot.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id           TEXT PRIMARY KEY,
	email        TEXT NOT NULL UNIQUE,
	password     TEXT NOT NULL,
	display_name TEXT NOT NULL,
	created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS fonts (
	id          TEXT PRIMARY KEY,
	owner_id    TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	family_name TEXT NOT NULL,
	style_name  TEXT NOT NULL DEFAULT 'Regular',
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS font_snapshots (
	id         TEXT PRIMARY KEY,
	font_id    TEXT NOT NULL REFERENCES fonts(id) ON DELETE CASCADE,
	document   JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_fonts_owner ON fonts(owner_id);
CREATE INDEX IF NOT EXISTS idx_snapshots_font ON font_snapshots(font_id, created_at DESC);

CREATE TABLE IF NOT EXISTS uploads (
	id         TEXT PRIMARY KEY,
	font_id    TEXT NOT NULL REFERENCES fonts(id) ON DELETE CASCADE,
	owner_id   TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	filename   TEXT NOT NULL,
	mime_type  TEXT NOT NULL,
	size_bytes BIGINT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

// User is a stored account row.
type User struct {
	ID          string
	Email       string
	Password    string
	DisplayName string
	CreatedAt   time.Time
}

// CreateUserParams carries the fields for a new account.
type CreateUserParams struct {
	ID          string
	Email       string
	Password    string
	DisplayName string
}

func (s *Store) CreateUser(ctx context.Context, p CreateUserParams) (User, error) {
	row := s.pool.QueryRow(ctx, `
		INSERT INTO users (id, email, password, display_name)
		VALUES ($1, $2, $3, $4)
		RETURNING id, email, password, display_name, created_at`,
		p.ID, p.Email, p.Password, p.DisplayName)

	var u User
	err := row.Scan(&u.ID, &u.Email, &u.Password, &u.DisplayName, &u.CreatedAt)
	return u, err
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (User, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, email, password, display_name, created_at
		FROM users WHERE email = $1`, email)

	var u User
	err := row.Scan(&u.ID, &u.Email, &u.Password, &u.DisplayName, &u.CreatedAt)
	return u, err
}

func (s *Store) GetUserByID(ctx context.Context, id string) (User, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, email, password, display_name, created_at
		FROM users WHERE id = $1`, id)

	var u User
	err := row.Scan(&u.ID, &u.Email, &u.Password, &u.DisplayName, &u.CreatedAt)
	return u, err
}
