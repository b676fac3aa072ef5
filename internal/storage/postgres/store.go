// Package postgres keeps cart snapshots in a single Postgres table.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/Lixing-Zhang/foodie-express/internal/storage"
)

const (
	createTableSQL = `CREATE TABLE IF NOT EXISTS cart_snapshots (
		key TEXT PRIMARY KEY,
		payload JSONB NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`
	loadSQL = `SELECT payload FROM cart_snapshots WHERE key = $1`
	saveSQL = `INSERT INTO cart_snapshots (key, payload, updated_at) VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET payload = EXCLUDED.payload, updated_at = EXCLUDED.updated_at`
	deleteSQL = `DELETE FROM cart_snapshots WHERE key = $1`
)

var _ storage.KeyValueStore = (*Store)(nil)

// Store is a snapshot store backed by Postgres
type Store struct {
	DB *sql.DB
}

// Open connects to dsn and verifies the connection
func Open(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return &Store{DB: db}, nil
}

// Close closes the database handle
func (s *Store) Close() error { return s.DB.Close() }

// EnsureSchema creates the snapshot table if it does not exist
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.DB.ExecContext(ctx, createTableSQL); err != nil {
		return fmt.Errorf("failed to create cart_snapshots table: %w", err)
	}
	return nil
}

// Load returns the snapshot under key, or storage.ErrNotFound
func (s *Store) Load(ctx context.Context, key string) ([]byte, error) {
	var payload []byte
	err := s.DB.QueryRowContext(ctx, loadSQL, key).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot %s: %w", key, err)
	}
	return payload, nil
}

// Save upserts the snapshot for key
func (s *Store) Save(ctx context.Context, key string, data []byte) error {
	if _, err := s.DB.ExecContext(ctx, saveSQL, key, data); err != nil {
		return fmt.Errorf("failed to save snapshot %s: %w", key, err)
	}
	return nil
}

// Delete removes the snapshot under key
func (s *Store) Delete(ctx context.Context, key string) error {
	if _, err := s.DB.ExecContext(ctx, deleteSQL, key); err != nil {
		return fmt.Errorf("failed to delete snapshot %s: %w", key, err)
	}
	return nil
}
