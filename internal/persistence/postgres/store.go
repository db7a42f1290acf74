// Package postgres persists store snapshots to Postgres with the same
// single-table layout as the SQLite implementation.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver

	"porecore/internal/core"
)

const (
	defaultDriver = "pgx"
	defaultDSN    = "postgres://localhost/porecore?sslmode=disable"
)

var sqlOpen = sql.Open

// Store is a Postgres-backed snapshot store.
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

var _ core.SnapshotStore = (*Store)(nil)

// NewStore opens a Postgres-backed store using the provided DSN (falling
// back to a local default) and ensures the state table exists.
func NewStore(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		dsn = defaultDSN
	}
	db, err := sqlOpen(defaultDriver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS state (
		name TEXT PRIMARY KEY,
		payload BYTEA NOT NULL
	)`); err != nil {
		return nil, fmt.Errorf("create state table: %w", err)
	}
	return &Store{db: db}, nil
}

// Save writes or replaces the snapshot stored under snap.Name.
func (s *Store) Save(ctx context.Context, snap core.Snapshot) error {
	if snap.Name == "" {
		return fmt.Errorf("snapshot has no name")
	}
	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO state (name, payload) VALUES ($1, $2)
		 ON CONFLICT (name) DO UPDATE SET payload = EXCLUDED.payload`,
		snap.Name, payload); err != nil {
		return fmt.Errorf("upsert snapshot: %w", err)
	}
	return nil
}

// Load retrieves the snapshot stored under name.
func (s *Store) Load(ctx context.Context, name string) (core.Snapshot, bool, error) {
	var payload []byte
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM state WHERE name = $1`, name).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Snapshot{}, false, nil
	}
	if err != nil {
		return core.Snapshot{}, false, fmt.Errorf("select snapshot: %w", err)
	}
	var snap core.Snapshot
	if err := json.Unmarshal(payload, &snap); err != nil {
		return core.Snapshot{}, false, fmt.Errorf("decode snapshot: %w", err)
	}
	return snap, true, nil
}

// List returns the stored object names in sorted order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name FROM state ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("select names: %w", err)
	}
	defer func() { _ = rows.Close() }()
	var out []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		out = append(out, name)
	}
	return out, rows.Err()
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}
