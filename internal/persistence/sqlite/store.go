// Package sqlite persists store snapshots to a single SQLite table as
// JSON payloads, one row per object name.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite" // pure go sqlite driver

	"porecore/internal/core"
)

// Store is a SQLite-backed snapshot store.
type Store struct {
	db   *sql.DB
	mu   sync.Mutex
	path string
}

var _ core.SnapshotStore = (*Store)(nil)

// NewStore opens (and initializes) the database at path.
func NewStore(path string) (*Store, error) {
	if path == "" {
		path = "porecore.db"
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil && !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("create dirs: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS state (
		name TEXT PRIMARY KEY,
		payload BLOB NOT NULL
	)`); err != nil {
		return nil, fmt.Errorf("create state table: %w", err)
	}
	return &Store{db: db, path: path}, nil
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
		`INSERT INTO state (name, payload) VALUES (?, ?)
		 ON CONFLICT(name) DO UPDATE SET payload = excluded.payload`,
		snap.Name, payload); err != nil {
		return fmt.Errorf("upsert snapshot: %w", err)
	}
	return nil
}

// Load retrieves the snapshot stored under name.
func (s *Store) Load(ctx context.Context, name string) (core.Snapshot, bool, error) {
	var payload []byte
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM state WHERE name = ?`, name).Scan(&payload)
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
