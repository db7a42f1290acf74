package core

import "context"

// SnapshotStore persists the state layout of stores keyed by object name.
// Implementations live under internal/persistence (SQLite, Postgres).
type SnapshotStore interface {
	// Save writes or replaces the snapshot stored under snap.Name.
	Save(ctx context.Context, snap Snapshot) error
	// Load retrieves the snapshot stored under name; the second result is
	// false when none exists.
	Load(ctx context.Context, name string) (Snapshot, bool, error)
	// List returns the stored object names in sorted order.
	List(ctx context.Context) ([]string, error)
	// Close releases the underlying resources.
	Close() error
}
