package jobs

import "context"

// Repo persists catalog snapshots.
type Repo interface {
	// Replace stores snap as the current catalog, discarding older versions.
	Replace(ctx context.Context, snap Snapshot) error
	// Latest returns the most recently stored snapshot or ErrNotFound.
	Latest(ctx context.Context) (Snapshot, error)
}
