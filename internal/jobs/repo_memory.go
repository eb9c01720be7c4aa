package jobs

import (
	"context"
	"sync"

	"placement-backend/internal/catalog"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu     sync.RWMutex
	latest *Snapshot
}

// NewMemoryRepo constructs an empty MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{}
}

// Replace stores a copy of snap.
func (r *MemoryRepo) Replace(ctx context.Context, snap Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	cp := snap
	cp.Jobs = append([]catalog.JobPosting(nil), snap.Jobs...)
	cp.Rejected = append([]catalog.RowError(nil), snap.Rejected...)

	r.mu.Lock()
	r.latest = &cp
	r.mu.Unlock()
	return nil
}

// Latest returns the stored snapshot.
func (r *MemoryRepo) Latest(ctx context.Context) (Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return Snapshot{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.latest == nil {
		return Snapshot{}, ErrNotFound
	}
	return *r.latest, nil
}

var _ Repo = (*MemoryRepo)(nil)
