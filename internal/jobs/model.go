package jobs

import (
	"time"

	"placement-backend/internal/catalog"
)

// Snapshot is one published version of the job catalog. Snapshots are
// immutable once stored; an import always produces a new one.
type Snapshot struct {
	Version  string
	Source   string
	LoadedAt time.Time
	Jobs     []catalog.JobPosting
	Rejected []catalog.RowError
}

// Empty reports whether the snapshot holds no postings.
func (s *Snapshot) Empty() bool {
	return s == nil || len(s.Jobs) == 0
}
