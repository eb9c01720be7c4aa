package health

import (
	"context"
	"time"

	"placement-backend/internal/jobs"
)

const pingTimeout = 2 * time.Second

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Service reports liveness plus catalog and database readiness.
type Service struct {
	Catalog interface{ Current() *jobs.Snapshot }
	DB      Pinger
}

// NewService constructs a new health service. db may be nil.
func NewService(catalog interface{ Current() *jobs.Snapshot }, db Pinger) *Service {
	return &Service{Catalog: catalog, DB: db}
}

// Status is the health payload.
type Status struct {
	OK             bool   `json:"ok"`
	CatalogVersion string `json:"catalogVersion,omitempty"`
	CatalogJobs    int    `json:"catalogJobs"`
	Database       string `json:"database"`
}

// Status reports readiness. OK is false only when a configured database
// does not answer.
func (s *Service) Status(ctx context.Context) Status {
	st := Status{OK: true, Database: "memory"}
	if s.Catalog != nil {
		snap := s.Catalog.Current()
		st.CatalogVersion = snap.Version
		st.CatalogJobs = len(snap.Jobs)
	}
	if s.DB != nil {
		pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
		defer cancel()
		if err := s.DB.PingContext(pingCtx); err != nil {
			st.OK = false
			st.Database = "unreachable"
		} else {
			st.Database = "ok"
		}
	}
	return st
}
