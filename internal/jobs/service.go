package jobs

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"placement-backend/internal/catalog"
	"placement-backend/internal/shared/metrics"
	"placement-backend/internal/shared/storage/object"
	"placement-backend/internal/shared/telemetry"
	"placement-backend/internal/shared/util"
)

const (
	// SourceUpload marks catalogs posted directly to the API.
	SourceUpload = "upload"

	maxLoggedRejections = 20
)

// Service owns the published catalog snapshot.
type Service struct {
	Repo       Repo
	Store      object.ObjectStore
	CatalogKey string

	current atomic.Pointer[Snapshot]
	now     func() time.Time
}

// NewService constructs a Service publishing an empty catalog until the
// first Restore or Import. store may be nil.
func NewService(repo Repo, store object.ObjectStore, catalogKey string) *Service {
	s := &Service{
		Repo:       repo,
		Store:      store,
		CatalogKey: catalogKey,
		now:        func() time.Time { return time.Now().UTC() },
	}
	s.current.Store(&Snapshot{})
	return s
}

// Current returns the published snapshot. It is never nil and must not be
// mutated by callers.
func (s *Service) Current() *Snapshot {
	return s.current.Load()
}

// Import parses raw, persists the result and publishes it. Once persisted,
// the raw source is archived under CatalogKey so the next process start can
// restore it without a database.
func (s *Service) Import(ctx context.Context, raw string) (*Snapshot, error) {
	snap, err := s.load(ctx, SourceUpload, raw)
	if err != nil {
		return nil, err
	}
	return s.publish(ctx, snap, raw, true)
}

// ImportFromStore loads the catalog stored under storageKey. Sources other
// than CatalogKey are copied there after publishing.
func (s *Service) ImportFromStore(ctx context.Context, storageKey string) (*Snapshot, error) {
	raw, err := s.readStore(ctx, storageKey)
	if err != nil {
		return nil, err
	}
	snap, err := s.load(ctx, "store:"+storageKey, raw)
	if err != nil {
		return nil, err
	}
	return s.publish(ctx, snap, raw, storageKey != s.CatalogKey)
}

// Restore publishes the last persisted catalog, falling back to the object
// store copy under CatalogKey. Finding nothing is not an error.
func (s *Service) Restore(ctx context.Context) error {
	snap, err := s.Repo.Latest(ctx)
	switch {
	case err == nil:
		s.current.Store(&snap)
		telemetry.Info("catalog.restored", map[string]any{
			"version": snap.Version,
			"source":  snap.Source,
			"jobs":    len(snap.Jobs),
		})
		return nil
	case !errors.Is(err, ErrNotFound):
		return fmt.Errorf("load latest catalog: %w", err)
	}

	if s.Store == nil || s.CatalogKey == "" {
		return nil
	}
	_, err = s.ImportFromStore(ctx, s.CatalogKey)
	if errors.Is(err, object.ErrNotFound) {
		telemetry.Info("catalog.none", map[string]any{"catalog_key": s.CatalogKey})
		return nil
	}
	return err
}

func (s *Service) readStore(ctx context.Context, storageKey string) (string, error) {
	if s.Store == nil {
		return "", fmt.Errorf("%w: object store not configured", ErrInvalidInput)
	}
	if strings.TrimSpace(storageKey) == "" {
		return "", fmt.Errorf("%w: storageKey is required", ErrInvalidInput)
	}
	rc, err := s.Store.Open(ctx, storageKey)
	if err != nil {
		return "", err
	}
	defer rc.Close()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, rc); err != nil {
		return "", fmt.Errorf("read %s: %w", storageKey, err)
	}
	return buf.String(), nil
}

func (s *Service) load(ctx context.Context, source, raw string) (Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return Snapshot{}, err
	}
	res := catalog.Load(raw)
	metrics.ObserveCatalogImport(len(res.Jobs), len(res.Rejected))
	telemetry.Info("catalog.loaded", map[string]any{
		"source":   source,
		"digest":   util.ContentDigest([]byte(raw)),
		"bytes":    len(raw),
		"accepted": len(res.Jobs),
		"rejected": len(res.Rejected),
	})

	for i, rej := range res.Rejected {
		if i == maxLoggedRejections {
			telemetry.Warn("catalog.rows_rejected_truncated", map[string]any{
				"source":  source,
				"omitted": len(res.Rejected) - maxLoggedRejections,
			})
			break
		}
		telemetry.Warn("catalog.row_rejected", map[string]any{
			"source": source,
			"line":   rej.Line,
			"reason": rej.Reason(),
		})
	}

	if len(res.Jobs) == 0 {
		return Snapshot{}, fmt.Errorf("%w: %d rows rejected", ErrCatalogEmpty, len(res.Rejected))
	}
	return Snapshot{
		Version:  uuid.NewString(),
		Source:   source,
		LoadedAt: s.now(),
		Jobs:     res.Jobs,
		Rejected: res.Rejected,
	}, nil
}

// publish persists snap, archives raw when asked and swaps the current
// pointer. Nothing is archived or published if persisting fails.
func (s *Service) publish(ctx context.Context, snap Snapshot, raw string, archive bool) (*Snapshot, error) {
	if err := s.Repo.Replace(ctx, snap); err != nil {
		return nil, fmt.Errorf("persist catalog: %w", err)
	}
	if archive {
		s.archive(ctx, snap, raw)
	}
	published := &snap
	s.current.Store(published)
	telemetry.Info("catalog.published", map[string]any{
		"version":  snap.Version,
		"source":   snap.Source,
		"jobs":     len(snap.Jobs),
		"rejected": len(snap.Rejected),
	})
	return published, nil
}

// archive copies raw to CatalogKey. The repo already holds the snapshot, so
// a failed copy is logged rather than returned.
func (s *Service) archive(ctx context.Context, snap Snapshot, raw string) {
	if s.Store == nil || s.CatalogKey == "" {
		return
	}
	if _, err := s.Store.Put(ctx, s.CatalogKey, "text/csv", strings.NewReader(raw)); err != nil {
		telemetry.Warn("catalog.archive_failed", map[string]any{
			"version":     snap.Version,
			"catalog_key": s.CatalogKey,
			"error":       err.Error(),
		})
	}
}
