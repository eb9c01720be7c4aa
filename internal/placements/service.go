// Package placements serves candidate scoring against the published job
// catalog.
package placements

import (
	"context"
	"errors"
	"fmt"
	"time"

	"placement-backend/internal/jobs"
	"placement-backend/internal/matching"
	"placement-backend/internal/profiles"
	"placement-backend/internal/shared/metrics"
	"placement-backend/internal/shared/telemetry"
	"placement-backend/internal/shared/util"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	// ErrCatalogEmpty is returned while no catalog has been published.
	ErrCatalogEmpty = errors.New("no job catalog loaded")
)

// CatalogSource yields the current catalog snapshot.
type CatalogSource interface {
	Current() *jobs.Snapshot
}

// Service scores candidates against the current catalog.
type Service struct {
	Catalog CatalogSource
}

// NewService constructs a Service.
func NewService(catalog CatalogSource) *Service {
	return &Service{Catalog: catalog}
}

// MatchResult is a ranked list tied to the catalog version it was computed on.
type MatchResult struct {
	CatalogVersion string              `json:"catalogVersion"`
	Matches        []matching.JobMatch `json:"matches"`
}

// AssessmentResult is the prediction page payload.
type AssessmentResult struct {
	CatalogVersion string                    `json:"catalogVersion"`
	Profile        profiles.CandidateProfile `json:"profile"`
	Matches        []matching.JobMatch       `json:"matches"`
	Prediction     matching.Prediction       `json:"prediction"`
}

// ExtractionResult is the resume upload payload.
type ExtractionResult struct {
	CatalogVersion string                    `json:"catalogVersion"`
	MimeType       string                    `json:"mimeType"`
	Pages          int                       `json:"pages,omitempty"`
	Profile        profiles.CandidateProfile `json:"profile"`
	Matches        []matching.JobMatch       `json:"matches"`
}

// Match returns the strict-mode qualifying postings for skills.
func (s *Service) Match(ctx context.Context, skills []string) (MatchResult, error) {
	snap, err := s.snapshot(ctx, skills)
	if err != nil {
		return MatchResult{}, err
	}
	start := time.Now()
	assessment := matching.Assess(skills, snap.Jobs)
	metrics.ObserveScoringDurationMs(metrics.SinceMillis(start))
	metrics.IncMatchRequests()

	return MatchResult{CatalogVersion: snap.Version, Matches: assessment.Matches}, nil
}

// Explore returns every posting sharing at least one skill.
func (s *Service) Explore(ctx context.Context, skills []string) (MatchResult, error) {
	snap, err := s.snapshot(ctx, skills)
	if err != nil {
		return MatchResult{}, err
	}
	start := time.Now()
	matches := matching.Explore(skills, snap.Jobs)
	metrics.ObserveScoringDurationMs(metrics.SinceMillis(start))
	metrics.IncExploreRequests()

	return MatchResult{CatalogVersion: snap.Version, Matches: matches}, nil
}

// Assess validates profile and returns its strict matches and prediction.
func (s *Service) Assess(ctx context.Context, profile profiles.CandidateProfile) (AssessmentResult, error) {
	if err := profile.Validate(); err != nil {
		return AssessmentResult{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	snap, err := s.snapshot(ctx, profile.Skills)
	if err != nil {
		return AssessmentResult{}, err
	}
	start := time.Now()
	assessment := matching.Assess(profile.Skills, snap.Jobs)
	metrics.ObserveScoringDurationMs(metrics.SinceMillis(start))
	metrics.IncPredictions(assessment.Prediction.IsFallback())

	return AssessmentResult{
		CatalogVersion: snap.Version,
		Profile:        profile,
		Matches:        assessment.Matches,
		Prediction:     assessment.Prediction,
	}, nil
}

// ExtractProfile checks the uploaded resume and returns the extracted
// profile with its loose matches.
func (s *Service) ExtractProfile(ctx context.Context, up profiles.Upload) (ExtractionResult, error) {
	extraction, err := profiles.Extract(ctx, up)
	if err != nil {
		return ExtractionResult{}, err
	}
	metrics.IncProfileExtractions()
	telemetry.Info("profile.extracted", map[string]any{
		"file":     up.FileName,
		"digest":   util.ContentDigest(up.Data),
		"bytes":    len(up.Data),
		"mimeType": extraction.MimeType,
	})

	explored, err := s.Explore(ctx, extraction.Profile.Skills)
	if err != nil {
		return ExtractionResult{}, err
	}
	return ExtractionResult{
		CatalogVersion: explored.CatalogVersion,
		MimeType:       extraction.MimeType,
		Pages:          extraction.Pages,
		Profile:        extraction.Profile,
		Matches:        explored.Matches,
	}, nil
}

func (s *Service) snapshot(ctx context.Context, skills []string) (*jobs.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	probe := profiles.CandidateProfile{Skills: skills}
	if err := probe.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	snap := s.Catalog.Current()
	if snap.Empty() {
		return nil, ErrCatalogEmpty
	}
	return snap, nil
}
