package jobs

import (
	"time"

	"placement-backend/internal/catalog"
)

type importFromStoreRequest struct {
	StorageKey string `json:"storageKey"`
}

type rowErrorResponse struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
	Raw    string `json:"raw"`
}

type importResponse struct {
	Version  string             `json:"version"`
	Source   string             `json:"source"`
	Accepted int                `json:"accepted"`
	Rejected []rowErrorResponse `json:"rejected"`
}

type listResponse struct {
	Version  string               `json:"version"`
	Source   string               `json:"source,omitempty"`
	LoadedAt *time.Time           `json:"loadedAt,omitempty"`
	Count    int                  `json:"count"`
	Jobs     []catalog.JobPosting `json:"jobs"`
}

func toImportResponse(snap *Snapshot) importResponse {
	rejected := make([]rowErrorResponse, 0, len(snap.Rejected))
	for _, r := range snap.Rejected {
		rejected = append(rejected, rowErrorResponse{Line: r.Line, Reason: r.Reason(), Raw: r.Raw})
	}
	return importResponse{
		Version:  snap.Version,
		Source:   snap.Source,
		Accepted: len(snap.Jobs),
		Rejected: rejected,
	}
}

func toListResponse(snap *Snapshot) listResponse {
	jobs := snap.Jobs
	if jobs == nil {
		jobs = []catalog.JobPosting{}
	}
	resp := listResponse{
		Version: snap.Version,
		Source:  snap.Source,
		Count:   len(jobs),
		Jobs:    jobs,
	}
	if !snap.LoadedAt.IsZero() {
		loadedAt := snap.LoadedAt
		resp.LoadedAt = &loadedAt
	}
	return resp
}
