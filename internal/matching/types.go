package matching

import "placement-backend/internal/catalog"

// Match pairs a posting with the candidate's coverage of its required skills.
type Match struct {
	Job             catalog.JobPosting
	MatchPercentage float64
}

// JobMatch is the per-posting view rendered to callers.
type JobMatch struct {
	Job                catalog.JobPosting `json:"job"`
	MatchPercentage    float64            `json:"matchPercentage"`
	RequiredPercentage float64            `json:"requiredPercentage"`
	Qualifies          bool               `json:"qualifies"`
	MissingSkills      []string           `json:"missingSkills"`
}

// PredictionKind tells a genuine prediction apart from the no-match fallback.
type PredictionKind string

const (
	PredictionMatch    PredictionKind = "match"
	PredictionFallback PredictionKind = "fallback"
)

// Prediction summarizes the best strict match.
type Prediction struct {
	Kind                 PredictionKind `json:"kind"`
	PredictedRole        string         `json:"predictedRole"`
	PredictedSalaryRange string         `json:"predictedSalaryRange"`
	PredictedCompanies   []string       `json:"predictedCompanies"`
	Confidence           float64        `json:"confidence"`
}

// IsFallback reports whether p is the sentinel returned when nothing qualifies.
func (p Prediction) IsFallback() bool {
	return p.Kind == PredictionFallback
}

// Assessment is the strict-mode result set plus its prediction.
type Assessment struct {
	Matches    []JobMatch `json:"matches"`
	Prediction Prediction `json:"prediction"`
}
