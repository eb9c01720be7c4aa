package matching

import (
	"math"

	"placement-backend/internal/catalog"
)

const (
	confidenceOffset = 0.3
	confidenceCap    = 0.95
	maxCompanies     = 3

	fallbackRole       = "Entry Level Position"
	fallbackSalary     = "₹4,00,000 - ₹6,00,000"
	fallbackAdvice     = "Consider adding more relevant skills"
	fallbackConfidence = 0.3
)

// Predict derives a placement prediction from the strict ranking. When no
// posting qualifies it returns FallbackPrediction.
func Predict(candidate []string, jobs []catalog.JobPosting) Prediction {
	return predictFromRanked(RankJobs(candidate, jobs))
}

// FallbackPrediction is the sentinel summary used when nothing qualifies.
func FallbackPrediction() Prediction {
	return Prediction{
		Kind:                 PredictionFallback,
		PredictedRole:        fallbackRole,
		PredictedSalaryRange: fallbackSalary,
		PredictedCompanies:   []string{fallbackAdvice},
		Confidence:           fallbackConfidence,
	}
}

func predictFromRanked(ranked []Match) Prediction {
	if len(ranked) == 0 {
		return FallbackPrediction()
	}
	best := ranked[0]

	n := min(len(ranked), maxCompanies)
	companies := make([]string, 0, n)
	for _, m := range ranked[:n] {
		companies = append(companies, m.Job.Company)
	}

	return Prediction{
		Kind:                 PredictionMatch,
		PredictedRole:        best.Job.Title,
		PredictedSalaryRange: best.Job.SalaryRange,
		PredictedCompanies:   companies,
		Confidence:           math.Min(confidenceCap, best.MatchPercentage/100+confidenceOffset),
	}
}

// Assess runs the strict ranking once and returns the qualifying postings
// with their missing skills alongside the prediction built from them.
func Assess(candidate []string, jobs []catalog.JobPosting) Assessment {
	ranked := RankJobs(candidate, jobs)
	matches := make([]JobMatch, 0, len(ranked))
	for _, m := range ranked {
		matches = append(matches, JobMatch{
			Job:                m.Job,
			MatchPercentage:    m.MatchPercentage,
			RequiredPercentage: RequiredPercentage(len(distinctSkills(m.Job.RequiredSkills))),
			Qualifies:          true,
			MissingSkills:      MissingSkills(candidate, m.Job.RequiredSkills),
		})
	}
	return Assessment{
		Matches:    matches,
		Prediction: predictFromRanked(ranked),
	}
}

// Explore is the loose ranking annotated per posting with coverage and
// missing skills. Qualifies reports whether the posting would also pass the
// strict threshold.
func Explore(candidate []string, jobs []catalog.JobPosting) []JobMatch {
	ranked := LooseRank(candidate, jobs)
	out := make([]JobMatch, 0, len(ranked))
	for _, job := range ranked {
		out = append(out, Describe(candidate, job))
	}
	return out
}

// Describe scores a single posting without filtering.
func Describe(candidate []string, job catalog.JobPosting) JobMatch {
	required := distinctSkills(job.RequiredSkills)
	matched := countMatched(skillSet(candidate), required)
	return JobMatch{
		Job:                job,
		MatchPercentage:    SkillMatchPercentage(candidate, required),
		RequiredPercentage: RequiredPercentage(len(required)),
		Qualifies:          qualifies(matched, len(required)),
		MissingSkills:      MissingSkills(candidate, required),
	}
}
