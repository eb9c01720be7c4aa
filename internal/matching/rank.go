package matching

import (
	"sort"

	"placement-backend/internal/catalog"
)

// RankJobs is the strict mode: it keeps postings whose match percentage meets
// RequiredPercentage and orders them by descending percentage. Ties keep
// catalog order.
func RankJobs(candidate []string, jobs []catalog.JobPosting) []Match {
	have := skillSet(candidate)
	out := make([]Match, 0, len(jobs))
	for _, job := range jobs {
		required := distinctSkills(job.RequiredSkills)
		total := len(required)
		matched := countMatched(have, required)
		if !qualifies(matched, total) {
			continue
		}
		out = append(out, Match{
			Job:             job,
			MatchPercentage: float64(100*matched) / float64(total),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].MatchPercentage > out[j].MatchPercentage
	})
	return out
}

// LooseRank is the discovery mode: it keeps every posting that shares at
// least one skill with the candidate, ordered by descending overlap count.
// Ties keep catalog order.
func LooseRank(candidate []string, jobs []catalog.JobPosting) []catalog.JobPosting {
	have := skillSet(candidate)
	type scored struct {
		job     catalog.JobPosting
		overlap int
	}
	hits := make([]scored, 0, len(jobs))
	for _, job := range jobs {
		if n := countMatched(have, distinctSkills(job.RequiredSkills)); n > 0 {
			hits = append(hits, scored{job: job, overlap: n})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].overlap > hits[j].overlap
	})

	out := make([]catalog.JobPosting, len(hits))
	for i, h := range hits {
		out[i] = h.job
	}
	return out
}
