// Package matching ranks job postings against a candidate's skills and
// derives a placement prediction from the best match. Every function is pure;
// skills compare by exact string equality.
package matching

// Qualification thresholds. Postings that list more skills require broader
// coverage.
const (
	smallPostingMaxSkills   = 10
	smallPostingRequiredPct = 70.0
	largePostingRequiredPct = 85.0
)

// SkillMatchPercentage returns the share of distinct required skills present
// in candidate, in [0,100]. A posting with no required skills scores 0.
func SkillMatchPercentage(candidate, required []string) float64 {
	required = distinctSkills(required)
	if len(required) == 0 {
		return 0
	}
	matched := countMatched(skillSet(candidate), required)
	return float64(100*matched) / float64(len(required))
}

// MissingSkills returns the distinct required skills absent from candidate,
// in the order they first appear in required.
func MissingSkills(candidate, required []string) []string {
	have := skillSet(candidate)
	required = distinctSkills(required)
	out := make([]string, 0, len(required))
	for _, skill := range required {
		if _, ok := have[skill]; !ok {
			out = append(out, skill)
		}
	}
	return out
}

// RequiredPercentage returns the qualifying threshold for a posting that
// lists requiredCount skills.
func RequiredPercentage(requiredCount int) float64 {
	if requiredCount <= smallPostingMaxSkills {
		return smallPostingRequiredPct
	}
	return largePostingRequiredPct
}

// qualifies compares scaled counts; 7 of 10 is exactly 70.
func qualifies(matched, requiredCount int) bool {
	if requiredCount == 0 {
		return false
	}
	return float64(100*matched) >= RequiredPercentage(requiredCount)*float64(requiredCount)
}

func skillSet(skills []string) map[string]struct{} {
	set := make(map[string]struct{}, len(skills))
	for _, s := range skills {
		set[s] = struct{}{}
	}
	return set
}

// distinctSkills drops repeated entries, keeping first positions. Slices
// without repeats are returned as is.
func distinctSkills(skills []string) []string {
	seen := make(map[string]struct{}, len(skills))
	for i, s := range skills {
		if _, dup := seen[s]; !dup {
			seen[s] = struct{}{}
			continue
		}
		out := append([]string(nil), skills[:i]...)
		for _, rest := range skills[i+1:] {
			if _, dup := seen[rest]; !dup {
				seen[rest] = struct{}{}
				out = append(out, rest)
			}
		}
		return out
	}
	return skills
}

func countMatched(have map[string]struct{}, required []string) int {
	n := 0
	for _, skill := range required {
		if _, ok := have[skill]; ok {
			n++
		}
	}
	return n
}
