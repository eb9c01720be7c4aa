package catalog

// JobPosting is one catalog entry. Postings are created at load time and are
// not mutated afterwards; callers share them freely across goroutines.
type JobPosting struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Company         string   `json:"company"`
	Location        string   `json:"location"`
	SalaryRange     string   `json:"salaryRange"`
	RequiredSkills  []string `json:"requiredSkills"`
	ExperienceLevel string   `json:"experienceLevel"`
	Description     string   `json:"description"`
}

// LoadResult is the outcome of parsing a catalog source.
type LoadResult struct {
	Jobs     []JobPosting
	Rejected []RowError
}
