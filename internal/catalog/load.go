// Package catalog parses delimited job-posting sources into JobPosting records.
package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Positional layout of a catalog row.
const (
	fieldTitle = iota
	fieldCompany
	fieldLocation
	fieldSalary
	fieldSkills
	fieldExperience
	fieldDescription

	fieldCount
)

// Load parses a catalog text blob. The first line is a header and is always
// discarded. Blank lines are skipped; rows that cannot form a posting are
// reported in LoadResult.Rejected and do not stop the load.
func Load(raw string) LoadResult {
	lines := strings.Split(raw, "\n")
	result := LoadResult{Jobs: make([]JobPosting, 0, len(lines))}
	if len(lines) <= 1 {
		return result
	}

	for i, line := range lines[1:] {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lineNo := i + 2

		job, err := parseRow(line)
		if err != nil {
			result.Rejected = append(result.Rejected, RowError{Line: lineNo, Raw: line, Err: err})
			continue
		}
		job.ID = strconv.Itoa(len(result.Jobs) + 1)
		result.Jobs = append(result.Jobs, job)
	}
	return result
}

// Read loads a catalog from a stream.
func Read(r io.Reader) (LoadResult, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return LoadResult{}, fmt.Errorf("read catalog: %w", err)
	}
	return Load(string(data)), nil
}

func parseRow(line string) (JobPosting, error) {
	reader := csv.NewReader(strings.NewReader(line))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	fields, err := reader.Read()
	if err != nil {
		return JobPosting{}, fmt.Errorf("%w: %v", ErrBadRow, err)
	}
	if len(fields) < fieldCount {
		return JobPosting{}, fmt.Errorf("%w: got %d, want %d", ErrShortRow, len(fields), fieldCount)
	}

	skills := ParseSkills(fields[fieldSkills])
	if len(skills) == 0 {
		return JobPosting{}, ErrNoSkills
	}

	return JobPosting{
		Title:           fields[fieldTitle],
		Company:         fields[fieldCompany],
		Location:        fields[fieldLocation],
		SalaryRange:     fields[fieldSalary],
		RequiredSkills:  skills,
		ExperienceLevel: fields[fieldExperience],
		Description:     fields[fieldDescription],
	}, nil
}

// ParseSkills splits a quoted, space separated skills field. Hyphens inside a
// token stand for spaces ("Node-js" is stored as "Node js"). Tokens are not
// case folded. Empty tokens are dropped and repeats keep their first position.
func ParseSkills(field string) []string {
	field = strings.ReplaceAll(field, `"`, "")
	parts := strings.Split(field, " ")
	out := make([]string, 0, len(parts))
	seen := make(map[string]struct{}, len(parts))
	for _, p := range parts {
		if p == "" {
			continue
		}
		skill := strings.ReplaceAll(p, "-", " ")
		if _, dup := seen[skill]; dup {
			continue
		}
		seen[skill] = struct{}{}
		out = append(out, skill)
	}
	return out
}
