package catalog

import (
	"errors"
	"fmt"
)

var (
	ErrShortRow = errors.New("too few fields")
	ErrNoSkills = errors.New("no required skills")
	ErrBadRow   = errors.New("unparseable row")
)

// RowError describes a catalog line that was skipped during load.
type RowError struct {
	Line int    `json:"line"`
	Raw  string `json:"raw"`
	Err  error  `json:"-"`
}

func (e RowError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("catalog line %d: rejected", e.Line)
	}
	return fmt.Sprintf("catalog line %d: %s", e.Line, e.Err.Error())
}

func (e RowError) Unwrap() error { return e.Err }

// Reason returns the short diagnostic used in API responses.
func (e RowError) Reason() string {
	if e.Err == nil {
		return "rejected"
	}
	return e.Err.Error()
}
