package jobs

import "errors"

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	// ErrCatalogEmpty is returned when a source yields no usable postings.
	ErrCatalogEmpty = errors.New("catalog has no usable postings")
)
