package parse

import (
	"errors"
)

// Sentinel kinds for per-line parse outcomes.
var (
	// ErrNoMatch marks a line outside the result grammar; callers skip it.
	ErrNoMatch = errors.New("line does not match result grammar")
	// ErrRejected marks a matched line whose extracted fields violate the
	// result invariant; the record is discarded, not stored.
	ErrRejected = errors.New("result rejected by invariant")
)
