package board

import (
	"errors"
)

// Sentinel kinds for aggregator-stage errors. These allow errors.Is from
// callers.
var (
	ErrReadInput   = errors.New("read cleaned input failed")
	ErrWriteOutput = errors.New("write leaderboard failed")
	// ErrNoResults marks an input with no parseable result lines; no CSV is
	// produced.
	ErrNoResults = errors.New("no results parsed")
)
