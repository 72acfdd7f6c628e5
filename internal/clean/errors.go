package clean

import (
	"errors"
)

// Sentinel kinds for cleaner-stage errors. These allow errors.Is from callers.
var (
	ErrReadInput   = errors.New("read input failed")
	ErrBackup      = errors.New("create backup failed")
	ErrWriteOutput = errors.New("write cleaned output failed")
	// ErrNoContent marks an input with nothing left after filtering; a
	// nothing-to-do outcome rather than a failure.
	ErrNoContent = errors.New("no content after filtering")
)
