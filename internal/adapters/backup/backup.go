// Package backup creates and restores pre-mutation copies of input files.
package backup

import (
	"fmt"
	"io"
	"os"
)

const filePermission = 0o644

// Create writes a byte-for-byte copy of src alongside it using the given
// suffix and returns the backup path.
func Create(src, suffix string) (string, error) {
	dst := src + suffix
	if err := copyFile(src, dst); err != nil {
		return "", fmt.Errorf("create backup: %w", err)
	}
	return dst, nil
}

// Restore copies the backup made with suffix back over src. This is a
// best-effort rollback after a failed write; there is no atomic swap.
func Restore(src, suffix string) error {
	if err := copyFile(src+suffix, src); err != nil {
		return fmt.Errorf("restore backup: %w", err)
	}
	return nil
}

func copyFile(from, to string) error {
	in, err := os.Open(from)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	out, err := os.OpenFile(to, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, filePermission)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
