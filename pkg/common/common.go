// 15 Oct 2026

// Package common has the exit codes for the commands and a little
// helper for tests.
package common

import (
	"fmt"
	"io"
	"os"
)

const (
	ExitSuccess = iota
	ExitFailure
	ExitUsageError
)

// WrtTemp writes a string to a temporary file and returns the
// filename. The caller should remove it.
func WrtTemp(s string) (string, error) {
	fTmp, err := os.CreateTemp("", "_del_me_testing")
	if err != nil {
		return "", fmt.Errorf("tempfile fail: %w", err)
	}
	name := fTmp.Name()
	if _, err := io.WriteString(fTmp, s); err != nil {
		fTmp.Close()
		return "", fmt.Errorf("writing string to temp file %v: %w", name, err)
	}
	if err := fTmp.Close(); err != nil {
		return "", fmt.Errorf("closing temp file %v: %w", name, err)
	}
	return name, nil
}
