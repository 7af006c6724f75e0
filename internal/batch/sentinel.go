package batch

import (
	"fmt"
	"os"
)

// WriteSentinel creates the zero-byte completion marker. Its existence is
// the only machine-readable completion signal; content is never read.
func WriteSentinel(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create sentinel %s: %w", path, err)
	}
	return f.Close()
}

// ClearSentinel removes a marker left by a previous invocation, so
// collaborators cannot mistake the new run for a finished one. A missing
// marker is fine.
func ClearSentinel(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove sentinel %s: %w", path, err)
	}
	return nil
}

// SentinelExists reports whether the marker is present.
func SentinelExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
