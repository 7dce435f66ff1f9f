// Package fsutil wraps the handful of filesystem operations the build-output
// layer performs. Errors from the underlying os calls are returned verbatim;
// callers own any retry or cleanup policy.
package fsutil

import (
	"os"
	"path/filepath"
)

// PathExists reports whether path exists. It never returns an error; an
// unreadable path counts as absent.
func PathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// ReadFile reads the whole file at path.
func ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// OutputFile writes content to path, creating parent directories as needed.
func OutputFile(path string, content []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, content, 0o644)
}
