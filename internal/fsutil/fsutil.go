// Package fsutil provides file system utility functions.
package fsutil

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
)

// RemoveTree recursively deletes dir and everything under it. A dir that
// does not exist is success, so the operation is idempotent.
func RemoveTree(dir string) error {
	if dir == "" {
		return errors.New("fsutil: refusing to remove empty path")
	}
	return os.RemoveAll(dir)
}

// Glob returns the files directly under dir whose base name matches the
// glob pattern, sorted for deterministic consumption. A dir that does not
// exist yields an empty result rather than an error.
func Glob(dir string, pattern string) ([]string, error) {
	if pattern == "" {
		return nil, errors.New("fsutil: pattern must not be empty")
	}
	matches, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return nil, err
	}
	sort.Strings(matches)
	return matches, nil
}
