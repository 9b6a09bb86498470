package fileutil

import (
	"fmt"
	"os"
)

// ScopedDir is a temporary directory that must be released with Close.
type ScopedDir struct {
	Path string
}

// NewScopedDir creates a fresh temporary directory under parent (os.TempDir when empty).
func NewScopedDir(parent, pattern string) (*ScopedDir, error) {
	path, err := os.MkdirTemp(parent, pattern)
	if err != nil {
		return nil, fmt.Errorf("creating temporary directory: %w", err)
	}

	return &ScopedDir{Path: path}, nil
}

// Close removes the directory and everything in it. It is safe to call more than once.
func (d *ScopedDir) Close() error {
	if d.Path == "" {
		return nil
	}

	if err := os.RemoveAll(d.Path); err != nil {
		return fmt.Errorf("removing temporary directory %q: %w", d.Path, err)
	}

	d.Path = ""

	return nil
}
