package logic

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/idelchi/gosplit/internal/archive"
	"github.com/idelchi/gosplit/internal/shard"
)

// limitedDir is a shard.Dir that refuses parts above a size limit.
type limitedDir struct {
	dir   shard.Dir
	limit int64
}

func (d limitedDir) Get(name string) ([]byte, error) {
	if name == filepath.Base(name) {
		path := filepath.Join(string(d.dir), name)

		if info, err := os.Stat(path); err == nil {
			if err := checkSize(path, info, d.limit); err != nil {
				return nil, err
			}
		}
	}

	return d.dir.Get(name)
}

// openInput resolves a parts directory or a zip archive into a shard.Source.
func openInput(path string, maxBytes int64) (shard.Source, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat input: %w", err)
	}

	if info.IsDir() {
		return limitedDir{dir: shard.Dir(path), limit: maxBytes}, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening archive: %w", err)
	}
	defer file.Close()

	parts, err := archive.Read(file, info.Size(), maxBytes)
	if errors.Is(err, archive.ErrTooLarge) {
		return nil, fmt.Errorf("%w: %w", ErrTooLarge, err)
	}

	if err != nil {
		return nil, fmt.Errorf("reading archive: %w", err)
	}

	return parts, nil
}
