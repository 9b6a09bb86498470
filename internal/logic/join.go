package logic

import (
	"fmt"
	"path/filepath"

	"github.com/idelchi/gosplit/internal/config"
	"github.com/idelchi/gosplit/internal/fileutil"
	"github.com/idelchi/gosplit/internal/manifest"
	"github.com/idelchi/gosplit/internal/shard"
)

// RunJoin restores the original file from every input.
func RunJoin(cfg *config.Join) error {
	opts := shard.Options{Parallel: cfg.Parallel}

	if err := run(cfg.Config, "Joined", cfg.Inputs, func(input string) (string, int64, error) {
		return joinInput(input, cfg, opts)
	}); err != nil {
		return fmt.Errorf("joining files: %w", err)
	}

	return nil
}

// restoredName reduces the recorded filename to a plain base name.
func restoredName(filename string) string {
	name := filepath.Base(filename)

	switch name {
	case ".", "..", string(filepath.Separator):
		return manifest.DefaultFilename
	}

	return name
}

func joinInput(input string, cfg *config.Join, opts shard.Options) (string, int64, error) {
	source, err := openInput(input, cfg.MaxBytes())
	if err != nil {
		return "", 0, err
	}

	joined, err := shard.JoinParts(source, opts)
	if err != nil {
		return "", 0, err
	}

	if cfg.Output != "" {
		if err := ensureDir(cfg.Output); err != nil {
			return "", 0, err
		}
	}

	outPath := filepath.Join(cfg.Output, restoredName(joined.Filename))

	if !cfg.Force {
		exists, err := fileutil.Exists(outPath)
		if err != nil {
			return "", 0, err
		}

		if exists {
			return "", 0, fmt.Errorf("output %q already exists, use --force to overwrite", outPath)
		}
	}

	const ownerReadWrite = 0o600

	if err := fileutil.WriteFileAtomic(outPath, joined.Data, ownerReadWrite); err != nil {
		return "", 0, err
	}

	return outPath, int64(len(joined.Data)), nil
}
