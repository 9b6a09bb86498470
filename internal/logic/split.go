package logic

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/idelchi/gosplit/internal/archive"
	"github.com/idelchi/gosplit/internal/config"
	"github.com/idelchi/gosplit/internal/encryption"
	"github.com/idelchi/gosplit/internal/fileutil"
	"github.com/idelchi/gosplit/internal/shard"
)

const (
	partsSuffix   = ".parts"
	archiveSuffix = ".zip"
)

// RunSplit splits every input file into an encrypted parts directory or zip archive.
func RunSplit(cfg *config.Split) error {
	scheme, err := encryption.ParseScheme(cfg.Scheme)
	if err != nil {
		return err
	}

	opts := shard.Options{Scheme: scheme, Parallel: cfg.Parallel}

	if err := run(cfg.Config, "Split", cfg.Files, func(file string) (string, int64, error) {
		return splitFile(file, cfg, opts)
	}); err != nil {
		return fmt.Errorf("splitting files: %w", err)
	}

	return nil
}

// splitOutput returns where the parts of file are written.
func splitOutput(file string, cfg *config.Split) string {
	dir := cfg.Output
	if dir == "" {
		dir = filepath.Dir(file)
	}

	suffix := partsSuffix
	if cfg.Archive {
		suffix = archiveSuffix
	}

	return filepath.Join(dir, filepath.Base(file)+suffix)
}

func splitFile(file string, cfg *config.Split, opts shard.Options) (string, int64, error) {
	info, err := os.Stat(file)
	if err != nil {
		return "", 0, fmt.Errorf("stat input: %w", err)
	}

	if info.IsDir() {
		return "", 0, errors.New("input is a directory")
	}

	if err := checkSize(file, info, cfg.MaxBytes()); err != nil {
		return "", 0, err
	}

	outPath := splitOutput(file, cfg)

	exists, err := fileutil.Exists(outPath)
	if err != nil {
		return "", 0, err
	}

	if exists {
		return "", 0, fmt.Errorf("output %q already exists", outPath)
	}

	data, err := os.ReadFile(file)
	if err != nil {
		return "", 0, fmt.Errorf("reading input: %w", err)
	}

	result, err := shard.Split(filepath.Base(file), data, cfg.Pieces, opts)
	if err != nil {
		return "", 0, err
	}

	parts, err := result.Parts()
	if err != nil {
		return "", 0, err
	}

	if !cfg.Archive {
		if err := fileutil.WriteParts(outPath, parts); err != nil {
			return "", 0, fmt.Errorf("writing parts: %w", err)
		}

		return outPath, partsSize(parts), nil
	}

	if err := writeArchive(outPath, parts, info); err != nil {
		return "", 0, err
	}

	size, err := fileutil.OutputSize(outPath)
	if err != nil {
		return "", 0, err
	}

	return outPath, size, nil
}

func writeArchive(outPath string, parts []shard.Part, src os.FileInfo) (err error) {
	if err := ensureDir(filepath.Dir(outPath)); err != nil {
		return err
	}

	tc, err := fileutil.NewTempContext(outPath)
	if err != nil {
		return fmt.Errorf("preparing atomic write: %w", err)
	}

	defer tc.CleanupOnError(&err)

	if err = archive.Write(tc.TmpFile, parts, src.ModTime()); err != nil {
		return fmt.Errorf("writing archive: %w", err)
	}

	const ownerReadWrite = 0o600

	return tc.Commit(ownerReadWrite)
}

func ensureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("creating %q: %w", dir, err)
	}

	return nil
}

func partsSize(parts []shard.Part) int64 {
	var size int64

	for _, part := range parts {
		size += int64(len(part.Data))
	}

	return size
}
