// Package archive bundles split parts into a zip file and reads them back.
// Entries are stored without compression: ciphertext does not compress.
package archive

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/klauspost/compress/zip"

	"github.com/idelchi/gosplit/internal/shard"
)

// ErrTooLarge is returned when an archive entry exceeds the configured limit.
var ErrTooLarge = errors.New("archive entry too large")

// Write stores parts in a zip archive written to w, in the given order.
func Write(w io.Writer, parts []shard.Part, modified time.Time) error {
	zw := zip.NewWriter(w)

	for _, part := range parts {
		entry, err := zw.CreateHeader(&zip.FileHeader{
			Name:     part.Name,
			Method:   zip.Store,
			Modified: modified,
		})
		if err != nil {
			return fmt.Errorf("adding %q: %w", part.Name, err)
		}

		if _, err := entry.Write(part.Data); err != nil {
			return fmt.Errorf("writing %q: %w", part.Name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("finalizing archive: %w", err)
	}

	return nil
}

// Bytes renders parts as an in-memory zip archive.
func Bytes(parts []shard.Part, modified time.Time) ([]byte, error) {
	var buf bytes.Buffer

	if err := Write(&buf, parts, modified); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// Read loads every file entry of a zip archive, keyed by its base name.
// Entries larger than limit bytes are rejected; a limit of 0 disables the check.
func Read(r io.ReaderAt, size, limit int64) (shard.Parts, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("opening archive: %w", err)
	}

	parts := make(shard.Parts, len(zr.File))

	for _, file := range zr.File {
		if file.FileInfo().IsDir() {
			continue
		}

		name := path.Base(file.Name)

		if _, ok := parts[name]; ok {
			return nil, fmt.Errorf("archive contains %q more than once", name)
		}

		data, err := readEntry(file, limit)
		if err != nil {
			return nil, err
		}

		parts[name] = data
	}

	return parts, nil
}

func readEntry(file *zip.File, limit int64) ([]byte, error) {
	if limit > 0 && file.UncompressedSize64 > uint64(limit) {
		return nil, fmt.Errorf("%w: %q", ErrTooLarge, file.Name)
	}

	rc, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("opening %q: %w", file.Name, err)
	}
	defer rc.Close()

	reader := io.Reader(rc)
	if limit > 0 {
		reader = io.LimitReader(rc, limit+1)
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", file.Name, err)
	}

	if limit > 0 && int64(len(data)) > limit {
		return nil, fmt.Errorf("%w: %q", ErrTooLarge, file.Name)
	}

	return data, nil
}
