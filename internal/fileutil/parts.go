package fileutil

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/idelchi/gosplit/internal/shard"
)

const ownerReadWrite = 0o600

// WriteParts writes every part into dir, creating dir if needed.
// Each file is written atomically.
func WriteParts(dir string, parts []shard.Part) error {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("creating %q: %w", dir, err)
	}

	for _, part := range parts {
		if part.Name != filepath.Base(part.Name) {
			return fmt.Errorf("part name %q is not a plain file name", part.Name)
		}

		if err := WriteFileAtomic(filepath.Join(dir, part.Name), part.Data, ownerReadWrite); err != nil {
			return err
		}
	}

	return nil
}
