package fileutil_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idelchi/gosplit/internal/fileutil"
	"github.com/idelchi/gosplit/internal/shard"
)

func TestWriteFileAtomic(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out.bin")

	require.NoError(t, fileutil.WriteFileAtomic(path, []byte("first"), 0o600))
	require.NoError(t, fileutil.WriteFileAtomic(path, []byte("second"), 0o600))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files must not be left behind")

	size, err := fileutil.OutputSize(path)
	require.NoError(t, err)
	assert.EqualValues(t, 6, size)
}

func TestWriteFileAtomicMissingDir(t *testing.T) {
	t.Parallel()

	err := fileutil.WriteFileAtomic(filepath.Join(t.TempDir(), "nope", "out.bin"), []byte("x"), 0o600)
	assert.Error(t, err)
}

func TestWriteParts(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "parts")
	parts := []shard.Part{
		{Name: "manifest.json", Data: []byte("{}")},
		{Name: "chunk_1.bin", Data: []byte{1, 2, 3}},
	}

	require.NoError(t, fileutil.WriteParts(dir, parts))

	for _, part := range parts {
		data, err := os.ReadFile(filepath.Join(dir, part.Name))
		require.NoError(t, err)
		assert.Equal(t, part.Data, data)
	}

	err := fileutil.WriteParts(dir, []shard.Part{{Name: "../escape.bin", Data: []byte("x")}})
	assert.Error(t, err)
}

func TestScopedDir(t *testing.T) {
	t.Parallel()

	scoped, err := fileutil.NewScopedDir(t.TempDir(), "join-*")
	require.NoError(t, err)

	path := scoped.Path
	require.NoError(t, os.WriteFile(filepath.Join(path, "chunk_1.bin"), []byte("x"), 0o600))

	require.NoError(t, scoped.Close())
	require.NoError(t, scoped.Close())

	exists, err := fileutil.Exists(path)
	require.NoError(t, err)
	assert.False(t, exists)
}
