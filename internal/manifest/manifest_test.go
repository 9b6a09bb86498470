package manifest_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/idelchi/gosplit/internal/manifest"
)

func hashes(names ...string) []manifest.ChunkHash {
	out := make([]manifest.ChunkHash, len(names))

	for i, name := range names {
		out[i] = manifest.ChunkHash{Filename: name, Hash: manifest.Digest([]byte(name))}
	}

	return out
}

func TestNewPreservesOrder(t *testing.T) {
	t.Parallel()

	m, err := manifest.New("report.pdf", hashes("chunk_1.bin", "chunk_2.bin", "chunk_3.bin"))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	want := []string{"chunk_1.bin", "chunk_2.bin", "chunk_3.bin"}
	for i, name := range want {
		if m.ChunkOrder[i] != name {
			t.Errorf("ChunkOrder[%d] = %q, want %q", i, m.ChunkOrder[i], name)
		}
	}
}

func TestRoundTripSerialization(t *testing.T) {
	t.Parallel()

	m, err := manifest.New("a b.txt", hashes("chunk_1.bin", "chunk_2.bin"))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	data, err := m.Marshal()
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}

	for _, field := range []string{`"original_filename"`, `"chunk_order"`, `"chunk_hashes"`, `"filename"`, `"hash"`} {
		if !strings.Contains(string(data), field) {
			t.Errorf("serialized manifest lacks %s:\n%s", field, data)
		}
	}

	parsed, err := manifest.Parse(data)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	if parsed.OriginalFilename != "a b.txt" || len(parsed.ChunkOrder) != 2 {
		t.Errorf("Parse() = %+v", parsed)
	}
}

func TestParseToleratesComments(t *testing.T) {
	t.Parallel()

	digest := manifest.Digest([]byte("x"))
	data := []byte(`{
		// edited by hand
		"original_filename": "x",
		"chunk_order": ["chunk_1.bin",],
		"chunk_hashes": [{"filename": "chunk_1.bin", "hash": "` + digest + `"}],
	}`)

	if _, err := manifest.Parse(data); err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
}

func TestValidateRejectsInconsistentManifests(t *testing.T) {
	t.Parallel()

	digest := manifest.Digest(nil)

	tests := []struct {
		name     string
		manifest manifest.Manifest
	}{
		{
			name:     "empty order",
			manifest: manifest.Manifest{},
		},
		{
			name: "order references unknown chunk",
			manifest: manifest.Manifest{
				ChunkOrder:  []string{"chunk_1.bin", "chunk_2.bin"},
				ChunkHashes: []manifest.ChunkHash{{Filename: "chunk_1.bin", Hash: digest}},
			},
		},
		{
			name: "hash without order entry",
			manifest: manifest.Manifest{
				ChunkOrder: []string{"chunk_1.bin"},
				ChunkHashes: []manifest.ChunkHash{
					{Filename: "chunk_1.bin", Hash: digest},
					{Filename: "chunk_2.bin", Hash: digest},
				},
			},
		},
		{
			name: "duplicate order entry",
			manifest: manifest.Manifest{
				ChunkOrder:  []string{"chunk_1.bin", "chunk_1.bin"},
				ChunkHashes: []manifest.ChunkHash{{Filename: "chunk_1.bin", Hash: digest}},
			},
		},
		{
			name: "reserved chunk name",
			manifest: manifest.Manifest{
				ChunkOrder:  []string{manifest.ManifestName},
				ChunkHashes: []manifest.ChunkHash{{Filename: manifest.ManifestName, Hash: digest}},
			},
		},
		{
			name: "path separator",
			manifest: manifest.Manifest{
				ChunkOrder:  []string{"../chunk_1.bin"},
				ChunkHashes: []manifest.ChunkHash{{Filename: "../chunk_1.bin", Hash: digest}},
			},
		},
		{
			name: "invalid hash",
			manifest: manifest.Manifest{
				ChunkOrder:  []string{"chunk_1.bin"},
				ChunkHashes: []manifest.ChunkHash{{Filename: "chunk_1.bin", Hash: "zz"}},
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			err := tc.manifest.Validate()
			if !errors.Is(err, manifest.ErrMalformed) {
				t.Errorf("Validate() = %v, want ErrMalformed", err)
			}
		})
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	t.Parallel()

	if _, err := manifest.Parse([]byte("not json")); !errors.Is(err, manifest.ErrMalformed) {
		t.Errorf("Parse() = %v, want ErrMalformed", err)
	}
}

func TestFilenameFallback(t *testing.T) {
	t.Parallel()

	m := manifest.Manifest{}
	if got := m.Filename(); got != manifest.DefaultFilename {
		t.Errorf("Filename() = %q, want %q", got, manifest.DefaultFilename)
	}
}

func TestChunkName(t *testing.T) {
	t.Parallel()

	if got := manifest.ChunkName(0); got != "chunk_1.bin" {
		t.Errorf("ChunkName(0) = %q", got)
	}

	if got := manifest.ChunkName(11); got != "chunk_12.bin" {
		t.Errorf("ChunkName(11) = %q", got)
	}
}
