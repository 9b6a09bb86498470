package shard_test

import (
	"bytes"
	"errors"
	"os"
	"testing"

	"github.com/goccy/go-yaml"

	"github.com/idelchi/gosplit/internal/encryption"
	"github.com/idelchi/gosplit/internal/manifest"
	"github.com/idelchi/gosplit/internal/shard"
)

// Case is a single chunk-boundary expectation from testdata/boundaries.yml.
type Case struct {
	Description string `yaml:"description"`
	Plaintext   int    `yaml:"plaintext"`
	Pieces      int    `yaml:"pieces"`
	Ciphertext  int    `yaml:"ciphertext"`
	Base        int    `yaml:"base"`
	Last        int    `yaml:"last"`
	Error       bool   `yaml:"error"`
}

// Group collects the cases of one scheme.
type Group struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
	Cases       []Case `yaml:"cases"`
}

func loadBoundaries(t *testing.T) []Group {
	t.Helper()

	data, err := os.ReadFile("testdata/boundaries.yml")
	if err != nil {
		t.Fatalf("reading testdata: %v", err)
	}

	var groups []Group
	if err := yaml.Unmarshal(data, &groups); err != nil {
		t.Fatalf("parsing testdata: %v", err)
	}

	return groups
}

func options(t *testing.T, name string) shard.Options {
	t.Helper()

	scheme, err := encryption.ParseScheme(name)
	if err != nil {
		t.Fatalf("ParseScheme(%q) error: %v", name, err)
	}

	opts := shard.DefaultOptions()
	opts.Scheme = scheme

	return opts
}

func TestSplitBoundaries(t *testing.T) {
	t.Parallel()

	for _, group := range loadBoundaries(t) {
		t.Run(group.Name, func(t *testing.T) {
			t.Parallel()

			opts := options(t, group.Name)

			for _, tc := range group.Cases {
				t.Run(tc.Description, func(t *testing.T) {
					t.Parallel()

					data := bytes.Repeat([]byte{'a'}, tc.Plaintext)

					result, err := shard.Split("data.bin", data, tc.Pieces, opts)
					if tc.Error {
						if !errors.Is(err, shard.ErrInsufficientData) {
							t.Fatalf("Split() = %v, want ErrInsufficientData", err)
						}

						return
					}

					if err != nil {
						t.Fatalf("Split() error: %v", err)
					}

					if len(result.Chunks) != tc.Pieces {
						t.Fatalf("got %d chunks, want %d", len(result.Chunks), tc.Pieces)
					}

					if result.Size() != tc.Ciphertext {
						t.Errorf("chunk sizes sum to %d, want %d", result.Size(), tc.Ciphertext)
					}

					for i, chunk := range result.Chunks[:len(result.Chunks)-1] {
						if len(chunk.Data) != tc.Base {
							t.Errorf("chunk %d has %d bytes, want %d", i, len(chunk.Data), tc.Base)
						}
					}

					if last := result.Chunks[len(result.Chunks)-1]; len(last.Data) != tc.Last {
						t.Errorf("last chunk has %d bytes, want %d", len(last.Data), tc.Last)
					}

					joined, err := shard.Join(result.Key, result.Manifest, shard.NewParts(result.Chunks...), opts)
					if err != nil {
						t.Fatalf("Join() error: %v", err)
					}

					if !bytes.Equal(joined.Data, data) {
						t.Errorf("Join() returned %d bytes, want %d", len(joined.Data), len(data))
					}
				})
			}
		})
	}
}

func TestSplitManifest(t *testing.T) {
	t.Parallel()

	result, err := shard.Split("notes.txt", []byte("some notes worth keeping"), 4, shard.DefaultOptions())
	if err != nil {
		t.Fatalf("Split() error: %v", err)
	}

	m := result.Manifest

	if m.OriginalFilename != "notes.txt" {
		t.Errorf("OriginalFilename = %q", m.OriginalFilename)
	}

	for i, chunk := range result.Chunks {
		if chunk.Name != manifest.ChunkName(i) {
			t.Errorf("chunk %d named %q, want %q", i, chunk.Name, manifest.ChunkName(i))
		}

		if m.ChunkOrder[i] != chunk.Name {
			t.Errorf("ChunkOrder[%d] = %q, want %q", i, m.ChunkOrder[i], chunk.Name)
		}

		if m.ChunkHashes[i].Hash != manifest.Digest(chunk.Data) {
			t.Errorf("ChunkHashes[%d] does not match chunk bytes", i)
		}
	}

	if len(result.Key) != encryption.KeySize {
		t.Errorf("key has %d bytes, want %d", len(result.Key), encryption.KeySize)
	}
}

func TestSplitUsesFreshKeys(t *testing.T) {
	t.Parallel()

	first, err := shard.Split("a", []byte("same input"), 2, shard.DefaultOptions())
	if err != nil {
		t.Fatalf("Split() error: %v", err)
	}

	second, err := shard.Split("a", []byte("same input"), 2, shard.DefaultOptions())
	if err != nil {
		t.Fatalf("Split() error: %v", err)
	}

	if bytes.Equal(first.Key, second.Key) {
		t.Error("two splits produced the same key")
	}
}

func TestResultParts(t *testing.T) {
	t.Parallel()

	result, err := shard.Split("a", []byte("hello, world"), 3, shard.DefaultOptions())
	if err != nil {
		t.Fatalf("Split() error: %v", err)
	}

	parts, err := result.Parts()
	if err != nil {
		t.Fatalf("Parts() error: %v", err)
	}

	want := []string{manifest.KeyName, manifest.ManifestName, "chunk_1.bin", "chunk_2.bin", "chunk_3.bin"}
	if len(parts) != len(want) {
		t.Fatalf("got %d parts, want %d", len(parts), len(want))
	}

	for i, name := range want {
		if parts[i].Name != name {
			t.Errorf("parts[%d] = %q, want %q", i, parts[i].Name, name)
		}
	}

	joined, err := shard.JoinParts(shard.NewParts(parts...), shard.DefaultOptions())
	if err != nil {
		t.Fatalf("JoinParts() error: %v", err)
	}

	if string(joined.Data) != "hello, world" || joined.Filename != "a" {
		t.Errorf("JoinParts() = %q, %q", joined.Filename, joined.Data)
	}
}
