package manifest

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/jsonc"
)

// ChunkHash records the digest of a single chunk.
type ChunkHash struct {
	// Filename is the chunk identifier.
	Filename string `json:"filename"`

	// Hash is the hex-encoded digest of the chunk's ciphertext bytes.
	Hash string `json:"hash"`
}

// Manifest describes the reconstruction order and verification hashes of a split.
//
// ChunkHashes is a list rather than a map so the serialized form has an unambiguous order.
type Manifest struct {
	OriginalFilename string      `json:"original_filename"`
	ChunkOrder       []string    `json:"chunk_order"`
	ChunkHashes      []ChunkHash `json:"chunk_hashes"`
}

// New builds a manifest whose chunk order follows the order of hashes.
// The result is validated before it is returned.
func New(filename string, hashes []ChunkHash) (*Manifest, error) {
	manifest := &Manifest{
		OriginalFilename: filename,
		ChunkOrder:       make([]string, len(hashes)),
		ChunkHashes:      make([]ChunkHash, len(hashes)),
	}

	copy(manifest.ChunkHashes, hashes)

	for i, h := range hashes {
		manifest.ChunkOrder[i] = h.Filename
	}

	if err := manifest.Validate(); err != nil {
		return nil, err
	}

	return manifest, nil
}

// Parse decodes and validates a serialized manifest.
// Comments and trailing commas are tolerated so hand-edited manifests still load.
func Parse(data []byte) (*Manifest, error) {
	clean := jsonc.ToJSON(data)

	var manifest Manifest
	if err := json.Unmarshal(clean, &manifest); err != nil {
		return nil, fmt.Errorf("%w: decoding: %w", ErrMalformed, err)
	}

	if err := manifest.Validate(); err != nil {
		return nil, err
	}

	return &manifest, nil
}

// Validate checks that chunk_order and chunk_hashes reference exactly the same identifiers.
func (m *Manifest) Validate() error {
	if len(m.ChunkOrder) == 0 {
		return fmt.Errorf("%w: chunk_order is empty", ErrMalformed)
	}

	hashes := make(map[string]struct{}, len(m.ChunkHashes))

	for i, h := range m.ChunkHashes {
		if err := validChunkName(h.Filename); err != nil {
			return fmt.Errorf("%w: chunk_hashes[%d]: %w", ErrMalformed, i, err)
		}

		if !validDigest(h.Hash) {
			return fmt.Errorf("%w: chunk_hashes[%d]: invalid hash for %q", ErrMalformed, i, h.Filename)
		}

		if _, ok := hashes[h.Filename]; ok {
			return fmt.Errorf("%w: duplicate hash entry for %q", ErrMalformed, h.Filename)
		}

		hashes[h.Filename] = struct{}{}
	}

	seen := make(map[string]struct{}, len(m.ChunkOrder))

	for _, name := range m.ChunkOrder {
		if _, ok := seen[name]; ok {
			return fmt.Errorf("%w: %q appears more than once in chunk_order", ErrMalformed, name)
		}

		seen[name] = struct{}{}

		if _, ok := hashes[name]; !ok {
			return fmt.Errorf("%w: no hash recorded for %q", ErrMalformed, name)
		}
	}

	if len(seen) != len(hashes) {
		return fmt.Errorf("%w: chunk_hashes lists chunks missing from chunk_order", ErrMalformed)
	}

	return nil
}

// Marshal serializes the manifest as indented JSON.
func (m *Manifest) Marshal() ([]byte, error) {
	data, err := json.MarshalIndent(m, "", "    ")
	if err != nil {
		return nil, fmt.Errorf("encoding manifest: %w", err)
	}

	return data, nil
}

// Hashes returns a lookup from chunk identifier to recorded digest.
func (m *Manifest) Hashes() map[string]string {
	lookup := make(map[string]string, len(m.ChunkHashes))

	for _, h := range m.ChunkHashes {
		lookup[h.Filename] = h.Hash
	}

	return lookup
}

// Filename returns the original filename, or DefaultFilename when none was recorded.
func (m *Manifest) Filename() string {
	if m.OriginalFilename == "" {
		return DefaultFilename
	}

	return m.OriginalFilename
}
