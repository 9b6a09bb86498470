package shard

import (
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/idelchi/gosplit/internal/encryption"
	"github.com/idelchi/gosplit/internal/manifest"
)

// Result holds everything produced by a split.
type Result struct {
	// Key is the raw encryption key.
	Key []byte

	// Manifest describes chunk order and digests.
	Manifest *manifest.Manifest

	// Chunks are the ciphertext slices in generation order.
	Chunks []Part
}

// Split encrypts data under a fresh key and cuts the ciphertext into pieces chunks.
// The number of pieces is checked against the ciphertext length, which exceeds
// the plaintext length by the scheme overhead.
func Split(filename string, data []byte, pieces int, opts Options) (*Result, error) {
	if pieces < 1 {
		return nil, fmt.Errorf("%w: pieces must be at least 1, got %d", ErrInsufficientData, pieces)
	}

	key, err := encryption.GenerateKey()
	if err != nil {
		return nil, err
	}

	ciphertext, err := encryption.Encrypt(opts.Scheme, key, data)
	if err != nil {
		return nil, fmt.Errorf("encrypting data: %w", err)
	}

	if len(ciphertext) < pieces {
		return nil, fmt.Errorf("%w: ciphertext of %d bytes cannot be split into %d pieces",
			ErrInsufficientData, len(ciphertext), pieces)
	}

	chunks := cut(ciphertext, pieces)

	hashes, err := digestAll(chunks, opts.limit())
	if err != nil {
		return nil, err
	}

	m, err := manifest.New(filename, hashes)
	if err != nil {
		return nil, err
	}

	return &Result{
		Key:      key,
		Manifest: m,
		Chunks:   chunks,
	}, nil
}

// cut slices ciphertext into pieces contiguous chunks of len/pieces bytes,
// the last one taking the remainder as well.
func cut(ciphertext []byte, pieces int) []Part {
	base := len(ciphertext) / pieces
	remainder := len(ciphertext) % pieces

	chunks := make([]Part, pieces)
	offset := 0

	for i := range pieces {
		size := base
		if i == pieces-1 {
			size += remainder
		}

		chunks[i] = Part{
			Name: manifest.ChunkName(i),
			Data: ciphertext[offset : offset+size : offset+size],
		}

		offset += size
	}

	return chunks
}

// digestAll hashes every chunk concurrently and returns the digests in chunk order.
func digestAll(chunks []Part, limit int) ([]manifest.ChunkHash, error) {
	hashes := make([]manifest.ChunkHash, len(chunks))

	group := errgroup.Group{}
	group.SetLimit(limit)

	for i, chunk := range chunks {
		group.Go(func() error {
			hashes[i] = manifest.ChunkHash{Filename: chunk.Name, Hash: manifest.Digest(chunk.Data)}

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, fmt.Errorf("hashing chunks: %w", err)
	}

	return hashes, nil
}

// Parts returns the named buffers of the split: key, manifest, then chunks in order.
func (r *Result) Parts() ([]Part, error) {
	manifestData, err := r.Manifest.Marshal()
	if err != nil {
		return nil, err
	}

	parts := make([]Part, 0, len(r.Chunks)+2)
	parts = append(parts,
		Part{Name: manifest.KeyName, Data: encryption.EncodeKey(r.Key)},
		Part{Name: manifest.ManifestName, Data: manifestData},
	)

	return append(parts, r.Chunks...), nil
}

// Size returns the total number of ciphertext bytes across all chunks.
func (r *Result) Size() int {
	total := 0

	for _, chunk := range r.Chunks {
		total += len(chunk.Data)
	}

	return total
}
