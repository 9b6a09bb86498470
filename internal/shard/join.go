package shard

import (
	"fmt"

	"github.com/idelchi/gosplit/internal/encryption"
	"github.com/idelchi/gosplit/internal/manifest"
)

// Joined is the outcome of a successful join.
type Joined struct {
	// Filename is the original filename from the manifest, or manifest.DefaultFilename.
	Filename string

	// Data is the decrypted plaintext.
	Data []byte
}

// JoinParts reads the key and the manifest from source and joins the chunks they describe.
func JoinParts(source Source, opts Options) (*Joined, error) {
	keyData, err := fetch(source, manifest.KeyName)
	if err != nil {
		return nil, err
	}

	m, err := LoadManifest(source)
	if err != nil {
		return nil, err
	}

	key, err := encryption.DecodeKey(keyData)
	if err != nil {
		return nil, partError(ErrDecryption, manifest.KeyName, err)
	}

	return Join(key, m, source, opts)
}

// LoadManifest reads and parses the manifest part of source.
func LoadManifest(source Source) (*manifest.Manifest, error) {
	data, err := fetch(source, manifest.ManifestName)
	if err != nil {
		return nil, err
	}

	m, err := manifest.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", manifest.ManifestName, err)
	}

	return m, nil
}

// Join verifies the chunks named by m, concatenates them in chunk_order and decrypts the result.
//
// Chunks are checked in order; the first missing or corrupt chunk aborts the join
// before its bytes reach the reassembly buffer. Nothing is returned on failure.
func Join(key []byte, m *manifest.Manifest, source Source, opts Options) (*Joined, error) {
	if m == nil {
		return nil, partError(ErrMissingPart, manifest.ManifestName, nil)
	}

	if len(key) == 0 {
		return nil, partError(ErrMissingPart, manifest.KeyName, nil)
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}

	chunks, missing := collect(m, source)

	ciphertext, err := assemble(m, chunks, opts.limit())
	if err != nil {
		return nil, err
	}

	// Every chunk before the missing one verified, so the missing one is the first failure.
	if missing != nil {
		return nil, missing
	}

	plaintext, err := encryption.Decrypt(key, ciphertext)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecryption, err)
	}

	return &Joined{
		Filename: m.Filename(),
		Data:     plaintext,
	}, nil
}

// collect fetches chunks in chunk_order up to the first one that cannot be read.
// The returned slice holds only the chunks before that point.
func collect(m *manifest.Manifest, source Source) ([]Part, error) {
	chunks := make([]Part, 0, len(m.ChunkOrder))

	for _, name := range m.ChunkOrder {
		data, err := fetch(source, name)
		if err != nil {
			return chunks, err
		}

		chunks = append(chunks, Part{Name: name, Data: data})
	}

	return chunks, nil
}

// assemble hashes the chunks concurrently, then compares and appends them in a single
// ordered pass.
func assemble(m *manifest.Manifest, chunks []Part, limit int) ([]byte, error) {
	digests, err := digestAll(chunks, limit)
	if err != nil {
		return nil, err
	}

	recorded := m.Hashes()

	size := 0
	for _, chunk := range chunks {
		size += len(chunk.Data)
	}

	ciphertext := make([]byte, 0, size)

	for i, chunk := range chunks {
		if digests[i].Hash != recorded[chunk.Name] {
			return nil, partError(ErrIntegrity, chunk.Name,
				fmt.Errorf("digest %s does not match recorded %s", digests[i].Hash, recorded[chunk.Name]))
		}

		ciphertext = append(ciphertext, chunk.Data...)
	}

	return ciphertext, nil
}

// Verify checks every chunk named by m against its recorded digest without decrypting.
// It reports the first missing or corrupt chunk in chunk_order.
func Verify(m *manifest.Manifest, source Source, opts Options) error {
	if m == nil {
		return partError(ErrMissingPart, manifest.ManifestName, nil)
	}

	if err := m.Validate(); err != nil {
		return err
	}

	chunks, missing := collect(m, source)

	if _, err := assemble(m, chunks, opts.limit()); err != nil {
		return err
	}

	return missing
}
