package shard

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Part is a named byte buffer: the key, the manifest or a chunk.
type Part struct {
	Name string
	Data []byte
}

// Source resolves parts by name. A part that does not exist is reported
// with an error wrapping fs.ErrNotExist.
type Source interface {
	Get(name string) ([]byte, error)
}

// Parts is an in-memory Source.
type Parts map[string][]byte

// NewParts indexes parts by name.
func NewParts(parts ...Part) Parts {
	p := make(Parts, len(parts))

	for _, part := range parts {
		p[part.Name] = part.Data
	}

	return p
}

// Get implements Source.
func (p Parts) Get(name string) ([]byte, error) {
	data, ok := p[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, fs.ErrNotExist)
	}

	return data, nil
}

// Dir is a Source backed by the files of a directory.
type Dir string

// Get implements Source. Names are resolved inside the directory only.
func (d Dir) Get(name string) ([]byte, error) {
	if name != filepath.Base(name) {
		return nil, fmt.Errorf("%q: %w", name, fs.ErrNotExist)
	}

	data, err := os.ReadFile(filepath.Join(string(d), name))
	if err != nil {
		return nil, fmt.Errorf("reading part: %w", err)
	}

	return data, nil
}

// fetch retrieves a part and classifies absent or empty parts as missing.
func fetch(source Source, name string) ([]byte, error) {
	data, err := source.Get(name)

	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, partError(ErrMissingPart, name, nil)
	case err != nil:
		return nil, fmt.Errorf("reading %q: %w", name, err)
	case len(data) == 0:
		return nil, partError(ErrMissingPart, name, errors.New("part is empty"))
	}

	return data, nil
}
