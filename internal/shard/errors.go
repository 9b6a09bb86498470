package shard

import (
	"errors"
	"fmt"

	"github.com/idelchi/gosplit/internal/manifest"
)

var (
	// ErrInsufficientData is returned when the ciphertext cannot fill the requested number of chunks.
	ErrInsufficientData = errors.New("insufficient data")
	// ErrMissingPart is returned when the key, the manifest or a referenced chunk is absent.
	ErrMissingPart = errors.New("missing part")
	// ErrMalformedManifest is returned for manifests with missing or inconsistent fields.
	ErrMalformedManifest = manifest.ErrMalformed
	// ErrIntegrity is returned when a chunk does not match its recorded digest.
	ErrIntegrity = errors.New("integrity check failed")
	// ErrDecryption is returned when the reassembled ciphertext fails authenticated decryption.
	ErrDecryption = errors.New("decryption failed")
)

// PartError reports a failure tied to one named part.
// It matches both its Kind and its cause with errors.Is.
type PartError struct {
	// Kind is one of the package sentinel errors.
	Kind error

	// Name is the part the failure refers to.
	Name string

	// Err is the underlying cause, if any.
	Err error
}

func (e *PartError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%v: %s: %v", e.Kind, e.Name, e.Err)
	}

	return fmt.Sprintf("%v: %s", e.Kind, e.Name)
}

func (e *PartError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}

	return []error{e.Kind, e.Err}
}

func partError(kind error, name string, err error) error {
	return &PartError{Kind: kind, Name: name, Err: err}
}
