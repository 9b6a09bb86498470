package encryption

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"github.com/idelchi/gogen/pkg/key"
)

// KeySize is the size in bytes of the keys used by every scheme.
const KeySize = 32

// GenerateKey returns KeySize fresh random bytes.
func GenerateKey() ([]byte, error) {
	k := make([]byte, KeySize)
	if _, err := io.ReadFull(rand.Reader, k); err != nil {
		return nil, fmt.Errorf("generating key: %w", err)
	}

	return k, nil
}

// Encrypt seals plaintext under key with the given scheme and returns header ‖ body.
func Encrypt(scheme Scheme, k, plaintext []byte) ([]byte, error) {
	if len(k) != KeySize {
		return nil, fmt.Errorf("%w: need %d bytes, got %d", ErrInvalidKey, KeySize, len(k))
	}

	s, err := scheme.lookup()
	if err != nil {
		return nil, err
	}

	header := newEnvelopeHeader(scheme)

	body, err := s.seal(k, header, plaintext)
	if err != nil {
		return nil, fmt.Errorf("encrypting with %s: %w", scheme, err)
	}

	return append(header, body...), nil
}

// Decrypt authenticates and opens a ciphertext produced by Encrypt.
// The scheme is taken from the envelope header.
func Decrypt(k, ciphertext []byte) ([]byte, error) {
	if len(k) != KeySize {
		return nil, fmt.Errorf("%w: need %d bytes, got %d", ErrInvalidKey, KeySize, len(k))
	}

	scheme, header, body, err := parseEnvelopeHeader(ciphertext)
	if err != nil {
		return nil, err
	}

	s, err := scheme.lookup()
	if err != nil {
		return nil, err
	}

	plaintext, err := s.open(k, header, body)
	if err != nil {
		return nil, fmt.Errorf("decrypting with %s: %w", scheme, err)
	}

	return plaintext, nil
}

// EncodeKey renders a key as the hex text stored in the key part.
func EncodeKey(k []byte) []byte {
	return []byte(hex.EncodeToString(k))
}

// DecodeKey parses the hex text of a key part. Surrounding whitespace is ignored.
func DecodeKey(data []byte) ([]byte, error) {
	k, err := key.FromHex(strings.TrimSpace(string(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidKey, err)
	}

	if len(k) != KeySize {
		return nil, fmt.Errorf("%w: need %d bytes, got %d", ErrInvalidKey, KeySize, len(k))
	}

	return k, nil
}
