package encryption

import (
	"crypto/rand"
	"fmt"
	"io"

	"golang.org/x/crypto/chacha20poly1305"
)

// xchachaSealer produces nonce ‖ ciphertext ‖ tag using XChaCha20-Poly1305.
type xchachaSealer struct{}

func (xchachaSealer) overhead() int {
	return chacha20poly1305.NonceSizeX + chacha20poly1305.Overhead
}

func (xchachaSealer) seal(key, header, plaintext []byte) ([]byte, error) {
	primitive, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("creating AEAD: %w", err)
	}

	nonce := make([]byte, primitive.NonceSize(), primitive.NonceSize()+len(plaintext)+primitive.Overhead())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("generating nonce: %w", err)
	}

	return primitive.Seal(nonce, nonce, plaintext, header), nil
}

func (xchachaSealer) open(key, header, body []byte) ([]byte, error) {
	primitive, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("creating AEAD: %w", err)
	}

	if len(body) < primitive.NonceSize()+primitive.Overhead() {
		return nil, fmt.Errorf("%w: ciphertext too short", ErrAuthentication)
	}

	nonce, ciphertext := body[:primitive.NonceSize()], body[primitive.NonceSize():]

	plaintext, err := primitive.Open(nil, nonce, ciphertext, header)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAuthentication, err)
	}

	return plaintext, nil
}
