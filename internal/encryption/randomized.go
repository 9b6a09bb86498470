package encryption

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

const ctrHMACTagSize = sha256.Size

// ctrHMACSealer is encrypt-then-MAC: body = IV ‖ AES-CTR(plaintext) ‖ HMAC(header ‖ IV ‖ ciphertext).
type ctrHMACSealer struct{}

func (ctrHMACSealer) overhead() int {
	return aes.BlockSize + ctrHMACTagSize
}

func (ctrHMACSealer) seal(key, header, plaintext []byte) ([]byte, error) {
	encKey, macKey, err := deriveCTRHMACKeys(key)
	if err != nil {
		return nil, err
	}

	block, err := aes.NewCipher(encKey)
	if err != nil {
		return nil, fmt.Errorf("creating cipher: %w", err)
	}

	body := make([]byte, aes.BlockSize+len(plaintext), aes.BlockSize+len(plaintext)+ctrHMACTagSize)

	initializationVector := body[:aes.BlockSize]
	if _, err := io.ReadFull(rand.Reader, initializationVector); err != nil {
		return nil, fmt.Errorf("generating IV: %w", err)
	}

	cipher.NewCTR(block, initializationVector).XORKeyStream(body[aes.BlockSize:], plaintext)

	mac := hmac.New(sha256.New, macKey)
	mac.Write(header)
	mac.Write(body)

	return mac.Sum(body), nil
}

func (ctrHMACSealer) open(key, header, body []byte) ([]byte, error) {
	if len(body) < aes.BlockSize+ctrHMACTagSize {
		return nil, fmt.Errorf("%w: ciphertext too short", ErrAuthentication)
	}

	encKey, macKey, err := deriveCTRHMACKeys(key)
	if err != nil {
		return nil, err
	}

	signed, tag := body[:len(body)-ctrHMACTagSize], body[len(body)-ctrHMACTagSize:]

	mac := hmac.New(sha256.New, macKey)
	mac.Write(header)
	mac.Write(signed)

	if !hmac.Equal(mac.Sum(nil), tag) {
		return nil, fmt.Errorf("%w: tag mismatch", ErrAuthentication)
	}

	block, err := aes.NewCipher(encKey)
	if err != nil {
		return nil, fmt.Errorf("creating cipher: %w", err)
	}

	initializationVector, ciphertext := signed[:aes.BlockSize], signed[aes.BlockSize:]

	plaintext := make([]byte, len(ciphertext))
	cipher.NewCTR(block, initializationVector).XORKeyStream(plaintext, ciphertext)

	return plaintext, nil
}

func deriveCTRHMACKeys(key []byte) ([]byte, []byte, error) {
	const (
		hkdfOutputLen = 64
		encKeyLen     = 32
	)

	hkdfReader := hkdf.New(sha256.New, key, nil, []byte("gosplit/ctr-hmac"))
	derived := make([]byte, hkdfOutputLen)

	if _, err := io.ReadFull(hkdfReader, derived); err != nil {
		return nil, nil, fmt.Errorf("deriving keys: %w", err)
	}

	return derived[:encKeyLen], derived[encKeyLen:], nil
}
