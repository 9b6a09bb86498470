package encryption

import "errors"

var (
	// ErrInvalidKey is returned when a key has the wrong size or encoding.
	ErrInvalidKey = errors.New("invalid key")
	// ErrAuthentication is returned when a ciphertext fails authentication.
	ErrAuthentication = errors.New("message authentication failed")
	// ErrUnknownScheme is returned for scheme names or identifiers that are not supported.
	ErrUnknownScheme = errors.New("unknown scheme")
)
