package manifest

import (
	"crypto/sha256"
	"encoding/hex"
)

// DigestSize is the length of a hex-encoded digest.
const DigestSize = sha256.Size * 2

// Digest returns the lower-case hex SHA-256 of data.
func Digest(data []byte) string {
	sum := sha256.Sum256(data)

	return hex.EncodeToString(sum[:])
}

func validDigest(digest string) bool {
	if len(digest) != DigestSize {
		return false
	}

	_, err := hex.DecodeString(digest)

	return err == nil
}
