package encryption

import (
	"fmt"
	"strings"
)

// Scheme identifies an authenticated encryption construction.
// The numeric value is stored in the envelope header.
type Scheme byte

const (
	// SchemeGCM is AES-256-GCM.
	SchemeGCM Scheme = 0x01
	// SchemeCTRHMAC is AES-256-CTR followed by HMAC-SHA256 over header, IV and ciphertext.
	SchemeCTRHMAC Scheme = 0x02
	// SchemeXChaCha20 is XChaCha20-Poly1305.
	SchemeXChaCha20 Scheme = 0x03
)

// DefaultScheme is used when no scheme is configured.
const DefaultScheme = SchemeGCM

// sealer is implemented by every scheme.
type sealer interface {
	seal(key, header, plaintext []byte) ([]byte, error)
	open(key, header, body []byte) ([]byte, error)
	overhead() int
}

//nolint:gochecknoglobals
var schemes = map[Scheme]struct {
	name   string
	sealer sealer
}{
	SchemeGCM:       {name: "gcm", sealer: gcmSealer{}},
	SchemeCTRHMAC:   {name: "ctr-hmac", sealer: ctrHMACSealer{}},
	SchemeXChaCha20: {name: "xchacha20", sealer: xchachaSealer{}},
}

// Schemes returns the names of all supported schemes.
func Schemes() []string {
	return []string{
		SchemeGCM.String(),
		SchemeCTRHMAC.String(),
		SchemeXChaCha20.String(),
	}
}

// ParseScheme resolves a scheme by name. An empty name selects DefaultScheme.
func ParseScheme(name string) (Scheme, error) {
	if name == "" {
		return DefaultScheme, nil
	}

	for scheme, s := range schemes {
		if strings.EqualFold(s.name, name) {
			return scheme, nil
		}
	}

	return 0, fmt.Errorf("%w: %q (supported: %s)", ErrUnknownScheme, name, strings.Join(Schemes(), ", "))
}

func (s Scheme) String() string {
	if entry, ok := schemes[s]; ok {
		return entry.name
	}

	return fmt.Sprintf("scheme(%d)", byte(s))
}

func (s Scheme) lookup() (sealer, error) {
	entry, ok := schemes[s]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownScheme, byte(s))
	}

	return entry.sealer, nil
}

// Overhead returns how many bytes a ciphertext under scheme is longer than its plaintext,
// envelope header included.
func Overhead(scheme Scheme) (int, error) {
	s, err := scheme.lookup()
	if err != nil {
		return 0, err
	}

	return envelopeHeaderSize + s.overhead(), nil
}
