package encryption

import (
	"bytes"
	"fmt"
)

const (
	envelopeMagic   = "GSPL"
	envelopeVersion = byte(1)
)

const envelopeHeaderSize = len(envelopeMagic) + 2

func newEnvelopeHeader(scheme Scheme) []byte {
	header := make([]byte, envelopeHeaderSize)
	copy(header, []byte(envelopeMagic))

	header[len(envelopeMagic)] = envelopeVersion
	header[len(envelopeMagic)+1] = byte(scheme)

	return header
}

// parseEnvelopeHeader splits data into header and body and returns the scheme it names.
func parseEnvelopeHeader(data []byte) (Scheme, []byte, []byte, error) {
	if len(data) < envelopeHeaderSize {
		return 0, nil, nil, fmt.Errorf("%w: envelope header too short", ErrAuthentication)
	}

	header, body := data[:envelopeHeaderSize], data[envelopeHeaderSize:]

	if !bytes.Equal(header[:len(envelopeMagic)], []byte(envelopeMagic)) {
		return 0, nil, nil, fmt.Errorf("%w: invalid envelope magic", ErrAuthentication)
	}

	version := header[len(envelopeMagic)]
	if version != envelopeVersion {
		return 0, nil, nil, fmt.Errorf("%w: unsupported envelope version %d", ErrAuthentication, version)
	}

	scheme := Scheme(header[len(envelopeMagic)+1])
	if _, err := scheme.lookup(); err != nil {
		return 0, nil, nil, err
	}

	return scheme, header, body, nil
}
