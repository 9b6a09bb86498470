package encryption

import (
	"bytes"
	"fmt"

	"github.com/tink-crypto/tink-go/v2/aead"
	"github.com/tink-crypto/tink-go/v2/insecurecleartextkeyset"
	"github.com/tink-crypto/tink-go/v2/keyset"
	gcmpb "github.com/tink-crypto/tink-go/v2/proto/aes_gcm_go_proto"
	tinkpb "github.com/tink-crypto/tink-go/v2/proto/tink_go_proto"
	"github.com/tink-crypto/tink-go/v2/tink"

	"google.golang.org/protobuf/proto"
)

const (
	gcmIVSize  = 12
	gcmTagSize = 16
)

// gcmSealer encrypts with tink's AES-GCM primitive. With a RAW output prefix the
// ciphertext is IV ‖ ciphertext ‖ tag.
type gcmSealer struct{}

func (gcmSealer) overhead() int {
	return gcmIVSize + gcmTagSize
}

func (gcmSealer) seal(key, header, plaintext []byte) ([]byte, error) {
	primitive, err := newGCMPrimitive(key)
	if err != nil {
		return nil, err
	}

	ciphertext, err := primitive.Encrypt(plaintext, header)
	if err != nil {
		return nil, fmt.Errorf("encrypting: %w", err)
	}

	return ciphertext, nil
}

func (gcmSealer) open(key, header, body []byte) ([]byte, error) {
	primitive, err := newGCMPrimitive(key)
	if err != nil {
		return nil, err
	}

	plaintext, err := primitive.Decrypt(body, header)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAuthentication, err)
	}

	return plaintext, nil
}

func newGCMPrimitive(key []byte) (tink.AEAD, error) {
	handle, err := newGCMKeyHandle(key)
	if err != nil {
		return nil, err
	}

	primitive, err := aead.New(handle)
	if err != nil {
		return nil, fmt.Errorf("creating AEAD: %w", err)
	}

	return primitive, nil
}

// newGCMKeyHandle wraps raw key bytes into a single-key tink keyset handle.
func newGCMKeyHandle(key []byte) (*keyset.Handle, error) {
	serializedKey, err := proto.Marshal(&gcmpb.AesGcmKey{
		Version:  0,
		KeyValue: key,
	})
	if err != nil {
		return nil, fmt.Errorf("serializing AesGcmKey: %w", err)
	}

	keySet := &tinkpb.Keyset{
		PrimaryKeyId: 1,
		Key: []*tinkpb.Keyset_Key{
			{
				KeyData: &tinkpb.KeyData{
					TypeUrl:         "type.googleapis.com/google.crypto.tink.AesGcmKey",
					Value:           serializedKey,
					KeyMaterialType: tinkpb.KeyData_SYMMETRIC,
				},
				Status:           tinkpb.KeyStatusType_ENABLED,
				KeyId:            1,
				OutputPrefixType: tinkpb.OutputPrefixType_RAW,
			},
		},
	}

	serializedKeyset, err := proto.Marshal(keySet)
	if err != nil {
		return nil, fmt.Errorf("serializing keyset: %w", err)
	}

	handle, err := insecurecleartextkeyset.Read(keyset.NewBinaryReader(bytes.NewReader(serializedKeyset)))
	if err != nil {
		return nil, fmt.Errorf("creating keyset handle: %w", err)
	}

	return handle, nil
}
