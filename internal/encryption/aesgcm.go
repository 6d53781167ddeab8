package encryption

import (
	"bytes"
	"fmt"

	"github.com/tink-crypto/tink-go/v2/aead"
	"github.com/tink-crypto/tink-go/v2/insecurecleartextkeyset"
	"github.com/tink-crypto/tink-go/v2/keyset"
	aes_gcmpb "github.com/tink-crypto/tink-go/v2/proto/aes_gcm_go_proto"
	tinkpb "github.com/tink-crypto/tink-go/v2/proto/tink_go_proto"
	"github.com/tink-crypto/tink-go/v2/tink"

	"google.golang.org/protobuf/proto"
)

const aesGCMTypeURL = "type.googleapis.com/google.crypto.tink.AesGcmKey"

// aesGCM is the AES-256-GCM suite. Tink draws the nonce itself and, with a RAW
// output prefix, emits exactly iv||ciphertext||tag.
type aesGCM struct {
	primitive tink.AEAD
}

func newAESGCM(key []byte) (*aesGCM, error) {
	kh, err := newAESGCMKeyHandle(key)
	if err != nil {
		return nil, fmt.Errorf("creating keyset handle: %w", err)
	}

	primitive, err := aead.New(kh)
	if err != nil {
		return nil, fmt.Errorf("creating AEAD: %w", err)
	}

	return &aesGCM{primitive: primitive}, nil
}

func (c *aesGCM) Suite() Suite { return SuiteAESGCM }

// Seal encrypts plaintext. Tink only fails here when it cannot produce a nonce,
// which is treated as a random source failure.
func (c *aesGCM) Seal(plaintext []byte) ([]byte, error) {
	artifact, err := c.primitive.Encrypt(plaintext, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: sealing: %w", ErrRandomSource, err)
	}

	if len(artifact) != len(plaintext)+MinArtifactSize {
		return nil, fmt.Errorf("sealing: unexpected artifact size %d", len(artifact))
	}

	return artifact, nil
}

func (c *aesGCM) Open(artifact []byte) ([]byte, error) {
	if _, _, err := splitArtifact(artifact); err != nil {
		return nil, err
	}

	plaintext, err := c.primitive.Decrypt(artifact, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAuthentication, err)
	}

	return plaintext, nil
}

// newAESGCMKeyHandle creates a Tink keyset handle for AES-256-GCM from raw key bytes.
func newAESGCMKeyHandle(key []byte) (*keyset.Handle, error) {
	aesGcmKey := &aes_gcmpb.AesGcmKey{
		Version:  0,
		KeyValue: key,
	}

	serializedKey, err := proto.Marshal(aesGcmKey)
	if err != nil {
		return nil, fmt.Errorf("serializing AesGcmKey: %w", err)
	}

	keyData := &tinkpb.KeyData{
		TypeUrl:         aesGCMTypeURL,
		Value:           serializedKey,
		KeyMaterialType: tinkpb.KeyData_SYMMETRIC,
	}

	// RAW output prefix keeps the artifact free of Tink's 5-byte key id header.
	keySet := &tinkpb.Keyset{
		PrimaryKeyId: 1,
		Key: []*tinkpb.Keyset_Key{
			{
				KeyData:          keyData,
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

	keySetHandle, err := insecurecleartextkeyset.Read(
		keyset.NewBinaryReader(bytes.NewReader(serializedKeyset)))
	if err != nil {
		return nil, fmt.Errorf("creating keyset handle: %w", err)
	}

	return keySetHandle, nil
}
