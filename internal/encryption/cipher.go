package encryption

import (
	"fmt"
	"io"
)

// Suite names an authenticated cipher construction.
// Every suite uses a 32-byte key, a 12-byte nonce and a 16-byte tag.
type Suite string

const (
	// SuiteAESGCM is AES-256 in Galois/Counter Mode.
	SuiteAESGCM Suite = "aes-256-gcm"
	// SuiteChaCha20Poly1305 is ChaCha20 with a Poly1305 authenticator.
	SuiteChaCha20Poly1305 Suite = "chacha20-poly1305"
)

// Suites lists the supported suites, default first.
func Suites() []Suite {
	return []Suite{SuiteAESGCM, SuiteChaCha20Poly1305}
}

// Cipher seals and opens whole-file artifacts.
type Cipher interface {
	// Seal encrypts plaintext under a fresh nonce and returns nonce||ciphertext||tag.
	Seal(plaintext []byte) ([]byte, error)

	// Open verifies and decrypts an artifact produced by Seal.
	// It returns ErrMalformedInput for short input and ErrAuthentication on tag mismatch.
	Open(artifact []byte) ([]byte, error)

	// Suite reports which construction is in use.
	Suite() Suite
}

// NewCipher creates the cipher for suite. The random source is used for nonces where the
// underlying construction lets the caller supply them; nil means crypto/rand.
func NewCipher(suite Suite, key []byte, random io.Reader) (Cipher, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("%w: key must be %d bytes, got %d", ErrConfiguration, KeySize, len(key))
	}

	switch suite {
	case SuiteAESGCM, "":
		return newAESGCM(key)
	case SuiteChaCha20Poly1305:
		return newChaCha20Poly1305(key, random)
	default:
		return nil, fmt.Errorf("%w: unsupported cipher %q", ErrConfiguration, suite)
	}
}
