package encryption

import (
	"crypto/cipher"
	"crypto/rand"
	"fmt"
	"io"

	"golang.org/x/crypto/chacha20poly1305"
)

// chaCha20Poly1305 is the ChaCha20-Poly1305 suite. Nonces come from random.
type chaCha20Poly1305 struct {
	aead   cipher.AEAD
	random io.Reader
}

func newChaCha20Poly1305(key []byte, random io.Reader) (*chaCha20Poly1305, error) {
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, fmt.Errorf("creating ChaCha20-Poly1305 cipher: %w", err)
	}

	if random == nil {
		random = rand.Reader
	}

	return &chaCha20Poly1305{aead: aead, random: random}, nil
}

func (c *chaCha20Poly1305) Suite() Suite { return SuiteChaCha20Poly1305 }

func (c *chaCha20Poly1305) Seal(plaintext []byte) ([]byte, error) {
	nonce := make([]byte, NonceSize)
	if _, err := io.ReadFull(c.random, nonce); err != nil {
		return nil, fmt.Errorf("%w: generating nonce: %w", ErrRandomSource, err)
	}

	return joinArtifact(nonce, c.aead.Seal(nil, nonce, plaintext, nil)), nil
}

func (c *chaCha20Poly1305) Open(artifact []byte) ([]byte, error) {
	nonce, sealed, err := splitArtifact(artifact)
	if err != nil {
		return nil, err
	}

	plaintext, err := c.aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAuthentication, err)
	}

	return plaintext, nil
}
