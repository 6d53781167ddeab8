package encryption

import (
	"fmt"
)

const (
	// KeySize is the size of a raw key in bytes.
	KeySize = 32
	// NonceSize is the size of the nonce prepended to every artifact.
	NonceSize = 12
	// TagSize is the size of the authentication tag appended by the cipher.
	TagSize = 16
	// MinArtifactSize is the size of an artifact sealing an empty file.
	MinArtifactSize = NonceSize + TagSize
)

// An artifact is laid out as
//
//	[12-byte nonce][ciphertext][16-byte tag]
//
// with no header, magic or version field.

// splitArtifact separates the nonce from the sealed remainder.
// It never looks at the contents, only the length.
func splitArtifact(artifact []byte) (nonce, sealed []byte, err error) {
	if len(artifact) < MinArtifactSize {
		return nil, nil, fmt.Errorf("%w: artifact is %d bytes, need at least %d",
			ErrMalformedInput, len(artifact), MinArtifactSize)
	}

	return artifact[:NonceSize], artifact[NonceSize:], nil
}

// joinArtifact returns nonce||sealed in a freshly allocated slice.
func joinArtifact(nonce, sealed []byte) []byte {
	out := make([]byte, 0, len(nonce)+len(sealed))
	out = append(out, nonce...)

	return append(out, sealed...)
}
