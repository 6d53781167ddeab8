package encryption

import (
	"fmt"

	"github.com/idelchi/gogen/pkg/key"
)

// GenerateKey returns a fresh random 32-byte key.
func GenerateKey() ([]byte, error) {
	k, err := key.New(KeySize)
	if err != nil {
		return nil, fmt.Errorf("%w: generating key: %w", ErrRandomSource, err)
	}

	return k, nil
}

// EncodeKey returns the lowercase hex encoding of k.
func EncodeKey(k []byte) string {
	return key.Key(k).AsHex()
}

// DecodeKey parses a hex-encoded 32-byte key. Surrounding whitespace is ignored,
// so the output of EncodeKey written to a file with a trailing newline round-trips.
func DecodeKey(s string) ([]byte, error) {
	k, err := key.FromHex(s)
	if err != nil {
		return nil, fmt.Errorf("%w: decoding key: %w", ErrConfiguration, err)
	}

	if len(k) != KeySize {
		return nil, fmt.Errorf("%w: key must be %d bytes (%d hex characters), got %d bytes",
			ErrConfiguration, KeySize, 2*KeySize, len(k))
	}

	return k, nil
}

// wipe zeroes b in place.
func wipe(b []byte) {
	clear(b)
}
