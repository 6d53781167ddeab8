package logic

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/idelchi/sealwalk/internal/encryption"
)

// RunKeygen prints a new hex-encoded key, or writes it to output with owner-only
// permissions. An existing output file is never replaced.
func RunKeygen(output string, stdout io.Writer) (err error) {
	key, err := encryption.GenerateKey()
	if err != nil {
		return err
	}
	defer clear(key)

	encoded := encryption.EncodeKey(key)

	if output == "" {
		_, err := fmt.Fprintln(stdout, encoded)

		return err
	}

	const ownerReadWrite = 0o600

	file, err := os.OpenFile(output, os.O_WRONLY|os.O_CREATE|os.O_EXCL, ownerReadWrite)
	if err != nil {
		return fmt.Errorf("creating key file: %w", err)
	}

	defer func() {
		err = errors.Join(err, file.Close())
	}()

	if _, err := fmt.Fprintln(file, encoded); err != nil {
		return fmt.Errorf("writing key file: %w", err)
	}

	return nil
}
