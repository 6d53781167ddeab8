package logic

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/idelchi/sealwalk/internal/config"
	"github.com/idelchi/sealwalk/internal/encryption"
)

// resolveKey reads the key from --key, --key-file, or a hidden prompt when stdin is a terminal.
func resolveKey(cfg *config.Config, stdin *os.File, prompt io.Writer) ([]byte, error) {
	switch {
	case cfg.Key.String != "":
		return encryption.DecodeKey(cfg.Key.String)
	case cfg.Key.File != "":
		data, err := os.ReadFile(cfg.Key.File)
		if err != nil {
			return nil, fmt.Errorf("reading key file: %w", err)
		}

		defer clear(data)

		return encryption.DecodeKey(string(data))
	case stdin != nil && term.IsTerminal(int(stdin.Fd())): //nolint:gosec // fd fits in int
		fmt.Fprint(prompt, "Key (hex): ")

		data, err := term.ReadPassword(int(stdin.Fd())) //nolint:gosec // fd fits in int

		fmt.Fprintln(prompt)

		if err != nil {
			return nil, fmt.Errorf("reading key: %w", err)
		}

		defer clear(data)

		return encryption.DecodeKey(string(data))
	default:
		return nil, fmt.Errorf("%w: no key given, use --key, --key-file or SEALWALK_KEY", config.ErrUsage)
	}
}
