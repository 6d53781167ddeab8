// Package config holds the runtime configuration shared by all commands.
package config

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUsage indicates an error in command-line usage or configuration.
var ErrUsage = errors.New("usage error")

// Key selects where the encryption key comes from.
type Key struct {
	// String is the hex-encoded key.
	String string `label:"--key" mapstructure:"key" mask:"fixed" validate:"exclusive=File"`

	// File is a path to a file holding the hex-encoded key.
	File string `label:"--key-file" mapstructure:"key-file"`
}

// Config holds the application's configuration.
type Config struct {
	// Show prints the configuration and exits
	Show bool

	// Parallel bounds the number of files processed at once
	Parallel int `label:"--parallel" validate:"gte=0"`

	// Quiet suppresses non-error output
	Quiet bool

	// LogLevel is the minimum level of per-file log lines
	LogLevel string `label:"--log-level" mapstructure:"log-level" validate:"oneof=debug info warn error"`

	// Key is the key source
	Key Key `mapstructure:",squash"`

	// Cipher is the authenticated cipher suite
	Cipher string `label:"--cipher" validate:"oneof=aes-256-gcm chacha20-poly1305"`

	// Suffix is appended to encrypted files
	Suffix string `label:"--suffix" validate:"required"`

	// DecryptSuffix is appended to decrypted files after stripping Suffix
	DecryptSuffix string `mapstructure:"decrypt-ext"`

	// PreserveTimestamps copies the source modification time to the output
	PreserveTimestamps bool `mapstructure:"preserve-timestamps"`

	// NoWipe removes originals without overwriting them first
	NoWipe bool `mapstructure:"no-wipe"`

	// Dry lists what would be processed without touching anything
	Dry bool

	// Stats prints a summary table at the end
	Stats bool

	// Include holds the name suffixes to select
	Include []string `label:"--include"`

	// Exclude holds glob patterns to skip
	Exclude []string

	// ExcludeFrom is a JSONC file with more exclude patterns
	ExcludeFrom string `mapstructure:"exclude-from"`

	// Decrypt is set by the decrypt command
	Decrypt bool `mapstructure:"-"`

	// Paths are the positional arguments
	Paths []string `mapstructure:"-"`
}

// Display reports whether the configuration should be printed instead of run.
func (c *Config) Display() bool {
	return c.Show
}

// Validate performs configuration validation using the validator package.
// It is called by cobraext.Validate with the configuration to check, normally c itself.
func (c *Config) Validate(config any) error {
	validate, err := newValidator()
	if err != nil {
		return err
	}

	errs := validate.Validate(config)

	if !c.Decrypt && len(c.Include) == 0 {
		errs = append(errs, errors.New("--include needs at least one suffix"))
	}

	for _, s := range c.Include {
		if strings.TrimSpace(s) == "" {
			errs = append(errs, errors.New("--include contains an empty suffix"))

			break
		}
	}

	switch len(errs) {
	case 0:
		return nil
	case 1:
		return fmt.Errorf("%w: %w", ErrUsage, errs[0])
	default:
		return fmt.Errorf("%ws:\n%w", ErrUsage, errors.Join(errs...))
	}
}
