package commands

import (
	"errors"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/idelchi/gogen/pkg/cobraext"
	"github.com/idelchi/sealwalk/internal/config"
	"github.com/idelchi/sealwalk/internal/encryption"
)

// NewRootCommand creates the root command with common configuration.
// It sets up environment variable binding and flag handling.
func NewRootCommand(cfg *config.Config, version string) *cobra.Command {
	root := cobraext.NewDefaultRootCommand(version)

	root.Use = "sealwalk [flags] command [flags]"
	root.Short = "Authenticated directory encryption utility"
	root.Long = `Seal every selected file in a directory tree with an authenticated cipher,
replacing each original with an artifact, and reverse the process after verifying integrity.

The key is 32 bytes, hex-encoded. Generate one with "sealwalk keygen".`

	// Persistent so they are accepted on either side of the subcommand.
	flags := root.PersistentFlags()

	flags.BoolP("show", "s", false, "Show the configuration and exit")
	flags.String("config", "", "Path to a config file (yaml, toml or json)")
	flags.IntP("parallel", "j", runtime.NumCPU(), "Number of parallel workers, defaults to number of CPUs")
	flags.BoolP("quiet", "q", false, "Suppress non-error output")
	flags.String("log-level", "info", "Log level for per-file events (debug, info, warn, error)")

	flags.StringP("key", "k", "", "Encryption key (32 bytes, hex-encoded)")
	flags.StringP("key-file", "f", "", "Path to the key file with the encryption key (32 bytes, hex-encoded)")
	flags.String("cipher", string(encryption.SuiteAESGCM), "Cipher suite (aes-256-gcm, chacha20-poly1305)")

	flags.String("suffix", encryption.DefaultSuffix, "Suffix to append to encrypted files")
	flags.String("decrypt-ext", "", "Suffix to append to decrypted files, after stripping the encrypted suffix")
	flags.Bool("preserve-timestamps", false, "Copy the modification time of each source to its output")
	flags.Bool("dry", false, "List what would be processed without changing anything")
	flags.Bool("stats", false, "Print statistics at the end")
	flags.StringSliceP("exclude", "e", nil, "Glob patterns of files to skip (repeatable)")
	flags.String("exclude-from", "", "JSONC file with an array of exclude patterns")

	root.AddCommand(
		NewKeygenCommand(),
		NewEncryptCommand(cfg),
		NewDecryptCommand(cfg),
	)

	return root
}

// IsShown reports whether err only signals that --show printed the configuration.
func IsShown(err error) bool {
	return errors.Is(err, cobraext.ErrExitGracefully)
}
