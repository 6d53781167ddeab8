// Package commands provides the command-line interface for the sealwalk tool.
//
// It implements commands for:
//   - key generation
//   - encryption
//   - decryption
//
// The package handles command-line parsing, configuration validation,
// and environment variable binding through cobra and viper.
package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/idelchi/gogen/pkg/cobraext"
	"github.com/idelchi/sealwalk/internal/config"
)

// preRun returns a PreRunE handler that merges the optional config file, resolves
// positional args into cfg.Paths and validates the configuration.
func preRun(cfg *config.Config, decrypt bool) func(*cobra.Command, []string) error {
	return func(_ *cobra.Command, args []string) error {
		if file := viper.GetString("config"); file != "" {
			viper.SetConfigFile(file)

			if err := viper.ReadInConfig(); err != nil {
				return fmt.Errorf("reading config file: %w", err)
			}
		}

		cfg.Decrypt = decrypt
		cfg.Paths = args

		return cobraext.Validate(cfg, cfg)
	}
}
