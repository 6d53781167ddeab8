package commands

import (
	"github.com/spf13/cobra"

	"github.com/idelchi/sealwalk/internal/config"
)

// NewDecryptCommand creates a new cobra command for the decrypt subcommand.
func NewDecryptCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "decrypt [flags] [paths...]",
		Aliases: []string{"dec"},
		Short:   "Open sealed files and restore the originals",
		Args:    cobra.ArbitraryArgs,
		PreRunE: preRun(cfg, true),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, cfg)
		},
	}

	cmd.Flags().StringSliceP("include", "i", nil, "Name suffixes of artifacts to decrypt, defaults to --suffix")

	return cmd
}
