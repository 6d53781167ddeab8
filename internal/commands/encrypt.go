package commands

import (
	"github.com/spf13/cobra"

	"github.com/idelchi/sealwalk/internal/config"
)

// NewEncryptCommand creates a new cobra command for the encrypt subcommand.
func NewEncryptCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "encrypt [flags] [paths...]",
		Aliases: []string{"enc"},
		Short:   "Seal selected files and erase the originals",
		Long: `Seal every file under the given paths (default: the current directory) whose name
ends with one of the --include suffixes. Each file is replaced by <file><suffix>;
the original is overwritten with zeros and removed once the artifact is in place.`,
		Args:    cobra.ArbitraryArgs,
		PreRunE: preRun(cfg, false),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, cfg)
		},
	}

	cmd.Flags().StringSliceP("include", "i", nil, "Name suffixes of files to encrypt, e.g. .txt,.csv (required)")
	cmd.Flags().Bool("no-wipe", false, "Remove originals without overwriting them first")

	return cmd
}
