package commands

import (
	"github.com/spf13/cobra"

	"github.com/idelchi/sealwalk/internal/logic"
)

// NewKeygenCommand creates a new cobra command that prints a fresh key.
func NewKeygenCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:     "keygen",
		Aliases: []string{"gen"},
		Short:   "Generate a new encryption key",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return logic.RunKeygen(output, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the key to this file (0600) instead of stdout")

	return cmd
}
