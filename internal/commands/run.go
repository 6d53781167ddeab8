package commands

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/idelchi/sealwalk/internal/config"
	"github.com/idelchi/sealwalk/internal/logic"
)

// run builds the logger and hands the validated configuration to the logic package.
func run(cmd *cobra.Command, cfg *config.Config) error {
	logger, err := logic.NewLogger(cfg.LogLevel, cfg.Quiet)
	if err != nil {
		return err
	}

	defer logger.Sync() //nolint:errcheck // stderr sync fails on some terminals

	return logic.Run(cmd.Context(), cfg, logic.Env{
		Reporter: logger,
		Stdin:    os.Stdin,
		Stdout:   cmd.OutOrStdout(),
		Stderr:   cmd.ErrOrStderr(),
	})
}
