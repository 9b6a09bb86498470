package commands

import (
	"github.com/spf13/cobra"

	"github.com/idelchi/gosplit/internal/config"
	"github.com/idelchi/gosplit/internal/logic"
)

// NewVerifyCommand creates a new cobra command for the verify subcommand.
func NewVerifyCommand() *cobra.Command {
	cfg := &config.Verify{}

	return &cobra.Command{
		Use:     "verify [flags] inputs...",
		Aliases: []string{"ver"},
		Short:   "Check chunks against their manifest without decrypting",
		Args:    cobra.MinimumNArgs(1),
		PreRunE: preRun(cfg, func(args []string) { cfg.Inputs = args }),
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cfg.Show {
				return show(cmd.OutOrStdout(), cfg)
			}

			return logic.RunVerify(cfg)
		},
	}
}
