package commands

import (
	"github.com/spf13/cobra"

	"github.com/idelchi/gosplit/internal/config"
	"github.com/idelchi/gosplit/internal/logic"
)

// NewJoinCommand creates a new cobra command for the join subcommand.
func NewJoinCommand() *cobra.Command {
	cfg := &config.Join{}

	cmd := &cobra.Command{
		Use:     "join [flags] inputs...",
		Aliases: []string{"jn"},
		Short:   "Restore files from their parts",
		Long: `Verify and decrypt the parts in each input, a parts directory or a zip archive,
and write the original file to the output directory under its recorded name.`,
		Args:    cobra.MinimumNArgs(1),
		PreRunE: preRun(cfg, func(args []string) { cfg.Inputs = args }),
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cfg.Show {
				return show(cmd.OutOrStdout(), cfg)
			}

			return logic.RunJoin(cfg)
		},
	}

	cmd.Flags().StringP("output", "o", "", "Output directory, defaults to the working directory")
	cmd.Flags().BoolP("force", "f", false, "Overwrite existing files")

	return cmd
}
