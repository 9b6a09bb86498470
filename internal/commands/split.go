package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/idelchi/gosplit/internal/config"
	"github.com/idelchi/gosplit/internal/encryption"
	"github.com/idelchi/gosplit/internal/logic"
)

// NewSplitCommand creates a new cobra command for the split subcommand.
func NewSplitCommand() *cobra.Command {
	cfg := &config.Split{}

	cmd := &cobra.Command{
		Use:     "split [flags] files...",
		Aliases: []string{"sp"},
		Short:   "Split files into encrypted chunks",
		Long: `Encrypt each file under a fresh key and cut the ciphertext into the requested number of chunks.
The key, the manifest and the chunks are written to <file>.parts/ or, with --archive, to <file>.zip.`,
		Args:    cobra.MinimumNArgs(1),
		PreRunE: preRun(cfg, func(args []string) { cfg.Files = args }),
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cfg.Show {
				return show(cmd.OutOrStdout(), cfg)
			}

			return logic.RunSplit(cfg)
		},
	}

	cmd.Flags().IntP("pieces", "n", 0, "Number of chunks per file")
	cmd.Flags().String("scheme", encryption.DefaultScheme.String(),
		fmt.Sprintf("Encryption scheme, one of: %s", strings.Join(encryption.Schemes(), ", ")))
	cmd.Flags().BoolP("archive", "a", false, "Write a zip archive instead of a directory")
	cmd.Flags().StringP("output", "o", "", "Output directory, defaults to the directory of each input")

	return cmd
}
