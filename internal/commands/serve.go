package commands

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/idelchi/gosplit/internal/config"
	"github.com/idelchi/gosplit/internal/encryption"
	"github.com/idelchi/gosplit/internal/logic"
)

// NewServeCommand creates a new cobra command for the serve subcommand.
func NewServeCommand(version string) *cobra.Command {
	cfg := &config.Serve{}

	cmd := &cobra.Command{
		Use:   "serve [flags]",
		Short: "Serve split and join over HTTP",
		Long: `Start an HTTP server with the endpoints:
  POST /split   multipart "pieces" and "file", answers with a zip of the parts
  POST /join    multipart "files", answers with the restored file
  GET  /version`,
		Args:    cobra.NoArgs,
		PreRunE: preRun(cfg, func([]string) {}),
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cfg.Show {
				return show(cmd.OutOrStdout(), cfg)
			}

			return logic.RunServe(cmd.Context(), cfg, version)
		},
	}

	cmd.Flags().String("address", ":8000", "Listen address")
	cmd.Flags().String("scheme", encryption.DefaultScheme.String(), "Encryption scheme for splits")
	cmd.Flags().Duration("shutdown-timeout", 10*time.Second, "Time allowed for in-flight requests on shutdown")
	cmd.Flags().String("log-level", "info", "Log level: trace, debug, info, warn or error")

	return cmd
}
