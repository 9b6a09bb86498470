package commands

import (
	"runtime"

	"github.com/spf13/cobra"
)

// NewRootCommand creates the root command with common configuration.
// It sets up the flags shared by every subcommand.
func NewRootCommand(version string) *cobra.Command {
	root := &cobra.Command{
		Use:   "gosplit [flags] command [flags]",
		Short: "Split files into encrypted, verifiable chunks",
		Long: `Split a file into encrypted chunks with a manifest of chunk digests and a key file,
and restore it from those parts. Every part is required to restore the file.
Flags can also be set through GOSPLIT_<FLAG> environment variables.`,
		Version:           version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
	}

	root.SetVersionTemplate("{{ .Version }}\n")

	root.PersistentFlags().BoolP("show", "s", false, "Show the configuration and exit")
	root.PersistentFlags().IntP("parallel", "j", runtime.NumCPU(), "Number of parallel workers, defaults to number of CPUs")
	root.PersistentFlags().BoolP("quiet", "q", false, "Suppress non-error output")
	root.PersistentFlags().Bool("stats", false, "Print a summary when done")
	root.PersistentFlags().String("max-size", "256MiB", "Largest accepted input, e.g. 64MB or 1GiB")

	root.AddCommand(
		NewSplitCommand(),
		NewJoinCommand(),
		NewVerifyCommand(),
		NewServeCommand(version),
	)

	return root
}
