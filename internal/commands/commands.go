package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/idelchi/gosplit/internal/config"
)

// EnvPrefix prefixes every environment variable read by the commands.
const EnvPrefix = "GOSPLIT"

// bind resolves flags and GOSPLIT_* environment variables into cfg.
// Flags set on the command line take precedence over the environment.
func bind(cmd *cobra.Command, cfg any) error {
	v := viper.New()

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("binding flags: %w", err)
	}

	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("parsing config: %w", err)
	}

	return nil
}

// preRun returns a PreRunE handler that binds cfg, hands the positional args to setArgs
// and validates the result.
func preRun(cfg any, setArgs func([]string)) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if err := bind(cmd, cfg); err != nil {
			return err
		}

		setArgs(args)

		return config.Validate(cfg)
	}
}

// show prints the resolved configuration as YAML.
func show(w io.Writer, cfg any) error {
	out, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("rendering config: %w", err)
	}

	_, err = w.Write(out)

	return err
}
