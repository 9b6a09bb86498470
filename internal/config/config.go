// Package config holds the command-line configuration and its validation.
package config

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/go-playground/validator/v10"
)

// Config holds the flags shared by every command.
type Config struct {
	// Show prints the resolved configuration and exits.
	Show bool

	// Parallel bounds the number of files processed at once and the chunks hashed per file.
	Parallel int `validate:"gte=0"`

	// Quiet suppresses per-file output.
	Quiet bool

	// Stats prints a summary when a command finishes.
	Stats bool

	// MaxSize is the largest input accepted, in human-readable form (e.g. "256MiB").
	MaxSize string `mapstructure:"max-size" validate:"required,bytesize" label:"--max-size"`
}

// MaxBytes returns MaxSize in bytes. It assumes Validate has passed.
func (c Config) MaxBytes() int64 {
	size, err := humanize.ParseBytes(c.MaxSize)
	if err != nil {
		return 0
	}

	//nolint:gosec // bounded by the bytesize validator
	return int64(size)
}

// Split configures the split command.
type Split struct {
	Config `mapstructure:",squash"`

	// Pieces is the number of chunks per file.
	Pieces int `validate:"min=1" label:"--pieces"`

	// Scheme names the encryption construction.
	Scheme string `validate:"scheme" label:"--scheme"`

	// Archive bundles the parts into a zip instead of a directory.
	Archive bool

	// Output is the directory receiving the parts. Empty means next to each input.
	Output string

	// Files are the inputs to split.
	Files []string `validate:"min=1,dive,required" label:"files"`
}

// Join configures the join command.
type Join struct {
	Config `mapstructure:",squash"`

	// Output is the directory receiving the restored files. Empty means the working directory.
	Output string

	// Force overwrites existing files.
	Force bool

	// Inputs are parts directories or zip archives.
	Inputs []string `validate:"min=1,dive,required" label:"inputs"`
}

// Verify configures the verify command.
type Verify struct {
	Config `mapstructure:",squash"`

	// Inputs are parts directories or zip archives.
	Inputs []string `validate:"min=1,dive,required" label:"inputs"`
}

// Serve configures the serve command.
type Serve struct {
	Config `mapstructure:",squash"`

	// Address is the listen address.
	Address string `validate:"required,hostname_port" label:"--address"`

	// Scheme names the encryption construction used for splits.
	Scheme string `validate:"scheme" label:"--scheme"`

	// ShutdownTimeout bounds the graceful shutdown.
	ShutdownTimeout time.Duration `mapstructure:"shutdown-timeout" validate:"gt=0" label:"--shutdown-timeout"`

	// LogLevel is the zerolog level name.
	LogLevel string `mapstructure:"log-level" validate:"oneof=trace debug info warn error" label:"--log-level"`
}

// Validate validates a command configuration against its struct tags.
func Validate(cfg any) error {
	validate := validator.New()

	if err := register(validate); err != nil {
		return err
	}

	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("validating configuration: %w", err)
	}

	return nil
}
