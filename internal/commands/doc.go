// Package commands provides the command-line interface for the gosplit tool.
//
// It implements commands for:
//   - splitting files into encrypted chunks
//   - joining chunks back into the original file
//   - verifying chunks against their manifest
//   - serving split and join over HTTP
//
// The package handles command-line parsing, configuration validation,
// and environment variable binding through cobra and viper.
package commands
