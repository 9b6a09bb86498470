package logic

import (
	"fmt"

	"github.com/idelchi/gosplit/internal/config"
	"github.com/idelchi/gosplit/internal/shard"
)

// RunVerify checks the chunks of every input against its manifest. No key is needed.
func RunVerify(cfg *config.Verify) error {
	opts := shard.Options{Parallel: cfg.Parallel}

	if err := run(cfg.Config, "Verified", cfg.Inputs, func(input string) (string, int64, error) {
		return "", 0, verifyInput(input, cfg, opts)
	}); err != nil {
		return fmt.Errorf("verifying files: %w", err)
	}

	return nil
}

func verifyInput(input string, cfg *config.Verify, opts shard.Options) error {
	source, err := openInput(input, cfg.MaxBytes())
	if err != nil {
		return err
	}

	m, err := shard.LoadManifest(source)
	if err != nil {
		return err
	}

	return shard.Verify(m, source, opts)
}
