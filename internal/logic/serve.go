package logic

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/idelchi/gosplit/internal/config"
	"github.com/idelchi/gosplit/internal/encryption"
	"github.com/idelchi/gosplit/internal/logger"
	"github.com/idelchi/gosplit/internal/server"
	"github.com/idelchi/gosplit/internal/shard"
)

const readHeaderTimeout = 10 * time.Second

// RunServe runs the HTTP server until ctx is cancelled.
func RunServe(ctx context.Context, cfg *config.Serve, version string) error {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("parsing log level: %w", err)
	}

	scheme, err := encryption.ParseScheme(cfg.Scheme)
	if err != nil {
		return err
	}

	srv := server.New(server.Config{
		Address:           cfg.Address,
		MaxSize:           cfg.MaxBytes(),
		ReadHeaderTimeout: readHeaderTimeout,
		ShutdownTimeout:   cfg.ShutdownTimeout,
		Version:           version,
		Options:           shard.Options{Scheme: scheme, Parallel: cfg.Parallel},
	}, logger.New(os.Stderr, "server", level))

	return srv.Run(ctx)
}
