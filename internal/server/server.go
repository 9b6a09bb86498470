package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/idelchi/gosplit/internal/logger"
	"github.com/idelchi/gosplit/internal/shard"
)

// Config holds the settings of the HTTP transport.
type Config struct {
	// Address is the listen address in host:port form.
	Address string

	// MaxSize is the largest accepted upload in bytes, per file.
	MaxSize int64

	// TempDir is the parent of the per-request staging directories. Empty means os.TempDir.
	TempDir string

	// ReadHeaderTimeout bounds the time to read request headers.
	ReadHeaderTimeout time.Duration

	// ShutdownTimeout bounds the graceful shutdown.
	ShutdownTimeout time.Duration

	// Version is reported by GET /version.
	Version string

	// Options are passed to every split and join.
	Options shard.Options
}

// Server serves the split and join endpoints.
type Server struct {
	cfg Config
	log *logger.Logger
}

// New creates a Server.
func New(cfg Config, log *logger.Logger) *Server {
	return &Server{cfg: cfg, log: log}
}

// Run listens until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Address,
		Handler:           s.Handler(),
		ReadHeaderTimeout: s.cfg.ReadHeaderTimeout,
	}

	group, ctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		s.log.Info().Str("address", s.cfg.Address).Int64("max_size", s.cfg.MaxSize).Msg("listening")

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serving: %w", err)
		}

		return nil
	})

	group.Go(func() error {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
		defer cancel()

		s.log.Info().Msg("shutting down")

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down: %w", err)
		}

		return nil
	})

	return group.Wait()
}
