package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/desertthunder/spotlite/internal/catalog"
	"github.com/desertthunder/spotlite/internal/server"
	"github.com/desertthunder/spotlite/internal/services"
	"github.com/desertthunder/spotlite/internal/shared"
	"github.com/urfave/cli/v3"
)

// Serve runs the local catalog server until interrupted.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	cfg := r.config.Server
	if host := cmd.String("host"); host != "" {
		cfg.Host = host
	}
	if port := cmd.Int("port"); port > 0 {
		cfg.Port = int(port)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := shared.WithLogger(r.logger, "component", "server")
	cat := catalog.New(r.events, logger)
	if err := cat.Refresh(ctx); err != nil {
		r.writePlain("✗ %s\n", services.Describe(err))
	}

	srv := server.NewCatalogServer(cfg.Addr(), cat, r.config.Catalog.Genres, r.config.Catalog.Locations, logger)
	r.writePlain("Serving events on http://%s (Ctrl+C to stop)\n", cfg.Addr())
	return server.Serve(ctx, srv, logger)
}
