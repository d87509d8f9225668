package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rxtech-lab/synthetic-data-lab/internal/api"
	"github.com/rxtech-lab/synthetic-data-lab/internal/config"
	"github.com/rxtech-lab/synthetic-data-lab/internal/logger"
	"github.com/rxtech-lab/synthetic-data-lab/internal/preset"
	"github.com/rxtech-lab/synthetic-data-lab/internal/version"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

const shutdownTimeout = 5 * time.Second

// newServer builds the session for the built-in presets, extended with the
// presets of presetsPath when it is set, and wraps it in an API server.
func newServer(presetsPath string, lg *logger.Logger) (*api.Server, error) {
	catalogs, err := preset.DefaultCatalogs()
	if err != nil {
		return nil, err
	}

	if presetsPath != "" {
		extra, err := preset.LoadCatalogsFile(presetsPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load presets: %w", err)
		}

		catalogs, err = catalogs.Merge(extra)
		if err != nil {
			return nil, fmt.Errorf("failed to merge presets: %w", err)
		}
	}

	session, err := config.NewSession(catalogs, config.WithLogger(lg))
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return api.NewServer(session, lg), nil
}

// serve runs the API until ctx is cancelled.
func serve(ctx context.Context, addr, presetsPath string, lg *logger.Logger) error {
	server, err := newServer(presetsPath, lg)
	if err != nil {
		return err
	}

	if err := server.Start(addr); err != nil {
		return err
	}

	<-ctx.Done()
	lg.Info("shutting down", zap.String("address", server.Address()))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return server.Stop(shutdownCtx)
}

func serveAction(ctx context.Context, cmd *cli.Command) error {
	lg, err := logger.NewLoggerWithOptions(logger.Options{Level: cmd.String("log-level")})
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = lg.Sync() }()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return serve(ctx, cmd.String("addr"), cmd.String("presets"), lg)
}

func main() {
	cmd := &cli.Command{
		Name:    "labd",
		Version: version.GetVersion(),
		Usage:   "Serve a scenario configuration session over HTTP and WebSocket",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "addr",
				Aliases: []string{"a"},
				Usage:   "Listen address",
				Value:   "127.0.0.1:8686",
			},
			&cli.StringFlag{
				Name:    "presets",
				Aliases: []string{"p"},
				Usage:   "YAML preset catalog added to the built-in presets",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level (debug, info, warn, error)",
				Value: "info",
			},
		},
		Action: serveAction,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
