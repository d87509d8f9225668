package main

import (
	"context"
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rxtech-lab/synthetic-data-lab/internal/config"
	"github.com/rxtech-lab/synthetic-data-lab/internal/logger"
	"github.com/rxtech-lab/synthetic-data-lab/internal/preset"
	"github.com/rxtech-lab/synthetic-data-lab/internal/settings"
	"github.com/rxtech-lab/synthetic-data-lab/internal/version"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

// loadCatalogs returns the built-in presets, extended with the presets of
// path when it is set.
func loadCatalogs(path string) (preset.Catalogs, error) {
	catalogs, err := preset.DefaultCatalogs()
	if err != nil {
		return nil, err
	}

	if path == "" {
		return catalogs, nil
	}

	extra, err := preset.LoadCatalogsFile(path)
	if err != nil {
		return nil, err
	}

	return catalogs.Merge(extra)
}

// runAction wires the session, the settings and the terminal UI together.
func runAction(ctx context.Context, cmd *cli.Command) error {
	settingsPath := cmd.String("settings")
	if settingsPath == "" {
		path, err := settings.DefaultPath()
		if err != nil {
			return err
		}
		settingsPath = path
	}

	// the screen belongs to the UI, so logs go to a file
	lg, err := logger.NewLoggerWithOptions(logger.Options{
		Level:       cmd.String("log-level"),
		OutputPaths: []string{cmd.String("log-file")},
	})
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = lg.Sync() }()

	catalogs, err := loadCatalogs(cmd.String("presets"))
	if err != nil {
		return fmt.Errorf("failed to load presets: %w", err)
	}

	session, err := config.NewSession(catalogs, config.WithLogger(lg))
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	prefs := settings.Load(settingsPath, lg)
	lg.Info("starting lab", zap.String("settings", settingsPath), zap.String("theme", string(prefs.Theme())))

	p := tea.NewProgram(NewModel(session, prefs, lg), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("terminal UI failed: %w", err)
	}

	return nil
}

func main() {
	cmd := &cli.Command{
		Name:    "lab",
		Version: version.GetVersion(),
		Usage:   "Configure synthetic market data scenarios in the terminal",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "settings",
				Usage: "Path to the settings file. Defaults to ~/.synthetic_data_lab/settings.json",
			},
			&cli.StringFlag{
				Name:    "presets",
				Aliases: []string{"p"},
				Usage:   "YAML preset catalog added to the built-in presets",
			},
			&cli.StringFlag{
				Name:  "log-file",
				Usage: "File the logs are written to",
				Value: "lab.log",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level (debug, info, warn, error)",
				Value: "info",
			},
		},
		Action: runAction,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
