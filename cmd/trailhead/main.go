package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"trailhead/internal/adapters/tui"
	"trailhead/internal/config"
	"trailhead/internal/logger"
	"trailhead/internal/setup"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// The alternate screen owns the terminal, so logs always go to a file
	logPath := cfg.LogFile
	if logPath == "" {
		logPath = config.DefaultLogPath()
	}
	log, closeLog, err := logger.Open(cfg.LogLevel, cfg.LogFormat, logPath)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx := context.Background()
	app, err := setup.Open(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer app.Close()

	log.Info("starting tui", zap.String("driver", cfg.Driver))
	p := tea.NewProgram(tui.NewApp(app.Graph, app.Contexts, log.Named("tui")), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Error("tui exited with error", zap.Error(err))
		return err
	}
	return nil
}
