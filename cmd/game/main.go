package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/tatianab/terminal-shadows/internal/config"
	"github.com/tatianab/terminal-shadows/internal/content"
	"github.com/tatianab/terminal-shadows/internal/guide"
	"github.com/tatianab/terminal-shadows/internal/persistence"
	"github.com/tatianab/terminal-shadows/internal/random"
	"github.com/tatianab/terminal-shadows/internal/session"
	"github.com/tatianab/terminal-shadows/internal/tui"
)

func main() {
	if err := run(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer stop()

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	// The terminal belongs to the TUI, so logs go to a file.
	logFile, err := tea.LogToFile(cfg.LogFile, "shadows")
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer logFile.Close()
	logger := slog.New(slog.NewTextHandler(logFile, &slog.HandlerOptions{Level: slog.LevelDebug}))

	settings, err := config.LoadSettings(cfg.SettingsPath())
	if err != nil {
		logger.Warn("settings unreadable, using defaults", "path", cfg.SettingsPath(), "error", err)
	}

	var repo *content.Repository
	if cfg.ContentDir != "" {
		repo, err = content.LoadDir(cfg.ContentDir, logger)
	} else {
		repo, err = content.LoadEmbedded(logger)
	}
	if err != nil {
		return fmt.Errorf("loading chapters: %w", err)
	}

	store, err := persistence.OpenStore(persistence.Backend(cfg.Storage), cfg.DataDir)
	if err != nil {
		return fmt.Errorf("opening save store: %w", err)
	}
	saves := persistence.NewManager(store, persistence.WithLogger(logger))
	defer saves.Close()

	seed := int64(cfg.Seed)
	if seed == 0 {
		if seed, err = random.NewSeed(); err != nil {
			return fmt.Errorf("seeding: %w", err)
		}
	}
	logger.Info("starting", "seed", seed, "storage", cfg.Storage, "chapters", repo.Len())

	deps := session.Deps{
		Content:      repo,
		Saves:        saves,
		Settings:     settings,
		SettingsPath: cfg.SettingsPath(),
		RNG:          random.New(seed),
		Logger:       logger,
	}
	if cfg.GeminiAPIKey != "" {
		g, err := guide.NewGemini(ctx, cfg.GeminiAPIKey, settings.Language)
		if err != nil {
			logger.Warn("guide narrator unavailable", "error", err)
		} else {
			defer g.Close()
			deps.Narrator = g
		}
	}

	if err := tui.Run(ctx, session.New(deps)); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}
	return nil
}
