package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"novelreader/internal/cleanup"
	"novelreader/internal/config"
	"novelreader/internal/downloader"
	"novelreader/internal/fetcher"
	"novelreader/internal/library"
	"novelreader/internal/signals"
	"novelreader/internal/sources"
	"novelreader/internal/state"
	"novelreader/pkg/models"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Application failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Setup structured logging
	setupLogging(cfg.LogLevel)

	slog.Info("Starting NovelReader download service", "version", "1.0.0")

	// Initialize content registry
	registry, err := library.New(cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to initialize content registry: %w", err)
	}
	defer func() {
		if err := registry.Close(); err != nil {
			slog.Error("Failed to close content registry", "error", err)
		}
	}()

	// Write the default sources config on first run
	sourceStore := sources.NewStore(cfg.SourcesPath)
	srcs, err := sourceStore.Init()
	if err != nil {
		return fmt.Errorf("failed to initialize sources config: %w", err)
	}
	slog.Info("Sources loaded", "count", len(srcs))

	// Load persisted download states
	stateStore := state.NewStore(cfg.StateDir, cfg.SaveInterval)
	records, err := stateStore.Load()
	if err != nil {
		return fmt.Errorf("failed to load download states: %w", err)
	}
	slog.Info("Download states loaded", "count", len(records))

	manager := downloader.NewManager(downloader.Options{
		Runner:        fetcher.NewExecRunner(cfg.FetcherCommand()),
		Store:         stateStore,
		Registry:      registry,
		Cleanup:       cleanup.NewService(cfg.OutputRoot),
		Signals:       signals.NewDir(cfg.StateDir),
		OutputRoot:    cfg.OutputRoot,
		SourcesPath:   cfg.SourcesPath,
		PollInterval:  cfg.PollInterval,
		MinFreeDiskMB: cfg.MinFreeDiskMB,
	})

	return runService(manager, stateStore, registry, records, cfg.OutputRoot)
}

// runService starts the background routines, resumes interrupted
// downloads and blocks until a termination signal arrives
func runService(manager *downloader.Manager, stateStore *state.Store, registry *library.Registry, records []models.DownloadState, outputRoot string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Debounced state flusher
	go stateStore.Run(ctx)

	// Sync chapter counts with what is actually on disk
	if err := registry.RefreshChapterCounts(outputRoot); err != nil {
		slog.Warn("Failed to refresh chapter counts", "error", err)
	}

	// Pick up downloads interrupted by the previous shutdown
	manager.Reconcile(records)

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigChan
	slog.Info("Received shutdown signal", "signal", sig.String())

	// Stop the flusher, then drain the manager; Shutdown blocks until
	// every download goroutine has exited and state is saved
	cancel()
	manager.Shutdown()

	slog.Info("Service shutdown complete")
	return nil
}

// setupLogging configures structured logging based on the log level
func setupLogging(level string) {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: logLevel,
	}

	handler := slog.NewTextHandler(os.Stdout, opts)
	logger := slog.New(handler)
	slog.SetDefault(logger)
}
