package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"novelreader/internal/config"
	"novelreader/internal/library"
	"novelreader/internal/sources"
	"novelreader/internal/state"
)

func TestSetupLogging(t *testing.T) {
	tests := []struct {
		name  string
		level string
	}{
		{"debug level", "debug"},
		{"info level", "info"},
		{"warn level", "warn"},
		{"error level", "error"},
		{"invalid level defaults to info", "invalid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NotPanics(t, func() {
				setupLogging(tt.level)
			})
		})
	}
}

func TestRunConfigError(t *testing.T) {
	os.Setenv("LOG_LEVEL", "bogus")
	defer os.Unsetenv("LOG_LEVEL")

	err := run()
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to load configuration")
}

func TestRunRegistryError(t *testing.T) {
	os.Setenv("DATABASE_PATH", "/invalid/path/library.db")
	defer os.Unsetenv("DATABASE_PATH")

	err := run()
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to initialize content registry")
}

func TestRunInitialization(t *testing.T) {
	// Exercise the components run() wires together, without the signal
	// wait at the end
	dir := t.TempDir()
	os.Setenv("DATABASE_PATH", ":memory:")
	os.Setenv("SOURCES_PATH", filepath.Join(dir, "sources.json"))
	os.Setenv("STATE_DIR", filepath.Join(dir, "downloads"))
	os.Setenv("OUTPUT_ROOT", filepath.Join(dir, "Novels"))
	defer func() {
		os.Unsetenv("DATABASE_PATH")
		os.Unsetenv("SOURCES_PATH")
		os.Unsetenv("STATE_DIR")
		os.Unsetenv("OUTPUT_ROOT")
	}()

	cfg, err := config.Load()
	require.NoError(t, err)
	require.Equal(t, []string{"python3", "download_manager.py"}, cfg.FetcherCommand())

	registry, err := library.New(cfg.DatabasePath)
	require.NoError(t, err)
	defer registry.Close()

	srcs, err := sources.NewStore(cfg.SourcesPath).Init()
	require.NoError(t, err)
	require.NotEmpty(t, srcs)

	records, err := state.NewStore(cfg.StateDir, cfg.SaveInterval).Load()
	require.NoError(t, err)
	require.Empty(t, records)
}
