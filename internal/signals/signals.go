// Package signals implements the marker-file protocol used to send
// cooperative stop, pause and cancel requests to the external fetcher.
// The fetcher polls the state directory for these files between chapter
// fetches; the manager never terminates the process directly.
package signals

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Kind identifies a marker type
type Kind string

const (
	Stop   Kind = "stop"
	Pause  Kind = "pause"
	Cancel Kind = "cancel"
)

// payloads written into the marker files, observed by the fetcher
var payloads = map[Kind]string{
	Stop:   "TERMINATE",
	Pause:  "PAUSE",
	Cancel: "CANCEL",
}

// Dir manages marker files inside the state directory
type Dir struct {
	path   string
	logger *slog.Logger
}

// NewDir creates a marker directory handle rooted at stateDir
func NewDir(stateDir string) *Dir {
	return &Dir{
		path:   stateDir,
		logger: slog.Default(),
	}
}

// markerPath builds <state-dir>/.<kind>_<downloadID>
func (d *Dir) markerPath(kind Kind, downloadID string) string {
	return filepath.Join(d.path, fmt.Sprintf(".%s_%s", kind, downloadID))
}

// Write creates a marker file for the given download
func (d *Dir) Write(kind Kind, downloadID string) error {
	if err := os.MkdirAll(d.path, 0o755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	path := d.markerPath(kind, downloadID)
	if err := os.WriteFile(path, []byte(payloads[kind]+"\n"), 0o644); err != nil {
		return fmt.Errorf("failed to write %s marker: %w", kind, err)
	}

	d.logger.Debug("Wrote signal marker", "kind", string(kind), "download_id", downloadID)
	return nil
}

// Clear removes a marker file if present. A missing marker is not an
// error, it simply was never written or already consumed.
func (d *Dir) Clear(kind Kind, downloadID string) error {
	err := os.Remove(d.markerPath(kind, downloadID))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove %s marker: %w", kind, err)
	}
	return nil
}

// Exists reports whether a marker is currently set
func (d *Dir) Exists(kind Kind, downloadID string) bool {
	_, err := os.Stat(d.markerPath(kind, downloadID))
	return err == nil
}

// ClearAll removes every marker for a download id, used before a fresh
// fetcher start so stale signals cannot stop it immediately
func (d *Dir) ClearAll(downloadID string) error {
	for _, kind := range []Kind{Stop, Pause, Cancel} {
		if err := d.Clear(kind, downloadID); err != nil {
			return err
		}
	}
	return nil
}

// Sweep removes all marker files in the directory. Called on shutdown
// so stale markers do not produce false signals on the next run.
func (d *Dir) Sweep() error {
	entries, err := os.ReadDir(d.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read state directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".stop_") ||
			strings.HasPrefix(name, ".pause_") ||
			strings.HasPrefix(name, ".cancel_") {
			if err := os.Remove(filepath.Join(d.path, name)); err != nil {
				d.logger.Warn("Failed to remove stale marker", "marker", name, "error", err)
				continue
			}
			d.logger.Debug("Removed stale marker", "marker", name)
		}
	}

	return nil
}
