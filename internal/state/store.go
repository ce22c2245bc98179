// Package state persists per-download task state across application restarts
package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"novelreader/pkg/models"
)

// StateFileName is the snapshot document written under the state directory
const StateFileName = "download_states.json"

// document is the on-disk shape of the snapshot file
type document struct {
	Downloads []models.DownloadState `json:"downloads"`
}

// Store keeps the in-memory mirror of persisted download states and
// writes it to disk as a single JSON snapshot. Progress updates only
// mark the store dirty; a background flush loop rate-limits the actual
// writes. Pause, cancel, completion and shutdown save unconditionally.
type Store struct {
	path         string
	saveInterval time.Duration
	logger       *slog.Logger

	mu      sync.Mutex
	records []models.DownloadState
	dirty   bool
}

// NewStore creates a store persisting to stateDir/download_states.json
func NewStore(stateDir string, saveInterval time.Duration) *Store {
	return &Store{
		path:         filepath.Join(stateDir, StateFileName),
		saveInterval: saveInterval,
		logger:       slog.Default(),
	}
}

// Load reads the snapshot file and returns all reconstructed records.
// A missing file is not an error, it means no prior state.
func (s *Store) Load() ([]models.DownloadState, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read state file: %w", err)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse state file: %w", err)
	}

	s.mu.Lock()
	s.records = doc.Downloads
	s.mu.Unlock()

	return s.Records(), nil
}

// Update upserts a record by download id. The write to disk is deferred
// to the flush loop so frequent progress events do not hammer the disk.
func (s *Store) Update(record models.DownloadState) {
	s.mu.Lock()
	s.upsertLocked(record)
	s.dirty = true
	s.mu.Unlock()
}

// UpdateNow upserts a record and saves the snapshot immediately. Used
// for pause, cancel and completion, which must survive a crash.
func (s *Store) UpdateNow(record models.DownloadState) error {
	s.mu.Lock()
	s.upsertLocked(record)
	s.mu.Unlock()
	return s.SaveNow()
}

func (s *Store) upsertLocked(record models.DownloadState) {
	for i := range s.records {
		if s.records[i].ID == record.ID {
			s.records[i] = record
			return
		}
	}
	s.records = append(s.records, record)
}

// Get returns the record for a download id, if one exists
func (s *Store) Get(id string) (models.DownloadState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, record := range s.records {
		if record.ID == id {
			return record, true
		}
	}
	return models.DownloadState{}, false
}

// Records returns a copy of every known record
func (s *Store) Records() []models.DownloadState {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.DownloadState, len(s.records))
	copy(out, s.records)
	return out
}

// SaveNow serializes every record to the snapshot file. The write is
// all-or-nothing per call; a partial write on crash is an accepted risk
// since the next load falls back to the last complete snapshot.
func (s *Store) SaveNow() error {
	s.mu.Lock()
	doc := document{Downloads: make([]models.DownloadState, len(s.records))}
	copy(doc.Downloads, s.records)
	s.dirty = false
	s.mu.Unlock()

	data, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to marshal download states: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}

	return nil
}

// Run flushes dirty state on the save interval until the context is
// cancelled, then performs a final save. Save failures are logged and
// retried on the next tick, never propagated.
func (s *Store) Run(ctx context.Context) {
	ticker := time.NewTicker(s.saveInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			if err := s.SaveNow(); err != nil {
				s.logger.Error("Final state save failed", "error", err)
			}
			return
		case <-ticker.C:
			s.mu.Lock()
			dirty := s.dirty
			s.mu.Unlock()

			if !dirty {
				continue
			}
			if err := s.SaveNow(); err != nil {
				s.logger.Warn("Failed to save download states, will retry", "error", err)
			}
		}
	}
}
