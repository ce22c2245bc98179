// Package sources manages the download source configuration consumed
// by the external fetcher
package sources

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"novelreader/pkg/models"
)

// document is the on-disk shape of sources.json
type document struct {
	Sources []models.Source `json:"sources"`
}

// Store reads and writes the source configuration file
type Store struct {
	path   string
	logger *slog.Logger
}

// NewStore creates a store for the given sources.json path
func NewStore(path string) *Store {
	return &Store{
		path:   path,
		logger: slog.Default(),
	}
}

// Defaults returns the built-in source list written on first run
func Defaults() []models.Source {
	return []models.Source{
		{Name: "RoyalRoad", BaseURL: "https://www.royalroad.com", SearchEndpoint: "/fictions/search?title={query}", Enabled: true},
		{Name: "NovelUpdates", BaseURL: "https://www.novelupdates.com", SearchEndpoint: "/series-finder/?sf=1&sh={query}", Enabled: true},
		{Name: "WebNovel", BaseURL: "https://www.webnovel.com", SearchEndpoint: "/search?keywords={query}", Enabled: false},
	}
}

// Init loads the configuration, creating it with defaults when the
// file does not exist yet
func (s *Store) Init() ([]models.Source, error) {
	srcs, err := s.Load()
	if err == nil {
		return srcs, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	defaults := Defaults()
	if err := s.Save(defaults); err != nil {
		return nil, err
	}
	s.logger.Info("Created default download sources", "path", s.path, "count", len(defaults))
	return defaults, nil
}

// Load reads the source list from disk
func (s *Store) Load() ([]models.Source, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("sources config not found: %w", err)
		}
		return nil, fmt.Errorf("failed to read sources config: %w", err)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse sources config: %w", err)
	}

	return doc.Sources, nil
}

// Save writes the source list to disk
func (s *Store) Save(srcs []models.Source) error {
	data, err := json.MarshalIndent(document{Sources: srcs}, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to marshal sources config: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write sources config: %w", err)
	}

	return nil
}

// Enabled filters the list down to sources the user has switched on
func Enabled(srcs []models.Source) []models.Source {
	var out []models.Source
	for _, src := range srcs {
		if src.Enabled {
			out = append(out, src)
		}
	}
	return out
}
