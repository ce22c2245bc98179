// Package search runs content searches through the external fetcher
package search

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"novelreader/internal/fetcher"
	"novelreader/pkg/fuzzy"
	"novelreader/pkg/models"
)

// Service invokes the fetcher's search action and ranks the results
type Service struct {
	runner      fetcher.Runner
	matcher     *fuzzy.Matcher
	sourcesPath string
	logger      *slog.Logger
}

// NewService creates a search service
func NewService(runner fetcher.Runner, sourcesPath string) *Service {
	return &Service{
		runner:      runner,
		matcher:     fuzzy.NewMatcher(),
		sourcesPath: sourcesPath,
		logger:      slog.Default(),
	}
}

// Search runs a fetcher search and returns results ordered by how well
// they match the query. The fetcher prints a JSON array of results on
// its output stream mixed with free-text chatter; only lines that parse
// as a result array are consumed.
func (s *Service) Search(ctx context.Context, query string, opts fetcher.SearchOptions) ([]models.SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("search query cannot be empty")
	}

	args := fetcher.BuildSearchArgs(query, opts, s.sourcesPath)

	proc, err := s.runner.Start(ctx, args)
	if err != nil {
		return nil, fmt.Errorf("failed to start search: %w", err)
	}

	var results []models.SearchResult
	parsed := false

	scanner := bufio.NewScanner(proc.Output())
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "[") {
			continue
		}

		var batch []models.SearchResult
		if err := json.Unmarshal([]byte(line), &batch); err != nil {
			s.logger.Debug("Ignoring unparseable search output line", "error", err)
			continue
		}
		results = batch
		parsed = true
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read search output: %w", err)
	}

	if err := proc.Wait(); err != nil && !parsed {
		return nil, fmt.Errorf("search process failed: %w", err)
	}

	return s.matcher.RankResults(query, results), nil
}
