// Package cleanup handles non-destructive cleanup of partial downloads
package cleanup

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// CancelledMarker is written into a content directory when its download
// is cancelled. Downloaded chapter files are kept for manual recovery.
const CancelledMarker = ".cancelled"

// Service marks cancelled downloads on disk instead of deleting them
type Service struct {
	outputRoot string
	logger     *slog.Logger
}

// NewService creates a new cleanup service rooted at the output directory
func NewService(outputRoot string) *Service {
	return &Service{
		outputRoot: outputRoot,
		logger:     slog.Default(),
	}
}

// MarkCancelled writes the cancelled marker into the content directory.
// Partial chapter files are deliberately left in place.
func (s *Service) MarkCancelled(contentName string) error {
	dir, err := s.contentDir(contentName)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create content directory: %w", err)
	}

	path := filepath.Join(dir, CancelledMarker)
	if err := os.WriteFile(path, []byte("Download cancelled by user\n"), 0o644); err != nil {
		return fmt.Errorf("failed to write cancelled marker: %w", err)
	}

	s.logger.Info("Marked download as cancelled", "content", contentName)
	return nil
}

// IsCancelled reports whether the content directory carries the marker
func (s *Service) IsCancelled(contentName string) bool {
	dir, err := s.contentDir(contentName)
	if err != nil {
		return false
	}
	_, err = os.Stat(filepath.Join(dir, CancelledMarker))
	return err == nil
}

// ClearCancelled removes the marker, used when the same content is
// downloaded again after a cancel
func (s *Service) ClearCancelled(contentName string) error {
	dir, err := s.contentDir(contentName)
	if err != nil {
		return err
	}

	err = os.Remove(filepath.Join(dir, CancelledMarker))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove cancelled marker: %w", err)
	}
	return nil
}

// contentDir resolves and validates the directory for a content name.
// Names that would escape the output root are rejected.
func (s *Service) contentDir(contentName string) (string, error) {
	if contentName == "" {
		return "", fmt.Errorf("content name cannot be empty")
	}

	dir := filepath.Join(s.outputRoot, contentName)

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve content directory: %w", err)
	}
	absRoot, err := filepath.Abs(s.outputRoot)
	if err != nil {
		return "", fmt.Errorf("failed to resolve output root: %w", err)
	}

	if !strings.HasPrefix(absDir, absRoot+string(os.PathSeparator)) {
		return "", fmt.Errorf("content directory escapes output root: %s", contentName)
	}

	return dir, nil
}
