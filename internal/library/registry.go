// Package library provides the SQLite-backed registry of downloaded content
package library

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"novelreader/pkg/models"

	_ "modernc.org/sqlite"
)

// Registry wraps the SQLite connection holding the content catalog
type Registry struct {
	conn   *sql.DB
	logger *slog.Logger
}

// New creates a new registry connection and initializes the schema
func New(dbPath string) (*Registry, error) {
	// Add connection parameters to help with concurrent access
	connString := dbPath
	if dbPath != ":memory:" {
		connString = dbPath + "?_busy_timeout=30000&_journal_mode=WAL&_synchronous=NORMAL"
	}

	conn, err := sql.Open("sqlite", connString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite doesn't handle concurrent writes well
	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)

	r := &Registry{conn: conn, logger: slog.Default()}

	if err := r.initSchema(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return r, nil
}

// Close closes the database connection
func (r *Registry) Close() error {
	return r.conn.Close()
}

func (r *Registry) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS contents (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL UNIQUE,
		author TEXT,
		type INTEGER NOT NULL DEFAULT 0,
		source_name TEXT,
		source_url TEXT,
		total_chapters INTEGER DEFAULT 0,
		downloaded_chapters INTEGER DEFAULT 0,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_contents_name ON contents(name);
	CREATE INDEX IF NOT EXISTS idx_contents_type ON contents(type);
	`

	_, err := r.conn.Exec(schema)
	return err
}

// Upsert inserts a content entry or updates the existing row with the
// same name
func (r *Registry) Upsert(content *models.Content) error {
	now := time.Now()
	if content.CreatedAt.IsZero() {
		content.CreatedAt = now
	}
	content.UpdatedAt = now

	query := `
	INSERT INTO contents (
		name, author, type, source_name, source_url,
		total_chapters, downloaded_chapters, created_at, updated_at
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(name) DO UPDATE SET
		author = excluded.author,
		type = excluded.type,
		source_name = excluded.source_name,
		source_url = excluded.source_url,
		total_chapters = excluded.total_chapters,
		updated_at = excluded.updated_at
	`

	_, err := r.conn.Exec(query,
		content.Name, content.Author, content.Type, content.SourceName,
		content.SourceURL, content.TotalChapters, content.DownloadedChapters,
		content.CreatedAt, content.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert content: %w", err)
	}

	return nil
}

// GetByName retrieves a content entry by its name
func (r *Registry) GetByName(name string) (*models.Content, error) {
	query := `
	SELECT id, name, author, type, source_name, source_url,
		   total_chapters, downloaded_chapters, created_at, updated_at
	FROM contents WHERE name = ?
	`

	var content models.Content
	err := r.conn.QueryRow(query, name).Scan(
		&content.ID, &content.Name, &content.Author, &content.Type,
		&content.SourceName, &content.SourceURL, &content.TotalChapters,
		&content.DownloadedChapters, &content.CreatedAt, &content.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("content %q not found", name)
		}
		return nil, fmt.Errorf("failed to get content: %w", err)
	}

	return &content, nil
}

// List returns every content entry ordered by name
func (r *Registry) List() ([]*models.Content, error) {
	query := `
	SELECT id, name, author, type, source_name, source_url,
		   total_chapters, downloaded_chapters, created_at, updated_at
	FROM contents ORDER BY name
	`

	rows, err := r.conn.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list contents: %w", err)
	}
	defer rows.Close()

	var contents []*models.Content
	for rows.Next() {
		var content models.Content
		if err := rows.Scan(
			&content.ID, &content.Name, &content.Author, &content.Type,
			&content.SourceName, &content.SourceURL, &content.TotalChapters,
			&content.DownloadedChapters, &content.CreatedAt, &content.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan content: %w", err)
		}
		contents = append(contents, &content)
	}

	return contents, rows.Err()
}

// RefreshChapterCounts recounts downloaded chapter files under the
// output root and updates the registry. Called after a task completes
// so newly downloaded chapters are visible immediately.
func (r *Registry) RefreshChapterCounts(outputRoot string) error {
	contents, err := r.List()
	if err != nil {
		return err
	}

	for _, content := range contents {
		count := countChapterFiles(filepath.Join(outputRoot, content.Name, "chapters"))
		if count == content.DownloadedChapters {
			continue
		}

		_, err := r.conn.Exec(
			`UPDATE contents SET downloaded_chapters = ?, updated_at = ? WHERE id = ?`,
			count, time.Now(), content.ID,
		)
		if err != nil {
			r.logger.Warn("Failed to update chapter count",
				"content", content.Name, "error", err)
			continue
		}

		r.logger.Debug("Refreshed chapter count",
			"content", content.Name, "downloaded_chapters", count)
	}

	return nil
}

// countChapterFiles counts chapter<N>.json files written by the fetcher
func countChapterFiles(chaptersDir string) int {
	entries, err := os.ReadDir(chaptersDir)
	if err != nil {
		return 0
	}

	count := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, "chapter") && strings.HasSuffix(name, ".json") {
			count++
		}
	}
	return count
}
