package models

import "time"

// ContentType identifies the kind of content a task downloads.
// The numeric values are persisted in download_states.json.
type ContentType int

const (
	ContentAll ContentType = iota
	ContentNovel
	ContentManga
	ContentManhwa
	ContentManhua
)

// String returns the form used in download ids and fetcher arguments
func (t ContentType) String() string {
	switch t {
	case ContentNovel:
		return "novel"
	case ContentManga:
		return "manga"
	case ContentManhwa:
		return "manhwa"
	case ContentManhua:
		return "manhua"
	default:
		return "all"
	}
}

// ParseContentType converts a fetcher-facing string back to a ContentType
func ParseContentType(s string) ContentType {
	switch s {
	case "novel":
		return ContentNovel
	case "manga":
		return ContentManga
	case "manhwa":
		return ContentManhwa
	case "manhua":
		return ContentManhua
	default:
		return ContentAll
	}
}

// Content is one entry of the on-disk content registry
type Content struct {
	ID                 int64       `json:"id" db:"id"`
	Name               string      `json:"name" db:"name"`
	Author             string      `json:"author" db:"author"`
	Type               ContentType `json:"type" db:"type"`
	SourceName         string      `json:"source_name" db:"source_name"`
	SourceURL          string      `json:"source_url" db:"source_url"`
	TotalChapters      int         `json:"total_chapters" db:"total_chapters"`
	DownloadedChapters int         `json:"downloaded_chapters" db:"downloaded_chapters"`
	CreatedAt          time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time   `json:"updated_at" db:"updated_at"`
}

// SearchResult is one entry of the fetcher's search output
type SearchResult struct {
	Title         string `json:"title"`
	Author        string `json:"author"`
	URL           string `json:"url"`
	Description   string `json:"description"`
	SourceName    string `json:"source_name"`
	TotalChapters int    `json:"total_chapters"`
	CoverURL      string `json:"cover_url"`
}

// Source describes one configured download source
type Source struct {
	Name           string `json:"name"`
	BaseURL        string `json:"base_url"`
	SearchEndpoint string `json:"search_endpoint"`
	Enabled        bool   `json:"enabled"`
}
