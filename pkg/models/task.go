// Package models defines the data structures used throughout the application
package models

import (
	"fmt"
	"regexp"
	"time"
)

// TaskStatus represents the current status of a download task
type TaskStatus string

const (
	StatusQueued      TaskStatus = "Queued"
	StatusStarting    TaskStatus = "Starting"
	StatusDownloading TaskStatus = "Downloading"
	StatusPausing     TaskStatus = "Pausing"
	StatusPaused      TaskStatus = "Paused"
	StatusResuming    TaskStatus = "Resuming"
	StatusComplete    TaskStatus = "Complete"
	StatusFailed      TaskStatus = "Failed"
	StatusCancelled   TaskStatus = "Cancelled"
)

// Terminal reports whether the status is a final state
func (s TaskStatus) Terminal() bool {
	return s == StatusComplete || s == StatusCancelled
}

// AllChapters is the end-chapter sentinel meaning "every available chapter"
const AllChapters = -1

// Task represents one download job tracked by the manager
type Task struct {
	DownloadID     string      `json:"download_id"`
	ContentName    string      `json:"content_name"`
	Author         string      `json:"author"`
	SourceName     string      `json:"source_name"`
	SourceURL      string      `json:"source_url"`
	ContentType    ContentType `json:"content_type"`
	StartChapter   int         `json:"start_chapter"`
	EndChapter     int         `json:"end_chapter"`
	CurrentChapter int         `json:"current_chapter"`
	TotalChapters  int         `json:"total_chapters"`
	Status         TaskStatus  `json:"status"`
	Progress       float64     `json:"progress"`
	IsActive       bool        `json:"is_active"`
	IsPaused       bool        `json:"is_paused"`
	IsComplete     bool        `json:"is_complete"`
	LastError      string      `json:"last_error"`
	CreatedAt      time.Time   `json:"created_at"`
}

// SetStatus updates the status and keeps the derived flags consistent
// with it. Invariants: IsActive and IsComplete are never both true, and
// IsPaused implies not IsActive.
func (t *Task) SetStatus(status TaskStatus) {
	t.Status = status

	switch status {
	case StatusQueued, StatusResuming:
		t.IsActive = false
		t.IsPaused = false
		t.IsComplete = false
	case StatusStarting, StatusDownloading:
		t.IsActive = true
		t.IsPaused = false
		t.IsComplete = false
	case StatusPausing:
		t.IsActive = true
		t.IsPaused = false
	case StatusPaused:
		t.IsActive = false
		t.IsPaused = true
	case StatusComplete, StatusCancelled:
		t.IsActive = false
		t.IsPaused = false
		t.IsComplete = true
	case StatusFailed:
		t.IsActive = false
		t.IsComplete = false
	}
}

// Terminal reports whether the task reached a final state
func (t *Task) Terminal() bool {
	return t.Status.Terminal()
}

// State builds the persistent projection of the task
func (t *Task) State() DownloadState {
	return DownloadState{
		ID:             t.DownloadID,
		ContentName:    t.ContentName,
		Type:           t.ContentType,
		CurrentChapter: t.CurrentChapter,
		TotalChapters:  t.TotalChapters,
		IsPaused:       t.IsPaused,
		IsComplete:     t.IsComplete,
		Progress:       t.Progress,
		LastError:      t.LastError,
		LastUpdate:     time.Now().Unix(),
	}
}

var idSanitizer = regexp.MustCompile(`[^a-zA-Z0-9]`)

// GenerateDownloadID derives a globally unique download id from the
// content type, the sanitized content name and the creation timestamp
func GenerateDownloadID(contentName string, contentType ContentType, now time.Time) string {
	sanitized := idSanitizer.ReplaceAllString(contentName, "_")
	return fmt.Sprintf("%s_%s_%d", contentType.String(), sanitized, now.Unix())
}
