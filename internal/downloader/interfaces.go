package downloader

import (
	"novelreader/pkg/models"
)

// StateStore defines the persistent-state operations used by the manager
//
//go:generate mockgen -source=interfaces.go -destination=mocks/mock_interfaces.go -package=mocks
type StateStore interface {
	// Update upserts a record; the write to disk may be deferred
	Update(record models.DownloadState)
	// UpdateNow upserts a record and persists immediately
	UpdateNow(record models.DownloadState) error
	// Get returns the record for a download id
	Get(id string) (models.DownloadState, bool)
	// SaveNow persists the full snapshot unconditionally
	SaveNow() error
}

// ContentRegistry defines the content-catalog operations used by the manager
type ContentRegistry interface {
	Upsert(content *models.Content) error
	GetByName(name string) (*models.Content, error)
	RefreshChapterCounts(outputRoot string) error
}

// CleanupService defines the partial-download cleanup operations
type CleanupService interface {
	MarkCancelled(contentName string) error
	ClearCancelled(contentName string) error
}

// DiskChecker reports free disk space for the download target
type DiskChecker interface {
	FreeBytes(path string) (uint64, error)
}
