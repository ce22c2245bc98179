package models

// DownloadState is the durable projection of a task, keyed by download
// id. Field names match the download_states.json document consumed by
// earlier releases, so state files survive upgrades.
type DownloadState struct {
	ID             string      `json:"id"`
	ContentName    string      `json:"contentName"`
	Type           ContentType `json:"type"`
	CurrentChapter int         `json:"currentChapter"`
	TotalChapters  int         `json:"totalChapters"`
	IsPaused       bool        `json:"isPaused"`
	IsComplete     bool        `json:"isComplete"`
	Progress       float64     `json:"progress"`
	LastError      string      `json:"lastError"`
	LastUpdate     int64       `json:"lastUpdate"`
}

// Resumable reports whether an interrupted download should be picked up
// again on startup
func (s DownloadState) Resumable() bool {
	return !s.IsPaused && !s.IsComplete
}
