// Package downloader implements the download task manager: queuing,
// the background worker loop, fetcher process lifecycle and
// reconciliation with persisted state.
package downloader

import (
	"bufio"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"novelreader/internal/fetcher"
	"novelreader/internal/signals"
	"novelreader/pkg/models"
)

// Options configures a Manager
type Options struct {
	Runner      fetcher.Runner
	Store       StateStore
	Registry    ContentRegistry
	Cleanup     CleanupService
	Signals     *signals.Dir
	Disk        DiskChecker
	OutputRoot  string
	SourcesPath string
	// PollInterval is the worker loop scan interval
	PollInterval time.Duration
	// MinFreeDiskMB fails a task early when the output volume has less
	// free space; zero disables the check
	MinFreeDiskMB uint64
}

// Manager is the single authority over which download tasks run. It
// owns the task queue, one polling worker goroutine, and one execution
// goroutine per running task.
type Manager struct {
	queue  *TaskQueue
	parser *ProgressParser
	logger *slog.Logger

	runner   fetcher.Runner
	store    StateStore
	registry ContentRegistry
	cleanup  CleanupService
	signals  *signals.Dir
	disk     DiskChecker

	outputRoot   string
	sourcesPath  string
	pollInterval time.Duration
	minFreeDisk  uint64

	mu          sync.Mutex
	handles     map[string]*processHandle
	loopRunning bool

	terminate atomic.Bool
	wg        sync.WaitGroup
}

// NewManager creates a download manager
func NewManager(opts Options) *Manager {
	if opts.PollInterval <= 0 {
		opts.PollInterval = 500 * time.Millisecond
	}
	if opts.Disk == nil {
		opts.Disk = gopsutilDisk{}
	}

	return &Manager{
		queue:        NewTaskQueue(),
		parser:       NewProgressParser(opts.Store),
		logger:       slog.Default(),
		runner:       opts.Runner,
		store:        opts.Store,
		registry:     opts.Registry,
		cleanup:      opts.Cleanup,
		signals:      opts.Signals,
		disk:         opts.Disk,
		outputRoot:   opts.OutputRoot,
		sourcesPath:  opts.SourcesPath,
		pollInterval: opts.PollInterval,
		minFreeDisk:  opts.MinFreeDiskMB * 1024 * 1024,
		handles:      make(map[string]*processHandle),
	}
}

// Enqueue validates the chapter range, registers the content, creates a
// Queued task and starts the worker loop if it is not already running.
// Nothing is persisted until execution starts.
func (m *Manager) Enqueue(result models.SearchResult, contentType models.ContentType, startChapter, endChapter int) (string, error) {
	if startChapter < 1 {
		return "", fmt.Errorf("start chapter must be at least 1, got %d", startChapter)
	}
	if endChapter != models.AllChapters && endChapter < startChapter {
		return "", fmt.Errorf("end chapter %d is before start chapter %d", endChapter, startChapter)
	}
	if result.Title == "" {
		return "", fmt.Errorf("content title cannot be empty")
	}

	task := &models.Task{
		DownloadID:    models.GenerateDownloadID(result.Title, contentType, time.Now()),
		ContentName:   result.Title,
		Author:        result.Author,
		SourceName:    result.SourceName,
		SourceURL:     result.URL,
		ContentType:   contentType,
		StartChapter:  startChapter,
		EndChapter:    endChapter,
		TotalChapters: result.TotalChapters,
		CreatedAt:     time.Now(),
	}
	task.SetStatus(models.StatusQueued)

	// Register the content so resume can find its source info later
	if err := m.registry.Upsert(&models.Content{
		Name:          result.Title,
		Author:        result.Author,
		Type:          contentType,
		SourceName:    result.SourceName,
		SourceURL:     result.URL,
		TotalChapters: result.TotalChapters,
	}); err != nil {
		m.logger.Warn("Failed to register content", "content", result.Title, "error", err)
	}

	// A fresh download supersedes an earlier cancel of the same content
	if err := m.cleanup.ClearCancelled(result.Title); err != nil {
		m.logger.Warn("Failed to clear cancelled marker", "content", result.Title, "error", err)
	}

	m.queue.Enqueue(task)
	m.logger.Info("Download queued",
		"download_id", task.DownloadID,
		"content", task.ContentName,
		"start_chapter", startChapter,
		"end_chapter", endChapter)

	m.ensureWorkerLoop()
	return task.DownloadID, nil
}

// Pause marks the task paused, signals the running fetcher through its
// cooperative flag and the pause marker, and persists immediately.
func (m *Manager) Pause(downloadID string) error {
	inQueue := m.queue.Update(downloadID, func(task *models.Task) {
		task.SetStatus(models.StatusPaused)
	})

	record, inStore := m.store.Get(downloadID)
	if !inQueue && !inStore {
		return fmt.Errorf("unknown download id %q", downloadID)
	}

	m.mu.Lock()
	if handle, ok := m.handles[downloadID]; ok {
		handle.shouldStop.Store(true)
	}
	m.mu.Unlock()

	if err := m.signals.Write(signals.Pause, downloadID); err != nil {
		m.logger.Warn("Failed to write pause marker", "download_id", downloadID, "error", err)
	}

	if task, ok := m.queue.Get(downloadID); ok {
		record = task.State()
	} else {
		record.IsPaused = true
		record.LastUpdate = time.Now().Unix()
	}
	if err := m.store.UpdateNow(record); err != nil {
		m.logger.Warn("Failed to persist paused state", "download_id", downloadID, "error", err)
	}

	m.logger.Info("Download paused", "download_id", downloadID)
	return nil
}

// Resume clears the paused flag and the last error, removes the pause
// marker and re-enqueues a continuation task starting at the chapter
// after the last one downloaded.
func (m *Manager) Resume(downloadID string) error {
	record, ok := m.store.Get(downloadID)
	if !ok {
		return fmt.Errorf("unknown download id %q", downloadID)
	}
	if !record.IsPaused {
		return fmt.Errorf("download %q is not paused", downloadID)
	}

	record.IsPaused = false
	record.LastError = ""
	record.LastUpdate = time.Now().Unix()
	if err := m.store.UpdateNow(record); err != nil {
		m.logger.Warn("Failed to persist resumed state", "download_id", downloadID, "error", err)
	}

	if err := m.signals.Clear(signals.Pause, downloadID); err != nil {
		m.logger.Warn("Failed to remove pause marker", "download_id", downloadID, "error", err)
	}

	if err := m.enqueueContinuation(record); err != nil {
		return err
	}

	m.logger.Info("Download resumed", "download_id", downloadID)
	return nil
}

// Cancel marks the task terminal, signals the fetcher, writes the
// cancel marker and marks the partial download on disk. A task that
// never started goes terminal without a fetcher process ever spawning.
func (m *Manager) Cancel(downloadID string) error {
	var contentName string
	inQueue := m.queue.Update(downloadID, func(task *models.Task) {
		task.SetStatus(models.StatusCancelled)
		task.LastError = "Cancelled by user"
		contentName = task.ContentName
	})

	record, inStore := m.store.Get(downloadID)
	if !inQueue && !inStore {
		return fmt.Errorf("unknown download id %q", downloadID)
	}
	if contentName == "" {
		contentName = record.ContentName
	}

	m.mu.Lock()
	if handle, ok := m.handles[downloadID]; ok {
		handle.shouldTerminate.Store(true)
	}
	m.mu.Unlock()

	if err := m.signals.Write(signals.Cancel, downloadID); err != nil {
		m.logger.Warn("Failed to write cancel marker", "download_id", downloadID, "error", err)
	}

	if task, ok := m.queue.Get(downloadID); ok {
		record = task.State()
	} else {
		record.IsComplete = true
		record.LastError = "Cancelled by user"
		record.LastUpdate = time.Now().Unix()
	}
	if err := m.store.UpdateNow(record); err != nil {
		m.logger.Warn("Failed to persist cancelled state", "download_id", downloadID, "error", err)
	}

	if contentName != "" {
		if err := m.cleanup.MarkCancelled(contentName); err != nil {
			m.logger.Warn("Failed to mark partial download", "content", contentName, "error", err)
		}
	}

	m.logger.Info("Download cancelled", "download_id", downloadID)
	return nil
}

// Snapshot returns copies of every live task for display
func (m *Manager) Snapshot() []models.Task {
	return m.queue.Snapshot()
}

// Reconcile re-queues every interrupted, non-paused download from the
// persisted records. Called once at startup.
func (m *Manager) Reconcile(records []models.DownloadState) {
	for _, record := range records {
		if !record.Resumable() {
			continue
		}
		if err := m.enqueueContinuation(record); err != nil {
			m.logger.Warn("Failed to auto-resume download",
				"download_id", record.ID, "error", err)
			continue
		}
		m.logger.Info("Auto-resuming interrupted download",
			"download_id", record.ID,
			"content", record.ContentName,
			"current_chapter", record.CurrentChapter)
	}
}

// enqueueContinuation builds a Resuming task from a persisted record.
// The continuation keeps the record's download id so its state history
// stays in one place.
func (m *Manager) enqueueContinuation(record models.DownloadState) error {
	content, err := m.registry.GetByName(record.ContentName)
	if err != nil {
		return fmt.Errorf("cannot resume %q: %w", record.ContentName, err)
	}

	endChapter := record.TotalChapters
	if endChapter <= 0 {
		endChapter = models.AllChapters
	}

	task := &models.Task{
		DownloadID:     record.ID,
		ContentName:    record.ContentName,
		Author:         content.Author,
		SourceName:     content.SourceName,
		SourceURL:      content.SourceURL,
		ContentType:    record.Type,
		StartChapter:   record.CurrentChapter + 1,
		EndChapter:     endChapter,
		CurrentChapter: record.CurrentChapter,
		TotalChapters:  record.TotalChapters,
		Progress:       record.Progress,
		CreatedAt:      time.Now(),
	}
	task.SetStatus(models.StatusResuming)

	// Replace any stale entry with the same id
	m.queue.Remove(record.ID)
	m.queue.Enqueue(task)
	m.ensureWorkerLoop()
	return nil
}

// ensureWorkerLoop starts the polling worker goroutine if it is idle
func (m *Manager) ensureWorkerLoop() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.loopRunning || m.terminate.Load() {
		return
	}
	m.loopRunning = true
	m.wg.Add(1)
	go m.processQueue()
}

// processQueue is the worker loop: it scans the queue on the poll
// interval, starts at most one task per scan, sweeps terminal tasks,
// and exits when no work remains or terminate is requested. The
// single-download guarantee is keyed on live process handles, not task
// flags: a paused task drops IsActive while its fetcher is still
// winding down.
func (m *Manager) processQueue() {
	defer m.wg.Done()
	m.logger.Debug("Worker loop started")

	for !m.terminate.Load() {
		if !m.hasActiveProcess() {
			if task := m.queue.TryTakeNext(); task != nil {
				m.startTask(task)
			}
		}

		m.queue.RemoveTerminal(m.activeProcessIDs())

		m.mu.Lock()
		if len(m.handles) == 0 && !m.queue.HasQueuedWork() {
			m.loopRunning = false
			m.mu.Unlock()
			m.logger.Debug("Worker loop stopped, no work remaining")
			return
		}
		m.mu.Unlock()

		time.Sleep(m.pollInterval)
	}

	m.mu.Lock()
	m.loopRunning = false
	m.mu.Unlock()
	m.logger.Debug("Worker loop stopped, terminate requested")
}

// hasActiveProcess reports whether a fetcher process is still live,
// including one winding down after a pause or cancel
func (m *Manager) hasActiveProcess() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.handles) > 0
}

// activeProcessIDs returns the ids of every live process handle
func (m *Manager) activeProcessIDs() map[string]struct{} {
	m.mu.Lock()
	defer m.mu.Unlock()

	ids := make(map[string]struct{}, len(m.handles))
	for id := range m.handles {
		ids[id] = struct{}{}
	}
	return ids
}

// startTask spawns the execution goroutine for a taken task
func (m *Manager) startTask(task *models.Task) {
	m.mu.Lock()
	if m.terminate.Load() {
		m.mu.Unlock()
		return
	}
	handle := newProcessHandle(task.DownloadID, task.ContentName)
	m.handles[task.DownloadID] = handle
	m.wg.Add(1)
	m.mu.Unlock()

	go m.executeTask(task.DownloadID, handle)
}

// executeTask runs one fetcher process for one task: spawn, stream
// lines through the parser, finalize status from the exit result. No
// error ever crosses this goroutine boundary; every failure becomes a
// task-status update.
func (m *Manager) executeTask(downloadID string, handle *processHandle) {
	defer m.wg.Done()
	defer handle.cancel()
	defer func() {
		m.mu.Lock()
		delete(m.handles, downloadID)
		m.mu.Unlock()
	}()

	// Stale markers from an earlier run would stop the fetcher instantly
	if err := m.signals.ClearAll(downloadID); err != nil {
		m.logger.Warn("Failed to clear stale markers", "download_id", downloadID, "error", err)
	}

	if m.minFreeDisk > 0 {
		if free, err := m.disk.FreeBytes(m.outputRoot); err != nil {
			m.logger.Warn("Disk space check failed", "path", m.outputRoot, "error", err)
		} else if free < m.minFreeDisk {
			m.failTask(downloadID, fmt.Sprintf("insufficient disk space: %d MB free", free/1024/1024))
			return
		}
	}

	task, ok := m.queue.Get(downloadID)
	if !ok {
		m.logger.Error("Task vanished before execution", "download_id", downloadID)
		return
	}

	args := fetcher.BuildDownloadArgs(&task, m.outputRoot, m.sourcesPath)

	m.queue.Update(downloadID, func(t *models.Task) {
		t.SetStatus(models.StatusDownloading)
	})

	m.logger.Info("Starting download",
		"download_id", downloadID,
		"content", task.ContentName,
		"start_chapter", task.StartChapter,
		"end_chapter", task.EndChapter)

	proc, err := m.runner.Start(handle.ctx, args)
	if err != nil {
		m.failTask(downloadID, fmt.Sprintf("failed to start fetcher process: %v", err))
		return
	}

	// The scan advances only as fast as the fetcher produces lines.
	// Cooperative flags are checked per line: on terminate the process
	// is killed via its context, on pause further output is drained but
	// no longer applied so it cannot disturb the paused record.
	scanner := bufio.NewScanner(proc.Output())
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if handle.shouldTerminate.Load() {
			handle.cancel()
			break
		}
		if handle.shouldStop.Load() {
			continue
		}
		line := scanner.Text()
		m.queue.Update(downloadID, func(t *models.Task) {
			m.parser.Parse(line, t)
		})
	}
	if err := scanner.Err(); err != nil {
		m.logger.Warn("Error reading fetcher output", "download_id", downloadID, "error", err)
	}

	waitErr := proc.Wait()
	m.finalizeTask(downloadID, waitErr)
}

// failTask marks a task failed before or during execution
func (m *Manager) failTask(downloadID, reason string) {
	var state models.DownloadState
	found := m.queue.Update(downloadID, func(t *models.Task) {
		t.SetStatus(models.StatusFailed)
		t.LastError = reason
		state = t.State()
	})
	if !found {
		return
	}

	if err := m.store.UpdateNow(state); err != nil {
		m.logger.Warn("Failed to persist failed state", "download_id", downloadID, "error", err)
	}
	m.logger.Error("Download failed", "download_id", downloadID, "error", reason)
}

// finalizeTask settles the task status once the fetcher process exits.
// The task is guaranteed to still be in the queue: the terminal sweep
// skips tasks with a live process handle, and the handle outlives this
// call.
func (m *Manager) finalizeTask(downloadID string, waitErr error) {
	var state models.DownloadState
	var completed bool

	found := m.queue.Update(downloadID, func(t *models.Task) {
		switch {
		case t.IsPaused:
			// Paused while running; the fetcher honored the marker
		case t.Terminal():
			// Cancelled mid-run or already completed via output parsing
			completed = t.Status == models.StatusComplete
		case waitErr == nil && t.Progress > 0:
			t.SetStatus(models.StatusComplete)
			completed = true
		default:
			t.SetStatus(models.StatusFailed)
			if t.LastError == "" {
				if waitErr != nil {
					t.LastError = fmt.Sprintf("fetcher process failed: %v", waitErr)
				} else {
					t.LastError = "download process produced no progress"
				}
			}
		}
		state = t.State()
	})
	if !found {
		// The store already holds the last known record; never
		// fabricate one from a zero task
		m.logger.Error("Task missing at finalization", "download_id", downloadID)
		return
	}

	if err := m.store.UpdateNow(state); err != nil {
		m.logger.Warn("Failed to persist final state", "download_id", downloadID, "error", err)
	}

	if completed {
		// Make newly downloaded chapters visible immediately
		if err := m.registry.RefreshChapterCounts(m.outputRoot); err != nil {
			m.logger.Warn("Failed to refresh chapter counts", "error", err)
		}
	}

	m.logger.Info("Download finished",
		"download_id", downloadID,
		"complete", state.IsComplete,
		"last_error", state.LastError)
}

// Shutdown signals every active task to terminate, writes stop markers,
// waits for the worker loop and all execution goroutines to exit, then
// performs a final save and marker sweep. It does not return until
// every goroutine owned by the manager has finished.
func (m *Manager) Shutdown() {
	m.terminate.Store(true)

	m.mu.Lock()
	for id, handle := range m.handles {
		handle.shouldTerminate.Store(true)
		if err := m.signals.Write(signals.Stop, id); err != nil {
			m.logger.Warn("Failed to write stop marker", "download_id", id, "error", err)
		}
		// A fetcher that ignores the stop marker must not block the join
		handle.cancel()
	}
	m.mu.Unlock()

	m.wg.Wait()

	if err := m.store.SaveNow(); err != nil {
		m.logger.Error("Final state save failed", "error", err)
	}
	if err := m.signals.Sweep(); err != nil {
		m.logger.Warn("Marker sweep failed", "error", err)
	}

	m.logger.Info("Download manager stopped")
}
