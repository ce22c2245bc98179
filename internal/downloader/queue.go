package downloader

import (
	"sync"

	"novelreader/pkg/models"
)

// TaskQueue is the concurrency-safe task list shared between the UI
// (enqueue, snapshot) and the worker loop (take, mutate). A single
// mutex guards it; critical sections stay short and never span process
// I/O. Task pointers never leave the queue — all mutation goes through
// Update and all reads through Snapshot copies.
type TaskQueue struct {
	mu    sync.Mutex
	tasks []*models.Task
}

// NewTaskQueue creates an empty task queue
func NewTaskQueue() *TaskQueue {
	return &TaskQueue{}
}

// Enqueue appends a task to the queue
func (q *TaskQueue) Enqueue(task *models.Task) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.tasks = append(q.tasks, task)
}

// TryTakeNext finds the first startable task, marks it Starting and
// returns a copy. Returns nil when nothing is startable or another
// task is already active (downloads are serialized).
func (q *TaskQueue) TryTakeNext() *models.Task {
	q.mu.Lock()
	defer q.mu.Unlock()

	for _, task := range q.tasks {
		if task.IsActive {
			// Active task check: never start a second download
			return nil
		}
	}

	for _, task := range q.tasks {
		if task.IsComplete || task.IsPaused || task.IsActive {
			continue
		}
		switch task.Status {
		case models.StatusQueued, models.StatusStarting, models.StatusResuming:
			task.SetStatus(models.StatusStarting)
			copied := *task
			return &copied
		}
	}

	return nil
}

// Update applies a mutation to the task with the given download id
// under the queue lock. Returns false when the id is unknown.
func (q *TaskQueue) Update(downloadID string, fn func(*models.Task)) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	for _, task := range q.tasks {
		if task.DownloadID == downloadID {
			fn(task)
			return true
		}
	}
	return false
}

// Get returns a copy of the task with the given download id
func (q *TaskQueue) Get(downloadID string) (models.Task, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for _, task := range q.tasks {
		if task.DownloadID == downloadID {
			return *task, true
		}
	}
	return models.Task{}, false
}

// Snapshot returns copies of every task for display
func (q *TaskQueue) Snapshot() []models.Task {
	q.mu.Lock()
	defer q.mu.Unlock()

	out := make([]models.Task, 0, len(q.tasks))
	for _, task := range q.tasks {
		out = append(out, *task)
	}
	return out
}

// Remove deletes the task with the given download id
func (q *TaskQueue) Remove(downloadID string) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for i, task := range q.tasks {
		if task.DownloadID == downloadID {
			q.tasks = append(q.tasks[:i], q.tasks[i+1:]...)
			return
		}
	}
}

// RemoveTerminal drops tasks that reached a terminal state from the
// live queue, except those whose download id is in keep. A task can
// turn terminal (completion line, mid-run cancel) while its process is
// still being reaped; it must stay visible until finalization.
// Swept tasks keep their last state in the persistent store.
func (q *TaskQueue) RemoveTerminal(keep map[string]struct{}) {
	q.mu.Lock()
	defer q.mu.Unlock()

	kept := q.tasks[:0]
	for _, task := range q.tasks {
		if task.IsComplete && task.Terminal() {
			if _, live := keep[task.DownloadID]; !live {
				continue
			}
		}
		kept = append(kept, task)
	}
	q.tasks = kept
}

// HasQueuedWork reports whether any task still wants to run
func (q *TaskQueue) HasQueuedWork() bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	for _, task := range q.tasks {
		if !task.IsComplete && !task.IsPaused && task.Status != models.StatusFailed {
			return true
		}
	}
	return false
}

// Len returns the number of tasks currently in the queue
func (q *TaskQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.tasks)
}
