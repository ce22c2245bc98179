package downloader

import (
	"context"
	"sync/atomic"

	"github.com/shirou/gopsutil/v3/disk"
)

// processHandle is the runtime-only handle for one in-flight task. It
// owns the cooperative-cancellation flags the execution goroutine and
// the fetcher-side marker files communicate through, plus the context
// that kills the process outright once termination is observed. Never
// persisted.
type processHandle struct {
	downloadID  string
	contentName string

	shouldStop      atomic.Bool
	shouldTerminate atomic.Bool

	ctx    context.Context
	cancel context.CancelFunc
}

func newProcessHandle(downloadID, contentName string) *processHandle {
	ctx, cancel := context.WithCancel(context.Background())
	return &processHandle{
		downloadID:  downloadID,
		contentName: contentName,
		ctx:         ctx,
		cancel:      cancel,
	}
}

// gopsutilDisk implements DiskChecker using gopsutil
type gopsutilDisk struct{}

func (gopsutilDisk) FreeBytes(path string) (uint64, error) {
	usage, err := disk.Usage(path)
	if err != nil {
		return 0, err
	}
	return usage.Free, nil
}
