package downloader

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"novelreader/internal/downloader/mocks"
	"novelreader/pkg/models"
)

func TestProgressParser_ProgressLine(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockStateStore(ctrl)
	store.EXPECT().Update(gomock.Any()).Times(1)

	parser := NewProgressParser(store)
	task := &models.Task{DownloadID: "novel_test_1"}
	task.SetStatus(models.StatusDownloading)

	ok := parser.Parse("Progress: 3/50 (6.0%) - Chapter 3: Awakening", task)
	require.True(t, ok)
	require.Equal(t, 3, task.CurrentChapter)
	require.Equal(t, 50, task.TotalChapters)
	require.Equal(t, 6.0, task.Progress)
}

func TestProgressParser_MalformedProgressIgnored(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockStateStore(ctrl)

	parser := NewProgressParser(store)
	task := &models.Task{DownloadID: "novel_test_1", CurrentChapter: 2, Progress: 4.0}
	task.SetStatus(models.StatusDownloading)

	ok := parser.Parse("Progress: abc/50 (6.0%)", task)
	require.False(t, ok)
	require.Equal(t, 2, task.CurrentChapter)
	require.Equal(t, 4.0, task.Progress)
}

func TestProgressParser_ProgressNeverRegresses(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockStateStore(ctrl)
	store.EXPECT().Update(gomock.Any()).Times(2)

	parser := NewProgressParser(store)
	task := &models.Task{DownloadID: "novel_test_1"}
	task.SetStatus(models.StatusDownloading)

	require.True(t, parser.Parse("Progress: 10/50 (20.0%)", task))
	require.Equal(t, 20.0, task.Progress)

	// A lower percent still updates the chapter but not the percent
	require.True(t, parser.Parse("Progress: 5/50 (10.0%)", task))
	require.Equal(t, 5, task.CurrentChapter)
	require.Equal(t, 20.0, task.Progress)
}

func TestProgressParser_ZeroTotalKeepsKnownTotal(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockStateStore(ctrl)
	store.EXPECT().Update(gomock.Any()).Times(1)

	parser := NewProgressParser(store)
	task := &models.Task{DownloadID: "novel_test_1", TotalChapters: 50}
	task.SetStatus(models.StatusDownloading)

	require.True(t, parser.Parse("Progress: 3/0 (0.0%)", task))
	require.Equal(t, 50, task.TotalChapters)
}

func TestProgressParser_Completion(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"lowercase phrase", "download complete for Lord of the Mysteries"},
		{"success phrase", "Successfully downloaded 50 chapters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			store := mocks.NewMockStateStore(ctrl)
			store.EXPECT().Update(gomock.Any()).Times(1)

			parser := NewProgressParser(store)
			task := &models.Task{DownloadID: "novel_test_1", Progress: 96.0}
			task.SetStatus(models.StatusDownloading)

			require.True(t, parser.Parse(tt.line, task))
			require.Equal(t, models.StatusComplete, task.Status)
			require.True(t, task.IsComplete)
			require.False(t, task.IsActive)
			require.Equal(t, 100.0, task.Progress)
		})
	}
}

func TestProgressParser_ErrorLines(t *testing.T) {
	tests := []struct {
		name      string
		line      string
		wantMatch bool
		wantError string
	}{
		{"generic error", "Error: connection timed out", true, "Error: connection timed out"},
		{"failed line", "Failed to fetch chapter 12", true, "Failed to fetch chapter 12"},
		{"sources warning excluded", "Error loading sources config, using defaults", false, ""},
		{"plain chatter", "Fetching chapter list", false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			store := mocks.NewMockStateStore(ctrl)

			parser := NewProgressParser(store)
			task := &models.Task{DownloadID: "novel_test_1"}
			task.SetStatus(models.StatusDownloading)

			require.Equal(t, tt.wantMatch, parser.Parse(tt.line, task))
			require.Equal(t, tt.wantError, task.LastError)
			// An error line alone never changes the status
			require.Equal(t, models.StatusDownloading, task.Status)
		})
	}
}
