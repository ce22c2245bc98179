package downloader

import (
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"novelreader/pkg/models"
)

// progressRegex matches "Progress: <current>/<total> (<percent>%)",
// optionally followed by a chapter title
var progressRegex = regexp.MustCompile(`Progress:\s*(\d+)/(\d+)\s*\(([0-9.]+)%\)`)

// completion phrases emitted by the fetcher on its output stream
var completionPhrases = []string{
	"download complete",
	"Successfully downloaded",
}

// ProgressParser turns raw fetcher output lines into task state deltas.
// Fetcher output is untrusted free text, so everything is parsed
// defensively: unrecognized lines are ignored and malformed numbers
// never crash the worker.
type ProgressParser struct {
	store  StateStore
	logger *slog.Logger
}

// NewProgressParser creates a parser pushing progress updates into the
// persistent state store
func NewProgressParser(store StateStore) *ProgressParser {
	return &ProgressParser{
		store:  store,
		logger: slog.Default(),
	}
}

// Parse applies one output line to the task. It returns true when the
// line was recognized as progress, completion or an error message.
func (p *ProgressParser) Parse(line string, task *models.Task) bool {
	if match := progressRegex.FindStringSubmatch(line); match != nil {
		return p.parseProgress(match, line, task)
	}

	for _, phrase := range completionPhrases {
		if strings.Contains(line, phrase) {
			task.SetStatus(models.StatusComplete)
			task.Progress = 100.0
			p.store.Update(task.State())
			return true
		}
	}

	if isErrorLine(line) {
		// Informational until the process actually exits non-zero
		task.LastError = strings.TrimSpace(line)
		return true
	}

	return false
}

func (p *ProgressParser) parseProgress(match []string, line string, task *models.Task) bool {
	current, err := strconv.Atoi(match[1])
	if err != nil {
		p.logger.Warn("Failed to parse current chapter", "line", line, "error", err)
		return false
	}
	total, err := strconv.Atoi(match[2])
	if err != nil {
		p.logger.Warn("Failed to parse total chapters", "line", line, "error", err)
		return false
	}
	percent, err := strconv.ParseFloat(match[3], 64)
	if err != nil {
		p.logger.Warn("Failed to parse progress percent", "line", line, "error", err)
		return false
	}

	task.CurrentChapter = current
	if total > 0 {
		task.TotalChapters = total
	}
	// Progress never moves backwards while a task is active
	if percent > task.Progress {
		task.Progress = percent
	}

	p.store.Update(task.State())
	return true
}

// isErrorLine flags fetcher error chatter, ignoring the harmless
// source-config warning the fetcher prints on every start
func isErrorLine(line string) bool {
	if strings.Contains(line, "Error loading sources") {
		return false
	}
	return strings.Contains(line, "Error") ||
		strings.Contains(line, "error") ||
		strings.Contains(line, "Failed")
}
