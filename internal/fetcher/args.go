package fetcher

import (
	"strconv"
	"strings"

	"novelreader/pkg/models"
)

// BuildDownloadArgs builds the fetcher argument list for one task.
// The source URL is passed with --url when it is a real URL; otherwise
// the content name is passed with --name and the fetcher resolves it.
func BuildDownloadArgs(task *models.Task, outputRoot, sourcesPath string) []string {
	args := []string{
		"download",
		"--source", task.SourceName,
		"--output", outputRoot,
		"--start", strconv.Itoa(task.StartChapter),
	}

	if strings.HasPrefix(task.SourceURL, "http") {
		args = append(args, "--url", task.SourceURL)
	} else {
		args = append(args, "--name", task.ContentName)
	}

	if task.EndChapter > 0 {
		args = append(args, "--end", strconv.Itoa(task.EndChapter))
	}

	args = append(args,
		"--config", sourcesPath,
		"--download-id", task.DownloadID,
	)

	return args
}

// SearchOptions narrows a search request
type SearchOptions struct {
	ContentType  models.ContentType
	MaxResults   int
	IncludeAdult bool
	Language     string
}

// BuildSearchArgs builds the fetcher argument list for a search request
func BuildSearchArgs(query string, opts SearchOptions, sourcesPath string) []string {
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	args := []string{
		"search",
		"--query", query,
		"--content-type", opts.ContentType.String(),
		"--max-results", strconv.Itoa(maxResults),
		"--config", sourcesPath,
	}

	if opts.IncludeAdult {
		args = append(args, "--include-adult")
	}
	if opts.Language != "" {
		args = append(args, "--language", opts.Language)
	}

	return args
}
