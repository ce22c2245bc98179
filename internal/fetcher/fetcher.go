// Package fetcher wraps invocation of the external fetch process that
// performs the actual chapter downloads. The manager only consumes its
// command-line contract: line-oriented progress text on a merged
// stdout/stderr stream and a process exit code.
package fetcher

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
)

// Process is one running fetcher invocation
type Process interface {
	// Output is the merged stdout/stderr stream of the process
	Output() io.Reader
	// Wait blocks until the process exits and returns its exit error
	Wait() error
}

// Runner starts fetcher processes
//
//go:generate mockgen -source=fetcher.go -destination=mocks/mock_fetcher.go -package=mocks
type Runner interface {
	Start(ctx context.Context, args []string) (Process, error)
}

// ExecRunner runs the fetcher via os/exec
type ExecRunner struct {
	command []string
	logger  *slog.Logger
}

// NewExecRunner creates a runner. command is the argv prefix of the
// fetcher, e.g. ["python3", "download_manager.py"].
func NewExecRunner(command []string) *ExecRunner {
	return &ExecRunner{
		command: command,
		logger:  slog.Default(),
	}
}

// Start spawns the fetcher with stderr merged into stdout so a single
// line-oriented reader sees both streams
func (r *ExecRunner) Start(ctx context.Context, args []string) (Process, error) {
	if len(r.command) == 0 {
		return nil, fmt.Errorf("fetcher command is not configured")
	}

	argv := append(append([]string{}, r.command...), args...)
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to create output pipe: %w", err)
	}
	cmd.Stderr = cmd.Stdout

	r.logger.Debug("Starting fetcher process", "argv", argv)

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start fetcher process: %w", err)
	}

	return &execProcess{cmd: cmd, output: stdout}, nil
}

type execProcess struct {
	cmd    *exec.Cmd
	output io.ReadCloser
}

func (p *execProcess) Output() io.Reader {
	return p.output
}

func (p *execProcess) Wait() error {
	return p.cmd.Wait()
}
