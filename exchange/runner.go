package exchange

import (
	"bytes"
	"context"
	"os/exec"
	"time"

	"github.com/pkg/errors"
)

// Output is what an external HTTP client printed.
type Output struct {
	Text     string // stdout, or stderr when stdout is empty
	ExitCode int
	Elapsed  time.Duration
}

// Runner runs an external command.
type Runner interface {
	Run(ctx context.Context, argv []string) (*Output, error)
}

// ProcessRunner runs commands as child processes.
type ProcessRunner struct {
	Timeout time.Duration
}

// waitDelay is how long Run waits for the output pipes after the process
// has been killed.
const waitDelay = 2 * time.Second

func (r *ProcessRunner) Run(ctx context.Context, argv []string) (*Output, error) {
	if len(argv) == 0 {
		return nil, errors.WithStack(&ExecutionError{Err: errors.New("empty command")})
	}

	timeout := r.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	timeout = effectiveTimeout(ctx, timeout)
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.WaitDelay = waitDelay
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	elapsed := time.Since(start)

	switch ctx.Err() {
	case context.DeadlineExceeded:
		return nil, errors.WithStack(&TimeoutError{Timeout: timeout})
	case context.Canceled:
		return nil, errors.WithStack(&ExecutionError{Err: errors.Wrap(ctx.Err(), "running "+argv[0])})
	}

	exitCode := 0
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return nil, errors.WithStack(&ExecutionError{Err: errors.Wrap(err, "running "+argv[0])})
		}
		exitCode = exitErr.ExitCode()
	}

	text := stdout.String()
	if text == "" {
		text = stderr.String()
	}
	return &Output{
		Text:     text,
		ExitCode: exitCode,
		Elapsed:  elapsed,
	}, nil
}
