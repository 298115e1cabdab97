package shell

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/Raghavaaa/lindia-b/internal/application/port/output"

	"github.com/google/shlex"
)

var _ output.CommandRunner = (*Runner)(nil)

const DefaultTimeout = 120 * time.Second

// Runner executes checklist commands directly on the host without a shell.
type Runner struct {
	timeout time.Duration
	logger  output.LoggerPort
}

func NewRunner(timeout time.Duration, logger output.LoggerPort) *Runner {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = output.NopLogger{}
	}
	return &Runner{timeout: timeout, logger: logger}
}

// Run never returns an error: parse failures, missing binaries and timeouts
// are reported as an unsuccessful result with the reason in Stderr.
func (r *Runner) Run(ctx context.Context, dir string, command string) output.CommandResult {
	args, err := Split(command)
	if err != nil {
		return output.CommandResult{Stderr: err.Error()}
	}

	execCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	cmd := exec.CommandContext(execCtx, args[0], args[1:]...)
	cmd.Dir = dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	runErr := cmd.Run()
	r.logger.Debug("Command finished",
		"command", command,
		"dir", dir,
		"duration", time.Since(start).String(),
		"error", runErr,
	)

	if errors.Is(execCtx.Err(), context.DeadlineExceeded) {
		return output.CommandResult{
			Stdout: stdout.String(),
			Stderr: fmt.Sprintf("Command timeout after %ds", int(r.timeout.Seconds())),
		}
	}
	if runErr != nil {
		var exitErr *exec.ExitError
		if !errors.As(runErr, &exitErr) && stderr.Len() == 0 {
			stderr.WriteString(runErr.Error())
		}
		return output.CommandResult{Stdout: stdout.String(), Stderr: stderr.String()}
	}
	return output.CommandResult{Success: true, Stdout: stdout.String(), Stderr: stderr.String()}
}

// Split parses a command line with shell quoting rules.
func Split(command string) ([]string, error) {
	command = strings.TrimSpace(command)
	if command == "" {
		return nil, fmt.Errorf("command cannot be empty")
	}
	if strings.ContainsAny(command, "\n\r") {
		return nil, fmt.Errorf("command cannot contain newlines")
	}
	parts, err := shlex.Split(command)
	if err != nil {
		return nil, fmt.Errorf("failed to parse command: %w", err)
	}
	if len(parts) == 0 {
		return nil, fmt.Errorf("command cannot be empty after parsing")
	}
	return parts, nil
}
