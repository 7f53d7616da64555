package network

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"time"
)

// Runner executes a command and returns its standard output.
type Runner func(ctx context.Context, name string, args ...string) (string, error)

// ExecRunner runs commands with os/exec, bounded by timeout.
func ExecRunner(timeout time.Duration) Runner {
	return func(ctx context.Context, name string, args ...string) (string, error) {
		timeoutCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		var stdout, stderr bytes.Buffer
		cmd := exec.CommandContext(timeoutCtx, name, args...)
		cmd.Stdout = &stdout
		cmd.Stderr = &stderr

		if err := cmd.Run(); err != nil {
			exitCode := -1
			var exitErr *exec.ExitError
			if errors.As(err, &exitErr) {
				exitCode = exitErr.ExitCode()
			}
			if timeoutCtx.Err() == context.DeadlineExceeded {
				err = timeoutCtx.Err()
			}
			return stdout.String(), &CommandError{
				Command:  append([]string{name}, args...),
				ExitCode: exitCode,
				Stderr:   stderr.String(),
				Err:      err,
			}
		}
		return stdout.String(), nil
	}
}
