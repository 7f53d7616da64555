package network

import (
	"errors"
	"fmt"
	"strings"
)

// ErrConnectivityLost is returned once a hard reset has been requested.
// A real Resetter does not return; fakes and dry runs do.
var ErrConnectivityLost = errors.New("connectivity lost")

// CommandError represents a failed external command (nmcli, systemctl).
type CommandError struct {
	// Command is the command line that failed
	Command []string
	// ExitCode is the process exit code, -1 when it did not start
	ExitCode int
	// Stderr is the command's error output
	Stderr string
	// Underlying error if any
	Err error
}

func (e *CommandError) Error() string {
	msg := fmt.Sprintf("%s failed (exit code %d)", strings.Join(e.Command, " "), e.ExitCode)
	if s := strings.TrimSpace(e.Stderr); s != "" {
		msg += ": " + s
	}
	if e.Err != nil {
		msg += fmt.Sprintf(" (%v)", e.Err)
	}
	return msg
}

func (e *CommandError) Unwrap() error {
	return e.Err
}
