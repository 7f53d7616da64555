package network

import (
	"context"
	"os"

	"go.uber.org/zap"

	"github.com/jhaugh0/Rain-Chance-Monitor/internal/logging"
)

// Resetter performs the hard reset when connectivity cannot be restored.
// Real implementations do not return on success.
type Resetter interface {
	Reset(ctx context.Context, reason string) error
}

// ExitResetter exits the process and relies on the supervisor to restart it.
type ExitResetter struct {
	Code int
	exit func(int)
}

// NewExitResetter creates an ExitResetter exiting with code.
func NewExitResetter(code int) *ExitResetter {
	return &ExitResetter{Code: code, exit: os.Exit}
}

func (e *ExitResetter) Reset(_ context.Context, reason string) error {
	logging.Error("hard reset: exiting", zap.String("reason", reason), zap.Int("code", e.Code))
	logging.Sync()
	e.exit(e.Code)
	return ErrConnectivityLost
}

// RebootResetter reboots the host.
type RebootResetter struct {
	run Runner
}

// NewRebootResetter creates a resetter that runs "systemctl reboot".
func NewRebootResetter(run Runner) *RebootResetter {
	return &RebootResetter{run: run}
}

func (r *RebootResetter) Reset(ctx context.Context, reason string) error {
	logging.Error("hard reset: rebooting", zap.String("reason", reason))
	logging.Sync()
	if _, err := r.run(ctx, "systemctl", "reboot"); err != nil {
		return err
	}
	return ErrConnectivityLost
}
