// Package logging provides structured logging for the rainbar display.
//
// This package wraps a zap logger with convenience functions for the common
// logging patterns of the control loop. It provides general logging functions
// and specialized helpers for cycles, network state changes, retries and
// per-pixel render decisions.
//
// # Log Levels
//
//   - Debug: per-pixel mapping, raw provider payload sizes, poll ticks
//   - Info: cycle start/finish, connectivity changes, sleeps
//   - Warn: retries, degraded lookups (stale hour/day, unsynced clock)
//   - Error: failed cycles, exhausted retry budgets, resets
//
// # Error Record
//
// When Initialize is given an error file, every Error-level entry is also
// appended to that file as JSON. This is the persisted record of failed
// cycles that survives a device reset:
//
//	if err := logging.Initialize("info", "/var/lib/rainbar/errors.log"); err != nil {
//	    log.Fatal(err)
//	}
//	defer logging.Sync()
//
// # Structured Logging
//
//	logging.Info("Forecast rendered",
//	    zap.String("provider", "weathergov"),
//	    zap.Int("hour", 9),
//	)
//
// # Thread Safety
//
// All logging functions are safe for concurrent use. The status server logs
// from its own goroutines while the control loop logs from the main one.
package logging
