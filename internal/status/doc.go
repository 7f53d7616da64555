// Package status exposes what the display is doing over HTTP.
//
// A Board holds the latest snapshot: the rendered window, the frames last
// flushed to each strip, the network state, the sleep schedule and the
// last error. The control loop writes to it; the Server reads from it.
//
// # Endpoints
//
//	GET /api/v1/status     JSON snapshot
//	GET /api/v1/frames/ws  websocket, one snapshot message per change
//	GET /healthz           liveness
//
// The server runs on its own goroutines. The control loop never waits on
// a client: slow subscribers only ever see the newest snapshot.
package status
