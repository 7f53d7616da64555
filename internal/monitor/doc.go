// Package monitor is the top-level control loop of the display.
//
// Every cycle brings the network up, synchronizes the clock, resolves the
// local hour and then either renders the forecast window or, inside the
// dark range, blanks the display. The loop sleeps until the next wall
// clock hour so drift never accumulates across cycles.
//
// At the off hour a single long overnight sleep is taken, shortened by
// DriftFactor so that the following hourly realignment absorbs clock skew.
//
// Failures inside fetch, map and render are logged to the error record and
// the loop moves on to the next hour. Only connectivity loss (after the
// hard reset has been requested) and context cancellation end Run.
package monitor
