// Package forecast holds the hour-keyed forecast model shared by providers,
// the renderer and the status surface.
//
// A Forecast maps a local hour of day (0-23) to an Entry. Hours a provider
// has no data for are simply missing; a missing key and an Entry with nil
// fields render the same way. A Window is the ordered run of hours shown on
// the strip, starting at the configured first hour and wrapping past 23.
package forecast
