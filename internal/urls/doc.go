// Package urls provides centralized constants for every remote endpoint the
// display talks to.
//
// Provider base URLs, the reachability probe, the time zone lookup and the
// update check all live here so an endpoint change is a one-line edit. Tests
// override the base URLs on the individual clients rather than these constants.
//
// Usage:
//
//	import "github.com/jhaugh0/Rain-Chance-Monitor/internal/urls"
//
//	probe := network.NewHTTPProber(client, urls.PublicIPProbe)
package urls
