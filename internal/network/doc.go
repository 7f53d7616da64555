// Package network owns the display's connectivity: WiFi association,
// public internet validation, clock synchronization and the local hour
// lookup.
//
// # State Machine
//
//	Disconnected -> Connecting -> Connected
//	Connected -> Disconnected (explicit Disconnect)
//
// # Escalation Ladder
//
// ValidateInternet probes a public endpoint until it answers. Failed probes
// are retried after a short wait; every TriesBeforeReconnect failures the
// radio is cycled (disconnect, pause, reconnect); once MaxInternetTries is
// reached the Resetter is invoked. There is no path that keeps running with
// a broken connection.
//
// Clock sync and the hour lookup degrade instead: a stale clock is tolerated
// and a failed lookup keeps the previous hour and day.
package network
