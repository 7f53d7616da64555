// Package clock owns wall-clock access for the display: the injectable Clock
// used for every blocking sleep, the NTP-corrected system clock, and the one
// timestamp parser shared by providers and the time zone lookup.
//
// Every timestamp the display consumes ("2024-06-01T09:00:00-04:00",
// "2024-06-01T09:15:23.1234567", "2024-06-01 09:00") goes through Parse, and
// hour/day values are always read from the wall time as written by the remote
// service, never converted to the host zone.
package clock
