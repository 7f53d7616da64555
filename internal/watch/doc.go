// Package watch is a live terminal mirror of a display.
//
// It connects to the status server's websocket, or finds a display over
// mDNS when no address is given, and redraws both strips on every
// snapshot together with the window hours, network state and the time
// left until the next cycle.
//
// Keys: r reconnects, ? toggles the full help, q quits.
package watch
