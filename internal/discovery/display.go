package discovery

import (
	"fmt"
	"net"
	"strconv"
	"time"
)

// Display represents a discovered rain bar on the network
type Display struct {
	// Instance is the mDNS instance name (e.g., "kitchen")
	Instance string

	// Hostname is the mDNS hostname (e.g., "raspberrypi.local.")
	Hostname string

	// IP is the IPv4 address, or IPv6 when no IPv4 was announced
	IP string

	// Port is the status server port
	Port int

	// Metadata contains the TXT record data ("version", "path")
	Metadata map[string]string

	// DiscoveredAt is when the display was discovered
	DiscoveredAt time.Time
}

// String returns a human-readable string representation of the display
func (d *Display) String() string {
	return fmt.Sprintf("Rain bar %s (%s) at %s", d.Instance, d.Hostname, d.Addr())
}

// Addr returns host:port of the status server
func (d *Display) Addr() string {
	return net.JoinHostPort(d.IP, strconv.Itoa(d.Port))
}

// Version returns the advertised firmware version, or empty string
func (d *Display) Version() string {
	return d.GetMetadata("version")
}

// GetMetadata retrieves a metadata value by key, or returns empty string if not found
func (d *Display) GetMetadata(key string) string {
	if d.Metadata == nil {
		return ""
	}
	return d.Metadata[key]
}
