// Package discovery advertises rain bar displays over mDNS and finds them.
//
// A display running its status server registers a "_rainbar._tcp" service
// carrying its version and API path in TXT records. The watch command
// browses for that service when no address is given.
//
// # Usage Example
//
//	displays, err := discovery.NewScanner().Scan(ctx)
//	if err != nil {
//	    return err
//	}
//	for _, d := range displays {
//	    fmt.Println(d)
//	}
//
// # Network Requirements
//
// - Requires multicast support on the network interface
// - Displays must be on the same local network segment
// - Firewall must allow mDNS (UDP port 5353)
package discovery
