package discovery

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/grandcat/zeroconf"
	"go.uber.org/zap"

	"github.com/jhaugh0/Rain-Chance-Monitor/internal/logging"
)

const (
	// ServiceType is the mDNS service type of the status server
	ServiceType = "_rainbar._tcp"

	// ServiceDomain is the mDNS domain (typically "local.")
	ServiceDomain = "local."

	// DefaultScanTimeout is the default timeout for display discovery
	DefaultScanTimeout = 5 * time.Second
)

// Advertisement is a registered mDNS service.
type Advertisement struct {
	server *zeroconf.Server
}

// Advertise registers the status server under instance. An empty instance
// uses the hostname.
func Advertise(instance string, port int, version string) (*Advertisement, error) {
	if instance == "" {
		host, err := os.Hostname()
		if err != nil || host == "" {
			host = "rainbar"
		}
		instance = host
	}
	txt := []string{"version=" + version, "path=/api/v1"}

	server, err := zeroconf.Register(instance, ServiceType, ServiceDomain, port, txt, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to register mDNS service: %w", err)
	}
	logging.Info("advertising display",
		zap.String("instance", instance),
		zap.String("service", ServiceType),
		zap.Int("port", port))
	return &Advertisement{server: server}, nil
}

// Shutdown withdraws the service.
func (a *Advertisement) Shutdown() {
	if a != nil && a.server != nil {
		a.server.Shutdown()
	}
}

// Scanner handles mDNS display discovery
type Scanner struct {
	// Timeout is the maximum time to wait for display discovery
	Timeout time.Duration
}

// NewScanner creates a new mDNS scanner with default settings
func NewScanner() *Scanner {
	return &Scanner{
		Timeout: DefaultScanTimeout,
	}
}

// Scan browses for displays until the timeout and returns them sorted by instance.
func (s *Scanner) Scan(ctx context.Context) ([]*Display, error) {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS resolver: %w", err)
	}

	entries := make(chan *zeroconf.ServiceEntry)
	var (
		mu       sync.Mutex
		displays = make(map[string]*Display)
	)
	go func() {
		for entry := range entries {
			if d := parseServiceEntry(entry); d != nil {
				mu.Lock()
				displays[d.Instance+"|"+d.Addr()] = d
				mu.Unlock()
			}
		}
	}()

	if err := resolver.Browse(ctx, ServiceType, ServiceDomain, entries); err != nil {
		return nil, fmt.Errorf("failed to browse for mDNS services: %w", err)
	}
	<-ctx.Done()

	mu.Lock()
	defer mu.Unlock()
	out := make([]*Display, 0, len(displays))
	for _, d := range displays {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Instance < out[j].Instance })
	return out, nil
}

// First returns the first display that answers, or an error at timeout.
func (s *Scanner) First(ctx context.Context) (*Display, error) {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS resolver: %w", err)
	}

	entries := make(chan *zeroconf.ServiceEntry)
	found := make(chan *Display, 1)
	go func() {
		for entry := range entries {
			if d := parseServiceEntry(entry); d != nil {
				select {
				case found <- d:
				default:
				}
				cancel()
				return
			}
		}
	}()

	if err := resolver.Browse(ctx, ServiceType, ServiceDomain, entries); err != nil {
		return nil, fmt.Errorf("failed to browse for mDNS services: %w", err)
	}

	select {
	case d := <-found:
		return d, nil
	case <-ctx.Done():
		select {
		case d := <-found:
			return d, nil
		default:
		}
		return nil, fmt.Errorf("no display found within %s", s.Timeout)
	}
}

// parseServiceEntry converts a zeroconf service entry to a Display.
// Returns nil when the entry carries no usable address.
func parseServiceEntry(entry *zeroconf.ServiceEntry) *Display {
	if entry == nil || entry.Port == 0 {
		return nil
	}

	var ip string
	if len(entry.AddrIPv4) > 0 {
		ip = entry.AddrIPv4[0].String()
	}
	if ip == "" && len(entry.AddrIPv6) > 0 {
		ip = entry.AddrIPv6[0].String()
	}
	if ip == "" {
		return nil
	}

	metadata := make(map[string]string)
	for _, txt := range entry.Text {
		parts := strings.SplitN(txt, "=", 2)
		if len(parts) == 2 {
			metadata[parts[0]] = parts[1]
		} else {
			metadata[parts[0]] = ""
		}
	}

	return &Display{
		Instance:     entry.Instance,
		Hostname:     entry.HostName,
		IP:           ip,
		Port:         entry.Port,
		Metadata:     metadata,
		DiscoveredAt: time.Now(),
	}
}
