package discovery

import (
	"net"
	"testing"
	"time"

	"github.com/grandcat/zeroconf"
)

func entry(instance, host string, port int, v4, v6 []net.IP, txt ...string) *zeroconf.ServiceEntry {
	e := zeroconf.NewServiceEntry(instance, ServiceType, ServiceDomain)
	e.HostName = host
	e.Port = port
	e.AddrIPv4 = v4
	e.AddrIPv6 = v6
	e.Text = txt
	return e
}

func TestParseServiceEntry(t *testing.T) {
	tests := []struct {
		name     string
		entry    *zeroconf.ServiceEntry
		wantNil  bool
		wantIP   string
		wantPort int
	}{
		{
			name:     "IPv4 display",
			entry:    entry("kitchen", "pi.local.", 8088, []net.IP{net.ParseIP("192.168.4.16")}, nil, "version=v1.0.0", "path=/api/v1"),
			wantIP:   "192.168.4.16",
			wantPort: 8088,
		},
		{
			name:     "IPv6 only display",
			entry:    entry("hall", "pi2.local.", 8088, nil, []net.IP{net.ParseIP("fe80::1")}),
			wantIP:   "fe80::1",
			wantPort: 8088,
		},
		{
			name:     "prefers IPv4",
			entry:    entry("den", "pi3.local.", 9000, []net.IP{net.ParseIP("10.0.0.5")}, []net.IP{net.ParseIP("fe80::2")}),
			wantIP:   "10.0.0.5",
			wantPort: 9000,
		},
		{
			name:    "no address",
			entry:   entry("attic", "pi4.local.", 8088, nil, nil),
			wantNil: true,
		},
		{
			name:    "no port",
			entry:   entry("shed", "pi5.local.", 0, []net.IP{net.ParseIP("10.0.0.9")}, nil),
			wantNil: true,
		},
		{
			name:    "nil entry",
			entry:   nil,
			wantNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := parseServiceEntry(tt.entry)
			if tt.wantNil {
				if d != nil {
					t.Errorf("parseServiceEntry() = %v, want nil", d)
				}
				return
			}
			if d == nil {
				t.Fatal("parseServiceEntry() = nil, want display")
			}
			if d.IP != tt.wantIP || d.Port != tt.wantPort {
				t.Errorf("display at %s:%d, want %s:%d", d.IP, d.Port, tt.wantIP, tt.wantPort)
			}
			if d.Instance != tt.entry.Instance {
				t.Errorf("Instance = %q, want %q", d.Instance, tt.entry.Instance)
			}
			if time.Since(d.DiscoveredAt) > time.Second {
				t.Error("DiscoveredAt is not recent")
			}
		})
	}
}

func TestParseServiceEntry_Metadata(t *testing.T) {
	d := parseServiceEntry(entry("kitchen", "pi.local.", 8088, []net.IP{net.ParseIP("192.168.4.16")}, nil, "version=v1.2.0", "flag"))
	if d.Version() != "v1.2.0" {
		t.Errorf("Version() = %q", d.Version())
	}
	if v, ok := d.Metadata["flag"]; !ok || v != "" {
		t.Errorf("flag = %q, %v", v, ok)
	}
	if d.GetMetadata("missing") != "" {
		t.Error("missing key should be empty")
	}
}

func TestDisplay_Addr(t *testing.T) {
	tests := []struct {
		display *Display
		want    string
	}{
		{&Display{IP: "192.168.4.16", Port: 8088}, "192.168.4.16:8088"},
		{&Display{IP: "fe80::1", Port: 8088}, "[fe80::1]:8088"},
	}
	for _, tt := range tests {
		if got := tt.display.Addr(); got != tt.want {
			t.Errorf("Addr() = %q, want %q", got, tt.want)
		}
	}
	d := &Display{Instance: "kitchen", Hostname: "pi.local.", IP: "10.0.0.5", Port: 8088}
	if got := d.String(); got != "Rain bar kitchen (pi.local.) at 10.0.0.5:8088" {
		t.Errorf("String() = %q", got)
	}
	if (&Display{}).GetMetadata("version") != "" {
		t.Error("nil metadata should read as empty")
	}
}
