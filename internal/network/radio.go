package network

import (
	"context"
	"net"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Radio is the WiFi interface.
type Radio interface {
	// Up powers the radio on.
	Up(ctx context.Context) error
	// Join starts association; it does not wait for an address.
	Join(ctx context.Context, ssid, psk string) error
	// Address returns the assigned IPv4 address, or "" while unassigned.
	Address(ctx context.Context) (string, error)
	// Down disconnects and powers the radio off.
	Down(ctx context.Context) error
}

// NMCLIConfig holds the configuration for the NetworkManager radio.
type NMCLIConfig struct {
	// NMCLIPath is the path to the nmcli binary.
	// Default: "nmcli" (searches PATH)
	NMCLIPath string

	// Interface is the WiFi device name.
	// Default: "wlan0"
	Interface string

	// Timeout bounds each nmcli invocation.
	// Default: 30 seconds
	Timeout time.Duration
}

// DefaultNMCLIConfig returns an NMCLIConfig with sensible defaults.
func DefaultNMCLIConfig() NMCLIConfig {
	return NMCLIConfig{
		NMCLIPath: "nmcli",
		Interface: "wlan0",
		Timeout:   30 * time.Second,
	}
}

// NMCLIRadio drives WiFi through NetworkManager's nmcli.
type NMCLIRadio struct {
	config NMCLIConfig
	logger *zap.Logger
	run    Runner
}

// NewNMCLIRadio creates a radio using config. A nil logger is allowed.
func NewNMCLIRadio(config NMCLIConfig, logger *zap.Logger) *NMCLIRadio {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NMCLIRadio{
		config: config,
		logger: logger,
		run:    ExecRunner(config.Timeout),
	}
}

func (r *NMCLIRadio) nmcli(ctx context.Context, args ...string) (string, error) {
	r.logger.Debug("running nmcli", zap.Strings("args", redactArgs(args)))
	out, err := r.run(ctx, r.config.NMCLIPath, args...)
	if err != nil {
		r.logger.Warn("nmcli failed", zap.Strings("args", redactArgs(args)), zap.Error(err))
	}
	return out, err
}

// Up enables the WiFi radio.
func (r *NMCLIRadio) Up(ctx context.Context) error {
	_, err := r.nmcli(ctx, "radio", "wifi", "on")
	return err
}

// Join asks NetworkManager to connect without waiting for activation.
func (r *NMCLIRadio) Join(ctx context.Context, ssid, psk string) error {
	args := []string{"--wait", "0", "device", "wifi", "connect", ssid}
	if psk != "" {
		args = append(args, "password", psk)
	}
	args = append(args, "ifname", r.config.Interface)
	_, err := r.nmcli(ctx, args...)
	return err
}

// Address reads IP4.ADDRESS of the interface.
func (r *NMCLIRadio) Address(ctx context.Context) (string, error) {
	out, err := r.nmcli(ctx, "-g", "IP4.ADDRESS", "device", "show", r.config.Interface)
	if err != nil {
		return "", err
	}
	return parseNMCLIAddress(out), nil
}

// Down disconnects the interface and turns the radio off.
func (r *NMCLIRadio) Down(ctx context.Context) error {
	_, disconnectErr := r.nmcli(ctx, "device", "disconnect", r.config.Interface)
	if _, err := r.nmcli(ctx, "radio", "wifi", "off"); err != nil {
		return err
	}
	// An already disconnected device is not a failure.
	if disconnectErr != nil {
		r.logger.Debug("ignoring disconnect error", zap.Error(disconnectErr))
	}
	return nil
}

// parseNMCLIAddress turns "192.168.1.20/24 | 10.0.0.2/8" into "192.168.1.20".
func parseNMCLIAddress(out string) string {
	first := strings.TrimSpace(strings.Split(strings.TrimSpace(out), "\n")[0])
	first = strings.TrimSpace(strings.Split(first, "|")[0])
	if i := strings.IndexByte(first, '/'); i >= 0 {
		first = first[:i]
	}
	if ip := net.ParseIP(first); ip == nil || ip.IsUnspecified() {
		return ""
	}
	return first
}

func redactArgs(args []string) []string {
	out := append([]string(nil), args...)
	for i := range out {
		if i > 0 && out[i-1] == "password" {
			out[i] = "****"
		}
	}
	return out
}

// StaticRadio is a link managed outside the process (ethernet, dev hosts).
// It is always associated.
type StaticRadio struct {
	interfaceAddrs func() ([]net.Addr, error)
}

// NewStaticRadio creates a StaticRadio reading the host's addresses.
func NewStaticRadio() *StaticRadio {
	return &StaticRadio{interfaceAddrs: net.InterfaceAddrs}
}

func (s *StaticRadio) Up(context.Context) error                   { return nil }
func (s *StaticRadio) Join(context.Context, string, string) error { return nil }
func (s *StaticRadio) Down(context.Context) error                 { return nil }

// Address returns the first non-loopback IPv4 address.
func (s *StaticRadio) Address(context.Context) (string, error) {
	addrs, err := s.interfaceAddrs()
	if err != nil {
		return "", err
	}
	for _, a := range addrs {
		ipNet, ok := a.(*net.IPNet)
		if !ok || ipNet.IP.IsLoopback() {
			continue
		}
		if v4 := ipNet.IP.To4(); v4 != nil {
			return v4.String(), nil
		}
	}
	return "", nil
}
