package network

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/jhaugh0/Rain-Chance-Monitor/internal/clock"
	"github.com/jhaugh0/Rain-Chance-Monitor/internal/config"
	"github.com/jhaugh0/Rain-Chance-Monitor/internal/forecast"
	"github.com/jhaugh0/Rain-Chance-Monitor/internal/logging"
	"github.com/jhaugh0/Rain-Chance-Monitor/internal/retry"
)

// DefaultPollInterval is the association poll period.
const DefaultPollInterval = time.Second

// TimeSyncer corrects the local clock.
type TimeSyncer interface {
	Sync(ctx context.Context) error
}

// Indicator shows connection progress on the display.
type Indicator interface {
	Loading(step int) (int, error)
	Connected() error
	Off() error
}

// Settings are the lifecycle tunables.
type Settings struct {
	SSID string
	PSK  string

	// RequestPolicy bounds NTP synchronization.
	RequestPolicy retry.Policy

	InternetCheckRetry   time.Duration
	TriesBeforeReconnect int
	MaxInternetTries     int
	ReconnectPause       time.Duration

	// AssociationTimeout bounds the association poll, zero polls forever.
	AssociationTimeout time.Duration
	PollInterval       time.Duration
}

// SettingsFromConfig derives Settings from the network section.
func SettingsFromConfig(n config.NetworkConfig) Settings {
	return Settings{
		SSID:                 n.SSID,
		PSK:                  n.PSK,
		RequestPolicy:        retry.Policy{MaxAttempts: n.MaxRequestRetries, Delay: n.RequestRetryDelay()},
		InternetCheckRetry:   n.InternetCheckRetry(),
		TriesBeforeReconnect: n.TriesBeforeReconnect,
		MaxInternetTries:     n.MaxInternetTries,
		ReconnectPause:       n.ReconnectPause(),
		AssociationTimeout:   n.AssociationTimeout(),
		PollInterval:         DefaultPollInterval,
	}
}

// Deps are the collaborators of a Lifecycle. Indicator may be nil.
type Deps struct {
	Radio     Radio
	Prober    Prober
	Syncer    TimeSyncer
	Time      TimeSource
	Resetter  Resetter
	Indicator Indicator
	Clock     clock.Clock
}

// Lifecycle owns the connectivity state of the device.
type Lifecycle struct {
	settings Settings
	deps     Deps

	mu       sync.RWMutex
	state    State
	address  string
	publicIP string
	onChange []stateObserver

	local    forecast.LocalTime
	resolved bool
}

// New creates a Lifecycle in the Disconnected state.
func New(settings Settings, deps Deps) *Lifecycle {
	if settings.PollInterval <= 0 {
		settings.PollInterval = DefaultPollInterval
	}
	if settings.TriesBeforeReconnect < 1 {
		settings.TriesBeforeReconnect = 1
	}
	if deps.Indicator == nil {
		deps.Indicator = noIndicator{}
	}
	return &Lifecycle{settings: settings, deps: deps}
}

// State returns the current connectivity state.
func (l *Lifecycle) State() State {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.state
}

// Address returns the local address assigned at association.
func (l *Lifecycle) Address() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.address
}

// PublicIP returns the address reported by the last successful probe.
func (l *Lifecycle) PublicIP() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.publicIP
}

// stateObserver is called after a transition.
type stateObserver func(from, to State)

// OnStateChange registers fn to be called after every transition.
func (l *Lifecycle) OnStateChange(fn func(from, to State)) {
	l.mu.Lock()
	l.onChange = append(l.onChange, fn)
	l.mu.Unlock()
}

func (l *Lifecycle) setState(to State) {
	l.mu.Lock()
	from := l.state
	l.state = to
	observers := append([]stateObserver(nil), l.onChange...)
	l.mu.Unlock()

	if from == to {
		return
	}
	logging.LogNetworkState(from.String(), to.String())
	for _, fn := range observers {
		fn(from, to)
	}
}

// Connect brings the radio up and waits for an address.
// It is a no-op when already connected. With showProgress the display is
// cleared and the loading animation runs while polling.
func (l *Lifecycle) Connect(ctx context.Context, showProgress bool) error {
	if l.State() == Connected {
		logging.Debug("already connected", zap.String("address", l.Address()))
		return nil
	}
	l.setState(Connecting)

	if showProgress {
		if err := l.deps.Indicator.Off(); err != nil {
			logging.Warn("failed to clear display", zap.Error(err))
		}
	}
	if err := l.deps.Radio.Up(ctx); err != nil {
		logging.Warn("radio up failed", zap.Error(err))
	}
	if err := l.deps.Radio.Join(ctx, l.settings.SSID, l.settings.PSK); err != nil {
		logging.Warn("join failed", zap.String("ssid", l.settings.SSID), zap.Error(err))
	}

	start := l.deps.Clock.Now()
	step := 0
	for {
		addr, err := l.deps.Radio.Address(ctx)
		if err == nil && addr != "" {
			l.mu.Lock()
			l.address = addr
			l.mu.Unlock()
			l.setState(Connected)
			logging.Info("associated", zap.String("address", addr))
			if showProgress {
				if err := l.deps.Indicator.Connected(); err != nil {
					logging.Warn("failed to show connected indicator", zap.Error(err))
				}
			}
			return nil
		}
		if err != nil {
			logging.Debug("address not available", zap.Error(err))
		}

		if timeout := l.settings.AssociationTimeout; timeout > 0 && l.deps.Clock.Now().Sub(start) >= timeout {
			l.setState(Disconnected)
			return l.hardReset(ctx, fmt.Sprintf("no address after %s", timeout))
		}

		if showProgress {
			next, err := l.deps.Indicator.Loading(step)
			if err != nil {
				logging.Warn("loading animation failed", zap.Error(err))
			}
			step = next
		}
		if err := l.deps.Clock.Sleep(ctx, l.settings.PollInterval); err != nil {
			l.setState(Disconnected)
			return err
		}
	}
}

// ValidateInternet probes the public internet until it answers, walking
// the escalation ladder: wait, reconnect every TriesBeforeReconnect
// failures, hard reset after MaxInternetTries. It returns the public IP.
func (l *Lifecycle) ValidateInternet(ctx context.Context) (string, error) {
	retries := 0
	for {
		ip, err := l.deps.Prober.Probe(ctx)
		if err == nil {
			l.mu.Lock()
			l.publicIP = ip
			l.mu.Unlock()
			logging.Info("internet reachable", zap.String("public_ip", ip), zap.Int("retries", retries))
			if err := l.deps.Indicator.Connected(); err != nil {
				logging.Warn("failed to show connected indicator", zap.Error(err))
			}
			return ip, nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}

		switch {
		case retries >= l.settings.MaxInternetTries:
			logging.Error("internet unreachable",
				zap.Int("retries", retries),
				zap.Int("max_tries", l.settings.MaxInternetTries),
				zap.Error(err))
			return "", l.hardReset(ctx, fmt.Sprintf("internet unreachable after %d retries: %v", retries, err))

		case retries != 0 && retries%l.settings.TriesBeforeReconnect == 0:
			logging.Warn("internet unreachable, reconnecting",
				zap.Int("retry", retries),
				zap.Error(err))
			if err := l.reconnect(ctx); err != nil {
				return "", err
			}

		default:
			logging.Warn("internet unreachable, waiting",
				zap.Int("retry", retries),
				zap.Duration("delay", l.settings.InternetCheckRetry),
				zap.Error(err))
			if err := l.deps.Clock.Sleep(ctx, l.settings.InternetCheckRetry); err != nil {
				return "", err
			}
		}
		retries++
	}
}

func (l *Lifecycle) reconnect(ctx context.Context) error {
	if err := l.Disconnect(ctx); err != nil {
		logging.Warn("disconnect during reconnect failed", zap.Error(err))
	}
	if err := l.deps.Clock.Sleep(ctx, l.settings.ReconnectPause); err != nil {
		return err
	}
	return l.Connect(ctx, true)
}

// SyncTime runs a bounded NTP synchronization. Failure is tolerated.
func (l *Lifecycle) SyncTime(ctx context.Context) bool {
	if l.deps.Syncer == nil {
		return false
	}
	err := retry.Run(ctx, l.settings.RequestPolicy, "ntp sync", l.deps.Syncer.Sync)
	if err != nil {
		logging.Warn("time sync failed, keeping current clock", zap.Error(err))
		return false
	}
	return true
}

// CurrentHourAndDay resolves the local hour and day of month. When the
// lookup fails the previous result is kept; before any success the
// corrected local clock is used.
func (l *Lifecycle) CurrentHourAndDay(ctx context.Context) forecast.LocalTime {
	lt, err := l.deps.Time.Local(ctx)
	if err == nil {
		l.local = lt
		l.resolved = true
		return lt
	}

	if !l.resolved {
		now := l.deps.Clock.Now()
		l.local = forecast.LocalTime{Hour: now.Hour(), Day: now.Day()}
	}
	logging.Warn("time lookup failed, keeping previous hour",
		zap.Int("hour", l.local.Hour),
		zap.Int("day", l.local.Day),
		zap.Error(err))
	return l.local
}

// Disconnect takes the radio down.
func (l *Lifecycle) Disconnect(ctx context.Context) error {
	err := l.deps.Radio.Down(ctx)
	l.mu.Lock()
	l.address = ""
	l.mu.Unlock()
	l.setState(Disconnected)
	return err
}

func (l *Lifecycle) hardReset(ctx context.Context, reason string) error {
	if l.deps.Resetter == nil {
		return fmt.Errorf("%w: %s", ErrConnectivityLost, reason)
	}
	if err := l.deps.Resetter.Reset(ctx, reason); err != nil && !errors.Is(err, ErrConnectivityLost) {
		return fmt.Errorf("%w: reset failed: %v", ErrConnectivityLost, err)
	}
	return fmt.Errorf("%w: %s", ErrConnectivityLost, reason)
}

type noIndicator struct{}

func (noIndicator) Loading(step int) (int, error) { return step + 1, nil }
func (noIndicator) Connected() error              { return nil }
func (noIndicator) Off() error                    { return nil }
