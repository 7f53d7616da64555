package monitor

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"time"

	"go.uber.org/zap"

	"github.com/jhaugh0/Rain-Chance-Monitor/internal/clock"
	"github.com/jhaugh0/Rain-Chance-Monitor/internal/config"
	"github.com/jhaugh0/Rain-Chance-Monitor/internal/forecast"
	"github.com/jhaugh0/Rain-Chance-Monitor/internal/logging"
	"github.com/jhaugh0/Rain-Chance-Monitor/internal/update"
)

// Network is the connectivity lifecycle the loop drives.
type Network interface {
	Connect(ctx context.Context, showProgress bool) error
	ValidateInternet(ctx context.Context) (string, error)
	SyncTime(ctx context.Context) bool
	CurrentHourAndDay(ctx context.Context) forecast.LocalTime
	Disconnect(ctx context.Context) error
}

// Renderer draws on the display.
type Renderer interface {
	Startup() error
	Off() error
	Forecast(w forecast.Window, currentHour int) error
}

// Reporter receives the loop's progress. The status board implements it.
type Reporter interface {
	RecordPublicIP(ip string)
	RecordCycle(now forecast.LocalTime, provider string, w forecast.Window)
	RecordError(err error)
	RecordSleep(reason string, until time.Time)
	RecordUpdate(r update.Result)
}

// UpdateChecker compares the running version with the published one.
type UpdateChecker interface {
	Check(ctx context.Context) (update.Result, error)
}

// Settings are the scheduling parameters.
type Settings struct {
	FirstHour int
	Count     int
	OnHour    int
	OffHour   int
}

// SettingsFromConfig derives Settings from the LED section.
func SettingsFromConfig(l config.LEDConfig) Settings {
	return Settings{
		FirstHour: l.FirstHour,
		Count:     l.TotalCount,
		OnHour:    l.OnHour,
		OffHour:   l.OffHour,
	}
}

// Deps are the collaborators of a Runner. Reporter and Updater may be nil.
type Deps struct {
	Network  Network
	Provider forecast.Provider
	Renderer Renderer
	Clock    clock.Clock
	Reporter Reporter
	Updater  UpdateChecker
}

// Runner owns the per-process state of the control loop.
type Runner struct {
	settings Settings
	deps     Deps

	updateChecked bool
}

// NewRunner creates a Runner.
func NewRunner(settings Settings, deps Deps) *Runner {
	if deps.Reporter == nil {
		deps.Reporter = nopReporter{}
	}
	return &Runner{settings: settings, deps: deps}
}

// Run shows the startup color and cycles forever. It returns only when
// connectivity is lost for good or ctx ends.
func (r *Runner) Run(ctx context.Context) error {
	logging.Info("starting control loop",
		zap.String("provider", r.deps.Provider.Name()),
		zap.Int("first_hour", r.settings.FirstHour),
		zap.Int("count", r.settings.Count),
		zap.Int("on_hour", r.settings.OnHour),
		zap.Int("off_hour", r.settings.OffHour))

	if err := r.deps.Renderer.Startup(); err != nil {
		logging.Warn("startup color failed", zap.Error(err))
	}
	for {
		if err := r.Cycle(ctx); err != nil {
			return err
		}
	}
}

// Cycle runs one scheduled iteration including the trailing sleep.
func (r *Runner) Cycle(ctx context.Context) error {
	if err := r.bringUp(ctx, true); err != nil {
		return err
	}

	now := r.deps.Network.CurrentHourAndDay(ctx)

	if now.Hour == r.settings.OffHour && r.settings.OffHour != r.settings.OnHour {
		return r.overnight(ctx)
	}
	if Dark(now.Hour, r.settings.OnHour, r.settings.OffHour) {
		logging.Info("in dark hour range, display off", zap.Int("hour", now.Hour))
		r.blank(ctx)
		return r.sleep(ctx, "dark hour", UntilNextHour(r.deps.Clock.Now()))
	}

	r.checkUpdate(ctx, now)

	if err := r.RunCycle(ctx, now); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		logging.Error("cycle failed", zap.Int("hour", now.Hour), zap.Error(err))
		r.deps.Reporter.RecordError(err)
	}

	if err := r.deps.Network.Disconnect(ctx); err != nil {
		logging.Warn("disconnect failed", zap.Error(err))
	}
	return r.sleep(ctx, "next hour", UntilNextHour(r.deps.Clock.Now()))
}

// RunCycle fetches, maps and renders one forecast. Panics are recovered
// and returned as errors.
func (r *Runner) RunCycle(ctx context.Context, now forecast.LocalTime) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			logging.Error("cycle panic", zap.Any("panic", rec), zap.ByteString("stack", debug.Stack()))
			err = fmt.Errorf("cycle panic: %v", rec)
		}
	}()

	provider := r.deps.Provider.Name()
	logging.LogCycle(now.Hour, now.Day, provider)

	fc, err := r.deps.Provider.Fetch(ctx, now)
	if err != nil {
		return fmt.Errorf("fetch %s forecast: %w", provider, err)
	}
	logging.Debug("forecast received", zap.Stringer("forecast", fc))

	w := forecast.BuildWindow(r.settings.FirstHour, r.settings.Count).Map(fc)
	if err := r.deps.Renderer.Forecast(w, now.Hour); err != nil {
		return fmt.Errorf("render forecast: %w", err)
	}

	r.deps.Reporter.RecordCycle(now, provider, w)
	return nil
}

func (r *Runner) bringUp(ctx context.Context, showProgress bool) error {
	if err := r.deps.Network.Connect(ctx, showProgress); err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	ip, err := r.deps.Network.ValidateInternet(ctx)
	if err != nil {
		return fmt.Errorf("validate internet: %w", err)
	}
	r.deps.Reporter.RecordPublicIP(ip)
	r.deps.Network.SyncTime(ctx)
	return nil
}

// overnight blanks the display and takes the long sleep. The next cycle
// reconnects, revalidates and resyncs before resuming the hourly cadence.
func (r *Runner) overnight(ctx context.Context) error {
	d := OvernightSleep(r.settings.OffHour, r.settings.OnHour)
	logging.Info("off hour reached, sleeping overnight",
		zap.Int("off_hour", r.settings.OffHour),
		zap.Int("on_hour", r.settings.OnHour),
		zap.Duration("sleep", d))
	r.blank(ctx)
	return r.sleep(ctx, "overnight", d)
}

func (r *Runner) blank(ctx context.Context) {
	if err := r.deps.Renderer.Off(); err != nil {
		logging.Warn("failed to turn display off", zap.Error(err))
	}
	if err := r.deps.Network.Disconnect(ctx); err != nil {
		logging.Warn("disconnect failed", zap.Error(err))
	}
}

func (r *Runner) sleep(ctx context.Context, reason string, d time.Duration) error {
	logging.LogSleep(reason, d)
	r.deps.Reporter.RecordSleep(reason, r.deps.Clock.Now().Add(d))
	return r.deps.Clock.Sleep(ctx, d)
}

// checkUpdate runs on the first lit cycle and then once a day at the on hour.
func (r *Runner) checkUpdate(ctx context.Context, now forecast.LocalTime) {
	if r.deps.Updater == nil {
		return
	}
	if r.updateChecked && now.Hour != r.settings.OnHour {
		return
	}
	r.updateChecked = true

	res, err := r.deps.Updater.Check(ctx)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			logging.Warn("update check failed", zap.Error(err))
		}
		return
	}
	r.deps.Reporter.RecordUpdate(res)
}

type nopReporter struct{}

func (nopReporter) RecordPublicIP(string)                                   {}
func (nopReporter) RecordCycle(forecast.LocalTime, string, forecast.Window) {}
func (nopReporter) RecordError(error)                                       {}
func (nopReporter) RecordSleep(string, time.Time)                           {}
func (nopReporter) RecordUpdate(update.Result)                              {}
