package monitor

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jhaugh0/Rain-Chance-Monitor/internal/forecast"
	"github.com/jhaugh0/Rain-Chance-Monitor/internal/update"
)

func TestSecondsToNextHour(t *testing.T) {
	cases := []struct {
		at   time.Time
		want int
	}{
		{time.Date(2026, 10, 16, 10, 15, 30, 0, time.UTC), 2670},
		{time.Date(2026, 10, 16, 10, 0, 0, 0, time.UTC), 3600},
		{time.Date(2026, 10, 16, 10, 59, 59, 0, time.UTC), 1},
	}
	for _, tc := range cases {
		if got := SecondsToNextHour(tc.at); got != tc.want {
			t.Errorf("SecondsToNextHour(%s) = %d, want %d", tc.at.Format("15:04:05"), got, tc.want)
		}
	}
}

func TestOvernightSleep(t *testing.T) {
	if got := SecondsToOnTime(22, 7); got != 32400 {
		t.Errorf("SecondsToOnTime(22, 7) = %d, want 32400", got)
	}
	if got := OvernightSleep(22, 7); got != 30780*time.Second {
		t.Errorf("OvernightSleep(22, 7) = %v, want 30780s", got)
	}
	if got := OvernightSleep(1, 6); got != 17100*time.Second {
		t.Errorf("OvernightSleep(1, 6) = %v, want 17100s", got)
	}
}

func TestDark(t *testing.T) {
	cases := []struct {
		hour, on, off int
		want          bool
	}{
		{21, 7, 22, false},
		{22, 7, 22, true},
		{23, 7, 22, true},
		{0, 7, 22, true},
		{6, 7, 22, true},
		{7, 7, 22, false},
		{2, 6, 1, true},
		{1, 6, 1, true},
		{6, 6, 1, false},
		{0, 6, 1, false},
		{12, 8, 8, false},
	}
	for _, tc := range cases {
		if got := Dark(tc.hour, tc.on, tc.off); got != tc.want {
			t.Errorf("Dark(%d, on=%d, off=%d) = %v, want %v", tc.hour, tc.on, tc.off, got, tc.want)
		}
	}
}

type fakeClock struct {
	now      time.Time
	sleeps   []time.Duration
	sleepErr error
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Sleep(_ context.Context, d time.Duration) error {
	c.sleeps = append(c.sleeps, d)
	c.now = c.now.Add(d)
	return c.sleepErr
}

type fakeNetwork struct {
	hour        int
	validateErr error
	connects    int
	disconnects int
	syncs       int
}

func (n *fakeNetwork) Connect(context.Context, bool) error { n.connects++; return nil }
func (n *fakeNetwork) ValidateInternet(context.Context) (string, error) {
	if n.validateErr != nil {
		return "", n.validateErr
	}
	return "203.0.113.7", nil
}
func (n *fakeNetwork) SyncTime(context.Context) bool { n.syncs++; return true }
func (n *fakeNetwork) CurrentHourAndDay(context.Context) forecast.LocalTime {
	return forecast.LocalTime{Hour: n.hour, Day: 16}
}
func (n *fakeNetwork) Disconnect(context.Context) error { n.disconnects++; return nil }

type fakeProvider struct {
	fc    forecast.Forecast
	err   error
	calls int
}

func (p *fakeProvider) Name() string { return "fake" }
func (p *fakeProvider) Fetch(context.Context, forecast.LocalTime) (forecast.Forecast, error) {
	p.calls++
	return p.fc, p.err
}

type fakeRenderer struct {
	offs    int
	window  forecast.Window
	current int
	panic   bool
}

func (r *fakeRenderer) Startup() error { return nil }
func (r *fakeRenderer) Off() error     { r.offs++; return nil }
func (r *fakeRenderer) Forecast(w forecast.Window, currentHour int) error {
	if r.panic {
		panic("strip unplugged")
	}
	r.window = w
	r.current = currentHour
	return nil
}

type fakeReporter struct {
	cycles  int
	errors  []error
	ips     []string
	updates []update.Result
	reasons []string
}

func (f *fakeReporter) RecordPublicIP(ip string) { f.ips = append(f.ips, ip) }
func (f *fakeReporter) RecordCycle(forecast.LocalTime, string, forecast.Window) {
	f.cycles++
}
func (f *fakeReporter) RecordError(err error) { f.errors = append(f.errors, err) }
func (f *fakeReporter) RecordSleep(reason string, _ time.Time) {
	f.reasons = append(f.reasons, reason)
}
func (f *fakeReporter) RecordUpdate(r update.Result) { f.updates = append(f.updates, r) }

type fakeUpdater struct{ calls int }

func (u *fakeUpdater) Check(context.Context) (update.Result, error) {
	u.calls++
	return update.Result{Local: "a", Remote: "b", Available: true}, nil
}

type harness struct {
	clock    *fakeClock
	network  *fakeNetwork
	provider *fakeProvider
	renderer *fakeRenderer
	reporter *fakeReporter
	updater  *fakeUpdater
	runner   *Runner
}

func newHarness(hour, minute int) *harness {
	h := &harness{
		clock:   &fakeClock{now: time.Date(2026, 10, 16, hour, minute, 0, 0, time.UTC)},
		network: &fakeNetwork{hour: hour},
		provider: &fakeProvider{fc: forecast.Forecast{
			9:  {Rain: forecast.Int(20)},
			15: {Rain: forecast.Int(60)},
			22: {},
		}},
		renderer: &fakeRenderer{},
		reporter: &fakeReporter{},
		updater:  &fakeUpdater{},
	}
	h.runner = NewRunner(Settings{FirstHour: 8, Count: 15, OnHour: 7, OffHour: 22}, Deps{
		Network:  h.network,
		Provider: h.provider,
		Renderer: h.renderer,
		Clock:    h.clock,
		Reporter: h.reporter,
		Updater:  h.updater,
	})
	return h
}

func TestCycle_RendersForecast(t *testing.T) {
	h := newHarness(9, 15)

	if err := h.runner.Cycle(context.Background()); err != nil {
		t.Fatalf("Cycle() error = %v", err)
	}
	if len(h.renderer.window) != 15 || h.renderer.current != 9 {
		t.Fatalf("rendered %d slots at hour %d", len(h.renderer.window), h.renderer.current)
	}
	if s := h.renderer.window[7]; s.Hour != 15 || s.Entry.Rain == nil || *s.Entry.Rain != 60 {
		t.Errorf("slot 7 = %+v, want hour 15 at 60%%", s)
	}
	if s := h.renderer.window[14]; s.Hour != 22 || !s.Present || s.Entry.Rain != nil {
		t.Errorf("slot 14 = %+v, want present hour 22 without rain", s)
	}
	if h.network.syncs != 1 || h.network.disconnects != 1 {
		t.Errorf("syncs = %d, disconnects = %d", h.network.syncs, h.network.disconnects)
	}
	if len(h.clock.sleeps) != 1 || h.clock.sleeps[0] != 45*time.Minute {
		t.Errorf("sleeps = %v, want [45m]", h.clock.sleeps)
	}
	if h.reporter.cycles != 1 || len(h.reporter.ips) != 1 {
		t.Errorf("reporter cycles = %d, ips = %v", h.reporter.cycles, h.reporter.ips)
	}
}

func TestCycle_OffHourSleepsOvernight(t *testing.T) {
	h := newHarness(22, 0)

	if err := h.runner.Cycle(context.Background()); err != nil {
		t.Fatalf("Cycle() error = %v", err)
	}
	if h.provider.calls != 0 {
		t.Error("forecast fetched at the off hour")
	}
	if h.renderer.offs != 1 || h.network.disconnects != 1 {
		t.Errorf("offs = %d, disconnects = %d, want 1 and 1", h.renderer.offs, h.network.disconnects)
	}
	if len(h.clock.sleeps) != 1 || h.clock.sleeps[0] != 30780*time.Second {
		t.Errorf("sleeps = %v, want [30780s]", h.clock.sleeps)
	}
}

func TestCycle_DarkHourSleepsToNextHour(t *testing.T) {
	h := newHarness(5, 40)

	if err := h.runner.Cycle(context.Background()); err != nil {
		t.Fatalf("Cycle() error = %v", err)
	}
	if h.provider.calls != 0 || h.renderer.offs != 1 {
		t.Errorf("fetches = %d, offs = %d", h.provider.calls, h.renderer.offs)
	}
	if len(h.clock.sleeps) != 1 || h.clock.sleeps[0] != 20*time.Minute {
		t.Errorf("sleeps = %v, want [20m]", h.clock.sleeps)
	}
}

func TestCycle_FetchFailureContinues(t *testing.T) {
	h := newHarness(10, 0)
	h.provider.err = errors.New("exhausted")

	if err := h.runner.Cycle(context.Background()); err != nil {
		t.Fatalf("Cycle() error = %v, want nil", err)
	}
	if len(h.reporter.errors) != 1 {
		t.Errorf("recorded errors = %d, want 1", len(h.reporter.errors))
	}
	if h.renderer.window != nil {
		t.Error("display redrawn after a failed fetch")
	}
	if h.network.disconnects != 1 || len(h.clock.sleeps) != 1 {
		t.Errorf("disconnects = %d, sleeps = %v", h.network.disconnects, h.clock.sleeps)
	}
}

func TestRunCycle_RecoversPanic(t *testing.T) {
	h := newHarness(10, 0)
	h.renderer.panic = true

	err := h.runner.RunCycle(context.Background(), forecast.LocalTime{Hour: 10, Day: 16})
	if err == nil {
		t.Fatal("RunCycle() error = nil, want recovered panic")
	}
}

func TestCycle_ConnectivityLostStops(t *testing.T) {
	h := newHarness(10, 0)
	lost := errors.New("connectivity lost")
	h.network.validateErr = lost

	err := h.runner.Cycle(context.Background())
	if !errors.Is(err, lost) {
		t.Fatalf("Cycle() error = %v, want %v", err, lost)
	}
	if h.provider.calls != 0 {
		t.Error("forecast fetched without connectivity")
	}
}

func TestRun_StopsWhenSleepCancelled(t *testing.T) {
	h := newHarness(10, 0)
	h.clock.sleepErr = context.Canceled

	if err := h.runner.Run(context.Background()); !errors.Is(err, context.Canceled) {
		t.Fatalf("Run() error = %v, want context.Canceled", err)
	}
	if h.provider.calls != 1 {
		t.Errorf("fetches = %d, want 1", h.provider.calls)
	}
}

func TestCycle_UpdateCheckedOncePerDay(t *testing.T) {
	h := newHarness(10, 0)
	ctx := context.Background()

	_ = h.runner.Cycle(ctx)
	h.network.hour = 11
	_ = h.runner.Cycle(ctx)
	if h.updater.calls != 1 {
		t.Errorf("update checks = %d, want 1", h.updater.calls)
	}

	h.network.hour = 7
	_ = h.runner.Cycle(ctx)
	if h.updater.calls != 2 {
		t.Errorf("update checks = %d, want 2 after the on hour", h.updater.calls)
	}
	if len(h.reporter.updates) != 2 {
		t.Errorf("recorded updates = %d, want 2", len(h.reporter.updates))
	}
}
