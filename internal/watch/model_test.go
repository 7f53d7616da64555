package watch

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jhaugh0/Rain-Chance-Monitor/internal/forecast"
	"github.com/jhaugh0/Rain-Chance-Monitor/internal/led"
	"github.com/jhaugh0/Rain-Chance-Monitor/internal/status"
)

type fakeStream struct {
	snaps  []status.Snapshot
	closed bool
}

func (s *fakeStream) Next() (status.Snapshot, error) {
	if len(s.snaps) == 0 {
		return status.Snapshot{}, errors.New("eof")
	}
	snap := s.snaps[0]
	s.snaps = s.snaps[1:]
	return snap, nil
}

func (s *fakeStream) Close() error { s.closed = true; return nil }

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func TestFramesURL(t *testing.T) {
	if got := FramesURL("192.168.1.20:8088"); got != "ws://192.168.1.20:8088/api/v1/frames/ws" {
		t.Errorf("FramesURL() = %q", got)
	}
}

func TestModel_ConnectAndRender(t *testing.T) {
	stream := &fakeStream{}
	var dialed string
	m := New(Options{
		Addr: "10.0.0.5:8088",
		Dial: func(_ context.Context, addr string) (Stream, error) {
			dialed = addr
			return stream, nil
		},
	})
	if m.phase != phaseConnecting {
		t.Fatalf("phase = %v, want connecting", m.phase)
	}

	msg := connect(m.opts.Dial, m.addr)()
	if dialed != "10.0.0.5:8088" {
		t.Errorf("dialed %q", dialed)
	}
	m, cmd := update(t, m, msg)
	if m.phase != phaseLive || cmd == nil {
		t.Fatalf("phase = %v after connect", m.phase)
	}

	snap := status.Snapshot{
		Name:     "kitchen",
		Network:  "connected",
		Hour:     9,
		Day:      16,
		Provider: "weathergov",
		Frames:   map[string][]led.Color{"rain": {{G: 51}, {R: 51}}},
		Window:   forecast.BuildWindow(8, 2),
	}
	m, _ = update(t, m, snapshotMsg{snap: snap})
	view := m.View()
	for _, want := range []string{"KITCHEN", "connected", "09:00, day 16", "weathergov", "rain", "0809"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestModel_FailureAndQuit(t *testing.T) {
	stream := &fakeStream{}
	m := New(Options{Addr: "10.0.0.5:8088"})
	m, _ = update(t, m, connectedMsg{stream: stream})

	m, _ = update(t, m, failedMsg{err: errors.New("stream closed: eof")})
	if m.phase != phaseFailed || !stream.closed {
		t.Fatalf("phase = %v, closed = %v", m.phase, stream.closed)
	}
	if !strings.Contains(m.View(), "stream closed") {
		t.Error("failure view does not show the error")
	}

	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("q returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q did not quit")
	}
}

func TestModel_DiscoveryFound(t *testing.T) {
	m := New(Options{Dial: func(context.Context, string) (Stream, error) { return &fakeStream{}, nil }})
	if m.phase != phaseDiscovering {
		t.Fatalf("phase = %v, want discovering", m.phase)
	}
	m, cmd := update(t, m, foundMsg{addr: "10.0.0.9:8088"})
	if m.phase != phaseConnecting || m.addr != "10.0.0.9:8088" || cmd == nil {
		t.Errorf("phase = %v, addr = %q", m.phase, m.addr)
	}
}

func TestSleepProgress(t *testing.T) {
	from := time.Date(2026, 10, 16, 9, 15, 0, 0, time.UTC)
	until := from.Add(time.Hour)
	cases := []struct {
		now  time.Time
		want float64
	}{
		{from, 0},
		{from.Add(30 * time.Minute), 0.5},
		{until.Add(time.Minute), 1},
		{from.Add(-time.Minute), 0},
	}
	for _, tc := range cases {
		if got := SleepProgress(from, until, tc.now); got != tc.want {
			t.Errorf("SleepProgress(%s) = %v, want %v", tc.now.Format("15:04"), got, tc.want)
		}
	}
	if got := SleepProgress(from, from, from); got != 1 {
		t.Errorf("zero-length sleep = %v, want 1", got)
	}
}
