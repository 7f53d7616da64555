package status

import (
	"sync"
	"time"

	"github.com/jhaugh0/Rain-Chance-Monitor/internal/forecast"
	"github.com/jhaugh0/Rain-Chance-Monitor/internal/led"
	"github.com/jhaugh0/Rain-Chance-Monitor/internal/update"
	"github.com/jhaugh0/Rain-Chance-Monitor/internal/version"
)

// Snapshot is the published state of the display.
type Snapshot struct {
	Name     string `json:"name"`
	Version  string `json:"version"`
	Commit   string `json:"commit"`
	Provider string `json:"provider,omitempty"`

	Hour int `json:"hour"`
	Day  int `json:"day"`

	Network  string `json:"network"`
	PublicIP string `json:"public_ip,omitempty"`

	Window    []forecast.Slot        `json:"window,omitempty"`
	Frames    map[string][]led.Color `json:"frames"`
	LastCycle time.Time              `json:"last_cycle,omitempty"`

	Sleep  string    `json:"sleep,omitempty"`
	WakeAt time.Time `json:"wake_at,omitempty"`

	LastError   string    `json:"last_error,omitempty"`
	LastErrorAt time.Time `json:"last_error_at,omitempty"`

	Update *update.Result `json:"update,omitempty"`

	UpdatedAt time.Time `json:"updated_at"`
}

func (s Snapshot) clone() Snapshot {
	out := s
	out.Window = append([]forecast.Slot(nil), s.Window...)
	out.Frames = make(map[string][]led.Color, len(s.Frames))
	for name, frame := range s.Frames {
		out.Frames[name] = append([]led.Color(nil), frame...)
	}
	if s.Update != nil {
		u := *s.Update
		out.Update = &u
	}
	return out
}

// Board is the shared, mutex-protected status of the display.
type Board struct {
	mu   sync.Mutex
	snap Snapshot
	subs map[chan Snapshot]struct{}
	now  func() time.Time
}

// NewBoard creates an empty board for the named display.
func NewBoard(name string) *Board {
	return &Board{
		snap: Snapshot{
			Name:    name,
			Version: version.Version,
			Commit:  version.Commit,
			Network: "disconnected",
			Frames:  make(map[string][]led.Color),
		},
		subs: make(map[chan Snapshot]struct{}),
		now:  time.Now,
	}
}

// Snapshot returns a copy of the current state.
func (b *Board) Snapshot() Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.snap.clone()
}

// Subscribe returns a channel receiving the newest snapshot after every
// change, and a function to stop receiving.
func (b *Board) Subscribe() (<-chan Snapshot, func()) {
	ch := make(chan Snapshot, 1)
	b.mu.Lock()
	b.subs[ch] = struct{}{}
	ch <- b.snap.clone()
	b.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs, ch)
			b.mu.Unlock()
		})
	}
}

// Subscribers returns the number of live subscriptions.
func (b *Board) Subscribers() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

func (b *Board) update(fn func(s *Snapshot)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	fn(&b.snap)
	b.snap.UpdatedAt = b.now()

	snap := b.snap.clone()
	for ch := range b.subs {
		// keep only the newest snapshot for slow readers
		select {
		case <-ch:
		default:
		}
		ch <- snap
	}
}

// RecordFrame stores a flushed frame. Its signature matches led.FlushFunc.
func (b *Board) RecordFrame(strip string, frame []led.Color) {
	b.update(func(s *Snapshot) {
		s.Frames[strip] = append([]led.Color(nil), frame...)
	})
}

// RecordNetwork stores the connectivity state.
func (b *Board) RecordNetwork(state string) {
	b.update(func(s *Snapshot) { s.Network = state })
}

func (b *Board) RecordPublicIP(ip string) {
	b.update(func(s *Snapshot) { s.PublicIP = ip })
}

func (b *Board) RecordCycle(now forecast.LocalTime, provider string, w forecast.Window) {
	b.update(func(s *Snapshot) {
		s.Hour = now.Hour
		s.Day = now.Day
		s.Provider = provider
		s.Window = append([]forecast.Slot(nil), w...)
		s.LastCycle = b.now()
	})
}

func (b *Board) RecordError(err error) {
	if err == nil {
		return
	}
	b.update(func(s *Snapshot) {
		s.LastError = err.Error()
		s.LastErrorAt = b.now()
	})
}

func (b *Board) RecordSleep(reason string, until time.Time) {
	b.update(func(s *Snapshot) {
		s.Sleep = reason
		s.WakeAt = until
	})
}

func (b *Board) RecordUpdate(r update.Result) {
	b.update(func(s *Snapshot) { s.Update = &r })
}
