package watch

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jhaugh0/Rain-Chance-Monitor/internal/discovery"
	"github.com/jhaugh0/Rain-Chance-Monitor/internal/led"
	"github.com/jhaugh0/Rain-Chance-Monitor/internal/status"
	"github.com/jhaugh0/Rain-Chance-Monitor/internal/ui"
)

type phase int

const (
	phaseDiscovering phase = iota
	phaseConnecting
	phaseLive
	phaseFailed
)

// Messages for async operations
type foundMsg struct{ addr string }
type connectedMsg struct{ stream Stream }
type snapshotMsg struct{ snap status.Snapshot }
type failedMsg struct{ err error }
type tickMsg time.Time

type keyMap struct {
	Reconnect key.Binding
	Help      key.Binding
	Quit      key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Reconnect, k.Help, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Reconnect}, {k.Help, k.Quit}}
}

func defaultKeys() keyMap {
	return keyMap{
		Reconnect: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reconnect")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// Options configure a Model.
type Options struct {
	// Addr is host:port of the display; empty means discover one.
	Addr    string
	Dial    Dialer
	Scanner *discovery.Scanner
	Now     func() time.Time
}

// Model is the bubbletea model of the mirror.
type Model struct {
	opts Options

	phase  phase
	addr   string
	stream Stream
	snap   *status.Snapshot
	err    error
	now    time.Time

	spinner  spinner.Model
	progress progress.Model
	help     help.Model
	keys     keyMap
	renderer *lipgloss.Renderer

	Width int
}

// New creates the mirror model.
func New(opts Options) Model {
	if opts.Dial == nil {
		opts.Dial = DialWebsocket
	}
	if opts.Scanner == nil {
		opts.Scanner = discovery.NewScanner()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(ui.PrimaryColor)

	m := Model{
		opts:     opts,
		addr:     opts.Addr,
		now:      opts.Now(),
		spinner:  s,
		progress: progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
		help:     help.New(),
		keys:     defaultKeys(),
		renderer: lipgloss.DefaultRenderer(),
		Width:    ui.MinTerminalWidth,
	}
	if opts.Addr == "" {
		m.phase = phaseDiscovering
	} else {
		m.phase = phaseConnecting
	}
	return m
}

// Init starts discovery or the connection.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.start(), tick())
}

func (m Model) start() tea.Cmd {
	if m.addr == "" {
		return discover(m.opts.Scanner)
	}
	return connect(m.opts.Dial, m.addr)
}

func discover(scanner *discovery.Scanner) tea.Cmd {
	return func() tea.Msg {
		d, err := scanner.First(context.Background())
		if err != nil {
			return failedMsg{err: err}
		}
		return foundMsg{addr: d.Addr()}
	}
}

func connect(dial Dialer, addr string) tea.Cmd {
	return func() tea.Msg {
		stream, err := dial(context.Background(), addr)
		if err != nil {
			return failedMsg{err: err}
		}
		return connectedMsg{stream: stream}
	}
}

func next(stream Stream) tea.Cmd {
	return func() tea.Msg {
		snap, err := stream.Next()
		if err != nil {
			return failedMsg{err: fmt.Errorf("stream closed: %w", err)}
		}
		return snapshotMsg{snap: snap}
	}
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.closeStream()
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Reconnect):
			m.closeStream()
			m.err = nil
			if m.addr == "" {
				m.phase = phaseDiscovering
			} else {
				m.phase = phaseConnecting
			}
			return m, tea.Batch(m.spinner.Tick, m.start())
		}
		return m, nil

	case foundMsg:
		m.addr = msg.addr
		m.phase = phaseConnecting
		return m, connect(m.opts.Dial, m.addr)

	case connectedMsg:
		m.stream = msg.stream
		m.phase = phaseLive
		return m, next(m.stream)

	case snapshotMsg:
		snap := msg.snap
		m.snap = &snap
		m.phase = phaseLive
		return m, next(m.stream)

	case failedMsg:
		m.closeStream()
		m.err = msg.err
		m.phase = phaseFailed
		return m, nil

	case tickMsg:
		m.now = time.Time(msg)
		return m, tick()

	case spinner.TickMsg:
		if m.phase == phaseLive || m.phase == phaseFailed {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) closeStream() {
	if m.stream != nil {
		_ = m.stream.Close()
		m.stream = nil
	}
}

// View renders the current screen
func (m Model) View() string {
	var b strings.Builder

	switch m.phase {
	case phaseDiscovering:
		fmt.Fprintf(&b, "\n  %s Looking for displays on the network...\n", m.spinner.View())
	case phaseConnecting:
		fmt.Fprintf(&b, "\n  %s Connecting to %s...\n", m.spinner.View(), m.addr)
	case phaseFailed:
		b.WriteString("\n")
		b.WriteString(ui.NewFailureResult("Connection lost", m.err, []string{
			"Check that status.enabled is true on the display",
			"Press r to reconnect",
		}).SetWidth(m.Width).Render())
		b.WriteString("\n")
	case phaseLive:
		if m.snap == nil {
			fmt.Fprintf(&b, "\n  Waiting for the first snapshot from %s...\n", m.addr)
		} else {
			b.WriteString(m.liveView())
		}
	}

	b.WriteString("\n  ")
	b.WriteString(m.help.View(m.keys))
	b.WriteString("\n")
	return b.String()
}

func (m Model) liveView() string {
	s := m.snap
	var b strings.Builder

	params := []ui.Param{
		{Key: "Network", Value: s.Network},
		{Key: "Local time", Value: fmt.Sprintf("%02d:00, day %d", s.Hour, s.Day)},
		{Key: "Provider", Value: orDash(s.Provider)},
		{Key: "Version", Value: s.Version},
	}
	if s.PublicIP != "" {
		params = append(params, ui.Param{Key: "Public IP", Value: s.PublicIP})
	}
	if s.Update != nil && s.Update.Available {
		params = append(params, ui.Param{Key: "Update", Value: "available (" + short(s.Update.Remote) + ")"})
	}
	b.WriteString(ui.NewHeader(s.Name, m.addr, params).SetWidth(m.Width).Render())
	b.WriteString("\n\n")

	for _, name := range []string{"rain", "temperature"} {
		frame, ok := s.Frames[name]
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "  %-11s %s\n", name, led.RenderBlocks(m.renderer, frame))
	}
	if len(s.Window) > 0 {
		hours := make([]string, len(s.Window))
		for i, slot := range s.Window {
			hours[i] = fmt.Sprintf("%02d", slot.Hour)
		}
		fmt.Fprintf(&b, "  %-11s %s\n", "slots", strings.Join(hours, ""))
	}

	if s.Sleep != "" && !s.WakeAt.IsZero() {
		remaining := s.WakeAt.Sub(m.now).Round(time.Second)
		if remaining < 0 {
			remaining = 0
		}
		fmt.Fprintf(&b, "\n  %s until %s  %s\n", s.Sleep, s.WakeAt.Format("15:04:05"),
			m.progress.ViewAs(SleepProgress(s.UpdatedAt, s.WakeAt, m.now)))
		fmt.Fprintf(&b, "  %s remaining\n", remaining)
	}
	if s.LastError != "" {
		b.WriteString("\n  ")
		b.WriteString(ui.ErrorMessageStyle.Render(fmt.Sprintf("last error %s: %s",
			s.LastErrorAt.Format("15:04"), s.LastError)))
		b.WriteString("\n")
	}
	return b.String()
}

// SleepProgress is the elapsed fraction of the sleep that started at from.
func SleepProgress(from, until, now time.Time) float64 {
	total := until.Sub(from)
	if total <= 0 {
		return 1
	}
	p := float64(now.Sub(from)) / float64(total)
	switch {
	case p < 0:
		return 0
	case p > 1:
		return 1
	}
	return p
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func short(sha string) string {
	if len(sha) > 7 {
		return sha[:7]
	}
	return sha
}

// Run starts the program in the alternate screen.
func Run(opts Options) error {
	_, err := tea.NewProgram(New(opts), tea.WithAltScreen()).Run()
	return err
}
