package led

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// TerminalDriver renders each frame as a row of colored blocks.
type TerminalDriver struct {
	mu       sync.Mutex
	w        io.Writer
	label    string
	inPlace  bool
	renderer *lipgloss.Renderer
}

// NewTerminalDriver writes frames to w. On a terminal the row is redrawn in
// place; otherwise every frame is a new line.
func NewTerminalDriver(w io.Writer, label string) *TerminalDriver {
	inPlace := false
	if f, ok := w.(*os.File); ok {
		inPlace = term.IsTerminal(int(f.Fd()))
	}
	return &TerminalDriver{
		w:        w,
		label:    label,
		inPlace:  inPlace,
		renderer: lipgloss.NewRenderer(w),
	}
}

// Show draws the frame.
func (t *TerminalDriver) Show(pixels []Color) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	line := fmt.Sprintf("%-11s %s", t.label, RenderBlocks(t.renderer, pixels))
	if t.inPlace {
		_, err := fmt.Fprint(t.w, "\r\033[K"+line)
		return err
	}
	_, err := fmt.Fprintln(t.w, line)
	return err
}

// Close ends the in-place line.
func (t *TerminalDriver) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.inPlace {
		_, err := fmt.Fprintln(t.w)
		return err
	}
	return nil
}

// RenderBlocks draws pixels as colored blocks, with a dim dot for unlit ones.
func RenderBlocks(r *lipgloss.Renderer, pixels []Color) string {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	var b strings.Builder
	for _, c := range pixels {
		if c.IsOff() {
			b.WriteString(r.NewStyle().Foreground(lipgloss.Color("#3a3a3a")).Render("··"))
			continue
		}
		b.WriteString(r.NewStyle().Foreground(lipgloss.Color(c.Hex())).Render("██"))
	}
	return b.String()
}
