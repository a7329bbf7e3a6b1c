package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"heart-of-colors/internal/gallery"
	"heart-of-colors/internal/render"
	"heart-of-colors/internal/theme"
)

const (
	titleText  = "💖 Herz der Farben"
	footerText = "n/Leertaste: nächstes Thema · r: neu würfeln · q: beenden"
)

// Message types consumed by Update.
type (
	KeyMsg    struct{ Key string }
	ResizeMsg struct{ Width, Height int }
)

// Options configures a terminal model.
type Options struct {
	Width     int
	Height    int
	Term      string
	ColorTerm string
	// Source picks cell colors; nil uses the global generator.
	Source render.Source
}

// Model is the terminal view of one SSH session: its own cursor through the
// gallery and the last heart drawn for it.
type Model struct {
	gallery  *gallery.Gallery
	renderer *lipgloss.Renderer
	src      render.Source

	cursor theme.Cursor
	theme  theme.Theme
	heart  string
	err    error

	width    int
	height   int
	quitting bool
}

// NewModel builds a model showing the first theme. Styles are encoded for
// the profile that matches opts.Term and are written to w.
func NewModel(g *gallery.Gallery, w io.Writer, opts Options) Model {
	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(ProfileForTerm(opts.Term, opts.ColorTerm))

	m := Model{
		gallery:  g,
		renderer: r,
		src:      opts.Source,
		width:    opts.Width,
		height:   opts.Height,
	}
	m.redraw()
	return m
}

func (m Model) Cursor() theme.Cursor { return m.cursor }
func (m Model) Theme() theme.Theme   { return m.theme }
func (m Model) Err() error           { return m.err }
func (m Model) Quitting() bool       { return m.quitting }

// Update advances model state in response to events.
func (m Model) Update(msg any) Model {
	switch msg := msg.(type) {
	case ResizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case KeyMsg:
		switch ActionFor(msg.Key) {
		case ActionNext:
			m.cursor = m.gallery.Apply(m.cursor, gallery.EventNext)
			m.redraw()
		case ActionReroll:
			m.redraw()
		case ActionQuit:
			m.quitting = true
		}
	}
	return m
}

func (m *Model) redraw() {
	m.heart, m.theme, m.err = m.gallery.Text(m.cursor, m.renderer, m.src)
}

// View renders the title, the theme heading, the heart and the key help.
func (m Model) View() string {
	title := m.renderer.NewStyle().Bold(true)
	heading := m.renderer.NewStyle().Bold(true)
	muted := m.renderer.NewStyle().Faint(true)

	count := m.gallery.Themes().Len()
	lines := []string{
		title.Render(titleText),
		"",
		heading.Render(m.theme.Name) + muted.Render(fmt.Sprintf("  %d/%d", int(m.cursor)+1, count)),
		"",
		m.body(),
		"",
		muted.Render(footerText),
	}
	view := strings.Join(lines, "\n")
	if m.width > lipgloss.Width(view) {
		view = m.renderer.PlaceHorizontal(m.width, lipgloss.Center, view)
	}
	return view
}

func (m Model) body() string {
	if m.err != nil {
		return m.renderer.NewStyle().Foreground(lipgloss.Color("#9A3E2A")).Render("Fehler: " + m.err.Error())
	}
	need := 2 * m.gallery.Pattern().Cols()
	if m.width > 0 && m.width < need {
		return fmt.Sprintf("Terminal zu schmal: mindestens %d Spalten", need)
	}
	return m.heart
}
