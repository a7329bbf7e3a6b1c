package server

import (
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"

	"heart-of-colors/internal/gallery"
	"heart-of-colors/internal/metrics"
	"heart-of-colors/internal/render"
	"heart-of-colors/internal/tui"
)

const (
	noPTYMessage = "interactive terminal requires an attached PTY\n"

	clearScreen = "\x1b[H\x1b[2J"
	hideCursor  = "\x1b[?25l"
	showCursor  = "\x1b[?25h"
)

// SessionHandler serves the interactive heart to SSH sessions. Each
// session keeps its own cursor for as long as it is connected.
type SessionHandler struct {
	gallery   *gallery.Gallery
	logger    *log.Logger
	metrics   *metrics.Metrics
	newSource func() render.Source
}

func NewSessionHandler(g *gallery.Gallery, logger *log.Logger, m *metrics.Metrics) *SessionHandler {
	return &SessionHandler{
		gallery:   g,
		logger:    logger,
		metrics:   m,
		newSource: func() render.Source { return nil },
	}
}

// Handle is the ssh.Handler for one session.
func (h *SessionHandler) Handle(s ssh.Session) {
	pty, windows, ok := s.Pty()
	if !ok {
		_, _ = io.WriteString(s, noPTYMessage)
		_ = s.Exit(1)
		return
	}

	sessions := h.metrics.Sessions.WithLabelValues(metrics.SurfaceSSH)
	sessions.Inc()
	defer sessions.Dec()

	started := time.Now()
	model := tui.NewModel(h.gallery, s, tui.Options{
		Width:     pty.Window.Width,
		Height:    pty.Window.Height,
		Term:      pty.Term,
		ColorTerm: envValue(s.Environ(), "COLORTERM"),
		Source:    h.newSource(),
	})
	h.observeRender(s, model, started)

	_, _ = io.WriteString(s, hideCursor)
	defer func() { _, _ = io.WriteString(s, showCursor) }()
	draw(s, model)

	input := make(chan []byte)
	done := make(chan struct{})
	defer close(done)
	go readInput(s, input, done)

	for {
		select {
		case <-s.Context().Done():
			return
		case win, ok := <-windows:
			if !ok {
				windows = nil
				continue
			}
			model = model.Update(tui.ResizeMsg{Width: win.Width, Height: win.Height})
			draw(s, model)
		case p, ok := <-input:
			if !ok {
				_ = s.Exit(0)
				return
			}
			for _, key := range tui.ParseKeys(p) {
				action := tui.ActionFor(key.Key)
				started := time.Now()
				model = model.Update(key)
				switch action {
				case tui.ActionNext:
					h.metrics.ObserveAdvance(metrics.SurfaceSSH)
					h.logger.Info("theme_advanced", "surface", metrics.SurfaceSSH, "user", s.User(), "index", int(model.Cursor()), "theme", model.Theme().Name)
					h.observeRender(s, model, started)
				case tui.ActionReroll:
					h.observeRender(s, model, started)
				case tui.ActionQuit:
					_, _ = io.WriteString(s, "\r\n")
					_ = s.Exit(0)
					return
				default:
					continue
				}
				draw(s, model)
			}
		}
	}
}

func (h *SessionHandler) observeRender(s ssh.Session, model tui.Model, started time.Time) {
	kind := render.Kind(model.Err())
	h.metrics.ObserveRender(metrics.SurfaceSSH, model.Theme().Name, started, kind)
	if kind != "" {
		h.logger.Error("render_failed", "surface", metrics.SurfaceSSH, "user", s.User(), "theme", model.Theme().Name, "kind", kind, "err", model.Err())
	}
}

func draw(w io.Writer, model tui.Model) {
	_, _ = io.WriteString(w, clearScreen+strings.ReplaceAll(model.View(), "\n", "\r\n"))
}

func readInput(r io.Reader, out chan<- []byte, done <-chan struct{}) {
	defer close(out)
	buf := make([]byte, 256)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			chunk := append([]byte(nil), buf[:n]...)
			select {
			case out <- chunk:
			case <-done:
				return
			}
		}
		if err != nil {
			return
		}
	}
}

func envValue(environ []string, key string) string {
	prefix := key + "="
	for _, kv := range environ {
		if strings.HasPrefix(kv, prefix) {
			return strings.TrimPrefix(kv, prefix)
		}
	}
	return ""
}
