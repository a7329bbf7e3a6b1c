package gateway

import (
	"image"
	"time"

	"github.com/charmbracelet/log"

	"heart-of-colors/internal/gallery"
	"heart-of-colors/internal/metrics"
	"heart-of-colors/internal/render"
	"heart-of-colors/internal/theme"
)

const faviconSize = 64

// State is the session's position in the theme cycle.
type State struct {
	Index int    `json:"index"`
	Count int    `json:"count"`
	Theme string `json:"theme"`
}

// ThemeInfo describes one registered theme.
type ThemeInfo struct {
	Index   int      `json:"index"`
	Name    string   `json:"name"`
	Palette []string `json:"palette"`
}

// Service connects browser sessions to the gallery.
type Service struct {
	gallery   *gallery.Gallery
	store     SessionStore
	logger    *log.Logger
	metrics   *metrics.Metrics
	newSource func() render.Source
}

func NewService(g *gallery.Gallery, store SessionStore, logger *log.Logger, m *metrics.Metrics) *Service {
	return &Service{
		gallery:   g,
		store:     store,
		logger:    logger,
		metrics:   m,
		newSource: func() render.Source { return nil },
	}
}

// State returns the session's current theme without changing it.
func (s *Service) State(sessionID string) (State, error) {
	cursor := s.gallery.Apply(s.store.Load(sessionID), gallery.EventShow)
	s.observeSessions()
	return s.stateAt(cursor)
}

// Advance moves the session to the next theme, exactly once per call.
func (s *Service) Advance(sessionID string) (State, error) {
	cursor := s.store.Update(sessionID, func(c theme.Cursor) theme.Cursor {
		return s.gallery.Apply(c, gallery.EventNext)
	})
	s.metrics.ObserveAdvance(metrics.SurfaceHTTP)
	s.observeSessions()

	state, err := s.stateAt(cursor)
	if err != nil {
		return State{}, err
	}
	s.logger.Info("theme_advanced", "surface", metrics.SurfaceHTTP, "session", shortID(sessionID), "index", state.Index, "theme", state.Theme)
	return state, nil
}

// Frame renders the session's current theme.
func (s *Service) Frame(sessionID string) (gallery.Frame, error) {
	cursor := s.gallery.Apply(s.store.Load(sessionID), gallery.EventShow)
	s.observeSessions()

	started := time.Now()
	frame, err := s.gallery.Frame(cursor, s.newSource())
	themeName := frame.Theme
	if err != nil {
		if current, lookupErr := s.gallery.Themes().At(cursor); lookupErr == nil {
			themeName = current.Name
		}
		s.metrics.ObserveRender(metrics.SurfaceHTTP, themeName, started, render.Kind(err))
		s.logger.Error("render_failed", "surface", metrics.SurfaceHTTP, "session", shortID(sessionID), "theme", themeName, "kind", render.Kind(err), "err", err)
		return gallery.Frame{}, mapRenderError(err)
	}
	s.metrics.ObserveRender(metrics.SurfaceHTTP, themeName, started, "")
	return frame, nil
}

// Favicon renders a small heart in the session's current theme.
func (s *Service) Favicon(sessionID string) (image.Image, error) {
	frame, err := s.Frame(sessionID)
	if err != nil {
		return nil, err
	}
	return render.Thumbnail(frame.Image, faviconSize), nil
}

// Themes lists every theme in traversal order.
func (s *Service) Themes() []ThemeInfo {
	themes := s.gallery.Themes()
	out := make([]ThemeInfo, 0, themes.Len())
	for i, name := range themes.Names() {
		palette, _ := themes.Palette(name)
		out = append(out, ThemeInfo{Index: i, Name: name, Palette: palette})
	}
	return out
}

func (s *Service) stateAt(c theme.Cursor) (State, error) {
	current, err := s.gallery.Themes().At(c)
	if err != nil {
		return State{}, mapRenderError(err)
	}
	return State{Index: int(c), Count: s.gallery.Themes().Len(), Theme: current.Name}, nil
}

func (s *Service) observeSessions() {
	s.metrics.Sessions.WithLabelValues(metrics.SurfaceHTTP).Set(float64(s.store.Len()))
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
