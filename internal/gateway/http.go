package gateway

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"
	"strconv"
	"time"

	"github.com/justinas/alice"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"heart-of-colors/internal/render"
)

var knownRoutes = map[string]struct{}{
	"/":            {},
	"/next":        {},
	"/heart.png":   {},
	"/favicon.png": {},
	"/api/themes":  {},
	"/api/state":   {},
	"/api/next":    {},
	"/healthz":     {},
	"/metrics":     {},
}

// HandlerOptions configures cookies and the metrics endpoint.
type HandlerOptions struct {
	// SessionHashKey signs session cookies; empty generates a random key.
	SessionHashKey []byte
	SessionMaxAge  time.Duration
	SecureCookies  bool
	// Gatherer backs /metrics; nil uses the default Prometheus registry.
	Gatherer prometheus.Gatherer
}

type Handler struct {
	svc      *Service
	sessions *sessionCodec
	gatherer prometheus.Gatherer
}

func NewHandler(svc *Service, opts HandlerOptions) *Handler {
	gatherer := opts.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return &Handler{
		svc:      svc,
		sessions: newSessionCodec(opts.SessionHashKey, opts.SessionMaxAge, opts.SecureCookies),
		gatherer: gatherer,
	}
}

func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", h.page)
	mux.HandleFunc("/next", h.next)
	mux.HandleFunc("/heart.png", h.heartImage)
	mux.HandleFunc("/favicon.png", h.favicon)
	mux.HandleFunc("/api/themes", h.themes)
	mux.HandleFunc("/api/state", h.state)
	mux.HandleFunc("/api/next", h.apiNext)
	mux.HandleFunc("/healthz", h.health)
	mux.Handle("/metrics", promhttp.HandlerFor(h.gatherer, promhttp.HandlerOpts{}))
	return alice.New(h.recoverPanics, h.instrumentRequests).Then(mux)
}

func (h *Handler) instrumentRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		observer := &statusObserver{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(observer, r)
		h.svc.metrics.ObserveRequest(routeLabel(r.URL.Path), r.Method, observer.status)
		h.svc.logger.Info(
			"gateway_http_request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", observer.status,
			"duration_ms", time.Since(started).Milliseconds(),
			"remote", r.RemoteAddr,
		)
	})
}

func (h *Handler) recoverPanics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				h.svc.logger.Error("gateway_panic", "path", r.URL.Path, "panic", fmt.Sprint(rec), "stack", string(debug.Stack()))
				writeErr(w, http.StatusInternalServerError, "INTERNAL_ERROR", "interner Serverfehler")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

type statusObserver struct {
	http.ResponseWriter
	status int
}

func (o *statusObserver) WriteHeader(status int) {
	o.status = status
	o.ResponseWriter.WriteHeader(status)
}

func (o *statusObserver) Flush() {
	if flusher, ok := o.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

func (h *Handler) page(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		h.logRejection(r, "page", "unknown_route")
		writeErr(w, http.StatusNotFound, "NOT_FOUND", "Seite nicht gefunden")
		return
	}
	if !h.allowMethod(w, r, "page", http.MethodGet) {
		return
	}

	sid := h.sessions.session(w, r)
	data := pageData{}
	frame, err := h.svc.Frame(sid)
	if err != nil {
		state, stateErr := h.svc.State(sid)
		if stateErr == nil {
			data.Theme, data.Position, data.Count = state.Theme, state.Index+1, state.Count
		}
		data.Error = friendlyMessage(err)
	} else {
		data.Theme, data.Position, data.Count = frame.Theme, frame.Index+1, frame.Count
		data.Width, data.Height = frame.Image.Bounds().Dx(), frame.Image.Bounds().Dy()
		if data.Image, err = pngDataURL(frame.Image); err != nil {
			data.Error = "Das Herz-Bild konnte nicht kodiert werden."
		}
	}

	body, err := renderPage(data)
	if err != nil {
		h.svc.logger.Error("page_render_failed", "err", err)
		writeErr(w, http.StatusInternalServerError, "INTERNAL_ERROR", "interner Serverfehler")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func (h *Handler) next(w http.ResponseWriter, r *http.Request) {
	if !h.allowMethod(w, r, "next", http.MethodPost) {
		return
	}
	sid := h.sessions.session(w, r)
	if _, err := h.svc.Advance(sid); err != nil {
		h.logRejection(r, "next", err.Error())
		writeMappedErr(w, err)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) apiNext(w http.ResponseWriter, r *http.Request) {
	if !h.allowMethod(w, r, "api_next", http.MethodPost) {
		return
	}
	state, err := h.svc.Advance(h.sessions.session(w, r))
	if err != nil {
		h.logRejection(r, "api_next", err.Error())
		writeMappedErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (h *Handler) state(w http.ResponseWriter, r *http.Request) {
	if !h.allowMethod(w, r, "state", http.MethodGet) {
		return
	}
	state, err := h.svc.State(h.sessions.session(w, r))
	if err != nil {
		writeMappedErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (h *Handler) themes(w http.ResponseWriter, r *http.Request) {
	if !h.allowMethod(w, r, "themes", http.MethodGet) {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"themes": h.svc.Themes()})
}

func (h *Handler) heartImage(w http.ResponseWriter, r *http.Request) {
	if !h.allowMethod(w, r, "heart_image", http.MethodGet) {
		return
	}
	frame, err := h.svc.Frame(h.sessions.session(w, r))
	if err != nil {
		writeMappedErr(w, err)
		return
	}
	var buf bytes.Buffer
	if err := render.EncodePNG(&buf, frame.Image); err != nil {
		writeMappedErr(w, err)
		return
	}
	w.Header().Set("X-Heart-Theme-Index", strconv.Itoa(frame.Index))
	writePNG(w, buf.Bytes())
}

func (h *Handler) favicon(w http.ResponseWriter, r *http.Request) {
	if !h.allowMethod(w, r, "favicon", http.MethodGet) {
		return
	}
	img, err := h.svc.Favicon(h.sessions.session(w, r))
	if err != nil {
		writeMappedErr(w, err)
		return
	}
	var buf bytes.Buffer
	if err := render.EncodePNG(&buf, img); err != nil {
		writeMappedErr(w, err)
		return
	}
	writePNG(w, buf.Bytes())
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	if !h.allowMethod(w, r, "health", http.MethodGet) {
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) allowMethod(w http.ResponseWriter, r *http.Request, operation, method string) bool {
	if r.Method == method || (method == http.MethodGet && r.Method == http.MethodHead) {
		return true
	}
	h.logRejection(r, operation, "method_not_allowed")
	w.Header().Set("Allow", method)
	writeErr(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Methode nicht erlaubt")
	return false
}

func (h *Handler) logRejection(r *http.Request, operation string, reason string) {
	h.svc.logger.Warn("gateway_request_rejected", "operation", operation, "method", r.Method, "path", r.URL.Path, "reason", reason, "remote", r.RemoteAddr)
}

func routeLabel(path string) string {
	if _, ok := knownRoutes[path]; ok {
		return path
	}
	return "other"
}

func friendlyMessage(err error) string {
	var friendly *FriendlyError
	if errors.As(err, &friendly) {
		return friendly.Message
	}
	return "Das Herz konnte nicht gezeichnet werden."
}

func writeMappedErr(w http.ResponseWriter, err error) {
	var friendly *FriendlyError
	if errors.As(err, &friendly) {
		status := http.StatusInternalServerError
		if friendly.Code == "THEME_NOT_FOUND" {
			status = http.StatusNotFound
		}
		writeErr(w, status, friendly.Code, friendly.Message)
		return
	}
	writeErr(w, http.StatusInternalServerError, "INTERNAL_ERROR", "interner Serverfehler")
}

func writePNG(w http.ResponseWriter, body []byte) {
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func writeErr(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]string{"code": code, "message": message, "status": strconv.Itoa(status)})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
