// Package metrics declares the Prometheus collectors for renders, theme
// advances, sessions and HTTP traffic.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "heart"

// Surfaces label where a render or advance happened.
const (
	SurfaceHTTP = "http"
	SurfaceSSH  = "ssh"
	SurfaceCLI  = "cli"
)

// Metrics groups every collector. The zero value is not usable; call New.
type Metrics struct {
	Renders        *prometheus.CounterVec
	RenderErrors   *prometheus.CounterVec
	RenderDuration *prometheus.HistogramVec
	Advances       *prometheus.CounterVec
	Sessions       *prometheus.GaugeVec
	HTTPRequests   *prometheus.CounterVec
}

// New registers collectors on reg. A nil reg leaves them unregistered.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Renders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "render",
			Name:      "total",
			Help:      "Number of successful heart renders.",
		}, []string{"surface", "theme"}),
		RenderErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "render",
			Name:      "errors_total",
			Help:      "Number of failed heart renders by error kind.",
		}, []string{"surface", "kind"}),
		RenderDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "render",
			Name:      "duration_seconds",
			Help:      "Duration of heart renders.",
			Buckets:   []float64{.0005, .001, .0025, .005, .01, .025, .05, .1},
		}, []string{"surface"}),
		Advances: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "theme",
			Name:      "advances_total",
			Help:      "Number of next-theme events.",
		}, []string{"surface"}),
		Sessions: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "session",
			Name:      "active",
			Help:      "Number of live sessions.",
		}, []string{"surface"}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Number of incoming HTTP requests.",
		}, []string{"path", "method", "status"}),
	}
	if reg != nil {
		reg.MustRegister(m.Renders, m.RenderErrors, m.RenderDuration, m.Advances, m.Sessions, m.HTTPRequests)
	}
	return m
}

// ObserveRender records one render attempt that started at started.
func (m *Metrics) ObserveRender(surface, theme string, started time.Time, errKind string) {
	m.RenderDuration.WithLabelValues(surface).Observe(time.Since(started).Seconds())
	if errKind != "" {
		m.RenderErrors.WithLabelValues(surface, errKind).Inc()
		return
	}
	m.Renders.WithLabelValues(surface, theme).Inc()
}

// ObserveAdvance records one next-theme event.
func (m *Metrics) ObserveAdvance(surface string) {
	m.Advances.WithLabelValues(surface).Inc()
}

// ObserveRequest records one HTTP response.
func (m *Metrics) ObserveRequest(path, method string, status int) {
	m.HTTPRequests.WithLabelValues(path, method, strconv.Itoa(status)).Inc()
}
