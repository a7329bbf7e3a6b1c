package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"

	"heart-of-colors/internal/config"
)

const readHeaderTimeout = 5 * time.Second

// HTTPRuntime serves the web page and API.
type HTTPRuntime struct {
	server          *http.Server
	shutdownTimeout time.Duration
	logger          *log.Logger
}

func NewHTTP(cfg config.Config, handler http.Handler, logger *log.Logger) *HTTPRuntime {
	return &HTTPRuntime{
		server: &http.Server{
			Addr:              cfg.HTTPAddress(),
			Handler:           handler,
			ReadHeaderTimeout: readHeaderTimeout,
		},
		shutdownTimeout: cfg.ShutdownTimeout,
		logger:          logger,
	}
}

func (r *HTTPRuntime) Address() string { return r.server.Addr }

// Run listens on the configured address and serves until ctx is done.
func (r *HTTPRuntime) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", r.server.Addr)
	if err != nil {
		return err
	}
	return r.Serve(ctx, ln)
}

// Serve serves on ln until ctx is done, then drains in-flight requests.
func (r *HTTPRuntime) Serve(ctx context.Context, ln net.Listener) error {
	r.logger.Info("http_startup", "version", version, "address", ln.Addr().String())

	errCh := make(chan error, 1)
	go func() { errCh <- r.server.Serve(ln) }()

	select {
	case err := <-errCh:
		return serveErr(err, http.ErrServerClosed)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), r.shutdownTimeout)
	defer cancel()
	if err := r.server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		r.logger.Warn("http_shutdown_forced", "err", err)
		_ = r.server.Close()
	}
	r.logger.Info("http_stopped")
	return serveErr(<-errCh, http.ErrServerClosed)
}
