package server

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"

	"heart-of-colors/internal/config"
	"heart-of-colors/internal/router"
)

const version = "dev"

// Runtime wires config + middleware + Wish server as a testable unit.
type Runtime struct {
	cfg             config.SSHConfig
	shutdownTimeout time.Duration
	middlewareIDs   []string
	server          *ssh.Server
	logger          *log.Logger
}

// New builds the SSH surface. handler runs inside chain, first descriptor
// outermost. The host key is generated at cfg.SSH.HostKeyPath when missing.
func New(cfg config.Config, handler ssh.Handler, chain []router.Descriptor, logger *log.Logger) (*Runtime, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.SSH.HostKeyPath), 0o700); err != nil {
		return nil, fmt.Errorf("create host key directory: %w", err)
	}

	wrapped := router.Wrap(handler, chain)
	sshServer, err := wish.NewServer(
		wish.WithAddress(cfg.SSH.Address()),
		wish.WithHostKeyPath(cfg.SSH.HostKeyPath),
		wish.WithIdleTimeout(cfg.SSH.IdleTimeout),
		wish.WithMiddleware(func(ssh.Handler) ssh.Handler { return wrapped }),
	)
	if err != nil {
		return nil, err
	}

	return &Runtime{
		cfg:             cfg.SSH,
		shutdownTimeout: cfg.ShutdownTimeout,
		middlewareIDs:   router.Names(chain),
		server:          sshServer,
		logger:          logger,
	}, nil
}

func (r *Runtime) MiddlewareIDs() []string {
	out := make([]string, len(r.middlewareIDs))
	copy(out, r.middlewareIDs)
	return out
}

func (r *Runtime) Address() string {
	return r.server.Addr
}

// Run serves until ctx is done, then shuts down, giving open sessions the
// configured grace period.
func (r *Runtime) Run(ctx context.Context) error {
	r.logger.Info("ssh_startup", "version", version, "address", r.Address(), "middleware", r.middlewareIDs, "host_key_path", r.cfg.HostKeyPath, "idle_timeout", r.cfg.IdleTimeout, "max_sessions", r.cfg.MaxSessions)

	errCh := make(chan error, 1)
	go func() { errCh <- r.server.ListenAndServe() }()

	select {
	case err := <-errCh:
		return serveErr(err, ssh.ErrServerClosed)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), r.shutdownTimeout)
	defer cancel()
	if err := r.server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
		r.logger.Warn("ssh_shutdown_forced", "err", err)
		_ = r.server.Close()
	}
	r.logger.Info("ssh_stopped")
	return serveErr(<-errCh, ssh.ErrServerClosed)
}

func serveErr(err, closed error) error {
	if err == nil || errors.Is(err, closed) {
		return nil
	}
	return err
}
