package router

import (
	"net"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"

	"heart-of-colors/internal/logging"
)

// Descriptor names one middleware in the session chain so startup logs and
// tests can see the order it runs in.
type Descriptor struct {
	Name       string
	Middleware wish.Middleware
}

// ChainOptions configures DefaultChain.
type ChainOptions struct {
	RateLimitPerSecond int
	MaxSessions        int
	Logger             *log.Logger
}

// DefaultChain wires the session middleware in order: per-IP rate limiting,
// the concurrent session cap, and access logging.
func DefaultChain(opts ChainOptions) []Descriptor {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	burst := opts.RateLimitPerSecond
	return []Descriptor{
		{Name: "rate-limit", Middleware: RateLimitMiddleware(opts.RateLimitPerSecond, burst, logger)},
		{Name: "max-sessions", Middleware: MaxSessionsMiddleware(opts.MaxSessions, logger)},
		{Name: "access-log", Middleware: AccessLogMiddleware(logger)},
	}
}

// MiddlewareFromDescriptors returns the middleware of chain. The first
// entry is the outermost.
func MiddlewareFromDescriptors(chain []Descriptor) []wish.Middleware {
	out := make([]wish.Middleware, 0, len(chain))
	for _, descriptor := range chain {
		out = append(out, descriptor.Middleware)
	}
	return out
}

// Names lists the descriptor names in order.
func Names(chain []Descriptor) []string {
	out := make([]string, 0, len(chain))
	for _, descriptor := range chain {
		out = append(out, descriptor.Name)
	}
	return out
}

// Wrap applies chain around h, first descriptor outermost.
func Wrap(h ssh.Handler, chain []Descriptor) ssh.Handler {
	middleware := MiddlewareFromDescriptors(chain)
	for i := len(middleware) - 1; i >= 0; i-- {
		h = middleware[i](h)
	}
	return h
}

// AccessLogMiddleware logs the start and end of every session.
func AccessLogMiddleware(logger *log.Logger) wish.Middleware {
	return func(next ssh.Handler) ssh.Handler {
		return func(s ssh.Session) {
			started := time.Now()
			ip := remoteIP(s)
			logger.Info("ssh_session_start", "user", s.User(), "remote_ip", ip)
			defer func() {
				logger.Info("ssh_session_end", "user", s.User(), "remote_ip", ip, "duration_ms", time.Since(started).Milliseconds())
			}()
			next(s)
		}
	}
}

func remoteIP(s ssh.Session) string {
	remote := s.RemoteAddr()
	if remote == nil {
		return "unknown"
	}

	host, _, err := net.SplitHostPort(remote.String())
	if err != nil {
		return remote.String()
	}

	if host == "" {
		return "unknown"
	}
	return host
}
