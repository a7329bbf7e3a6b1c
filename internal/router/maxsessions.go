package router

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
)

const defaultMaxSessions = 32

// MaxSessionsMiddleware caps concurrent sessions. A slot is released exactly
// once, when the handler returns, when the session context ends, or when the
// handler panics.
func MaxSessionsMiddleware(limit int, logger *log.Logger) wish.Middleware {
	if limit <= 0 {
		limit = defaultMaxSessions
	}
	slots := make(chan struct{}, limit)

	return func(next ssh.Handler) ssh.Handler {
		return func(s ssh.Session) {
			select {
			case slots <- struct{}{}:
			default:
				logger.Warn("max_sessions_exceeded", "remote_ip", remoteIP(s), "max_sessions", limit)
				_, _ = s.Write([]byte("max sessions exceeded\n"))
				return
			}

			var once sync.Once
			release := func() { once.Do(func() { <-slots }) }

			done := make(chan struct{})
			go func() {
				select {
				case <-s.Context().Done():
					release()
				case <-done:
				}
			}()

			defer func() {
				close(done)
				release()
				if rec := recover(); rec != nil {
					logger.Error("ssh_session_panic", "remote_ip", remoteIP(s), "panic", fmt.Sprint(rec))
					_ = s.Exit(1)
				}
			}()
			next(s)
		}
	}
}
