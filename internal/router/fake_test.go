package router

import (
	"context"
	"net"
	"sync"
	"time"

	"github.com/charmbracelet/ssh"
)

// fakeContext backs ssh.Context with a regular context. Methods not
// overridden here panic through the nil embedded interface.
type fakeContext struct {
	ssh.Context
	ctx context.Context
}

func (f fakeContext) Done() <-chan struct{}             { return f.ctx.Done() }
func (f fakeContext) Err() error                        { return f.ctx.Err() }
func (f fakeContext) Deadline() (time.Time, bool)       { return f.ctx.Deadline() }
func (f fakeContext) Value(key interface{}) interface{} { return f.ctx.Value(key) }

type fakeSession struct {
	ssh.Session
	ctx    context.Context
	user   string
	remote net.Addr

	mu       sync.Mutex
	writes   []string
	exitCode *int
}

func newFakeSession(ctx context.Context, ip string) *fakeSession {
	return &fakeSession{
		ctx:    ctx,
		user:   "guest",
		remote: &net.TCPAddr{IP: net.ParseIP(ip), Port: 2222},
	}
}

func (f *fakeSession) User() string         { return f.user }
func (f *fakeSession) RemoteAddr() net.Addr { return f.remote }
func (f *fakeSession) Context() ssh.Context { return fakeContext{ctx: f.ctx} }
func (f *fakeSession) Write(p []byte) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writes = append(f.writes, string(p))
	return len(p), nil
}
func (f *fakeSession) Exit(code int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.exitCode = &code
	return nil
}

func (f *fakeSession) recordedWrites() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.writes...)
}

type testAddr string

func (a testAddr) Network() string { return "test" }
func (a testAddr) String() string  { return string(a) }
