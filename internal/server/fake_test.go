package server

import (
	"bytes"
	"context"
	"io"
	"net"
	"sync"
	"time"

	"github.com/charmbracelet/ssh"
)

type fakeContext struct {
	ssh.Context
	ctx context.Context
}

func (f fakeContext) Done() <-chan struct{}             { return f.ctx.Done() }
func (f fakeContext) Err() error                        { return f.ctx.Err() }
func (f fakeContext) Deadline() (time.Time, bool)       { return f.ctx.Deadline() }
func (f fakeContext) Value(key interface{}) interface{} { return f.ctx.Value(key) }

// fakeSession implements the parts of ssh.Session the handler and the
// router middleware touch.
type fakeSession struct {
	ssh.Session
	ctx     context.Context
	user    string
	remote  net.Addr
	environ []string
	reader  io.Reader
	pty     ssh.Pty
	hasPTY  bool
	windows chan ssh.Window

	mu       sync.Mutex
	writes   bytes.Buffer
	exitCode *int
}

// newFakeSession feeds input to the handler; an empty input blocks reads
// until closeInput is called.
func newFakeSession(ctx context.Context, hasPTY bool, input string) (*fakeSession, func()) {
	closeInput := func() {}
	var reader io.Reader = bytes.NewBufferString(input)
	if input == "" {
		r, w := io.Pipe()
		reader = r
		closeInput = func() { _ = w.Close() }
	}
	return &fakeSession{
		ctx:     ctx,
		user:    "guest",
		remote:  &net.TCPAddr{IP: net.ParseIP("203.0.113.60"), Port: 2022},
		environ: []string{"COLORTERM=truecolor"},
		reader:  reader,
		hasPTY:  hasPTY,
		pty:     ssh.Pty{Term: "xterm-256color", Window: ssh.Window{Width: 80, Height: 24}},
		windows: make(chan ssh.Window, 1),
	}, closeInput
}

func (f *fakeSession) Read(p []byte) (int, error) { return f.reader.Read(p) }
func (f *fakeSession) Write(p []byte) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.writes.Write(p)
}
func (f *fakeSession) User() string         { return f.user }
func (f *fakeSession) RemoteAddr() net.Addr { return f.remote }
func (f *fakeSession) Environ() []string    { return f.environ }
func (f *fakeSession) Context() ssh.Context { return fakeContext{ctx: f.ctx} }
func (f *fakeSession) Pty() (ssh.Pty, <-chan ssh.Window, bool) {
	return f.pty, f.windows, f.hasPTY
}
func (f *fakeSession) Exit(code int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.exitCode = &code
	return nil
}

func (f *fakeSession) output() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.writes.String()
}

func (f *fakeSession) recordedExitCode() (int, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.exitCode == nil {
		return 0, false
	}
	return *f.exitCode, true
}
