package server

import (
	"context"
	"io"
	"net"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"heart-of-colors/internal/config"
	"heart-of-colors/internal/gallery"
	"heart-of-colors/internal/logging"
	"heart-of-colors/internal/router"
)

func TestNewRuntimeStartupPipeline(t *testing.T) {
	cfg := config.Config{
		ShutdownTimeout: time.Second,
		SSH: config.SSHConfig{
			Host:               "127.0.0.1",
			Port:               2222,
			HostKeyPath:        filepath.Join(t.TempDir(), "keys", "host_ed25519"),
			IdleTimeout:        time.Minute,
			MaxSessions:        4,
			RateLimitPerSecond: 10,
		},
	}

	h, _ := newTestHandler(t, gallery.Default())
	chain := router.DefaultChain(router.ChainOptions{RateLimitPerSecond: cfg.SSH.RateLimitPerSecond, MaxSessions: cfg.SSH.MaxSessions})
	runtime, err := New(cfg, h.Handle, chain, logging.Discard())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if got := runtime.Address(); got != "127.0.0.1:2222" {
		t.Fatalf("Address() = %q, want %q", got, "127.0.0.1:2222")
	}

	want := []string{"rate-limit", "max-sessions", "access-log"}
	got := runtime.MiddlewareIDs()
	if len(got) != len(want) {
		t.Fatalf("middleware length = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("middleware[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	got[0] = "mutated"
	if runtime.MiddlewareIDs()[0] != "rate-limit" {
		t.Fatal("MiddlewareIDs() exposed internal state")
	}
}

func TestHTTPRuntimeServesAndShutsDown(t *testing.T) {
	cfg := config.Config{HTTPHost: "127.0.0.1", HTTPPort: 8080, ShutdownTimeout: time.Second}
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "ok")
	})
	rt := NewHTTP(cfg, mux, logging.Discard())
	if rt.Address() != "127.0.0.1:8080" {
		t.Fatalf("Address() = %q", rt.Address())
	}

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- rt.Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusOK || string(body) != "ok" {
		t.Fatalf("status=%d body=%q", resp.StatusCode, body)
	}

	cancel()
	select {
	case err := <-errCh:
		if err != nil {
			t.Fatalf("Serve() error = %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Serve() did not return after cancellation")
	}
}
