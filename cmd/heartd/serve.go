package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"heart-of-colors/internal/config"
	"heart-of-colors/internal/gallery"
	"heart-of-colors/internal/gateway"
	"heart-of-colors/internal/logging"
	"heart-of-colors/internal/metrics"
	"heart-of-colors/internal/pattern"
	"heart-of-colors/internal/render"
	"heart-of-colors/internal/router"
	"heart-of-colors/internal/server"
	"heart-of-colors/internal/theme"
)

const sessionSweepInterval = time.Minute

func serveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the web page, and the SSH terminal when enabled",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context())
		},
	}
}

func serve(ctx context.Context) error {
	dotEnvUsed := false
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return fmt.Errorf("load .env: %w", err)
		}
		dotEnvUsed = true
	}

	cfg, err := config.LoadFromEnv()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger, err := logging.New(cfg.LogLevel, os.Stderr)
	if err != nil {
		return err
	}
	if dotEnvUsed {
		logger.Info("dotenv_loaded", "path", ".env")
	}
	if len(cfg.SessionHashKey) == 0 {
		logger.Warn("session_key_generated", "reason", "HEART_SESSION_HASH_KEY not set; sessions will not survive a restart")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	g := gallery.New(theme.Default(), pattern.Heart, render.Options{CellSize: cfg.CellSize, Gap: cfg.CellGap})
	store := gateway.NewMemoryStore(cfg.SessionIdleTimeout)
	svc := gateway.NewService(g, store, logger, m)
	web := gateway.NewHandler(svc, gateway.HandlerOptions{
		SessionHashKey: cfg.SessionHashKey,
		SessionMaxAge:  cfg.SessionIdleTimeout,
		SecureCookies:  cfg.Environment == config.EnvProduction,
		Gatherer:       reg,
	})
	httpRuntime := server.NewHTTP(cfg, web.Routes(), logger)

	var sshRuntime *server.Runtime
	if cfg.SSH.Enabled {
		chain := router.DefaultChain(router.ChainOptions{
			RateLimitPerSecond: cfg.SSH.RateLimitPerSecond,
			MaxSessions:        cfg.SSH.MaxSessions,
			Logger:             logger,
		})
		sshRuntime, err = server.New(cfg, server.NewSessionHandler(g, logger, m).Handle, chain, logger)
		if err != nil {
			return fmt.Errorf("build ssh server: %w", err)
		}
	}

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		store.Run(ctx, sessionSweepInterval, func(removed int) {
			if removed > 0 {
				logger.Debug("sessions_swept", "removed", removed, "remaining", store.Len())
			}
		})
		return nil
	})
	group.Go(func() error { return httpRuntime.Run(ctx) })
	if sshRuntime != nil {
		group.Go(func() error { return sshRuntime.Run(ctx) })
	}

	logger.Info("startup", "environment", cfg.Environment, "http_address", httpRuntime.Address(), "ssh_enabled", cfg.SSH.Enabled, "themes", g.Themes().Len())
	return group.Wait()
}
