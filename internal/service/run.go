// Package service wires configuration, storage, summaries and the HTTP API
// into the running case files process.
package service

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/mycelian/casefiles/internal/api"
	"github.com/mycelian/casefiles/internal/config"
	"github.com/mycelian/casefiles/internal/factory"
	"github.com/mycelian/casefiles/internal/health"
	"github.com/mycelian/casefiles/internal/kv"
	"github.com/mycelian/casefiles/internal/logger"
	"github.com/mycelian/casefiles/internal/session"
	"github.com/mycelian/casefiles/internal/store"
	"github.com/mycelian/casefiles/internal/summarize"
)

const serviceName = "casefiles-service"

// Run starts the case files HTTP server and blocks until shutdown or error.
func Run() error {
	cfg, err := config.New()
	if err != nil {
		return err
	}
	log := logger.New(serviceName, cfg.LogLevel)

	log.Info().
		Str("store_driver", cfg.StoreDriver).
		Str("summary_provider", cfg.SummaryProvider).
		Int("http_port", cfg.HTTPPort).
		Msg("Case files service starting")

	ctx, stop := newServerContext()
	defer stop()

	svc, err := New(ctx, cfg, log)
	if err != nil {
		log.Error().Stack().Err(err).Msg("Service dependencies unavailable")
		return err
	}
	defer svc.Close()

	ln, err := net.Listen("tcp", cfg.GetHTTPAddr())
	if err != nil {
		return fmt.Errorf("listen %s: %w", cfg.GetHTTPAddr(), err)
	}
	return svc.Serve(ctx, ln)
}

// Service holds the process's long-lived components.
type Service struct {
	cfg     *config.Config
	log     zerolog.Logger
	backend kv.Store
	records *store.RecordStore
	tracker *summarize.Tracker
	health  *health.ServiceHealthChecker
	checks  []health.HealthChecker
	router  http.Handler
}

// New opens the backend, loads the collection and builds the router.
func New(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Service, error) {
	backend, err := factory.NewKV(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	records := store.New(backend,
		store.WithKey(cfg.StorageKey),
		store.WithLogger(log.With().Str("component", "store").Logger()),
	)
	recs, err := records.Load(ctx)
	switch {
	case err != nil && recs == nil:
		_ = backend.Close()
		return nil, fmt.Errorf("load records: %w", err)
	case err != nil:
		log.Warn().Err(err).Msg("Serving seed records that could not be persisted")
	default:
		log.Info().Int("records", len(recs)).Msg("Records loaded")
	}

	gen, err := factory.NewGenerator(ctx, cfg, log)
	if err != nil {
		_ = backend.Close()
		return nil, fmt.Errorf("summary generator: %w", err)
	}
	sumLog := log.With().Str("component", "summarize").Logger()
	sum := summarize.NewSummarizer(gen,
		summarize.WithTemperature(cfg.SummaryTemperature),
		summarize.WithTimeout(cfg.SummaryTimeout()),
		summarize.WithLogger(sumLog),
	)
	tracker := summarize.NewTracker(sum, sumLog)

	var checks []health.HealthChecker
	if p, ok := backend.(health.HealthPinger); ok {
		checks = append(checks, health.NewPingChecker("store", p, log, cfg.HealthProbeTimeout()))
	} else {
		checks = append(checks, health.Static("store"))
	}
	svcHealth := health.NewServiceHealthChecker(log, checks...)

	router := api.NewRouter(api.Deps{
		Records:    records,
		Tracker:    tracker,
		Sessions:   session.NewRegistry(),
		Healthy:    svcHealth.IsHealthy,
		Components: svcHealth.Components,
		Log:        log.With().Str("component", "http").Logger(),
	})

	return &Service{
		cfg:     cfg,
		log:     log,
		backend: backend,
		records: records,
		tracker: tracker,
		health:  svcHealth,
		checks:  checks,
		router:  router,
	}, nil
}

// Handler returns the HTTP router.
func (s *Service) Handler() http.Handler { return s.router }

// Serve runs health checkers and the HTTP server on ln until ctx is cancelled
// or the server fails.
func (s *Service) Serve(ctx context.Context, ln net.Listener) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)
	interval := s.cfg.HealthInterval()
	if interval <= 0 {
		interval = 30 * time.Second
	}
	for _, c := range s.checks {
		c := c
		g.Go(func() error { c.Start(gctx, interval); return nil })
	}
	g.Go(func() error { s.health.Start(gctx, interval); return nil })

	if err := waitUntilHealthy(gctx, s.cfg, s.health); err != nil {
		s.log.Error().Stack().Err(err).Msg("startup health check failed")
		_ = ln.Close()
		cancel()
		_ = g.Wait()
		return err
	}

	server := s.newHTTPServer(gctx)
	g.Go(func() error {
		s.log.Info().Str("addr", ln.Addr().String()).Msg("HTTP server starting")
		if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		s.log.Info().Msg("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}
		s.log.Info().Msg("Server exited")
		return nil
	})

	return g.Wait()
}

// Close waits for running summaries and releases the backend.
func (s *Service) Close() {
	s.tracker.Close()
	if err := s.backend.Close(); err != nil {
		s.log.Error().Err(err).Msg("Failed to close store")
	}
}

func (s *Service) newHTTPServer(ctx context.Context) *http.Server {
	// ?wait=true holds the response open for up to one summary timeout.
	write := 15*time.Second + s.cfg.SummaryTimeout()
	return &http.Server{
		Handler:           s.router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      write,
		IdleTimeout:       60 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}
}

// calculateStartupHealthTimeout returns the startup health timeout in seconds,
// calculated as interval*2 with a minimum of 60 seconds.
func calculateStartupHealthTimeout(healthIntervalSeconds int) int {
	timeout := healthIntervalSeconds * 2
	if timeout < 60 {
		return 60
	}
	return timeout
}

// waitUntilHealthy blocks until service health is healthy or the startup window expires.
func waitUntilHealthy(ctx context.Context, cfg *config.Config, svcHealth *health.ServiceHealthChecker) error {
	timeoutSeconds := calculateStartupHealthTimeout(cfg.HealthIntervalSeconds)
	deadline := time.Now().Add(time.Duration(timeoutSeconds) * time.Second)
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()
	for {
		if svcHealth.IsHealthy() {
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("startup aborted: dependencies not healthy within %d seconds", timeoutSeconds)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// newServerContext returns a cancellable context that is cancelled on SIGINT/SIGTERM.
func newServerContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}
