package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/angeloszaimis/bootconfig/config"
	"github.com/angeloszaimis/bootconfig/internal/bootstrap"
	"github.com/angeloszaimis/bootconfig/internal/circuitbreaker"
	"github.com/angeloszaimis/bootconfig/internal/handler"
	"github.com/angeloszaimis/bootconfig/internal/healthcheck"
	"github.com/angeloszaimis/bootconfig/internal/httpserver"
	"github.com/angeloszaimis/bootconfig/internal/loader"
	"github.com/angeloszaimis/bootconfig/internal/metrics"
	"github.com/angeloszaimis/bootconfig/internal/settings"
	"github.com/angeloszaimis/bootconfig/internal/upstream"
	"github.com/angeloszaimis/bootconfig/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.Any("err", err))
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level, true, cfg.Server.Environment)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	collector := metrics.NewCollector(1024, log)
	collector.Start(ctx)

	documentLoader, err := buildLoader(cfg, log)
	if err != nil {
		log.Error("Failed to build configuration loader", slog.Any("err", err))
		os.Exit(1)
	}

	// Everything below depends on the resolved settings; nothing is
	// constructed until every loader has resolved.
	resolved, err := bootstrap.Run(ctx, log, collector, documentLoader)
	if err != nil {
		// The document exists but could not be retrieved or parsed:
		// refuse to start rather than run with unknown settings.
		log.Error("Startup configuration failed", slog.Any("err", err))
		os.Exit(1)
	}

	up, err := initializeUpstream(ctx, cfg, resolved, log, collector)
	if err != nil {
		log.Error("Failed to initialize upstream", slog.Any("err", err))
		os.Exit(1)
	}

	breaker, err := buildBreaker(cfg)
	if err != nil {
		log.Error("Failed to build circuit breaker", slog.Any("err", err))
		os.Exit(1)
	}

	gatewayHandler := handler.NewGatewayHandler(log, resolved, up, breaker, collector)

	srv, err := httpserver.New(cfg.Server.Address, setupRouter(gatewayHandler, collector))
	if err != nil {
		log.Error("Failed to create server", slog.Any("err", err))
		os.Exit(1)
	}

	srvErrCh := make(chan error, 1)

	go func() {
		srvErrCh <- srv.Start()
	}()

	select {
	case <-ctx.Done():
		log.Info("Shutting down gracefully...")
		if err := srv.Shutdown(context.Background()); err != nil {
			log.Error("Error during shutdown", slog.Any("err", err))
		}
	case err := <-srvErrCh:
		if err != nil {
			log.Error("Error starting gateway", slog.Any("err", err))
			os.Exit(1)
		}
	}
}

func buildLoader(cfg *config.Config, log *slog.Logger) (loader.Loader, error) {
	timeout, err := time.ParseDuration(cfg.Document.FetchTimeout)
	if err != nil {
		return nil, err
	}

	fallback := settings.Patch{BaseURL: &cfg.Fallback.BaseURL}

	switch cfg.Document.Source {
	case config.SourceHTTP:
		return loader.NewHTTPLoader(cfg.Document.URL, timeout, fallback, log)
	case config.SourceFile:
		return loader.NewFileLoader(cfg.Document.Path, fallback, log), nil
	default:
		return nil, fmt.Errorf("unknown document source %q", cfg.Document.Source)
	}
}

func initializeUpstream(ctx context.Context, cfg *config.Config, resolved settings.Settings, log *slog.Logger, collector *metrics.Collector) (*upstream.Upstream, error) {
	u, err := url.Parse(resolved.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base URL %q: %w", resolved.BaseURL, err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base URL %q must use http or https scheme", resolved.BaseURL)
	}

	if u.Host == "" {
		return nil, fmt.Errorf("base URL %q must have a host", resolved.BaseURL)
	}

	interval, err := time.ParseDuration(cfg.Upstream.HealthInterval)
	if err != nil {
		return nil, err
	}

	up := upstream.New(u)
	go healthcheck.HealthCheck(ctx, up, cfg.Upstream.HealthPath, interval, log, collector)

	return up, nil
}

func buildBreaker(cfg *config.Config) (*circuitbreaker.CircuitBreaker, error) {
	resetTimeout, err := time.ParseDuration(cfg.Upstream.ResetTimeout)
	if err != nil {
		return nil, err
	}

	return circuitbreaker.NewCircuitBreaker(cfg.Upstream.FailureThreshold, resetTimeout), nil
}
