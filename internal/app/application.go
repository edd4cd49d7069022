// Package app wires configuration, cache, vendor client, tool registry and
// the HTTP servers into one runnable application.
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"shopmcp/internal/infra/cache"
	"shopmcp/internal/infra/config"
	"shopmcp/internal/infra/shopify"
	"shopmcp/internal/infra/telemetry"
	"shopmcp/internal/infra/transport"
	"shopmcp/internal/tools"
)

const vendorCallTimeout = 30 * time.Second

type App struct {
	logger *zap.Logger
}

func New(logger *zap.Logger) *App {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &App{logger: logger}
}

// Serve runs the MCP endpoint (and the metrics endpoint when configured)
// until ctx is cancelled.
func (a *App) Serve(ctx context.Context) error {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	metrics := telemetry.NewMetrics(nil)
	productCache := cache.New(cfg.CacheTTL, nil)
	client := shopify.NewClient(shopify.Options{
		StoreDomain: cfg.StoreDomain,
		AccessToken: cfg.AccessToken,
		APIVersion:  cfg.APIVersion,
		HTTPClient:  &http.Client{Timeout: vendorCallTimeout},
		Logger:      a.logger,
		Metrics:     metrics,
	})

	registry, err := tools.NewRegistry(tools.Deps{
		Config:  cfg,
		Cache:   productCache,
		Client:  client,
		Logger:  a.logger,
		Metrics: metrics,
	})
	if err != nil {
		return fmt.Errorf("build tool registry: %w", err)
	}

	a.logger.Info("starting shopmcp",
		zap.String("store", cfg.StoreDomain),
		zap.String("api_version", cfg.APIVersion),
		zap.String("listen_addr", cfg.ListenAddr),
		zap.Duration("cache_ttl", cfg.CacheTTL),
	)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	telemetryErr := make(chan error, 1)
	go func() {
		telemetryErr <- telemetry.StartHTTPServer(runCtx, telemetry.HTTPServerOptions{
			Addr: cfg.MetricsAddr,
		}, a.logger)
	}()

	mcpServer := transport.NewStreamableHTTPServer(transport.StreamableHTTPServerOptions{
		Addr:   cfg.ListenAddr,
		Server: registry.Server(),
		Logger: a.logger,
	})

	err = mcpServer.Run(runCtx)
	cancel()
	if terr := <-telemetryErr; terr != nil && err == nil {
		err = terr
	}
	return err
}

// ValidateConfig reports configuration problems without serving.
func (a *App) ValidateConfig() error {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.logger.Info("configuration is valid",
		zap.String("store", cfg.StoreDomain),
		zap.String("api_version", cfg.APIVersion),
		zap.String("listen_addr", cfg.ListenAddr),
	)
	return nil
}
