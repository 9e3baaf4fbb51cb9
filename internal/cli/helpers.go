package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/opticode-ai/opticode/internal/adapters/authority"
	"github.com/opticode-ai/opticode/internal/adapters/logger"
	"github.com/opticode-ai/opticode/internal/adapters/otel"
	"github.com/opticode-ai/opticode/internal/adapters/storage"
	"github.com/opticode-ai/opticode/internal/history"
	"github.com/opticode-ai/opticode/internal/infrastructure/config"
	"github.com/opticode-ai/opticode/internal/ports"
)

// newMetrics builds the metrics exporter from environment configuration,
// falling back to a no-op when the exporter is disabled or unreachable.
func newMetrics(ctx context.Context, log ports.Logger) ports.MetricsExporter {
	cfg := otel.LoadConfig()
	if !cfg.Enabled {
		return otel.NewNoOpExporter()
	}
	exporter, err := otel.NewExporter(ctx, cfg)
	if err != nil {
		log.Error(fmt.Sprintf("metrics exporter unavailable, continuing without: %v", err))
		return otel.NewNoOpExporter()
	}
	return exporter
}

// newClient builds an authority client from environment configuration and
// the stored bearer token.
func newClient(requireToken bool) (*authority.Client, error) {
	cfg, err := config.LoadClient()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	tokens, err := storage.NewTokenStorage()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token storage: %w", err)
	}
	token, err := tokens.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to read stored token: %w", err)
	}
	if requireToken && token == "" {
		return nil, fmt.Errorf("not logged in: run 'opticode login' first")
	}

	return authority.NewClient(cfg.APIURL, token, time.Duration(cfg.Timeout)*time.Second), nil
}

// loadCache builds the session cache against the remote authority and loads
// it. The returned cleanup flushes metrics and must run before exit.
func loadCache(ctx context.Context) (*history.Cache, func(), error) {
	client, err := newClient(true)
	if err != nil {
		return nil, nil, err
	}

	log := logger.NewFileLogger()
	metrics := newMetrics(ctx, log)
	cleanup := func() { _ = metrics.Close(ctx) }

	cache := history.NewCache(client, log, metrics)
	if err := cache.Load(ctx); err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("failed to load history: %w", err)
	}
	return cache, cleanup, nil
}

func truncateID(id string) string {
	if len(id) > 12 {
		return id[:12]
	}
	return id
}
