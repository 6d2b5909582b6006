package main

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/feedback-quality/internal/assessment"
	"github.com/jonathan/feedback-quality/internal/config"
	"github.com/jonathan/feedback-quality/internal/db"
	"github.com/jonathan/feedback-quality/internal/llm"
	"github.com/jonathan/feedback-quality/internal/observability"
)

// engine bundles the wired evaluation stack and the resources it holds.
type engine struct {
	cfg     *config.Config
	logger  *zap.Logger
	client  llm.Client
	db      *db.DB
	service *assessment.Service
}

// loadConfig reads the file named by --config, overlays the environment and validates.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if verbose {
		cfg.Verbose = true
	}
	return cfg, nil
}

// newEngine builds the client decorators, the optional campaign store and the
// Orchestrator → Gate → Service chain. withDB=false skips the database even
// when one is configured.
func newEngine(ctx context.Context, cfg *config.Config, withDB bool) (*engine, error) {
	logger := observability.MustNewLogger(cfg.Verbose)
	e := &engine{cfg: cfg, logger: logger}

	client, err := newClient(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	e.client = client

	var campaigns assessment.CampaignStore
	if withDB && cfg.DatabaseURL != "" {
		database, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			e.Close()
			return nil, err
		}
		if err := database.Migrate(ctx); err != nil {
			database.Close()
			e.Close()
			return nil, err
		}
		e.db = database
		campaigns = database
	}

	opts := []assessment.Option{assessment.WithLogger(logger)}
	if client != nil {
		opts = append(opts, assessment.WithClient(client))
	}
	orchestrator := assessment.NewOrchestrator(opts...)
	e.service = assessment.NewService(assessment.NewGate(orchestrator, logger), campaigns, logger)
	return e, nil
}

// newClient returns nil when no API key is configured; the engine then
// evaluates with rules only.
func newClient(ctx context.Context, cfg *config.Config, logger *zap.Logger) (llm.Client, error) {
	if !cfg.AIEnabled() {
		logger.Info("no model API key configured; using rule-based evaluation only")
		return nil, nil
	}

	client, err := llm.NewClient(ctx, cfg.LLMConfig(), cfg.APIKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create model client: %w", err)
	}

	if cfg.BreakerThreshold > 0 {
		client = llm.NewBreakerClient(client, cfg.BreakerThreshold, time.Duration(cfg.BreakerCooldown))
	}
	if cfg.RedisURL != "" {
		cache, err := llm.NewRedisCache(cfg.RedisURL)
		if err != nil {
			_ = client.Close()
			return nil, err
		}
		client = llm.NewCachedClient(client, cache, time.Duration(cfg.CacheTTL), logger)
	}

	logger.Info("model review enabled",
		zap.String("provider", cfg.Provider),
		zap.String("model", client.GetModel(llm.TierStandard)),
		zap.Bool("cache", cfg.RedisURL != ""),
		zap.Int("breaker_threshold", cfg.BreakerThreshold))
	return client, nil
}

// Close releases the model client and the database pool.
func (e *engine) Close() {
	if e.client != nil {
		if err := e.client.Close(); err != nil {
			e.logger.Warn("closing model client failed", zap.Error(err))
		}
	}
	if e.db != nil {
		e.db.Close()
	}
	_ = e.logger.Sync()
}
