package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jonathan/job-matcher/internal/config"
	"github.com/jonathan/job-matcher/internal/db"
	"github.com/jonathan/job-matcher/internal/embedding"
	"github.com/jonathan/job-matcher/internal/matching"
	"github.com/jonathan/job-matcher/internal/scoring"
	"github.com/jonathan/job-matcher/internal/skills"
)

// loadConfig reads the optional config file and merges the environment on top.
func loadConfig(path string) (*config.Config, error) {
	cfg := &config.Config{}
	if path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// components bundles everything a command needs for a match request.
type components struct {
	database *db.DB
	provider *embedding.Provider
	pipeline *matching.Pipeline
}

// buildComponents wires the dictionary, scorer, provider, and stores.
// The embedding backend is optional; without an API key every non-cached
// embed call degrades to the mock path.
func buildComponents(ctx context.Context, cfg *config.Config) (*components, error) {
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("database URL is required (set DATABASE_URL or database_url in config)")
	}

	dictionary, err := skills.LoadDictionary()
	if err != nil {
		return nil, fmt.Errorf("failed to load skill dictionary: %w", err)
	}
	normalizer := skills.NewNormalizer(dictionary)
	scorer := scoring.NewScorer(normalizer)

	var backend embedding.Backend
	if cfg.APIKey != "" {
		gemini, err := embedding.NewGeminiBackend(ctx, cfg.APIKey, cfg.EmbeddingModel)
		if err != nil {
			return nil, fmt.Errorf("failed to create embedding backend: %w", err)
		}
		backend = gemini
	}

	providerConfig := embedding.DefaultConfig()
	if cfg.EmbeddingDimensions > 0 {
		providerConfig.Dimensions = cfg.EmbeddingDimensions
	}
	if cfg.CacheCapacity > 0 {
		providerConfig.CacheCapacity = cfg.CacheCapacity
	}
	if cfg.HourlyCallCap > 0 {
		providerConfig.HourlyCallCap = cfg.HourlyCallCap
	}

	provider, err := embedding.NewProvider(backend, providerConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create embedding provider: %w", err)
	}

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	pipeline := matching.NewPipeline(scorer, provider, database, database, database)

	return &components{
		database: database,
		provider: provider,
		pipeline: pipeline,
	}, nil
}

// close releases database and provider resources.
func (c *components) close() {
	if c.database != nil {
		c.database.Close()
	}
	if c.provider != nil {
		_ = c.provider.Close()
	}
}
