// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
// Malformed values (negative capacities, out-of-range scores) are fatal at
// startup, never at request time.
type Config struct {
	// Connections
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL
	APIKey      string `json:"api_key,omitempty"`      // Gemini API key

	// Embedding provider
	EmbeddingModel      string `json:"embedding_model,omitempty"`      // Backend model name
	EmbeddingDimensions int    `json:"embedding_dimensions,omitempty" validate:"min=0"` // Mock vector dimensionality
	CacheCapacity       int    `json:"cache_capacity,omitempty" validate:"min=0"`       // Max cached vectors
	HourlyCallCap       int    `json:"hourly_call_cap,omitempty" validate:"min=0"`      // Max real backend calls per hour

	// Matching
	MinMatchScore float64 `json:"min_match_score,omitempty" validate:"min=0,max=100"` // Drop results below this score
	Limit         int     `json:"limit,omitempty" validate:"min=0"`                   // Max results per request
	MaxEmbedCalls int     `json:"max_embed_calls,omitempty" validate:"min=0"`         // Per-request embedding budget
	UseEmbeddings bool    `json:"use_embeddings,omitempty"`                           // Enable hybrid scoring

	// Behavior
	Verbose bool `json:"verbose,omitempty"` // Print detailed match breakdowns
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	return nil
}

// MergeWithDefaults returns a new Config with zero-valued fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.EmbeddingModel == "" {
		result.EmbeddingModel = defaults.EmbeddingModel
	}
	if result.EmbeddingDimensions == 0 {
		result.EmbeddingDimensions = defaults.EmbeddingDimensions
	}
	if result.CacheCapacity == 0 {
		result.CacheCapacity = defaults.CacheCapacity
	}
	if result.HourlyCallCap == 0 {
		result.HourlyCallCap = defaults.HourlyCallCap
	}
	if result.MinMatchScore == 0 {
		result.MinMatchScore = defaults.MinMatchScore
	}
	if result.Limit == 0 {
		result.Limit = defaults.Limit
	}
	if result.MaxEmbedCalls == 0 {
		result.MaxEmbedCalls = defaults.MaxEmbedCalls
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
