// Package embedding provides vector embeddings with caching, rate limiting,
// and deterministic mock fallback.
//
// The provider never surfaces backend trouble to its caller: rate
// exhaustion and backend failures degrade to a mock vector tagged with a
// machine-readable reason, so a match request can always proceed in
// classical-only or approximate mode.
package embedding

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"
	"time"
)

// Degradation reasons attached to mock results.
const (
	// ReasonMockRequested means the caller asked for a mock vector
	ReasonMockRequested = "mock_requested"
	// ReasonEmptyInput means there was no text to embed
	ReasonEmptyInput = "empty_input"
	// ReasonRateLimitExceeded means the hourly call cap was reached
	ReasonRateLimitExceeded = "rate_limit_exceeded"
	// ReasonProviderError means the backend call failed
	ReasonProviderError = "provider_error"
)

// Result is the tagged outcome of an Embed call. Callers branch on
// IsMock/Reason instead of inferring fallback from an absent error.
type Result struct {
	Vector []float64
	IsMock bool
	Cached bool
	Reason string // empty on a real, non-degraded result
}

// Config holds provider construction parameters.
type Config struct {
	Dimensions    int           // Mock vector dimensionality
	CacheCapacity int           // Max cached vectors (FIFO eviction)
	HourlyCallCap int           // Max real backend calls per wall-clock hour
	MaxTextLength int           // Text is truncated to this before hashing and embedding
	CallTimeout   time.Duration // Per-call backend timeout
}

// DefaultConfig returns the standard provider configuration.
func DefaultConfig() *Config {
	return &Config{
		Dimensions:    768,
		CacheCapacity: 1000,
		HourlyCallCap: 100,
		MaxTextLength: 8000,
		CallTimeout:   30 * time.Second,
	}
}

// Provider produces unit-length embedding vectors for text blobs.
// It owns its cache and rate window as instance state; construct one per
// process and pass it by handle.
type Provider struct {
	backend Backend
	config  *Config

	mu     sync.Mutex
	cache  *vectorCache
	window *rateWindow
}

// NewProvider creates a Provider. backend may be nil, in which case every
// non-cached call degrades to the mock path. Malformed configuration is an
// error here, at startup, never at request time.
func NewProvider(backend Backend, config *Config) (*Provider, error) {
	return newProvider(backend, config, time.Now)
}

// newProvider allows an injectable clock for rate-window tests.
func newProvider(backend Backend, config *Config, now func() time.Time) (*Provider, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if config.Dimensions <= 0 {
		return nil, fmt.Errorf("embedding config error: dimensions must be positive, got %d", config.Dimensions)
	}
	if config.CacheCapacity < 0 {
		return nil, fmt.Errorf("embedding config error: cache capacity must be non-negative, got %d", config.CacheCapacity)
	}
	if config.CacheCapacity == 0 {
		config.CacheCapacity = DefaultConfig().CacheCapacity
	}
	if config.HourlyCallCap < 0 {
		return nil, fmt.Errorf("embedding config error: hourly call cap must be non-negative, got %d", config.HourlyCallCap)
	}
	if config.MaxTextLength <= 0 {
		config.MaxTextLength = DefaultConfig().MaxTextLength
	}
	if config.CallTimeout <= 0 {
		config.CallTimeout = DefaultConfig().CallTimeout
	}

	return &Provider{
		backend: backend,
		config:  config,
		cache:   newVectorCache(config.CacheCapacity),
		window:  newRateWindow(config.HourlyCallCap, now),
	}, nil
}

// Embed produces a unit vector for the text. allowMock skips all external
// calls and returns the deterministic mock vector directly. Otherwise the
// lookup order is cache, rate window, backend; any failure along the way
// degrades to a mock result with a tagged reason.
func (p *Provider) Embed(ctx context.Context, text string, allowMock bool) Result {
	if text == "" {
		return p.mockResult(text, ReasonEmptyInput)
	}
	if allowMock {
		return p.mockResult(text, ReasonMockRequested)
	}

	truncated := truncate(text, p.config.MaxTextLength)
	key := contentHash(truncated)

	p.mu.Lock()
	if vec, ok := p.cache.get(key); ok {
		p.mu.Unlock()
		return Result{Vector: vec, Cached: true}
	}

	if p.backend == nil {
		p.mu.Unlock()
		return p.mockResult(text, ReasonProviderError)
	}

	if !p.window.allow() {
		p.mu.Unlock()
		return p.mockResult(text, ReasonRateLimitExceeded)
	}
	p.mu.Unlock()

	callCtx, cancel := context.WithTimeout(ctx, p.config.CallTimeout)
	defer cancel()

	vec, err := p.backend.Generate(callCtx, truncated)
	if err != nil || len(vec) == 0 {
		return p.mockResult(text, ReasonProviderError)
	}

	normalize(vec)

	// The counter only moves on success; a failed call never burns a slot.
	p.mu.Lock()
	p.cache.put(key, vec)
	p.window.record()
	p.mu.Unlock()

	return Result{Vector: vec}
}

// Stats reports cache and rate-window counters for observability.
type Stats struct {
	CacheSize      int
	CacheCapacity  int
	CacheHits      int
	CacheMisses    int
	CallsThisHour  int
	CallsRemaining int
	WindowResetAt  time.Time
}

// Stats returns a snapshot of the provider's internal counters.
func (p *Provider) Stats() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()

	return Stats{
		CacheSize:      p.cache.len(),
		CacheCapacity:  p.cache.capacity,
		CacheHits:      p.cache.hits,
		CacheMisses:    p.cache.misses,
		CallsThisHour:  p.config.HourlyCallCap - p.window.remaining(),
		CallsRemaining: p.window.remaining(),
		WindowResetAt:  p.window.resetAt,
	}
}

// Close releases the underlying backend, if any.
func (p *Provider) Close() error {
	if p.backend != nil {
		return p.backend.Close()
	}
	return nil
}

// mockResult builds a degraded result around the deterministic mock vector.
func (p *Provider) mockResult(text, reason string) Result {
	return Result{
		Vector: MockEmbed(text, p.config.Dimensions),
		IsMock: true,
		Reason: reason,
	}
}

// contentHash keys the cache by the SHA-256 of the (already truncated) text.
func contentHash(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

// truncate bounds text length before hashing and embedding.
func truncate(text string, maxLen int) string {
	if len(text) <= maxLen {
		return text
	}
	return text[:maxLen]
}
