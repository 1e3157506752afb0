// Package matching orchestrates candidate-pool retrieval, per-posting
// scoring, filtering, ranking, and summary generation.
package matching

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/job-matcher/internal/embedding"
	"github.com/jonathan/job-matcher/internal/scoring"
	"github.com/jonathan/job-matcher/internal/types"
)

// ProfileStore supplies candidate profiles. The pipeline never writes
// profiles back.
type ProfileStore interface {
	GetProfile(ctx context.Context, id uuid.UUID) (*types.CandidateProfile, error)
}

// PostingStore supplies the posting pool for a match request.
type PostingStore interface {
	ListActivePostings(ctx context.Context) ([]types.JobPosting, error)
}

// EmbeddingStore persists freshly generated posting vectors so the next
// process does not repay the backend call.
type EmbeddingStore interface {
	SavePostingEmbedding(ctx context.Context, id uuid.UUID, embedding []float64) error
}

// Options controls one match request.
type Options struct {
	Limit          int     // Max results returned (0 = default)
	MinMatchScore  float64 // Results below this score are dropped
	UseEmbeddings  bool    // Enable hybrid scoring when vectors are available
	EmploymentType string  // Hard filter; empty matches all
	RemoteOnly     bool    // Hard filter: only remote postings
	SummarizeTop   int     // Attach summaries to the top N results (0 = none)
	MaxEmbedCalls  int     // Budget of provider calls per request (0 = no calls)
	Concurrency    int     // Fan-out width for scoring (0 = default)
}

// Defaults applied when Options fields are zero.
const (
	defaultLimit       = 20
	defaultConcurrency = 8
)

// Pipeline wires the scorer, the embedding provider, and the stores into
// the match request flow.
type Pipeline struct {
	scorer     *scoring.Scorer
	provider   *embedding.Provider
	profiles   ProfileStore
	postings   PostingStore
	embeddings EmbeddingStore
}

// NewPipeline creates a Pipeline. provider may be nil when embeddings are
// never requested; profiles and postings may be nil when the caller
// supplies pools directly via FindMatches. embeddings may be nil, in which
// case generated posting vectors live only as long as the provider cache.
func NewPipeline(scorer *scoring.Scorer, provider *embedding.Provider, profiles ProfileStore, postings PostingStore, embeddings EmbeddingStore) *Pipeline {
	return &Pipeline{
		scorer:     scorer,
		provider:   provider,
		profiles:   profiles,
		postings:   postings,
		embeddings: embeddings,
	}
}

// MatchForProfile pulls the profile and the active posting pool from the
// stores, then runs FindMatches.
func (p *Pipeline) MatchForProfile(ctx context.Context, profileID uuid.UUID, opts Options) (*types.MatchResponse, error) {
	if p.profiles == nil || p.postings == nil {
		return nil, fmt.Errorf("pipeline has no stores configured")
	}

	profile, err := p.profiles.GetProfile(ctx, profileID)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	if profile == nil {
		return nil, fmt.Errorf("profile not found: %s", profileID)
	}

	pool, err := p.postings.ListActivePostings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load postings: %w", err)
	}

	return p.FindMatches(ctx, profile, pool, opts), nil
}

// FindMatches scores every posting in the pool against the profile and
// returns the ranked results. An empty or entirely-filtered pool yields an
// empty response, not an error. A profile lacking an embedding silently
// disables hybrid mode for the call. TotalMatches counts every
// above-threshold result, including those cut by Limit.
func (p *Pipeline) FindMatches(ctx context.Context, profile *types.CandidateProfile, pool []types.JobPosting, opts Options) *types.MatchResponse {
	if opts.Limit <= 0 {
		opts.Limit = defaultLimit
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = defaultConcurrency
	}

	candidates := filterPool(pool, opts)
	if len(candidates) == 0 {
		return &types.MatchResponse{Matches: []types.MatchResult{}, TotalMatches: 0}
	}

	hybrid := opts.UseEmbeddings && profile.HasEmbedding()
	if hybrid {
		p.fillPostingEmbeddings(ctx, candidates, opts.MaxEmbedCalls)
	}

	results := p.scorePool(ctx, profile, candidates, hybrid, opts.Concurrency)

	// Drop sub-threshold results, keeping pool order for the stable sort.
	kept := results[:0]
	for _, r := range results {
		if r.Score >= opts.MinMatchScore {
			kept = append(kept, r)
		}
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].Score > kept[j].Score
	})

	total := len(kept)
	if len(kept) > opts.Limit {
		kept = kept[:opts.Limit]
	}

	for i := 0; i < len(kept) && i < opts.SummarizeTop; i++ {
		kept[i].Summary = buildSummary(&kept[i])
	}

	return &types.MatchResponse{Matches: kept, TotalMatches: total}
}

// FindSemantic ranks postings purely by cosine similarity against a
// profile embedding, bypassing classical scoring entirely.
func (p *Pipeline) FindSemantic(profileEmbedding []float64, pool []types.JobPosting, minSimilarity float64) []types.SemanticMatch {
	matches := make([]types.SemanticMatch, 0, len(pool))
	for i := range pool {
		posting := &pool[i]
		if !posting.IsActive() || !posting.HasEmbedding() {
			continue
		}
		similarity := embedding.CosineSimilarity(profileEmbedding, posting.Embedding)
		if similarity < minSimilarity {
			continue
		}
		matches = append(matches, types.SemanticMatch{
			PostingID:  posting.ID,
			Posting:    posting,
			Similarity: similarity,
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Similarity > matches[j].Similarity
	})
	return matches
}

// FindSimilarPostings ranks the pool by posting-to-posting cosine
// similarity against a reference posting, excluding the reference itself.
func (p *Pipeline) FindSimilarPostings(reference *types.JobPosting, pool []types.JobPosting) []types.SemanticMatch {
	if !reference.HasEmbedding() {
		return []types.SemanticMatch{}
	}

	matches := make([]types.SemanticMatch, 0, len(pool))
	for i := range pool {
		posting := &pool[i]
		if posting.ID == reference.ID || !posting.IsActive() || !posting.HasEmbedding() {
			continue
		}
		matches = append(matches, types.SemanticMatch{
			PostingID:  posting.ID,
			Posting:    posting,
			Similarity: embedding.CosineSimilarity(reference.Embedding, posting.Embedding),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Similarity > matches[j].Similarity
	})
	return matches
}

// filterPool applies lifecycle and hard filters, copying survivors so
// scoring never mutates the caller's pool.
func filterPool(pool []types.JobPosting, opts Options) []types.JobPosting {
	filtered := make([]types.JobPosting, 0, len(pool))
	for _, posting := range pool {
		if !posting.IsActive() {
			continue
		}
		if opts.EmploymentType != "" && !strings.EqualFold(posting.EmploymentType, opts.EmploymentType) {
			continue
		}
		if opts.RemoteOnly && !posting.Remote {
			continue
		}
		filtered = append(filtered, posting)
	}
	return filtered
}

// fillPostingEmbeddings generates vectors for postings that lack one,
// bounded by the per-request call budget. Once the budget is spent, or
// when a call degrades to a mock, the posting simply stays without a
// vector and scores classical-only. Newly generated vectors are written
// through to the embedding store when one is configured.
func (p *Pipeline) fillPostingEmbeddings(ctx context.Context, pool []types.JobPosting, budget int) {
	if p.provider == nil || budget <= 0 {
		return
	}

	calls := 0
	for i := range pool {
		if calls >= budget {
			return
		}
		if pool[i].HasEmbedding() {
			continue
		}

		result := p.provider.Embed(ctx, PostingText(&pool[i]), false)
		if !result.Cached {
			calls++
		}
		if result.IsMock {
			continue
		}
		pool[i].Embedding = result.Vector
		if p.embeddings != nil && !result.Cached {
			// Best effort: the vector still serves this request when the
			// write fails.
			_ = p.embeddings.SavePostingEmbedding(ctx, pool[i].ID, result.Vector)
		}
	}
}

// scorePool fans scoring out across postings. Scoring is pure, so the
// only shared state is the per-index result slot.
func (p *Pipeline) scorePool(ctx context.Context, profile *types.CandidateProfile, pool []types.JobPosting, hybrid bool, concurrency int) []types.MatchResult {
	results := make([]types.MatchResult, len(pool))

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i := range pool {
		i := i
		g.Go(func() error {
			posting := &pool[i]
			breakdown := p.scorer.Score(profile, posting, hybrid)

			missing := make([]string, 0, len(breakdown.PartialSkills)+len(breakdown.MissingSkills))
			missing = append(missing, breakdown.PartialSkills...)
			missing = append(missing, breakdown.MissingSkills...)

			results[i] = types.MatchResult{
				PostingID:     posting.ID,
				Posting:       posting,
				Score:         breakdown.FinalScore,
				MatchedSkills: breakdown.MatchedSkills,
				MissingSkills: missing,
				Similarity:    breakdown.Similarity,
			}
			return nil
		})
	}
	_ = g.Wait() // scoring never errors; the group only bounds fan-out

	return results
}
