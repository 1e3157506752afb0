package matching

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/job-matcher/internal/embedding"
	"github.com/jonathan/job-matcher/internal/scoring"
	"github.com/jonathan/job-matcher/internal/skills"
	"github.com/jonathan/job-matcher/internal/types"
)

func newTestScorer(t *testing.T) *scoring.Scorer {
	t.Helper()
	dict, err := skills.LoadDictionary()
	require.NoError(t, err)
	return scoring.NewScorer(skills.NewNormalizer(dict))
}

func newTestPipeline(t *testing.T) *Pipeline {
	t.Helper()
	return NewPipeline(newTestScorer(t), nil, nil, nil, nil)
}

func testPosting(title string, required []string) types.JobPosting {
	return types.JobPosting{
		ID:             uuid.New(),
		RoleTitle:      title,
		RequiredSkills: required,
		Status:         types.PostingActive,
		PostedAt:       time.Now(),
	}
}

func TestFindMatches_RanksByScore(t *testing.T) {
	pipeline := newTestPipeline(t)

	profile := &types.CandidateProfile{
		ID:              uuid.New(),
		Skills:          []string{"go", "docker", "postgresql"},
		YearsExperience: 5,
	}
	pool := []types.JobPosting{
		testPosting("Weak Fit", []string{"cobol", "fortran"}),
		testPosting("Strong Fit", []string{"go", "docker", "postgresql"}),
		testPosting("Partial Fit", []string{"go", "docker", "kafka", "terraform"}),
	}

	response := pipeline.FindMatches(context.Background(), profile, pool, Options{})

	require.Len(t, response.Matches, 3)
	assert.Equal(t, "Strong Fit", response.Matches[0].Posting.RoleTitle)
	assert.Equal(t, "Partial Fit", response.Matches[1].Posting.RoleTitle)
	assert.Equal(t, "Weak Fit", response.Matches[2].Posting.RoleTitle)
	assert.Equal(t, 3, response.TotalMatches)
}

func TestFindMatches_HighThresholdYieldsEmptyResponse(t *testing.T) {
	pipeline := newTestPipeline(t)

	profile := &types.CandidateProfile{
		ID:              uuid.New(),
		Skills:          []string{"embroidery"},
		YearsExperience: 1,
	}
	pool := []types.JobPosting{
		testPosting("Backend Engineer", []string{"go", "postgresql", "kafka"}),
	}

	response := pipeline.FindMatches(context.Background(), profile, pool, Options{MinMatchScore: 90})

	require.NotNil(t, response)
	assert.Empty(t, response.Matches)
	assert.Equal(t, 0, response.TotalMatches)
}

func TestFindMatches_EmptyPool(t *testing.T) {
	pipeline := newTestPipeline(t)

	profile := &types.CandidateProfile{ID: uuid.New(), Skills: []string{"go"}}
	response := pipeline.FindMatches(context.Background(), profile, nil, Options{})

	require.NotNil(t, response)
	assert.Empty(t, response.Matches)
	assert.Equal(t, 0, response.TotalMatches)
}

func TestFindMatches_SkipsInactivePostings(t *testing.T) {
	pipeline := newTestPipeline(t)

	profile := &types.CandidateProfile{ID: uuid.New(), Skills: []string{"go"}, YearsExperience: 3}

	expired := testPosting("Expired Role", []string{"go"})
	expired.Status = types.PostingExpired
	pool := []types.JobPosting{
		expired,
		testPosting("Active Role", []string{"go"}),
	}

	response := pipeline.FindMatches(context.Background(), profile, pool, Options{})

	require.Len(t, response.Matches, 1)
	assert.Equal(t, "Active Role", response.Matches[0].Posting.RoleTitle)
}

func TestFindMatches_EmploymentTypeFilter(t *testing.T) {
	pipeline := newTestPipeline(t)

	profile := &types.CandidateProfile{ID: uuid.New(), Skills: []string{"go"}, YearsExperience: 3}

	fullTime := testPosting("Full Time Role", []string{"go"})
	fullTime.EmploymentType = "full-time"
	contract := testPosting("Contract Role", []string{"go"})
	contract.EmploymentType = "contract"

	response := pipeline.FindMatches(context.Background(), profile,
		[]types.JobPosting{fullTime, contract},
		Options{EmploymentType: "Full-Time"})

	require.Len(t, response.Matches, 1)
	assert.Equal(t, "Full Time Role", response.Matches[0].Posting.RoleTitle)
}

func TestFindMatches_RemoteOnlyFilter(t *testing.T) {
	pipeline := newTestPipeline(t)

	profile := &types.CandidateProfile{ID: uuid.New(), Skills: []string{"go"}, YearsExperience: 3}

	remote := testPosting("Remote Role", []string{"go"})
	remote.Remote = true
	onsite := testPosting("Onsite Role", []string{"go"})

	response := pipeline.FindMatches(context.Background(), profile,
		[]types.JobPosting{remote, onsite},
		Options{RemoteOnly: true})

	require.Len(t, response.Matches, 1)
	assert.Equal(t, "Remote Role", response.Matches[0].Posting.RoleTitle)
}

func TestFindMatches_LimitTruncates(t *testing.T) {
	pipeline := newTestPipeline(t)

	profile := &types.CandidateProfile{ID: uuid.New(), Skills: []string{"go"}, YearsExperience: 3}
	pool := make([]types.JobPosting, 0, 5)
	for i := 0; i < 5; i++ {
		pool = append(pool, testPosting("Role", []string{"go"}))
	}

	response := pipeline.FindMatches(context.Background(), profile, pool, Options{Limit: 2})

	assert.Len(t, response.Matches, 2)
	// The total reflects every above-threshold result, not just the page.
	assert.Equal(t, 5, response.TotalMatches)
}

func TestFindMatches_SummarizesTopResults(t *testing.T) {
	pipeline := newTestPipeline(t)

	profile := &types.CandidateProfile{
		ID:              uuid.New(),
		Skills:          []string{"go", "docker"},
		YearsExperience: 4,
	}
	pool := []types.JobPosting{
		testPosting("First", []string{"go", "docker"}),
		testPosting("Second", []string{"go", "kafka"}),
		testPosting("Third", []string{"cobol"}),
	}

	response := pipeline.FindMatches(context.Background(), profile, pool, Options{SummarizeTop: 1})

	require.Len(t, response.Matches, 3)
	assert.NotEmpty(t, response.Matches[0].Summary)
	assert.Empty(t, response.Matches[1].Summary)
	assert.Empty(t, response.Matches[2].Summary)
}

func TestFindMatches_ProfileWithoutEmbeddingStaysClassical(t *testing.T) {
	pipeline := newTestPipeline(t)

	profile := &types.CandidateProfile{ID: uuid.New(), Skills: []string{"go"}, YearsExperience: 3}
	posting := testPosting("Role", []string{"go"})
	posting.Embedding = []float64{1, 0, 0}

	response := pipeline.FindMatches(context.Background(), profile,
		[]types.JobPosting{posting},
		Options{UseEmbeddings: true})

	require.Len(t, response.Matches, 1)
	assert.Nil(t, response.Matches[0].Similarity)
}

func TestFindSemantic_RanksAndFilters(t *testing.T) {
	pipeline := newTestPipeline(t)

	close := testPosting("Close", nil)
	close.Embedding = []float64{1, 0}
	far := testPosting("Far", nil)
	far.Embedding = []float64{0, 1}
	diagonal := testPosting("Diagonal", nil)
	diagonal.Embedding = []float64{1, 1}
	noVector := testPosting("No Vector", nil)

	matches := pipeline.FindSemantic([]float64{1, 0},
		[]types.JobPosting{far, noVector, diagonal, close}, 0.5)

	require.Len(t, matches, 2)
	assert.Equal(t, "Close", matches[0].Posting.RoleTitle)
	assert.Equal(t, "Diagonal", matches[1].Posting.RoleTitle)
	assert.Greater(t, matches[0].Similarity, matches[1].Similarity)
}

func TestFindSimilarPostings_ExcludesReference(t *testing.T) {
	pipeline := newTestPipeline(t)

	reference := testPosting("Reference", nil)
	reference.Embedding = []float64{1, 0}
	other := testPosting("Other", nil)
	other.Embedding = []float64{1, 0.1}

	matches := pipeline.FindSimilarPostings(&reference,
		[]types.JobPosting{reference, other})

	require.Len(t, matches, 1)
	assert.Equal(t, other.ID, matches[0].PostingID)
}

func TestFindSimilarPostings_ReferenceWithoutEmbedding(t *testing.T) {
	pipeline := newTestPipeline(t)

	reference := testPosting("Reference", nil)
	other := testPosting("Other", nil)
	other.Embedding = []float64{1, 0}

	matches := pipeline.FindSimilarPostings(&reference, []types.JobPosting{other})

	assert.Empty(t, matches)
}

// stubProfileStore and stubPostingStore back MatchForProfile tests without
// a database.
type stubProfileStore struct {
	profile *types.CandidateProfile
	err     error
}

func (s *stubProfileStore) GetProfile(_ context.Context, _ uuid.UUID) (*types.CandidateProfile, error) {
	return s.profile, s.err
}

type stubPostingStore struct {
	pool []types.JobPosting
	err  error
}

func (s *stubPostingStore) ListActivePostings(_ context.Context) ([]types.JobPosting, error) {
	return s.pool, s.err
}

func TestMatchForProfile_LoadsFromStores(t *testing.T) {
	profile := &types.CandidateProfile{
		ID:              uuid.New(),
		Skills:          []string{"go"},
		YearsExperience: 3,
	}
	pipeline := NewPipeline(newTestScorer(t), nil,
		&stubProfileStore{profile: profile},
		&stubPostingStore{pool: []types.JobPosting{testPosting("Role", []string{"go"})}},
		nil)

	response, err := pipeline.MatchForProfile(context.Background(), profile.ID, Options{})
	require.NoError(t, err)
	assert.Len(t, response.Matches, 1)
}

func TestMatchForProfile_UnknownProfile(t *testing.T) {
	pipeline := NewPipeline(newTestScorer(t), nil,
		&stubProfileStore{profile: nil},
		&stubPostingStore{},
		nil)

	_, err := pipeline.MatchForProfile(context.Background(), uuid.New(), Options{})
	assert.ErrorContains(t, err, "profile not found")
}

// stubBackend is a scriptable embedding backend for persistence tests.
type stubBackend struct {
	vec   []float64
	calls int
}

func (s *stubBackend) Generate(_ context.Context, _ string) ([]float64, error) {
	s.calls++
	return append([]float64(nil), s.vec...), nil
}

func (s *stubBackend) Close() error { return nil }

// recordingEmbeddingStore captures posting vectors the pipeline persists.
type recordingEmbeddingStore struct {
	saved map[uuid.UUID][]float64
}

func (s *recordingEmbeddingStore) SavePostingEmbedding(_ context.Context, id uuid.UUID, embedding []float64) error {
	if s.saved == nil {
		s.saved = make(map[uuid.UUID][]float64)
	}
	s.saved[id] = embedding
	return nil
}

func TestFindMatches_PersistsGeneratedPostingVectors(t *testing.T) {
	backend := &stubBackend{vec: []float64{3, 4, 0, 0}}
	provider, err := embedding.NewProvider(backend, &embedding.Config{Dimensions: 4})
	require.NoError(t, err)

	store := &recordingEmbeddingStore{}
	pipeline := NewPipeline(newTestScorer(t), provider, nil, nil, store)

	profile := &types.CandidateProfile{
		ID:              uuid.New(),
		Skills:          []string{"go"},
		YearsExperience: 3,
		Embedding:       []float64{1, 0, 0, 0},
	}
	posting := testPosting("Role", []string{"go"})
	opts := Options{UseEmbeddings: true, MaxEmbedCalls: 5}

	pipeline.FindMatches(context.Background(), profile, []types.JobPosting{posting}, opts)

	require.Contains(t, store.saved, posting.ID)
	saved := store.saved[posting.ID]
	assert.InDelta(t, 0.6, saved[0], 1e-9)
	assert.InDelta(t, 0.8, saved[1], 1e-9)
	assert.Equal(t, 1, backend.calls)

	// A repeat request hits the provider cache and writes nothing new.
	store.saved = nil
	pipeline.FindMatches(context.Background(), profile, []types.JobPosting{posting}, opts)
	assert.Empty(t, store.saved)
	assert.Equal(t, 1, backend.calls)
}

func TestFindMatches_MockVectorsNotPersisted(t *testing.T) {
	// Nil backend: every embed call degrades to a mock.
	provider, err := embedding.NewProvider(nil, &embedding.Config{Dimensions: 4})
	require.NoError(t, err)

	store := &recordingEmbeddingStore{}
	pipeline := NewPipeline(newTestScorer(t), provider, nil, nil, store)

	profile := &types.CandidateProfile{
		ID:              uuid.New(),
		Skills:          []string{"go"},
		YearsExperience: 3,
		Embedding:       []float64{1, 0, 0, 0},
	}
	posting := testPosting("Role", []string{"go"})

	response := pipeline.FindMatches(context.Background(), profile,
		[]types.JobPosting{posting},
		Options{UseEmbeddings: true, MaxEmbedCalls: 5})

	assert.Empty(t, store.saved)
	require.Len(t, response.Matches, 1)
	assert.Nil(t, response.Matches[0].Similarity)
}

func TestBuildSummary_Sections(t *testing.T) {
	similarity := 0.82
	result := &types.MatchResult{
		Score:         85,
		MatchedSkills: []string{"go", "docker"},
		MissingSkills: []string{"kafka"},
		Similarity:    &similarity,
	}

	summary := buildSummary(result)

	assert.Contains(t, summary, "Strong match")
	assert.Contains(t, summary, "2 of 3 required skills covered")
	assert.Contains(t, summary, "Missing: kafka")
	assert.Contains(t, summary, "Semantic similarity 82%")
}

func TestJoinSkills_TruncatesLongLists(t *testing.T) {
	joined := joinSkills([]string{"go", "docker", "kafka", "redis", "terraform", "aws"})
	assert.Equal(t, "go, docker, kafka, redis and 2 more", joined)
}
