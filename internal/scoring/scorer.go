// Package scoring provides the hybrid scorer that ranks job postings
// against candidate profiles.
package scoring

import (
	"math"
	"time"

	"github.com/jonathan/job-matcher/internal/embedding"
	"github.com/jonathan/job-matcher/internal/skills"
	"github.com/jonathan/job-matcher/internal/types"
)

// Weights for scoring components. Skill overlap dominates the classical
// blend because it is the most direct relevance signal; the semantic
// weight favors embedding similarity once both vectors are available.
type Weights struct {
	Skill      float64
	Experience float64
	Recency    float64
	Salary     float64
	Semantic   float64 // Hybrid blend: embedding similarity share
	Classical  float64 // Hybrid blend: classical score share
}

// DefaultWeights returns the standard component weights.
func DefaultWeights() Weights {
	return Weights{
		Skill:      0.6,
		Experience: 0.2,
		Recency:    0.1,
		Salary:     0.1,
		Semantic:   0.7,
		Classical:  0.3,
	}
}

const (
	// neutralScore is used when a component has nothing to measure
	neutralScore = 50.0
	// experiencePenaltyPerYear is the score drop per year outside the posting's range
	experiencePenaltyPerYear = 10.0
	// recencyDecayPerDay is the linear score drop per day since posting
	recencyDecayPerDay = 2.0
)

// Breakdown holds every component of a scored profile/posting pair.
// Scoring is total and side-effect free; filtering by threshold is the
// pipeline's job.
type Breakdown struct {
	SkillScore      float64  `json:"skill_score"`
	ExperienceScore float64  `json:"experience_score"`
	RecencyScore    float64  `json:"recency_score"`
	SalaryScore     float64  `json:"salary_score"`
	ClassicalScore  float64  `json:"classical_score"`
	Similarity      *float64 `json:"similarity,omitempty"` // Set only when hybrid mode ran
	FinalScore      float64  `json:"final_score"`          // 0-100
	MatchedSkills   []string `json:"matched_skills"`
	PartialSkills   []string `json:"partial_skills"`
	MissingSkills   []string `json:"missing_skills"`
}

// Scorer computes classical and hybrid match scores.
type Scorer struct {
	normalizer *skills.Normalizer
	weights    Weights
}

// NewScorer creates a Scorer with default weights.
func NewScorer(normalizer *skills.Normalizer) *Scorer {
	return NewScorerWithWeights(normalizer, DefaultWeights())
}

// NewScorerWithWeights creates a Scorer with explicit weights.
func NewScorerWithWeights(normalizer *skills.Normalizer, weights Weights) *Scorer {
	return &Scorer{normalizer: normalizer, weights: weights}
}

// Score computes the composite score for one profile/posting pair.
// When useEmbeddings is set and both sides carry a vector, the final
// score blends cosine similarity with the classical score; otherwise the
// classical score stands alone.
func (s *Scorer) Score(profile *types.CandidateProfile, posting *types.JobPosting, useEmbeddings bool) Breakdown {
	skillScore, matchResult := s.computeSkillScore(profile, posting)
	experienceScore := computeExperienceScore(profile.YearsExperience, posting.MinYears, posting.MaxYears)
	recencyScore := computeRecencyScore(posting.PostedAt, time.Now())
	salaryScore := computeSalaryScore(profile.MinSalary, posting.SalaryMin)

	classical := s.weights.Skill*skillScore +
		s.weights.Experience*experienceScore +
		s.weights.Recency*recencyScore +
		s.weights.Salary*salaryScore

	breakdown := Breakdown{
		SkillScore:      skillScore,
		ExperienceScore: experienceScore,
		RecencyScore:    recencyScore,
		SalaryScore:     salaryScore,
		ClassicalScore:  classical,
		FinalScore:      classical,
		MatchedSkills:   matchResult.Matched,
		PartialSkills:   matchResult.Partial,
		MissingSkills:   matchResult.Missing,
	}

	if useEmbeddings && profile.HasEmbedding() && posting.HasEmbedding() {
		similarity := embedding.CosineSimilarity(profile.Embedding, posting.Embedding)
		breakdown.Similarity = &similarity
		breakdown.FinalScore = s.weights.Semantic*(similarity*100) + s.weights.Classical*classical
	}

	breakdown.FinalScore = clampScore(breakdown.FinalScore)
	return breakdown
}

// computeSkillScore returns matched-required over total-required, scaled
// to 0-100. A posting with no required skills scores neutral.
func (s *Scorer) computeSkillScore(profile *types.CandidateProfile, posting *types.JobPosting) (float64, skills.MatchSetResult) {
	if len(posting.RequiredSkills) == 0 {
		return neutralScore, skills.MatchSetResult{}
	}

	matchResult := s.normalizer.MatchSets(posting.RequiredSkills, profile.Skills, 0)
	total := len(matchResult.Matched) + len(matchResult.Partial) + len(matchResult.Missing)
	if total == 0 {
		return neutralScore, matchResult
	}

	return float64(len(matchResult.Matched)) / float64(total) * 100, matchResult
}

// computeExperienceScore is 100 inside the posting's range, decaying by a
// fixed penalty per year of distance from the range minimum otherwise.
// A posting with no declared upper bound only checks the minimum.
func computeExperienceScore(years, minYears, maxYears float64) float64 {
	inRange := years >= minYears && (maxYears <= 0 || years <= maxYears)
	if inRange {
		return 100
	}

	gap := math.Abs(years - minYears)
	return math.Max(0, 100-experiencePenaltyPerYear*gap)
}

// computeRecencyScore decays linearly with posting age, floored at 0.
func computeRecencyScore(postedAt, now time.Time) float64 {
	if postedAt.IsZero() {
		return neutralScore
	}

	days := now.Sub(postedAt).Hours() / 24
	if days < 0 {
		days = 0
	}
	return math.Max(0, 100-recencyDecayPerDay*days)
}

// computeSalaryScore is 100 when the posting's minimum meets the
// candidate's preference (or no preference was given), else half credit.
func computeSalaryScore(preference *float64, postingMin float64) float64 {
	if preference == nil {
		return 100
	}
	if postingMin >= *preference {
		return 100
	}
	return neutralScore
}

// clampScore bounds a score to [0,100].
func clampScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
