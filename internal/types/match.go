package types

import "github.com/google/uuid"

// MatchResult represents one scored posting for a candidate.
// Created fresh per match request; only the Summary field is attached
// after construction.
type MatchResult struct {
	PostingID     uuid.UUID   `json:"posting_id"`
	Posting       *JobPosting `json:"posting,omitempty"`
	Score         float64     `json:"score"` // Composite score, 0-100
	MatchedSkills []string    `json:"matched_skills"`
	MissingSkills []string    `json:"missing_skills"`
	Similarity    *float64    `json:"similarity,omitempty"` // Cosine similarity when hybrid mode ran
	Summary       string      `json:"summary,omitempty"`
}

// MatchResponse wraps a ranked list of match results. TotalMatches counts
// every result that cleared the score threshold, before the limit.
type MatchResponse struct {
	Matches      []MatchResult `json:"matches"`
	TotalMatches int           `json:"total_matches"`
}

// SemanticMatch represents a posting ranked purely by embedding similarity
type SemanticMatch struct {
	PostingID  uuid.UUID   `json:"posting_id"`
	Posting    *JobPosting `json:"posting,omitempty"`
	Similarity float64     `json:"similarity"`
}
