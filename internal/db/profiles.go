package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/job-matcher/internal/types"
)

// GetProfile retrieves a candidate profile by ID. Returns nil when no
// profile exists.
func (db *DB) GetProfile(ctx context.Context, id uuid.UUID) (*types.CandidateProfile, error) {
	var profile types.CandidateProfile
	var embeddingJSON []byte

	err := db.pool.QueryRow(ctx,
		`SELECT id, skills, years_experience, min_salary, embedding
		 FROM candidate_profiles WHERE id = $1`,
		id,
	).Scan(&profile.ID, &profile.Skills, &profile.YearsExperience, &profile.MinSalary, &embeddingJSON)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	if len(embeddingJSON) > 0 {
		if err := json.Unmarshal(embeddingJSON, &profile.Embedding); err != nil {
			return nil, fmt.Errorf("failed to parse profile embedding: %w", err)
		}
	}

	return &profile, nil
}

// SaveProfileEmbedding stores a freshly generated embedding for a profile.
func (db *DB) SaveProfileEmbedding(ctx context.Context, id uuid.UUID, embedding []float64) error {
	embeddingJSON, err := json.Marshal(embedding)
	if err != nil {
		return fmt.Errorf("failed to marshal embedding: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`UPDATE candidate_profiles SET embedding = $1, updated_at = NOW() WHERE id = $2`,
		embeddingJSON, id,
	)
	if err != nil {
		return fmt.Errorf("failed to save profile embedding: %w", err)
	}
	return nil
}
