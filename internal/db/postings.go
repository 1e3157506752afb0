package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/job-matcher/internal/types"
)

const postingColumns = `id, company, role_title, required_skills, preferred_skills,
	min_years, max_years, salary_min, salary_max, employment_type, remote,
	status, posted_at, embedding`

// ListActivePostings retrieves all postings open for matching.
func (db *DB) ListActivePostings(ctx context.Context) ([]types.JobPosting, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+postingColumns+`
		 FROM job_postings WHERE status = $1 ORDER BY posted_at DESC`,
		types.PostingActive,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list postings: %w", err)
	}
	defer rows.Close()

	var postings []types.JobPosting
	for rows.Next() {
		posting, err := scanPosting(rows)
		if err != nil {
			return nil, err
		}
		postings = append(postings, *posting)
	}
	return postings, nil
}

// GetPosting retrieves a posting by ID. Returns nil when no posting exists.
func (db *DB) GetPosting(ctx context.Context, id uuid.UUID) (*types.JobPosting, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+postingColumns+` FROM job_postings WHERE id = $1`,
		id,
	)

	posting, err := scanPosting(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return posting, nil
}

// SavePostingEmbedding stores a freshly generated embedding for a posting.
func (db *DB) SavePostingEmbedding(ctx context.Context, id uuid.UUID, embedding []float64) error {
	embeddingJSON, err := json.Marshal(embedding)
	if err != nil {
		return fmt.Errorf("failed to marshal embedding: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`UPDATE job_postings SET embedding = $1, updated_at = NOW() WHERE id = $2`,
		embeddingJSON, id,
	)
	if err != nil {
		return fmt.Errorf("failed to save posting embedding: %w", err)
	}
	return nil
}

// scanPosting reads one posting row.
func scanPosting(row pgx.Row) (*types.JobPosting, error) {
	var posting types.JobPosting
	var embeddingJSON []byte

	err := row.Scan(
		&posting.ID, &posting.Company, &posting.RoleTitle,
		&posting.RequiredSkills, &posting.PreferredSkills,
		&posting.MinYears, &posting.MaxYears,
		&posting.SalaryMin, &posting.SalaryMax,
		&posting.EmploymentType, &posting.Remote,
		&posting.Status, &posting.PostedAt, &embeddingJSON,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan posting: %w", err)
	}

	if len(embeddingJSON) > 0 {
		if err := json.Unmarshal(embeddingJSON, &posting.Embedding); err != nil {
			return nil, fmt.Errorf("failed to parse posting embedding: %w", err)
		}
	}

	return &posting, nil
}
