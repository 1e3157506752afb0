package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/job-matcher/internal/types"
)

// Get retrieves the interaction record for a (profile, posting) pair.
// Returns nil when no record exists, which the tracker treats as
// create-on-first-action.
func (db *DB) Get(ctx context.Context, profileID, postingID uuid.UUID) (*types.InteractionRecord, error) {
	var record types.InteractionRecord

	err := db.pool.QueryRow(ctx,
		`SELECT profile_id, posting_id, viewed, view_count, viewed_at,
		        applied, applied_at, saved, saved_at, dismissed, dismissed_at
		 FROM interactions WHERE profile_id = $1 AND posting_id = $2`,
		profileID, postingID,
	).Scan(
		&record.ProfileID, &record.PostingID,
		&record.Viewed, &record.ViewCount, &record.ViewedAt,
		&record.Applied, &record.AppliedAt,
		&record.Saved, &record.SavedAt,
		&record.Dismissed, &record.DismissedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get interaction record: %w", err)
	}

	return &record, nil
}

// Upsert stores an interaction record, last-write-wins per field.
// Records are never physically deleted by this layer.
func (db *DB) Upsert(ctx context.Context, record *types.InteractionRecord) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO interactions (profile_id, posting_id, viewed, view_count, viewed_at,
		                           applied, applied_at, saved, saved_at, dismissed, dismissed_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 ON CONFLICT (profile_id, posting_id) DO UPDATE SET
		   viewed = $3, view_count = $4, viewed_at = $5,
		   applied = $6, applied_at = $7,
		   saved = $8, saved_at = $9,
		   dismissed = $10, dismissed_at = $11,
		   updated_at = NOW()`,
		record.ProfileID, record.PostingID,
		record.Viewed, record.ViewCount, record.ViewedAt,
		record.Applied, record.AppliedAt,
		record.Saved, record.SavedAt,
		record.Dismissed, record.DismissedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert interaction record: %w", err)
	}
	return nil
}
