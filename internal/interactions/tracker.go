// Package interactions records candidate engagement with job postings.
package interactions

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/job-matcher/internal/types"
)

// Store persists interaction records. Get returns nil (no error) when no
// record exists for the pair; Upsert is last-write-wins per field.
type Store interface {
	Get(ctx context.Context, profileID, postingID uuid.UUID) (*types.InteractionRecord, error)
	Upsert(ctx context.Context, record *types.InteractionRecord) error
}

// Tracker applies the interaction state machine: four independent flags
// with their own timestamps plus a monotonically increasing view counter.
// No action ever clears another action's flag, and records are created on
// first action with no separate create call.
type Tracker struct {
	store Store
	now   func() time.Time
}

// NewTracker creates a Tracker over the given store.
func NewTracker(store Store) *Tracker {
	return &Tracker{store: store, now: time.Now}
}

// Record applies one action to the (profile, posting) pair and returns
// the updated record. Repeating apply/save/dismiss re-stamps the
// timestamp without error; repeating view keeps incrementing the counter.
func (t *Tracker) Record(ctx context.Context, profileID, postingID uuid.UUID, action types.InteractionAction) (*types.InteractionRecord, error) {
	if !action.Valid() {
		return nil, fmt.Errorf("unknown interaction action: %q", action)
	}

	record, err := t.store.Get(ctx, profileID, postingID)
	if err != nil {
		return nil, fmt.Errorf("failed to load interaction record: %w", err)
	}
	if record == nil {
		record = &types.InteractionRecord{
			ProfileID: profileID,
			PostingID: postingID,
		}
	}

	now := t.now()
	switch action {
	case types.ActionView:
		record.Viewed = true
		record.ViewCount++
		record.ViewedAt = &now
	case types.ActionApply:
		record.Applied = true
		record.AppliedAt = &now
	case types.ActionSave:
		record.Saved = true
		record.SavedAt = &now
	case types.ActionDismiss:
		record.Dismissed = true
		record.DismissedAt = &now
	}

	if err := t.store.Upsert(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to save interaction record: %w", err)
	}

	return record, nil
}
