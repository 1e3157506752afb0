package interactions

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/job-matcher/internal/types"
)

func TestRecord_CreatesOnFirstAction(t *testing.T) {
	store := NewMemoryStore()
	tracker := NewTracker(store)

	profileID, postingID := uuid.New(), uuid.New()

	record, err := tracker.Record(context.Background(), profileID, postingID, types.ActionView)
	require.NoError(t, err)

	assert.Equal(t, profileID, record.ProfileID)
	assert.Equal(t, postingID, record.PostingID)
	assert.True(t, record.Viewed)
	assert.Equal(t, 1, record.ViewCount)
	require.NotNil(t, record.ViewedAt)
	assert.False(t, record.Applied)
	assert.False(t, record.Saved)
	assert.False(t, record.Dismissed)
	assert.Equal(t, 1, store.Len())
}

func TestRecord_ViewCounterIncrements(t *testing.T) {
	store := NewMemoryStore()
	tracker := NewTracker(store)

	ctx := context.Background()
	profileID, postingID := uuid.New(), uuid.New()

	for i := 0; i < 3; i++ {
		_, err := tracker.Record(ctx, profileID, postingID, types.ActionView)
		require.NoError(t, err)
	}

	record, err := store.Get(ctx, profileID, postingID)
	require.NoError(t, err)
	assert.Equal(t, 3, record.ViewCount)
	assert.Equal(t, 1, store.Len())
}

func TestRecord_RepeatedActionRestampsTimestamp(t *testing.T) {
	store := NewMemoryStore()
	tracker := NewTracker(store)

	current := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	tracker.now = func() time.Time { return current }

	ctx := context.Background()
	profileID, postingID := uuid.New(), uuid.New()

	first, err := tracker.Record(ctx, profileID, postingID, types.ActionSave)
	require.NoError(t, err)
	require.NotNil(t, first.SavedAt)
	assert.Equal(t, current, *first.SavedAt)

	current = current.Add(2 * time.Hour)

	second, err := tracker.Record(ctx, profileID, postingID, types.ActionSave)
	require.NoError(t, err)
	require.NotNil(t, second.SavedAt)
	assert.Equal(t, current, *second.SavedAt)
	assert.True(t, second.Saved)
}

func TestRecord_ActionsAreIndependent(t *testing.T) {
	store := NewMemoryStore()
	tracker := NewTracker(store)

	ctx := context.Background()
	profileID, postingID := uuid.New(), uuid.New()

	_, err := tracker.Record(ctx, profileID, postingID, types.ActionSave)
	require.NoError(t, err)

	// Dismissing does not clear the save.
	record, err := tracker.Record(ctx, profileID, postingID, types.ActionDismiss)
	require.NoError(t, err)

	assert.True(t, record.Saved)
	assert.True(t, record.Dismissed)
	require.NotNil(t, record.SavedAt)
	require.NotNil(t, record.DismissedAt)
	assert.Nil(t, record.AppliedAt)
}

func TestRecord_ApplySetsFlagAndTimestamp(t *testing.T) {
	store := NewMemoryStore()
	tracker := NewTracker(store)

	record, err := tracker.Record(context.Background(), uuid.New(), uuid.New(), types.ActionApply)
	require.NoError(t, err)

	assert.True(t, record.Applied)
	require.NotNil(t, record.AppliedAt)
	assert.Equal(t, 0, record.ViewCount)
}

func TestRecord_RejectsUnknownAction(t *testing.T) {
	store := NewMemoryStore()
	tracker := NewTracker(store)

	_, err := tracker.Record(context.Background(), uuid.New(), uuid.New(), types.InteractionAction("bookmark"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown interaction action")
	assert.Equal(t, 0, store.Len())
}

// failingStore exercises the error paths around the backing store.
type failingStore struct {
	getErr    error
	upsertErr error
}

func (s *failingStore) Get(_ context.Context, _, _ uuid.UUID) (*types.InteractionRecord, error) {
	return nil, s.getErr
}

func (s *failingStore) Upsert(_ context.Context, _ *types.InteractionRecord) error {
	return s.upsertErr
}

func TestRecord_PropagatesStoreErrors(t *testing.T) {
	tracker := NewTracker(&failingStore{getErr: fmt.Errorf("connection reset")})
	_, err := tracker.Record(context.Background(), uuid.New(), uuid.New(), types.ActionView)
	assert.ErrorContains(t, err, "failed to load interaction record")

	tracker = NewTracker(&failingStore{upsertErr: fmt.Errorf("connection reset")})
	_, err = tracker.Record(context.Background(), uuid.New(), uuid.New(), types.ActionView)
	assert.ErrorContains(t, err, "failed to save interaction record")
}

func TestMemoryStore_GetReturnsCopy(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	profileID, postingID := uuid.New(), uuid.New()
	require.NoError(t, store.Upsert(ctx, &types.InteractionRecord{
		ProfileID: profileID,
		PostingID: postingID,
		ViewCount: 1,
	}))

	first, err := store.Get(ctx, profileID, postingID)
	require.NoError(t, err)
	first.ViewCount = 99

	second, err := store.Get(ctx, profileID, postingID)
	require.NoError(t, err)
	assert.Equal(t, 1, second.ViewCount)
}
