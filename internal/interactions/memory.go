package interactions

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/jonathan/job-matcher/internal/types"
)

// MemoryStore is an in-process Store for tests and CLI runs without a
// database.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[pairID]types.InteractionRecord
}

type pairID struct {
	profileID uuid.UUID
	postingID uuid.UUID
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[pairID]types.InteractionRecord)}
}

// Get returns a copy of the stored record, or nil when absent.
func (s *MemoryStore) Get(_ context.Context, profileID, postingID uuid.UUID) (*types.InteractionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.records[pairID{profileID: profileID, postingID: postingID}]
	if !ok {
		return nil, nil
	}
	return &record, nil
}

// Upsert stores the record, replacing any existing one for the pair.
func (s *MemoryStore) Upsert(_ context.Context, record *types.InteractionRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[pairID{profileID: record.ProfileID, postingID: record.PostingID}] = *record
	return nil
}

// Len reports the number of stored records.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
