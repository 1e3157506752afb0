package types

import (
	"time"

	"github.com/google/uuid"
)

// InteractionAction identifies a candidate action against a posting
type InteractionAction string

// Supported interaction actions
const (
	ActionView    InteractionAction = "view"
	ActionApply   InteractionAction = "apply"
	ActionSave    InteractionAction = "save"
	ActionDismiss InteractionAction = "dismiss"
)

// Valid reports whether the action is one of the supported kinds
func (a InteractionAction) Valid() bool {
	switch a {
	case ActionView, ActionApply, ActionSave, ActionDismiss:
		return true
	}
	return false
}

// InteractionRecord tracks a candidate's engagement with a specific posting.
// Unique per (profile, posting) pair; flags are independent and never
// cleared by another action.
type InteractionRecord struct {
	ProfileID   uuid.UUID  `json:"profile_id"`
	PostingID   uuid.UUID  `json:"posting_id"`
	Viewed      bool       `json:"viewed"`
	ViewCount   int        `json:"view_count"`
	ViewedAt    *time.Time `json:"viewed_at,omitempty"`
	Applied     bool       `json:"applied"`
	AppliedAt   *time.Time `json:"applied_at,omitempty"`
	Saved       bool       `json:"saved"`
	SavedAt     *time.Time `json:"saved_at,omitempty"`
	Dismissed   bool       `json:"dismissed"`
	DismissedAt *time.Time `json:"dismissed_at,omitempty"`
}
