package types

import "github.com/google/uuid"

// CandidateProfile represents a candidate as consumed by the matching core.
// Skills may be raw variants; set matching canonicalizes both sides.
type CandidateProfile struct {
	ID              uuid.UUID `json:"id"`
	Skills          []string  `json:"skills"`
	YearsExperience float64   `json:"years_experience"`
	MinSalary       *float64  `json:"min_salary,omitempty"` // Optional salary preference
	Embedding       []float64 `json:"embedding,omitempty"`
}

// HasEmbedding reports whether the profile carries a semantic vector
func (p *CandidateProfile) HasEmbedding() bool {
	return len(p.Embedding) > 0
}
