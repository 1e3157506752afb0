// Package types provides type definitions for structured data used throughout the job-matcher system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"time"

	"github.com/google/uuid"
)

// PostingStatus represents the lifecycle state of a job posting
type PostingStatus string

// Posting lifecycle states
const (
	// PostingActive is a posting open for matching
	PostingActive PostingStatus = "active"
	// PostingExpired is a posting no longer accepting candidates
	PostingExpired PostingStatus = "expired"
)

// JobPosting represents a structured job posting as consumed by the matching core
type JobPosting struct {
	ID              uuid.UUID     `json:"id"`
	Company         string        `json:"company"`
	RoleTitle       string        `json:"role_title"`
	RequiredSkills  []string      `json:"required_skills"`
	PreferredSkills []string      `json:"preferred_skills,omitempty"`
	MinYears        float64       `json:"min_years"`
	MaxYears        float64       `json:"max_years"`
	SalaryMin       float64       `json:"salary_min,omitempty"`
	SalaryMax       float64       `json:"salary_max,omitempty"`
	EmploymentType  string        `json:"employment_type,omitempty"` // e.g., full_time, contract
	Remote          bool          `json:"remote,omitempty"`
	Status          PostingStatus `json:"status"`
	PostedAt        time.Time     `json:"posted_at"`
	Embedding       []float64     `json:"embedding,omitempty"`
}

// IsActive reports whether the posting is open for matching
func (p *JobPosting) IsActive() bool {
	return p.Status == PostingActive
}

// HasEmbedding reports whether the posting carries a semantic vector
func (p *JobPosting) HasEmbedding() bool {
	return len(p.Embedding) > 0
}
