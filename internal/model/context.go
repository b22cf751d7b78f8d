// Package model defines the core context-memory data types.
package model

import "time"

// Status is the lifecycle state of a context. Transitions only move
// forward: active → archived → expired, or active → expired directly.
type Status string

const (
	StatusActive   Status = "active"
	StatusArchived Status = "archived"
	StatusExpired  Status = "expired"
)

// ValidStatuses are the allowed context statuses.
var ValidStatuses = map[Status]bool{
	StatusActive:   true,
	StatusArchived: true,
	StatusExpired:  true,
}

// CanTransition reports whether a status change from s to next is a
// legal forward transition. Same-state and backward changes are not.
func (s Status) CanTransition(next Status) bool {
	switch s {
	case StatusActive:
		return next == StatusArchived || next == StatusExpired
	case StatusArchived:
		return next == StatusExpired
	default:
		return false
	}
}

// Importance bounds for a context. Caller-supplied, inclusive.
const (
	MinImportance = 1
	MaxImportance = 10
)

// Context is a single stored memory unit. Content, project, and
// created_at are immutable after creation; only Status moves.
type Context struct {
	ID         string    `json:"id"`
	ProjectID  string    `json:"project_id"`
	Content    string    `json:"content"`
	Importance int       `json:"importance_level"`
	Tags       []string  `json:"tags,omitempty"`
	Status     Status    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

// Project is the metadata record for a named scope. The ID is always
// the canonical normalized key, never the raw caller-supplied form.
type Project struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  *string   `json:"description,omitempty"`
	Status       Status    `json:"status"`
	LastAccessed time.Time `json:"last_accessed"`
	ContextCount int       `json:"context_count"`
}

// PopularTag is one entry in a project's tag popularity ranking.
type PopularTag struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}
