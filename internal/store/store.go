// Package store provides the context-memory storage interface and its
// SQLite implementation.
package store

import (
	"context"

	"github.com/jpalmieri/ctxstore/internal/model"
)

// SaveParams holds parameters for storing a context.
type SaveParams struct {
	Content    string
	Importance int
	ProjectID  string // raw; normalized before use
	Tags       []string
}

// SearchFilters holds query-time filters for GetContexts.
type SearchFilters struct {
	ProjectID     string // raw; normalized before use
	Tags          []string
	MinImportance int
	Limit         int          // <= 0 means default
	Status        model.Status // "" means active only
}

// InitResult is the selector's answer for session initialization.
// TotalContexts counts all active contexts in the project, which may
// exceed len(Contexts).
type InitResult struct {
	ProjectID     string          `json:"project_id"`
	Instructions  string          `json:"instructions"`
	TotalContexts int             `json:"total_contexts"`
	Contexts      []model.Context `json:"contexts"`
}

// Stats holds aggregate counts over the store.
type Stats struct {
	Provider         string  `json:"provider"`
	TotalContexts    int     `json:"total_contexts"`
	ActiveContexts   int     `json:"active_contexts"`
	ArchivedContexts int     `json:"archived_contexts"`
	ExpiredContexts  int     `json:"expired_contexts"`
	TotalProjects    int     `json:"total_projects"`
	TotalTags        int     `json:"total_tags"`
	AvgImportance    float64 `json:"avg_importance"`
}

// Store defines the context memory storage interface.
type Store interface {
	// SaveContext validates and stores a new context, creating its
	// project implicitly if needed. Returns the stored record.
	SaveContext(ctx context.Context, p SaveParams) (*model.Context, error)

	// GetContexts returns contexts matching the filters, newest first.
	// A query that matches nothing returns an empty slice, not an error.
	GetContexts(ctx context.Context, f SearchFilters) ([]model.Context, error)

	// UpdateStatus applies a forward-only status transition.
	UpdateStatus(ctx context.Context, id string, status model.Status) error

	// SelectForInit picks the top contexts for resuming a session on
	// the given project, bounded by budget.
	SelectForInit(ctx context.Context, projectID string, budget int) (*InitResult, error)

	// ListProjects returns every known project, most recently
	// accessed first, with live active-context counts.
	ListProjects(ctx context.Context) ([]model.Project, error)

	// PopularTags returns a project's tags ranked by how many active
	// contexts carry them.
	PopularTags(ctx context.Context, projectID string, limit int) ([]model.PopularTag, error)

	// Stats aggregates counts, globally or for one project.
	Stats(ctx context.Context, projectID string) (*Stats, error)

	// PurgeExpired physically deletes expired contexts. Maintenance
	// only; never part of normal read/write traffic.
	PurgeExpired(ctx context.Context) (int, error)

	// Close closes the store.
	Close() error
}
