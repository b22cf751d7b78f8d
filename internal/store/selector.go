package store

import (
	"context"
	"fmt"

	"github.com/jpalmieri/ctxstore/internal/project"
)

// Instruction strings returned with a selection. Agents read these to
// know what the returned slice is.
const (
	initInstructions = "These are the most important stored contexts for this project, " +
		"highest importance first, newest first within equal importance. " +
		"Treat them as established facts and decisions from earlier sessions."

	emptyInstructions = "No stored contexts exist for this project yet. " +
		"Save important facts and decisions as the session progresses."
)

// SelectForInit picks the contexts an agent should load when resuming
// a session on the given project.
//
// Candidates are every active context in the project, ordered by
// importance descending, then created_at descending, then insertion
// order — the full ordering is total, so identical inputs always
// produce identical output. The top budget entries are returned along
// with the true active count, which may be larger.
//
// An unknown project is not an error: it simply has no memory yet.
func (s *SQLiteStore) SelectForInit(ctx context.Context, projectID string, budget int) (*InitResult, error) {
	if budget < 0 {
		return nil, &ValidationError{Field: "budget", Reason: fmt.Sprintf("must not be negative, got %d", budget)}
	}

	canon := project.Normalize(projectID)
	if canon == "" {
		return nil, &ValidationError{Field: "project_id", Reason: "normalizes to empty (separator-only input)"}
	}

	var known int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM projects WHERE id = ?`, canon).Scan(&known); err != nil {
		return nil, storageErr("lookup project", err)
	}
	if known == 0 {
		return &InitResult{
			ProjectID:     canon,
			Instructions:  emptyInstructions,
			TotalContexts: 0,
			Contexts:      nil,
		}, nil
	}

	var total int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM contexts WHERE project_id = ? AND status = 'active'`, canon).Scan(&total); err != nil {
		return nil, storageErr("count contexts", err)
	}

	result := &InitResult{
		ProjectID:     canon,
		Instructions:  initInstructions,
		TotalContexts: total,
	}
	if total == 0 {
		result.Instructions = emptyInstructions
	}

	if budget > 0 && total > 0 {
		rows, err := s.db.QueryContext(ctx, `
			SELECT c.id, c.project_id, c.content, c.importance, c.tags, c.status, c.created_at
			FROM contexts c
			WHERE c.project_id = ? AND c.status = 'active'
			ORDER BY c.importance DESC, c.created_at DESC, c.rowid ASC
			LIMIT ?`, canon, budget)
		if err != nil {
			return nil, storageErr("select contexts", err)
		}
		defer rows.Close()

		for rows.Next() {
			c, err := scanContext(rows)
			if err != nil {
				return nil, storageErr("scan context", err)
			}
			result.Contexts = append(result.Contexts, c)
		}
		if err := rows.Err(); err != nil {
			return nil, storageErr("select contexts", err)
		}
	}

	// Selection reads context records only; the single side effect is
	// the project access timestamp.
	if err := s.touchProject(ctx, canon); err != nil {
		return nil, err
	}

	return result, nil
}
