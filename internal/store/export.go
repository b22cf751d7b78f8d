package store

import (
	"context"
	"strings"

	"github.com/jpalmieri/ctxstore/internal/model"
	"github.com/jpalmieri/ctxstore/internal/project"
)

// ExportAll returns every stored context regardless of status,
// optionally filtered by project. Intended for backups; it bypasses
// the active-only default that GetContexts applies.
func (s *SQLiteStore) ExportAll(ctx context.Context, projectID string) ([]model.Context, error) {
	where := []string{}
	args := []interface{}{}

	if projectID != "" {
		canon := project.Normalize(projectID)
		if canon == "" {
			return nil, &ValidationError{Field: "project_id", Reason: "normalizes to empty (separator-only input)"}
		}
		where = append(where, "project_id = ?")
		args = append(args, canon)
	}

	query := `SELECT id, project_id, content, importance, tags, status, created_at
	          FROM contexts`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY project_id, rowid`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storageErr("export", err)
	}
	defer rows.Close()

	var contexts []model.Context
	for rows.Next() {
		c, err := scanContext(rows)
		if err != nil {
			return nil, storageErr("export scan", err)
		}
		contexts = append(contexts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("export", err)
	}

	return contexts, nil
}
