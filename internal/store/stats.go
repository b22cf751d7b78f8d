package store

import (
	"context"

	"github.com/jpalmieri/ctxstore/internal/project"
)

// Stats aggregates counts over the store. An empty projectID
// aggregates globally; otherwise counts are scoped to that project.
// AvgImportance covers active contexts only and is 0 when there are
// none.
func (s *SQLiteStore) Stats(ctx context.Context, projectID string) (*Stats, error) {
	st := &Stats{Provider: providerName}

	scope := ""
	var args []interface{}
	if projectID != "" {
		canon := project.Normalize(projectID)
		if canon == "" {
			return nil, &ValidationError{Field: "project_id", Reason: "normalizes to empty (separator-only input)"}
		}
		scope = " WHERE project_id = ?"
		args = []interface{}{canon}
	}

	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*),
		       COALESCE(SUM(status = 'active'), 0),
		       COALESCE(SUM(status = 'archived'), 0),
		       COALESCE(SUM(status = 'expired'), 0),
		       COALESCE(AVG(CASE WHEN status = 'active' THEN importance END), 0.0)
		FROM contexts`+scope, args...).
		Scan(&st.TotalContexts, &st.ActiveContexts, &st.ArchivedContexts, &st.ExpiredContexts, &st.AvgImportance)
	if err != nil {
		return nil, storageErr("count contexts", err)
	}

	projQuery := `SELECT COUNT(*) FROM projects`
	if scope != "" {
		projQuery += ` WHERE id = ?`
	}
	if err := s.db.QueryRowContext(ctx, projQuery, args...).Scan(&st.TotalProjects); err != nil {
		return nil, storageErr("count projects", err)
	}

	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(DISTINCT tag) FROM context_tags`+scope, args...).Scan(&st.TotalTags); err != nil {
		return nil, storageErr("count tags", err)
	}

	return st, nil
}
