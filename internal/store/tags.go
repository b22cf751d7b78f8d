package store

import (
	"context"

	"github.com/jpalmieri/ctxstore/internal/model"
	"github.com/jpalmieri/ctxstore/internal/project"
)

// PopularTags returns a project's tags ranked by the number of
// distinct active contexts carrying each. Counts come from joining the
// tag rows against live context status inside one snapshot, so they
// can never drift from the repository. Ties sort by tag name for
// reproducible output.
func (s *SQLiteStore) PopularTags(ctx context.Context, projectID string, limit int) ([]model.PopularTag, error) {
	canon := project.Normalize(projectID)
	if canon == "" {
		return nil, &ValidationError{Field: "project_id", Reason: "normalizes to empty (separator-only input)"}
	}
	if limit <= 0 {
		limit = defaultLimit
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT t.tag, COUNT(DISTINCT t.context_id) AS cnt
		FROM context_tags t
		INNER JOIN contexts c ON c.id = t.context_id
		WHERE t.project_id = ? AND c.status = 'active'
		GROUP BY t.tag
		ORDER BY cnt DESC, t.tag ASC
		LIMIT ?`, canon, limit)
	if err != nil {
		return nil, storageErr("query tags", err)
	}
	defer rows.Close()

	tags := []model.PopularTag{}
	for rows.Next() {
		var t model.PopularTag
		if err := rows.Scan(&t.Tag, &t.Count); err != nil {
			return nil, storageErr("scan tag", err)
		}
		tags = append(tags, t)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("query tags", err)
	}

	return tags, nil
}
