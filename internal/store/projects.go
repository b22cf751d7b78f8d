package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/jpalmieri/ctxstore/internal/model"
)

// ListProjects returns every known project, most recently accessed
// first. The context_count column is maintained in the same
// transaction as every context write, so it always matches the live
// active count.
func (s *SQLiteStore) ListProjects(ctx context.Context) ([]model.Project, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, description, status, context_count, last_accessed
		FROM projects
		ORDER BY last_accessed DESC, id ASC`)
	if err != nil {
		return nil, storageErr("query projects", err)
	}
	defer rows.Close()

	projects := []model.Project{}
	for rows.Next() {
		var p model.Project
		var desc sql.NullString
		var status, lastAccessed string
		if err := rows.Scan(&p.ID, &p.Name, &desc, &status, &p.ContextCount, &lastAccessed); err != nil {
			return nil, storageErr("scan project", err)
		}
		p.Status = model.Status(status)
		p.LastAccessed, _ = time.Parse(timeFormat, lastAccessed)
		if desc.Valid {
			p.Description = &desc.String
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("query projects", err)
	}

	return projects, nil
}
