package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"

	"github.com/jpalmieri/ctxstore/internal/model"
	"github.com/jpalmieri/ctxstore/internal/project"
)

// providerName identifies the backing storage in Stats output.
const providerName = "sqlite"

// timeFormat is RFC 3339 with a fixed-width fraction, so stored TEXT
// timestamps sort lexicographically in chronological order.
const timeFormat = "2006-01-02T15:04:05.000000000Z07:00"

// defaultLimit caps GetContexts results when the caller passes none.
const defaultLimit = 20

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db      *sql.DB
	entropy *rand.Rand
	now     func() time.Time

	// Per-project write serialization. A project's lock is held for
	// the duration of one mutating operation, never across two.
	mu        sync.Mutex
	projLocks map[string]*sync.Mutex
}

// NewSQLiteStore opens or creates a SQLite database at the given path.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, storageErr("create db dir", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=foreign_keys(on)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, storageErr("open db", err)
	}

	s := &SQLiteStore{
		db:        db,
		entropy:   rand.New(rand.NewSource(time.Now().UnixNano())),
		now:       time.Now,
		projLocks: make(map[string]*sync.Mutex),
	}

	if err := s.migrate(); err != nil {
		db.Close()
		return nil, storageErr("migrate", err)
	}

	return s, nil
}

func (s *SQLiteStore) newID() string {
	// entropy is not goroutine-safe; saves on different projects can
	// run concurrently.
	s.mu.Lock()
	defer s.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), s.entropy).String()
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS projects (
		id            TEXT PRIMARY KEY,
		name          TEXT NOT NULL,
		description   TEXT,
		status        TEXT NOT NULL DEFAULT 'active',
		context_count INTEGER NOT NULL DEFAULT 0,
		last_accessed TEXT NOT NULL,
		created_at    TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS contexts (
		id         TEXT PRIMARY KEY,
		project_id TEXT NOT NULL REFERENCES projects(id),
		content    TEXT NOT NULL,
		importance INTEGER NOT NULL,
		tags       TEXT,
		status     TEXT NOT NULL DEFAULT 'active',
		created_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_contexts_project ON contexts(project_id, status);
	CREATE INDEX IF NOT EXISTS idx_contexts_created ON contexts(created_at DESC);
	CREATE INDEX IF NOT EXISTS idx_contexts_status ON contexts(status);

	CREATE TABLE IF NOT EXISTS context_tags (
		context_id TEXT NOT NULL REFERENCES contexts(id),
		project_id TEXT NOT NULL,
		tag        TEXT NOT NULL,
		PRIMARY KEY (context_id, tag)
	);
	CREATE INDEX IF NOT EXISTS idx_tags_project ON context_tags(project_id, tag);
	`
	_, err := s.db.Exec(schema)
	return err
}

// projectLock returns the mutex serializing writes to one project.
func (s *SQLiteStore) projectLock(projectID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.projLocks[projectID]
	if !ok {
		l = &sync.Mutex{}
		s.projLocks[projectID] = l
	}
	return l
}

// normalizeTags lowercases, trims, dedupes, and sorts a tag set.
func normalizeTags(tags []string) []string {
	seen := map[string]bool{}
	var out []string
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

func (s *SQLiteStore) SaveContext(ctx context.Context, p SaveParams) (*model.Context, error) {
	if strings.TrimSpace(p.Content) == "" {
		return nil, &ValidationError{Field: "content", Reason: "must not be empty"}
	}
	if p.Importance < model.MinImportance || p.Importance > model.MaxImportance {
		return nil, &ValidationError{
			Field:  "importance_level",
			Reason: fmt.Sprintf("must be between %d and %d, got %d", model.MinImportance, model.MaxImportance, p.Importance),
		}
	}

	canon := project.Normalize(p.ProjectID)
	if canon == "" {
		return nil, &ValidationError{Field: "project_id", Reason: "normalizes to empty (separator-only input)"}
	}

	tags := normalizeTags(p.Tags)
	now := s.now().UTC()
	nowStr := now.Format(timeFormat)
	id := s.newID()

	lock := s.projectLock(canon)
	lock.Lock()
	defer lock.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, storageErr("begin tx", err)
	}
	defer tx.Rollback()

	// Implicit project creation; the display name keeps the caller's
	// original form, the id never does.
	name := strings.TrimSpace(p.ProjectID)
	if name == "" {
		name = canon
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO projects (id, name, status, context_count, last_accessed, created_at)
		 VALUES (?, ?, 'active', 0, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET last_accessed = excluded.last_accessed`,
		canon, name, nowStr, nowStr)
	if err != nil {
		return nil, storageErr("upsert project", err)
	}

	var tagsJSON *string
	if len(tags) > 0 {
		b, _ := json.Marshal(tags)
		j := string(b)
		tagsJSON = &j
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO contexts (id, project_id, content, importance, tags, status, created_at)
		 VALUES (?, ?, ?, ?, ?, 'active', ?)`,
		id, canon, p.Content, p.Importance, tagsJSON, nowStr)
	if err != nil {
		return nil, storageErr("insert context", err)
	}

	for _, t := range tags {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO context_tags (context_id, project_id, tag) VALUES (?, ?, ?)`,
			id, canon, t); err != nil {
			return nil, storageErr("insert tag", err)
		}
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE projects SET context_count = context_count + 1 WHERE id = ?`, canon); err != nil {
		return nil, storageErr("bump context count", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, storageErr("commit", err)
	}

	return &model.Context{
		ID:         id,
		ProjectID:  canon,
		Content:    p.Content,
		Importance: p.Importance,
		Tags:       tags,
		Status:     model.StatusActive,
		CreatedAt:  now,
	}, nil
}

func (s *SQLiteStore) GetContexts(ctx context.Context, f SearchFilters) ([]model.Context, error) {
	canon := project.Normalize(f.ProjectID)
	if canon == "" {
		return nil, &ValidationError{Field: "project_id", Reason: "normalizes to empty (separator-only input)"}
	}

	status := f.Status
	if status == "" {
		status = model.StatusActive
	}
	if !model.ValidStatuses[status] {
		return nil, &ValidationError{Field: "status", Reason: fmt.Sprintf("unknown status %q", status)}
	}

	limit := f.Limit
	if limit <= 0 {
		limit = defaultLimit
	}

	where := []string{"c.project_id = ?", "c.status = ?"}
	args := []interface{}{canon, string(status)}

	if f.MinImportance > 0 {
		where = append(where, "c.importance >= ?")
		args = append(args, f.MinImportance)
	}

	// Tag filter: the context must carry at least one of the tags.
	if tags := normalizeTags(f.Tags); len(tags) > 0 {
		ph := strings.Repeat("?,", len(tags))
		where = append(where,
			fmt.Sprintf("EXISTS (SELECT 1 FROM context_tags t WHERE t.context_id = c.id AND t.tag IN (%s))", ph[:len(ph)-1]))
		for _, t := range tags {
			args = append(args, t)
		}
	}

	query := fmt.Sprintf(`
		SELECT c.id, c.project_id, c.content, c.importance, c.tags, c.status, c.created_at
		FROM contexts c
		WHERE %s
		ORDER BY c.created_at DESC, c.rowid DESC
		LIMIT ?`, strings.Join(where, " AND "))
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storageErr("query contexts", err)
	}
	defer rows.Close()

	contexts := []model.Context{}
	for rows.Next() {
		c, err := scanContext(rows)
		if err != nil {
			return nil, storageErr("scan context", err)
		}
		contexts = append(contexts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("query contexts", err)
	}

	if err := s.touchProject(ctx, canon); err != nil {
		return nil, err
	}

	return contexts, nil
}

func (s *SQLiteStore) UpdateStatus(ctx context.Context, id string, status model.Status) error {
	if !model.ValidStatuses[status] {
		return &ValidationError{Field: "status", Reason: fmt.Sprintf("unknown status %q", status)}
	}

	// Resolve the owning project first so the right lock is taken;
	// current status is re-read inside the transaction.
	var projectID string
	err := s.db.QueryRowContext(ctx,
		`SELECT project_id FROM contexts WHERE id = ?`, id).Scan(&projectID)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("context %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return storageErr("lookup context", err)
	}

	lock := s.projectLock(projectID)
	lock.Lock()
	defer lock.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return storageErr("begin tx", err)
	}
	defer tx.Rollback()

	var cur string
	err = tx.QueryRowContext(ctx,
		`SELECT status FROM contexts WHERE id = ?`, id).Scan(&cur)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("context %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return storageErr("read status", err)
	}

	old := model.Status(cur)
	if !old.CanTransition(status) {
		return &InvalidTransitionError{From: old, To: status}
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE contexts SET status = ? WHERE id = ?`, string(status), id); err != nil {
		return storageErr("update status", err)
	}

	// Leaving active drops the project's live count. Tag popularity
	// is derived from contexts.status, so it follows automatically.
	if old == model.StatusActive {
		if _, err := tx.ExecContext(ctx,
			`UPDATE projects SET context_count = context_count - 1 WHERE id = ?`, projectID); err != nil {
			return storageErr("drop context count", err)
		}
	}

	nowStr := s.now().UTC().Format(timeFormat)
	if _, err := tx.ExecContext(ctx,
		`UPDATE projects SET last_accessed = ? WHERE id = ?`, nowStr, projectID); err != nil {
		return storageErr("touch project", err)
	}

	if err := tx.Commit(); err != nil {
		return storageErr("commit", err)
	}
	return nil
}

func (s *SQLiteStore) PurgeExpired(ctx context.Context) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, storageErr("begin tx", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM context_tags WHERE context_id IN
		   (SELECT id FROM contexts WHERE status = 'expired')`); err != nil {
		return 0, storageErr("purge tags", err)
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM contexts WHERE status = 'expired'`)
	if err != nil {
		return 0, storageErr("purge contexts", err)
	}
	n, _ := res.RowsAffected()

	if err := tx.Commit(); err != nil {
		return 0, storageErr("commit", err)
	}
	return int(n), nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// touchProject records an access on the project's metadata.
func (s *SQLiteStore) touchProject(ctx context.Context, projectID string) error {
	nowStr := s.now().UTC().Format(timeFormat)
	if _, err := s.db.ExecContext(ctx,
		`UPDATE projects SET last_accessed = ? WHERE id = ?`, nowStr, projectID); err != nil {
		return storageErr("touch project", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanContext(row scanner) (model.Context, error) {
	var c model.Context
	var tagsJSON sql.NullString
	var status, createdAt string

	err := row.Scan(&c.ID, &c.ProjectID, &c.Content, &c.Importance, &tagsJSON, &status, &createdAt)
	if err != nil {
		return c, err
	}

	c.Status = model.Status(status)
	c.CreatedAt, _ = time.Parse(timeFormat, createdAt)
	if tagsJSON.Valid {
		json.Unmarshal([]byte(tagsJSON.String), &c.Tags)
	}

	return c, nil
}
