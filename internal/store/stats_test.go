package store

import (
	"context"
	"testing"

	"github.com/jpalmieri/ctxstore/internal/model"
)

func TestStatsEmpty(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	st, err := s.Stats(ctx, "")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if st.TotalContexts != 0 || st.ActiveContexts != 0 || st.TotalProjects != 0 || st.TotalTags != 0 {
		t.Errorf("expected all-zero stats, got %+v", st)
	}
	if st.AvgImportance != 0 {
		t.Errorf("expected avg 0 with no active contexts, got %f", st.AvgImportance)
	}
	if st.Provider != "sqlite" {
		t.Errorf("expected provider sqlite, got %q", st.Provider)
	}
}

func TestStatsCounts(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	a, _ := s.SaveContext(ctx, SaveParams{Content: "a", Importance: 4, ProjectID: "p", Tags: []string{"x"}})
	b, _ := s.SaveContext(ctx, SaveParams{Content: "b", Importance: 8, ProjectID: "p", Tags: []string{"y"}})
	s.SaveContext(ctx, SaveParams{Content: "c", Importance: 6, ProjectID: "q"})

	s.UpdateStatus(ctx, a.ID, model.StatusArchived)
	s.UpdateStatus(ctx, b.ID, model.StatusExpired)

	st, err := s.Stats(ctx, "")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if st.TotalContexts != 3 {
		t.Errorf("expected 3 total, got %d", st.TotalContexts)
	}
	if st.ActiveContexts != 1 || st.ArchivedContexts != 1 || st.ExpiredContexts != 1 {
		t.Errorf("unexpected status counts: %+v", st)
	}
	if st.TotalProjects != 2 {
		t.Errorf("expected 2 projects, got %d", st.TotalProjects)
	}
	if st.TotalTags != 2 {
		t.Errorf("expected 2 distinct tags, got %d", st.TotalTags)
	}
	// Only the remaining active context (importance 6) counts.
	if st.AvgImportance != 6 {
		t.Errorf("expected avg 6, got %f", st.AvgImportance)
	}
}

func TestStatsProjectScoped(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	s.SaveContext(ctx, SaveParams{Content: "a", Importance: 2, ProjectID: "p"})
	s.SaveContext(ctx, SaveParams{Content: "b", Importance: 4, ProjectID: "p"})
	s.SaveContext(ctx, SaveParams{Content: "c", Importance: 10, ProjectID: "q"})

	st, err := s.Stats(ctx, "p")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if st.TotalContexts != 2 {
		t.Errorf("expected 2 in project p, got %d", st.TotalContexts)
	}
	if st.AvgImportance != 3 {
		t.Errorf("expected avg 3, got %f", st.AvgImportance)
	}
	if st.TotalProjects != 1 {
		t.Errorf("expected 1 project in scope, got %d", st.TotalProjects)
	}
}

func TestStatsScopedProjectNormalizes(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	s.SaveContext(ctx, SaveParams{Content: "a", Importance: 5, ProjectID: "My_Project"})

	st, err := s.Stats(ctx, "my-project")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if st.TotalContexts != 1 {
		t.Errorf("expected 1 after normalization, got %d", st.TotalContexts)
	}
}
