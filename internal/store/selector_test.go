package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jpalmieri/ctxstore/internal/model"
)

func TestSelectForInitRanking(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	fakeClock(s)

	// Created in this order: importance 3, 9, 9, 1.
	s.SaveContext(ctx, SaveParams{Content: "low", Importance: 3, ProjectID: "p"})
	s.SaveContext(ctx, SaveParams{Content: "nine-early", Importance: 9, ProjectID: "p"})
	s.SaveContext(ctx, SaveParams{Content: "nine-late", Importance: 9, ProjectID: "p"})
	s.SaveContext(ctx, SaveParams{Content: "noise", Importance: 1, ProjectID: "p"})

	res, err := s.SelectForInit(ctx, "p", 2)
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if res.TotalContexts != 4 {
		t.Errorf("expected total 4, got %d", res.TotalContexts)
	}
	if len(res.Contexts) != 2 {
		t.Fatalf("expected 2 contexts, got %d", len(res.Contexts))
	}
	// Both importance-9 entries win; the more recent one comes first.
	if res.Contexts[0].Content != "nine-late" || res.Contexts[1].Content != "nine-early" {
		t.Errorf("expected [nine-late nine-early], got [%s %s]",
			res.Contexts[0].Content, res.Contexts[1].Content)
	}
}

func TestSelectForInitExactTieUsesInsertionOrder(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	// Freeze the clock so created_at is identical for both.
	fixed := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	s.SaveContext(ctx, SaveParams{Content: "first", Importance: 5, ProjectID: "p"})
	s.SaveContext(ctx, SaveParams{Content: "second", Importance: 5, ProjectID: "p"})

	// Identical importance and created_at: insertion order decides,
	// and repeated runs must agree.
	for i := 0; i < 3; i++ {
		res, err := s.SelectForInit(ctx, "p", 2)
		if err != nil {
			t.Fatalf("select: %v", err)
		}
		if res.Contexts[0].Content != "first" || res.Contexts[1].Content != "second" {
			t.Fatalf("run %d: expected insertion order [first second], got [%s %s]",
				i, res.Contexts[0].Content, res.Contexts[1].Content)
		}
	}
}

func TestSelectForInitZeroBudget(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	for i := 0; i < 4; i++ {
		s.SaveContext(ctx, SaveParams{Content: "c", Importance: 5, ProjectID: "p"})
	}

	res, err := s.SelectForInit(ctx, "p", 0)
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if len(res.Contexts) != 0 {
		t.Errorf("expected no contexts, got %d", len(res.Contexts))
	}
	if res.TotalContexts != 4 {
		t.Errorf("expected total 4, got %d", res.TotalContexts)
	}
}

func TestSelectForInitNegativeBudget(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	_, err := s.SelectForInit(ctx, "p", -1)
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Errorf("expected ValidationError, got %v", err)
	}
}

func TestSelectForInitUnknownProject(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	res, err := s.SelectForInit(ctx, "never-seen", 10)
	if err != nil {
		t.Fatalf("expected no error for unknown project, got %v", err)
	}
	if len(res.Contexts) != 0 || res.TotalContexts != 0 {
		t.Errorf("expected empty result, got %d/%d", len(res.Contexts), res.TotalContexts)
	}
	if res.Instructions == "" {
		t.Error("expected a generic instruction string")
	}
}

func TestSelectForInitFewerThanBudget(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	s.SaveContext(ctx, SaveParams{Content: "only", Importance: 5, ProjectID: "p"})

	res, err := s.SelectForInit(ctx, "p", 10)
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if len(res.Contexts) != 1 || res.TotalContexts != 1 {
		t.Errorf("expected 1/1, got %d/%d", len(res.Contexts), res.TotalContexts)
	}
}

func TestSelectForInitSkipsInactive(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	a, _ := s.SaveContext(ctx, SaveParams{Content: "gone", Importance: 10, ProjectID: "p"})
	s.SaveContext(ctx, SaveParams{Content: "kept", Importance: 2, ProjectID: "p"})
	s.UpdateStatus(ctx, a.ID, model.StatusArchived)

	res, err := s.SelectForInit(ctx, "p", 5)
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if len(res.Contexts) != 1 || res.Contexts[0].Content != "kept" {
		t.Errorf("expected only the active context, got %+v", res.Contexts)
	}
	if res.TotalContexts != 1 {
		t.Errorf("expected total 1, got %d", res.TotalContexts)
	}
}

func TestSelectForInitDoesNotMutateContexts(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	saved, _ := s.SaveContext(ctx, SaveParams{Content: "x", Importance: 5, ProjectID: "p"})
	s.SelectForInit(ctx, "p", 5)

	all, _ := s.ExportAll(ctx, "p")
	if len(all) != 1 {
		t.Fatalf("expected 1 context, got %d", len(all))
	}
	if all[0].Status != model.StatusActive || all[0].ID != saved.ID {
		t.Errorf("selection mutated the context record: %+v", all[0])
	}
}
