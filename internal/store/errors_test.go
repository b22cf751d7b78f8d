package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jpalmieri/ctxstore/internal/model"
)

func TestErrorTaxonomy(t *testing.T) {
	var err error = &ValidationError{Field: "importance_level", Reason: "out of range"}
	var ve *ValidationError
	if !errors.As(err, &ve) || ve.Field != "importance_level" {
		t.Errorf("expected ValidationError via errors.As, got %v", err)
	}

	err = &InvalidTransitionError{From: model.StatusArchived, To: model.StatusActive}
	var ite *InvalidTransitionError
	if !errors.As(err, &ite) || ite.From != model.StatusArchived {
		t.Errorf("expected InvalidTransitionError via errors.As, got %v", err)
	}

	wrapped := fmt.Errorf("context abc: %w", ErrNotFound)
	if !errors.Is(wrapped, ErrNotFound) {
		t.Errorf("expected wrapped ErrNotFound to satisfy errors.Is, got %v", wrapped)
	}
}

func TestStorageErrorUnwraps(t *testing.T) {
	cause := errors.New("disk full")
	err := storageErr("commit", cause)

	var se *StorageError
	if !errors.As(err, &se) || se.Op != "commit" {
		t.Fatalf("expected StorageError via errors.As, got %v", err)
	}
	if !errors.Is(err, cause) {
		t.Errorf("expected StorageError to unwrap to its cause")
	}
}
