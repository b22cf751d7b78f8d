// Package project implements canonical project-identity normalization.
//
// Callers hand the store arbitrary project identifiers ("My_Project",
// "my-project", "MY PROJECT"); all of them must land on the same
// stored key so memory saved under one spelling is found under any
// other. Normalize is the single place that mapping is defined.
package project

import "strings"

// Default is the canonical key used when no project is supplied.
const Default = "general"

// Normalize maps a raw project identifier to its canonical key.
//
// Empty or all-whitespace input yields Default. Otherwise the input is
// lowercased (Unicode-aware), runs of '_' and '-' become single
// spaces, whitespace runs collapse to one space, and the result is
// trimmed. Input made of nothing but separators normalizes to the
// empty string — that is a distinct case from "no input", and callers
// that cannot accept an empty key must reject it themselves.
//
// Normalize is pure and idempotent.
func Normalize(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return Default
	}

	s := strings.ToLower(raw)

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r == '_' || r == '-' {
			b.WriteByte(' ')
		} else {
			b.WriteRune(r)
		}
	}

	// Fields splits on any whitespace run, so this both collapses
	// internal runs and trims the ends.
	return strings.Join(strings.Fields(b.String()), " ")
}

// IsDefault reports whether id is exactly the canonical default key.
// Unlike Normalize it never renormalizes: IsDefault("General") is false.
func IsDefault(id string) bool {
	return id == Default
}
