package model

import "testing"

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to Status
		want     bool
	}{
		{StatusActive, StatusArchived, true},
		{StatusActive, StatusExpired, true},
		{StatusArchived, StatusExpired, true},
		{StatusActive, StatusActive, false},
		{StatusArchived, StatusActive, false},
		{StatusArchived, StatusArchived, false},
		{StatusExpired, StatusActive, false},
		{StatusExpired, StatusArchived, false},
		{StatusExpired, StatusExpired, false},
	}

	for _, c := range cases {
		if got := c.from.CanTransition(c.to); got != c.want {
			t.Errorf("CanTransition(%s -> %s) = %v, want %v", c.from, c.to, got, c.want)
		}
	}
}
