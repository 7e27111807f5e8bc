package models

import (
	"testing"
	"time"
)

func TestEndOfDay(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Tallinn")
	if err != nil {
		t.Fatalf("failed to load location: %v", err)
	}

	cases := []time.Time{
		time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 2, 23, 59, 59, 999_000_000, time.UTC),
		time.Date(2026, 6, 15, 14, 30, 0, 0, loc),
	}

	for _, input := range cases {
		got := EndOfDay(input)
		y, m, d := input.Date()
		if gy, gm, gd := got.Date(); gy != y || gm != m || gd != d {
			t.Errorf("EndOfDay(%v) moved to another day: %v", input, got)
		}
		if got.Hour() != 23 || got.Minute() != 59 || got.Second() != 59 {
			t.Errorf("EndOfDay(%v) = %v, want 23:59:59", input, got)
		}
		if got.Nanosecond() != 999_000_000 {
			t.Errorf("EndOfDay(%v) nanoseconds = %d, want 999ms", input, got.Nanosecond())
		}
		if got.Location() != input.Location() {
			t.Errorf("EndOfDay(%v) changed location to %v", input, got.Location())
		}
		if got.Before(input) {
			t.Errorf("EndOfDay(%v) = %v is before its input", input, got)
		}
	}
}

func TestSessionExpired(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	session := AttendanceSession{ExpiresAt: EndOfDay(now)}

	if session.Expired(now) {
		t.Error("session should be open during its day")
	}
	if session.Expired(session.ExpiresAt) {
		t.Error("session should still be open at the exact expiry instant")
	}
	if !session.Expired(session.ExpiresAt.Add(time.Millisecond)) {
		t.Error("session should be expired after end of day")
	}
	if !session.Expired(now.AddDate(0, 0, 1)) {
		t.Error("session should be expired the next day")
	}
}

func TestParseRole(t *testing.T) {
	for _, role := range AllRoles {
		parsed, ok := ParseRole(string(role))
		if !ok || parsed != role {
			t.Errorf("ParseRole(%s) failed", role)
		}
	}
	for _, invalid := range []string{"", "admin", "SUPERUSER", "Admin"} {
		if _, ok := ParseRole(invalid); ok {
			t.Errorf("ParseRole(%q) unexpectedly succeeded", invalid)
		}
	}
}
