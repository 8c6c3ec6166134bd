package api

import (
	"testing"
	"time"

	"golang.org/x/time/rate"
)

func TestLimiterSetSeparatesKeys(t *testing.T) {
	s := newLimiterSet(rate.Every(time.Minute), 2, time.Hour)
	now := time.Now()

	if !s.allow("user:a", now) || !s.allow("user:a", now) {
		t.Fatalf("burst of 2 should pass")
	}
	if s.allow("user:a", now) {
		t.Fatalf("third request inside the window should be throttled")
	}
	if !s.allow("user:b", now) {
		t.Fatalf("another key must have its own bucket")
	}
}

func TestLimiterSetForgetsIdleKeys(t *testing.T) {
	s := newLimiterSet(rate.Every(time.Hour), 1, time.Minute)
	now := time.Now()

	s.allow("user:a", now)
	s.allow("user:b", now.Add(2*time.Minute))
	if _, ok := s.entries["user:a"]; ok {
		t.Fatalf("idle key should have been swept")
	}
}
