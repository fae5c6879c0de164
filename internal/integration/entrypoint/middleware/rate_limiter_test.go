// Package middleware provides HTTP middleware for the API endpoints.
package middleware

import (
	"testing"
	"time"
)

func TestRateLimiterAllow(t *testing.T) {
	t.Run("allows up to the limit within a window", func(t *testing.T) {
		rl := NewRateLimiterWithConfig(3, time.Minute)

		for i := 0; i < 3; i++ {
			if !rl.allow("10.0.0.1") {
				t.Fatalf("expected attempt %d to pass", i+1)
			}
		}
		if rl.allow("10.0.0.1") {
			t.Error("expected the fourth attempt to be blocked")
		}
	})

	t.Run("keys are independent", func(t *testing.T) {
		rl := NewRateLimiterWithConfig(1, time.Minute)

		if !rl.allow("10.0.0.1") {
			t.Fatal("expected the first key to pass")
		}
		if !rl.allow("10.0.0.2") {
			t.Error("expected a different key to pass")
		}
		if rl.allow("10.0.0.1") {
			t.Error("expected the exhausted key to stay blocked")
		}
	})

	t.Run("an expired window resets the count", func(t *testing.T) {
		rl := NewRateLimiterWithConfig(1, 10*time.Millisecond)

		if !rl.allow("10.0.0.1") {
			t.Fatal("expected the first attempt to pass")
		}
		if rl.allow("10.0.0.1") {
			t.Fatal("expected the second attempt to be blocked")
		}

		time.Sleep(20 * time.Millisecond)
		if !rl.allow("10.0.0.1") {
			t.Error("expected a fresh window after expiry")
		}
	})

	t.Run("reset clears all state", func(t *testing.T) {
		rl := NewRateLimiterWithConfig(1, time.Minute)

		rl.allow("10.0.0.1")
		rl.Reset()
		if !rl.allow("10.0.0.1") {
			t.Error("expected the key to pass after reset")
		}
	})
}

func TestRateLimiterCleanup(t *testing.T) {
	rl := NewRateLimiterWithConfig(1, 10*time.Millisecond)

	rl.allow("10.0.0.1")
	rl.allow("10.0.0.2")
	time.Sleep(20 * time.Millisecond)
	rl.allow("10.0.0.3")

	rl.Cleanup()

	rl.mu.Lock()
	defer rl.mu.Unlock()
	if len(rl.entries) != 1 {
		t.Errorf("expected only the live entry to survive, got %d", len(rl.entries))
	}
	if _, ok := rl.entries["10.0.0.3"]; !ok {
		t.Error("expected the live entry to survive")
	}
}
