package services

import (
	"testing"
	"time"

	"pgregory.net/rapid"
)

func TestCooldownBurstWindow(t *testing.T) {
	now := time.Unix(1000, 0)
	guard := NewCooldownGuardWithClock(10, 120*time.Second, func() time.Time { return now })

	for i := 1; i <= 10; i++ {
		if !guard.Allow(1) {
			t.Fatalf("call %d should be allowed", i)
		}
	}

	// The click that trips the threshold is itself rejected.
	if guard.Allow(1) {
		t.Fatal("11th call should be blocked")
	}

	// Every call inside the window is rejected, however late.
	now = now.Add(119 * time.Second)
	if guard.Allow(1) {
		t.Fatal("call before block expiry should be blocked")
	}

	// First call after expiry counts as 1 again.
	now = now.Add(2 * time.Second)
	for i := 1; i <= 10; i++ {
		if !guard.Allow(1) {
			t.Fatalf("call %d after expiry should be allowed", i)
		}
	}
	if guard.Allow(1) {
		t.Fatal("11th call after expiry should be blocked again")
	}
}

func TestCooldownBlockedCallsDoNotExtend(t *testing.T) {
	now := time.Unix(0, 0)
	guard := NewCooldownGuardWithClock(2, 100*time.Second, func() time.Time { return now })

	guard.Allow(1)
	guard.Allow(1)
	if guard.Allow(1) {
		t.Fatal("3rd call should trip the block")
	}

	// Hammering while blocked must not push blockedUntil forward.
	for i := 0; i < 50; i++ {
		now = now.Add(time.Second)
		if guard.Allow(1) {
			t.Fatalf("call at +%ds should still be blocked", i+1)
		}
	}

	now = now.Add(51 * time.Second) // past the original expiry
	if !guard.Allow(1) {
		t.Fatal("call after original expiry should be allowed")
	}
}

func TestCooldownPerUserIsolation(t *testing.T) {
	guard := NewCooldownGuard(1, time.Minute)

	guard.Allow(1)
	if guard.Allow(1) {
		t.Fatal("user 1 should be blocked")
	}
	if !guard.Allow(2) {
		t.Fatal("user 2 must not inherit user 1's block")
	}
}

func TestCooldownNeverAllowsMoreThanThresholdPerWindow(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		maxClicks := rapid.IntRange(1, 20).Draw(rt, "maxClicks")
		window := time.Duration(rapid.IntRange(10, 300).Draw(rt, "window")) * time.Second

		now := time.Unix(0, 0)
		guard := NewCooldownGuardWithClock(maxClicks, window, func() time.Time { return now })

		calls := rapid.IntRange(1, 200).Draw(rt, "calls")
		allowed := 0
		windowStart := now
		for i := 0; i < calls; i++ {
			if guard.Allow(42) {
				allowed++
			}
			if now.Sub(windowStart) >= window {
				// Conservative bound: within any stretch shorter than the
				// window the guard can never allow more than the threshold.
				windowStart = now
				allowed = 0
			}
			if allowed > maxClicks {
				rt.Fatalf("allowed %d calls with threshold %d inside one window", allowed, maxClicks)
			}
			gap := time.Duration(rapid.IntRange(0, 5).Draw(rt, "gap")) * time.Second
			now = now.Add(gap)
		}
	})
}
