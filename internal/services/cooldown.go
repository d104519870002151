package services

import (
	"sync"
	"time"
)

const (
	DefaultMaxFastClicks   = 10
	DefaultCooldownSeconds = 120
)

type cooldownRecord struct {
	count        int
	blockedUntil time.Time
}

// CooldownGuard rate-limits XP-granting clicks per user. It is a fixed
// window, not a token bucket: once a user trips the threshold, every
// call is rejected until the window expires, then counting restarts
// from zero. The click that trips the threshold is itself rejected.
type CooldownGuard struct {
	mu        sync.Mutex
	records   map[int64]*cooldownRecord
	maxClicks int
	cooldown  time.Duration
	now       func() time.Time
}

func NewCooldownGuard(maxClicks int, cooldown time.Duration) *CooldownGuard {
	return &CooldownGuard{
		records:   make(map[int64]*cooldownRecord),
		maxClicks: maxClicks,
		cooldown:  cooldown,
		now:       time.Now,
	}
}

func NewCooldownGuardWithClock(maxClicks int, cooldown time.Duration, now func() time.Time) *CooldownGuard {
	g := NewCooldownGuard(maxClicks, cooldown)
	g.now = now
	return g
}

func (g *CooldownGuard) Allow(userID int64) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	record, ok := g.records[userID]
	if !ok {
		record = &cooldownRecord{}
		g.records[userID] = record
	}

	now := g.now()

	if now.Before(record.blockedUntil) {
		return false
	}

	// A block that has run out clears the record; counting restarts.
	if !record.blockedUntil.IsZero() {
		record.count = 0
		record.blockedUntil = time.Time{}
	}

	record.count++

	if record.count > g.maxClicks {
		record.blockedUntil = now.Add(g.cooldown)
		return false
	}

	return true
}
