package models

import "time"

type Skill struct {
	ID        int64
	UserID    int64
	Name      string
	XP        int
	CreatedAt time.Time
}

// RatingEntry is one leaderboard row: saved XP plus the XP of the
// user's remaining skills.
type RatingEntry struct {
	UserID   int64
	Username string
	TotalXP  int
}
