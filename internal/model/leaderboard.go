package model

import "time"

// LeaderboardEntry is a ranked projection of one finished session plus the
// owning user's display identity. Entries are derived on demand and never
// stored.
type LeaderboardEntry struct {
	Rank       int
	SessionID  SessionID
	UserID     UserID
	Email      string
	Mode       Mode
	Score      int
	Hits       int
	Misses     int
	FinishedAt time.Time
}
