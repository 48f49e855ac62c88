package model

import "time"

// SessionID uniquely identifies a session
type SessionID string

// UserID uniquely identifies a user
type UserID string

// Mode is the game variant a session is played under.
// Leaderboards are scoped per mode.
type Mode string

const (
	ModeArcade  Mode = "arcade"
	ModeClassic Mode = "classic"
)

// ParseMode validates a mode string
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeArcade:
		return ModeArcade, nil
	case ModeClassic:
		return ModeClassic, nil
	default:
		return "", ErrInvalidMode
	}
}

// Session represents one play-through from start to finish, scoped to one
// user and one mode.
//
// A session has exactly two states: active (FinishedAt nil) and finished.
// FinishedAt, Score, Hits and Misses are set together, exactly once, when the
// session is finalized, and are immutable afterwards.
type Session struct {
	ID        SessionID
	UserID    UserID
	Mode      Mode
	StartedAt time.Time

	// Finalization fields. All nil while active, all non-nil once finished.
	FinishedAt *time.Time
	Score      *int
	Hits       *int
	Misses     *int
}

// Finished reports whether the session has been finalized
func (s *Session) Finished() bool {
	return s.FinishedAt != nil
}
