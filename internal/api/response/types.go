package response

import (
	"time"

	"github.com/calebmcg/deadeye/internal/model"
	"github.com/calebmcg/deadeye/internal/services/session"
)

// Session represents a session in API responses
type Session struct {
	ID         string     `json:"id"`
	UserID     string     `json:"user_id"`
	Mode       string     `json:"mode"`
	StartedAt  time.Time  `json:"started_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
	Score      *int       `json:"score,omitempty"`
	Hits       *int       `json:"hits,omitempty"`
	Misses     *int       `json:"misses,omitempty"`
}

// SessionFromModel converts a model.Session to a response Session
func SessionFromModel(s *model.Session) Session {
	return Session{
		ID:         string(s.ID),
		UserID:     string(s.UserID),
		Mode:       string(s.Mode),
		StartedAt:  s.StartedAt,
		FinishedAt: s.FinishedAt,
		Score:      s.Score,
		Hits:       s.Hits,
		Misses:     s.Misses,
	}
}

// Event represents a shot event in API responses
type Event struct {
	Type     string    `json:"type"`
	TS       time.Time `json:"ts"`
	Hit      bool      `json:"hit"`
	Distance float64   `json:"distance"`
}

// EventFromModel converts a model.ShotEvent to a response Event
func EventFromModel(e model.ShotEvent) Event {
	return Event{
		Type:     string(e.Kind),
		TS:       e.TS,
		Hit:      e.Hit,
		Distance: e.Distance,
	}
}

// SessionDetail is a session with its ordered events and owner email
type SessionDetail struct {
	Session
	Events     []Event `json:"events"`
	OwnerEmail string  `json:"owner_email"`
}

// SessionDetailFromModel converts a session.Detail
func SessionDetailFromModel(d *session.Detail) SessionDetail {
	events := make([]Event, len(d.Events))
	for i, e := range d.Events {
		events[i] = EventFromModel(e)
	}
	return SessionDetail{
		Session:    SessionFromModel(d.Session),
		Events:     events,
		OwnerEmail: d.Owner.Email,
	}
}

// EventAck acknowledges a recorded event
type EventAck struct {
	Accepted bool `json:"accepted"`
}

// TokenResponse is the response for the token endpoint
type TokenResponse struct {
	Token string `json:"token"`
}

// LeaderboardEntry represents one leaderboard row
type LeaderboardEntry struct {
	Rank       int       `json:"rank"`
	SessionID  string    `json:"session_id"`
	UserID     string    `json:"user_id"`
	Email      string    `json:"email"`
	Mode       string    `json:"mode"`
	Score      int       `json:"score"`
	Hits       int       `json:"hits"`
	Misses     int       `json:"misses"`
	FinishedAt time.Time `json:"finished_at"`
}

// LeaderboardEntryFromModel converts a model.LeaderboardEntry
func LeaderboardEntryFromModel(e model.LeaderboardEntry) LeaderboardEntry {
	return LeaderboardEntry{
		Rank:       e.Rank,
		SessionID:  string(e.SessionID),
		UserID:     string(e.UserID),
		Email:      e.Email,
		Mode:       string(e.Mode),
		Score:      e.Score,
		Hits:       e.Hits,
		Misses:     e.Misses,
		FinishedAt: e.FinishedAt,
	}
}

// Leaderboard is the response for the leaderboard endpoint
type Leaderboard struct {
	Mode    string             `json:"mode"`
	Entries []LeaderboardEntry `json:"entries"`
}
