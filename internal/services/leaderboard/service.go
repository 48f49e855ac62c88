package leaderboard

import (
	"context"
	"log/slog"
	"sort"

	"github.com/calebmcg/deadeye/internal/model"
	"github.com/calebmcg/deadeye/internal/storage"
)

// DefaultOverfetchFactor bounds the candidate read at limit × factor before
// per-user dedup. It is a heuristic, not a correctness guarantee: a user
// holding more than factor of the top slots can crowd out lower-ranked users
// in a single fetch.
const DefaultOverfetchFactor = 3

// Service ranks users by their best finished session per mode. It is
// read-only and needs no locking: it only ever observes committed, finished
// sessions.
type Service struct {
	sessions  storage.SessionRepository
	users     storage.UserRepository
	overfetch int
	logger    *slog.Logger
}

// New creates a new LeaderboardService. An overfetch factor below 1 falls
// back to the default.
func New(sessions storage.SessionRepository, users storage.UserRepository, overfetch int, logger *slog.Logger) *Service {
	if overfetch < 1 {
		overfetch = DefaultOverfetchFactor
	}
	return &Service{
		sessions:  sessions,
		users:     users,
		overfetch: overfetch,
		logger:    logger,
	}
}

// Query returns up to limit entries for the given mode: one entry per user,
// each user's best finished session, ordered best-first. Fewer than limit
// qualifying users yield fewer entries, never padding.
//
// Ties on score order by ascending finish time (the earlier best run ranks
// first), then by session id, so repeated identical queries return identical
// results.
func (s *Service) Query(ctx context.Context, mode model.Mode, limit int) ([]model.LeaderboardEntry, error) {
	if limit <= 0 {
		return []model.LeaderboardEntry{}, nil
	}

	candidates, err := s.sessions.TopFinishedByMode(ctx, mode, limit*s.overfetch)
	if err != nil {
		return nil, err
	}

	// The storage contract only orders by score; impose the full total order
	sort.Slice(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if *a.Score != *b.Score {
			return *a.Score > *b.Score
		}
		if !a.FinishedAt.Equal(*b.FinishedAt) {
			return a.FinishedAt.Before(*b.FinishedAt)
		}
		return a.ID < b.ID
	})

	// Keep only the first (best) session per user
	seen := make(map[model.UserID]bool)
	entries := make([]model.LeaderboardEntry, 0, limit)
	for _, session := range candidates {
		if seen[session.UserID] {
			continue
		}
		seen[session.UserID] = true

		owner, err := s.users.GetUser(ctx, session.UserID)
		if err != nil {
			// A session without a resolvable owner can't be displayed
			s.logger.Warn("skipping leaderboard entry with unknown owner",
				slog.String("session_id", string(session.ID)),
				slog.String("user_id", string(session.UserID)),
			)
			continue
		}

		entries = append(entries, model.LeaderboardEntry{
			Rank:       len(entries) + 1,
			SessionID:  session.ID,
			UserID:     session.UserID,
			Email:      owner.Email,
			Mode:       session.Mode,
			Score:      *session.Score,
			Hits:       *session.Hits,
			Misses:     *session.Misses,
			FinishedAt: *session.FinishedAt,
		})
		if len(entries) == limit {
			break
		}
	}

	return entries, nil
}

// Interface for dependency injection
type ServiceInterface interface {
	Query(ctx context.Context, mode model.Mode, limit int) ([]model.LeaderboardEntry, error)
}

var _ ServiceInterface = (*Service)(nil)
