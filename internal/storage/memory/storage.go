package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/calebmcg/deadeye/internal/model"
	"github.com/calebmcg/deadeye/internal/storage"
)

// Storage is an in-memory implementation of the storage interfaces
type Storage struct {
	mu sync.RWMutex

	sessions   map[model.SessionID]*model.Session
	events     map[model.SessionID][]model.ShotEvent
	users      map[model.UserID]*model.User
	emailIndex map[string]model.UserID
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		sessions:   make(map[model.SessionID]*model.Session),
		events:     make(map[model.SessionID][]model.ShotEvent),
		users:      make(map[model.UserID]*model.User),
		emailIndex: make(map[string]model.UserID),
	}
}

// Ensure Storage implements the repositories
var _ storage.Store = (*Storage)(nil)

// Session operations

func (s *Storage) SaveSession(ctx context.Context, session *model.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *session
	s.sessions[session.ID] = &copied
	return nil
}

func (s *Storage) GetSession(ctx context.Context, id model.SessionID) (*model.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, model.ErrSessionNotFound
	}
	copied := *session
	return &copied, nil
}

func (s *Storage) TopFinishedByMode(ctx context.Context, mode model.Mode, max int) ([]*model.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var candidates []*model.Session
	for _, session := range s.sessions {
		if session.Mode != mode || !session.Finished() || session.Score == nil {
			continue
		}
		copied := *session
		candidates = append(candidates, &copied)
	}

	// Score descending; id ascending to keep results stable across calls
	sort.Slice(candidates, func(i, j int) bool {
		if *candidates[i].Score != *candidates[j].Score {
			return *candidates[i].Score > *candidates[j].Score
		}
		return candidates[i].ID < candidates[j].ID
	})

	if max >= 0 && len(candidates) > max {
		candidates = candidates[:max]
	}
	return candidates, nil
}

// Event operations

func (s *Storage) AppendEvent(ctx context.Context, sessionID model.SessionID, event model.ShotEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events[sessionID] = append(s.events[sessionID], event)
	return nil
}

func (s *Storage) EventsForSession(ctx context.Context, sessionID model.SessionID) ([]model.ShotEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored := s.events[sessionID]
	events := make([]model.ShotEvent, len(stored))
	copy(events, stored)

	// Semantic order is ascending timestamp, not insertion order. The sort is
	// stable so same-timestamp events keep their insertion order.
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].TS.Before(events[j].TS)
	})
	return events, nil
}

// User operations

func (s *Storage) SaveUser(ctx context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *user
	s.users[user.ID] = &copied
	s.emailIndex[user.Email] = user.ID
	return nil
}

func (s *Storage) GetUser(ctx context.Context, id model.UserID) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.emailIndex[email]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	user, ok := s.users[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}
