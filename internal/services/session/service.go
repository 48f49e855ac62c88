package session

import (
	"context"
	"log/slog"
	"sync"

	"github.com/calebmcg/deadeye/internal/dependencies/clock"
	"github.com/calebmcg/deadeye/internal/dependencies/idgen"
	"github.com/calebmcg/deadeye/internal/metrics"
	"github.com/calebmcg/deadeye/internal/model"
	"github.com/calebmcg/deadeye/internal/services/scoring"
	"github.com/calebmcg/deadeye/internal/storage"
)

// Detail is a full session read: the session, its events in ascending
// timestamp order, and the owning user
type Detail struct {
	Session *model.Session
	Events  []model.ShotEvent
	Owner   *model.User
}

// Service owns the session state machine: a session is created active,
// accepts events while active, and is finalized exactly once.
//
// State-changing operations on one session are serialized through a
// per-session mutex, so a finish never races a concurrent event append:
// the late append either lands before the finish snapshots the events or is
// rejected as already finished. Different sessions share no state and
// proceed concurrently.
type Service struct {
	sessions storage.SessionRepository
	events   storage.EventRepository
	users    storage.UserRepository
	scoring  *scoring.Service
	clock    clock.Clock
	idgen    idgen.Generator
	metrics  *metrics.Metrics
	logger   *slog.Logger

	mu    sync.Mutex
	locks map[model.SessionID]*sync.Mutex
}

// New creates a new SessionService
func New(
	sessions storage.SessionRepository,
	events storage.EventRepository,
	users storage.UserRepository,
	scoringService *scoring.Service,
	clk clock.Clock,
	idGen idgen.Generator,
	m *metrics.Metrics,
	logger *slog.Logger,
) *Service {
	return &Service{
		sessions: sessions,
		events:   events,
		users:    users,
		scoring:  scoringService,
		clock:    clk,
		idgen:    idGen,
		metrics:  m,
		logger:   logger,
		locks:    make(map[model.SessionID]*sync.Mutex),
	}
}

// lockSession acquires the mutex for one session id and returns its unlock.
// Lock entries are small and retained for the life of the process.
func (s *Service) lockSession(id model.SessionID) func() {
	s.mu.Lock()
	lock, ok := s.locks[id]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[id] = lock
	}
	s.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}

// Start creates a new active session for the given user and mode
func (s *Service) Start(ctx context.Context, userID model.UserID, mode model.Mode) (*model.Session, error) {
	session := &model.Session{
		ID:        model.SessionID(s.idgen.NewID("sess_")),
		UserID:    userID,
		Mode:      mode,
		StartedAt: s.clock.Now(),
	}

	if err := s.sessions.SaveSession(ctx, session); err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.SessionsStarted.Inc()
	}
	s.logger.Info("session started",
		slog.String("session_id", string(session.ID)),
		slog.String("user_id", string(userID)),
		slog.String("mode", string(mode)),
	)

	return session, nil
}

// RecordEvent appends a shot event to an active session owned by the caller.
// No score is computed here; scoring is deferred entirely to Finish.
func (s *Service) RecordEvent(ctx context.Context, sessionID model.SessionID, callerID model.UserID, event model.ShotEvent) error {
	if err := event.Validate(); err != nil {
		return err
	}

	unlock := s.lockSession(sessionID)
	defer unlock()

	session, err := s.sessions.GetSession(ctx, sessionID)
	if err != nil {
		return err
	}
	// Ownership is enforced here regardless of any request-layer pre-check
	if session.UserID != callerID {
		return model.ErrNotSessionOwner
	}
	if session.Finished() {
		return model.ErrSessionFinished
	}

	if err := s.events.AppendEvent(ctx, sessionID, event); err != nil {
		return err
	}

	if s.metrics != nil {
		s.metrics.EventsRecorded.Inc()
	}
	return nil
}

// Finish finalizes an active session owned by the caller: it snapshots the
// session's events, scores them once, and transitions the session to
// finished. The whole sequence runs under the session's lock, so no event
// can slip in between the snapshot and the state write.
//
// A second Finish on the same session fails with ErrSessionFinished; scores
// are immutable once set. A failed Finish leaves the session active.
func (s *Service) Finish(ctx context.Context, sessionID model.SessionID, callerID model.UserID) (*model.Session, error) {
	unlock := s.lockSession(sessionID)
	defer unlock()

	session, err := s.sessions.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.UserID != callerID {
		return nil, model.ErrNotSessionOwner
	}
	if session.Finished() {
		return nil, model.ErrSessionFinished
	}

	events, err := s.events.EventsForSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	result := s.scoring.ScoreSession(events)

	now := s.clock.Now()
	session.FinishedAt = &now
	session.Score = &result.Score
	session.Hits = &result.Hits
	session.Misses = &result.Misses

	if err := s.sessions.SaveSession(ctx, session); err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.SessionsFinished.Inc()
	}
	s.logger.Info("session finished",
		slog.String("session_id", string(sessionID)),
		slog.String("user_id", string(callerID)),
		slog.Int("score", result.Score),
		slog.Int("hits", result.Hits),
		slog.Int("misses", result.Misses),
	)

	return session, nil
}

// Get returns a session with its ordered events and owner
func (s *Service) Get(ctx context.Context, sessionID model.SessionID) (*Detail, error) {
	session, err := s.sessions.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	events, err := s.events.EventsForSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	owner, err := s.users.GetUser(ctx, session.UserID)
	if err != nil {
		return nil, err
	}

	return &Detail{Session: session, Events: events, Owner: owner}, nil
}

// Interface for dependency injection
type ServiceInterface interface {
	Start(ctx context.Context, userID model.UserID, mode model.Mode) (*model.Session, error)
	RecordEvent(ctx context.Context, sessionID model.SessionID, callerID model.UserID, event model.ShotEvent) error
	Finish(ctx context.Context, sessionID model.SessionID, callerID model.UserID) (*model.Session, error)
	Get(ctx context.Context, sessionID model.SessionID) (*Detail, error)
}

var _ ServiceInterface = (*Service)(nil)
