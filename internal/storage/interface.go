package storage

import (
	"context"

	"github.com/calebmcg/deadeye/internal/model"
)

// SessionRepository persists sessions. Reads are strongly consistent: a
// session saved as finished is never observed as active afterwards.
type SessionRepository interface {
	SaveSession(ctx context.Context, session *model.Session) error
	GetSession(ctx context.Context, id model.SessionID) (*model.Session, error)

	// TopFinishedByMode returns finished, scored sessions for the given mode
	// ordered by score descending, at most max entries. The relative order of
	// equal scores is backend-defined; callers needing a total order must
	// re-sort.
	TopFinishedByMode(ctx context.Context, mode model.Mode, max int) ([]*model.Session, error)
}

// EventRepository persists per-session shot events. The contract is
// append-only: events are never updated, and the absence of an update method
// is deliberate. EventsForSession returns events in ascending timestamp
// order regardless of insertion order.
type EventRepository interface {
	AppendEvent(ctx context.Context, sessionID model.SessionID, event model.ShotEvent) error
	EventsForSession(ctx context.Context, sessionID model.SessionID) ([]model.ShotEvent, error)
}

// UserRepository persists users
type UserRepository interface {
	SaveUser(ctx context.Context, user *model.User) error
	GetUser(ctx context.Context, id model.UserID) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
}

// Store is the union of the repositories a backend must implement. Services
// depend on the narrow interfaces above; Store exists for wiring.
type Store interface {
	SessionRepository
	EventRepository
	UserRepository
}
