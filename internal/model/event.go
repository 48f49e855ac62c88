package model

import (
	"fmt"
	"time"
)

// EventKind is a closed enumeration of event types. Each kind carries one
// payload shape; new kinds are added as new variants rather than by loosening
// validation.
type EventKind string

const (
	// EventKindShot is a single hit/miss observation with a distance value
	EventKindShot EventKind = "SHOT"
)

// ShotEvent is a single timestamped shot observation belonging to one
// session. Events are immutable once recorded and are never reordered; the
// semantic order of a session's events is ascending TS, not insertion order.
type ShotEvent struct {
	Kind     EventKind
	TS       time.Time
	Hit      bool
	Distance float64
}

// Validate checks the event against its kind's payload shape
func (e ShotEvent) Validate() error {
	if e.Kind != EventKindShot {
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidEvent, e.Kind)
	}
	if e.TS.IsZero() {
		return fmt.Errorf("%w: missing timestamp", ErrInvalidEvent)
	}
	if e.Distance < 0 {
		return fmt.Errorf("%w: distance must be non-negative", ErrInvalidEvent)
	}
	return nil
}
