package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/calebmcg/deadeye/internal/model"
	"github.com/calebmcg/deadeye/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interfaces.
//
// Sessions and users are stored as JSON values. Events live in a per-session
// ZSET scored by event timestamp, so an ascending range read returns them in
// ascending-timestamp order regardless of append order. Finished sessions are
// additionally indexed in a per-mode ZSET scored by session score, which
// backs the leaderboard candidate reads.
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{client: client, cfg: cfg}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{client: client, cfg: cfg}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the repositories
var _ storage.Store = (*Storage)(nil)

// Session operations

func (s *Storage) SaveSession(ctx context.Context, session *model.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}

	if !session.Finished() || session.Score == nil {
		return s.client.Set(ctx, sessionKey(session.ID), data, 0).Err()
	}

	// Finished sessions also join the per-mode score index; pipeline keeps
	// the value and index writes together.
	pipe := s.client.Pipeline()
	pipe.Set(ctx, sessionKey(session.ID), data, 0)
	pipe.ZAdd(ctx, modeIndexKey(session.Mode), redis.Z{
		Score:  float64(*session.Score),
		Member: string(session.ID),
	})
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetSession(ctx context.Context, id model.SessionID) (*model.Session, error) {
	data, err := s.client.Get(ctx, sessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrSessionNotFound
		}
		return nil, err
	}

	var session model.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *Storage) TopFinishedByMode(ctx context.Context, mode model.Mode, max int) ([]*model.Session, error) {
	if max == 0 {
		return []*model.Session{}, nil
	}

	stop := int64(max - 1)
	if max < 0 {
		stop = -1
	}

	ids, err := s.client.ZRevRange(ctx, modeIndexKey(mode), 0, stop).Result()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []*model.Session{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = sessionKey(model.SessionID(id))
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	sessions := make([]*model.Session, 0, len(values))
	for _, val := range values {
		if val == nil {
			continue // Index entry without a value; skip
		}
		var session model.Session
		if err := json.Unmarshal([]byte(val.(string)), &session); err != nil {
			continue
		}
		sessions = append(sessions, &session)
	}
	return sessions, nil
}

// Event operations

// eventRecord is the stored form of a shot event. Seq makes every ZSET
// member unique, so identical shots recorded at the same timestamp are both
// retained.
type eventRecord struct {
	Seq      int64           `json:"seq"`
	Kind     model.EventKind `json:"kind"`
	TS       time.Time       `json:"ts"`
	Hit      bool            `json:"hit"`
	Distance float64         `json:"distance"`
}

func (s *Storage) AppendEvent(ctx context.Context, sessionID model.SessionID, event model.ShotEvent) error {
	seq, err := s.client.Incr(ctx, eventSeqKey(sessionID)).Result()
	if err != nil {
		return err
	}

	data, err := json.Marshal(eventRecord{
		Seq:      seq,
		Kind:     event.Kind,
		TS:       event.TS,
		Hit:      event.Hit,
		Distance: event.Distance,
	})
	if err != nil {
		return err
	}

	return s.client.ZAdd(ctx, eventsKey(sessionID), redis.Z{
		Score:  float64(event.TS.UnixNano()),
		Member: string(data),
	}).Err()
}

func (s *Storage) EventsForSession(ctx context.Context, sessionID model.SessionID) ([]model.ShotEvent, error) {
	members, err := s.client.ZRange(ctx, eventsKey(sessionID), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	events := make([]model.ShotEvent, 0, len(members))
	for _, member := range members {
		var rec eventRecord
		if err := json.Unmarshal([]byte(member), &rec); err != nil {
			continue
		}
		events = append(events, model.ShotEvent{
			Kind:     rec.Kind,
			TS:       rec.TS,
			Hit:      rec.Hit,
			Distance: rec.Distance,
		})
	}
	return events, nil
}

// User operations

func (s *Storage) SaveUser(ctx context.Context, user *model.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}

	// Pipeline keeps the value and email index writes together
	pipe := s.client.Pipeline()
	pipe.Set(ctx, userKey(user.ID), data, 0)
	pipe.Set(ctx, emailIndexKey(user.Email), string(user.ID), 0)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetUser(ctx context.Context, id model.UserID) (*model.User, error) {
	data, err := s.client.Get(ctx, userKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}

	var user model.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	id, err := s.client.Get(ctx, emailIndexKey(email)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}

	return s.GetUser(ctx, model.UserID(id))
}
