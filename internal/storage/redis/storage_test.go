package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/calebmcg/deadeye/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	s.storage = NewWithClient(client, DefaultConfig())
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

func (s *StorageSuite) finishedSession(id model.SessionID, userID model.UserID, mode model.Mode, score int, finishedAt time.Time) *model.Session {
	hits, misses := score/10, 0
	return &model.Session{
		ID:         id,
		UserID:     userID,
		Mode:       mode,
		StartedAt:  finishedAt.Add(-time.Minute),
		FinishedAt: &finishedAt,
		Score:      &score,
		Hits:       &hits,
		Misses:     &misses,
	}
}

// Session tests

func (s *StorageSuite) TestSaveAndGetSession() {
	session := &model.Session{
		ID:        "sess-1",
		UserID:    "user-1",
		Mode:      model.ModeArcade,
		StartedAt: time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC),
	}

	err := s.storage.SaveSession(s.ctx, session)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetSession(s.ctx, "sess-1")
	s.Require().NoError(err)
	s.Equal(session.ID, retrieved.ID)
	s.Equal(session.UserID, retrieved.UserID)
	s.Equal(session.Mode, retrieved.Mode)
	s.False(retrieved.Finished())
	s.Nil(retrieved.Score)
}

func (s *StorageSuite) TestGetSessionNotFound() {
	_, err := s.storage.GetSession(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrSessionNotFound)
}

func (s *StorageSuite) TestFinishedSessionRoundTrip() {
	finishedAt := time.Date(2024, 6, 1, 11, 0, 0, 0, time.UTC)
	session := s.finishedSession("sess-1", "user-1", model.ModeArcade, 45, finishedAt)

	err := s.storage.SaveSession(s.ctx, session)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetSession(s.ctx, "sess-1")
	s.Require().NoError(err)
	s.Require().True(retrieved.Finished())
	s.Equal(45, *retrieved.Score)
	s.True(finishedAt.Equal(*retrieved.FinishedAt))
}

func (s *StorageSuite) TestActiveSessionNotIndexed() {
	_ = s.storage.SaveSession(s.ctx, &model.Session{ID: "sess-1", UserID: "u1", Mode: model.ModeArcade})

	top, err := s.storage.TopFinishedByMode(s.ctx, model.ModeArcade, 10)
	s.Require().NoError(err)
	s.Empty(top)
}

func (s *StorageSuite) TestTopFinishedByModeOrderedByScore() {
	now := time.Date(2024, 6, 1, 11, 0, 0, 0, time.UTC)
	_ = s.storage.SaveSession(s.ctx, s.finishedSession("sess-a", "u1", model.ModeArcade, 50, now))
	_ = s.storage.SaveSession(s.ctx, s.finishedSession("sess-b", "u2", model.ModeArcade, 80, now))
	_ = s.storage.SaveSession(s.ctx, s.finishedSession("sess-c", "u3", model.ModeClassic, 90, now))

	top, err := s.storage.TopFinishedByMode(s.ctx, model.ModeArcade, 10)
	s.Require().NoError(err)
	s.Require().Len(top, 2)
	s.Equal(model.SessionID("sess-b"), top[0].ID)
	s.Equal(model.SessionID("sess-a"), top[1].ID)
}

func (s *StorageSuite) TestTopFinishedByModeRespectsMax() {
	now := time.Date(2024, 6, 1, 11, 0, 0, 0, time.UTC)
	_ = s.storage.SaveSession(s.ctx, s.finishedSession("sess-a", "u1", model.ModeArcade, 10, now))
	_ = s.storage.SaveSession(s.ctx, s.finishedSession("sess-b", "u2", model.ModeArcade, 20, now))
	_ = s.storage.SaveSession(s.ctx, s.finishedSession("sess-c", "u3", model.ModeArcade, 30, now))

	top, err := s.storage.TopFinishedByMode(s.ctx, model.ModeArcade, 2)
	s.Require().NoError(err)
	s.Require().Len(top, 2)
	s.Equal(30, *top[0].Score)
	s.Equal(20, *top[1].Score)
}

// Event tests

func (s *StorageSuite) TestEventsOrderedByTimestamp() {
	base := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	// Append out of timestamp order; the ZSET score restores ts order
	_ = s.storage.AppendEvent(s.ctx, "sess-1", model.ShotEvent{Kind: model.EventKindShot, TS: base.Add(2 * time.Second), Hit: true, Distance: 5})
	_ = s.storage.AppendEvent(s.ctx, "sess-1", model.ShotEvent{Kind: model.EventKindShot, TS: base, Hit: false, Distance: 3})
	_ = s.storage.AppendEvent(s.ctx, "sess-1", model.ShotEvent{Kind: model.EventKindShot, TS: base.Add(time.Second), Hit: true, Distance: 12})

	events, err := s.storage.EventsForSession(s.ctx, "sess-1")
	s.Require().NoError(err)
	s.Require().Len(events, 3)
	s.True(base.Equal(events[0].TS))
	s.False(events[0].Hit)
	s.True(events[1].Hit)
	s.Equal(12.0, events[2].Distance)
}

func (s *StorageSuite) TestIdenticalEventsBothRetained() {
	ts := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	event := model.ShotEvent{Kind: model.EventKindShot, TS: ts, Hit: true, Distance: 7}

	_ = s.storage.AppendEvent(s.ctx, "sess-1", event)
	_ = s.storage.AppendEvent(s.ctx, "sess-1", event)

	events, err := s.storage.EventsForSession(s.ctx, "sess-1")
	s.Require().NoError(err)
	s.Len(events, 2)
}

func (s *StorageSuite) TestEventsForUnknownSessionEmpty() {
	events, err := s.storage.EventsForSession(s.ctx, "nonexistent")
	s.Require().NoError(err)
	s.Empty(events)
}

// User tests

func (s *StorageSuite) TestSaveAndGetUser() {
	user := &model.User{ID: "user-1", Email: "alice@example.com", CreatedAt: time.Now().UTC()}

	err := s.storage.SaveUser(s.ctx, user)
	s.Require().NoError(err)

	byID, err := s.storage.GetUser(s.ctx, "user-1")
	s.Require().NoError(err)
	s.Equal("alice@example.com", byID.Email)

	byEmail, err := s.storage.GetUserByEmail(s.ctx, "alice@example.com")
	s.Require().NoError(err)
	s.Equal(model.UserID("user-1"), byEmail.ID)
}

func (s *StorageSuite) TestGetUserNotFound() {
	_, err := s.storage.GetUser(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrUserNotFound)

	_, err = s.storage.GetUserByEmail(s.ctx, "nobody@example.com")
	s.ErrorIs(err, model.ErrUserNotFound)
}
