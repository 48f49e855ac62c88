package leaderboard

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/calebmcg/deadeye/internal/model"
	"github.com/calebmcg/deadeye/internal/storage/memory"
	"github.com/calebmcg/deadeye/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	service *Service
	ctx     context.Context
	base    time.Time
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.service = New(s.storage, s.storage, DefaultOverfetchFactor, testutil.NopLogger())
	s.ctx = context.Background()
	s.base = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
}

func (s *ServiceSuite) addUser(id model.UserID) {
	err := s.storage.SaveUser(s.ctx, &model.User{ID: id, Email: string(id) + "@example.com", CreatedAt: s.base})
	s.Require().NoError(err)
}

func (s *ServiceSuite) addFinished(id model.SessionID, userID model.UserID, mode model.Mode, score int, finishedAt time.Time) {
	hits, misses := score/10, 0
	err := s.storage.SaveSession(s.ctx, &model.Session{
		ID:         id,
		UserID:     userID,
		Mode:       mode,
		StartedAt:  finishedAt.Add(-time.Minute),
		FinishedAt: &finishedAt,
		Score:      &score,
		Hits:       &hits,
		Misses:     &misses,
	})
	s.Require().NoError(err)
}

func (s *ServiceSuite) TestEmptyLeaderboard() {
	entries, err := s.service.Query(s.ctx, model.ModeArcade, 10)
	s.Require().NoError(err)
	s.Empty(entries)
}

func (s *ServiceSuite) TestOrderedByScoreDescending() {
	for _, u := range []model.UserID{"u1", "u2", "u3"} {
		s.addUser(u)
	}
	s.addFinished("sess-a", "u1", model.ModeArcade, 40, s.base)
	s.addFinished("sess-b", "u2", model.ModeArcade, 90, s.base)
	s.addFinished("sess-c", "u3", model.ModeArcade, 60, s.base)

	entries, err := s.service.Query(s.ctx, model.ModeArcade, 10)
	s.Require().NoError(err)
	s.Require().Len(entries, 3)
	s.Equal([]int{90, 60, 40}, []int{entries[0].Score, entries[1].Score, entries[2].Score})
	s.Equal([]int{1, 2, 3}, []int{entries[0].Rank, entries[1].Rank, entries[2].Rank})
	s.Equal("u2@example.com", entries[0].Email)
}

func (s *ServiceSuite) TestBestSessionPerUser() {
	s.addUser("u1")
	s.addUser("u2")
	s.addFinished("sess-a", "u1", model.ModeArcade, 50, s.base)
	s.addFinished("sess-b", "u1", model.ModeArcade, 80, s.base.Add(time.Hour))
	s.addFinished("sess-c", "u2", model.ModeArcade, 60, s.base)

	entries, err := s.service.Query(s.ctx, model.ModeArcade, 10)
	s.Require().NoError(err)
	s.Require().Len(entries, 2)

	// u1 appears once, with the higher-scoring session
	s.Equal(model.UserID("u1"), entries[0].UserID)
	s.Equal(model.SessionID("sess-b"), entries[0].SessionID)
	s.Equal(80, entries[0].Score)
	s.Equal(model.UserID("u2"), entries[1].UserID)
}

func (s *ServiceSuite) TestScopedToMode() {
	s.addUser("u1")
	s.addUser("u2")
	s.addFinished("sess-a", "u1", model.ModeArcade, 50, s.base)
	s.addFinished("sess-b", "u2", model.ModeClassic, 90, s.base)

	entries, err := s.service.Query(s.ctx, model.ModeArcade, 10)
	s.Require().NoError(err)
	s.Require().Len(entries, 1)
	s.Equal(model.ModeArcade, entries[0].Mode)
	s.Equal(model.UserID("u1"), entries[0].UserID)
}

func (s *ServiceSuite) TestTruncatesToLimit() {
	for i, u := range []model.UserID{"u1", "u2", "u3", "u4"} {
		s.addUser(u)
		s.addFinished(model.SessionID("sess-"+string(u)), u, model.ModeArcade, 10*(i+1), s.base)
	}

	entries, err := s.service.Query(s.ctx, model.ModeArcade, 2)
	s.Require().NoError(err)
	s.Require().Len(entries, 2)
	s.Equal(40, entries[0].Score)
	s.Equal(30, entries[1].Score)
}

func (s *ServiceSuite) TestNeverPads() {
	s.addUser("u1")
	s.addFinished("sess-a", "u1", model.ModeArcade, 50, s.base)

	entries, err := s.service.Query(s.ctx, model.ModeArcade, 10)
	s.Require().NoError(err)
	s.Len(entries, 1)
}

func (s *ServiceSuite) TestTieBreakByFinishTimeThenID() {
	for _, u := range []model.UserID{"u1", "u2", "u3"} {
		s.addUser(u)
	}
	// All equal scores: u2 finished earliest; u1 and u3 tie on time too
	s.addFinished("sess-m", "u1", model.ModeArcade, 50, s.base.Add(time.Hour))
	s.addFinished("sess-b", "u2", model.ModeArcade, 50, s.base)
	s.addFinished("sess-a", "u3", model.ModeArcade, 50, s.base.Add(time.Hour))

	entries, err := s.service.Query(s.ctx, model.ModeArcade, 10)
	s.Require().NoError(err)
	s.Require().Len(entries, 3)
	s.Equal(model.UserID("u2"), entries[0].UserID)
	// Same finish time: session id "sess-a" sorts before "sess-m"
	s.Equal(model.UserID("u3"), entries[1].UserID)
	s.Equal(model.UserID("u1"), entries[2].UserID)
}

func (s *ServiceSuite) TestRepeatedQueryIdentical() {
	for _, u := range []model.UserID{"u1", "u2", "u3"} {
		s.addUser(u)
		s.addFinished(model.SessionID("sess-"+string(u)), u, model.ModeArcade, 50, s.base)
	}

	first, err := s.service.Query(s.ctx, model.ModeArcade, 10)
	s.Require().NoError(err)
	for i := 0; i < 5; i++ {
		again, err := s.service.Query(s.ctx, model.ModeArcade, 10)
		s.Require().NoError(err)
		s.Equal(first, again)
	}
}

func (s *ServiceSuite) TestSkipsEntryWithMissingOwner() {
	s.addUser("u1")
	// u2 has a session but no user record
	s.addFinished("sess-a", "u1", model.ModeArcade, 50, s.base)
	s.addFinished("sess-b", "u2", model.ModeArcade, 90, s.base)

	entries, err := s.service.Query(s.ctx, model.ModeArcade, 10)
	s.Require().NoError(err)
	s.Require().Len(entries, 1)
	s.Equal(model.UserID("u1"), entries[0].UserID)
}

func (s *ServiceSuite) TestZeroLimit() {
	s.addUser("u1")
	s.addFinished("sess-a", "u1", model.ModeArcade, 50, s.base)

	entries, err := s.service.Query(s.ctx, model.ModeArcade, 0)
	s.Require().NoError(err)
	s.Empty(entries)
}
