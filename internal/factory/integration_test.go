package factory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/calebmcg/deadeye/internal/model"
)

type IntegrationSuite struct {
	suite.Suite
	app *TestApp
	ctx context.Context
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationSuite))
}

func (s *IntegrationSuite) SetupTest() {
	s.app = NewTestApp()
	s.ctx = context.Background()
}

func (s *IntegrationSuite) shoot(sessionID model.SessionID, userID model.UserID, hit bool, distance float64) {
	s.T().Helper()
	event := model.ShotEvent{
		Kind:     model.EventKindShot,
		TS:       s.app.MockClock.Now(),
		Hit:      hit,
		Distance: distance,
	}
	s.app.MockClock.Advance(time.Second)
	s.Require().NoError(s.app.SessionService.RecordEvent(s.ctx, sessionID, userID, event))
}

// Test: complete flow from token mint to leaderboard placement
func (s *IntegrationSuite) TestCompleteSessionFlow() {
	// Sign in creates the user
	token, user, err := s.app.AuthService.MintToken(s.ctx, "annie@example.com")
	s.Require().NoError(err)
	s.NotEmpty(token)

	caller, err := s.app.AuthService.ValidateToken(token)
	s.Require().NoError(err)
	s.Equal(user.ID, caller.UserID)

	// Start and play a session
	sess, err := s.app.SessionService.Start(s.ctx, caller.UserID, model.ModeArcade)
	s.Require().NoError(err)
	s.False(sess.Finished())

	s.shoot(sess.ID, caller.UserID, true, 5)
	s.shoot(sess.ID, caller.UserID, true, 15)
	s.shoot(sess.ID, caller.UserID, false, 0)
	s.shoot(sess.ID, caller.UserID, true, 20)

	finished, err := s.app.SessionService.Finish(s.ctx, sess.ID, caller.UserID)
	s.Require().NoError(err)
	// 10 + (10+5) + 0 + (10+5) = 40, no combo completes across the miss
	s.Equal(40, *finished.Score)
	s.Equal(3, *finished.Hits)
	s.Equal(1, *finished.Misses)

	// Session detail includes events in order and owner email
	detail, err := s.app.SessionService.Get(s.ctx, sess.ID)
	s.Require().NoError(err)
	s.Len(detail.Events, 4)
	s.Equal("annie@example.com", detail.Owner.Email)

	// Finished session appears on the leaderboard
	entries, err := s.app.LeaderboardService.Query(s.ctx, model.ModeArcade, 10)
	s.Require().NoError(err)
	s.Require().Len(entries, 1)
	s.Equal(1, entries[0].Rank)
	s.Equal(sess.ID, entries[0].SessionID)
	s.Equal(40, entries[0].Score)
}

// Test: two users compete, best session per user ranks them
func (s *IntegrationSuite) TestLeaderboardAcrossUsers() {
	_, annie, err := s.app.AuthService.MintToken(s.ctx, "annie@example.com")
	s.Require().NoError(err)
	_, frank, err := s.app.AuthService.MintToken(s.ctx, "frank@example.com")
	s.Require().NoError(err)

	play := func(userID model.UserID, hits int) model.SessionID {
		sess, err := s.app.SessionService.Start(s.ctx, userID, model.ModeArcade)
		s.Require().NoError(err)
		for i := 0; i < hits; i++ {
			s.shoot(sess.ID, userID, true, 5)
		}
		_, err = s.app.SessionService.Finish(s.ctx, sess.ID, userID)
		s.Require().NoError(err)
		return sess.ID
	}

	play(annie.ID, 1)          // annie's weak run
	best := play(annie.ID, 5)  // annie's best run
	other := play(frank.ID, 2) // frank's only run

	entries, err := s.app.LeaderboardService.Query(s.ctx, model.ModeArcade, 10)
	s.Require().NoError(err)
	s.Require().Len(entries, 2)

	s.Equal(best, entries[0].SessionID)
	s.Equal(annie.ID, entries[0].UserID)
	s.Equal(other, entries[1].SessionID)
	s.Equal(frank.ID, entries[1].UserID)
}

// Test: minting a token twice for the same email reuses the user
func (s *IntegrationSuite) TestRepeatSignInReusesUser() {
	_, first, err := s.app.AuthService.MintToken(s.ctx, "annie@example.com")
	s.Require().NoError(err)
	_, second, err := s.app.AuthService.MintToken(s.ctx, "annie@example.com")
	s.Require().NoError(err)

	s.Equal(first.ID, second.ID)
}

// Test: a finished session rejects further events and a second finish
func (s *IntegrationSuite) TestFinishedSessionIsImmutable() {
	_, user, err := s.app.AuthService.MintToken(s.ctx, "annie@example.com")
	s.Require().NoError(err)

	sess, err := s.app.SessionService.Start(s.ctx, user.ID, model.ModeClassic)
	s.Require().NoError(err)
	s.shoot(sess.ID, user.ID, true, 5)

	_, err = s.app.SessionService.Finish(s.ctx, sess.ID, user.ID)
	s.Require().NoError(err)

	event := model.ShotEvent{Kind: model.EventKindShot, TS: s.app.MockClock.Now(), Hit: true, Distance: 5}
	s.ErrorIs(s.app.SessionService.RecordEvent(s.ctx, sess.ID, user.ID, event), model.ErrSessionFinished)

	_, err = s.app.SessionService.Finish(s.ctx, sess.ID, user.ID)
	s.ErrorIs(err, model.ErrSessionFinished)
}

// Test: modes keep separate leaderboards
func (s *IntegrationSuite) TestModesAreIndependent() {
	_, user, err := s.app.AuthService.MintToken(s.ctx, "annie@example.com")
	s.Require().NoError(err)

	arcade, err := s.app.SessionService.Start(s.ctx, user.ID, model.ModeArcade)
	s.Require().NoError(err)
	s.shoot(arcade.ID, user.ID, true, 5)
	_, err = s.app.SessionService.Finish(s.ctx, arcade.ID, user.ID)
	s.Require().NoError(err)

	entries, err := s.app.LeaderboardService.Query(s.ctx, model.ModeClassic, 10)
	s.Require().NoError(err)
	s.Empty(entries)
}
