package factory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/courtside/rallybot/internal/model"
	"github.com/courtside/rallybot/internal/services/schedule"
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

func (s *IntegrationSuite) register(name, nickname string) *model.Player {
	session, err := s.app.AuthService.Register(s.ctx, name, nickname, "password123", model.LevelC)
	s.Require().NoError(err)
	return &session.Player
}

// Test: full game lifecycle from conversational creation to the
// post-game sweep
func (s *IntegrationSuite) TestFullGameLifecycle() {
	captain := s.register("The Captain", "captain")
	alice := s.register("Alice", "alice")
	bob := s.register("Bob", "bob")
	carol := s.register("Carol", "carol")

	adminSession, err := s.app.AuthService.Login(s.ctx, "captain", "password123")
	s.Require().NoError(err)
	s.True(adminSession.Admin)
	conv := adminSession.Token

	// Admin creates a game through the step-by-step conversation
	_, err = s.app.EditFlowController.StartCreate(s.ctx, conv)
	s.Require().NoError(err)
	for _, answer := range []string{"2026-08-01", "18:00", "19:30", "Court 1"} {
		_, err = s.app.EditFlowController.SubmitCreateValue(s.ctx, conv, answer)
		s.Require().NoError(err)
	}
	prompt, err := s.app.EditFlowController.SubmitCreateValue(s.ctx, conv, "2")
	s.Require().NoError(err)
	s.Require().True(prompt.Done)
	gameID := prompt.Game.ID

	// Capacity two: captain and alice make the roster, bob waits
	outcome, _, err := s.app.LedgerController.Admit(s.ctx, gameID, captain.ID)
	s.Require().NoError(err)
	s.Equal(model.OutcomeAdmitted, outcome)

	outcome, aliceReg, err := s.app.LedgerController.Admit(s.ctx, gameID, alice.ID)
	s.Require().NoError(err)
	s.Equal(model.OutcomeAdmitted, outcome)

	outcome, _, err = s.app.LedgerController.Admit(s.ctx, gameID, bob.ID)
	s.Require().NoError(err)
	s.Equal(model.OutcomeWaitlisted, outcome)

	// Admin widens the game through the edit conversation
	_, err = s.app.EditFlowController.StartEdit(s.ctx, conv)
	s.Require().NoError(err)
	_, err = s.app.EditFlowController.SelectGame(s.ctx, conv, gameID)
	s.Require().NoError(err)
	_, err = s.app.EditFlowController.SelectAttribute(s.ctx, conv, "capacity")
	s.Require().NoError(err)
	_, err = s.app.EditFlowController.SubmitValue(s.ctx, conv, "3")
	s.Require().NoError(err)
	summary, err := s.app.EditFlowController.SelectAttribute(s.ctx, conv, "finish")
	s.Require().NoError(err)
	s.True(summary.Done)

	// Carol takes the freed slot directly
	outcome, _, err = s.app.LedgerController.Admit(s.ctx, gameID, carol.ID)
	s.Require().NoError(err)
	s.Equal(model.OutcomeAdmitted, outcome)

	// Alice cancels; bob is promoted off the waitlist
	promotion, err := s.app.LedgerController.Cancel(s.ctx, aliceReg.ID, alice.ID)
	s.Require().NoError(err)
	s.Require().NotNil(promotion)
	s.Equal(bob.ID, promotion.PlayerID)
	s.Require().Len(s.app.Recorder.Promotions, 1)

	roster, err := s.app.LedgerController.Roster(s.ctx, gameID)
	s.Require().NoError(err)
	s.Len(roster.Playing, 3)
	s.Empty(roster.Waitlist)

	// The evening passes; the sweeper closes the game
	s.app.MockClock.Advance(10 * time.Hour)
	s.app.Sweeper.RunNow()

	game, err := s.app.ScheduleController.GetGame(s.ctx, gameID)
	s.Require().NoError(err)
	s.True(game.Finished())

	// A finished game takes no more registrations
	dave := s.register("Dave", "dave")
	_, _, err = s.app.LedgerController.Admit(s.ctx, gameID, dave.ID)
	s.ErrorIs(err, model.ErrGameFinished)
}

// Test: removing a player drops their registrations and frees slots
func (s *IntegrationSuite) TestRemovedPlayerFreesSlot() {
	alice := s.register("Alice", "alice")
	bob := s.register("Bob", "bob")

	game, err := s.app.ScheduleController.CreateGame(s.ctx, gameParams("2026-08-02", 1))
	s.Require().NoError(err)

	_, _, err = s.app.LedgerController.Admit(s.ctx, game.ID, alice.ID)
	s.Require().NoError(err)
	outcome, _, err := s.app.LedgerController.Admit(s.ctx, game.ID, bob.ID)
	s.Require().NoError(err)
	s.Equal(model.OutcomeWaitlisted, outcome)

	s.Require().NoError(s.app.PlayerController.RemovePlayer(s.ctx, alice.ID))

	// Alice's slot is gone with her registrations; bob stays waitlisted
	// until an admin re-runs admission or he re-registers
	roster, err := s.app.LedgerController.Roster(s.ctx, game.ID)
	s.Require().NoError(err)
	for _, entry := range roster.Playing {
		s.NotEqual(alice.ID, entry.Player.ID)
	}

	// Removed members can't log in
	_, err = s.app.AuthService.Login(s.ctx, "alice", "password123")
	s.ErrorIs(err, model.ErrInvalidCredentials)
}

func gameParams(date string, capacity int) schedule.CreateGameParams {
	eventDate, _ := time.Parse(model.DateLayout, date)
	return schedule.CreateGameParams{
		EventDate: eventDate,
		StartTime: "18:00",
		EndTime:   "19:30",
		Venue:     "Court 1",
		Capacity:  capacity,
	}
}
