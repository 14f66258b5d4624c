package ledger

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/courtside/rallybot/internal/dependencies/mocks"
	"github.com/courtside/rallybot/internal/model"
	"github.com/courtside/rallybot/internal/notify"
	"github.com/courtside/rallybot/internal/store/memory"
	"github.com/courtside/rallybot/internal/testutil"
)

type ControllerSuite struct {
	suite.Suite
	store      *memory.Store
	recorder   *notify.Recorder
	clock      *mocks.MockClock
	controller *Controller
	ctx        context.Context
}

func TestControllerSuite(t *testing.T) {
	suite.Run(t, new(ControllerSuite))
}

func (s *ControllerSuite) SetupTest() {
	s.store = memory.New()
	s.recorder = &notify.Recorder{}
	s.clock = mocks.NewMockClock(time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC))
	s.controller = NewController(s.store, s.recorder, s.clock, testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *ControllerSuite) createPlayer(nickname string) *model.Player {
	player := &model.Player{
		Name:      "Player " + nickname,
		Nickname:  nickname,
		Level:     model.LevelC,
		Active:    true,
		CreatedAt: s.clock.Now(),
		UpdatedAt: s.clock.Now(),
	}
	s.Require().NoError(s.store.CreatePlayer(s.ctx, player))
	return player
}

func (s *ControllerSuite) createGame(capacity int) *model.Game {
	game := &model.Game{
		EventDate: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		StartTime: "18:00",
		EndTime:   "19:30",
		Venue:     "Court 1",
		Capacity:  capacity,
		CreatedAt: s.clock.Now(),
		UpdatedAt: s.clock.Now(),
	}
	s.Require().NoError(s.store.CreateGame(s.ctx, game))
	return game
}

func (s *ControllerSuite) rosterCount(gameID model.GameID) int {
	count, err := s.store.CountRosterRegistrations(s.ctx, gameID)
	s.Require().NoError(err)
	return count
}

// Admission

func (s *ControllerSuite) TestAdmitWithinCapacity() {
	game := s.createGame(2)
	player := s.createPlayer("alice")

	outcome, reg, err := s.controller.Admit(s.ctx, game.ID, player.ID)
	s.Require().NoError(err)
	s.Equal(model.OutcomeAdmitted, outcome)
	s.False(reg.Waiting)
	s.NotZero(reg.ID)
}

func (s *ControllerSuite) TestAdmitAtCapacityWaitlists() {
	game := s.createGame(1)
	s.mustAdmit(game.ID, s.createPlayer("alice").ID)

	outcome, reg, err := s.controller.Admit(s.ctx, game.ID, s.createPlayer("bob").ID)
	s.Require().NoError(err)
	s.Equal(model.OutcomeWaitlisted, outcome)
	s.True(reg.Waiting)
	s.Equal(1, s.rosterCount(game.ID))
}

func (s *ControllerSuite) TestAdmitDuplicateRejected() {
	game := s.createGame(2)
	player := s.createPlayer("alice")
	s.mustAdmit(game.ID, player.ID)

	_, _, err := s.controller.Admit(s.ctx, game.ID, player.ID)
	s.ErrorIs(err, model.ErrAlreadyRegistered)

	regs, listErr := s.store.ListRegistrationsForGame(s.ctx, game.ID)
	s.Require().NoError(listErr)
	s.Len(regs, 1)
}

func (s *ControllerSuite) TestAdmitFinishedGameRejected() {
	game := s.createGame(4)
	finishedAt := s.clock.Now()
	game.FinishedAt = &finishedAt
	s.Require().NoError(s.store.UpdateGame(s.ctx, game))

	_, _, err := s.controller.Admit(s.ctx, game.ID, s.createPlayer("alice").ID)
	s.ErrorIs(err, model.ErrGameFinished)

	regs, listErr := s.store.ListRegistrationsForGame(s.ctx, game.ID)
	s.Require().NoError(listErr)
	s.Empty(regs)
}

func (s *ControllerSuite) TestAdmitInactivePlayerRejected() {
	game := s.createGame(4)
	player := s.createPlayer("alice")
	player.Active = false
	s.Require().NoError(s.store.UpdatePlayer(s.ctx, player))

	_, _, err := s.controller.Admit(s.ctx, game.ID, player.ID)
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *ControllerSuite) TestAdmitUnknownGame() {
	player := s.createPlayer("alice")
	_, _, err := s.controller.Admit(s.ctx, 404, player.ID)
	s.ErrorIs(err, model.ErrGameNotFound)
}

// Confirmation and swap

func (s *ControllerSuite) TestConfirmOwnRegistration() {
	game := s.createGame(2)
	player := s.createPlayer("alice")
	reg := s.mustAdmit(game.ID, player.ID)

	s.Require().NoError(s.controller.Confirm(s.ctx, reg.ID, player.ID))

	updated, err := s.store.GetRegistration(s.ctx, reg.ID)
	s.Require().NoError(err)
	s.True(updated.Confirmed)
	s.False(updated.Waiting)
}

func (s *ControllerSuite) TestConfirmForeignRegistrationReadsAsMissing() {
	game := s.createGame(2)
	owner := s.createPlayer("alice")
	other := s.createPlayer("bob")
	reg := s.mustAdmit(game.ID, owner.ID)

	err := s.controller.Confirm(s.ctx, reg.ID, other.ID)
	s.ErrorIs(err, model.ErrRegistrationNotFound)
}

func (s *ControllerSuite) TestRequestSwapRequiresConfirmation() {
	game := s.createGame(2)
	player := s.createPlayer("alice")
	reg := s.mustAdmit(game.ID, player.ID)

	s.ErrorIs(s.controller.RequestSwap(s.ctx, reg.ID, player.ID), model.ErrNotConfirmed)

	s.Require().NoError(s.controller.Confirm(s.ctx, reg.ID, player.ID))
	s.Require().NoError(s.controller.RequestSwap(s.ctx, reg.ID, player.ID))

	updated, err := s.store.GetRegistration(s.ctx, reg.ID)
	s.Require().NoError(err)
	s.True(updated.SwapRequested)
	s.False(updated.Waiting)
}

func (s *ControllerSuite) TestRequestSwapRejectedOnWaitlist() {
	game := s.createGame(1)
	s.mustAdmit(game.ID, s.createPlayer("alice").ID)
	bob := s.createPlayer("bob")
	reg := s.mustAdmit(game.ID, bob.ID)
	s.Require().True(reg.Waiting)

	s.ErrorIs(s.controller.RequestSwap(s.ctx, reg.ID, bob.ID), model.ErrOnWaitlist)
}

// Cancellation and promotion

func (s *ControllerSuite) TestCancelRosterPromotesEarliestWaiting() {
	game := s.createGame(1)
	alice := s.createPlayer("alice")
	bob := s.createPlayer("bob")
	carol := s.createPlayer("carol")

	aliceReg := s.mustAdmit(game.ID, alice.ID)
	bobReg := s.mustAdmit(game.ID, bob.ID)
	carolReg := s.mustAdmit(game.ID, carol.ID)
	s.Require().True(bobReg.Waiting)
	s.Require().True(carolReg.Waiting)

	promotion, err := s.controller.Cancel(s.ctx, aliceReg.ID, alice.ID)
	s.Require().NoError(err)
	s.Require().NotNil(promotion)
	s.Equal(bob.ID, promotion.PlayerID)

	promoted, err := s.store.GetRegistration(s.ctx, bobReg.ID)
	s.Require().NoError(err)
	s.False(promoted.Waiting)

	stillWaiting, err := s.store.GetRegistration(s.ctx, carolReg.ID)
	s.Require().NoError(err)
	s.True(stillWaiting.Waiting)

	s.Require().Len(s.recorder.Promotions, 1)
	s.Equal(bob.ID, s.recorder.Promotions[0].PlayerID)
}

func (s *ControllerSuite) TestCancelRosterWithoutWaitersPromotesNobody() {
	game := s.createGame(2)
	alice := s.createPlayer("alice")
	reg := s.mustAdmit(game.ID, alice.ID)

	promotion, err := s.controller.Cancel(s.ctx, reg.ID, alice.ID)
	s.Require().NoError(err)
	s.Nil(promotion)
	s.Empty(s.recorder.Promotions)
}

func (s *ControllerSuite) TestCancelWaitingNeverPromotes() {
	game := s.createGame(1)
	s.mustAdmit(game.ID, s.createPlayer("alice").ID)
	bob := s.createPlayer("bob")
	carol := s.createPlayer("carol")
	bobReg := s.mustAdmit(game.ID, bob.ID)
	carolReg := s.mustAdmit(game.ID, carol.ID)

	promotion, err := s.controller.Cancel(s.ctx, bobReg.ID, bob.ID)
	s.Require().NoError(err)
	s.Nil(promotion)

	stillWaiting, err := s.store.GetRegistration(s.ctx, carolReg.ID)
	s.Require().NoError(err)
	s.True(stillWaiting.Waiting)
	s.Equal(1, s.rosterCount(game.ID))
}

func (s *ControllerSuite) TestCancelForeignRegistrationReadsAsMissing() {
	game := s.createGame(2)
	alice := s.createPlayer("alice")
	bob := s.createPlayer("bob")
	reg := s.mustAdmit(game.ID, alice.ID)

	_, err := s.controller.Cancel(s.ctx, reg.ID, bob.ID)
	s.ErrorIs(err, model.ErrRegistrationNotFound)
}

func (s *ControllerSuite) TestRosterNeverExceedsCapacity() {
	game := s.createGame(2)
	players := make([]*model.Player, 5)
	regs := make([]*model.Registration, 5)
	for i, nick := range []string{"p1", "p2", "p3", "p4", "p5"} {
		players[i] = s.createPlayer(nick)
		regs[i] = s.mustAdmit(game.ID, players[i].ID)
		s.LessOrEqual(s.rosterCount(game.ID), game.Capacity)
	}
	for i := range players {
		_, err := s.controller.Cancel(s.ctx, regs[i].ID, players[i].ID)
		s.Require().NoError(err)
		s.LessOrEqual(s.rosterCount(game.ID), game.Capacity)
	}
	s.Zero(s.rosterCount(game.ID))
}

func (s *ControllerSuite) TestConcurrentAdmissionsForLastSlot() {
	game := s.createGame(1)
	players := make([]*model.Player, 8)
	for i, nick := range []string{"c1", "c2", "c3", "c4", "c5", "c6", "c7", "c8"} {
		players[i] = s.createPlayer(nick)
	}

	outcomes := make(chan model.AdmissionOutcome, len(players))
	var wg sync.WaitGroup
	for _, p := range players {
		wg.Add(1)
		go func(id model.PlayerID) {
			defer wg.Done()
			outcome, _, err := s.controller.Admit(s.ctx, game.ID, id)
			if err == nil {
				outcomes <- outcome
			}
		}(p.ID)
	}
	wg.Wait()
	close(outcomes)

	admitted := 0
	for outcome := range outcomes {
		if outcome == model.OutcomeAdmitted {
			admitted++
		}
	}
	s.Equal(1, admitted)
	s.Equal(1, s.rosterCount(game.ID))
}

// Admin variants

func (s *ControllerSuite) TestAdminAdmitByNickname() {
	game := s.createGame(2)
	s.createPlayer("alice")

	outcome, reg, err := s.controller.AdminAdmit(s.ctx, game.ID, "alice")
	s.Require().NoError(err)
	s.Equal(model.OutcomeAdmitted, outcome)
	s.False(reg.Waiting)
}

func (s *ControllerSuite) TestAdminAdmitUnknownNickname() {
	game := s.createGame(2)
	_, _, err := s.controller.AdminAdmit(s.ctx, game.ID, "nobody")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *ControllerSuite) TestAdminRemovePromotes() {
	game := s.createGame(1)
	alice := s.createPlayer("alice")
	bob := s.createPlayer("bob")
	s.mustAdmit(game.ID, alice.ID)
	s.mustAdmit(game.ID, bob.ID)

	promotion, err := s.controller.AdminRemove(s.ctx, game.ID, alice.ID)
	s.Require().NoError(err)
	s.Require().NotNil(promotion)
	s.Equal(bob.ID, promotion.PlayerID)
}

// Views

func (s *ControllerSuite) TestScenarioCapacityTwo() {
	game := s.createGame(2)
	p1 := s.createPlayer("p1")
	p2 := s.createPlayer("p2")
	p3 := s.createPlayer("p3")

	out1, reg1, err := s.controller.Admit(s.ctx, game.ID, p1.ID)
	s.Require().NoError(err)
	s.Equal(model.OutcomeAdmitted, out1)
	out2, _, err := s.controller.Admit(s.ctx, game.ID, p2.ID)
	s.Require().NoError(err)
	s.Equal(model.OutcomeAdmitted, out2)
	out3, _, err := s.controller.Admit(s.ctx, game.ID, p3.ID)
	s.Require().NoError(err)
	s.Equal(model.OutcomeWaitlisted, out3)

	promotion, err := s.controller.Cancel(s.ctx, reg1.ID, p1.ID)
	s.Require().NoError(err)
	s.Require().NotNil(promotion)
	s.Equal(p3.ID, promotion.PlayerID)

	roster, err := s.controller.Roster(s.ctx, game.ID)
	s.Require().NoError(err)
	s.Require().Len(roster.Playing, 2)
	s.Equal(p2.ID, roster.Playing[0].Player.ID)
	s.Equal(p3.ID, roster.Playing[1].Player.ID)
	s.Empty(roster.Waitlist)
}

func (s *ControllerSuite) TestRegistrationsForPlayer() {
	game1 := s.createGame(2)
	game2 := s.createGame(2)
	alice := s.createPlayer("alice")
	s.mustAdmit(game1.ID, alice.ID)
	s.mustAdmit(game2.ID, alice.ID)

	regs, err := s.controller.Registrations(s.ctx, alice.ID)
	s.Require().NoError(err)
	s.Require().Len(regs, 2)
	s.Equal(game1.ID, regs[0].Game.ID)
	s.Equal(game2.ID, regs[1].Game.ID)
}

func (s *ControllerSuite) mustAdmit(gameID model.GameID, playerID model.PlayerID) *model.Registration {
	_, reg, err := s.controller.Admit(s.ctx, gameID, playerID)
	s.Require().NoError(err)
	return reg
}
