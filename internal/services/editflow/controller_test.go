package editflow

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/courtside/rallybot/internal/dependencies/mocks"
	"github.com/courtside/rallybot/internal/model"
	"github.com/courtside/rallybot/internal/notify"
	"github.com/courtside/rallybot/internal/services/ledger"
	"github.com/courtside/rallybot/internal/services/schedule"
	sessionmemory "github.com/courtside/rallybot/internal/session/memory"
	storememory "github.com/courtside/rallybot/internal/store/memory"
	"github.com/courtside/rallybot/internal/testutil"
)

const convID = "chat-1"

type ControllerSuite struct {
	suite.Suite
	store      *storememory.Store
	sessions   *sessionmemory.Store
	recorder   *notify.Recorder
	ledger     *ledger.Controller
	controller *Controller
	ctx        context.Context
}

func TestControllerSuite(t *testing.T) {
	suite.Run(t, new(ControllerSuite))
}

func (s *ControllerSuite) SetupTest() {
	s.store = storememory.New()
	s.sessions = sessionmemory.New()
	s.recorder = &notify.Recorder{}
	clk := mocks.NewMockClock(time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC))
	logger := testutil.NopLogger()
	s.ledger = ledger.NewController(s.store, s.recorder, clk, logger)
	scheduleController := schedule.NewController(s.store, s.ledger, s.recorder, clk, logger)
	s.controller = NewController(s.sessions, scheduleController, s.ledger, s.recorder, clk, logger)
	s.ctx = context.Background()
}

func (s *ControllerSuite) createGame(date string, capacity int) *model.Game {
	eventDate, err := time.Parse(model.DateLayout, date)
	s.Require().NoError(err)
	game := &model.Game{
		EventDate: eventDate,
		StartTime: "18:00",
		EndTime:   "19:30",
		Venue:     "Court 1",
		Capacity:  capacity,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	s.Require().NoError(s.store.CreateGame(s.ctx, game))
	return game
}

func (s *ControllerSuite) createPlayer(nickname string) *model.Player {
	player := &model.Player{
		Name: "Player " + nickname, Nickname: nickname,
		Level: model.LevelC, Active: true,
	}
	s.Require().NoError(s.store.CreatePlayer(s.ctx, player))
	return player
}

// Edit flow

func (s *ControllerSuite) TestStartEditListsUnfinishedGames() {
	game := s.createGame("2026-09-01", 4)

	prompt, err := s.controller.StartEdit(s.ctx, convID)
	s.Require().NoError(err)
	s.Equal(model.EditPhaseSelectingGame, prompt.Phase)
	s.Require().Len(prompt.Games, 1)
	s.Equal(game.ID, prompt.Games[0].ID)
}

func (s *ControllerSuite) TestSelectGameMovesToAttributeSelection() {
	game := s.createGame("2026-09-01", 4)
	_, err := s.controller.StartEdit(s.ctx, convID)
	s.Require().NoError(err)

	prompt, err := s.controller.SelectGame(s.ctx, convID, game.ID)
	s.Require().NoError(err)
	s.Equal(model.EditPhaseSelectingAttribute, prompt.Phase)
	s.Equal(model.GameAttributes(), prompt.Attributes)

	state, err := s.sessions.GetEditState(s.ctx, convID)
	s.Require().NoError(err)
	s.Equal(game.ID, state.GameID)
}

func (s *ControllerSuite) TestSelectGameWithoutSession() {
	game := s.createGame("2026-09-01", 4)
	_, err := s.controller.SelectGame(s.ctx, convID, game.ID)
	s.ErrorIs(err, model.ErrSessionExpired)
}

func (s *ControllerSuite) TestSelectFinishedGameRejected() {
	game := s.createGame("2026-09-01", 4)
	now := time.Now()
	game.FinishedAt = &now
	s.Require().NoError(s.store.UpdateGame(s.ctx, game))

	_, err := s.controller.StartEdit(s.ctx, convID)
	s.Require().NoError(err)
	_, err = s.controller.SelectGame(s.ctx, convID, game.ID)
	s.ErrorIs(err, model.ErrGameFinished)
}

func (s *ControllerSuite) TestInvalidAttributeKeepsSession() {
	game := s.createGame("2026-09-01", 4)
	s.startEditOn(game)

	_, err := s.controller.SelectAttribute(s.ctx, convID, "colour")
	s.True(model.IsValidation(err))

	state, stateErr := s.sessions.GetEditState(s.ctx, convID)
	s.Require().NoError(stateErr)
	s.Equal(model.EditPhaseSelectingAttribute, state.Phase)
}

func (s *ControllerSuite) TestInvalidValueStaysAwaitingWithoutMutating() {
	game := s.createGame("2026-09-01", 4)
	s.startEditOn(game)

	_, err := s.controller.SelectAttribute(s.ctx, convID, "capacity")
	s.Require().NoError(err)

	_, err = s.controller.SubmitValue(s.ctx, convID, "plenty")
	s.True(model.IsValidation(err))

	state, stateErr := s.sessions.GetEditState(s.ctx, convID)
	s.Require().NoError(stateErr)
	s.Equal(model.EditPhaseAwaitingValue, state.Phase)
	s.Equal(model.GameAttributeCapacity, state.Attribute)

	stored, getErr := s.store.GetGame(s.ctx, game.ID)
	s.Require().NoError(getErr)
	s.Equal(4, stored.Capacity)
}

func (s *ControllerSuite) TestValidValueCommitsAndLoops() {
	game := s.createGame("2026-09-01", 4)
	s.startEditOn(game)

	_, err := s.controller.SelectAttribute(s.ctx, convID, "venue")
	s.Require().NoError(err)

	prompt, err := s.controller.SubmitValue(s.ctx, convID, "Court 9")
	s.Require().NoError(err)
	s.Equal(model.EditPhaseSelectingAttribute, prompt.Phase)
	s.Equal("Court 9", prompt.Game.Venue)

	stored, getErr := s.store.GetGame(s.ctx, game.ID)
	s.Require().NoError(getErr)
	s.Equal("Court 9", stored.Venue)
}

func (s *ControllerSuite) TestVanishedGameExpiresSession() {
	game := s.createGame("2026-09-01", 4)
	s.startEditOn(game)
	_, err := s.controller.SelectAttribute(s.ctx, convID, "venue")
	s.Require().NoError(err)

	s.Require().NoError(s.store.DeleteGame(s.ctx, game.ID))

	_, err = s.controller.SubmitValue(s.ctx, convID, "Court 9")
	s.ErrorIs(err, model.ErrSessionExpired)

	_, err = s.sessions.GetEditState(s.ctx, convID)
	s.ErrorIs(err, model.ErrSessionNotFound)
}

func (s *ControllerSuite) TestCancelKeepsCommittedEdits() {
	game := s.createGame("2026-09-01", 4)
	s.startEditOn(game)
	_, err := s.controller.SelectAttribute(s.ctx, convID, "capacity")
	s.Require().NoError(err)
	_, err = s.controller.SubmitValue(s.ctx, convID, "6")
	s.Require().NoError(err)

	s.Require().NoError(s.controller.CancelEdit(s.ctx, convID))

	_, err = s.sessions.GetEditState(s.ctx, convID)
	s.ErrorIs(err, model.ErrSessionNotFound)

	stored, getErr := s.store.GetGame(s.ctx, game.ID)
	s.Require().NoError(getErr)
	s.Equal(6, stored.Capacity)
}

func (s *ControllerSuite) TestEditScenarioCapacityThenFinish() {
	game := s.createGame("2026-09-01", 2)
	alice := s.createPlayer("alice")
	bob := s.createPlayer("bob")
	_, aliceReg, err := s.ledger.Admit(s.ctx, game.ID, alice.ID)
	s.Require().NoError(err)
	s.Require().NoError(s.ledger.Confirm(s.ctx, aliceReg.ID, alice.ID))
	_, _, err = s.ledger.Admit(s.ctx, game.ID, bob.ID)
	s.Require().NoError(err)

	s.startEditOn(game)
	_, err = s.controller.SelectAttribute(s.ctx, convID, "capacity")
	s.Require().NoError(err)
	_, err = s.controller.SubmitValue(s.ctx, convID, "10")
	s.Require().NoError(err)

	prompt, err := s.controller.SelectAttribute(s.ctx, convID, AttributeFinish)
	s.Require().NoError(err)
	s.True(prompt.Done)
	s.Equal(10, prompt.Game.Capacity)
	s.Require().NotNil(prompt.Summary)
	s.Equal(1, prompt.Summary.ConfirmedCount())
	s.Len(prompt.Summary.Playing, 2)
	s.Empty(prompt.Summary.Waitlist)

	// Summary notification went out and the session is gone
	s.Equal([]model.GameID{game.ID}, s.recorder.Updated)
	_, err = s.sessions.GetEditState(s.ctx, convID)
	s.ErrorIs(err, model.ErrSessionNotFound)
}

// Create flow

func (s *ControllerSuite) TestCreateFlowWalkthrough() {
	prompt, err := s.controller.StartCreate(s.ctx, convID)
	s.Require().NoError(err)
	s.Equal(model.CreateStepEventDate, prompt.Step)

	prompt, err = s.controller.SubmitCreateValue(s.ctx, convID, "2026-09-01")
	s.Require().NoError(err)
	s.Equal(model.CreateStepStartTime, prompt.Step)

	prompt, err = s.controller.SubmitCreateValue(s.ctx, convID, "18:00")
	s.Require().NoError(err)
	s.Equal(model.CreateStepEndTime, prompt.Step)

	prompt, err = s.controller.SubmitCreateValue(s.ctx, convID, "19:30")
	s.Require().NoError(err)
	s.Equal(model.CreateStepVenue, prompt.Step)

	prompt, err = s.controller.SubmitCreateValue(s.ctx, convID, "Court 5")
	s.Require().NoError(err)
	s.Equal(model.CreateStepCapacity, prompt.Step)

	prompt, err = s.controller.SubmitCreateValue(s.ctx, convID, "4")
	s.Require().NoError(err)
	s.True(prompt.Done)
	s.Require().NotNil(prompt.Game)
	s.Equal("Court 5", prompt.Game.Venue)
	s.Equal(4, prompt.Game.Capacity)

	games, err := s.store.ListUnfinishedGames(s.ctx)
	s.Require().NoError(err)
	s.Len(games, 1)

	_, err = s.sessions.GetDraftState(s.ctx, convID)
	s.ErrorIs(err, model.ErrSessionNotFound)
}

func (s *ControllerSuite) TestCreateFlowInvalidValueRepromptsSameStep() {
	_, err := s.controller.StartCreate(s.ctx, convID)
	s.Require().NoError(err)

	_, err = s.controller.SubmitCreateValue(s.ctx, convID, "tomorrow")
	s.True(model.IsValidation(err))

	state, stateErr := s.sessions.GetDraftState(s.ctx, convID)
	s.Require().NoError(stateErr)
	s.Equal(model.CreateStepEventDate, state.Step)
}

func (s *ControllerSuite) TestCreateFlowEndBeforeStartRejected() {
	_, err := s.controller.StartCreate(s.ctx, convID)
	s.Require().NoError(err)
	_, err = s.controller.SubmitCreateValue(s.ctx, convID, "2026-09-01")
	s.Require().NoError(err)
	_, err = s.controller.SubmitCreateValue(s.ctx, convID, "18:00")
	s.Require().NoError(err)

	_, err = s.controller.SubmitCreateValue(s.ctx, convID, "17:00")
	s.True(model.IsValidation(err))

	state, stateErr := s.sessions.GetDraftState(s.ctx, convID)
	s.Require().NoError(stateErr)
	s.Equal(model.CreateStepEndTime, state.Step)
}

func (s *ControllerSuite) TestCancelCreateWritesNothing() {
	_, err := s.controller.StartCreate(s.ctx, convID)
	s.Require().NoError(err)
	_, err = s.controller.SubmitCreateValue(s.ctx, convID, "2026-09-01")
	s.Require().NoError(err)

	s.Require().NoError(s.controller.CancelCreate(s.ctx, convID))

	games, err := s.store.ListUnfinishedGames(s.ctx)
	s.Require().NoError(err)
	s.Empty(games)
}

func (s *ControllerSuite) TestSubmitCreateValueWithoutSession() {
	_, err := s.controller.SubmitCreateValue(s.ctx, convID, "2026-09-01")
	s.ErrorIs(err, model.ErrSessionExpired)
}

func (s *ControllerSuite) startEditOn(game *model.Game) {
	_, err := s.controller.StartEdit(s.ctx, convID)
	s.Require().NoError(err)
	_, err = s.controller.SelectGame(s.ctx, convID, game.ID)
	s.Require().NoError(err)
}
