package player

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/courtside/rallybot/internal/dependencies/mocks"
	"github.com/courtside/rallybot/internal/model"
	"github.com/courtside/rallybot/internal/store/memory"
	"github.com/courtside/rallybot/internal/testutil"
)

type ControllerSuite struct {
	suite.Suite
	store      *memory.Store
	controller *Controller
	ctx        context.Context
}

func TestControllerSuite(t *testing.T) {
	suite.Run(t, new(ControllerSuite))
}

func (s *ControllerSuite) SetupTest() {
	s.store = memory.New()
	clk := mocks.NewMockClock(time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC))
	s.controller = NewController(s.store, clk, testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *ControllerSuite) TestCreatePlayer() {
	player, err := s.controller.CreatePlayer(s.ctx, "Alice Smith", "alice", model.LevelCMinus)
	s.Require().NoError(err)
	s.NotZero(player.ID)
	s.True(player.Active)

	retrieved, err := s.controller.GetByNickname(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(player.ID, retrieved.ID)
}

func (s *ControllerSuite) TestCreatePlayerValidation() {
	_, err := s.controller.CreatePlayer(s.ctx, "", "alice", model.LevelC)
	s.True(model.IsValidation(err))

	_, err = s.controller.CreatePlayer(s.ctx, "Alice", " ", model.LevelC)
	s.True(model.IsValidation(err))

	_, err = s.controller.CreatePlayer(s.ctx, "Alice", "alice", "B+")
	s.True(model.IsValidation(err))
}

func (s *ControllerSuite) TestCreatePlayerNicknameTaken() {
	_, err := s.controller.CreatePlayer(s.ctx, "Alice", "alice", model.LevelC)
	s.Require().NoError(err)

	_, err = s.controller.CreatePlayer(s.ctx, "Alicia", "alice", model.LevelD)
	s.ErrorIs(err, model.ErrNicknameTaken)
}

func (s *ControllerSuite) TestApplyAttribute() {
	player, err := s.controller.CreatePlayer(s.ctx, "Alice", "alice", model.LevelNovice)
	s.Require().NoError(err)

	updated, err := s.controller.ApplyAttribute(s.ctx, player.ID, model.PlayerAttributeLevel, "D+")
	s.Require().NoError(err)
	s.Equal(model.LevelDPlus, updated.Level)

	updated, err = s.controller.ApplyAttribute(s.ctx, player.ID, model.PlayerAttributeName, "Alice Jones")
	s.Require().NoError(err)
	s.Equal("Alice Jones", updated.Name)
}

func (s *ControllerSuite) TestApplyAttributeInvalidLevelLeavesPlayerUntouched() {
	player, err := s.controller.CreatePlayer(s.ctx, "Alice", "alice", model.LevelNovice)
	s.Require().NoError(err)

	_, err = s.controller.ApplyAttribute(s.ctx, player.ID, model.PlayerAttributeLevel, "pro")
	s.True(model.IsValidation(err))

	stored, err := s.store.GetPlayer(s.ctx, player.ID)
	s.Require().NoError(err)
	s.Equal(model.LevelNovice, stored.Level)
}

func (s *ControllerSuite) TestRemovePlayerDropsRegistrations() {
	player, err := s.controller.CreatePlayer(s.ctx, "Alice", "alice", model.LevelC)
	s.Require().NoError(err)

	game := &model.Game{
		EventDate: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		StartTime: "18:00", EndTime: "19:30", Venue: "Court 1", Capacity: 4,
	}
	s.Require().NoError(s.store.CreateGame(s.ctx, game))
	reg := &model.Registration{GameID: game.ID, PlayerID: player.ID, RegisteredAt: time.Now()}
	s.Require().NoError(s.store.CreateRegistration(s.ctx, reg))

	s.Require().NoError(s.controller.RemovePlayer(s.ctx, player.ID))

	stored, err := s.store.GetPlayer(s.ctx, player.ID)
	s.Require().NoError(err)
	s.False(stored.Active)

	regs, err := s.store.ListRegistrationsForPlayer(s.ctx, player.ID)
	s.Require().NoError(err)
	s.Empty(regs)
}
