package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/courtside/rallybot/internal/model"
	"github.com/courtside/rallybot/internal/store"
)

type StoreSuite struct {
	suite.Suite
	store *Store
	path  string
	ctx   context.Context
}

func TestStoreSuite(t *testing.T) {
	suite.Run(t, new(StoreSuite))
}

func (s *StoreSuite) SetupTest() {
	s.path = filepath.Join(s.T().TempDir(), "rallybot.db")
	st, err := New(s.path)
	s.Require().NoError(err)
	s.store = st
	s.ctx = context.Background()
}

func (s *StoreSuite) TearDownTest() {
	if s.store != nil {
		_ = s.store.Close()
	}
}

func (s *StoreSuite) newPlayer(nickname string) *model.Player {
	player := &model.Player{
		Name:      "Player " + nickname,
		Nickname:  nickname,
		Level:     model.LevelDPlus,
		Active:    true,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	s.Require().NoError(s.store.CreatePlayer(s.ctx, player))
	return player
}

func (s *StoreSuite) newGame(date string, capacity int) *model.Game {
	eventDate, err := time.Parse(model.DateLayout, date)
	s.Require().NoError(err)
	game := &model.Game{
		EventDate: eventDate,
		StartTime: "18:00",
		EndTime:   "19:30",
		Venue:     "Court 1",
		Capacity:  capacity,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	s.Require().NoError(s.store.CreateGame(s.ctx, game))
	return game
}

func (s *StoreSuite) TestPlayerRoundTrip() {
	player := s.newPlayer("alice")
	s.NotZero(player.ID)

	retrieved, err := s.store.GetPlayer(s.ctx, player.ID)
	s.Require().NoError(err)
	s.Equal("alice", retrieved.Nickname)
	s.Equal(model.LevelDPlus, retrieved.Level)
	s.True(retrieved.Active)
}

func (s *StoreSuite) TestNicknameUniqueMapsToSentinel() {
	s.newPlayer("alice")
	err := s.store.CreatePlayer(s.ctx, &model.Player{
		Name: "Other", Nickname: "alice", Level: model.LevelD, Active: true,
		CreatedAt: time.Now(), UpdatedAt: time.Now(),
	})
	s.ErrorIs(err, model.ErrNicknameTaken)
}

func (s *StoreSuite) TestDuplicateRegistrationMapsToSentinel() {
	game := s.newGame("2026-09-01", 4)
	player := s.newPlayer("alice")
	reg := &model.Registration{GameID: game.ID, PlayerID: player.ID, RegisteredAt: time.Now().UTC()}
	s.Require().NoError(s.store.CreateRegistration(s.ctx, reg))

	dup := &model.Registration{GameID: game.ID, PlayerID: player.ID, RegisteredAt: time.Now().UTC()}
	s.ErrorIs(s.store.CreateRegistration(s.ctx, dup), model.ErrAlreadyRegistered)
}

func (s *StoreSuite) TestGameFinishedAtRoundTrip() {
	game := s.newGame("2026-09-01", 4)
	finishedAt := time.Now().UTC().Truncate(time.Second)
	game.FinishedAt = &finishedAt
	game.UpdatedAt = time.Now().UTC()
	s.Require().NoError(s.store.UpdateGame(s.ctx, game))

	retrieved, err := s.store.GetGame(s.ctx, game.ID)
	s.Require().NoError(err)
	s.Require().True(retrieved.Finished())
	s.True(retrieved.FinishedAt.Equal(finishedAt))
}

func (s *StoreSuite) TestListElapsedGames() {
	past := s.newGame("2026-08-01", 4)
	s.newGame("2026-12-01", 4)

	now, err := time.Parse(model.DateLayout, "2026-09-01")
	s.Require().NoError(err)
	games, listErr := s.store.ListElapsedGames(s.ctx, now)
	s.Require().NoError(listErr)
	s.Require().Len(games, 1)
	s.Equal(past.ID, games[0].ID)
}

func (s *StoreSuite) TestEarliestWaitingByInsertionOrder() {
	game := s.newGame("2026-09-01", 1)
	first := s.newPlayer("first")
	second := s.newPlayer("second")

	firstReg := &model.Registration{GameID: game.ID, PlayerID: first.ID, Waiting: true, RegisteredAt: time.Now().UTC()}
	s.Require().NoError(s.store.CreateRegistration(s.ctx, firstReg))
	secondReg := &model.Registration{GameID: game.ID, PlayerID: second.ID, Waiting: true, RegisteredAt: time.Now().UTC()}
	s.Require().NoError(s.store.CreateRegistration(s.ctx, secondReg))

	earliest, err := s.store.EarliestWaiting(s.ctx, game.ID)
	s.Require().NoError(err)
	s.Equal(firstReg.ID, earliest.ID)
}

func (s *StoreSuite) TestDeleteGameCascadesRegistrations() {
	game := s.newGame("2026-09-01", 4)
	player := s.newPlayer("alice")
	reg := &model.Registration{GameID: game.ID, PlayerID: player.ID, RegisteredAt: time.Now().UTC()}
	s.Require().NoError(s.store.CreateRegistration(s.ctx, reg))

	s.Require().NoError(s.store.DeleteGame(s.ctx, game.ID))

	_, err := s.store.GetRegistration(s.ctx, reg.ID)
	s.ErrorIs(err, model.ErrRegistrationNotFound)
}

func (s *StoreSuite) TestWithTxRollsBackOnError() {
	game := s.newGame("2026-09-01", 4)
	player := s.newPlayer("alice")

	boom := errors.New("boom")
	err := s.store.WithTx(s.ctx, func(tx store.Store) error {
		reg := &model.Registration{GameID: game.ID, PlayerID: player.ID, RegisteredAt: time.Now().UTC()}
		if err := tx.CreateRegistration(s.ctx, reg); err != nil {
			return err
		}
		return boom
	})
	s.ErrorIs(err, boom)

	regs, listErr := s.store.ListRegistrationsForGame(s.ctx, game.ID)
	s.Require().NoError(listErr)
	s.Empty(regs)
}

func (s *StoreSuite) TestReopenPreservesData() {
	player := s.newPlayer("alice")
	s.Require().NoError(s.store.Close())

	reopened, err := New(s.path)
	s.Require().NoError(err)
	defer func() { _ = reopened.Close() }()

	retrieved, err := reopened.GetPlayer(s.ctx, player.ID)
	s.Require().NoError(err)
	s.Equal("alice", retrieved.Nickname)
	s.store = nil
}
