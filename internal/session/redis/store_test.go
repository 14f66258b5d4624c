package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/courtside/rallybot/internal/model"
)

type StoreSuite struct {
	suite.Suite
	mini  *miniredis.Miniredis
	store *Store
	ctx   context.Context
}

func TestStoreSuite(t *testing.T) {
	suite.Run(t, new(StoreSuite))
}

func (s *StoreSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	cfg := DefaultConfig()
	cfg.EditSessionTTL = time.Hour
	cfg.DraftSessionTTL = time.Hour

	s.store = NewWithClient(client, cfg)
	s.ctx = context.Background()
}

func (s *StoreSuite) TearDownTest() {
	if s.store != nil {
		_ = s.store.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

func (s *StoreSuite) TestSaveAndGetEditState() {
	state := &model.GameEditState{
		Phase:     model.EditPhaseAwaitingValue,
		GameID:    7,
		Attribute: model.GameAttributeCapacity,
		StartedAt: time.Now().UTC().Truncate(time.Second),
	}

	err := s.store.SaveEditState(s.ctx, "chat-1", state)
	s.Require().NoError(err)

	retrieved, err := s.store.GetEditState(s.ctx, "chat-1")
	s.Require().NoError(err)
	s.Equal(model.EditPhaseAwaitingValue, retrieved.Phase)
	s.Equal(model.GameID(7), retrieved.GameID)
	s.Equal(model.GameAttributeCapacity, retrieved.Attribute)
}

func (s *StoreSuite) TestGetEditStateNotFound() {
	_, err := s.store.GetEditState(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrSessionNotFound)
}

func (s *StoreSuite) TestDeleteEditState() {
	state := &model.GameEditState{Phase: model.EditPhaseSelectingGame, StartedAt: time.Now()}
	_ = s.store.SaveEditState(s.ctx, "chat-1", state)

	err := s.store.DeleteEditState(s.ctx, "chat-1")
	s.Require().NoError(err)

	_, err = s.store.GetEditState(s.ctx, "chat-1")
	s.ErrorIs(err, model.ErrSessionNotFound)
}

func (s *StoreSuite) TestEditStateTTL() {
	state := &model.GameEditState{Phase: model.EditPhaseSelectingGame, StartedAt: time.Now()}
	_ = s.store.SaveEditState(s.ctx, "chat-1", state)

	ttl := s.mini.TTL(editStateKey("chat-1"))
	s.True(ttl > 0, "Edit state should have TTL")
}

func (s *StoreSuite) TestEditStateExpires() {
	state := &model.GameEditState{Phase: model.EditPhaseSelectingAttribute, GameID: 3, StartedAt: time.Now()}
	_ = s.store.SaveEditState(s.ctx, "chat-1", state)

	s.mini.FastForward(2 * time.Hour)

	_, err := s.store.GetEditState(s.ctx, "chat-1")
	s.ErrorIs(err, model.ErrSessionNotFound)
}

func (s *StoreSuite) TestSaveAndGetDraftState() {
	state := &model.GameDraftState{
		Step:      model.CreateStepVenue,
		EventDate: "2026-09-01",
		StartTime: "18:00",
		EndTime:   "19:30",
		StartedAt: time.Now(),
	}

	err := s.store.SaveDraftState(s.ctx, "chat-2", state)
	s.Require().NoError(err)

	retrieved, err := s.store.GetDraftState(s.ctx, "chat-2")
	s.Require().NoError(err)
	s.Equal(model.CreateStepVenue, retrieved.Step)
	s.Equal("2026-09-01", retrieved.EventDate)
	s.Equal(model.DayTime("18:00"), retrieved.StartTime)
}

func (s *StoreSuite) TestDraftStateIsolatedFromEditState() {
	draft := &model.GameDraftState{Step: model.CreateStepEventDate, StartedAt: time.Now()}
	_ = s.store.SaveDraftState(s.ctx, "chat-1", draft)

	_, err := s.store.GetEditState(s.ctx, "chat-1")
	s.ErrorIs(err, model.ErrSessionNotFound)
}

func (s *StoreSuite) TestDeleteDraftState() {
	draft := &model.GameDraftState{Step: model.CreateStepEventDate, StartedAt: time.Now()}
	_ = s.store.SaveDraftState(s.ctx, "chat-2", draft)

	err := s.store.DeleteDraftState(s.ctx, "chat-2")
	s.Require().NoError(err)

	_, err = s.store.GetDraftState(s.ctx, "chat-2")
	s.ErrorIs(err, model.ErrSessionNotFound)
}
