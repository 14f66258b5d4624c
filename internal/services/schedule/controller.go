package schedule

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/courtside/rallybot/internal/dependencies/clock"
	"github.com/courtside/rallybot/internal/model"
	"github.com/courtside/rallybot/internal/notify"
	"github.com/courtside/rallybot/internal/services/ledger"
	"github.com/courtside/rallybot/internal/store"
)

// Controller manages the game calendar: creation, editing, removal,
// announcements and the end-of-game sweep.
type Controller struct {
	store    store.Store
	ledger   ledger.ControllerInterface
	notifier notify.Notifier
	clock    clock.Clock
	logger   *slog.Logger
}

// NewController creates a new schedule controller
func NewController(
	st store.Store,
	ledgerController ledger.ControllerInterface,
	notifier notify.Notifier,
	clk clock.Clock,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		store:    st,
		ledger:   ledgerController,
		notifier: notifier,
		clock:    clk,
		logger:   logger,
	}
}

// CreateGameParams are the validated fields of a new game
type CreateGameParams struct {
	EventDate time.Time
	StartTime model.DayTime
	EndTime   model.DayTime
	Venue     string
	Capacity  int
}

// CreateGame validates params and persists a new open game
func (c *Controller) CreateGame(ctx context.Context, params CreateGameParams) (*model.Game, error) {
	if strings.TrimSpace(params.Venue) == "" {
		return nil, model.NewValidationError("venue", "must not be empty")
	}
	if params.Capacity <= 0 {
		return nil, model.NewValidationError("capacity", "must be a positive integer")
	}
	if string(params.EndTime) <= string(params.StartTime) {
		return nil, model.NewValidationError("end_time", "must be after start_time")
	}

	now := c.clock.Now()
	game := &model.Game{
		EventDate: params.EventDate,
		StartTime: params.StartTime,
		EndTime:   params.EndTime,
		Venue:     strings.TrimSpace(params.Venue),
		Capacity:  params.Capacity,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := c.store.CreateGame(ctx, game); err != nil {
		return nil, err
	}
	c.logger.InfoContext(ctx, "game created", "game_id", int64(game.ID), "game", game.Label())
	return game, nil
}

// GetGame retrieves a game by id
func (c *Controller) GetGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	return c.store.GetGame(ctx, id)
}

// ListUpcoming returns unfinished games ordered by date then start time
func (c *Controller) ListUpcoming(ctx context.Context) ([]*model.Game, error) {
	return c.store.ListUnfinishedGames(ctx)
}

// ApplyAttribute parses raw per attribute and writes the single field
// through its typed setter. The attribute set is closed; anything else
// fails validation before the game is touched.
func (c *Controller) ApplyAttribute(ctx context.Context, gameID model.GameID, attr model.GameAttribute, raw string) (*model.Game, error) {
	game, err := c.store.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if game.Finished() {
		return nil, model.ErrGameFinished
	}

	switch attr {
	case model.GameAttributeEventDate:
		date, err := model.ParseEventDate(raw)
		if err != nil {
			return nil, err
		}
		game.EventDate = date
	case model.GameAttributeStartTime:
		t, err := model.ParseDayTime(raw)
		if err != nil {
			return nil, err
		}
		game.StartTime = t
	case model.GameAttributeEndTime:
		t, err := model.ParseDayTime(raw)
		if err != nil {
			return nil, err
		}
		game.EndTime = t
	case model.GameAttributeVenue:
		venue := strings.TrimSpace(raw)
		if venue == "" {
			return nil, model.NewValidationError("venue", "must not be empty")
		}
		game.Venue = venue
	case model.GameAttributeCapacity:
		capacity, err := model.ParseCapacity(raw)
		if err != nil {
			return nil, err
		}
		game.Capacity = capacity
	default:
		return nil, model.NewValidationError("attribute", "unknown attribute")
	}

	game.UpdatedAt = c.clock.Now()
	if err := c.store.UpdateGame(ctx, game); err != nil {
		return nil, err
	}
	c.logger.InfoContext(ctx, "game attribute updated",
		"game_id", int64(game.ID), "attribute", string(attr))
	return game, nil
}

// RemoveGame deletes a game and all of its registrations
func (c *Controller) RemoveGame(ctx context.Context, id model.GameID) error {
	if err := c.store.DeleteGame(ctx, id); err != nil {
		return err
	}
	c.logger.InfoContext(ctx, "game removed", "game_id", int64(id))
	return nil
}

// CancelGame closes a game to registration ahead of time
func (c *Controller) CancelGame(ctx context.Context, id model.GameID) error {
	game, err := c.store.GetGame(ctx, id)
	if err != nil {
		return err
	}
	if game.Finished() {
		return model.ErrGameFinished
	}
	now := c.clock.Now()
	game.FinishedAt = &now
	game.UpdatedAt = now
	if err := c.store.UpdateGame(ctx, game); err != nil {
		return err
	}
	c.notifier.GameCancelled(ctx, game)
	return nil
}

// AnnounceGame marks a game announced and pushes the announcement with
// the current roster picture
func (c *Controller) AnnounceGame(ctx context.Context, id model.GameID) error {
	game, err := c.store.GetGame(ctx, id)
	if err != nil {
		return err
	}
	if game.Finished() {
		return model.ErrGameFinished
	}
	game.Announced = true
	game.UpdatedAt = c.clock.Now()
	if err := c.store.UpdateGame(ctx, game); err != nil {
		return err
	}
	roster, err := c.ledger.Roster(ctx, game.ID)
	if err != nil {
		return err
	}
	c.notifier.GameAnnounced(ctx, game, roster)
	return nil
}

// FinishElapsed closes every open game whose end time has passed.
// Returns the ids of games it closed.
func (c *Controller) FinishElapsed(ctx context.Context) ([]model.GameID, error) {
	now := c.clock.Now()
	elapsed, err := c.store.ListElapsedGames(ctx, now)
	if err != nil {
		return nil, err
	}
	var finished []model.GameID
	for _, game := range elapsed {
		finishedAt := now
		game.FinishedAt = &finishedAt
		game.UpdatedAt = now
		if err := c.store.UpdateGame(ctx, game); err != nil {
			return finished, err
		}
		finished = append(finished, game.ID)
	}
	if len(finished) > 0 {
		c.logger.InfoContext(ctx, "elapsed games finished", "count", len(finished))
	}
	return finished, nil
}

// AnnounceDue announces every unannounced game starting within the
// window. Returns the ids of games it announced.
func (c *Controller) AnnounceDue(ctx context.Context, window time.Duration) ([]model.GameID, error) {
	now := c.clock.Now()
	due, err := c.store.ListUnannouncedGames(ctx, now, now.Add(window))
	if err != nil {
		return nil, err
	}
	var announced []model.GameID
	for _, game := range due {
		if err := c.AnnounceGame(ctx, game.ID); err != nil {
			return announced, err
		}
		announced = append(announced, game.ID)
	}
	return announced, nil
}

// Interface for dependency injection
type ControllerInterface interface {
	CreateGame(ctx context.Context, params CreateGameParams) (*model.Game, error)
	GetGame(ctx context.Context, id model.GameID) (*model.Game, error)
	ListUpcoming(ctx context.Context) ([]*model.Game, error)
	ApplyAttribute(ctx context.Context, gameID model.GameID, attr model.GameAttribute, raw string) (*model.Game, error)
	RemoveGame(ctx context.Context, id model.GameID) error
	CancelGame(ctx context.Context, id model.GameID) error
	AnnounceGame(ctx context.Context, id model.GameID) error
	FinishElapsed(ctx context.Context) ([]model.GameID, error)
	AnnounceDue(ctx context.Context, window time.Duration) ([]model.GameID, error)
}

var _ ControllerInterface = (*Controller)(nil)
