package player

import (
	"context"
	"log/slog"
	"strings"

	"github.com/courtside/rallybot/internal/dependencies/clock"
	"github.com/courtside/rallybot/internal/model"
	"github.com/courtside/rallybot/internal/store"
)

// Controller manages the club member list
type Controller struct {
	store  store.Store
	clock  clock.Clock
	logger *slog.Logger
}

// NewController creates a new player controller
func NewController(st store.Store, clk clock.Clock, logger *slog.Logger) *Controller {
	return &Controller{
		store:  st,
		clock:  clk,
		logger: logger,
	}
}

// CreatePlayer adds a new active member. Nicknames are unique across
// the club, removed members included.
func (c *Controller) CreatePlayer(ctx context.Context, name, nickname string, level model.Level) (*model.Player, error) {
	name = strings.TrimSpace(name)
	nickname = strings.TrimSpace(nickname)
	if name == "" {
		return nil, model.NewValidationError("name", "must not be empty")
	}
	if nickname == "" {
		return nil, model.NewValidationError("nickname", "must not be empty")
	}
	if _, err := model.ParseLevel(string(level)); err != nil {
		return nil, err
	}

	now := c.clock.Now()
	player := &model.Player{
		Name:      name,
		Nickname:  nickname,
		Level:     level,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := c.store.CreatePlayer(ctx, player); err != nil {
		return nil, err
	}
	c.logger.InfoContext(ctx, "player created", "player_id", int64(player.ID), "nickname", nickname)
	return player, nil
}

// GetPlayer retrieves a player by id
func (c *Controller) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	return c.store.GetPlayer(ctx, id)
}

// GetByNickname retrieves a player by nickname
func (c *Controller) GetByNickname(ctx context.Context, nickname string) (*model.Player, error) {
	return c.store.GetPlayerByNickname(ctx, nickname)
}

// ListActive returns current members ordered by name
func (c *Controller) ListActive(ctx context.Context) ([]*model.Player, error) {
	return c.store.ListActivePlayers(ctx)
}

// ApplyAttribute parses raw per attribute and writes the single field
// through its typed setter, mirroring the game edit flow
func (c *Controller) ApplyAttribute(ctx context.Context, id model.PlayerID, attr model.PlayerAttribute, raw string) (*model.Player, error) {
	player, err := c.store.GetPlayer(ctx, id)
	if err != nil {
		return nil, err
	}

	switch attr {
	case model.PlayerAttributeName:
		name := strings.TrimSpace(raw)
		if name == "" {
			return nil, model.NewValidationError("name", "must not be empty")
		}
		player.Name = name
	case model.PlayerAttributeNickname:
		nickname := strings.TrimSpace(raw)
		if nickname == "" {
			return nil, model.NewValidationError("nickname", "must not be empty")
		}
		player.Nickname = nickname
	case model.PlayerAttributeLevel:
		level, err := model.ParseLevel(strings.TrimSpace(raw))
		if err != nil {
			return nil, err
		}
		player.Level = level
	default:
		return nil, model.NewValidationError("attribute", "unknown attribute")
	}

	player.UpdatedAt = c.clock.Now()
	if err := c.store.UpdatePlayer(ctx, player); err != nil {
		return nil, err
	}
	return player, nil
}

// RemovePlayer deactivates a member and drops their registrations. The
// profile row stays so history and nickname uniqueness survive.
func (c *Controller) RemovePlayer(ctx context.Context, id model.PlayerID) error {
	err := c.store.WithTx(ctx, func(tx store.Store) error {
		player, err := tx.GetPlayer(ctx, id)
		if err != nil {
			return err
		}
		player.Active = false
		player.UpdatedAt = c.clock.Now()
		if err := tx.UpdatePlayer(ctx, player); err != nil {
			return err
		}
		return tx.DeleteRegistrationsForPlayer(ctx, id)
	})
	if err != nil {
		return err
	}
	c.logger.InfoContext(ctx, "player removed", "player_id", int64(id))
	return nil
}

// Interface for dependency injection
type ControllerInterface interface {
	CreatePlayer(ctx context.Context, name, nickname string, level model.Level) (*model.Player, error)
	GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error)
	GetByNickname(ctx context.Context, nickname string) (*model.Player, error)
	ListActive(ctx context.Context) ([]*model.Player, error)
	ApplyAttribute(ctx context.Context, id model.PlayerID, attr model.PlayerAttribute, raw string) (*model.Player, error)
	RemovePlayer(ctx context.Context, id model.PlayerID) error
}

var _ ControllerInterface = (*Controller)(nil)
