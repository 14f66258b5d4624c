package ledger

import (
	"context"
	"errors"
	"log/slog"

	"github.com/courtside/rallybot/internal/dependencies/clock"
	"github.com/courtside/rallybot/internal/model"
	"github.com/courtside/rallybot/internal/notify"
	"github.com/courtside/rallybot/internal/store"
)

// Controller owns the registration state machine for games: admission,
// waitlisting, confirmation, cancellation, promotion and swap requests.
// Every admission and removal runs inside a store transaction so the
// roster count can never exceed capacity.
type Controller struct {
	store    store.Store
	notifier notify.Notifier
	clock    clock.Clock
	logger   *slog.Logger
}

// NewController creates a new ledger controller
func NewController(st store.Store, notifier notify.Notifier, clk clock.Clock, logger *slog.Logger) *Controller {
	return &Controller{
		store:    st,
		notifier: notifier,
		clock:    clk,
		logger:   logger,
	}
}

// Admit registers a player for a game. If roster slots remain the
// player is admitted; otherwise they join the waitlist. The capacity
// check and the insert happen in one transaction.
func (c *Controller) Admit(ctx context.Context, gameID model.GameID, playerID model.PlayerID) (model.AdmissionOutcome, *model.Registration, error) {
	var (
		outcome model.AdmissionOutcome
		reg     *model.Registration
	)
	err := c.store.WithTx(ctx, func(tx store.Store) error {
		player, err := tx.GetPlayer(ctx, playerID)
		if err != nil {
			return err
		}
		if !player.Active {
			return model.ErrPlayerNotFound
		}

		game, err := tx.GetGame(ctx, gameID)
		if err != nil {
			return err
		}
		if game.Finished() {
			return model.ErrGameFinished
		}

		if _, err := tx.GetRegistrationForPlayer(ctx, gameID, playerID); err == nil {
			return model.ErrAlreadyRegistered
		} else if !errors.Is(err, model.ErrRegistrationNotFound) {
			return err
		}

		count, err := tx.CountRosterRegistrations(ctx, gameID)
		if err != nil {
			return err
		}
		waiting := count >= game.Capacity

		reg = &model.Registration{
			GameID:       gameID,
			PlayerID:     playerID,
			Waiting:      waiting,
			RegisteredAt: c.clock.Now(),
		}
		if err := tx.CreateRegistration(ctx, reg); err != nil {
			return err
		}

		if waiting {
			outcome = model.OutcomeWaitlisted
		} else {
			outcome = model.OutcomeAdmitted
		}
		return nil
	})
	if err != nil {
		return "", nil, err
	}

	c.logger.InfoContext(ctx, "registration created",
		"game_id", int64(gameID), "player_id", int64(playerID), "outcome", string(outcome))
	return outcome, reg, nil
}

// AdminAdmit registers a player by nickname on their behalf. Admission
// rules are identical to Admit.
func (c *Controller) AdminAdmit(ctx context.Context, gameID model.GameID, nickname string) (model.AdmissionOutcome, *model.Registration, error) {
	player, err := c.store.GetPlayerByNickname(ctx, nickname)
	if err != nil {
		return "", nil, err
	}
	return c.Admit(ctx, gameID, player.ID)
}

// Confirm marks a registration as confirmed. Only the owning player may
// confirm; a mismatch reads as not found.
func (c *Controller) Confirm(ctx context.Context, regID model.RegistrationID, playerID model.PlayerID) error {
	reg, err := c.store.GetRegistration(ctx, regID)
	if err != nil {
		return err
	}
	if reg.PlayerID != playerID {
		return model.ErrRegistrationNotFound
	}
	reg.Confirmed = true
	return c.store.UpdateRegistration(ctx, reg)
}

// RequestSwap flags a confirmed roster registration as seeking a
// replacement. The flag is advisory; no slot changes hands until the
// player actually cancels.
func (c *Controller) RequestSwap(ctx context.Context, regID model.RegistrationID, playerID model.PlayerID) error {
	reg, err := c.store.GetRegistration(ctx, regID)
	if err != nil {
		return err
	}
	if reg.PlayerID != playerID {
		return model.ErrRegistrationNotFound
	}
	if reg.Waiting {
		return model.ErrOnWaitlist
	}
	if !reg.Confirmed {
		return model.ErrNotConfirmed
	}
	reg.SwapRequested = true
	return c.store.UpdateRegistration(ctx, reg)
}

// Cancel removes the player's own registration. Freeing a roster slot
// promotes the earliest waiting registration, if any.
func (c *Controller) Cancel(ctx context.Context, regID model.RegistrationID, playerID model.PlayerID) (*model.Promotion, error) {
	return c.remove(ctx, regID, &playerID)
}

// AdminRemove removes a player's registration for a game regardless of
// who owns it. Promotion rules match Cancel.
func (c *Controller) AdminRemove(ctx context.Context, gameID model.GameID, playerID model.PlayerID) (*model.Promotion, error) {
	reg, err := c.store.GetRegistrationForPlayer(ctx, gameID, playerID)
	if err != nil {
		return nil, err
	}
	return c.remove(ctx, reg.ID, nil)
}

// remove deletes a registration and promotes the earliest waiting one
// when a roster slot was freed. A nil requester skips the ownership
// check. At most one promotion happens per removal.
func (c *Controller) remove(ctx context.Context, regID model.RegistrationID, requester *model.PlayerID) (*model.Promotion, error) {
	var (
		promotion      *model.Promotion
		promotedGame   *model.Game
		promotedPlayer *model.Player
	)
	err := c.store.WithTx(ctx, func(tx store.Store) error {
		reg, err := tx.GetRegistration(ctx, regID)
		if err != nil {
			return err
		}
		if requester != nil && reg.PlayerID != *requester {
			return model.ErrRegistrationNotFound
		}

		if err := tx.DeleteRegistration(ctx, reg.ID); err != nil {
			return err
		}

		// Waitlisted registrations never occupied a slot
		if reg.Waiting {
			return nil
		}

		next, err := tx.EarliestWaiting(ctx, reg.GameID)
		if errors.Is(err, model.ErrRegistrationNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		next.Waiting = false
		if err := tx.UpdateRegistration(ctx, next); err != nil {
			return err
		}

		promotion = &model.Promotion{
			RegistrationID: next.ID,
			GameID:         next.GameID,
			PlayerID:       next.PlayerID,
		}
		if promotedGame, err = tx.GetGame(ctx, next.GameID); err != nil {
			return err
		}
		if promotedPlayer, err = tx.GetPlayer(ctx, next.PlayerID); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if promotion != nil {
		c.logger.InfoContext(ctx, "waitlisted player promoted",
			"game_id", int64(promotion.GameID), "player_id", int64(promotion.PlayerID))
		c.notifier.PlayerPromoted(ctx, promotedGame, promotedPlayer)
	}
	return promotion, nil
}

// Roster returns the full registration picture for a game
func (c *Controller) Roster(ctx context.Context, gameID model.GameID) (*model.Roster, error) {
	game, err := c.store.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	regs, err := c.store.ListRegistrationsForGame(ctx, gameID)
	if err != nil {
		return nil, err
	}

	roster := &model.Roster{Game: game}
	for _, reg := range regs {
		player, err := c.store.GetPlayer(ctx, reg.PlayerID)
		if err != nil {
			return nil, err
		}
		entry := model.RosterEntry{Registration: reg, Player: player}
		if reg.Waiting {
			roster.Waitlist = append(roster.Waitlist, entry)
		} else {
			roster.Playing = append(roster.Playing, entry)
		}
	}
	return roster, nil
}

// Registrations returns a player's registrations with their games
func (c *Controller) Registrations(ctx context.Context, playerID model.PlayerID) ([]model.PlayerRegistration, error) {
	regs, err := c.store.ListRegistrationsForPlayer(ctx, playerID)
	if err != nil {
		return nil, err
	}
	result := make([]model.PlayerRegistration, 0, len(regs))
	for _, reg := range regs {
		game, err := c.store.GetGame(ctx, reg.GameID)
		if err != nil {
			return nil, err
		}
		result = append(result, model.PlayerRegistration{Registration: reg, Game: game})
	}
	return result, nil
}

// Interface for dependency injection
type ControllerInterface interface {
	Admit(ctx context.Context, gameID model.GameID, playerID model.PlayerID) (model.AdmissionOutcome, *model.Registration, error)
	AdminAdmit(ctx context.Context, gameID model.GameID, nickname string) (model.AdmissionOutcome, *model.Registration, error)
	Confirm(ctx context.Context, regID model.RegistrationID, playerID model.PlayerID) error
	RequestSwap(ctx context.Context, regID model.RegistrationID, playerID model.PlayerID) error
	Cancel(ctx context.Context, regID model.RegistrationID, playerID model.PlayerID) (*model.Promotion, error)
	AdminRemove(ctx context.Context, gameID model.GameID, playerID model.PlayerID) (*model.Promotion, error)
	Roster(ctx context.Context, gameID model.GameID) (*model.Roster, error)
	Registrations(ctx context.Context, playerID model.PlayerID) ([]model.PlayerRegistration, error)
}

var _ ControllerInterface = (*Controller)(nil)
