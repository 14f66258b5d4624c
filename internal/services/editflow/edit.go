package editflow

import (
	"context"
	"errors"
	"fmt"

	"github.com/courtside/rallybot/internal/model"
)

// AttributeFinish ends the edit conversation instead of selecting
// another attribute
const AttributeFinish = "finish"

// EditPrompt tells the conversation layer what to show next
type EditPrompt struct {
	Phase      model.EditPhase       `json:"phase,omitempty"`
	Message    string                `json:"message"`
	Games      []*model.Game         `json:"games,omitempty"`      // selecting_game
	Attributes []model.GameAttribute `json:"attributes,omitempty"` // selecting_attribute
	Game       *model.Game           `json:"game,omitempty"`       // bound game, once selected
	Summary    *model.Roster         `json:"summary,omitempty"`    // set when the flow finishes
	Done       bool                  `json:"done,omitempty"`
}

// StartEdit opens an edit conversation, replacing any previous one for
// this conversation id
func (c *Controller) StartEdit(ctx context.Context, conversationID string) (*EditPrompt, error) {
	games, err := c.schedule.ListUpcoming(ctx)
	if err != nil {
		return nil, err
	}

	state := &model.GameEditState{
		Phase:     model.EditPhaseSelectingGame,
		StartedAt: c.clock.Now(),
	}
	if err := c.sessions.SaveEditState(ctx, conversationID, state); err != nil {
		return nil, err
	}

	return &EditPrompt{
		Phase:   model.EditPhaseSelectingGame,
		Message: "Select a game to edit",
		Games:   games,
	}, nil
}

// SelectGame binds the conversation to a game and moves on to
// attribute selection
func (c *Controller) SelectGame(ctx context.Context, conversationID string, gameID model.GameID) (*EditPrompt, error) {
	state, err := c.editState(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if state.Phase != model.EditPhaseSelectingGame {
		return nil, model.NewValidationError("input", "a game is already selected")
	}

	game, err := c.schedule.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if game.Finished() {
		return nil, model.ErrGameFinished
	}

	state.Phase = model.EditPhaseSelectingAttribute
	state.GameID = gameID
	if err := c.sessions.SaveEditState(ctx, conversationID, state); err != nil {
		return nil, err
	}

	return &EditPrompt{
		Phase:      model.EditPhaseSelectingAttribute,
		Message:    fmt.Sprintf("Editing %s. Pick an attribute, or finish", game.Label()),
		Attributes: model.GameAttributes(),
		Game:       game,
	}, nil
}

// SelectAttribute picks the next attribute to edit, or finishes the
// conversation when raw is "finish"
func (c *Controller) SelectAttribute(ctx context.Context, conversationID string, raw string) (*EditPrompt, error) {
	state, err := c.editState(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if state.Phase != model.EditPhaseSelectingAttribute {
		return nil, model.NewValidationError("input", "not selecting an attribute right now")
	}

	if raw == AttributeFinish {
		return c.finishEdit(ctx, conversationID, state)
	}

	attr, err := model.ParseGameAttribute(raw)
	if err != nil {
		// Session unchanged; the conversation re-prompts
		return nil, err
	}

	state.Phase = model.EditPhaseAwaitingValue
	state.Attribute = attr
	if err := c.sessions.SaveEditState(ctx, conversationID, state); err != nil {
		return nil, err
	}

	return &EditPrompt{
		Phase:   model.EditPhaseAwaitingValue,
		Message: fmt.Sprintf("Send the new value for %s", attr),
	}, nil
}

// SubmitValue validates and commits a value for the pending attribute.
// A rejected value leaves the session where it is so the admin can try
// again; an accepted one is written immediately and the conversation
// loops back to attribute selection.
func (c *Controller) SubmitValue(ctx context.Context, conversationID string, raw string) (*EditPrompt, error) {
	state, err := c.editState(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if state.Phase != model.EditPhaseAwaitingValue {
		return nil, model.NewValidationError("input", "no value expected right now")
	}

	game, err := c.schedule.ApplyAttribute(ctx, state.GameID, state.Attribute, raw)
	if err != nil {
		if errors.Is(err, model.ErrGameNotFound) {
			// The bound game disappeared under the conversation
			_ = c.sessions.DeleteEditState(ctx, conversationID)
			return nil, model.ErrSessionExpired
		}
		// Validation failures keep the session in awaiting_value
		return nil, err
	}

	applied := state.Attribute
	state.Phase = model.EditPhaseSelectingAttribute
	state.Attribute = ""
	if err := c.sessions.SaveEditState(ctx, conversationID, state); err != nil {
		return nil, err
	}

	return &EditPrompt{
		Phase:      model.EditPhaseSelectingAttribute,
		Message:    fmt.Sprintf("Updated %s. Pick another attribute, or finish", applied),
		Attributes: model.GameAttributes(),
		Game:       game,
	}, nil
}

// CancelEdit abandons the conversation. Attribute values already
// committed stay committed.
func (c *Controller) CancelEdit(ctx context.Context, conversationID string) error {
	return c.sessions.DeleteEditState(ctx, conversationID)
}

func (c *Controller) finishEdit(ctx context.Context, conversationID string, state *model.GameEditState) (*EditPrompt, error) {
	if err := c.sessions.DeleteEditState(ctx, conversationID); err != nil {
		return nil, err
	}

	game, err := c.schedule.GetGame(ctx, state.GameID)
	if err != nil {
		if errors.Is(err, model.ErrGameNotFound) {
			return nil, model.ErrSessionExpired
		}
		return nil, err
	}
	roster, err := c.ledger.Roster(ctx, state.GameID)
	if err != nil {
		return nil, err
	}

	c.notifier.GameUpdated(ctx, game, roster)
	c.logger.InfoContext(ctx, "game edit finished",
		"conversation_id", conversationID, "game_id", int64(state.GameID))

	return &EditPrompt{
		Message: fmt.Sprintf("%s updated: %d confirmed, %d waiting",
			game.Label(), roster.ConfirmedCount(), len(roster.Waitlist)),
		Game:    game,
		Summary: roster,
		Done:    true,
	}, nil
}

// editState loads the conversation state; a missing or vanished record
// reads as an expired session
func (c *Controller) editState(ctx context.Context, conversationID string) (*model.GameEditState, error) {
	state, err := c.sessions.GetEditState(ctx, conversationID)
	if errors.Is(err, model.ErrSessionNotFound) {
		return nil, model.ErrSessionExpired
	}
	if err != nil {
		return nil, err
	}
	if state.Phase != model.EditPhaseSelectingGame && state.GameID == 0 {
		// State without a bound game is unusable past the first step
		_ = c.sessions.DeleteEditState(ctx, conversationID)
		return nil, model.ErrSessionExpired
	}
	return state, nil
}
