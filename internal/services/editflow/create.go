package editflow

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/courtside/rallybot/internal/model"
	"github.com/courtside/rallybot/internal/services/schedule"
)

// CreatePrompt tells the conversation layer what to ask for next while
// a game is being created
type CreatePrompt struct {
	Step    model.CreateStep `json:"step,omitempty"`
	Message string           `json:"message"`
	Game    *model.Game      `json:"game,omitempty"` // set once the game is committed
	Done    bool             `json:"done,omitempty"`
}

var createStepMessages = map[model.CreateStep]string{
	model.CreateStepEventDate: "Send the game date (YYYY-MM-DD)",
	model.CreateStepStartTime: "Send the start time (HH:MM)",
	model.CreateStepEndTime:   "Send the end time (HH:MM)",
	model.CreateStepVenue:     "Send the venue",
	model.CreateStepCapacity:  "Send the number of spots",
}

// StartCreate opens a game creation conversation
func (c *Controller) StartCreate(ctx context.Context, conversationID string) (*CreatePrompt, error) {
	state := &model.GameDraftState{
		Step:      model.CreateStepEventDate,
		StartedAt: c.clock.Now(),
	}
	if err := c.sessions.SaveDraftState(ctx, conversationID, state); err != nil {
		return nil, err
	}
	return &CreatePrompt{
		Step:    model.CreateStepEventDate,
		Message: createStepMessages[model.CreateStepEventDate],
	}, nil
}

// SubmitCreateValue feeds one answer into the creation conversation.
// Each step validates its own field; a rejected value re-prompts the
// same step. The game is only persisted once the final step passes.
func (c *Controller) SubmitCreateValue(ctx context.Context, conversationID string, raw string) (*CreatePrompt, error) {
	state, err := c.sessions.GetDraftState(ctx, conversationID)
	if errors.Is(err, model.ErrSessionNotFound) {
		return nil, model.ErrSessionExpired
	}
	if err != nil {
		return nil, err
	}

	switch state.Step {
	case model.CreateStepEventDate:
		date, err := model.ParseEventDate(raw)
		if err != nil {
			return nil, err
		}
		state.EventDate = date.Format(model.DateLayout)
		state.Step = model.CreateStepStartTime

	case model.CreateStepStartTime:
		t, err := model.ParseDayTime(raw)
		if err != nil {
			return nil, err
		}
		state.StartTime = t
		state.Step = model.CreateStepEndTime

	case model.CreateStepEndTime:
		t, err := model.ParseDayTime(raw)
		if err != nil {
			return nil, err
		}
		if string(t) <= string(state.StartTime) {
			return nil, model.NewValidationError("end_time", "must be after start_time")
		}
		state.EndTime = t
		state.Step = model.CreateStepVenue

	case model.CreateStepVenue:
		venue := strings.TrimSpace(raw)
		if venue == "" {
			return nil, model.NewValidationError("venue", "must not be empty")
		}
		state.Venue = venue
		state.Step = model.CreateStepCapacity

	case model.CreateStepCapacity:
		capacity, err := model.ParseCapacity(raw)
		if err != nil {
			return nil, err
		}
		return c.commitDraft(ctx, conversationID, state, capacity)

	default:
		_ = c.sessions.DeleteDraftState(ctx, conversationID)
		return nil, model.ErrSessionExpired
	}

	if err := c.sessions.SaveDraftState(ctx, conversationID, state); err != nil {
		return nil, err
	}
	return &CreatePrompt{
		Step:    state.Step,
		Message: createStepMessages[state.Step],
	}, nil
}

// CancelCreate abandons the conversation without writing anything
func (c *Controller) CancelCreate(ctx context.Context, conversationID string) error {
	return c.sessions.DeleteDraftState(ctx, conversationID)
}

func (c *Controller) commitDraft(ctx context.Context, conversationID string, state *model.GameDraftState, capacity int) (*CreatePrompt, error) {
	eventDate, err := model.ParseEventDate(state.EventDate)
	if err != nil {
		_ = c.sessions.DeleteDraftState(ctx, conversationID)
		return nil, model.ErrSessionExpired
	}

	game, err := c.schedule.CreateGame(ctx, schedule.CreateGameParams{
		EventDate: eventDate,
		StartTime: state.StartTime,
		EndTime:   state.EndTime,
		Venue:     state.Venue,
		Capacity:  capacity,
	})
	if err != nil {
		return nil, err
	}

	if err := c.sessions.DeleteDraftState(ctx, conversationID); err != nil {
		return nil, err
	}
	c.logger.InfoContext(ctx, "game created via conversation",
		"conversation_id", conversationID, "game_id", int64(game.ID))

	return &CreatePrompt{
		Message: fmt.Sprintf("Created %s with %d spots", game.Label(), game.Capacity),
		Game:    game,
		Done:    true,
	}, nil
}
