package session

import (
	"context"

	"github.com/courtside/rallybot/internal/model"
)

// Store holds per-conversation scratch state for the multi-turn admin
// flows. Records are keyed by conversation id; a missing record returns
// model.ErrSessionNotFound.
type Store interface {
	// Game edit flow state
	GetEditState(ctx context.Context, conversationID string) (*model.GameEditState, error)
	SaveEditState(ctx context.Context, conversationID string, state *model.GameEditState) error
	DeleteEditState(ctx context.Context, conversationID string) error

	// Game creation flow state
	GetDraftState(ctx context.Context, conversationID string) (*model.GameDraftState, error)
	SaveDraftState(ctx context.Context, conversationID string, state *model.GameDraftState) error
	DeleteDraftState(ctx context.Context, conversationID string) error
}
