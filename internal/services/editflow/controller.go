package editflow

import (
	"context"
	"log/slog"

	"github.com/courtside/rallybot/internal/dependencies/clock"
	"github.com/courtside/rallybot/internal/model"
	"github.com/courtside/rallybot/internal/notify"
	"github.com/courtside/rallybot/internal/services/ledger"
	"github.com/courtside/rallybot/internal/services/schedule"
	"github.com/courtside/rallybot/internal/session"
)

// Controller drives the multi-turn admin conversations: editing an
// existing game one attribute at a time, and creating a game field by
// field. Conversation state lives in the session store keyed by
// conversation id; the data store only ever sees complete, validated
// writes.
type Controller struct {
	sessions session.Store
	schedule schedule.ControllerInterface
	ledger   ledger.ControllerInterface
	notifier notify.Notifier
	clock    clock.Clock
	logger   *slog.Logger
}

// NewController creates a new edit flow controller
func NewController(
	sessions session.Store,
	scheduleController schedule.ControllerInterface,
	ledgerController ledger.ControllerInterface,
	notifier notify.Notifier,
	clk clock.Clock,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		sessions: sessions,
		schedule: scheduleController,
		ledger:   ledgerController,
		notifier: notifier,
		clock:    clk,
		logger:   logger,
	}
}

// Interface for dependency injection
type ControllerInterface interface {
	StartEdit(ctx context.Context, conversationID string) (*EditPrompt, error)
	SelectGame(ctx context.Context, conversationID string, gameID model.GameID) (*EditPrompt, error)
	SelectAttribute(ctx context.Context, conversationID string, raw string) (*EditPrompt, error)
	SubmitValue(ctx context.Context, conversationID string, raw string) (*EditPrompt, error)
	CancelEdit(ctx context.Context, conversationID string) error

	StartCreate(ctx context.Context, conversationID string) (*CreatePrompt, error)
	SubmitCreateValue(ctx context.Context, conversationID string, raw string) (*CreatePrompt, error)
	CancelCreate(ctx context.Context, conversationID string) error
}

var _ ControllerInterface = (*Controller)(nil)
