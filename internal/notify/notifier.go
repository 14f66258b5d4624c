package notify

import (
	"context"
	"log/slog"
	"sync"

	"github.com/courtside/rallybot/internal/model"
)

// Notifier receives the outcomes other players need to hear about.
// The ledger and schedule services decide WHAT happened; implementations
// decide how (or whether) it reaches anyone.
type Notifier interface {
	PlayerPromoted(ctx context.Context, game *model.Game, player *model.Player)
	GameAnnounced(ctx context.Context, game *model.Game, roster *model.Roster)
	GameUpdated(ctx context.Context, game *model.Game, roster *model.Roster)
	GameCancelled(ctx context.Context, game *model.Game)
}

// LogNotifier writes outcomes to the structured log. Chat transports
// plug in behind the same interface.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier creates a log-backed notifier
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// Ensure LogNotifier implements the interface
var _ Notifier = (*LogNotifier)(nil)

func (n *LogNotifier) PlayerPromoted(ctx context.Context, game *model.Game, player *model.Player) {
	n.logger.InfoContext(ctx, "player promoted from waitlist",
		"game_id", int64(game.ID),
		"game", game.Label(),
		"player_id", int64(player.ID),
		"nickname", player.Nickname,
	)
}

func (n *LogNotifier) GameAnnounced(ctx context.Context, game *model.Game, roster *model.Roster) {
	n.logger.InfoContext(ctx, "game announced",
		"game_id", int64(game.ID),
		"game", game.Label(),
		"capacity", game.Capacity,
		"playing", len(roster.Playing),
		"waiting", len(roster.Waitlist),
	)
}

func (n *LogNotifier) GameUpdated(ctx context.Context, game *model.Game, roster *model.Roster) {
	n.logger.InfoContext(ctx, "game updated",
		"game_id", int64(game.ID),
		"game", game.Label(),
		"confirmed", roster.ConfirmedCount(),
		"playing", len(roster.Playing),
		"waiting", len(roster.Waitlist),
	)
}

func (n *LogNotifier) GameCancelled(ctx context.Context, game *model.Game) {
	n.logger.InfoContext(ctx, "game cancelled",
		"game_id", int64(game.ID),
		"game", game.Label(),
	)
}

// Recorder captures notifications for assertions in tests
type Recorder struct {
	mu sync.Mutex

	Promotions []model.Promotion
	Announced  []model.GameID
	Updated    []model.GameID
	Cancelled  []model.GameID
	LastRoster *model.Roster
}

// Ensure Recorder implements the interface
var _ Notifier = (*Recorder)(nil)

func (r *Recorder) PlayerPromoted(ctx context.Context, game *model.Game, player *model.Player) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Promotions = append(r.Promotions, model.Promotion{GameID: game.ID, PlayerID: player.ID})
}

func (r *Recorder) GameAnnounced(ctx context.Context, game *model.Game, roster *model.Roster) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Announced = append(r.Announced, game.ID)
	r.LastRoster = roster
}

func (r *Recorder) GameUpdated(ctx context.Context, game *model.Game, roster *model.Roster) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Updated = append(r.Updated, game.ID)
	r.LastRoster = roster
}

func (r *Recorder) GameCancelled(ctx context.Context, game *model.Game) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Cancelled = append(r.Cancelled, game.ID)
}
