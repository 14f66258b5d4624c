package store

import (
	"context"
	"time"

	"github.com/courtside/rallybot/internal/model"
)

// Store defines the interface for record persistence
type Store interface {
	// WithTx runs fn against a transactional view of the store. Reads
	// and writes fn performs through its argument happen atomically
	// with respect to every other caller; if fn returns an error the
	// writes are discarded. The admission and cancellation paths
	// depend on this to keep roster counts inside capacity.
	WithTx(ctx context.Context, fn func(tx Store) error) error

	// Player operations
	CreatePlayer(ctx context.Context, player *model.Player) error
	GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error)
	GetPlayerByNickname(ctx context.Context, nickname string) (*model.Player, error)
	ListActivePlayers(ctx context.Context) ([]*model.Player, error)
	UpdatePlayer(ctx context.Context, player *model.Player) error

	// Credential operations
	SaveCredential(ctx context.Context, cred *model.Credential) error
	GetCredential(ctx context.Context, playerID model.PlayerID) (*model.Credential, error)

	// Game operations
	CreateGame(ctx context.Context, game *model.Game) error
	GetGame(ctx context.Context, id model.GameID) (*model.Game, error)
	ListUnfinishedGames(ctx context.Context) ([]*model.Game, error)
	ListElapsedGames(ctx context.Context, now time.Time) ([]*model.Game, error)
	ListUnannouncedGames(ctx context.Context, from, until time.Time) ([]*model.Game, error)
	UpdateGame(ctx context.Context, game *model.Game) error
	DeleteGame(ctx context.Context, id model.GameID) error

	// Registration operations
	CreateRegistration(ctx context.Context, reg *model.Registration) error
	GetRegistration(ctx context.Context, id model.RegistrationID) (*model.Registration, error)
	GetRegistrationForPlayer(ctx context.Context, gameID model.GameID, playerID model.PlayerID) (*model.Registration, error)
	ListRegistrationsForGame(ctx context.Context, gameID model.GameID) ([]*model.Registration, error)
	ListRegistrationsForPlayer(ctx context.Context, playerID model.PlayerID) ([]*model.Registration, error)
	CountRosterRegistrations(ctx context.Context, gameID model.GameID) (int, error)
	EarliestWaiting(ctx context.Context, gameID model.GameID) (*model.Registration, error)
	UpdateRegistration(ctx context.Context, reg *model.Registration) error
	DeleteRegistration(ctx context.Context, id model.RegistrationID) error
	DeleteRegistrationsForPlayer(ctx context.Context, playerID model.PlayerID) error
}
