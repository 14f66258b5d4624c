package factory

import (
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/courtside/rallybot/internal/config"
	"github.com/courtside/rallybot/internal/dependencies/clock"
	"github.com/courtside/rallybot/internal/notify"
	"github.com/courtside/rallybot/internal/services/auth"
	"github.com/courtside/rallybot/internal/services/editflow"
	"github.com/courtside/rallybot/internal/services/ledger"
	"github.com/courtside/rallybot/internal/services/player"
	"github.com/courtside/rallybot/internal/services/schedule"
	"github.com/courtside/rallybot/internal/session"
	sessionmemory "github.com/courtside/rallybot/internal/session/memory"
	sessionredis "github.com/courtside/rallybot/internal/session/redis"
	"github.com/courtside/rallybot/internal/store"
	storememory "github.com/courtside/rallybot/internal/store/memory"
	"github.com/courtside/rallybot/internal/store/sqlite"
	"github.com/courtside/rallybot/internal/sweep"
)

// App contains all wired application components
type App struct {
	// Persistence
	Store    store.Store
	Sessions session.Store

	// External dependencies
	Clock    clock.Clock
	Notifier notify.Notifier

	// Services
	AuthService        *auth.Service
	PlayerController   *player.Controller
	LedgerController   *ledger.Controller
	ScheduleController *schedule.Controller
	EditFlowController *editflow.Controller
	Sweeper            *sweep.Sweeper

	closers []func() error
}

// New creates a new application with all dependencies wired from config
func New(cfg *config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	app := &App{}

	switch cfg.Storage {
	case config.StorageMemory:
		app.Store = storememory.New()
	case config.StorageSQLite:
		sqliteStore, err := sqlite.New(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		app.Store = sqliteStore
		app.closers = append(app.closers, sqliteStore.Close)
	default:
		return nil, errors.New("invalid storage type: must be 'sqlite' or 'memory'")
	}

	switch cfg.Sessions {
	case config.SessionsMemory:
		app.Sessions = sessionmemory.New()
	case config.SessionsRedis:
		redisCfg := sessionredis.DefaultConfig()
		redisCfg.URL = cfg.RedisURL
		redisCfg.EditSessionTTL = cfg.SessionTTL
		redisCfg.DraftSessionTTL = cfg.SessionTTL
		redisStore, err := sessionredis.New(redisCfg)
		if err != nil {
			return nil, err
		}
		app.Sessions = redisStore
		app.closers = append(app.closers, redisStore.Close)
	default:
		return nil, errors.New("invalid session backend: must be 'redis' or 'memory'")
	}

	authCfg := auth.DefaultConfig()
	authCfg.SessionDuration = cfg.AuthTokenTTL
	authCfg.AdminNicknames = cfg.AdminNicknames

	wireServices(app, authCfg, cfg.AnnounceWindow, clock.New(), notify.NewLogNotifier(logger), logger)
	return app, nil
}

// Close releases held resources (database handles, Redis connections)
func (a *App) Close() error {
	var firstErr error
	for _, closeFn := range a.closers {
		if err := closeFn(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// wireServices builds the service graph on top of the chosen backends
func wireServices(app *App, authCfg auth.Config, announceWindow time.Duration, clk clock.Clock, notifier notify.Notifier, logger *slog.Logger) {
	app.Clock = clk
	app.Notifier = notifier

	app.AuthService = auth.New(app.Store, clk, authCfg)
	app.PlayerController = player.NewController(app.Store, clk, logger)
	app.LedgerController = ledger.NewController(app.Store, notifier, clk, logger)
	app.ScheduleController = schedule.NewController(app.Store, app.LedgerController, notifier, clk, logger)
	app.EditFlowController = editflow.NewController(app.Sessions, app.ScheduleController, app.LedgerController, notifier, clk, logger)
	app.Sweeper = sweep.NewSweeper(app.ScheduleController, announceWindow, logger)
}
