package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/courtside/rallybot/internal/api/handler"
	"github.com/courtside/rallybot/internal/api/middleware"
	"github.com/courtside/rallybot/internal/services/auth"
	"github.com/courtside/rallybot/internal/services/editflow"
	"github.com/courtside/rallybot/internal/services/ledger"
	"github.com/courtside/rallybot/internal/services/player"
	"github.com/courtside/rallybot/internal/services/schedule"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger             *slog.Logger
	AuthService        auth.ServiceInterface
	PlayerController   player.ControllerInterface
	ScheduleController schedule.ControllerInterface
	LedgerController   ledger.ControllerInterface
	EditFlowController editflow.ControllerInterface
	AnnounceWindow     time.Duration
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	authHandler := handler.NewAuthHandler(cfg.AuthService)
	playerHandler := handler.NewPlayerHandler(cfg.PlayerController)
	gameHandler := handler.NewGameHandler(cfg.ScheduleController, cfg.LedgerController)
	registrationHandler := handler.NewRegistrationHandler(cfg.LedgerController)
	editHandler := handler.NewEditHandler(cfg.EditFlowController)

	// Create middleware
	authMiddleware := middleware.Auth(cfg.AuthService)
	adminMiddleware := middleware.RequireAdmin(cfg.AuthService)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Auth routes (no token required)
	api.HandleFunc("/auth/register", authHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", authHandler.Login).Methods(http.MethodPost)

	// Member routes (token required)
	members := api.NewRoute().Subrouter()
	members.Use(authMiddleware)
	members.HandleFunc("/auth/logout", authHandler.Logout).Methods(http.MethodPost)
	members.HandleFunc("/players/me", authHandler.GetMe).Methods(http.MethodGet)
	members.HandleFunc("/players/me/registrations", registrationHandler.Mine).Methods(http.MethodGet)
	members.HandleFunc("/players", playerHandler.List).Methods(http.MethodGet)
	members.HandleFunc("/games", gameHandler.List).Methods(http.MethodGet)
	members.HandleFunc("/games/{id}", gameHandler.Get).Methods(http.MethodGet)
	members.HandleFunc("/games/{id}/roster", gameHandler.Roster).Methods(http.MethodGet)
	members.HandleFunc("/games/{id}/registrations", registrationHandler.Admit).Methods(http.MethodPost)
	members.HandleFunc("/registrations/{id}/confirm", registrationHandler.Confirm).Methods(http.MethodPost)
	members.HandleFunc("/registrations/{id}/swap", registrationHandler.RequestSwap).Methods(http.MethodPost)
	members.HandleFunc("/registrations/{id}", registrationHandler.Cancel).Methods(http.MethodDelete)

	// Admin routes
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(adminMiddleware)
	admin.HandleFunc("/players", playerHandler.Create).Methods(http.MethodPost)
	admin.HandleFunc("/players/{id}", playerHandler.Get).Methods(http.MethodGet)
	admin.HandleFunc("/players/{id}", playerHandler.UpdateAttribute).Methods(http.MethodPatch)
	admin.HandleFunc("/players/{id}", playerHandler.Remove).Methods(http.MethodDelete)

	admin.HandleFunc("/games", gameHandler.Create).Methods(http.MethodPost)
	admin.HandleFunc("/games/sweep", gameHandler.Sweep(cfg.AnnounceWindow)).Methods(http.MethodPost)
	admin.HandleFunc("/games/{id}", gameHandler.UpdateAttribute).Methods(http.MethodPatch)
	admin.HandleFunc("/games/{id}", gameHandler.Remove).Methods(http.MethodDelete)
	admin.HandleFunc("/games/{id}/cancel", gameHandler.Cancel).Methods(http.MethodPost)
	admin.HandleFunc("/games/{id}/announce", gameHandler.Announce).Methods(http.MethodPost)
	admin.HandleFunc("/games/{id}/registrations", registrationHandler.AdminAdmit).Methods(http.MethodPost)
	admin.HandleFunc("/games/{id}/registrations/{player_id}", registrationHandler.AdminRemove).Methods(http.MethodDelete)

	// Game conversations
	admin.HandleFunc("/edit", editHandler.StartEdit).Methods(http.MethodPost)
	admin.HandleFunc("/edit", editHandler.CancelEdit).Methods(http.MethodDelete)
	admin.HandleFunc("/edit/game", editHandler.SelectGame).Methods(http.MethodPost)
	admin.HandleFunc("/edit/attribute", editHandler.SelectAttribute).Methods(http.MethodPost)
	admin.HandleFunc("/edit/value", editHandler.SubmitValue).Methods(http.MethodPost)
	admin.HandleFunc("/create", editHandler.StartCreate).Methods(http.MethodPost)
	admin.HandleFunc("/create", editHandler.CancelCreate).Methods(http.MethodDelete)
	admin.HandleFunc("/create/value", editHandler.SubmitCreateValue).Methods(http.MethodPost)

	// Health check endpoint (no auth)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
