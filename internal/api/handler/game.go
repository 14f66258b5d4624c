package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/courtside/rallybot/internal/api/request"
	"github.com/courtside/rallybot/internal/api/response"
	"github.com/courtside/rallybot/internal/model"
	"github.com/courtside/rallybot/internal/services/ledger"
	"github.com/courtside/rallybot/internal/services/schedule"
)

// GameHandler handles game calendar endpoints
type GameHandler struct {
	schedule schedule.ControllerInterface
	ledger   ledger.ControllerInterface
}

// NewGameHandler creates a new game handler
func NewGameHandler(scheduleController schedule.ControllerInterface, ledgerController ledger.ControllerInterface) *GameHandler {
	return &GameHandler{
		schedule: scheduleController,
		ledger:   ledgerController,
	}
}

// List handles GET /api/v1/games
func (h *GameHandler) List(w http.ResponseWriter, r *http.Request) {
	games, err := h.schedule.ListUpcoming(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.GamesFromModel(games))
}

// Get handles GET /api/v1/games/{id}
func (h *GameHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}

	game, err := h.schedule.GetGame(r.Context(), model.GameID(id))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameFromModel(game))
}

// Roster handles GET /api/v1/games/{id}/roster
func (h *GameHandler) Roster(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}

	roster, err := h.ledger.Roster(r.Context(), model.GameID(id))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.RosterFromModel(roster))
}

// Create handles POST /api/v1/admin/games
func (h *GameHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	eventDate, err := model.ParseEventDate(req.EventDate)
	if err != nil {
		WriteError(w, err)
		return
	}
	startTime, err := model.ParseDayTime(req.StartTime)
	if err != nil {
		WriteError(w, err)
		return
	}
	endTime, err := model.ParseDayTime(req.EndTime)
	if err != nil {
		WriteError(w, err)
		return
	}

	game, err := h.schedule.CreateGame(r.Context(), schedule.CreateGameParams{
		EventDate: eventDate,
		StartTime: startTime,
		EndTime:   endTime,
		Venue:     req.Venue,
		Capacity:  req.Capacity,
	})
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.GameFromModel(game))
}

// UpdateAttribute handles PATCH /api/v1/admin/games/{id}
func (h *GameHandler) UpdateAttribute(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}

	var req request.UpdateAttributeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	attr, err := model.ParseGameAttribute(req.Attribute)
	if err != nil {
		WriteError(w, err)
		return
	}

	game, err := h.schedule.ApplyAttribute(r.Context(), model.GameID(id), attr, req.Value)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameFromModel(game))
}

// Remove handles DELETE /api/v1/admin/games/{id}
func (h *GameHandler) Remove(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}

	if err := h.schedule.RemoveGame(r.Context(), model.GameID(id)); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// Cancel handles POST /api/v1/admin/games/{id}/cancel
func (h *GameHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}

	if err := h.schedule.CancelGame(r.Context(), model.GameID(id)); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// Announce handles POST /api/v1/admin/games/{id}/announce
func (h *GameHandler) Announce(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}

	if err := h.schedule.AnnounceGame(r.Context(), model.GameID(id)); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// Sweep handles POST /api/v1/admin/games/sweep, running the elapsed and
// announcement sweeps outside their schedule
func (h *GameHandler) Sweep(announceWindow time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		finished, err := h.schedule.FinishElapsed(r.Context())
		if err != nil {
			WriteError(w, err)
			return
		}
		announced, err := h.schedule.AnnounceDue(r.Context(), announceWindow)
		if err != nil {
			WriteError(w, err)
			return
		}
		response.JSON(w, http.StatusOK, map[string]int{
			"finished":  len(finished),
			"announced": len(announced),
		})
	}
}
