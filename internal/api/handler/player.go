package handler

import (
	"encoding/json"
	"net/http"

	"github.com/courtside/rallybot/internal/api/request"
	"github.com/courtside/rallybot/internal/api/response"
	"github.com/courtside/rallybot/internal/model"
	"github.com/courtside/rallybot/internal/services/player"
)

// PlayerHandler handles member management endpoints
type PlayerHandler struct {
	players player.ControllerInterface
}

// NewPlayerHandler creates a new player handler
func NewPlayerHandler(players player.ControllerInterface) *PlayerHandler {
	return &PlayerHandler{
		players: players,
	}
}

// List handles GET /api/v1/players
func (h *PlayerHandler) List(w http.ResponseWriter, r *http.Request) {
	players, err := h.players.ListActive(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	out := make([]response.Player, len(players))
	for i, p := range players {
		out[i] = response.PlayerFromModel(p)
	}
	response.JSON(w, http.StatusOK, out)
}

// Create handles POST /api/v1/admin/players
func (h *PlayerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreatePlayerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	created, err := h.players.CreatePlayer(r.Context(), req.Name, req.Nickname, model.Level(req.Level))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.PlayerFromModel(created))
}

// Get handles GET /api/v1/players/{id}
func (h *PlayerHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}

	found, err := h.players.GetPlayer(r.Context(), model.PlayerID(id))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerFromModel(found))
}

// UpdateAttribute handles PATCH /api/v1/admin/players/{id}
func (h *PlayerHandler) UpdateAttribute(w http.ResponseWriter, r *http.Request) {
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

	attr, err := model.ParsePlayerAttribute(req.Attribute)
	if err != nil {
		WriteError(w, err)
		return
	}

	updated, err := h.players.ApplyAttribute(r.Context(), model.PlayerID(id), attr, req.Value)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerFromModel(updated))
}

// Remove handles DELETE /api/v1/admin/players/{id}
func (h *PlayerHandler) Remove(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}

	if err := h.players.RemovePlayer(r.Context(), model.PlayerID(id)); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}
