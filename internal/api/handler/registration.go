package handler

import (
	"encoding/json"
	"net/http"

	"github.com/courtside/rallybot/internal/api/middleware"
	"github.com/courtside/rallybot/internal/api/request"
	"github.com/courtside/rallybot/internal/api/response"
	"github.com/courtside/rallybot/internal/model"
	"github.com/courtside/rallybot/internal/services/ledger"
)

// RegistrationHandler handles registration lifecycle endpoints
type RegistrationHandler struct {
	ledger ledger.ControllerInterface
}

// NewRegistrationHandler creates a new registration handler
func NewRegistrationHandler(ledgerController ledger.ControllerInterface) *RegistrationHandler {
	return &RegistrationHandler{
		ledger: ledgerController,
	}
}

// Admit handles POST /api/v1/games/{id}/registrations
func (h *RegistrationHandler) Admit(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}
	player := middleware.MustGetPlayer(r.Context())

	outcome, reg, err := h.ledger.Admit(r.Context(), model.GameID(id), player.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.AdmissionResponse{
		Outcome:      string(outcome),
		Registration: response.RegistrationFromModel(reg),
	})
}

// Confirm handles POST /api/v1/registrations/{id}/confirm
func (h *RegistrationHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}
	player := middleware.MustGetPlayer(r.Context())

	if err := h.ledger.Confirm(r.Context(), model.RegistrationID(id), player.ID); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// RequestSwap handles POST /api/v1/registrations/{id}/swap
func (h *RegistrationHandler) RequestSwap(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}
	player := middleware.MustGetPlayer(r.Context())

	if err := h.ledger.RequestSwap(r.Context(), model.RegistrationID(id), player.ID); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// Cancel handles DELETE /api/v1/registrations/{id}
func (h *RegistrationHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}
	player := middleware.MustGetPlayer(r.Context())

	promotion, err := h.ledger.Cancel(r.Context(), model.RegistrationID(id), player.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.CancelResponseFromModel(promotion))
}

// Mine handles GET /api/v1/players/me/registrations
func (h *RegistrationHandler) Mine(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	regs, err := h.ledger.Registrations(r.Context(), player.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerRegistrationsFromModel(regs))
}

// AdminAdmit handles POST /api/v1/admin/games/{id}/registrations
func (h *RegistrationHandler) AdminAdmit(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}

	var req request.AdminAdmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.Nickname == "" {
		WriteError(w, NewInvalidRequestError("nickname is required"))
		return
	}

	outcome, reg, err := h.ledger.AdminAdmit(r.Context(), model.GameID(id), req.Nickname)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.AdmissionResponse{
		Outcome:      string(outcome),
		Registration: response.RegistrationFromModel(reg),
	})
}

// AdminRemove handles DELETE /api/v1/admin/games/{id}/registrations/{player_id}
func (h *RegistrationHandler) AdminRemove(w http.ResponseWriter, r *http.Request) {
	gameID, err := pathID(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}
	playerID, err := pathID(r, "player_id")
	if err != nil {
		WriteError(w, err)
		return
	}

	promotion, err := h.ledger.AdminRemove(r.Context(), model.GameID(gameID), model.PlayerID(playerID))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.CancelResponseFromModel(promotion))
}
