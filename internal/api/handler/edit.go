package handler

import (
	"encoding/json"
	"net/http"

	"github.com/courtside/rallybot/internal/api/middleware"
	"github.com/courtside/rallybot/internal/api/request"
	"github.com/courtside/rallybot/internal/api/response"
	"github.com/courtside/rallybot/internal/model"
	"github.com/courtside/rallybot/internal/services/editflow"
)

// EditHandler exposes the admin game conversations over HTTP. Each
// admin session gets its own conversation, keyed by the session token.
type EditHandler struct {
	flows editflow.ControllerInterface
}

// NewEditHandler creates a new edit handler
func NewEditHandler(flows editflow.ControllerInterface) *EditHandler {
	return &EditHandler{
		flows: flows,
	}
}

func conversationID(r *http.Request) string {
	return middleware.MustGetSession(r.Context()).Token
}

// StartEdit handles POST /api/v1/admin/edit
func (h *EditHandler) StartEdit(w http.ResponseWriter, r *http.Request) {
	prompt, err := h.flows.StartEdit(r.Context(), conversationID(r))
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, prompt)
}

// SelectGame handles POST /api/v1/admin/edit/game
func (h *EditHandler) SelectGame(w http.ResponseWriter, r *http.Request) {
	var req request.SelectGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.GameID <= 0 {
		WriteError(w, NewInvalidRequestError("game_id must be a positive integer"))
		return
	}

	prompt, err := h.flows.SelectGame(r.Context(), conversationID(r), model.GameID(req.GameID))
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, prompt)
}

// SelectAttribute handles POST /api/v1/admin/edit/attribute
func (h *EditHandler) SelectAttribute(w http.ResponseWriter, r *http.Request) {
	var req request.SelectAttributeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	prompt, err := h.flows.SelectAttribute(r.Context(), conversationID(r), req.Attribute)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, prompt)
}

// SubmitValue handles POST /api/v1/admin/edit/value
func (h *EditHandler) SubmitValue(w http.ResponseWriter, r *http.Request) {
	var req request.SubmitValueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	prompt, err := h.flows.SubmitValue(r.Context(), conversationID(r), req.Value)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, prompt)
}

// CancelEdit handles DELETE /api/v1/admin/edit
func (h *EditHandler) CancelEdit(w http.ResponseWriter, r *http.Request) {
	if err := h.flows.CancelEdit(r.Context(), conversationID(r)); err != nil {
		WriteError(w, err)
		return
	}
	response.NoContent(w)
}

// StartCreate handles POST /api/v1/admin/create
func (h *EditHandler) StartCreate(w http.ResponseWriter, r *http.Request) {
	prompt, err := h.flows.StartCreate(r.Context(), conversationID(r))
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, prompt)
}

// SubmitCreateValue handles POST /api/v1/admin/create/value
func (h *EditHandler) SubmitCreateValue(w http.ResponseWriter, r *http.Request) {
	var req request.SubmitValueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	prompt, err := h.flows.SubmitCreateValue(r.Context(), conversationID(r), req.Value)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, prompt)
}

// CancelCreate handles DELETE /api/v1/admin/create
func (h *EditHandler) CancelCreate(w http.ResponseWriter, r *http.Request) {
	if err := h.flows.CancelCreate(r.Context(), conversationID(r)); err != nil {
		WriteError(w, err)
		return
	}
	response.NoContent(w)
}
