package handlers

import (
	"net/http"

	"github.com/Dias221467/goai-backend/internal/models"
	"github.com/Dias221467/goai-backend/internal/services"
)

// HabitHandler serves the progress routes nested under a habit.
type HabitHandler struct {
	Service *services.HabitService
}

func NewHabitHandler(service *services.HabitService) *HabitHandler {
	return &HabitHandler{Service: service}
}

// POST /habits/{id}/progress
func (h *HabitHandler) LogProgressHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	habitID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var payload models.ProgressEventCreate
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, r, err)
		return
	}

	event, err := h.Service.LogProgress(r.Context(), userID, habitID, payload)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, event)
}

// GET /habits/{id}/progress
func (h *HabitHandler) ListProgressHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	habitID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	events, err := h.Service.ListProgress(r.Context(), userID, habitID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, events)
}
