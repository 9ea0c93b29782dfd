package handlers

import (
	"net/http"

	"github.com/Dias221467/goai-backend/internal/models"
	"github.com/Dias221467/goai-backend/internal/services"
)

type SettingsHandler struct {
	Service *services.SettingsService
}

func NewSettingsHandler(service *services.SettingsService) *SettingsHandler {
	return &SettingsHandler{Service: service}
}

// GET /settings/notifications
func (h *SettingsHandler) GetNotificationSettingsHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	setting, err := h.Service.GetNotificationSettings(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, setting)
}

// PUT /settings/notifications
func (h *SettingsHandler) UpdateNotificationSettingsHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	var payload models.NotificationSettingCreate
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, r, err)
		return
	}

	setting, err := h.Service.UpdateNotificationSettings(r.Context(), userID, payload)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, setting)
}
