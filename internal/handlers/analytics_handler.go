package handlers

import (
	"net/http"
	"time"

	"github.com/Dias221467/goai-backend/internal/services"
)

type AnalyticsHandler struct {
	Service *services.AnalyticsService
	now     func() time.Time
}

func NewAnalyticsHandler(service *services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{Service: service, now: time.Now}
}

// GET /analytics/summary
func (h *AnalyticsHandler) SummaryHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	summary, err := h.Service.Summary(r.Context(), userID, h.now())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
