package handlers

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/Dias221467/goai-backend/internal/services"
	"github.com/Dias221467/goai-backend/pkg/logger"
)

type BrainDumpHandler struct {
	Service *services.BrainDumpService
}

func NewBrainDumpHandler(service *services.BrainDumpService) *BrainDumpHandler {
	return &BrainDumpHandler{Service: service}
}

// PUT /brain-dump/{id}/process
func (h *BrainDumpHandler) ProcessHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	item, err := h.Service.MarkProcessed(r.Context(), userID, id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// POST /brain-dump/{id}/promote?to=task|goal
func (h *BrainDumpHandler) PromoteHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	target := r.URL.Query().Get("to")
	created, err := h.Service.Promote(r.Context(), userID, id, target)
	if err != nil {
		writeError(w, r, err)
		return
	}

	logger.Log.WithFields(logrus.Fields{"user_id": userID, "brain_dump_id": id, "to": target}).Info("Brain dump item promoted")
	writeJSON(w, http.StatusCreated, created)
}
