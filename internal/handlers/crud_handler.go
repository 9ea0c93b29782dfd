package handlers

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/Dias221467/goai-backend/pkg/logger"
)

// crudService is the service surface a CRUDHandler drives.
type crudService[T any, C any, U any] interface {
	Resource() string
	Create(ctx context.Context, userID int64, payload C) (T, error)
	List(ctx context.Context, userID int64) ([]T, error)
	Get(ctx context.Context, userID, id int64) (T, error)
	Update(ctx context.Context, userID, id int64, payload U) (T, error)
	Delete(ctx context.Context, userID, id int64) error
}

// CRUDHandler serves the five collection and item routes of one resource.
type CRUDHandler[T any, C any, U any] struct {
	Service crudService[T, C, U]
}

func NewCRUDHandler[T any, C any, U any](service crudService[T, C, U]) *CRUDHandler[T, C, U] {
	return &CRUDHandler[T, C, U]{Service: service}
}

// Register mounts the routes under path, accepting the collection with and without a trailing slash.
func (h *CRUDHandler[T, C, U]) Register(r *mux.Router, path string) {
	r.HandleFunc(path, h.CreateHandler).Methods(http.MethodPost)
	r.HandleFunc(path+"/", h.CreateHandler).Methods(http.MethodPost)
	r.HandleFunc(path, h.ListHandler).Methods(http.MethodGet)
	r.HandleFunc(path+"/", h.ListHandler).Methods(http.MethodGet)
	r.HandleFunc(path+"/{id}", h.GetHandler).Methods(http.MethodGet)
	r.HandleFunc(path+"/{id}", h.UpdateHandler).Methods(http.MethodPut)
	r.HandleFunc(path+"/{id}", h.DeleteHandler).Methods(http.MethodDelete)
}

func (h *CRUDHandler[T, C, U]) CreateHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	var payload C
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, r, err)
		return
	}

	item, err := h.Service.Create(r.Context(), userID, payload)
	if err != nil {
		writeError(w, r, err)
		return
	}

	logger.Log.WithFields(logrus.Fields{"user_id": userID, "resource": h.Service.Resource()}).Info("Record created")
	writeJSON(w, http.StatusCreated, item)
}

func (h *CRUDHandler[T, C, U]) ListHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	items, err := h.Service.List(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if items == nil {
		items = []T{}
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *CRUDHandler[T, C, U]) GetHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	item, err := h.Service.Get(r.Context(), userID, id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *CRUDHandler[T, C, U]) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var payload U
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, r, err)
		return
	}

	item, err := h.Service.Update(r.Context(), userID, id, payload)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *CRUDHandler[T, C, U]) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.Service.Delete(r.Context(), userID, id); err != nil {
		writeError(w, r, err)
		return
	}

	logger.Log.WithFields(logrus.Fields{"user_id": userID, "resource": h.Service.Resource(), "id": id}).Info("Record deleted")
	w.WriteHeader(http.StatusNoContent)
}
