package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/goccy/go-json"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/Dias221467/goai-backend/internal/apperrors"
	"github.com/Dias221467/goai-backend/pkg/logger"
	"github.com/Dias221467/goai-backend/pkg/middleware"
)

const (
	msgInvalidPayload = "Invalid request payload"
	msgInternal       = "Internal server error"
)

var errInvalidPayload = apperrors.Validation(msgInvalidPayload)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.WithError(err).Warn("Failed to encode response")
	}
}

func writeDetail(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"detail": message})
}

// writeError maps the error taxonomy onto HTTP statuses.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		writeDetail(w, http.StatusNotFound, apperrors.Message(err, "Not found"))
	case errors.Is(err, apperrors.ErrValidation):
		writeDetail(w, http.StatusUnprocessableEntity, apperrors.Message(err, msgInvalidPayload))
	case errors.Is(err, apperrors.ErrUnauthorized):
		w.Header().Set("WWW-Authenticate", "Bearer")
		writeDetail(w, http.StatusUnauthorized, apperrors.Message(err, "Not authenticated"))
	case errors.Is(err, apperrors.ErrConflict):
		writeDetail(w, http.StatusBadRequest, apperrors.Message(err, "Conflict"))
	default:
		logger.Log.WithError(err).WithFields(logrus.Fields{
			"method":     r.Method,
			"path":       r.URL.Path,
			"request_id": middleware.RequestIDFromContext(r.Context()),
		}).Error("Request failed")
		writeDetail(w, http.StatusInternalServerError, msgInternal)
	}
}

// decodeJSON reads the request body into v. Any decoding failure is a validation error.
func decodeJSON(r *http.Request, v interface{}) error {
	defer r.Body.Close()
	if err := json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(v); err != nil {
		logger.Log.WithError(err).Warn("Invalid request payload")
		return errInvalidPayload
	}
	return nil
}

func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil {
		return 0, apperrors.Validation(name + " must be an integer")
	}
	return id, nil
}

// currentUserID returns the id of the identity AuthMiddleware stored in the context.
func currentUserID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		logger.Log.Warn("Request reached a protected handler without an identity")
		w.Header().Set("WWW-Authenticate", "Bearer")
		writeDetail(w, http.StatusUnauthorized, "Not authenticated")
		return 0, false
	}
	return claims.UserID, true
}
