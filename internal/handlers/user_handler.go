package handlers

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/Dias221467/goai-backend/internal/apperrors"
	"github.com/Dias221467/goai-backend/internal/models"
	"github.com/Dias221467/goai-backend/internal/services"
	"github.com/Dias221467/goai-backend/pkg/logger"
)

// UserHandler handles registration, login and profile requests.
type UserHandler struct {
	Service     *services.UserService
	AuthService *services.AuthService
}

// NewUserHandler creates a new instance of UserHandler.
func NewUserHandler(service *services.UserService, authService *services.AuthService) *UserHandler {
	return &UserHandler{Service: service, AuthService: authService}
}

// RegisterUserHandler handles POST /auth/register with a JSON body.
func (h *UserHandler) RegisterUserHandler(w http.ResponseWriter, r *http.Request) {
	var payload models.UserCreate
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, r, err)
		return
	}

	user, err := h.Service.Register(r.Context(), payload)
	if err != nil {
		logger.Log.WithError(err).Warn("Failed to register user")
		writeError(w, r, err)
		return
	}

	logger.Log.WithField("user_id", user.ID).Info("User registered successfully")
	writeJSON(w, http.StatusCreated, user)
}

// LoginUserHandler handles POST /auth/login with form-encoded username and password.
func (h *UserHandler) LoginUserHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, r, apperrors.Validation(msgInvalidPayload))
		return
	}
	username := r.PostForm.Get("username")
	password := r.PostForm.Get("password")
	if username == "" || password == "" {
		writeError(w, r, apperrors.Validation("username and password are required"))
		return
	}

	token, err := h.AuthService.Login(r.Context(), username, password)
	if err != nil {
		logger.Log.WithFields(logrus.Fields{"username": username, "error": err}).Warn("Authentication failed")
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, token)
}

// GetCurrentUserHandler handles GET /users/me.
func (h *UserHandler) GetCurrentUserHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	user, err := h.Service.GetUser(r.Context(), userID)
	if err != nil {
		logger.Log.WithField("user_id", userID).WithError(err).Warn("User not found")
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}
