package handlers

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"github.com/Dias221467/goai-backend/internal/models"
	"github.com/Dias221467/goai-backend/internal/services"
	"github.com/Dias221467/goai-backend/pkg/middleware"
)

// RouterDeps is everything the HTTP layer needs.
type RouterDeps struct {
	APIPrefix     string
	CORSOrigins   []string
	Authenticator middleware.Authenticator
	LoginLimiter  *middleware.RateLimiter
	Health        HealthCheck

	Goals     *services.GoalService
	Tasks     *services.TaskService
	Habits    *services.HabitService
	BrainDump *services.BrainDumpService
	Settings  *services.SettingsService
	Users     *services.UserService
	Auth      *services.AuthService
	Analytics *services.AnalyticsService
}

// NewRouter builds the full HTTP handler: API routes under the prefix, health and metrics
// at the root, request ids, logging and CORS around everything.
func NewRouter(d RouterDeps) http.Handler {
	router := mux.NewRouter()
	router.Use(middleware.RequestIDMiddleware, middleware.LoggingMiddleware)
	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeDetail(w, http.StatusNotFound, "Not Found")
	})

	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	router.HandleFunc("/healthz", healthHandler(d.Health)).Methods(http.MethodGet)
	router.HandleFunc("/", welcomeHandler).Methods(http.MethodGet)

	api := router
	if prefix := strings.TrimRight(d.APIPrefix, "/"); prefix != "" {
		api = router.PathPrefix(prefix).Subrouter()
	}

	// Public auth routes
	userHandler := NewUserHandler(d.Users, d.Auth)
	var login http.Handler = http.HandlerFunc(userHandler.LoginUserHandler)
	if d.LoginLimiter != nil {
		login = d.LoginLimiter.Middleware(login)
	}
	api.Handle("/auth/login", login).Methods(http.MethodPost)
	api.HandleFunc("/auth/register", userHandler.RegisterUserHandler).Methods(http.MethodPost)

	// Everything else requires an identity
	protected := api.NewRoute().Subrouter()
	protected.Use(middleware.AuthMiddleware(d.Authenticator))

	NewCRUDHandler[*models.Goal, models.GoalCreate, models.GoalUpdate](d.Goals).Register(protected, "/goals")
	NewCRUDHandler[*models.Task, models.TaskCreate, models.TaskUpdate](d.Tasks).Register(protected, "/tasks")

	habitHandler := NewHabitHandler(d.Habits)
	protected.HandleFunc("/habits/{id}/progress", habitHandler.LogProgressHandler).Methods(http.MethodPost)
	protected.HandleFunc("/habits/{id}/progress", habitHandler.ListProgressHandler).Methods(http.MethodGet)
	NewCRUDHandler[*models.Habit, models.HabitCreate, models.HabitUpdate](d.Habits).Register(protected, "/habits")

	brainDumpHandler := NewBrainDumpHandler(d.BrainDump)
	protected.HandleFunc("/brain-dump/{id}/process", brainDumpHandler.ProcessHandler).Methods(http.MethodPut)
	protected.HandleFunc("/brain-dump/{id}/promote", brainDumpHandler.PromoteHandler).Methods(http.MethodPost)
	NewCRUDHandler[*models.BrainDumpItem, models.BrainDumpItemCreate, models.BrainDumpItemUpdate](d.BrainDump).Register(protected, "/brain-dump")

	settingsHandler := NewSettingsHandler(d.Settings)
	protected.HandleFunc("/settings/notifications", settingsHandler.GetNotificationSettingsHandler).Methods(http.MethodGet)
	protected.HandleFunc("/settings/notifications", settingsHandler.UpdateNotificationSettingsHandler).Methods(http.MethodPut)

	protected.HandleFunc("/users/me", userHandler.GetCurrentUserHandler).Methods(http.MethodGet)

	analyticsHandler := NewAnalyticsHandler(d.Analytics)
	protected.HandleFunc("/analytics/summary", analyticsHandler.SummaryHandler).Methods(http.MethodGet)

	c := cors.New(cors.Options{
		AllowedOrigins:   d.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders:   []string{middleware.RequestIDHeader},
		AllowCredentials: true,
	})
	return c.Handler(router)
}
