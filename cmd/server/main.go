package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	badger "github.com/dgraph-io/badger/v4"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Dias221467/goai-backend/internal/config"
	"github.com/Dias221467/goai-backend/internal/database"
	"github.com/Dias221467/goai-backend/internal/handlers"
	"github.com/Dias221467/goai-backend/internal/jobs"
	"github.com/Dias221467/goai-backend/internal/models"
	"github.com/Dias221467/goai-backend/internal/repository"
	"github.com/Dias221467/goai-backend/internal/scheduler"
	"github.com/Dias221467/goai-backend/internal/services"
	"github.com/Dias221467/goai-backend/pkg/email"
	"github.com/Dias221467/goai-backend/pkg/logger"
	"github.com/Dias221467/goai-backend/pkg/middleware"
)

// stores bundles one backend's repositories.
type stores struct {
	goals     repository.Store[*models.Goal]
	tasks     repository.Store[*models.Task]
	habits    repository.Store[*models.Habit]
	progress  repository.Store[*models.ProgressEvent]
	brainDump repository.Store[*models.BrainDumpItem]
	settings  repository.Store[*models.NotificationSetting]
	users     repository.UserRepository
	health    handlers.HealthCheck
	closers   []func() error
}

func (s *stores) Close() {
	// Reverse order: the database handle is registered first.
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			logger.Log.WithError(err).Warn("Error while closing storage")
		}
	}
}

func badgerStore[T models.Owned](s *stores, db *badger.DB, collection string, newFn func() T) (repository.Store[T], error) {
	store, err := repository.NewBadgerStore(db, collection, newFn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s store: %w", collection, err)
	}
	s.closers = append(s.closers, store.Close)
	return store, nil
}

func openBadger(cfg *config.Config) (_ *stores, err error) {
	db, err := database.OpenBadger(cfg.BadgerPath)
	if err != nil {
		return nil, fmt.Errorf("database connection error: %w", err)
	}

	s := &stores{closers: []func() error{db.Close}}
	defer func() {
		if err != nil {
			s.Close()
		}
	}()

	if s.goals, err = badgerStore(s, db, models.CollectionGoals, func() *models.Goal { return &models.Goal{} }); err != nil {
		return nil, err
	}
	if s.tasks, err = badgerStore(s, db, models.CollectionTasks, func() *models.Task { return &models.Task{} }); err != nil {
		return nil, err
	}
	if s.habits, err = badgerStore(s, db, models.CollectionHabits, func() *models.Habit { return &models.Habit{} }); err != nil {
		return nil, err
	}
	if s.progress, err = badgerStore(s, db, models.CollectionProgress, func() *models.ProgressEvent { return &models.ProgressEvent{} }); err != nil {
		return nil, err
	}
	if s.brainDump, err = badgerStore(s, db, models.CollectionBrainDump, func() *models.BrainDumpItem { return &models.BrainDumpItem{} }); err != nil {
		return nil, err
	}
	if s.settings, err = badgerStore(s, db, models.CollectionSettings, func() *models.NotificationSetting { return &models.NotificationSetting{} }); err != nil {
		return nil, err
	}

	users, err := repository.NewBadgerUserRepository(db)
	if err != nil {
		return nil, fmt.Errorf("failed to open user store: %w", err)
	}
	s.users = users
	s.closers = append(s.closers, users.Close)

	s.health = func(context.Context) error {
		if db.IsClosed() {
			return errors.New("badger is closed")
		}
		return nil
	}
	return s, nil
}

func openMongo(ctx context.Context, cfg *config.Config) (*stores, error) {
	db, err := database.ConnectDB(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		return nil, fmt.Errorf("database connection error: %w", err)
	}

	client := db.Client()
	return &stores{
		goals:     repository.NewMongoStore(db, models.CollectionGoals, func() *models.Goal { return &models.Goal{} }),
		tasks:     repository.NewMongoStore(db, models.CollectionTasks, func() *models.Task { return &models.Task{} }),
		habits:    repository.NewMongoStore(db, models.CollectionHabits, func() *models.Habit { return &models.Habit{} }),
		progress:  repository.NewMongoStore(db, models.CollectionProgress, func() *models.ProgressEvent { return &models.ProgressEvent{} }),
		brainDump: repository.NewMongoStore(db, models.CollectionBrainDump, func() *models.BrainDumpItem { return &models.BrainDumpItem{} }),
		settings:  repository.NewMongoStore(db, models.CollectionSettings, func() *models.NotificationSetting { return &models.NotificationSetting{} }),
		users:     repository.NewMongoUserRepository(db),
		health:    func(ctx context.Context) error { return client.Ping(ctx, nil) },
		closers:   []func() error{disconnect(client)},
	}, nil
}

func disconnect(client *mongo.Client) func() error {
	return func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return client.Disconnect(ctx)
	}
}

func main() {
	if err := run(); err != nil {
		logger.Log.Fatal(err)
	}
}

// run starts the server and blocks until SIGINT or SIGTERM. Deferred cleanup runs on every
// return path.
func run() error {
	// Load configuration from .env file and the environment
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger.InitLogger(cfg.LogLevel)
	logger.Log.Info("Logger initialized")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	var st *stores
	switch cfg.StorageDriver {
	case config.StorageMongo:
		st, err = openMongo(ctx, cfg)
	default:
		st, err = openBadger(cfg)
	}
	cancel()
	if err != nil {
		return err
	}
	defer st.Close()
	logger.Log.WithField("driver", cfg.StorageDriver).Info("Storage ready")

	// --- Services ---
	goalService := services.NewGoalService(st.goals)
	taskService := services.NewTaskService(st.tasks)
	progressService := services.NewProgressService(st.progress)
	habitService := services.NewHabitService(st.habits, progressService)
	brainDumpService := services.NewBrainDumpService(st.brainDump, taskService, goalService)
	settingsService := services.NewSettingsService(st.settings)
	userService := services.NewUserService(st.users)
	authService := services.NewAuthService(userService, cfg.JWTSecret, cfg.TokenExpiry)
	analyticsService := services.NewAnalyticsService(st.goals, st.tasks, st.habits, st.progress, st.brainDump)

	// --- Identity ---
	var authenticator middleware.Authenticator = middleware.NewJWTAuthenticator(cfg.JWTSecret)
	if cfg.AuthMode == config.AuthModeMock {
		user, err := userService.EnsureUser(context.Background(), cfg.MockUsername, cfg.MockEmail)
		if err != nil {
			return fmt.Errorf("failed to prepare mock user: %w", err)
		}
		authenticator = &middleware.StaticAuthenticator{UserID: user.ID, Username: user.Username}
		logger.Log.WithField("username", user.Username).Warn("AUTH_MODE=mock: every request is treated as this user")
	}

	loginLimiter := middleware.NewRateLimiter(cfg.LoginRateLimit, time.Minute)
	loginLimiter.StartCleanup(5*time.Minute, 10*time.Minute)
	defer loginLimiter.Stop()

	router := handlers.NewRouter(handlers.RouterDeps{
		APIPrefix:     cfg.APIPrefix,
		CORSOrigins:   cfg.CORSOrigins,
		Authenticator: authenticator,
		LoginLimiter:  loginLimiter,
		Health:        st.health,
		Goals:         goalService,
		Tasks:         taskService,
		Habits:        habitService,
		BrainDump:     brainDumpService,
		Settings:      settingsService,
		Users:         userService,
		Auth:          authService,
		Analytics:     analyticsService,
	})

	// --- Reminders ---
	if cfg.RemindersEnabled {
		if !cfg.SMTPConfigured() {
			logger.Log.Warn("REMINDERS_ENABLED is set but SMTP is not configured; reminders disabled")
		} else {
			sender := email.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPSender, cfg.SMTPPassword)
			job := jobs.NewReminderJob(settingsService, taskService, userService, sender)
			c, err := scheduler.StartReminderCronJobs(scheduler.RunnerFunc(func(ctx context.Context, frequency string) error {
				_, err := job.Run(ctx, frequency)
				return err
			}))
			if err != nil {
				return fmt.Errorf("failed to schedule reminders: %w", err)
			}
			defer c.Stop()
		}
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Log.Infof("Server running on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	case <-quit:
	}
	logger.Log.Info("Shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.WithError(err).Error("Graceful shutdown failed")
	}
	return nil
}
