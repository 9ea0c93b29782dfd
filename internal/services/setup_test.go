package services

import (
	"testing"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/require"

	"github.com/Dias221467/goai-backend/internal/database"
	"github.com/Dias221467/goai-backend/internal/models"
	"github.com/Dias221467/goai-backend/internal/repository"
	"github.com/Dias221467/goai-backend/pkg/logger"
)

type testEnv struct {
	goalStore     *repository.BadgerStore[*models.Goal]
	taskStore     *repository.BadgerStore[*models.Task]
	habitStore    *repository.BadgerStore[*models.Habit]
	progressStore *repository.BadgerStore[*models.ProgressEvent]
	brainStore    *repository.BadgerStore[*models.BrainDumpItem]
	settingsStore *repository.BadgerStore[*models.NotificationSetting]
	userRepo      *repository.BadgerUserRepository

	goals     *GoalService
	tasks     *TaskService
	habits    *HabitService
	brainDump *BrainDumpService
	settings  *SettingsService
	users     *UserService
	analytics *AnalyticsService
}

func newStore[T models.Owned](t *testing.T, db *badger.DB, collection string, newFn func() T) *repository.BadgerStore[T] {
	store, err := repository.NewBadgerStore(db, collection, newFn)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func setupEnv(t *testing.T) *testEnv {
	logger.Silence()

	db, err := database.OpenBadger("")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	userRepo, err := repository.NewBadgerUserRepository(db)
	require.NoError(t, err)
	t.Cleanup(func() { userRepo.Close() })

	env := &testEnv{
		goalStore:     newStore(t, db, models.CollectionGoals, func() *models.Goal { return &models.Goal{} }),
		taskStore:     newStore(t, db, models.CollectionTasks, func() *models.Task { return &models.Task{} }),
		habitStore:    newStore(t, db, models.CollectionHabits, func() *models.Habit { return &models.Habit{} }),
		progressStore: newStore(t, db, models.CollectionProgress, func() *models.ProgressEvent { return &models.ProgressEvent{} }),
		brainStore:    newStore(t, db, models.CollectionBrainDump, func() *models.BrainDumpItem { return &models.BrainDumpItem{} }),
		settingsStore: newStore(t, db, models.CollectionSettings, func() *models.NotificationSetting { return &models.NotificationSetting{} }),
		userRepo:      userRepo,
	}

	env.goals = NewGoalService(env.goalStore)
	env.tasks = NewTaskService(env.taskStore)
	env.habits = NewHabitService(env.habitStore, NewProgressService(env.progressStore))
	env.brainDump = NewBrainDumpService(env.brainStore, env.tasks, env.goals)
	env.settings = NewSettingsService(env.settingsStore)
	env.users = NewUserService(userRepo)
	env.analytics = NewAnalyticsService(env.goalStore, env.taskStore, env.habitStore, env.progressStore, env.brainStore)
	return env
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }
func int64Ptr(i int64) *int64 { return &i }
