package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dias221467/goai-backend/internal/apperrors"
	"github.com/Dias221467/goai-backend/internal/models"
)

func TestGoalTaskScenario(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	goal, err := env.goals.Create(ctx, 1, models.GoalCreate{Title: "Learn Rust"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), goal.ID)
	assert.Equal(t, int64(1), goal.UserID)
	assert.Equal(t, models.GoalStatusPending, goal.Status)
	assert.False(t, goal.CreatedAt.IsZero())

	task, err := env.tasks.Create(ctx, 1, models.TaskCreate{Title: "Read ch.1", GoalID: int64Ptr(1)})
	require.NoError(t, err)
	assert.Equal(t, int64(1), task.ID)
	assert.False(t, task.Completed)

	updated, err := env.tasks.Update(ctx, 1, task.ID, models.TaskUpdate{Completed: boolPtr(true)})
	require.NoError(t, err)
	assert.True(t, updated.Completed)
	assert.Equal(t, "Read ch.1", updated.Title)
	require.NotNil(t, updated.GoalID)
	assert.Equal(t, int64(1), *updated.GoalID)

	_, err = env.tasks.Get(ctx, 2, task.ID)
	require.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Equal(t, "Task not found", err.Error())

	require.NoError(t, env.tasks.Delete(ctx, 1, task.ID))
	_, err = env.tasks.Get(ctx, 1, task.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	err = env.tasks.Delete(ctx, 1, task.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestCreateGetRoundTrip(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	due := models.NewDate(2025, time.June, 1)

	created, err := env.goals.Create(ctx, 4, models.GoalCreate{Title: "Ship", Description: strPtr("v1"), DueDate: &due, Status: "active"})
	require.NoError(t, err)

	got, err := env.goals.Get(ctx, 4, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Title, got.Title)
	assert.Equal(t, *created.Description, *got.Description)
	assert.True(t, got.DueDate.Equal(due))
	assert.Equal(t, "active", got.Status)
	assert.True(t, created.CreatedAt.Equal(got.CreatedAt))
}

// assertIsolated checks that user 2 can neither see nor change a record owned by user 1.
func assertIsolated[T models.Owned, C any, U any](t *testing.T, svc *CRUDService[T, C, U], create C, update U) {
	ctx := context.Background()

	item, err := svc.Create(ctx, 1, create)
	require.NoError(t, err)

	list, err := svc.List(ctx, 2)
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = svc.Get(ctx, 2, item.GetID())
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = svc.Update(ctx, 2, item.GetID(), update)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, 2, item.GetID()), apperrors.ErrNotFound)

	got, err := svc.Get(ctx, 1, item.GetID())
	require.NoError(t, err)
	assert.Equal(t, item, got)
}

func TestIsolationBetweenUsers(t *testing.T) {
	env := setupEnv(t)

	tests := []struct {
		name string
		run  func(t *testing.T)
	}{
		{"goal", func(t *testing.T) {
			assertIsolated(t, env.goals, models.GoalCreate{Title: "Run"}, models.GoalUpdate{Title: strPtr("hijacked")})
		}},
		{"task", func(t *testing.T) {
			assertIsolated(t, env.tasks, models.TaskCreate{Title: "Read"}, models.TaskUpdate{Completed: boolPtr(true)})
		}},
		{"habit", func(t *testing.T) {
			assertIsolated(t, env.habits.CRUDService, models.HabitCreate{Name: "Meditate", Frequency: "daily"}, models.HabitUpdate{Name: strPtr("hijacked")})
		}},
		{"brain dump", func(t *testing.T) {
			assertIsolated(t, env.brainDump.CRUDService, models.BrainDumpItemCreate{Content: "idea"}, models.BrainDumpItemUpdate{Processed: boolPtr(true)})
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, tt.run)
	}
}

func TestUpdateClearsNullableFields(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	due := time.Date(2024, time.May, 1, 9, 30, 0, 123456789, time.UTC)

	task, err := env.tasks.Create(ctx, 1, models.TaskCreate{Title: "Read", Description: strPtr("ch.1"), DueDate: &due, GoalID: int64Ptr(1)})
	require.NoError(t, err)
	assert.True(t, task.DueDate.Equal(due.Truncate(time.Millisecond)))

	updated, err := env.tasks.Update(ctx, 1, task.ID, models.TaskUpdate{
		DueDate: models.Null[time.Time](),
		GoalID:  models.Null[int64](),
	})
	require.NoError(t, err)
	assert.Nil(t, updated.DueDate)
	assert.Nil(t, updated.GoalID)
	require.NotNil(t, updated.Description)
	assert.Equal(t, "ch.1", *updated.Description)

	relinked, err := env.tasks.Update(ctx, 1, task.ID, models.TaskUpdate{GoalID: models.Some[int64](7)})
	require.NoError(t, err)
	require.NotNil(t, relinked.GoalID)
	assert.Equal(t, int64(7), *relinked.GoalID)

	goal, err := env.goals.Create(ctx, 1, models.GoalCreate{Title: "Run", Description: strPtr("5k")})
	require.NoError(t, err)
	cleared, err := env.goals.Update(ctx, 1, goal.ID, models.GoalUpdate{Description: models.Null[string]()})
	require.NoError(t, err)
	assert.Nil(t, cleared.Description)
	assert.Equal(t, "Run", cleared.Title)
}

func TestTimestampsAreMillisecondPrecision(t *testing.T) {
	env := setupEnv(t)
	goal, err := env.goals.Create(context.Background(), 1, models.GoalCreate{Title: "Run"})
	require.NoError(t, err)
	assert.Equal(t, goal.CreatedAt, goal.CreatedAt.Truncate(time.Millisecond))
}

func TestPartialUpdateKeepsUnsetFields(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	goal, err := env.goals.Create(ctx, 1, models.GoalCreate{Title: "Run", Description: strPtr("5k")})
	require.NoError(t, err)

	updated, err := env.goals.Update(ctx, 1, goal.ID, models.GoalUpdate{Status: strPtr(models.GoalStatusCompleted)})
	require.NoError(t, err)
	assert.Equal(t, "Run", updated.Title)
	require.NotNil(t, updated.Description)
	assert.Equal(t, "5k", *updated.Description)
	assert.Equal(t, models.GoalStatusCompleted, updated.Status)
	assert.True(t, goal.CreatedAt.Equal(updated.CreatedAt))
}

func TestCreateValidation(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	_, err := env.goals.Create(ctx, 1, models.GoalCreate{})
	require.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Equal(t, "title is required", err.Error())

	_, err = env.habits.Create(ctx, 1, models.HabitCreate{Name: "Read"})
	require.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Equal(t, "frequency is required", err.Error())

	_, err = env.brainDump.Create(ctx, 1, models.BrainDumpItemCreate{})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestUpdateMissingRecord(t *testing.T) {
	env := setupEnv(t)
	_, err := env.goals.Update(context.Background(), 1, 404, models.GoalUpdate{Title: strPtr("x")})
	require.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Equal(t, "Goal not found", err.Error())
}
