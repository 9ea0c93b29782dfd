package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dias221467/goai-backend/internal/apperrors"
	"github.com/Dias221467/goai-backend/internal/models"
	"github.com/Dias221467/goai-backend/internal/repository"
)

func TestMarkProcessed(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	item, err := env.brainDump.Create(ctx, 1, models.BrainDumpItemCreate{Content: "call the dentist"})
	require.NoError(t, err)
	assert.False(t, item.Processed)

	processed, err := env.brainDump.MarkProcessed(ctx, 1, item.ID)
	require.NoError(t, err)
	assert.True(t, processed.Processed)
	assert.Equal(t, "call the dentist", processed.Content)

	_, err = env.brainDump.MarkProcessed(ctx, 2, item.ID)
	require.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Equal(t, "Brain dump item not found", err.Error())
}

func TestPromote(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	t.Run("to task by default", func(t *testing.T) {
		item, err := env.brainDump.Create(ctx, 1, models.BrainDumpItemCreate{Content: " buy running shoes "})
		require.NoError(t, err)

		created, err := env.brainDump.Promote(ctx, 1, item.ID, "")
		require.NoError(t, err)
		task, ok := created.(*models.Task)
		require.True(t, ok)
		assert.Equal(t, "buy running shoes", task.Title)
		assert.Equal(t, int64(1), task.UserID)

		got, err := env.brainDump.Get(ctx, 1, item.ID)
		require.NoError(t, err)
		assert.True(t, got.Processed)
	})

	t.Run("to goal", func(t *testing.T) {
		item, err := env.brainDump.Create(ctx, 1, models.BrainDumpItemCreate{Content: "learn piano"})
		require.NoError(t, err)

		created, err := env.brainDump.Promote(ctx, 1, item.ID, models.PromoteToGoal)
		require.NoError(t, err)
		goal, ok := created.(*models.Goal)
		require.True(t, ok)
		assert.Equal(t, "learn piano", goal.Title)
		assert.Equal(t, models.GoalStatusPending, goal.Status)
	})

	t.Run("bad target", func(t *testing.T) {
		_, err := env.brainDump.Promote(ctx, 1, 1, "habit")
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})

	t.Run("foreign item", func(t *testing.T) {
		item, err := env.brainDump.Create(ctx, 1, models.BrainDumpItemCreate{Content: "secret"})
		require.NoError(t, err)
		_, err = env.brainDump.Promote(ctx, 2, item.ID, models.PromoteToTask)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)

		tasks, err := env.tasks.List(ctx, 2)
		require.NoError(t, err)
		assert.Empty(t, tasks)
	})
}

// readOnlyStore rejects every update.
type readOnlyStore struct {
	repository.Store[*models.BrainDumpItem]
}

func (readOnlyStore) Update(context.Context, int64, func(*models.BrainDumpItem) error) (*models.BrainDumpItem, error) {
	return nil, errors.New("store is read-only")
}

func TestPromoteRejectsBlankContent(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	item, err := env.brainDump.Create(ctx, 1, models.BrainDumpItemCreate{Content: "   "})
	require.NoError(t, err)

	_, err = env.brainDump.Promote(ctx, 1, item.ID, models.PromoteToTask)
	require.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Equal(t, "Brain dump item has no content to promote", err.Error())

	tasks, err := env.tasks.List(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestPromoteRemovesRecordWhenMarkFails(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	svc := NewBrainDumpService(readOnlyStore{env.brainStore}, env.tasks, env.goals)

	item, err := svc.Create(ctx, 1, models.BrainDumpItemCreate{Content: "write blog post"})
	require.NoError(t, err)

	for _, target := range []string{models.PromoteToTask, models.PromoteToGoal} {
		_, err = svc.Promote(ctx, 1, item.ID, target)
		require.Error(t, err, target)
	}

	tasks, err := env.tasks.List(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, tasks)
	goals, err := env.goals.List(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, goals)

	got, err := env.brainDump.Get(ctx, 1, item.ID)
	require.NoError(t, err)
	assert.False(t, got.Processed)
}
