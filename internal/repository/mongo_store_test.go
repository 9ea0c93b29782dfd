package repository

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Dias221467/goai-backend/internal/apperrors"
	"github.com/Dias221467/goai-backend/internal/database"
	"github.com/Dias221467/goai-backend/internal/models"
)

// setupMongo connects to MONGO_TEST_URI and returns a throwaway database.
func setupMongo(t *testing.T) *mongo.Database {
	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("MONGO_TEST_URI not set")
	}
	ctx := context.Background()
	db, err := database.ConnectDB(ctx, uri, fmt.Sprintf("goai_test_%d", time.Now().UnixNano()))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Drop(context.Background())
		_ = db.Client().Disconnect(context.Background())
	})
	return db
}

func TestMongoStore(t *testing.T) {
	db := setupMongo(t)
	ctx := context.Background()
	store := NewMongoStore(db, models.CollectionTasks, func() *models.Task { return &models.Task{} })

	created := time.Now().UTC().Truncate(time.Millisecond)
	a, err := store.Create(ctx, &models.Task{UserID: 1, Title: "a", CreatedAt: created, DueDate: &created})
	require.NoError(t, err)
	assert.Equal(t, int64(1), a.ID)

	fetched, err := store.Get(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, a.CreatedAt, fetched.CreatedAt)
	require.NotNil(t, fetched.DueDate)
	assert.True(t, a.DueDate.Equal(*fetched.DueDate))
	_, err = store.Create(ctx, &models.Task{UserID: 2, Title: "b"})
	require.NoError(t, err)

	mine, err := store.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "a", mine[0].Title)

	updated, err := store.Update(ctx, a.ID, func(task *models.Task) error {
		task.Completed = true
		return nil
	})
	require.NoError(t, err)
	assert.True(t, updated.Completed)

	require.NoError(t, store.Delete(ctx, a.ID))
	assert.ErrorIs(t, store.Delete(ctx, a.ID), apperrors.ErrNotFound)
	_, err = store.Get(ctx, a.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestMongoStoreConcurrentUpdates(t *testing.T) {
	db := setupMongo(t)
	ctx := context.Background()
	store := NewMongoStore(db, models.CollectionTasks, func() *models.Task { return &models.Task{} })

	task, err := store.Create(ctx, &models.Task{UserID: 1, Title: "counter"})
	require.NoError(t, err)

	const writers = 8
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.Update(ctx, task.ID, func(rec *models.Task) error {
				n := int64(1)
				if rec.GoalID != nil {
					n = *rec.GoalID + 1
				}
				rec.GoalID = &n
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := store.Get(ctx, task.ID)
	require.NoError(t, err)
	require.NotNil(t, got.GoalID)
	assert.Equal(t, int64(writers), *got.GoalID)
}

func TestMongoUserRepository(t *testing.T) {
	db := setupMongo(t)
	ctx := context.Background()
	repo := NewMongoUserRepository(db)

	u, err := repo.CreateUser(ctx, &models.User{Username: "alice", Email: "alice@example.com", HashedPassword: "h"})
	require.NoError(t, err)

	got, err := repo.GetUserByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.Equal(t, "h", got.HashedPassword)

	_, err = repo.CreateUser(ctx, &models.User{Username: "alice", Email: "x@example.com"})
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}
