// Package repository persists tracker records. Every owned entity goes through Store;
// users have their own repository because they carry unique username and email keys.
package repository

import (
	"context"
	"fmt"

	"github.com/Dias221467/goai-backend/internal/models"
)

// Store is the storage contract shared by every owned record type.
// Implementations allocate ids themselves and are safe for concurrent use.
type Store[T models.Owned] interface {
	// Create assigns the next id to item and persists it.
	Create(ctx context.Context, item T) (T, error)
	// Get returns apperrors.ErrNotFound when no record has the id.
	Get(ctx context.Context, id int64) (T, error)
	// List returns the records owned by userID in id order.
	List(ctx context.Context, userID int64) ([]T, error)
	All(ctx context.Context) ([]T, error)
	// Update applies mutate to the stored record and saves the result in one step.
	// An error from mutate aborts the update and is returned as is.
	Update(ctx context.Context, id int64, mutate func(T) error) (T, error)
	// Put creates or replaces the record stored under item's own id.
	Put(ctx context.Context, item T) error
	Delete(ctx context.Context, id int64) error
}

// UserRepository stores accounts. CreateUser fails with apperrors.ErrConflict when the
// username or email is already taken.
type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

func recordKey(prefix string, id int64) []byte {
	return []byte(fmt.Sprintf("%s:%020d", prefix, id))
}

func prefixKey(prefix string) []byte {
	return []byte(prefix + ":")
}
