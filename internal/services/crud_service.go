package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Dias221467/goai-backend/internal/apperrors"
	"github.com/Dias221467/goai-backend/internal/metrics"
	"github.com/Dias221467/goai-backend/internal/models"
	"github.com/Dias221467/goai-backend/internal/repository"
	"github.com/Dias221467/goai-backend/internal/validation"
	"github.com/Dias221467/goai-backend/pkg/logger"
)

// CRUDService implements create, list, get, partial update and delete for one owned
// record type. T is the stored record, C the create payload and U the update payload.
type CRUDService[T models.Owned, C any, U any] struct {
	store    repository.Store[T]
	resource string
	build    func(userID int64, createdAt time.Time, payload C) T
	merge    func(item T, payload U)
}

func NewCRUDService[T models.Owned, C any, U any](
	store repository.Store[T],
	resource string,
	build func(userID int64, createdAt time.Time, payload C) T,
	merge func(item T, payload U),
) *CRUDService[T, C, U] {
	return &CRUDService[T, C, U]{store: store, resource: resource, build: build, merge: merge}
}

// now is the creation timestamp, at the millisecond precision BSON keeps.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

// Resource is the display name used in "{Resource} not found".
func (s *CRUDService[T, C, U]) Resource() string {
	return s.resource
}

func (s *CRUDService[T, C, U]) log(userID, id int64) *logrus.Entry {
	fields := logrus.Fields{"resource": s.resource, "user_id": userID}
	if id != 0 {
		fields["id"] = id
	}
	return logger.Log.WithFields(fields)
}

// Create validates payload and stores a new record owned by userID.
func (s *CRUDService[T, C, U]) Create(ctx context.Context, userID int64, payload C) (T, error) {
	var zero T
	if err := validation.ValidateStruct(payload); err != nil {
		s.log(userID, 0).WithError(err).Warn("Rejected create payload")
		return zero, err
	}

	item, err := s.store.Create(ctx, s.build(userID, now(), payload))
	if err != nil {
		s.log(userID, 0).WithError(err).Error("Failed to create record")
		return zero, fmt.Errorf("failed to create %s: %w", s.resource, err)
	}

	metrics.RecordsCreated.WithLabelValues(s.resource).Inc()
	s.log(userID, item.GetID()).Info("Record created")
	return item, nil
}

// List returns every record owned by userID.
func (s *CRUDService[T, C, U]) List(ctx context.Context, userID int64) ([]T, error) {
	items, err := s.store.List(ctx, userID)
	if err != nil {
		s.log(userID, 0).WithError(err).Error("Failed to list records")
		return nil, fmt.Errorf("failed to list %s: %w", s.resource, err)
	}
	return items, nil
}

// Get returns the record when it exists and belongs to userID. A record owned by someone
// else yields the same NotFound as a missing one.
func (s *CRUDService[T, C, U]) Get(ctx context.Context, userID, id int64) (T, error) {
	var zero T
	item, err := s.store.Get(ctx, id)
	if err != nil {
		return zero, s.wrap(err, "get")
	}
	if item.OwnerID() != userID {
		s.log(userID, id).Warn("Access to foreign record")
		return zero, apperrors.NotFound(s.resource)
	}
	return item, nil
}

// Update merges the supplied fields of payload into the stored record.
func (s *CRUDService[T, C, U]) Update(ctx context.Context, userID, id int64, payload U) (T, error) {
	var zero T
	if err := validation.ValidateStruct(payload); err != nil {
		return zero, err
	}

	item, err := s.store.Update(ctx, id, func(item T) error {
		if item.OwnerID() != userID {
			return apperrors.NotFound(s.resource)
		}
		s.merge(item, payload)
		return nil
	})
	if err != nil {
		return zero, s.wrap(err, "update")
	}

	s.log(userID, id).Info("Record updated")
	return item, nil
}

// Delete removes the record permanently. A second delete reports NotFound.
func (s *CRUDService[T, C, U]) Delete(ctx context.Context, userID, id int64) error {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return s.wrap(err, "delete")
	}

	s.log(userID, id).Info("Record deleted")
	return nil
}

// wrap turns a bare storage ErrNotFound into the resource-named error and wraps the rest.
func (s *CRUDService[T, C, U]) wrap(err error, op string) error {
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		return err
	}
	if errors.Is(err, apperrors.ErrNotFound) {
		return apperrors.NotFound(s.resource)
	}
	logger.Log.WithError(err).WithField("resource", s.resource).Errorf("Failed to %s record", op)
	return fmt.Errorf("failed to %s %s: %w", op, s.resource, err)
}
