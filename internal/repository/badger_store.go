package repository

import (
	"context"
	"errors"
	"fmt"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/Dias221467/goai-backend/internal/apperrors"
	"github.com/Dias221467/goai-backend/internal/models"
	"github.com/Dias221467/goai-backend/pkg/logger"
)

const (
	sequenceBandwidth = 100
	maxTxnRetries     = 3
)

// BadgerStore keeps records as JSON under "<collection>:<zero padded id>" keys.
type BadgerStore[T models.Owned] struct {
	db     *badger.DB
	prefix string
	seq    *badger.Sequence
	newFn  func() T
}

func NewBadgerStore[T models.Owned](db *badger.DB, collection string, newFn func() T) (*BadgerStore[T], error) {
	seq, err := db.GetSequence([]byte("seq:"+collection), sequenceBandwidth)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s sequence: %w", collection, err)
	}
	return &BadgerStore[T]{db: db, prefix: collection, seq: seq, newFn: newFn}, nil
}

// Close returns unused leased ids to the sequence.
func (s *BadgerStore[T]) Close() error {
	return s.seq.Release()
}

func (s *BadgerStore[T]) nextID() (int64, error) {
	n, err := s.seq.Next()
	if err != nil {
		return 0, fmt.Errorf("failed to allocate %s id: %w", s.prefix, err)
	}
	// Sequences start at zero; ids start at one.
	return int64(n) + 1, nil
}

func (s *BadgerStore[T]) Create(ctx context.Context, item T) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}

	id, err := s.nextID()
	if err != nil {
		return zero, err
	}
	item.SetID(id)

	data, err := json.Marshal(item)
	if err != nil {
		return zero, fmt.Errorf("failed to encode %s: %w", s.prefix, err)
	}
	if err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(recordKey(s.prefix, id), data)
	}); err != nil {
		logger.Log.WithError(err).WithField("collection", s.prefix).Error("Failed to insert record")
		return zero, fmt.Errorf("failed to insert %s: %w", s.prefix, err)
	}
	return item, nil
}

func (s *BadgerStore[T]) Get(ctx context.Context, id int64) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}

	var item T
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		item, err = s.read(txn, id)
		return err
	})
	if err != nil {
		return zero, err
	}
	return item, nil
}

func (s *BadgerStore[T]) List(ctx context.Context, userID int64) ([]T, error) {
	return s.scan(ctx, func(item T) bool { return item.OwnerID() == userID })
}

func (s *BadgerStore[T]) All(ctx context.Context) ([]T, error) {
	return s.scan(ctx, func(T) bool { return true })
}

func (s *BadgerStore[T]) Update(ctx context.Context, id int64, mutate func(T) error) (T, error) {
	var zero T
	var updated T
	err := s.retry(ctx, func(txn *badger.Txn) error {
		item, err := s.read(txn, id)
		if err != nil {
			return err
		}
		if err := mutate(item); err != nil {
			return err
		}
		item.SetID(id)
		if err := s.write(txn, item); err != nil {
			return err
		}
		updated = item
		return nil
	})
	if err != nil {
		return zero, err
	}
	return updated, nil
}

func (s *BadgerStore[T]) Put(ctx context.Context, item T) error {
	return s.retry(ctx, func(txn *badger.Txn) error {
		return s.write(txn, item)
	})
}

func (s *BadgerStore[T]) Delete(ctx context.Context, id int64) error {
	return s.retry(ctx, func(txn *badger.Txn) error {
		key := recordKey(s.prefix, id)
		if _, err := txn.Get(key); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return apperrors.ErrNotFound
			}
			return err
		}
		return txn.Delete(key)
	})
}

// retry runs fn in a read-write transaction, retrying when badger reports a write conflict.
func (s *BadgerStore[T]) retry(ctx context.Context, fn func(txn *badger.Txn) error) error {
	var err error
	for attempt := 0; attempt < maxTxnRetries; attempt++ {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		err = s.db.Update(fn)
		if !errors.Is(err, badger.ErrConflict) {
			return err
		}
		logger.Log.WithField("collection", s.prefix).Debug("Transaction conflict, retrying")
	}
	return fmt.Errorf("%s transaction kept conflicting: %w", s.prefix, err)
}

func (s *BadgerStore[T]) read(txn *badger.Txn, id int64) (T, error) {
	var zero T
	entry, err := txn.Get(recordKey(s.prefix, id))
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return zero, apperrors.ErrNotFound
		}
		return zero, fmt.Errorf("failed to read %s: %w", s.prefix, err)
	}

	item := s.newFn()
	if err := entry.Value(func(val []byte) error {
		return json.Unmarshal(val, item)
	}); err != nil {
		return zero, fmt.Errorf("failed to decode %s: %w", s.prefix, err)
	}
	return item, nil
}

func (s *BadgerStore[T]) write(txn *badger.Txn, item T) error {
	data, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", s.prefix, err)
	}
	return txn.Set(recordKey(s.prefix, item.GetID()), data)
}

func (s *BadgerStore[T]) scan(ctx context.Context, keep func(T) bool) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	results := []T{}
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchSize = 100
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := prefixKey(s.prefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := s.newFn()
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, item)
			}); err != nil {
				return fmt.Errorf("failed to decode %s: %w", s.prefix, err)
			}
			if keep(item) {
				results = append(results, item)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}
