package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Dias221467/goai-backend/internal/apperrors"
	"github.com/Dias221467/goai-backend/internal/models"
	"github.com/Dias221467/goai-backend/pkg/logger"
)

// MongoStore keeps one collection per record type with the int64 id as _id.
type MongoStore[T models.Owned] struct {
	collection *mongo.Collection
	counters   *mongo.Collection
	name       string
	newFn      func() T
}

func NewMongoStore[T models.Owned](db *mongo.Database, collection string, newFn func() T) *MongoStore[T] {
	return &MongoStore[T]{
		collection: db.Collection(collection),
		counters:   db.Collection(models.CollectionSequences),
		name:       collection,
		newFn:      newFn,
	}
}

// nextSequence increments the named counter document and returns its new value.
func nextSequence(ctx context.Context, counters *mongo.Collection, name string) (int64, error) {
	var counter struct {
		Seq int64 `bson:"seq"`
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	err := counters.FindOneAndUpdate(ctx, bson.M{"_id": name}, bson.M{"$inc": bson.M{"seq": int64(1)}}, opts).Decode(&counter)
	if err != nil {
		return 0, fmt.Errorf("failed to allocate %s id: %w", name, err)
	}
	return counter.Seq, nil
}

func (s *MongoStore[T]) Create(ctx context.Context, item T) (T, error) {
	var zero T
	id, err := nextSequence(ctx, s.counters, s.name)
	if err != nil {
		return zero, err
	}
	item.SetID(id)

	if _, err := s.collection.InsertOne(ctx, item); err != nil {
		logger.Log.WithError(err).WithField("collection", s.name).Error("Failed to insert record")
		return zero, fmt.Errorf("failed to insert %s: %w", s.name, err)
	}
	return item, nil
}

func (s *MongoStore[T]) Get(ctx context.Context, id int64) (T, error) {
	var zero T
	item := s.newFn()
	if err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(item); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return zero, apperrors.ErrNotFound
		}
		return zero, fmt.Errorf("failed to get %s: %w", s.name, err)
	}
	return item, nil
}

func (s *MongoStore[T]) List(ctx context.Context, userID int64) ([]T, error) {
	return s.find(ctx, bson.M{"user_id": userID})
}

func (s *MongoStore[T]) All(ctx context.Context) ([]T, error) {
	return s.find(ctx, bson.M{})
}

func (s *MongoStore[T]) find(ctx context.Context, filter bson.M) ([]T, error) {
	cursor, err := s.collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", s.name, err)
	}
	defer cursor.Close(ctx)

	results := []T{}
	for cursor.Next(ctx) {
		item := s.newFn()
		if err := cursor.Decode(item); err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", s.name, err)
		}
		results = append(results, item)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", s.name, err)
	}
	return results, nil
}

// maxUpdateAttempts bounds how often Update re-reads a document that changed under it.
const maxUpdateAttempts = 10

// Update replaces the document only if it still matches what was read, so concurrent
// updates cannot overwrite each other. On a lost race it reads again and reapplies mutate.
func (s *MongoStore[T]) Update(ctx context.Context, id int64, mutate func(T) error) (T, error) {
	var zero T
	for attempt := 0; attempt < maxUpdateAttempts; attempt++ {
		original, err := s.collection.FindOne(ctx, bson.M{"_id": id}).Raw()
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return zero, apperrors.ErrNotFound
			}
			return zero, fmt.Errorf("failed to get %s: %w", s.name, err)
		}

		item := s.newFn()
		if err := bson.Unmarshal(original, item); err != nil {
			return zero, fmt.Errorf("failed to decode %s: %w", s.name, err)
		}
		if err := mutate(item); err != nil {
			return zero, err
		}
		item.SetID(id)

		res, err := s.collection.ReplaceOne(ctx, original, item)
		if err != nil {
			logger.Log.WithError(err).WithFields(logrus.Fields{"collection": s.name, "id": id}).Error("Failed to update record")
			return zero, fmt.Errorf("failed to update %s: %w", s.name, err)
		}
		if res.MatchedCount == 1 {
			return item, nil
		}
		if err := ctx.Err(); err != nil {
			return zero, err
		}
	}
	return zero, fmt.Errorf("failed to update %s %d: document kept changing", s.name, id)
}

func (s *MongoStore[T]) Put(ctx context.Context, item T) error {
	_, err := s.collection.ReplaceOne(ctx, bson.M{"_id": item.GetID()}, item, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to save %s: %w", s.name, err)
	}
	return nil
}

func (s *MongoStore[T]) Delete(ctx context.Context, id int64) error {
	res, err := s.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", s.name, err)
	}
	if res.DeletedCount == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
