package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Dias221467/goai-backend/internal/apperrors"
	"github.com/Dias221467/goai-backend/internal/models"
	"github.com/Dias221467/goai-backend/pkg/logger"
)

const (
	usernameIndexPrefix = "user_username"
	emailIndexPrefix    = "user_email"

	msgUsernameTaken = "Username already registered"
	msgEmailTaken    = "Email already registered"
)

// userRecord is the badger encoding of a user; the API encoding drops the password hash.
type userRecord struct {
	models.User
	HashedPassword string `json:"hashed_password"`
}

// BadgerUserRepository stores users next to username and email index keys.
type BadgerUserRepository struct {
	db  *badger.DB
	seq *badger.Sequence
}

func NewBadgerUserRepository(db *badger.DB) (*BadgerUserRepository, error) {
	seq, err := db.GetSequence([]byte("seq:"+models.CollectionUsers), sequenceBandwidth)
	if err != nil {
		return nil, fmt.Errorf("failed to open user sequence: %w", err)
	}
	return &BadgerUserRepository{db: db, seq: seq}, nil
}

func (r *BadgerUserRepository) Close() error {
	return r.seq.Release()
}

func indexKey(prefix, value string) []byte {
	return []byte(prefix + ":" + value)
}

// CreateUser inserts the user and both index keys in one transaction.
func (r *BadgerUserRepository) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	n, err := r.seq.Next()
	if err != nil {
		return nil, fmt.Errorf("failed to allocate user id: %w", err)
	}
	user.ID = int64(n) + 1

	data, err := json.Marshal(userRecord{User: *user, HashedPassword: user.HashedPassword})
	if err != nil {
		return nil, fmt.Errorf("failed to encode user: %w", err)
	}

	err = r.db.Update(func(txn *badger.Txn) error {
		if taken, err := keyExists(txn, indexKey(usernameIndexPrefix, user.Username)); err != nil {
			return err
		} else if taken {
			return apperrors.Conflict(msgUsernameTaken)
		}
		if taken, err := keyExists(txn, indexKey(emailIndexPrefix, user.Email)); err != nil {
			return err
		} else if taken {
			return apperrors.Conflict(msgEmailTaken)
		}

		idBytes := []byte(fmt.Sprintf("%d", user.ID))
		if err := txn.Set(recordKey(models.CollectionUsers, user.ID), data); err != nil {
			return err
		}
		if err := txn.Set(indexKey(usernameIndexPrefix, user.Username), idBytes); err != nil {
			return err
		}
		return txn.Set(indexKey(emailIndexPrefix, user.Email), idBytes)
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, err
		}
		logger.Log.WithError(err).Error("Failed to insert user into database")
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}

	logger.Log.WithField("user_id", user.ID).Info("User inserted successfully")
	return user, nil
}

func (r *BadgerUserRepository) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var user *models.User
	err := r.db.View(func(txn *badger.Txn) error {
		var err error
		user, err = readUser(txn, id)
		return err
	})
	return user, err
}

func (r *BadgerUserRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.getByIndex(ctx, usernameIndexPrefix, username)
}

func (r *BadgerUserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getByIndex(ctx, emailIndexPrefix, email)
}

func (r *BadgerUserRepository) getByIndex(ctx context.Context, prefix, value string) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var user *models.User
	err := r.db.View(func(txn *badger.Txn) error {
		entry, err := txn.Get(indexKey(prefix, value))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return apperrors.ErrNotFound
			}
			return err
		}
		raw, err := entry.ValueCopy(nil)
		if err != nil {
			return err
		}
		var id int64
		if _, err := fmt.Sscanf(string(raw), "%d", &id); err != nil {
			return fmt.Errorf("corrupt %s index entry: %w", prefix, err)
		}
		user, err = readUser(txn, id)
		return err
	})
	return user, err
}

func readUser(txn *badger.Txn, id int64) (*models.User, error) {
	entry, err := txn.Get(recordKey(models.CollectionUsers, id))
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to read user: %w", err)
	}
	var rec userRecord
	if err := entry.Value(func(val []byte) error {
		return json.Unmarshal(val, &rec)
	}); err != nil {
		return nil, fmt.Errorf("failed to decode user: %w", err)
	}
	user := rec.User
	user.HashedPassword = rec.HashedPassword
	return &user, nil
}

func keyExists(txn *badger.Txn, key []byte) (bool, error) {
	_, err := txn.Get(key)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, badger.ErrKeyNotFound) {
		return false, nil
	}
	return false, err
}

// MongoUserRepository relies on the unique username and email indexes from database.EnsureIndexes.
type MongoUserRepository struct {
	collection *mongo.Collection
	counters   *mongo.Collection
}

func NewMongoUserRepository(db *mongo.Database) *MongoUserRepository {
	return &MongoUserRepository{
		collection: db.Collection(models.CollectionUsers),
		counters:   db.Collection(models.CollectionSequences),
	}
}

func (r *MongoUserRepository) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	id, err := nextSequence(ctx, r.counters, models.CollectionUsers)
	if err != nil {
		return nil, err
	}
	user.ID = id

	if _, err := r.collection.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			if strings.Contains(err.Error(), "email") {
				return nil, apperrors.Conflict(msgEmailTaken)
			}
			return nil, apperrors.Conflict(msgUsernameTaken)
		}
		logger.Log.WithError(err).Error("Failed to insert user into database")
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}

	logger.Log.WithField("user_id", user.ID).Info("User inserted successfully")
	return user, nil
}

func (r *MongoUserRepository) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *MongoUserRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

func (r *MongoUserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *MongoUserRepository) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	var user models.User
	if err := r.collection.FindOne(ctx, filter).Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrNotFound
		}
		logger.Log.WithError(err).Warn("Failed to find user")
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return &user, nil
}
