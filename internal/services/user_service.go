package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/Dias221467/goai-backend/internal/apperrors"
	"github.com/Dias221467/goai-backend/internal/models"
	"github.com/Dias221467/goai-backend/internal/repository"
	"github.com/Dias221467/goai-backend/internal/validation"
	"github.com/Dias221467/goai-backend/pkg/logger"
)

const msgBadCredentials = "Incorrect username or password"

// UserService encapsulates the business logic for user operations.
type UserService struct {
	repo repository.UserRepository
}

// NewUserService creates a new instance of UserService.
func NewUserService(repo repository.UserRepository) *UserService {
	return &UserService{repo: repo}
}

// Register checks that the username and email are free, hashes the password and stores the user.
func (s *UserService) Register(ctx context.Context, in models.UserCreate) (*models.User, error) {
	logger.Log.WithField("username", in.Username).Info("Registering new user")

	if err := validation.ValidateStruct(in); err != nil {
		return nil, err
	}

	if err := s.ensureFree(ctx, in.Username, in.Email); err != nil {
		return nil, err
	}

	hashedPwd, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.WithError(err).Error("Password hashing failed")
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.repo.CreateUser(ctx, &models.User{
		Username:       in.Username,
		Email:          in.Email,
		HashedPassword: string(hashedPwd),
		IsActive:       true,
		CreatedAt:      now(),
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, err
		}
		logger.Log.WithError(err).Error("User registration failed")
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	logger.Log.WithField("user_id", user.ID).Info("User registered successfully")
	return user, nil
}

func (s *UserService) ensureFree(ctx context.Context, username, email string) error {
	if _, err := s.repo.GetUserByUsername(ctx, username); err == nil {
		logger.Log.WithField("username", username).Warn("Username already in use")
		return apperrors.Conflict("Username already registered")
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return fmt.Errorf("failed to check username: %w", err)
	}

	if _, err := s.repo.GetUserByEmail(ctx, email); err == nil {
		logger.Log.WithField("email", email).Warn("Email already in use")
		return apperrors.Conflict("Email already registered")
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return fmt.Errorf("failed to check email: %w", err)
	}
	return nil
}

// Authenticate verifies a username and password. Every failure reads the same to the caller.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.repo.GetUserByUsername(ctx, username)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("failed to load user: %w", err)
		}
		logger.Log.WithField("username", username).Warn("Login for unknown user")
		return nil, apperrors.Unauthorized(msgBadCredentials)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)); err != nil {
		logger.Log.WithField("user_id", user.ID).Warn("Password mismatch")
		return nil, apperrors.Unauthorized(msgBadCredentials)
	}
	if !user.IsActive {
		logger.Log.WithField("user_id", user.ID).Warn("Login for inactive user")
		return nil, apperrors.Unauthorized(msgBadCredentials)
	}
	return user, nil
}

// GetUser returns the profile of the user with the given id.
func (s *UserService) GetUser(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NotFound("User")
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// EnsureUser returns the user with the given username, creating it with an unusable random
// password when absent. It seeds the development identity.
func (s *UserService) EnsureUser(ctx context.Context, username, email string) (*models.User, error) {
	user, err := s.repo.GetUserByUsername(ctx, username)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up %s: %w", username, err)
	}

	return s.Register(ctx, models.UserCreate{Username: username, Email: email, Password: uuid.NewString()})
}
