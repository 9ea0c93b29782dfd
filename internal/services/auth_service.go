package services

import (
	"context"
	"fmt"
	"time"

	"github.com/Dias221467/goai-backend/internal/metrics"
	"github.com/Dias221467/goai-backend/internal/models"
	jwtutil "github.com/Dias221467/goai-backend/pkg/jwt"
	"github.com/Dias221467/goai-backend/pkg/logger"
)

const TokenTypeBearer = "bearer"

// AuthService exchanges credentials for signed access tokens.
type AuthService struct {
	users  *UserService
	secret string
	expiry time.Duration
}

func NewAuthService(users *UserService, secret string, expiry time.Duration) *AuthService {
	return &AuthService{users: users, secret: secret, expiry: expiry}
}

func (s *AuthService) Login(ctx context.Context, username, password string) (*models.Token, error) {
	user, err := s.users.Authenticate(ctx, username, password)
	if err != nil {
		metrics.LoginAttempts.WithLabelValues("failure").Inc()
		return nil, err
	}

	token, err := jwtutil.GenerateToken(user.ID, user.Username, s.secret, s.expiry)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to generate JWT token")
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	metrics.LoginAttempts.WithLabelValues("success").Inc()
	logger.Log.WithField("user_id", user.ID).Info("User logged in successfully")
	return &models.Token{AccessToken: token, TokenType: TokenTypeBearer}, nil
}
