package middleware

import (
	"context"
	"net/http"
	"strings"

	jwtutil "github.com/Dias221467/goai-backend/pkg/jwt"
	"github.com/Dias221467/goai-backend/pkg/logger"
)

// Outcome classifies the credential found on a request.
type Outcome int

const (
	// Anonymous means the request carried no credential.
	Anonymous Outcome = iota
	Verified
	// Invalid means a credential was present but failed verification.
	Invalid
)

// Identity is the acting user resolved for a request.
type Identity struct {
	Outcome  Outcome
	UserID   int64
	Username string
}

// Authenticator resolves the identity behind a request.
type Authenticator interface {
	Authenticate(r *http.Request) Identity
}

// JWTAuthenticator verifies "Authorization: Bearer <token>" headers.
type JWTAuthenticator struct {
	Secret string
}

func NewJWTAuthenticator(secret string) *JWTAuthenticator {
	return &JWTAuthenticator{Secret: secret}
}

func (a *JWTAuthenticator) Authenticate(r *http.Request) Identity {
	token, ok := tokenFromRequest(r)
	if !ok {
		return Identity{Outcome: Anonymous}
	}
	claims, err := jwtutil.ValidateToken(token, a.Secret)
	if err != nil {
		logger.Log.WithError(err).Debug("Rejected bearer token")
		return Identity{Outcome: Invalid}
	}
	return Identity{Outcome: Verified, UserID: claims.UserID, Username: claims.Username}
}

// StaticAuthenticator treats every request as coming from one fixed user.
// It backs AUTH_MODE=mock for local development.
type StaticAuthenticator struct {
	UserID   int64
	Username string
}

func (a *StaticAuthenticator) Authenticate(*http.Request) Identity {
	return Identity{Outcome: Verified, UserID: a.UserID, Username: a.Username}
}

func tokenFromRequest(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", false
	}
	return strings.TrimSpace(parts[1]), true
}

type contextKey string

const userContextKey contextKey = "user"

// WithUser stores a verified identity in ctx.
func WithUser(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, userContextKey, id)
}

// GetUserFromContext returns the identity stored by AuthMiddleware, or nil.
func GetUserFromContext(ctx context.Context) *Identity {
	id, _ := ctx.Value(userContextKey).(*Identity)
	return id
}

// AuthMiddleware rejects requests whose identity is not Verified with 401.
func AuthMiddleware(auth Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := auth.Authenticate(r)
			switch id.Outcome {
			case Verified:
				next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), &id)))
			case Invalid:
				w.Header().Set("WWW-Authenticate", "Bearer")
				writeDetail(w, http.StatusUnauthorized, "Could not validate credentials")
			default:
				w.Header().Set("WWW-Authenticate", "Bearer")
				writeDetail(w, http.StatusUnauthorized, "Not authenticated")
			}
		})
	}
}
