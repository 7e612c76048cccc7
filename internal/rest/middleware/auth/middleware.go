// Package auth verifies bearer tokens issued by the identity provider and stores the caller's
// user id in the request context. Requests without a token continue anonymously.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pintwise/pintwise/internal/rest/render"
	"github.com/pintwise/pintwise/internal/setup/config"
	"github.com/uptrace/bunrouter"
	"go.uber.org/zap"
)

// ErrInvalidToken is returned when a bearer token fails verification.
var ErrInvalidToken = errors.New("invalid token")

type userCtxKey struct{}

// UserFromContext returns the authenticated user, or uuid.Nil for anonymous requests.
func UserFromContext(ctx context.Context) uuid.UUID {
	if id, ok := ctx.Value(userCtxKey{}).(uuid.UUID); ok {
		return id
	}
	return uuid.Nil
}

// WithUser stores an authenticated user in the context.
func WithUser(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, userCtxKey{}, userID)
}

// Middleware verifies HS256 bearer tokens.
type Middleware struct {
	secret []byte
	parser *jwt.Parser
	logger *zap.Logger
}

// New creates a new auth middleware.
func New(cfg *config.Auth, logger *zap.Logger) *Middleware {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(30 * time.Second),
	}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}
	if cfg.Audience != "" {
		opts = append(opts, jwt.WithAudience(cfg.Audience))
	}

	return &Middleware{
		secret: []byte(cfg.JWTSecret),
		parser: jwt.NewParser(opts...),
		logger: logger.Named("auth_middleware"),
	}
}

// AsRESTMiddleware returns a bunrouter middleware that authenticates the request when it
// carries a bearer token. An invalid token is rejected rather than treated as anonymous.
func (m *Middleware) AsRESTMiddleware(next bunrouter.HandlerFunc) bunrouter.HandlerFunc {
	return func(w http.ResponseWriter, req bunrouter.Request) error {
		header := req.Header.Get("Authorization")
		if header == "" {
			return next(w, req)
		}

		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			return render.Error(w, http.StatusUnauthorized, "unauthenticated", "Malformed authorization header")
		}

		userID, err := m.Verify(token)
		if err != nil {
			m.logger.Debug("Rejected bearer token", zap.Error(err))
			return render.Error(w, http.StatusUnauthorized, "unauthenticated", "Invalid or expired token")
		}

		return next(w, req.WithContext(WithUser(req.Context(), userID)))
	}
}

// Verify checks a token and returns the user id in its subject.
func (m *Middleware) Verify(tokenString string) (uuid.UUID, error) {
	claims := &jwt.RegisteredClaims{}
	if _, err := m.parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return m.secret, nil
	}); err != nil {
		return uuid.Nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil || userID == uuid.Nil {
		return uuid.Nil, fmt.Errorf("%w: subject is not a user id", ErrInvalidToken)
	}

	return userID, nil
}

// RequireUser rejects anonymous requests.
func RequireUser(next bunrouter.HandlerFunc) bunrouter.HandlerFunc {
	return func(w http.ResponseWriter, req bunrouter.Request) error {
		if UserFromContext(req.Context()) == uuid.Nil {
			return render.Error(w, http.StatusUnauthorized, "unauthenticated", "Authentication required")
		}
		return next(w, req)
	}
}
