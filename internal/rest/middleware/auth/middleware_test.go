package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pintwise/pintwise/internal/rest/middleware/auth"
	"github.com/pintwise/pintwise/internal/setup/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bunrouter"
	"go.uber.org/zap"
)

const secret = "test-secret"

func sign(t *testing.T, method jwt.SigningMethod, key any, claims jwt.RegisteredClaims) string {
	t.Helper()

	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func TestVerify(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	m := auth.New(&config.Auth{JWTSecret: secret, Issuer: "pintwise-idp", Audience: "pintwise"}, zap.NewNop())

	valid := jwt.RegisteredClaims{
		Subject:   userID.String(),
		Issuer:    "pintwise-idp",
		Audience:  jwt.ClaimStrings{"pintwise"},
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}

	tests := []struct {
		name    string
		token   func() string
		wantErr bool
	}{
		{
			name:  "valid token",
			token: func() string { return sign(t, jwt.SigningMethodHS256, []byte(secret), valid) },
		},
		{
			name: "expired",
			token: func() string {
				claims := valid
				claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Hour))
				return sign(t, jwt.SigningMethodHS256, []byte(secret), claims)
			},
			wantErr: true,
		},
		{
			name: "missing expiry",
			token: func() string {
				claims := valid
				claims.ExpiresAt = nil
				return sign(t, jwt.SigningMethodHS256, []byte(secret), claims)
			},
			wantErr: true,
		},
		{
			name:    "wrong secret",
			token:   func() string { return sign(t, jwt.SigningMethodHS256, []byte("other"), valid) },
			wantErr: true,
		},
		{
			name:    "wrong algorithm",
			token:   func() string { return sign(t, jwt.SigningMethodHS512, []byte(secret), valid) },
			wantErr: true,
		},
		{
			name: "wrong issuer",
			token: func() string {
				claims := valid
				claims.Issuer = "elsewhere"
				return sign(t, jwt.SigningMethodHS256, []byte(secret), claims)
			},
			wantErr: true,
		},
		{
			name: "wrong audience",
			token: func() string {
				claims := valid
				claims.Audience = jwt.ClaimStrings{"someone-else"}
				return sign(t, jwt.SigningMethodHS256, []byte(secret), claims)
			},
			wantErr: true,
		},
		{
			name: "subject is not a uuid",
			token: func() string {
				claims := valid
				claims.Subject = "alice"
				return sign(t, jwt.SigningMethodHS256, []byte(secret), claims)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := m.Verify(tt.token())
			if tt.wantErr {
				require.ErrorIs(t, err, auth.ErrInvalidToken)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, userID, got)
		})
	}
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	m := auth.New(&config.Auth{JWTSecret: secret}, zap.NewNop())

	var seen uuid.UUID
	router := bunrouter.New()
	group := router.Use(m.AsRESTMiddleware)
	group.GET("/open", func(w http.ResponseWriter, req bunrouter.Request) error {
		seen = auth.UserFromContext(req.Context())
		return nil
	})
	group.Use(auth.RequireUser).GET("/closed", func(w http.ResponseWriter, req bunrouter.Request) error {
		seen = auth.UserFromContext(req.Context())
		return nil
	})

	token := sign(t, jwt.SigningMethodHS256, []byte(secret), jwt.RegisteredClaims{
		Subject:   userID.String(),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})

	serve := func(path, header string) int {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec.Code
	}

	seen = uuid.New()
	assert.Equal(t, http.StatusOK, serve("/open", ""))
	assert.Equal(t, uuid.Nil, seen)

	assert.Equal(t, http.StatusOK, serve("/open", "Bearer "+token))
	assert.Equal(t, userID, seen)

	assert.Equal(t, http.StatusUnauthorized, serve("/open", "Bearer nonsense"))
	assert.Equal(t, http.StatusUnauthorized, serve("/open", "Basic abc"))
	assert.Equal(t, http.StatusUnauthorized, serve("/closed", ""))

	assert.Equal(t, http.StatusOK, serve("/closed", "Bearer "+token))
	assert.Equal(t, userID, seen)
}
