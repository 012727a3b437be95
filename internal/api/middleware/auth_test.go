package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ktnkk/crosslist/internal/api/middleware"
	"github.com/ktnkk/crosslist/internal/auth"
)

const authTestSecret = "0123456789abcdef0123456789abcdef"

func TestJWTAuth(t *testing.T) {
	t.Parallel()

	tokens, err := auth.NewTokenService(authTestSecret, time.Hour)
	require.NoError(t, err)

	validToken, err := tokens.Generate("user-42")
	require.NoError(t, err)

	expiring, err := auth.NewTokenService(authTestSecret, -10*time.Minute)
	require.NoError(t, err)
	expiredToken, err := expiring.Generate("user-42")
	require.NoError(t, err)

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
		wantBody   string
	}{
		{
			name:       "valid token",
			authHeader: "Bearer " + validToken,
			wantStatus: http.StatusOK,
			wantBody:   "user-42",
		},
		{
			name:       "missing header",
			authHeader: "",
			wantStatus: http.StatusUnauthorized,
			wantBody:   "missing bearer token",
		},
		{
			name:       "wrong scheme",
			authHeader: "Basic dXNlcjpwYXNz",
			wantStatus: http.StatusUnauthorized,
			wantBody:   "missing bearer token",
		},
		{
			name:       "garbage token",
			authHeader: "Bearer not.a.token",
			wantStatus: http.StatusUnauthorized,
			wantBody:   "invalid token",
		},
		{
			name:       "expired token",
			authHeader: "Bearer " + expiredToken,
			wantStatus: http.StatusUnauthorized,
			wantBody:   "token expired",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			e := echo.New()
			e.Use(middleware.JWTAuth(tokens))
			e.GET("/api/v1/users", func(c echo.Context) error {
				return c.String(http.StatusOK, middleware.UserID(c))
			})

			req := httptest.NewRequest(http.MethodGet, "/api/v1/users", nil)
			if tt.authHeader != "" {
				req.Header.Set(echo.HeaderAuthorization, tt.authHeader)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
		})
	}
}
