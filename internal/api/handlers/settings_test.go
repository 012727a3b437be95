package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ktnkk/crosslist/internal/api/handlers"
	"github.com/ktnkk/crosslist/internal/api/middleware"
	"github.com/ktnkk/crosslist/internal/store/storetest"
	domain "github.com/ktnkk/crosslist/pkg/types"
)

// authedContext builds an echo context carrying an authenticated user ID.
func authedContext(t *testing.T, method, path, body, userID string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.UserIDKey, userID)
	return c, rec
}

func TestSettingHandler_Get(t *testing.T) {
	t.Parallel()

	st := &storetest.Fake{
		GetSettingFunc: func(_ context.Context, userID string) (*domain.Setting, error) {
			return &domain.Setting{
				UserID:        userID,
				EbayClientID:  "client-id",
				EbayAuthToken: "refresh-secret",
			}, nil
		},
	}
	h := handlers.NewSettingHandler(st)

	c, rec := authedContext(t, http.MethodGet, "/api/v1/settings", "", "u1")
	require.NoError(t, h.Get(c))
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "Successfully fetched settings")
	assert.Contains(t, body, `"client-id"`)
	// The refresh token never leaves the server.
	assert.NotContains(t, body, "refresh-secret")
	assert.NotContains(t, body, "ebay_auth_token")
}

func TestSettingHandler_Update(t *testing.T) {
	t.Parallel()

	t.Run("partial patch", func(t *testing.T) {
		t.Parallel()

		var got *domain.SettingPatch
		st := &storetest.Fake{
			UpdateSettingFunc: func(_ context.Context, userID string, patch *domain.SettingPatch) (*domain.Setting, error) {
				got = patch
				s := &domain.Setting{UserID: userID, EbayClientID: "kept-client-id"}
				patch.Apply(s)
				return s, nil
			},
		}
		h := handlers.NewSettingHandler(st)

		c, rec := authedContext(t, http.MethodPut, "/api/v1/settings",
			`{"ebay_dev_id":"dev-123","ebay_auth_token":"tok-456"}`, "u1")
		require.NoError(t, h.Update(c))
		require.Equal(t, http.StatusOK, rec.Code)

		require.NotNil(t, got)
		require.NotNil(t, got.EbayDevID)
		assert.Equal(t, "dev-123", *got.EbayDevID)
		require.NotNil(t, got.EbayAuthToken)
		assert.Equal(t, "tok-456", *got.EbayAuthToken)
		// Fields absent from the body stay unset.
		assert.Nil(t, got.EbayClientID)
		assert.Nil(t, got.YahooClientID)

		body := rec.Body.String()
		assert.Contains(t, body, "Successfully updated settings")
		assert.Contains(t, body, "kept-client-id")
		assert.NotContains(t, body, "tok-456")
	})

	t.Run("user not found", func(t *testing.T) {
		t.Parallel()

		h := handlers.NewSettingHandler(&storetest.Fake{})

		c, rec := authedContext(t, http.MethodPut, "/api/v1/settings",
			`{"ebay_dev_id":"dev-123"}`, "u-missing")
		require.NoError(t, h.Update(c))
		require.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "user not found")
	})
}
