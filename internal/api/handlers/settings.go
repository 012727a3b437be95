package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ktnkk/crosslist/internal/api/middleware"
	"github.com/ktnkk/crosslist/internal/store"
	domain "github.com/ktnkk/crosslist/pkg/types"
)

// SettingHandler handles per-user marketplace credential settings. The
// settings row is created lazily on first access, so GET never 404s
// for an existing user.
type SettingHandler struct {
	store store.Store
}

// NewSettingHandler creates a new SettingHandler.
func NewSettingHandler(s store.Store) *SettingHandler {
	return &SettingHandler{store: s}
}

// Get handles GET /api/v1/settings.
func (h *SettingHandler) Get(c echo.Context) error {
	userID := middleware.UserID(c)

	setting, err := h.store.GetSetting(c.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return respondError(c, http.StatusNotFound,
				"Failed to fetch settings", errors.New("user not found"))
		}
		return respondError(c, http.StatusInternalServerError,
			"Failed to fetch settings", err)
	}

	return respond(c, http.StatusOK, "Successfully fetched settings", setting)
}

// Update handles PUT /api/v1/settings. Only the fields present in the
// request body are changed; everything else keeps its stored value.
func (h *SettingHandler) Update(c echo.Context) error {
	userID := middleware.UserID(c)

	var patch domain.SettingPatch
	if err := c.Bind(&patch); err != nil {
		return respondError(c, http.StatusBadRequest,
			"Failed to update settings", err)
	}

	setting, err := h.store.UpdateSetting(c.Request().Context(), userID, &patch)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return respondError(c, http.StatusNotFound,
				"Failed to update settings", errors.New("user not found"))
		}
		return respondError(c, http.StatusInternalServerError,
			"Failed to update settings", err)
	}

	return respond(c, http.StatusOK, "Successfully updated settings", setting)
}
