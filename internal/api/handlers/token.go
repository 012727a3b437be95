package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ktnkk/crosslist/internal/auth"
	"github.com/ktnkk/crosslist/internal/store"
)

// TokenHandler issues access tokens against stored user credentials.
type TokenHandler struct {
	store  store.Store
	tokens *auth.TokenService
}

// NewTokenHandler creates a new TokenHandler.
func NewTokenHandler(s store.Store, tokens *auth.TokenService) *TokenHandler {
	return &TokenHandler{store: s, tokens: tokens}
}

type tokenRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Create handles POST /api/v1/token.
func (h *TokenHandler) Create(c echo.Context) error {
	var req tokenRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "invalid request body: " + err.Error(),
		})
	}

	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "email and password are required",
		})
	}

	u, err := h.store.GetUserByEmail(c.Request().Context(), req.Email)
	if err != nil {
		// Indistinguishable from a wrong password.
		return c.JSON(http.StatusUnauthorized, map[string]string{
			"error": "invalid email or password",
		})
	}

	if err := auth.VerifyPassword(u.PasswordHash, req.Password); err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{
			"error": "invalid email or password",
		})
	}

	token, err := h.tokens.Generate(u.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "issuing token: " + err.Error(),
		})
	}

	return c.JSON(http.StatusOK, tokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
	})
}
