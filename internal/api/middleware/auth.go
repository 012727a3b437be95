package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/ktnkk/crosslist/internal/auth"
)

// UserIDKey is the echo context key under which JWTAuth stores the
// authenticated user's ID.
const UserIDKey = "user_id"

// UserID returns the authenticated user's ID from the echo context, or
// the empty string when the request is unauthenticated.
func UserID(c echo.Context) string {
	id, _ := c.Get(UserIDKey).(string)
	return id
}

// JWTAuth returns Echo middleware that requires a valid Bearer access
// token and injects the token's user ID into the context.
func JWTAuth(tokens *auth.TokenService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			const prefix = "Bearer "
			if !strings.HasPrefix(header, prefix) {
				return c.JSON(http.StatusUnauthorized, map[string]string{
					"error": "missing bearer token",
				})
			}

			claims, err := tokens.Validate(strings.TrimPrefix(header, prefix))
			if err != nil {
				msg := "invalid token"
				if errors.Is(err, auth.ErrExpiredToken) {
					msg = "token expired"
				}
				return c.JSON(http.StatusUnauthorized, map[string]string{
					"error": msg,
				})
			}

			c.Set(UserIDKey, claims.UserID)
			return next(c)
		}
	}
}
