package handlers

import (
	"github.com/labstack/echo/v4"
)

// Response is the standard success envelope.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// ErrorResponse is the standard error envelope.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

func respond(c echo.Context, status int, message string, data any) error {
	return c.JSON(status, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func respondError(c echo.Context, status int, message string, err error) error {
	return c.JSON(status, ErrorResponse{
		Success: false,
		Message: message,
		Error:   err.Error(),
	})
}
