package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/ktnkk/crosslist/internal/auth"
	"github.com/ktnkk/crosslist/internal/store"
	domain "github.com/ktnkk/crosslist/pkg/types"
)

const defaultUserPageSize = 50

// UserHandler handles user CRUD operations.
type UserHandler struct {
	store store.Store
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(s store.Store) *UserHandler {
	return &UserHandler{store: s}
}

type createUserRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

type updateUserRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

type userListResponse struct {
	Users []domain.User `json:"users"`
	Total int           `json:"total"`
}

// List handles GET /api/v1/users.
func (h *UserHandler) List(c echo.Context) error {
	limit, err := strconv.Atoi(c.QueryParam("limit"))
	if err != nil || limit <= 0 {
		limit = defaultUserPageSize
	}
	offset, err := strconv.Atoi(c.QueryParam("offset"))
	if err != nil || offset < 0 {
		offset = 0
	}

	users, total, err := h.store.ListUsers(c.Request().Context(), limit, offset)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "listing users: " + err.Error(),
		})
	}

	if users == nil {
		users = []domain.User{}
	}

	return c.JSON(http.StatusOK, userListResponse{Users: users, Total: total})
}

// Get handles GET /api/v1/users/:id.
func (h *UserHandler) Get(c echo.Context) error {
	id := c.Param("id")

	u, err := h.store.GetUser(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{
				"error": "user not found",
			})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "getting user: " + err.Error(),
		})
	}

	return c.JSON(http.StatusOK, u)
}

// Create handles POST /api/v1/users.
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "invalid request body: " + err.Error(),
		})
	}

	if req.Email == "" || req.Name == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "email, name and password are required",
		})
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "hashing password: " + err.Error(),
		})
	}

	u := domain.User{
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: hash,
	}
	if err := h.store.CreateUser(c.Request().Context(), &u); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "creating user: " + err.Error(),
		})
	}

	return c.JSON(http.StatusCreated, u)
}

// Update handles PUT /api/v1/users/:id.
func (h *UserHandler) Update(c echo.Context) error {
	id := c.Param("id")

	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "invalid request body: " + err.Error(),
		})
	}

	if req.Email == "" || req.Name == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "email and name are required",
		})
	}

	u, err := h.store.GetUser(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{
				"error": "user not found",
			})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "getting user: " + err.Error(),
		})
	}

	u.Email = req.Email
	u.Name = req.Name
	if req.Password != "" {
		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{
				"error": "hashing password: " + err.Error(),
			})
		}
		u.PasswordHash = hash
	}

	if err := h.store.UpdateUser(c.Request().Context(), u); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{
				"error": "user not found",
			})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "updating user: " + err.Error(),
		})
	}

	return c.JSON(http.StatusOK, u)
}

// Delete handles DELETE /api/v1/users/:id.
func (h *UserHandler) Delete(c echo.Context) error {
	id := c.Param("id")

	if err := h.store.DeleteUser(c.Request().Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{
				"error": "user not found",
			})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "deleting user: " + err.Error(),
		})
	}

	return c.NoContent(http.StatusNoContent)
}
