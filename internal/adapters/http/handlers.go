// Package http holds the echo handlers: the only sanctioned surface between
// the presentation layer and the services.
package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/prodotask/server/internal/application/services"
	"github.com/prodotask/server/internal/domain/entities"
	"github.com/prodotask/server/internal/infrastructure/logger"
	"github.com/prodotask/server/internal/ports"
)

// MessageResponse is a simple message payload
type MessageResponse struct {
	Message string `json:"message"`
}

// DeletedResponse reports whether a delete removed a row
type DeletedResponse struct {
	Deleted bool `json:"deleted"`
}

func parseID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid id")
	}
	return id, nil
}

// userIDFromContext extracts the authenticated user's id set by the auth
// middleware.
func userIDFromContext(c echo.Context) int64 {
	id, _ := c.Get("user_id").(int64)
	return id
}

// serviceError maps domain errors to HTTP status codes.
func serviceError(err error) error {
	switch {
	case errors.Is(err, entities.ErrTaskNotFound),
		errors.Is(err, entities.ErrHabitNotFound),
		errors.Is(err, entities.ErrNoteNotFound),
		errors.Is(err, entities.ErrEventNotFound),
		errors.Is(err, entities.ErrUserNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, entities.ErrEmailTaken):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, entities.ErrInvalidCredentials):
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid credentials")
	default:
		return err
	}
}

// AuthHandler handles authentication requests
type AuthHandler struct {
	authService *services.AuthService
	logger      *logger.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *services.AuthService, logger *logger.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// Register handles account creation
func (h *AuthHandler) Register(c echo.Context) error {
	var req ports.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	response, err := h.authService.Register(c.Request().Context(), req)
	if err != nil {
		h.logger.Error("Registration failed", "error", err, "email", req.Email)
		return serviceError(err)
	}

	return c.JSON(http.StatusCreated, response)
}

// Login handles user login
func (h *AuthHandler) Login(c echo.Context) error {
	var req ports.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	response, err := h.authService.Login(c.Request().Context(), req)
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, response)
}

// Refresh handles token refresh
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req ports.RefreshRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	response, err := h.authService.Refresh(c.Request().Context(), req.RefreshToken)
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, response)
}

// UserHandler handles user profile requests
type UserHandler struct {
	userService *services.UserService
	logger      *logger.Logger
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *services.UserService, logger *logger.Logger) *UserHandler {
	return &UserHandler{
		userService: userService,
		logger:      logger,
	}
}

// GetCurrentUser returns the authenticated user's profile
func (h *UserHandler) GetCurrentUser(c echo.Context) error {
	user, err := h.userService.GetUser(c.Request().Context(), userIDFromContext(c))
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, user)
}

// UpdateCurrentUser partially updates the authenticated user's profile
func (h *UserHandler) UpdateCurrentUser(c echo.Context) error {
	var req ports.UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.userService.UpdateUser(c.Request().Context(), userIDFromContext(c), req)
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, user)
}

// ChangePassword changes the authenticated user's password
func (h *UserHandler) ChangePassword(c echo.Context) error {
	var req ports.ChangePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	userID := userIDFromContext(c)
	if err := h.userService.ChangePassword(c.Request().Context(), userID, req.CurrentPassword, req.NewPassword); err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "Password changed"})
}

// DeleteCurrentUser removes the authenticated user's account
func (h *UserHandler) DeleteCurrentUser(c echo.Context) error {
	deleted, err := h.userService.DeleteUser(c.Request().Context(), userIDFromContext(c))
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, DeletedResponse{Deleted: deleted})
}
