package handler

import (
	"log/slog"
	"net/http"

	"agora/internal/delivery/http/middleware"
	"agora/internal/delivery/http/response"
	"agora/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// UserHandler holds dependencies for user-directory handlers.
type UserHandler struct {
	uc     usecase.UserUsecase
	logger *slog.Logger
}

// NewUserHandler is the constructor for UserHandler, injected by Fx.
func NewUserHandler(uc usecase.UserUsecase, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		uc:     uc,
		logger: logger,
	}
}

// disableUserInput names the user to soft-disable.
type disableUserInput struct {
	ID uuid.UUID `json:"id" validate:"required"`
}

// Current resolves the session identity to its local user record.
func (h *UserHandler) Current(c echo.Context) error {
	sess, ok := middleware.SessionFromContext(c)
	if !ok || sess.Profile == nil {
		return response.Unauthorized(c, "NOT_AUTHENTICATED", "No session identity")
	}

	user, err := h.uc.Current(c.Request().Context(), sess.Profile.ExternalID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, user, "")
}

// ListActive returns all non-disabled users.
func (h *UserHandler) ListActive(c echo.Context) error {
	users, err := h.uc.ListActive(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, users, "")
}

// Search finds a user by display name.
func (h *UserHandler) Search(c echo.Context) error {
	name := c.QueryParam("name")
	if name == "" {
		return response.BadRequest(c, "INVALID_INPUT", "Missing name parameter")
	}

	user, err := h.uc.FindByName(c.Request().Context(), name)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, user, "")
}

// GetByID returns a single user.
func (h *UserHandler) GetByID(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid user id")
	}

	user, err := h.uc.GetByID(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, user, "")
}

// Disable soft-disables a user.
func (h *UserHandler) Disable(c echo.Context) error {
	var input disableUserInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid user input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	if err := h.uc.Disable(c.Request().Context(), input.ID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "User disabled successfully")
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"}, "Service is healthy")
}
