package handler

import (
	"log/slog"
	"net/http"

	"agora/internal/delivery/http/response"
	"agora/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// DiscussionHandler holds dependencies for discussion-related handlers.
type DiscussionHandler struct {
	uc     usecase.DiscussionUsecase
	logger *slog.Logger
}

// NewDiscussionHandler is the constructor for DiscussionHandler, injected by Fx.
func NewDiscussionHandler(uc usecase.DiscussionUsecase, logger *slog.Logger) *DiscussionHandler {
	return &DiscussionHandler{
		uc:     uc,
		logger: logger,
	}
}

// Today returns the discussion scheduled for the current day.
func (h *DiscussionHandler) Today(c echo.Context) error {
	discussion, err := h.uc.ScheduledToday(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, discussion, "")
}

// Unscheduled returns discussions without an active date.
func (h *DiscussionHandler) Unscheduled(c echo.Context) error {
	discussions, err := h.uc.Unscheduled(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, discussions, "")
}

// Upcoming returns discussions scheduled today or later.
func (h *DiscussionHandler) Upcoming(c echo.Context) error {
	discussions, err := h.uc.Upcoming(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, discussions, "")
}

// GetByID returns a single discussion.
func (h *DiscussionHandler) GetByID(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid discussion id")
	}

	discussion, err := h.uc.GetByID(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, discussion, "")
}

// Create handles the discussion creation request.
func (h *DiscussionHandler) Create(c echo.Context) error {
	var input usecase.CreateDiscussionInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid discussion input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	discussion, err := h.uc.Create(c.Request().Context(), &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, discussion, "Discussion created successfully")
}

// Update handles the discussion patch request.
func (h *DiscussionHandler) Update(c echo.Context) error {
	var input usecase.UpdateDiscussionInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid discussion input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	if err := h.uc.Update(c.Request().Context(), &input); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Discussion updated successfully")
}
