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

// ResponseHandler holds dependencies for discussion-response handlers.
type ResponseHandler struct {
	uc     usecase.ResponseUsecase
	logger *slog.Logger
}

// NewResponseHandler is the constructor for ResponseHandler, injected by Fx.
func NewResponseHandler(uc usecase.ResponseUsecase, logger *slog.Logger) *ResponseHandler {
	return &ResponseHandler{
		uc:     uc,
		logger: logger,
	}
}

// Today returns the responses under today's scheduled discussion.
func (h *ResponseHandler) Today(c echo.Context) error {
	responses, err := h.uc.ForToday(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, responses, "")
}

// ByDiscussion returns every response under the discussion named by the
// discussion_id query parameter.
func (h *ResponseHandler) ByDiscussion(c echo.Context) error {
	discussionID, err := uuid.Parse(c.QueryParam("discussion_id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid discussion id")
	}

	responses, err := h.uc.ByDiscussion(c.Request().Context(), discussionID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, responses, "")
}

// ByUser returns a user's responses within one discussion.
func (h *ResponseHandler) ByUser(c echo.Context) error {
	authorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid user id")
	}
	discussionID, err := uuid.Parse(c.QueryParam("discussion_id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid discussion id")
	}

	responses, err := h.uc.ByUser(c.Request().Context(), authorID, discussionID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, responses, "")
}

// AllByUser returns a user's responses across all discussions.
func (h *ResponseHandler) AllByUser(c echo.Context) error {
	authorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid user id")
	}

	responses, err := h.uc.AllByUser(c.Request().Context(), authorID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, responses, "")
}

// Post handles a new top-level response.
func (h *ResponseHandler) Post(c echo.Context) error {
	var input usecase.PostResponseInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid response input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	posted, err := h.uc.Post(c.Request().Context(), &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, posted, "Response posted successfully")
}

// Reply handles a threaded reply to an existing response.
func (h *ResponseHandler) Reply(c echo.Context) error {
	var input usecase.PostReplyInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid reply input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	posted, err := h.uc.Reply(c.Request().Context(), &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, posted, "Reply posted successfully")
}
