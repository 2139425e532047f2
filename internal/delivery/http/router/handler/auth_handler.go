// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"agora/internal/delivery/http/response"
	"agora/internal/delivery/http/session"
	domainerrors "agora/internal/domain/errors"
	"agora/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AuthHandler holds dependencies for the authentication flow handlers.
type AuthHandler struct {
	uc      usecase.AuthUsecase
	cookies *session.Manager
	logger  *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler, injected by Fx.
func NewAuthHandler(uc usecase.AuthUsecase, cookies *session.Manager, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		uc:      uc,
		cookies: cookies,
		logger:  logger,
	}
}

// Login redirects the browser to the provider's authorize URL. The optional
// state query parameter names the path to return to after the round trip.
func (h *AuthHandler) Login(c echo.Context) error {
	returnTo := sanitizeReturnPath(c.QueryParam("state"))

	authURL, err := h.uc.Login(c.Request().Context(), returnTo)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.Redirect(http.StatusFound, authURL)
}

// Redirect handles the provider callback: exchanges the single-use code,
// binds the session cookie to the authenticated session, and sends the
// browser back where it came from.
func (h *AuthHandler) Redirect(c echo.Context) error {
	code := c.QueryParam("code")
	if code == "" {
		return response.BadRequest(c, "INVALID_INPUT", "Missing authorization code")
	}

	sessionID := h.cookies.Ensure(c)
	target, err := h.uc.HandleCallback(c.Request().Context(), sessionID, code, c.QueryParam("state"))
	if err != nil {
		return errors.WithStack(err)
	}

	return c.Redirect(http.StatusFound, sanitizeReturnPath(target))
}

// Me is the identity probe. It renews tokens silently and answers with the
// account summary, or 401 when no valid session exists.
func (h *AuthHandler) Me(c echo.Context) error {
	sessionID, ok := h.cookies.Read(c)
	if !ok {
		return errors.WithStack(domainerrors.ErrNotAuthenticated)
	}

	output, err := h.uc.WhoAmI(c.Request().Context(), sessionID)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, output)
}

// Logout destroys the session and clears the cookie. Always succeeds.
func (h *AuthHandler) Logout(c echo.Context) error {
	if sessionID, ok := h.cookies.Read(c); ok {
		if err := h.uc.Logout(c.Request().Context(), sessionID); err != nil {
			return errors.WithStack(err)
		}
	}
	h.cookies.Clear(c)

	return c.Redirect(http.StatusFound, "/")
}

// sanitizeReturnPath confines post-login redirects to local paths so the
// state parameter cannot be abused as an open redirect.
func sanitizeReturnPath(path string) string {
	if path == "" || !strings.HasPrefix(path, "/") || strings.HasPrefix(path, "//") {
		return "/"
	}

	return path
}
