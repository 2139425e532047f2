package middleware

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	deliverycontext "agora/internal/delivery/context"
	"agora/internal/delivery/http/session"
	"agora/internal/domain/entity"
	"agora/internal/domain/repository"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// sessionContextKey is the echo context key holding the authenticated session.
const sessionContextKey = "session"

// AuthMiddleware gates routes behind an authenticated browser session.
type AuthMiddleware struct {
	cookies  *session.Manager
	sessions repository.SessionRepository
	logger   *slog.Logger
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(cookies *session.Manager, sessions repository.SessionRepository, logger *slog.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		cookies:  cookies,
		sessions: sessions,
		logger:   logger,
	}
}

// RequireSession admits requests whose session carries a provider account.
// Unauthenticated browsers get a login redirect that preserves the requested
// URI; API clients get a 401 body they can probe for.
func (m *AuthMiddleware) RequireSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		sessionID, ok := m.cookies.Read(c)
		if !ok {
			return m.reject(c)
		}

		sess, err := m.sessions.Find(c.Request().Context(), sessionID)
		if err != nil {
			if !errors.Is(err, repository.ErrSessionNotFound) {
				logger := deliverycontext.GetLoggerOrDefault(c.Request().Context(), m.logger)
				logger.Error("Session lookup failed", slog.Any("error", err))
			}

			return m.reject(c)
		}
		if !sess.Authenticated() {
			return m.reject(c)
		}

		c.Set(sessionContextKey, sess)

		// Downstream logs emitted for this request carry the session id.
		ctx := c.Request().Context()
		reqLogger := deliverycontext.GetLoggerOrDefault(ctx, m.logger).
			With(slog.String("session_id", sess.ID.String()))
		c.SetRequest(c.Request().WithContext(deliverycontext.WithLogger(ctx, reqLogger)))

		return next(c)
	}
}

func (m *AuthMiddleware) reject(c echo.Context) error {
	if strings.Contains(c.Request().Header.Get("Accept"), "text/html") {
		target := "/auth/login?state=" + url.QueryEscape(c.Request().RequestURI)

		return c.Redirect(http.StatusFound, target)
	}

	return c.JSON(http.StatusUnauthorized, map[string]string{"error": "not_authenticated"})
}

// SessionFromContext returns the session stored by RequireSession.
func SessionFromContext(c echo.Context) (*entity.Session, bool) {
	sess, ok := c.Get(sessionContextKey).(*entity.Session)

	return sess, ok
}
