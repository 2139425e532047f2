package middleware

import (
	"log/slog"

	"agora/config"
	deliverycontext "agora/internal/delivery/context"
	"agora/internal/delivery/http/session"
	"agora/internal/domain/repository"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AdminMiddleware serves the admin dashboard artifact to admin users and is
// transparent to everyone else.
type AdminMiddleware struct {
	cookies   *session.Manager
	sessions  repository.SessionRepository
	users     repository.UserRepository
	adminFile string
	logger    *slog.Logger
}

// NewAdminMiddleware is the constructor for AdminMiddleware.
func NewAdminMiddleware(
	cookies *session.Manager,
	sessions repository.SessionRepository,
	users repository.UserRepository,
	cfg *config.Config,
	logger *slog.Logger,
) *AdminMiddleware {
	return &AdminMiddleware{
		cookies:   cookies,
		sessions:  sessions,
		users:     users,
		adminFile: cfg.Static.AdminFile,
		logger:    logger,
	}
}

// ServeAdminArtifact resolves the session identity against the local user
// directory. Admins terminate here with the admin artifact; everyone else
// falls through to the next handler. A store fault is logged and treated as
// non-admin, never as a grant.
func (m *AdminMiddleware) ServeAdminArtifact(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		sessionID, ok := m.cookies.Read(c)
		if !ok {
			return next(c)
		}

		ctx := c.Request().Context()
		logger := deliverycontext.GetLoggerOrDefault(ctx, m.logger)

		sess, err := m.sessions.Find(ctx, sessionID)
		if err != nil {
			if !errors.Is(err, repository.ErrSessionNotFound) {
				logger.Error("Session lookup failed in admin gate", slog.Any("error", err))
			}

			return next(c)
		}
		if !sess.Authenticated() || sess.Profile == nil {
			return next(c)
		}

		user, err := m.users.FindByExternalID(ctx, sess.Profile.ExternalID)
		if err != nil {
			if !errors.Is(err, repository.ErrUserNotFound) {
				logger.Error("User lookup failed in admin gate", slog.Any("error", err))
			}

			return next(c)
		}

		if user.Admin && !user.Disabled {
			return c.File(m.adminFile)
		}

		return next(c)
	}
}
