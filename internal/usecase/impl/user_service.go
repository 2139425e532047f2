package impl

import (
	"context"
	"log/slog"

	deliverycontext "agora/internal/delivery/context"
	"agora/internal/domain/entity"
	domainerrors "agora/internal/domain/errors"
	"agora/internal/domain/repository"
	"agora/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// userService implements the UserUsecase interface.
type userService struct {
	users  repository.UserRepository
	logger *slog.Logger
}

// NewUserService is the constructor for userService.
func NewUserService(users repository.UserRepository, logger *slog.Logger) usecase.UserUsecase {
	return &userService{
		users:  users,
		logger: logger,
	}
}

func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// GetByID returns a single user.
func (srv *userService) GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	user, err := srv.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound.WrapMessage("unknown user id")
		}

		return nil, errors.Wrap(err, "failed to load user")
	}

	return user, nil
}

// ListActive returns all non-disabled users.
func (srv *userService) ListActive(ctx context.Context) ([]*entity.User, error) {
	users, err := srv.users.ListActive(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list users")
	}

	return users, nil
}

// FindByName returns a user by display name.
func (srv *userService) FindByName(ctx context.Context, name string) (*entity.User, error) {
	user, err := srv.users.FindByName(ctx, name)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound.WrapMessage("unknown user name")
		}

		return nil, errors.Wrap(err, "failed to find user by name")
	}

	return user, nil
}

// Current resolves the session identity's local user record.
func (srv *userService) Current(ctx context.Context, externalID string) (*entity.User, error) {
	user, err := srv.users.FindByExternalID(ctx, externalID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound.WrapMessage("no local record for session identity")
		}

		return nil, errors.Wrap(err, "failed to resolve current user")
	}

	return user, nil
}

// Disable soft-disables a user. Disabled users keep their rows but drop out
// of active listings and email lookups.
func (srv *userService) Disable(ctx context.Context, id uuid.UUID) error {
	if err := srv.users.Disable(ctx, id); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domainerrors.ErrUserNotFound.WrapMessage("unknown user id")
		}

		return errors.Wrap(err, "failed to disable user")
	}
	srv.log(ctx).Info("Disabled user", slog.Any("user_id", id))

	return nil
}
