package usecase

import (
	"context"

	"agora/internal/domain/entity"

	"github.com/google/uuid"
)

// UserUsecase exposes the local user directory to the admin dashboard and the
// public client.
type UserUsecase interface {
	// GetByID returns a single user.
	GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// ListActive returns all non-disabled users.
	ListActive(ctx context.Context) ([]*entity.User, error)

	// FindByName returns a user by display name.
	FindByName(ctx context.Context, name string) (*entity.User, error)

	// Current resolves the session identity's local user record.
	Current(ctx context.Context, externalID string) (*entity.User, error)

	// Disable soft-disables a user.
	Disable(ctx context.Context, id uuid.UUID) error
}
