// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"agora/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrUserNotFound is a domain-specific error returned when a user is not found.
var ErrUserNotFound = errors.New("user not found")

// UserRepository defines the standard operations for user persistence.
// The application layer will depend on this interface, not the concrete implementation.
type UserRepository interface {
	// FindByID retrieves a single user by their unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindActiveByEmail retrieves a non-disabled user by email address.
	FindActiveByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByExternalID retrieves a user by the identity provider's stable id.
	FindByExternalID(ctx context.Context, externalID string) (*entity.User, error)

	// FindByName retrieves a user by display name.
	FindByName(ctx context.Context, name string) (*entity.User, error)

	// ListActive retrieves all non-disabled users.
	ListActive(ctx context.Context) ([]*entity.User, error)

	// Create persists a new user entity. The insert ignores conflicts on the
	// (external id, email) pair so provisioning stays idempotent under races.
	Create(ctx context.Context, user *entity.User) error

	// Disable soft-disables a user. Returns ErrUserNotFound for unknown ids.
	Disable(ctx context.Context, id uuid.UUID) error
}
