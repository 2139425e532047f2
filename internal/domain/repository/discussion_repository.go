package repository

import (
	"context"
	"errors"
	"time"

	"agora/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrDiscussionNotFound is returned when no discussion matches the query.
var ErrDiscussionNotFound = errors.New("discussion not found")

// DiscussionPatch carries the mutable fields of a discussion update. Nil
// fields are left untouched; ClearActiveDate removes the schedule outright.
type DiscussionPatch struct {
	Title           *string
	Content         *string
	ActiveDate      *time.Time
	ClearActiveDate bool
}

// Empty reports whether the patch would change nothing.
func (p DiscussionPatch) Empty() bool {
	return p.Title == nil && p.Content == nil && p.ActiveDate == nil && !p.ClearActiveDate
}

// DiscussionRepository defines persistence operations for discussions.
type DiscussionRepository interface {
	// FindScheduledOn retrieves the discussion whose active date falls on day.
	FindScheduledOn(ctx context.Context, day time.Time) (*entity.Discussion, error)

	// FindByID retrieves a single discussion by id.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Discussion, error)

	// ListUnscheduled retrieves discussions without an active date.
	ListUnscheduled(ctx context.Context) ([]*entity.Discussion, error)

	// ListUpcoming retrieves discussions scheduled on or after day, ascending.
	ListUpcoming(ctx context.Context, day time.Time) ([]*entity.Discussion, error)

	// Create persists a new discussion.
	Create(ctx context.Context, discussion *entity.Discussion) error

	// Update applies a patch. Returns ErrDiscussionNotFound for unknown ids.
	Update(ctx context.Context, id uuid.UUID, patch DiscussionPatch) error
}
