package usecase

import (
	"context"
	"time"

	"agora/internal/domain/entity"

	"github.com/google/uuid"
)

// CreateDiscussionInput carries a new discussion. ActiveDate is optional; a
// discussion created without one stays unscheduled.
type CreateDiscussionInput struct {
	Title      string `json:"title" validate:"required,max=255"`
	Content    string `json:"content" validate:"required"`
	ActiveDate string `json:"active,omitempty"` // YYYY-MM-DD, empty for unscheduled.
}

// UpdateDiscussionInput patches an existing discussion. Absent fields are
// untouched; sending active as an empty string clears the schedule.
type UpdateDiscussionInput struct {
	ID      uuid.UUID `json:"id" validate:"required"`
	Title   *string   `json:"title,omitempty"`
	Content *string   `json:"content,omitempty"`
	Active  *string   `json:"active,omitempty"` // YYYY-MM-DD, "" clears the date.
}

// DiscussionUsecase exposes the discussion catalogue.
type DiscussionUsecase interface {
	// ScheduledToday returns the discussion scheduled for the current day.
	ScheduledToday(ctx context.Context) (*entity.Discussion, error)

	// Unscheduled returns discussions without an active date.
	Unscheduled(ctx context.Context) ([]*entity.Discussion, error)

	// Upcoming returns discussions scheduled today or later, ascending.
	Upcoming(ctx context.Context) ([]*entity.Discussion, error)

	// GetByID returns a single discussion.
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Discussion, error)

	// Create persists a new discussion.
	Create(ctx context.Context, input *CreateDiscussionInput) (*entity.Discussion, error)

	// Update applies a patch to an existing discussion.
	Update(ctx context.Context, input *UpdateDiscussionInput) error
}

// ParseActiveDate parses the YYYY-MM-DD wire format used by discussion inputs.
func ParseActiveDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}
