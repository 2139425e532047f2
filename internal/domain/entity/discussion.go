package entity

import (
	"time"

	"github.com/google/uuid"
)

// Discussion is a daily discussion prompt. A discussion is "scheduled" when
// ActiveDate is set; the one whose ActiveDate falls on the current day is the
// discussion shown to users.
type Discussion struct {
	ID         uuid.UUID
	Title      string
	Content    string
	ActiveDate *time.Time // Date the discussion goes live. Nil means unscheduled.
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Scheduled reports whether the discussion has been assigned an active date.
func (d *Discussion) Scheduled() bool {
	return d.ActiveDate != nil
}
