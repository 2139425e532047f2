package entity

import (
	"time"

	"github.com/google/uuid"
)

// Response is a user's post under a discussion. Responses form a thread via
// ParentID: top-level responses have a nil parent, replies point at the
// response they answer.
type Response struct {
	ID           uuid.UUID
	AuthorID     uuid.UUID
	DiscussionID uuid.UUID
	ParentID     *uuid.UUID // Nil for top-level responses.
	Content      string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Reply reports whether the response is threaded under another response.
func (r *Response) Reply() bool {
	return r.ParentID != nil
}
