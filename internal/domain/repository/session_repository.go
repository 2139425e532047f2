package repository

import (
	"context"
	"errors"

	"agora/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrSessionNotFound is returned when no session exists for the given id.
var ErrSessionNotFound = errors.New("session not found")

// SessionRepository is the browser-session store consumed by the auth flow.
// Destroy must be synchronously visible: a Find on the same id after Destroy
// returns ErrSessionNotFound, never a stale record.
type SessionRepository interface {
	// Find retrieves a session by id.
	Find(ctx context.Context, id uuid.UUID) (*entity.Session, error)

	// Save creates or fully replaces a session record.
	Save(ctx context.Context, session *entity.Session) error

	// Destroy removes a session. Destroying an unknown id is not an error.
	Destroy(ctx context.Context, id uuid.UUID) error
}
