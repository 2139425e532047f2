package repository

import (
	"context"
	"errors"

	"agora/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrResponseNotFound is returned when no response matches the query.
var ErrResponseNotFound = errors.New("response not found")

// ResponseRepository defines persistence operations for discussion responses.
type ResponseRepository interface {
	// ListByDiscussion retrieves every response under a discussion.
	ListByDiscussion(ctx context.Context, discussionID uuid.UUID) ([]*entity.Response, error)

	// ListByAuthor retrieves an author's responses within one discussion.
	ListByAuthor(ctx context.Context, authorID, discussionID uuid.UUID) ([]*entity.Response, error)

	// ListAllByAuthor retrieves an author's responses across all discussions.
	ListAllByAuthor(ctx context.Context, authorID uuid.UUID) ([]*entity.Response, error)

	// Create persists a new response or reply.
	Create(ctx context.Context, response *entity.Response) error
}
