package usecase

import (
	"context"

	"agora/internal/domain/entity"

	"github.com/google/uuid"
)

// PostResponseInput carries a new top-level response.
type PostResponseInput struct {
	AuthorID     uuid.UUID `json:"author_id" validate:"required"`
	DiscussionID uuid.UUID `json:"discussion_id" validate:"required"`
	Content      string    `json:"content" validate:"required"`
}

// PostReplyInput carries a threaded reply to an existing response.
type PostReplyInput struct {
	AuthorID     uuid.UUID `json:"author_id" validate:"required"`
	ParentID     uuid.UUID `json:"parent_id" validate:"required"`
	DiscussionID uuid.UUID `json:"discussion_id" validate:"required"`
	Content      string    `json:"content" validate:"required"`
}

// ResponseUsecase exposes threaded responses under discussions.
type ResponseUsecase interface {
	// ForToday returns the responses of today's scheduled discussion.
	ForToday(ctx context.Context) ([]*entity.Response, error)

	// ByDiscussion returns every response under a discussion.
	ByDiscussion(ctx context.Context, discussionID uuid.UUID) ([]*entity.Response, error)

	// ByUser returns a user's responses within one discussion.
	ByUser(ctx context.Context, authorID, discussionID uuid.UUID) ([]*entity.Response, error)

	// AllByUser returns a user's responses across all discussions.
	AllByUser(ctx context.Context, authorID uuid.UUID) ([]*entity.Response, error)

	// Post creates a top-level response.
	Post(ctx context.Context, input *PostResponseInput) (*entity.Response, error)

	// Reply creates a threaded reply.
	Reply(ctx context.Context, input *PostReplyInput) (*entity.Response, error)
}
