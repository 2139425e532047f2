package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "agora/internal/delivery/context"
	"agora/internal/domain/entity"
	domainerrors "agora/internal/domain/errors"
	"agora/internal/domain/repository"
	"agora/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// responseService implements the ResponseUsecase interface.
type responseService struct {
	responses   repository.ResponseRepository
	discussions repository.DiscussionRepository
	logger      *slog.Logger
	now         func() time.Time
}

// NewResponseService is the constructor for responseService.
func NewResponseService(
	responses repository.ResponseRepository,
	discussions repository.DiscussionRepository,
	logger *slog.Logger,
) usecase.ResponseUsecase {
	return &responseService{
		responses:   responses,
		discussions: discussions,
		logger:      logger,
		now:         time.Now,
	}
}

func (srv *responseService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ForToday returns the responses of today's scheduled discussion.
func (srv *responseService) ForToday(ctx context.Context) ([]*entity.Response, error) {
	discussion, err := srv.discussions.FindScheduledOn(ctx, srv.now())
	if err != nil {
		if errors.Is(err, repository.ErrDiscussionNotFound) {
			return nil, domainerrors.ErrDiscussionNotFound.WrapMessage("no discussion scheduled today")
		}

		return nil, errors.Wrap(err, "failed to load today's discussion")
	}

	return srv.ByDiscussion(ctx, discussion.ID)
}

// ByDiscussion returns every response under a discussion.
func (srv *responseService) ByDiscussion(ctx context.Context, discussionID uuid.UUID) ([]*entity.Response, error) {
	responses, err := srv.responses.ListByDiscussion(ctx, discussionID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list responses")
	}

	return responses, nil
}

// ByUser returns a user's responses within one discussion.
func (srv *responseService) ByUser(ctx context.Context, authorID, discussionID uuid.UUID) ([]*entity.Response, error) {
	responses, err := srv.responses.ListByAuthor(ctx, authorID, discussionID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list responses by author")
	}

	return responses, nil
}

// AllByUser returns a user's responses across all discussions.
func (srv *responseService) AllByUser(ctx context.Context, authorID uuid.UUID) ([]*entity.Response, error) {
	responses, err := srv.responses.ListAllByAuthor(ctx, authorID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list responses by author")
	}

	return responses, nil
}

// Post creates a top-level response.
func (srv *responseService) Post(ctx context.Context, input *usecase.PostResponseInput) (*entity.Response, error) {
	response := &entity.Response{
		AuthorID:     input.AuthorID,
		DiscussionID: input.DiscussionID,
		Content:      input.Content,
	}

	return srv.create(ctx, response)
}

// Reply creates a threaded reply to an existing response.
func (srv *responseService) Reply(ctx context.Context, input *usecase.PostReplyInput) (*entity.Response, error) {
	parentID := input.ParentID
	response := &entity.Response{
		AuthorID:     input.AuthorID,
		DiscussionID: input.DiscussionID,
		ParentID:     &parentID,
		Content:      input.Content,
	}

	return srv.create(ctx, response)
}

func (srv *responseService) create(ctx context.Context, response *entity.Response) (*entity.Response, error) {
	if err := srv.responses.Create(ctx, response); err != nil {
		return nil, errors.Wrap(err, "failed to create response")
	}
	srv.log(ctx).Info("Posted response",
		slog.Any("response_id", response.ID),
		slog.Any("discussion_id", response.DiscussionID),
		slog.Bool("reply", response.Reply()))

	return response, nil
}
