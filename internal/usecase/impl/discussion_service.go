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

// discussionService implements the DiscussionUsecase interface.
type discussionService struct {
	discussions repository.DiscussionRepository
	logger      *slog.Logger
	now         func() time.Time
}

// NewDiscussionService is the constructor for discussionService.
func NewDiscussionService(
	discussions repository.DiscussionRepository,
	logger *slog.Logger,
) usecase.DiscussionUsecase {
	return &discussionService{
		discussions: discussions,
		logger:      logger,
		now:         time.Now,
	}
}

func (srv *discussionService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ScheduledToday returns the discussion scheduled for the current day.
func (srv *discussionService) ScheduledToday(ctx context.Context) (*entity.Discussion, error) {
	discussion, err := srv.discussions.FindScheduledOn(ctx, srv.now())
	if err != nil {
		if errors.Is(err, repository.ErrDiscussionNotFound) {
			return nil, domainerrors.ErrDiscussionNotFound.WrapMessage("no discussion scheduled today")
		}

		return nil, errors.Wrap(err, "failed to load today's discussion")
	}

	return discussion, nil
}

// Unscheduled returns discussions without an active date.
func (srv *discussionService) Unscheduled(ctx context.Context) ([]*entity.Discussion, error) {
	discussions, err := srv.discussions.ListUnscheduled(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list unscheduled discussions")
	}

	return discussions, nil
}

// Upcoming returns discussions scheduled today or later, ascending.
func (srv *discussionService) Upcoming(ctx context.Context) ([]*entity.Discussion, error) {
	discussions, err := srv.discussions.ListUpcoming(ctx, srv.now())
	if err != nil {
		return nil, errors.Wrap(err, "failed to list upcoming discussions")
	}

	return discussions, nil
}

// GetByID returns a single discussion.
func (srv *discussionService) GetByID(ctx context.Context, id uuid.UUID) (*entity.Discussion, error) {
	discussion, err := srv.discussions.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrDiscussionNotFound) {
			return nil, domainerrors.ErrDiscussionNotFound.WrapMessage("unknown discussion id")
		}

		return nil, errors.Wrap(err, "failed to load discussion")
	}

	return discussion, nil
}

// Create persists a new discussion, scheduled or not.
func (srv *discussionService) Create(ctx context.Context, input *usecase.CreateDiscussionInput) (*entity.Discussion, error) {
	discussion := &entity.Discussion{
		Title:   input.Title,
		Content: input.Content,
	}
	if input.ActiveDate != "" {
		day, err := usecase.ParseActiveDate(input.ActiveDate)
		if err != nil {
			return nil, domainerrors.ErrValidationFailed.WrapMessage("active date must be YYYY-MM-DD")
		}
		discussion.ActiveDate = &day
	}

	if err := srv.discussions.Create(ctx, discussion); err != nil {
		return nil, errors.Wrap(err, "failed to create discussion")
	}
	srv.log(ctx).Info("Created discussion", slog.Any("discussion_id", discussion.ID), slog.String("title", discussion.Title))

	return discussion, nil
}

// Update applies a patch. An empty active date clears the schedule.
func (srv *discussionService) Update(ctx context.Context, input *usecase.UpdateDiscussionInput) error {
	patch := repository.DiscussionPatch{
		Title:   input.Title,
		Content: input.Content,
	}
	if input.Active != nil {
		if *input.Active == "" {
			patch.ClearActiveDate = true
		} else {
			day, err := usecase.ParseActiveDate(*input.Active)
			if err != nil {
				return domainerrors.ErrValidationFailed.WrapMessage("active date must be YYYY-MM-DD")
			}
			patch.ActiveDate = &day
		}
	}

	if patch.Empty() {
		return errors.WithStack(domainerrors.ErrNothingToUpdate)
	}

	if err := srv.discussions.Update(ctx, input.ID, patch); err != nil {
		if errors.Is(err, repository.ErrDiscussionNotFound) {
			return domainerrors.ErrDiscussionNotFound.WrapMessage("unknown discussion id")
		}

		return errors.Wrap(err, "failed to update discussion")
	}
	srv.log(ctx).Info("Updated discussion", slog.Any("discussion_id", input.ID))

	return nil
}
