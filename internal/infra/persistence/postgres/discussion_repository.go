package postgres

import (
	"context"
	"time"

	"agora/internal/domain/entity"
	domainerrors "agora/internal/domain/errors"
	"agora/internal/domain/repository"
	"agora/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// discussionRepository implements the domain.DiscussionRepository interface using GORM.
type discussionRepository struct {
	db *gorm.DB
}

// NewDiscussionRepository is the constructor for discussionRepository.
func NewDiscussionRepository(db *gorm.DB) repository.DiscussionRepository {
	return &discussionRepository{db: db}
}

// FindScheduledOn retrieves the discussion whose active date falls on day.
func (repo *discussionRepository) FindScheduledOn(ctx context.Context, day time.Time) (*entity.Discussion, error) {
	var discussionM model.DiscussionModel
	err := repo.db.WithContext(ctx).
		Where("active_date = ?", truncateToDate(day)).
		First(&discussionM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrDiscussionNotFound
		}

		return nil, errors.Wrap(err, "failed to find scheduled discussion")
	}

	return toDiscussionDomain(&discussionM), nil
}

// FindByID retrieves a single discussion by id.
func (repo *discussionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Discussion, error) {
	var discussionM model.DiscussionModel
	err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&discussionM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrDiscussionNotFound
		}

		return nil, errors.Wrap(err, "failed to find discussion by id")
	}

	return toDiscussionDomain(&discussionM), nil
}

// ListUnscheduled retrieves discussions without an active date.
func (repo *discussionRepository) ListUnscheduled(ctx context.Context) ([]*entity.Discussion, error) {
	var discussionModels []model.DiscussionModel
	err := repo.db.WithContext(ctx).
		Where("active_date IS NULL").
		Order("created_at ASC").
		Find(&discussionModels).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list unscheduled discussions")
	}

	return toDiscussionDomainSlice(discussionModels), nil
}

// ListUpcoming retrieves discussions scheduled on or after day, ascending.
func (repo *discussionRepository) ListUpcoming(ctx context.Context, day time.Time) ([]*entity.Discussion, error) {
	var discussionModels []model.DiscussionModel
	err := repo.db.WithContext(ctx).
		Where("active_date >= ?", truncateToDate(day)).
		Order("active_date ASC").
		Find(&discussionModels).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list upcoming discussions")
	}

	return toDiscussionDomainSlice(discussionModels), nil
}

// Create persists a new discussion.
func (repo *discussionRepository) Create(ctx context.Context, discussion *entity.Discussion) error {
	discussionM := fromDiscussionDomain(discussion)

	if err := repo.db.WithContext(ctx).Create(discussionM).Error; err != nil {
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required discussion fields")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create discussion")
	}

	discussion.ID = discussionM.ID
	discussion.CreatedAt = discussionM.CreatedAt
	discussion.UpdatedAt = discussionM.UpdatedAt

	return nil
}

// Update applies a patch to an existing discussion. The dynamic column set
// mirrors the patch: absent fields stay untouched, ClearActiveDate writes an
// explicit NULL.
func (repo *discussionRepository) Update(ctx context.Context, id uuid.UUID, patch repository.DiscussionPatch) error {
	updates := map[string]any{}
	if patch.Title != nil {
		updates["title"] = *patch.Title
	}
	if patch.Content != nil {
		updates["content"] = *patch.Content
	}
	if patch.ClearActiveDate {
		updates["active_date"] = nil
	} else if patch.ActiveDate != nil {
		updates["active_date"] = truncateToDate(*patch.ActiveDate)
	}

	if len(updates) == 0 {
		return errors.WithStack(domainerrors.ErrNothingToUpdate)
	}

	result := repo.db.WithContext(ctx).
		Model(&model.DiscussionModel{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update discussion")
	}
	if result.RowsAffected == 0 {
		return repository.ErrDiscussionNotFound
	}

	return nil
}

// truncateToDate drops the time-of-day component so date columns compare cleanly.
func truncateToDate(t time.Time) time.Time {
	year, month, day := t.Date()

	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// --- Mapper Functions ---

func toDiscussionDomain(data *model.DiscussionModel) *entity.Discussion {
	if data == nil {
		return nil
	}

	return &entity.Discussion{
		ID:         data.ID,
		Title:      data.Title,
		Content:    data.Content,
		ActiveDate: data.ActiveDate,
		CreatedAt:  data.CreatedAt,
		UpdatedAt:  data.UpdatedAt,
	}
}

func toDiscussionDomainSlice(data []model.DiscussionModel) []*entity.Discussion {
	discussions := make([]*entity.Discussion, 0, len(data))
	for i := range data {
		discussions = append(discussions, toDiscussionDomain(&data[i]))
	}

	return discussions
}

func fromDiscussionDomain(data *entity.Discussion) *model.DiscussionModel {
	if data == nil {
		return nil
	}

	discussionM := &model.DiscussionModel{
		ID:      data.ID,
		Title:   data.Title,
		Content: data.Content,
	}
	if data.ActiveDate != nil {
		day := truncateToDate(*data.ActiveDate)
		discussionM.ActiveDate = &day
	}

	return discussionM
}
