package postgres

import (
	"context"

	"agora/internal/domain/entity"
	domainerrors "agora/internal/domain/errors"
	"agora/internal/domain/repository"
	"agora/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// responseRepository implements the domain.ResponseRepository interface using GORM.
type responseRepository struct {
	db *gorm.DB
}

// NewResponseRepository is the constructor for responseRepository.
func NewResponseRepository(db *gorm.DB) repository.ResponseRepository {
	return &responseRepository{db: db}
}

// ListByDiscussion retrieves every response under a discussion, oldest first.
func (repo *responseRepository) ListByDiscussion(ctx context.Context, discussionID uuid.UUID) ([]*entity.Response, error) {
	var responseModels []model.ResponseModel
	err := repo.db.WithContext(ctx).
		Where("discussion_id = ?", discussionID).
		Order("created_at ASC").
		Find(&responseModels).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list responses by discussion")
	}

	return toResponseDomainSlice(responseModels), nil
}

// ListByAuthor retrieves an author's responses within one discussion.
func (repo *responseRepository) ListByAuthor(ctx context.Context, authorID, discussionID uuid.UUID) ([]*entity.Response, error) {
	var responseModels []model.ResponseModel
	err := repo.db.WithContext(ctx).
		Where("author_id = ? AND discussion_id = ?", authorID, discussionID).
		Order("created_at ASC").
		Find(&responseModels).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list responses by author")
	}

	return toResponseDomainSlice(responseModels), nil
}

// ListAllByAuthor retrieves an author's responses across all discussions.
func (repo *responseRepository) ListAllByAuthor(ctx context.Context, authorID uuid.UUID) ([]*entity.Response, error) {
	var responseModels []model.ResponseModel
	err := repo.db.WithContext(ctx).
		Where("author_id = ?", authorID).
		Order("created_at ASC").
		Find(&responseModels).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list all responses by author")
	}

	return toResponseDomainSlice(responseModels), nil
}

// Create persists a new response or reply.
func (repo *responseRepository) Create(ctx context.Context, response *entity.Response) error {
	responseM := fromResponseDomain(response)

	if err := repo.db.WithContext(ctx).Create(responseM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrResponseCreationFailed.WrapMessage("unknown author, discussion or parent response")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrResponseCreationFailed.WrapMessage("missing required response fields")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create response")
	}

	response.ID = responseM.ID
	response.CreatedAt = responseM.CreatedAt
	response.UpdatedAt = responseM.UpdatedAt

	return nil
}

// --- Mapper Functions ---

func toResponseDomain(data *model.ResponseModel) *entity.Response {
	if data == nil {
		return nil
	}

	return &entity.Response{
		ID:           data.ID,
		AuthorID:     data.AuthorID,
		DiscussionID: data.DiscussionID,
		ParentID:     data.ParentID,
		Content:      data.Content,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}

func toResponseDomainSlice(data []model.ResponseModel) []*entity.Response {
	responses := make([]*entity.Response, 0, len(data))
	for i := range data {
		responses = append(responses, toResponseDomain(&data[i]))
	}

	return responses
}

func fromResponseDomain(data *entity.Response) *model.ResponseModel {
	if data == nil {
		return nil
	}

	return &model.ResponseModel{
		ID:           data.ID,
		AuthorID:     data.AuthorID,
		DiscussionID: data.DiscussionID,
		ParentID:     data.ParentID,
		Content:      data.Content,
	}
}
