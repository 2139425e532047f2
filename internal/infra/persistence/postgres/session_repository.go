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
	"gorm.io/gorm/clause"
)

// sessionRepository implements the domain.SessionRepository interface using GORM.
// Destroy issues a hard DELETE inside the calling request, so the next request
// carrying the same session id observes an empty session with no stale-read
// window.
type sessionRepository struct {
	db *gorm.DB
}

// NewSessionRepository is the constructor for sessionRepository.
func NewSessionRepository(db *gorm.DB) repository.SessionRepository {
	return &sessionRepository{db: db}
}

// Find retrieves a session by id.
func (repo *sessionRepository) Find(ctx context.Context, id uuid.UUID) (*entity.Session, error) {
	var sessionM model.SessionModel
	err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&sessionM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrSessionNotFound
		}

		return nil, errors.Wrap(err, "failed to find session")
	}

	return toSessionDomain(&sessionM), nil
}

// Save creates or fully replaces a session record.
func (repo *sessionRepository) Save(ctx context.Context, session *entity.Session) error {
	sessionM := fromSessionDomain(session)

	err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(sessionM).Error
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to save session")
	}

	session.CreatedAt = sessionM.CreatedAt
	session.UpdatedAt = sessionM.UpdatedAt

	return nil
}

// Destroy removes a session. Destroying an unknown id is not an error.
func (repo *sessionRepository) Destroy(ctx context.Context, id uuid.UUID) error {
	err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.SessionModel{}).Error
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to destroy session")
	}

	return nil
}

// --- Mapper Functions ---

func toSessionDomain(data *model.SessionModel) *entity.Session {
	if data == nil {
		return nil
	}

	session := &entity.Session{
		ID:         data.ID,
		TokenCache: data.TokenCache,
		CreatedAt:  data.CreatedAt,
		UpdatedAt:  data.UpdatedAt,
	}

	// Account presence is what marks the session authenticated.
	if data.AccountHomeID != nil {
		session.Account = &entity.Account{
			HomeAccountID: *data.AccountHomeID,
			Username:      deref(data.AccountUsername),
			Authority:     deref(data.AccountAuthority),
		}
	}
	if data.ProfileExternalID != nil {
		session.Profile = &entity.Profile{
			ExternalID:    *data.ProfileExternalID,
			DisplayName:   deref(data.ProfileDisplayName),
			PrincipalName: deref(data.ProfilePrincipal),
		}
	}

	return session
}

func fromSessionDomain(data *entity.Session) *model.SessionModel {
	if data == nil {
		return nil
	}

	sessionM := &model.SessionModel{
		ID:         data.ID,
		TokenCache: data.TokenCache,
	}
	if data.Account != nil {
		sessionM.AccountHomeID = &data.Account.HomeAccountID
		sessionM.AccountUsername = &data.Account.Username
		sessionM.AccountAuthority = &data.Account.Authority
	}
	if data.Profile != nil {
		sessionM.ProfileExternalID = &data.Profile.ExternalID
		sessionM.ProfileDisplayName = &data.Profile.DisplayName
		sessionM.ProfilePrincipal = &data.Profile.PrincipalName
	}

	return sessionM
}

func deref(s *string) string {
	if s == nil {
		return ""
	}

	return *s
}
