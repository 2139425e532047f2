package impl

import (
	"context"
	"net/http"
	"testing"
	"time"

	"agora/internal/domain/entity"
	domainerrors "agora/internal/domain/errors"
	"agora/internal/domain/repository"
	"agora/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDiscussionRepo is an in-memory DiscussionRepository.
type fakeDiscussionRepo struct {
	discussions map[uuid.UUID]*entity.Discussion
	lastPatch   repository.DiscussionPatch
}

func newFakeDiscussionRepo() *fakeDiscussionRepo {
	return &fakeDiscussionRepo{discussions: make(map[uuid.UUID]*entity.Discussion)}
}

func (f *fakeDiscussionRepo) FindScheduledOn(ctx context.Context, day time.Time) (*entity.Discussion, error) {
	for _, discussion := range f.discussions {
		if discussion.ActiveDate != nil && sameDay(*discussion.ActiveDate, day) {
			return discussion, nil
		}
	}

	return nil, repository.ErrDiscussionNotFound
}

func (f *fakeDiscussionRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Discussion, error) {
	discussion, ok := f.discussions[id]
	if !ok {
		return nil, repository.ErrDiscussionNotFound
	}

	return discussion, nil
}

func (f *fakeDiscussionRepo) ListUnscheduled(ctx context.Context) ([]*entity.Discussion, error) {
	var unscheduled []*entity.Discussion
	for _, discussion := range f.discussions {
		if discussion.ActiveDate == nil {
			unscheduled = append(unscheduled, discussion)
		}
	}

	return unscheduled, nil
}

func (f *fakeDiscussionRepo) ListUpcoming(ctx context.Context, day time.Time) ([]*entity.Discussion, error) {
	var upcoming []*entity.Discussion
	for _, discussion := range f.discussions {
		if discussion.ActiveDate != nil && !discussion.ActiveDate.Before(day.Truncate(24*time.Hour)) {
			upcoming = append(upcoming, discussion)
		}
	}

	return upcoming, nil
}

func (f *fakeDiscussionRepo) Create(ctx context.Context, discussion *entity.Discussion) error {
	discussion.ID = uuid.New()
	f.discussions[discussion.ID] = discussion

	return nil
}

func (f *fakeDiscussionRepo) Update(ctx context.Context, id uuid.UUID, patch repository.DiscussionPatch) error {
	if _, ok := f.discussions[id]; !ok {
		return repository.ErrDiscussionNotFound
	}
	f.lastPatch = patch

	return nil
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

func TestDiscussionService_ScheduledToday_Success(t *testing.T) {
	repo := newFakeDiscussionRepo()
	today := time.Now()
	require.NoError(t, repo.Create(context.Background(), &entity.Discussion{Title: "Today", ActiveDate: &today}))
	svc := NewDiscussionService(repo, discardLogger())

	discussion, err := svc.ScheduledToday(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "Today", discussion.Title)
}

func TestDiscussionService_ScheduledToday_NotFound(t *testing.T) {
	svc := NewDiscussionService(newFakeDiscussionRepo(), discardLogger())

	_, err := svc.ScheduledToday(context.Background())

	require.Error(t, err)
	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusNotFound, appErr.HTTPCode())
}

func TestDiscussionService_Create_WithActiveDate(t *testing.T) {
	repo := newFakeDiscussionRepo()
	svc := NewDiscussionService(repo, discardLogger())

	discussion, err := svc.Create(context.Background(), &usecase.CreateDiscussionInput{
		Title:      "Prompt",
		Content:    "What do you think?",
		ActiveDate: "2026-09-15",
	})

	require.NoError(t, err)
	require.NotNil(t, discussion.ActiveDate)
	assert.Equal(t, 2026, discussion.ActiveDate.Year())
	assert.Equal(t, time.September, discussion.ActiveDate.Month())
	assert.Equal(t, 15, discussion.ActiveDate.Day())
}

func TestDiscussionService_Create_BadActiveDate(t *testing.T) {
	svc := NewDiscussionService(newFakeDiscussionRepo(), discardLogger())

	_, err := svc.Create(context.Background(), &usecase.CreateDiscussionInput{
		Title:      "Prompt",
		Content:    "Body",
		ActiveDate: "15/09/2026",
	})

	require.Error(t, err)
	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusBadRequest, appErr.HTTPCode())
}

func TestDiscussionService_Update_EmptyPatchRejected(t *testing.T) {
	repo := newFakeDiscussionRepo()
	discussion := &entity.Discussion{Title: "Prompt"}
	require.NoError(t, repo.Create(context.Background(), discussion))
	svc := NewDiscussionService(repo, discardLogger())

	err := svc.Update(context.Background(), &usecase.UpdateDiscussionInput{ID: discussion.ID})

	require.Error(t, err)
	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusBadRequest, appErr.HTTPCode())
}

func TestDiscussionService_Update_EmptyActiveClearsSchedule(t *testing.T) {
	repo := newFakeDiscussionRepo()
	today := time.Now()
	discussion := &entity.Discussion{Title: "Prompt", ActiveDate: &today}
	require.NoError(t, repo.Create(context.Background(), discussion))
	svc := NewDiscussionService(repo, discardLogger())

	active := ""
	err := svc.Update(context.Background(), &usecase.UpdateDiscussionInput{ID: discussion.ID, Active: &active})

	require.NoError(t, err)
	assert.True(t, repo.lastPatch.ClearActiveDate)
	assert.Nil(t, repo.lastPatch.ActiveDate)
}

func TestDiscussionService_Update_UnknownID(t *testing.T) {
	svc := NewDiscussionService(newFakeDiscussionRepo(), discardLogger())

	title := "Renamed"
	err := svc.Update(context.Background(), &usecase.UpdateDiscussionInput{ID: uuid.New(), Title: &title})

	require.Error(t, err)
	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusNotFound, appErr.HTTPCode())
}
