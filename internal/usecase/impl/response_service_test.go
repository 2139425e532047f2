package impl

import (
	"context"
	"net/http"
	"testing"
	"time"

	"agora/internal/domain/entity"
	domainerrors "agora/internal/domain/errors"
	"agora/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeResponseRepo is an in-memory ResponseRepository.
type fakeResponseRepo struct {
	responses []*entity.Response
}

func (f *fakeResponseRepo) ListByDiscussion(ctx context.Context, discussionID uuid.UUID) ([]*entity.Response, error) {
	var matched []*entity.Response
	for _, response := range f.responses {
		if response.DiscussionID == discussionID {
			matched = append(matched, response)
		}
	}

	return matched, nil
}

func (f *fakeResponseRepo) ListByAuthor(ctx context.Context, authorID, discussionID uuid.UUID) ([]*entity.Response, error) {
	var matched []*entity.Response
	for _, response := range f.responses {
		if response.AuthorID == authorID && response.DiscussionID == discussionID {
			matched = append(matched, response)
		}
	}

	return matched, nil
}

func (f *fakeResponseRepo) ListAllByAuthor(ctx context.Context, authorID uuid.UUID) ([]*entity.Response, error) {
	var matched []*entity.Response
	for _, response := range f.responses {
		if response.AuthorID == authorID {
			matched = append(matched, response)
		}
	}

	return matched, nil
}

func (f *fakeResponseRepo) Create(ctx context.Context, response *entity.Response) error {
	response.ID = uuid.New()
	f.responses = append(f.responses, response)

	return nil
}

func TestResponseService_ForToday_Success(t *testing.T) {
	discussions := newFakeDiscussionRepo()
	today := time.Now()
	discussion := &entity.Discussion{Title: "Today", ActiveDate: &today}
	require.NoError(t, discussions.Create(context.Background(), discussion))

	responses := &fakeResponseRepo{}
	require.NoError(t, responses.Create(context.Background(), &entity.Response{
		AuthorID:     uuid.New(),
		DiscussionID: discussion.ID,
		Content:      "First!",
	}))

	svc := NewResponseService(responses, discussions, discardLogger())

	listed, err := svc.ForToday(context.Background())

	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "First!", listed[0].Content)
}

func TestResponseService_ForToday_NoScheduledDiscussion(t *testing.T) {
	svc := NewResponseService(&fakeResponseRepo{}, newFakeDiscussionRepo(), discardLogger())

	_, err := svc.ForToday(context.Background())

	require.Error(t, err)
	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusNotFound, appErr.HTTPCode())
}

func TestResponseService_Post_Success(t *testing.T) {
	responses := &fakeResponseRepo{}
	svc := NewResponseService(responses, newFakeDiscussionRepo(), discardLogger())

	posted, err := svc.Post(context.Background(), &usecase.PostResponseInput{
		AuthorID:     uuid.New(),
		DiscussionID: uuid.New(),
		Content:      "A thought",
	})

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, posted.ID)
	assert.Nil(t, posted.ParentID)
	assert.False(t, posted.Reply())
}

func TestResponseService_Reply_ThreadsUnderParent(t *testing.T) {
	responses := &fakeResponseRepo{}
	svc := NewResponseService(responses, newFakeDiscussionRepo(), discardLogger())

	parentID := uuid.New()
	posted, err := svc.Reply(context.Background(), &usecase.PostReplyInput{
		AuthorID:     uuid.New(),
		ParentID:     parentID,
		DiscussionID: uuid.New(),
		Content:      "A reply",
	})

	require.NoError(t, err)
	require.NotNil(t, posted.ParentID)
	assert.Equal(t, parentID, *posted.ParentID)
	assert.True(t, posted.Reply())
}
