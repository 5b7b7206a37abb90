package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/scentlog/scentlog/internal/domain"
	"github.com/scentlog/scentlog/internal/domain/entity"
	"github.com/scentlog/scentlog/pkg/mailer"
)

type discussionFixture struct {
	discussions *mockDiscussionRepository
	users       *mockUserRepository
	perfumes    *mockPerfumeRepository
	mail        *mockEmailQueue
	svc         *DiscussionService
}

func newDiscussionFixture() *discussionFixture {
	f := &discussionFixture{
		discussions: new(mockDiscussionRepository),
		users:       new(mockUserRepository),
		perfumes:    new(mockPerfumeRepository),
		mail:        new(mockEmailQueue),
	}
	f.svc = NewDiscussionService(f.discussions, f.users, f.perfumes, domain.NewPolicy(), f.mail, testLogger(), "http://localhost:3000")
	return f
}

func TestDiscussionCreate(t *testing.T) {
	f := newDiscussionFixture()

	f.discussions.On("Create", mock.Anything, mock.MatchedBy(func(d *entity.Discussion) bool {
		return d.Title == "Best summer scents?" && d.PerfumeID == nil
	})).Return(nil)

	d, err := f.svc.Create(context.Background(), "u1", DiscussionInput{
		Title:   "  Best summer scents?  ",
		Content: "Looking for something citrusy.",
		Tags:    []string{" Summer ", "CITRUS"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"summer", "citrus"}, d.Tags)
	f.discussions.AssertExpectations(t)
}

func TestDiscussionCreatePinnedToMissingPerfume(t *testing.T) {
	f := newDiscussionFixture()

	f.perfumes.On("GetByID", mock.Anything, "nope").Return(nil, domain.NotFoundf("perfume not found"))

	_, err := f.svc.Create(context.Background(), "u1", DiscussionInput{
		Title:     "Thoughts?",
		Content:   "Anyone tried this?",
		PerfumeID: "nope",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	f.discussions.AssertNotCalled(t, "Create")
}

func TestDiscussionCreateValidation(t *testing.T) {
	f := newDiscussionFixture()

	_, err := f.svc.Create(context.Background(), "u1", DiscussionInput{Title: "", Content: "body"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.svc.Create(context.Background(), "u1", DiscussionInput{Title: "title", Content: "   "})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestAddReplyNotifiesAuthor(t *testing.T) {
	f := newDiscussionFixture()

	f.discussions.On("GetByID", mock.Anything, "d1").
		Return(&entity.Discussion{ID: "d1", UserID: "author", Title: "Thread"}, nil)
	f.discussions.On("AddReply", mock.Anything, mock.Anything).Return(nil)
	f.users.On("GetByID", mock.Anything, "author").
		Return(&entity.User{ID: "author", Email: "author@example.com", Name: "Author"}, nil)
	f.users.On("GetByID", mock.Anything, "replier").
		Return(&entity.User{ID: "replier", Name: "Replier"}, nil)
	f.mail.On("PublishJSON", mock.Anything, mock.MatchedBy(func(body any) bool {
		job, ok := body.(mailer.EmailJob)
		return ok && job.To == "author@example.com" && job.Template == mailer.TemplateReplyNotification
	})).Return(nil)

	_, err := f.svc.AddReply(context.Background(), "replier", "d1", "Nice thread")
	require.NoError(t, err)
	f.mail.AssertExpectations(t)
}

func TestAddReplySelfReplySkipsNotification(t *testing.T) {
	f := newDiscussionFixture()

	f.discussions.On("GetByID", mock.Anything, "d1").
		Return(&entity.Discussion{ID: "d1", UserID: "author"}, nil)
	f.discussions.On("AddReply", mock.Anything, mock.Anything).Return(nil)

	_, err := f.svc.AddReply(context.Background(), "author", "d1", "bump")
	require.NoError(t, err)
	f.mail.AssertNotCalled(t, "PublishJSON")
}

func TestDeleteReplyModeration(t *testing.T) {
	f := newDiscussionFixture()

	f.discussions.On("GetReply", mock.Anything, "d1", "r1").
		Return(&entity.Reply{ID: "r1", DiscussionID: "d1", UserID: "someone"}, nil)
	f.discussions.On("DeleteReply", mock.Anything, "d1", "r1").Return(nil)

	require.NoError(t, f.svc.DeleteReply(context.Background(), "mod", entity.RoleModerator, "d1", "r1"))

	err := f.svc.DeleteReply(context.Background(), "stranger", entity.RoleUser, "d1", "r1")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestToggleLike(t *testing.T) {
	f := newDiscussionFixture()

	f.discussions.On("GetByID", mock.Anything, "d1").
		Return(&entity.Discussion{ID: "d1"}, nil)
	f.discussions.On("ToggleLike", mock.Anything, "d1", "u1").Return(true, 7, nil)

	state, err := f.svc.ToggleLike(context.Background(), "u1", "d1")
	require.NoError(t, err)
	assert.True(t, state.Liked)
	assert.Equal(t, 7, state.Count)
}
