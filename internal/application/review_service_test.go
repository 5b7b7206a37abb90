package application

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/scentlog/scentlog/internal/domain"
	"github.com/scentlog/scentlog/internal/domain/entity"
)

func newReviewService(reviews *mockReviewRepository) *ReviewService {
	return NewReviewService(reviews, domain.NewPolicy(), testLogger())
}

func TestReviewCreateRecalculatesStats(t *testing.T) {
	reviews := new(mockReviewRepository)
	svc := newReviewService(reviews)

	reviews.On("Create", mock.Anything, mock.MatchedBy(func(rv *entity.Review) bool {
		return rv.UserID == "u1" && rv.PerfumeID == "p1" && rv.Rating == 5
	})).Return(nil)
	reviews.On("RecalcPerfumeStats", mock.Anything, "p1").Return(nil)

	rv, err := svc.Create(context.Background(), "u1", "p1", ReviewInput{Rating: 5, Comment: "great"})
	require.NoError(t, err)
	assert.Equal(t, 5, rv.Rating)
	reviews.AssertExpectations(t)
}

func TestReviewCreateDefaultsSubRatings(t *testing.T) {
	reviews := new(mockReviewRepository)
	svc := newReviewService(reviews)

	reviews.On("Create", mock.Anything, mock.MatchedBy(func(rv *entity.Review) bool {
		return rv.Longevity == entity.SubRatingDefault &&
			rv.Projection == entity.SubRatingDefault &&
			rv.Sillage == entity.SubRatingDefault
	})).Return(nil)
	reviews.On("RecalcPerfumeStats", mock.Anything, "p1").Return(nil)

	_, err := svc.Create(context.Background(), "u1", "p1", ReviewInput{Rating: 4})
	require.NoError(t, err)
	reviews.AssertExpectations(t)
}

func TestReviewCreateRejectsInvalidRating(t *testing.T) {
	reviews := new(mockReviewRepository)
	svc := newReviewService(reviews)

	for _, rating := range []int{0, 6, -1} {
		_, err := svc.Create(context.Background(), "u1", "p1", ReviewInput{Rating: rating})
		assert.ErrorIs(t, err, domain.ErrValidation, "rating %d", rating)
	}
	reviews.AssertNotCalled(t, "Create")
}

func TestReviewCommentLengthCountsRunes(t *testing.T) {
	reviews := new(mockReviewRepository)
	svc := newReviewService(reviews)

	reviews.On("Create", mock.Anything, mock.Anything).Return(nil)
	reviews.On("RecalcPerfumeStats", mock.Anything, "p1").Return(nil)

	// 1000 three-byte runes is exactly the limit, one more is not.
	atLimit := strings.Repeat("好", entity.CommentMaxLen)
	_, err := svc.Create(context.Background(), "u1", "p1", ReviewInput{Rating: 4, Comment: atLimit})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), "u2", "p1", ReviewInput{Rating: 4, Comment: atLimit + "好"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestReviewCreateSurfacesConflict(t *testing.T) {
	reviews := new(mockReviewRepository)
	svc := newReviewService(reviews)

	reviews.On("Create", mock.Anything, mock.Anything).Return(domain.Conflictf("already reviewed"))

	_, err := svc.Create(context.Background(), "u1", "p1", ReviewInput{Rating: 3})
	assert.ErrorIs(t, err, domain.ErrConflict)
	reviews.AssertNotCalled(t, "RecalcPerfumeStats")
}

func TestReviewUpdateOwnershipEnforced(t *testing.T) {
	reviews := new(mockReviewRepository)
	svc := newReviewService(reviews)

	reviews.On("GetByID", mock.Anything, "r1").Return(&entity.Review{ID: "r1", UserID: "owner", PerfumeID: "p1", Rating: 2}, nil)

	_, err := svc.Update(context.Background(), "intruder", "r1", ReviewInput{Rating: 5})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	reviews.AssertNotCalled(t, "Update")
}

func TestReviewUpdateRecalculatesStats(t *testing.T) {
	reviews := new(mockReviewRepository)
	svc := newReviewService(reviews)

	reviews.On("GetByID", mock.Anything, "r1").Return(&entity.Review{ID: "r1", UserID: "u1", PerfumeID: "p1", Rating: 2}, nil)
	reviews.On("Update", mock.Anything, mock.MatchedBy(func(rv *entity.Review) bool {
		return rv.ID == "r1" && rv.Rating == 5
	})).Return(nil)
	reviews.On("RecalcPerfumeStats", mock.Anything, "p1").Return(nil)

	rv, err := svc.Update(context.Background(), "u1", "r1", ReviewInput{Rating: 5})
	require.NoError(t, err)
	assert.Equal(t, 5, rv.Rating)
	reviews.AssertExpectations(t)
}

func TestReviewDeleteByOwner(t *testing.T) {
	reviews := new(mockReviewRepository)
	svc := newReviewService(reviews)

	reviews.On("GetByID", mock.Anything, "r1").Return(&entity.Review{ID: "r1", UserID: "u1", PerfumeID: "p1"}, nil)
	reviews.On("Delete", mock.Anything, "r1").Return(nil)
	reviews.On("RecalcPerfumeStats", mock.Anything, "p1").Return(nil)

	err := svc.Delete(context.Background(), "u1", entity.RoleUser, "r1")
	require.NoError(t, err)
	reviews.AssertExpectations(t)
}

func TestReviewDeleteByModerator(t *testing.T) {
	reviews := new(mockReviewRepository)
	svc := newReviewService(reviews)

	reviews.On("GetByID", mock.Anything, "r1").Return(&entity.Review{ID: "r1", UserID: "someone", PerfumeID: "p1"}, nil)
	reviews.On("Delete", mock.Anything, "r1").Return(nil)
	reviews.On("RecalcPerfumeStats", mock.Anything, "p1").Return(nil)

	err := svc.Delete(context.Background(), "mod", entity.RoleModerator, "r1")
	require.NoError(t, err)
	reviews.AssertExpectations(t)
}

func TestReviewDeleteForbiddenForStranger(t *testing.T) {
	reviews := new(mockReviewRepository)
	svc := newReviewService(reviews)

	reviews.On("GetByID", mock.Anything, "r1").Return(&entity.Review{ID: "r1", UserID: "someone", PerfumeID: "p1"}, nil)

	err := svc.Delete(context.Background(), "stranger", entity.RoleUser, "r1")
	assert.ErrorIs(t, err, domain.ErrForbidden)
	reviews.AssertNotCalled(t, "Delete")
}

func TestReviewDeleteMissing(t *testing.T) {
	reviews := new(mockReviewRepository)
	svc := newReviewService(reviews)

	reviews.On("GetByID", mock.Anything, "nope").Return(nil, domain.NotFoundf("review not found"))

	err := svc.Delete(context.Background(), "u1", entity.RoleUser, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
