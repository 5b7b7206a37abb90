package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/scentlog/scentlog/internal/domain"
	"github.com/scentlog/scentlog/internal/domain/entity"
)

func newRecommendationService(perfumes *mockPerfumeRepository, reviews *mockReviewRepository) *RecommendationService {
	return NewRecommendationService(perfumes, reviews, testLogger())
}

func TestSimilarToUsesAllNotes(t *testing.T) {
	perfumes := new(mockPerfumeRepository)
	reviews := new(mockReviewRepository)
	svc := newRecommendationService(perfumes, reviews)

	source := &entity.Perfume{
		ID:          "p1",
		NotesTop:    []string{"bergamot"},
		NotesMiddle: []string{"rose"},
		NotesBase:   []string{"musk"},
	}
	perfumes.On("GetByID", mock.Anything, "p1").Return(source, nil)
	perfumes.On("SimilarByNotes", mock.Anything, []string{"bergamot", "rose", "musk"}, "p1", 5).
		Return([]entity.Perfume{{ID: "p2"}}, nil)

	out, err := svc.SimilarTo(context.Background(), "p1", 5)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "p2", out[0].ID)
	perfumes.AssertExpectations(t)
}

func TestSimilarToDefaultsLimit(t *testing.T) {
	perfumes := new(mockPerfumeRepository)
	reviews := new(mockReviewRepository)
	svc := newRecommendationService(perfumes, reviews)

	perfumes.On("GetByID", mock.Anything, "p1").Return(&entity.Perfume{ID: "p1", NotesTop: []string{"iris"}}, nil)
	perfumes.On("SimilarByNotes", mock.Anything, []string{"iris"}, "p1", 6).
		Return([]entity.Perfume{}, nil)

	_, err := svc.SimilarTo(context.Background(), "p1", 0)
	require.NoError(t, err)
	perfumes.AssertExpectations(t)
}

func TestSimilarToMissingPerfume(t *testing.T) {
	perfumes := new(mockPerfumeRepository)
	reviews := new(mockReviewRepository)
	svc := newRecommendationService(perfumes, reviews)

	perfumes.On("GetByID", mock.Anything, "nope").Return(nil, domain.NotFoundf("perfume not found"))

	_, err := svc.SimilarTo(context.Background(), "nope", 0)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	perfumes.AssertNotCalled(t, "SimilarByNotes")
}

func TestAlsoLikedByrequiresExistingPerfume(t *testing.T) {
	perfumes := new(mockPerfumeRepository)
	reviews := new(mockReviewRepository)
	svc := newRecommendationService(perfumes, reviews)

	perfumes.On("GetByID", mock.Anything, "nope").Return(nil, domain.NotFoundf("perfume not found"))

	_, err := svc.AlsoLikedBy(context.Background(), "nope", 0)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	reviews.AssertNotCalled(t, "AlsoLikedBy")
}

func TestAlsoLikedByDefaultsLimit(t *testing.T) {
	perfumes := new(mockPerfumeRepository)
	reviews := new(mockReviewRepository)
	svc := newRecommendationService(perfumes, reviews)

	perfumes.On("GetByID", mock.Anything, "p1").Return(&entity.Perfume{ID: "p1"}, nil)
	reviews.On("AlsoLikedBy", mock.Anything, "p1", 6).
		Return([]entity.AlsoLikedPerfume{{PerfumeID: "p2", MatchCount: 3}}, nil)

	out, err := svc.AlsoLikedBy(context.Background(), "p1", 0)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, 3, out[0].MatchCount)
}

func TestRecommendForPersonalized(t *testing.T) {
	perfumes := new(mockPerfumeRepository)
	reviews := new(mockReviewRepository)
	svc := newRecommendationService(perfumes, reviews)

	reviews.On("LikedPerfumeIDs", mock.Anything, "u1").Return([]string{"p1", "p2"}, nil)
	perfumes.On("GetByIDs", mock.Anything, []string{"p1", "p2"}).Return([]entity.Perfume{
		{ID: "p1", NotesTop: []string{"bergamot"}, NotesBase: []string{"musk"}},
		{ID: "p2", NotesTop: []string{"bergamot", "pear"}},
	}, nil)
	reviews.On("ListByUser", mock.Anything, "u1").Return([]entity.Review{
		{PerfumeID: "p1"}, {PerfumeID: "p2"}, {PerfumeID: "p3"},
	}, nil)
	// Notes deduplicated in first-seen order, everything reviewed excluded.
	perfumes.On("MatchingNotes", mock.Anything, []string{"bergamot", "musk", "pear"}, []string{"p1", "p2", "p3"}, 10).
		Return([]entity.Perfume{{ID: "p9"}}, nil)

	recs, err := svc.RecommendFor(context.Background(), "u1", 10)
	require.NoError(t, err)
	assert.Equal(t, RecommendationPersonalized, recs.Source)
	require.Len(t, recs.Perfumes, 1)
	assert.Equal(t, "p9", recs.Perfumes[0].ID)
	perfumes.AssertNotCalled(t, "RankByRating")
}

func TestRecommendForFallsBackToPopular(t *testing.T) {
	perfumes := new(mockPerfumeRepository)
	reviews := new(mockReviewRepository)
	svc := newRecommendationService(perfumes, reviews)

	reviews.On("LikedPerfumeIDs", mock.Anything, "newcomer").Return([]string{}, nil)
	perfumes.On("RankByRating", mock.Anything, 10, 0).Return([]entity.Perfume{{ID: "top"}}, nil)

	recs, err := svc.RecommendFor(context.Background(), "newcomer", 0)
	require.NoError(t, err)
	assert.Equal(t, RecommendationPopular, recs.Source)
	require.Len(t, recs.Perfumes, 1)
	assert.Equal(t, "top", recs.Perfumes[0].ID)
}

func TestRecommendForEmptyMatchesStaysPersonalized(t *testing.T) {
	perfumes := new(mockPerfumeRepository)
	reviews := new(mockReviewRepository)
	svc := newRecommendationService(perfumes, reviews)

	reviews.On("LikedPerfumeIDs", mock.Anything, "u1").Return([]string{"p1"}, nil)
	perfumes.On("GetByIDs", mock.Anything, []string{"p1"}).Return([]entity.Perfume{
		{ID: "p1", NotesTop: []string{"oud"}},
	}, nil)
	reviews.On("ListByUser", mock.Anything, "u1").Return([]entity.Review{{PerfumeID: "p1"}}, nil)
	perfumes.On("MatchingNotes", mock.Anything, []string{"oud"}, []string{"p1"}, 10).
		Return([]entity.Perfume{}, nil)

	// A user with liked history keeps the personalized tag even when no
	// unreviewed perfume shares their notes.
	recs, err := svc.RecommendFor(context.Background(), "u1", 10)
	require.NoError(t, err)
	assert.Equal(t, RecommendationPersonalized, recs.Source)
	assert.Empty(t, recs.Perfumes)
	perfumes.AssertNotCalled(t, "RankByRating")
}
