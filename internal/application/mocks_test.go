package application

import (
	"context"
	"io"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/mock"

	"github.com/scentlog/scentlog/internal/domain/entity"
	repo "github.com/scentlog/scentlog/internal/domain/repository"
)

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// --- Mock Review Repository ---

type mockReviewRepository struct {
	mock.Mock
}

var _ repo.ReviewRepository = (*mockReviewRepository)(nil)

func (m *mockReviewRepository) Create(ctx context.Context, rv *entity.Review) error {
	args := m.Called(ctx, rv)
	return args.Error(0)
}

func (m *mockReviewRepository) GetByID(ctx context.Context, id string) (*entity.Review, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Review), args.Error(1)
}

func (m *mockReviewRepository) GetByUserAndPerfume(ctx context.Context, userID, perfumeID string) (*entity.Review, error) {
	args := m.Called(ctx, userID, perfumeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Review), args.Error(1)
}

func (m *mockReviewRepository) ListByPerfume(ctx context.Context, perfumeID string, page, limit int) ([]entity.Review, int, error) {
	args := m.Called(ctx, perfumeID, page, limit)
	return args.Get(0).([]entity.Review), args.Int(1), args.Error(2)
}

func (m *mockReviewRepository) ListByUser(ctx context.Context, userID string) ([]entity.Review, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Review), args.Error(1)
}

func (m *mockReviewRepository) Update(ctx context.Context, rv *entity.Review) error {
	args := m.Called(ctx, rv)
	return args.Error(0)
}

func (m *mockReviewRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockReviewRepository) RecalcPerfumeStats(ctx context.Context, perfumeID string) error {
	args := m.Called(ctx, perfumeID)
	return args.Error(0)
}

func (m *mockReviewRepository) LikedPerfumeIDs(ctx context.Context, userID string) ([]string, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *mockReviewRepository) AlsoLikedBy(ctx context.Context, perfumeID string, limit int) ([]entity.AlsoLikedPerfume, error) {
	args := m.Called(ctx, perfumeID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.AlsoLikedPerfume), args.Error(1)
}

func (m *mockReviewRepository) TrendingSince(ctx context.Context, since time.Time, limit int) ([]entity.TrendingPerfume, error) {
	args := m.Called(ctx, since, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.TrendingPerfume), args.Error(1)
}

// --- Mock Perfume Repository ---

type mockPerfumeRepository struct {
	mock.Mock
}

var _ repo.PerfumeRepository = (*mockPerfumeRepository)(nil)

func (m *mockPerfumeRepository) Create(ctx context.Context, p *entity.Perfume) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *mockPerfumeRepository) GetByID(ctx context.Context, id string) (*entity.Perfume, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Perfume), args.Error(1)
}

func (m *mockPerfumeRepository) GetByIDs(ctx context.Context, ids []string) ([]entity.Perfume, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Perfume), args.Error(1)
}

func (m *mockPerfumeRepository) List(ctx context.Context, f repo.PerfumeFilter) ([]entity.Perfume, int, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]entity.Perfume), args.Int(1), args.Error(2)
}

func (m *mockPerfumeRepository) Update(ctx context.Context, p *entity.Perfume) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *mockPerfumeRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockPerfumeRepository) IncrementBuyClicks(ctx context.Context, id string) (*entity.Perfume, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Perfume), args.Error(1)
}

func (m *mockPerfumeRepository) DistinctBrands(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *mockPerfumeRepository) DistinctNotes(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *mockPerfumeRepository) SimilarByNotes(ctx context.Context, notes []string, excludeID string, limit int) ([]entity.Perfume, error) {
	args := m.Called(ctx, notes, excludeID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Perfume), args.Error(1)
}

func (m *mockPerfumeRepository) MatchingNotes(ctx context.Context, notes []string, excludeIDs []string, limit int) ([]entity.Perfume, error) {
	args := m.Called(ctx, notes, excludeIDs, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Perfume), args.Error(1)
}

func (m *mockPerfumeRepository) RankByRating(ctx context.Context, limit, minReviews int) ([]entity.Perfume, error) {
	args := m.Called(ctx, limit, minReviews)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Perfume), args.Error(1)
}

// --- Mock Discussion Repository ---

type mockDiscussionRepository struct {
	mock.Mock
}

var _ repo.DiscussionRepository = (*mockDiscussionRepository)(nil)

func (m *mockDiscussionRepository) Create(ctx context.Context, d *entity.Discussion) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *mockDiscussionRepository) GetByID(ctx context.Context, id string) (*entity.Discussion, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Discussion), args.Error(1)
}

func (m *mockDiscussionRepository) List(ctx context.Context, f repo.DiscussionFilter) ([]entity.Discussion, int, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]entity.Discussion), args.Int(1), args.Error(2)
}

func (m *mockDiscussionRepository) Update(ctx context.Context, d *entity.Discussion) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *mockDiscussionRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockDiscussionRepository) AddReply(ctx context.Context, r *entity.Reply) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *mockDiscussionRepository) GetReply(ctx context.Context, discussionID, replyID string) (*entity.Reply, error) {
	args := m.Called(ctx, discussionID, replyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Reply), args.Error(1)
}

func (m *mockDiscussionRepository) DeleteReply(ctx context.Context, discussionID, replyID string) error {
	args := m.Called(ctx, discussionID, replyID)
	return args.Error(0)
}

func (m *mockDiscussionRepository) ToggleLike(ctx context.Context, discussionID, userID string) (bool, int, error) {
	args := m.Called(ctx, discussionID, userID)
	return args.Bool(0), args.Int(1), args.Error(2)
}

func (m *mockDiscussionRepository) ToggleReplyLike(ctx context.Context, discussionID, replyID, userID string) (bool, int, error) {
	args := m.Called(ctx, discussionID, replyID, userID)
	return args.Bool(0), args.Int(1), args.Error(2)
}

// --- Mock User Repository ---

type mockUserRepository struct {
	mock.Mock
}

var _ repo.UserRepository = (*mockUserRepository)(nil)

func (m *mockUserRepository) Create(ctx context.Context, u *entity.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *mockUserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *mockUserRepository) GetByGoogleID(ctx context.Context, googleID string) (*entity.User, error) {
	args := m.Called(ctx, googleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *mockUserRepository) Update(ctx context.Context, u *entity.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *mockUserRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	args := m.Called(ctx, id, passwordHash)
	return args.Error(0)
}

func (m *mockUserRepository) SetVerified(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockUserRepository) IsVerified(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserRepository) ToggleFavorite(ctx context.Context, userID, perfumeID string) (bool, error) {
	args := m.Called(ctx, userID, perfumeID)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserRepository) ListFavorites(ctx context.Context, userID string) ([]entity.Perfume, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Perfume), args.Error(1)
}

// --- Mock Email Queue ---

type mockEmailQueue struct {
	mock.Mock
}

var _ EmailQueue = (*mockEmailQueue)(nil)

func (m *mockEmailQueue) PublishJSON(ctx context.Context, body any) error {
	args := m.Called(ctx, body)
	return args.Error(0)
}
