package application

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/scentlog/scentlog/internal/domain"
	"github.com/scentlog/scentlog/internal/domain/entity"
	repo "github.com/scentlog/scentlog/internal/domain/repository"
)

// Trending window names accepted by Trending.
const (
	WindowWeek  = "week"
	WindowMonth = "month"
	WindowYear  = "year"
)

const (
	trendingLimit          = 10
	defaultTopRatedLimit   = 10
	defaultMinReviewsFloor = 3
)

// TrendingService ranks perfumes by recent review activity and by lifetime
// rating.
type TrendingService struct {
	Perfumes repo.PerfumeRepository
	Reviews  repo.ReviewRepository
	Logger   *logrus.Logger
}

func NewTrendingService(perfumes repo.PerfumeRepository, reviews repo.ReviewRepository, logger *logrus.Logger) *TrendingService {
	return &TrendingService{Perfumes: perfumes, Reviews: reviews, Logger: logger}
}

// windowStart maps a window name onto its calendar start relative to now.
// An empty name means month.
func windowStart(window string, now time.Time) (time.Time, error) {
	switch window {
	case WindowWeek:
		return now.AddDate(0, 0, -7), nil
	case WindowMonth, "":
		return now.AddDate(0, -1, 0), nil
	case WindowYear:
		return now.AddDate(-1, 0, 0), nil
	default:
		return time.Time{}, domain.Validationf("unknown trending window %q", window)
	}
}

// Trending returns up to ten perfumes ordered by review volume inside the
// window, mean window rating breaking ties. An unknown window is rejected;
// a quiet window yields an empty list.
func (s *TrendingService) Trending(ctx context.Context, window string) ([]entity.TrendingPerfume, error) {
	since, err := windowStart(window, time.Now())
	if err != nil {
		return nil, err
	}
	return s.Reviews.TrendingSince(ctx, since, trendingLimit)
}

// TopRated returns the best-rated perfumes among those with at least
// minReviews reviews.
func (s *TrendingService) TopRated(ctx context.Context, limit, minReviews int) ([]entity.Perfume, error) {
	if limit <= 0 {
		limit = defaultTopRatedLimit
	}
	if minReviews <= 0 {
		minReviews = defaultMinReviewsFloor
	}
	return s.Perfumes.RankByRating(ctx, limit, minReviews)
}
