package application

import (
	"context"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"github.com/scentlog/scentlog/internal/domain"
	"github.com/scentlog/scentlog/internal/domain/entity"
	repo "github.com/scentlog/scentlog/internal/domain/repository"
)

// ReviewService owns the review lifecycle. Every mutation ends with a
// synchronous stats recompute so the perfume's denormalized averages are
// consistent before the response is written.
type ReviewService struct {
	Reviews repo.ReviewRepository
	Policy  domain.Policy
	Logger  *logrus.Logger
}

func NewReviewService(reviews repo.ReviewRepository, policy domain.Policy, logger *logrus.Logger) *ReviewService {
	return &ReviewService{Reviews: reviews, Policy: policy, Logger: logger}
}

type ReviewInput struct {
	Rating     int
	Longevity  int
	Projection int
	Sillage    int
	Comment    string
}

func (in *ReviewInput) validate() error {
	if !entity.ValidRating(in.Rating) {
		return domain.Validationf("rating must be between %d and %d", entity.RatingMin, entity.RatingMax)
	}
	for _, sub := range []struct {
		name  string
		value *int
	}{
		{"longevity", &in.Longevity},
		{"projection", &in.Projection},
		{"sillage", &in.Sillage},
	} {
		if *sub.value == 0 {
			*sub.value = entity.SubRatingDefault
			continue
		}
		if !entity.ValidRating(*sub.value) {
			return domain.Validationf("%s must be between %d and %d", sub.name, entity.RatingMin, entity.RatingMax)
		}
	}
	if utf8.RuneCountInString(in.Comment) > entity.CommentMaxLen {
		return domain.Validationf("comment exceeds %d characters", entity.CommentMaxLen)
	}
	return nil
}

// Create records a new review and recomputes the perfume's stats. A second
// review by the same user for the same perfume surfaces as a conflict.
func (s *ReviewService) Create(ctx context.Context, userID, perfumeID string, in ReviewInput) (*entity.Review, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	rv := &entity.Review{
		UserID:     userID,
		PerfumeID:  perfumeID,
		Rating:     in.Rating,
		Longevity:  in.Longevity,
		Projection: in.Projection,
		Sillage:    in.Sillage,
		Comment:    in.Comment,
	}
	if err := s.Reviews.Create(ctx, rv); err != nil {
		return nil, err
	}
	if err := s.Reviews.RecalcPerfumeStats(ctx, perfumeID); err != nil {
		s.Logger.WithError(err).WithField("perfume_id", perfumeID).Error("stats recompute failed")
		return nil, err
	}
	return rv, nil
}

// Update lets the reviewer revise their own review.
func (s *ReviewService) Update(ctx context.Context, actorID, reviewID string, in ReviewInput) (*entity.Review, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	rv, err := s.Reviews.GetByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if !s.Policy.CanEditOwn(actorID, rv.UserID) {
		return nil, domain.Forbiddenf("review belongs to another user")
	}
	rv.Rating = in.Rating
	rv.Longevity = in.Longevity
	rv.Projection = in.Projection
	rv.Sillage = in.Sillage
	rv.Comment = in.Comment
	if err := s.Reviews.Update(ctx, rv); err != nil {
		return nil, err
	}
	if err := s.Reviews.RecalcPerfumeStats(ctx, rv.PerfumeID); err != nil {
		s.Logger.WithError(err).WithField("perfume_id", rv.PerfumeID).Error("stats recompute failed")
		return nil, err
	}
	return rv, nil
}

// Delete removes a review. The reviewer may delete their own; moderators and
// admins may delete any.
func (s *ReviewService) Delete(ctx context.Context, actorID string, actorRole entity.Role, reviewID string) error {
	rv, err := s.Reviews.GetByID(ctx, reviewID)
	if err != nil {
		return err
	}
	if !s.Policy.CanDelete(actorID, actorRole, rv.UserID) {
		return domain.Forbiddenf("review belongs to another user")
	}
	if err := s.Reviews.Delete(ctx, reviewID); err != nil {
		return err
	}
	if err := s.Reviews.RecalcPerfumeStats(ctx, rv.PerfumeID); err != nil {
		s.Logger.WithError(err).WithField("perfume_id", rv.PerfumeID).Error("stats recompute failed")
		return err
	}
	return nil
}

func (s *ReviewService) GetByID(ctx context.Context, reviewID string) (*entity.Review, error) {
	return s.Reviews.GetByID(ctx, reviewID)
}

func (s *ReviewService) ListByPerfume(ctx context.Context, perfumeID string, page, limit int) ([]entity.Review, int, error) {
	return s.Reviews.ListByPerfume(ctx, perfumeID, page, limit)
}

func (s *ReviewService) ListByUser(ctx context.Context, userID string) ([]entity.Review, error) {
	return s.Reviews.ListByUser(ctx, userID)
}
