package application

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/scentlog/scentlog/internal/domain/entity"
	repo "github.com/scentlog/scentlog/internal/domain/repository"
)

// Recommendation source tags returned alongside RecommendFor results.
const (
	RecommendationPersonalized = "personalized"
	RecommendationPopular      = "popular"
)

const (
	defaultSimilarLimit   = 6
	defaultAlsoLikedLimit = 6
	defaultRecommendLimit = 10
)

// RecommendationService answers the discovery queries: note-overlap
// similarity, collaborative overlap, and per-user recommendations.
type RecommendationService struct {
	Perfumes repo.PerfumeRepository
	Reviews  repo.ReviewRepository
	Logger   *logrus.Logger
}

func NewRecommendationService(perfumes repo.PerfumeRepository, reviews repo.ReviewRepository, logger *logrus.Logger) *RecommendationService {
	return &RecommendationService{Perfumes: perfumes, Reviews: reviews, Logger: logger}
}

// SimilarTo returns perfumes sharing at least one note with the given one,
// best rated first. The source perfume must exist and is never in the result.
func (s *RecommendationService) SimilarTo(ctx context.Context, perfumeID string, limit int) ([]entity.Perfume, error) {
	p, err := s.Perfumes.GetByID(ctx, perfumeID)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultSimilarLimit
	}
	return s.Perfumes.SimilarByNotes(ctx, p.AllNotes(), perfumeID, limit)
}

// AlsoLikedBy returns perfumes liked by the users who liked the given one,
// ranked by how many of those users liked each.
func (s *RecommendationService) AlsoLikedBy(ctx context.Context, perfumeID string, limit int) ([]entity.AlsoLikedPerfume, error) {
	if _, err := s.Perfumes.GetByID(ctx, perfumeID); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultAlsoLikedLimit
	}
	return s.Reviews.AlsoLikedBy(ctx, perfumeID, limit)
}

// Recommendations is a ranked perfume list plus the strategy that produced it.
type Recommendations struct {
	Source   string
	Perfumes []entity.Perfume
}

// RecommendFor builds a list for the user from the notes of perfumes they
// rated highly, excluding everything they already reviewed. Users with no
// liked history fall back to the global rating ranking.
func (s *RecommendationService) RecommendFor(ctx context.Context, userID string, limit int) (*Recommendations, error) {
	if limit <= 0 {
		limit = defaultRecommendLimit
	}

	likedIDs, err := s.Reviews.LikedPerfumeIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(likedIDs) > 0 {
		liked, err := s.Perfumes.GetByIDs(ctx, likedIDs)
		if err != nil {
			return nil, err
		}
		notes := likedNotes(liked)
		reviewed, err := s.reviewedIDs(ctx, userID)
		if err != nil {
			return nil, err
		}
		matches, err := s.Perfumes.MatchingNotes(ctx, notes, reviewed, limit)
		if err != nil {
			return nil, err
		}
		// A liked history always yields the personalized list, even when
		// nothing unreviewed matches its notes.
		return &Recommendations{Source: RecommendationPersonalized, Perfumes: matches}, nil
	}

	popular, err := s.Perfumes.RankByRating(ctx, limit, 0)
	if err != nil {
		return nil, err
	}
	return &Recommendations{Source: RecommendationPopular, Perfumes: popular}, nil
}

func (s *RecommendationService) reviewedIDs(ctx context.Context, userID string) ([]string, error) {
	reviews, err := s.Reviews.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(reviews))
	for _, rv := range reviews {
		ids = append(ids, rv.PerfumeID)
	}
	return ids, nil
}

// likedNotes collects the union of every note across the liked perfumes,
// preserving first-seen order.
func likedNotes(perfumes []entity.Perfume) []string {
	seen := map[string]bool{}
	out := []string{}
	for _, p := range perfumes {
		for _, n := range p.AllNotes() {
			if !seen[n] {
				seen[n] = true
				out = append(out, n)
			}
		}
	}
	return out
}
