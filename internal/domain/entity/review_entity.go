package entity

import "time"

// Rating bounds and defaults shared by the overall rating and the three
// sub-ratings (longevity, projection, sillage).
const (
	RatingMin        = 1
	RatingMax        = 5
	SubRatingDefault = 3

	CommentMaxLen = 1000

	// LikedThreshold is the overall rating at or above which a review counts
	// as "liked" for collaborative and personalized recommendations.
	LikedThreshold = 4
)

// Review is one user's rating of one perfume. At most one review exists per
// (user, perfume) pair; the store enforces this with a composite unique key.
type Review struct {
	ID         string
	UserID     string
	PerfumeID  string
	Rating     int
	Longevity  int
	Projection int
	Sillage    int
	Comment    string
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// Joined reviewer identity for list endpoints; not persisted on the review.
	ReviewerName   string
	ReviewerAvatar string
}

// ValidRating reports whether r is within the 1..5 scale.
func ValidRating(r int) bool {
	return r >= RatingMin && r <= RatingMax
}

// PerfumeStats is the aggregate the rating recompute derives from a perfume's
// live review set and writes back onto the perfume row.
type PerfumeStats struct {
	TotalReviews      int
	AverageRating     float64
	AverageLongevity  float64
	AverageProjection float64
	AverageSillage    float64
}

// TrendingPerfume joins a perfume's identity and lifetime statistics with its
// review activity inside a trending window.
type TrendingPerfume struct {
	PerfumeID     string
	Name          string
	Brand         string
	ImageURL      string
	Category      Category
	AverageRating float64
	TotalReviews  int

	RecentReviews   int
	RecentAvgRating float64
}

// AlsoLikedPerfume is a collaborative-overlap result: a perfume liked by users
// who also liked the source perfume, with the overlap size and its mean rating.
type AlsoLikedPerfume struct {
	PerfumeID     string
	Name          string
	Brand         string
	ImageURL      string
	Category      Category
	AverageRating float64
	TotalReviews  int

	MatchCount     int
	MatchAvgRating float64
}
