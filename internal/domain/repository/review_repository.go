package repository

import (
	"context"
	"time"

	"github.com/scentlog/scentlog/internal/domain/entity"
)

// ReviewRepository defines the persistence contract for reviews, the rating
// recompute, and the review-side aggregate queries (collaborative overlap and
// trending windows).
type ReviewRepository interface {
	// Create inserts the review. A second review for the same (user, perfume)
	// pair fails with domain.ErrConflict; the original is unaffected.
	Create(ctx context.Context, rv *entity.Review) error
	GetByID(ctx context.Context, id string) (*entity.Review, error)
	GetByUserAndPerfume(ctx context.Context, userID, perfumeID string) (*entity.Review, error)
	ListByPerfume(ctx context.Context, perfumeID string, page, limit int) ([]entity.Review, int, error)
	ListByUser(ctx context.Context, userID string) ([]entity.Review, error)
	Update(ctx context.Context, rv *entity.Review) error
	Delete(ctx context.Context, id string) error

	// RecalcPerfumeStats scans the perfume's committed review set, derives
	// count and the four rating means rounded half-up to one decimal, and
	// overwrites the perfume row. An empty set writes zeros. A perfume that no
	// longer exists is a no-op, not an error: perfume deletion cascades to its
	// reviews first, making the recompute moot.
	RecalcPerfumeStats(ctx context.Context, perfumeID string) error

	// LikedPerfumeIDs returns ids of perfumes the user rated at or above
	// entity.LikedThreshold.
	LikedPerfumeIDs(ctx context.Context, userID string) ([]string, error)

	// AlsoLikedBy groups liked reviews of other perfumes by the users who
	// liked perfumeID, ordered by distinct-liker count then mean rating
	// descending. An unliked perfume yields an empty slice.
	AlsoLikedBy(ctx context.Context, perfumeID string, limit int) ([]entity.AlsoLikedPerfume, error)

	// TrendingSince groups reviews created at or after since by perfume and
	// joins perfume identity and lifetime statistics, ordered by window count
	// then window mean descending.
	TrendingSince(ctx context.Context, since time.Time, limit int) ([]entity.TrendingPerfume, error)
}
