package repository

import (
	"context"

	"github.com/scentlog/scentlog/internal/domain/entity"
)

// PerfumeFilter holds the catalog listing criteria. Nil pointers mean "not
// filtered". Sort accepts a column name optionally prefixed with '-' for
// descending, e.g. "-created_at".
type PerfumeFilter struct {
	Search      string
	Brand       string
	Category    string
	Country     string
	ReleaseYear *int
	MinPrice    *float64
	MaxPrice    *float64
	MinRating   *float64
	Notes       []string

	Sort  string
	Page  int
	Limit int
}

// PerfumeRepository defines the persistence contract for the catalog,
// including the aggregate queries behind similarity and popularity ranking.
type PerfumeRepository interface {
	Create(ctx context.Context, p *entity.Perfume) error
	GetByID(ctx context.Context, id string) (*entity.Perfume, error)
	GetByIDs(ctx context.Context, ids []string) ([]entity.Perfume, error)
	List(ctx context.Context, f PerfumeFilter) ([]entity.Perfume, int, error)
	Update(ctx context.Context, p *entity.Perfume) error

	// Delete removes the perfume; the store cascades the delete to its
	// reviews so no recompute is needed afterwards.
	Delete(ctx context.Context, id string) error

	IncrementBuyClicks(ctx context.Context, id string) (*entity.Perfume, error)
	DistinctBrands(ctx context.Context) ([]string, error)
	DistinctNotes(ctx context.Context) ([]string, error)

	// SimilarByNotes returns perfumes other than excludeID sharing at least
	// one of the given notes, ordered by average rating descending with a
	// deterministic creation-order tie-break.
	SimilarByNotes(ctx context.Context, notes []string, excludeID string, limit int) ([]entity.Perfume, error)

	// MatchingNotes returns perfumes sharing at least one note, excluding the
	// given perfume ids, ordered by average rating then total reviews
	// descending. Used for personalized recommendations.
	MatchingNotes(ctx context.Context, notes []string, excludeIDs []string, limit int) ([]entity.Perfume, error)

	// RankByRating returns perfumes ordered by average rating then total
	// reviews descending, keeping only those with at least minReviews reviews
	// (0 disables the floor).
	RankByRating(ctx context.Context, limit, minReviews int) ([]entity.Perfume, error)
}
