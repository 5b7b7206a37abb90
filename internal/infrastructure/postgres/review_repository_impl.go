package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/scentlog/scentlog/internal/domain"
	"github.com/scentlog/scentlog/internal/domain/entity"
	"github.com/scentlog/scentlog/internal/domain/repository"
)

type ReviewRepository struct {
	db DB
}

func NewReviewRepository(db DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

const reviewColumns = `id, user_id, perfume_id, rating, longevity, projection, sillage, comment, created_at, updated_at`

func scanReview(row pgx.Row, rv *entity.Review, extra ...any) error {
	dest := []any{
		&rv.ID, &rv.UserID, &rv.PerfumeID, &rv.Rating, &rv.Longevity,
		&rv.Projection, &rv.Sillage, &rv.Comment, &rv.CreatedAt, &rv.UpdatedAt,
	}
	dest = append(dest, extra...)
	return row.Scan(dest...)
}

func (r *ReviewRepository) Create(ctx context.Context, rv *entity.Review) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO reviews (user_id, perfume_id, rating, longevity, projection, sillage, comment)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`, rv.UserID, rv.PerfumeID, rv.Rating, rv.Longevity, rv.Projection, rv.Sillage, rv.Comment)
	return mapError(row.Scan(&rv.ID, &rv.CreatedAt, &rv.UpdatedAt))
}

func (r *ReviewRepository) GetByID(ctx context.Context, id string) (*entity.Review, error) {
	rv := &entity.Review{}
	row := r.db.QueryRow(ctx, `SELECT `+reviewColumns+` FROM reviews WHERE id = $1`, id)
	if err := scanReview(row, rv); err != nil {
		return nil, mapError(err)
	}
	return rv, nil
}

func (r *ReviewRepository) GetByUserAndPerfume(ctx context.Context, userID, perfumeID string) (*entity.Review, error) {
	rv := &entity.Review{}
	row := r.db.QueryRow(ctx, `
		SELECT `+reviewColumns+` FROM reviews WHERE user_id = $1 AND perfume_id = $2
	`, userID, perfumeID)
	if err := scanReview(row, rv); err != nil {
		return nil, mapError(err)
	}
	return rv, nil
}

func (r *ReviewRepository) ListByPerfume(ctx context.Context, perfumeID string, page, limit int) ([]entity.Review, int, error) {
	lim, offset := pageOffset(page, limit, 10)
	rows, err := r.db.Query(ctx, `
		SELECT r.id, r.user_id, r.perfume_id, r.rating, r.longevity, r.projection,
		       r.sillage, r.comment, r.created_at, r.updated_at,
		       u.name, u.avatar_url,
		       count(*) OVER() AS total_count
		FROM reviews r
		JOIN users u ON u.id = r.user_id
		WHERE r.perfume_id = $1
		ORDER BY r.created_at DESC
		LIMIT $2 OFFSET $3
	`, perfumeID, lim, offset)
	if err != nil {
		return nil, 0, mapError(err)
	}
	defer rows.Close()

	out := []entity.Review{}
	total := 0
	for rows.Next() {
		var rv entity.Review
		if err := scanReview(rows, &rv, &rv.ReviewerName, &rv.ReviewerAvatar, &total); err != nil {
			return nil, 0, mapError(err)
		}
		out = append(out, rv)
	}
	return out, total, mapError(rows.Err())
}

func (r *ReviewRepository) ListByUser(ctx context.Context, userID string) ([]entity.Review, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+reviewColumns+` FROM reviews WHERE user_id = $1 ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	out := []entity.Review{}
	for rows.Next() {
		var rv entity.Review
		if err := scanReview(rows, &rv); err != nil {
			return nil, mapError(err)
		}
		out = append(out, rv)
	}
	return out, mapError(rows.Err())
}

func (r *ReviewRepository) Update(ctx context.Context, rv *entity.Review) error {
	rv.UpdatedAt = time.Now()
	res, err := r.db.Exec(ctx, `
		UPDATE reviews
		SET rating = $1, longevity = $2, projection = $3, sillage = $4,
		    comment = $5, updated_at = $6
		WHERE id = $7
	`, rv.Rating, rv.Longevity, rv.Projection, rv.Sillage, rv.Comment, rv.UpdatedAt, rv.ID)
	if err != nil {
		return mapError(err)
	}
	if res.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ReviewRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.Exec(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return mapError(err)
	}
	if res.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// RecalcPerfumeStats reads one committed aggregate snapshot of the perfume's
// reviews, rounds the four means half-up to one decimal, and overwrites the
// denormalized columns. Zero affected rows means the perfume is gone, which
// is a no-op because deletion cascades to reviews first.
func (r *ReviewRepository) RecalcPerfumeStats(ctx context.Context, perfumeID string) error {
	var stats entity.PerfumeStats
	err := r.db.QueryRow(ctx, `
		SELECT count(*),
		       COALESCE(AVG(rating), 0),
		       COALESCE(AVG(longevity), 0),
		       COALESCE(AVG(projection), 0),
		       COALESCE(AVG(sillage), 0)
		FROM reviews
		WHERE perfume_id = $1
	`, perfumeID).Scan(&stats.TotalReviews, &stats.AverageRating,
		&stats.AverageLongevity, &stats.AverageProjection, &stats.AverageSillage)
	if err != nil {
		return mapError(err)
	}

	_, err = r.db.Exec(ctx, `
		UPDATE perfumes
		SET total_reviews = $1, average_rating = $2, average_longevity = $3,
		    average_projection = $4, average_sillage = $5, updated_at = now()
		WHERE id = $6
	`, stats.TotalReviews,
		entity.RoundRating(stats.AverageRating),
		entity.RoundRating(stats.AverageLongevity),
		entity.RoundRating(stats.AverageProjection),
		entity.RoundRating(stats.AverageSillage),
		perfumeID)
	return mapError(err)
}

func (r *ReviewRepository) LikedPerfumeIDs(ctx context.Context, userID string) ([]string, error) {
	rows, err := r.db.Query(ctx, `
		SELECT perfume_id FROM reviews WHERE user_id = $1 AND rating >= $2
	`, userID, entity.LikedThreshold)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()
	return collectStrings(rows)
}

func (r *ReviewRepository) AlsoLikedBy(ctx context.Context, perfumeID string, limit int) ([]entity.AlsoLikedPerfume, error) {
	rows, err := r.db.Query(ctx, `
		SELECT p.id, p.name, p.brand, p.image_url, p.category,
		       p.average_rating, p.total_reviews,
		       count(DISTINCT r.user_id) AS match_count,
		       AVG(r.rating) AS match_avg
		FROM reviews r
		JOIN perfumes p ON p.id = r.perfume_id
		WHERE r.rating >= $2
		  AND r.perfume_id <> $1
		  AND r.user_id IN (
			SELECT user_id FROM reviews WHERE perfume_id = $1 AND rating >= $2
		  )
		GROUP BY p.id, p.name, p.brand, p.image_url, p.category,
		         p.average_rating, p.total_reviews
		ORDER BY match_count DESC, match_avg DESC, p.id ASC
		LIMIT $3
	`, perfumeID, entity.LikedThreshold, limit)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	out := []entity.AlsoLikedPerfume{}
	for rows.Next() {
		var a entity.AlsoLikedPerfume
		if err := rows.Scan(&a.PerfumeID, &a.Name, &a.Brand, &a.ImageURL, &a.Category,
			&a.AverageRating, &a.TotalReviews, &a.MatchCount, &a.MatchAvgRating); err != nil {
			return nil, mapError(err)
		}
		a.MatchAvgRating = entity.RoundRating(a.MatchAvgRating)
		out = append(out, a)
	}
	return out, mapError(rows.Err())
}

func (r *ReviewRepository) TrendingSince(ctx context.Context, since time.Time, limit int) ([]entity.TrendingPerfume, error) {
	rows, err := r.db.Query(ctx, `
		SELECT p.id, p.name, p.brand, p.image_url, p.category,
		       p.average_rating, p.total_reviews,
		       count(*) AS recent_reviews,
		       AVG(r.rating) AS recent_avg
		FROM reviews r
		JOIN perfumes p ON p.id = r.perfume_id
		WHERE r.created_at >= $1
		GROUP BY p.id, p.name, p.brand, p.image_url, p.category,
		         p.average_rating, p.total_reviews
		ORDER BY recent_reviews DESC, recent_avg DESC, p.id ASC
		LIMIT $2
	`, since, limit)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	out := []entity.TrendingPerfume{}
	for rows.Next() {
		var t entity.TrendingPerfume
		if err := rows.Scan(&t.PerfumeID, &t.Name, &t.Brand, &t.ImageURL, &t.Category,
			&t.AverageRating, &t.TotalReviews, &t.RecentReviews, &t.RecentAvgRating); err != nil {
			return nil, mapError(err)
		}
		t.RecentAvgRating = entity.RoundRating(t.RecentAvgRating)
		out = append(out, t)
	}
	return out, mapError(rows.Err())
}

var _ repository.ReviewRepository = (*ReviewRepository)(nil)
