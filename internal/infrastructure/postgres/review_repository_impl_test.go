package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scentlog/scentlog/internal/domain"
	"github.com/scentlog/scentlog/internal/domain/entity"
)

func newReviewTestFixture(t *testing.T) (*ReviewRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	return NewReviewRepository(mock), mock
}

func TestReviewRepositoryCreate(t *testing.T) {
	repo, mock := newReviewTestFixture(t)
	defer mock.Close()

	now := time.Now()
	mock.ExpectQuery("INSERT INTO reviews").
		WithArgs("u1", "p1", 5, 4, 3, 3, "lovely").
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).
			AddRow("r1", now, now))

	rv := &entity.Review{UserID: "u1", PerfumeID: "p1", Rating: 5, Longevity: 4, Projection: 3, Sillage: 3, Comment: "lovely"}
	require.NoError(t, repo.Create(context.Background(), rv))
	assert.Equal(t, "r1", rv.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewRepositoryCreateDuplicate(t *testing.T) {
	repo, mock := newReviewTestFixture(t)
	defer mock.Close()

	mock.ExpectQuery("INSERT INTO reviews").
		WithArgs("u1", "p1", 5, 3, 3, 3, "").
		WillReturnError(&pgconn.PgError{Code: pgUniqueViolation})

	rv := &entity.Review{UserID: "u1", PerfumeID: "p1", Rating: 5, Longevity: 3, Projection: 3, Sillage: 3}
	err := repo.Create(context.Background(), rv)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewRepositoryGetByIDNotFound(t *testing.T) {
	repo, mock := newReviewTestFixture(t)
	defer mock.Close()

	mock.ExpectQuery("SELECT .+ FROM reviews WHERE id").
		WithArgs("missing").
		WillReturnRows(pgxmock.NewRows([]string{"id"}))

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReviewRepositoryUpdateNotFound(t *testing.T) {
	repo, mock := newReviewTestFixture(t)
	defer mock.Close()

	mock.ExpectExec("UPDATE reviews").
		WithArgs(4, 3, 3, 3, "", pgxmock.AnyArg(), "gone").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	rv := &entity.Review{ID: "gone", Rating: 4, Longevity: 3, Projection: 3, Sillage: 3}
	err := repo.Update(context.Background(), rv)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReviewRepositoryDelete(t *testing.T) {
	repo, mock := newReviewTestFixture(t)
	defer mock.Close()

	mock.ExpectExec("DELETE FROM reviews WHERE id").
		WithArgs("r1").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	require.NoError(t, repo.Delete(context.Background(), "r1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecalcPerfumeStatsRoundsMeans(t *testing.T) {
	repo, mock := newReviewTestFixture(t)
	defer mock.Close()

	// Ratings 5, 4, 3: mean 4.0. Sub-rating means exercise half-up rounding.
	mock.ExpectQuery("SELECT count").
		WithArgs("p1").
		WillReturnRows(pgxmock.NewRows([]string{"count", "avg_rating", "avg_longevity", "avg_projection", "avg_sillage"}).
			AddRow(3, 4.0, 3.333333, 4.666666, 4.25))
	mock.ExpectExec("UPDATE perfumes").
		WithArgs(3, 4.0, 3.3, 4.7, 4.3, "p1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	require.NoError(t, repo.RecalcPerfumeStats(context.Background(), "p1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecalcPerfumeStatsEmptySetWritesZeros(t *testing.T) {
	repo, mock := newReviewTestFixture(t)
	defer mock.Close()

	mock.ExpectQuery("SELECT count").
		WithArgs("p1").
		WillReturnRows(pgxmock.NewRows([]string{"count", "avg_rating", "avg_longevity", "avg_projection", "avg_sillage"}).
			AddRow(0, 0.0, 0.0, 0.0, 0.0))
	mock.ExpectExec("UPDATE perfumes").
		WithArgs(0, 0.0, 0.0, 0.0, 0.0, "p1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	require.NoError(t, repo.RecalcPerfumeStats(context.Background(), "p1"))
}

func TestRecalcPerfumeStatsMissingPerfumeIsNoOp(t *testing.T) {
	repo, mock := newReviewTestFixture(t)
	defer mock.Close()

	mock.ExpectQuery("SELECT count").
		WithArgs("gone").
		WillReturnRows(pgxmock.NewRows([]string{"count", "avg_rating", "avg_longevity", "avg_projection", "avg_sillage"}).
			AddRow(0, 0.0, 0.0, 0.0, 0.0))
	mock.ExpectExec("UPDATE perfumes").
		WithArgs(0, 0.0, 0.0, 0.0, 0.0, "gone").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	require.NoError(t, repo.RecalcPerfumeStats(context.Background(), "gone"))
}

func TestLikedPerfumeIDsFiltersByThreshold(t *testing.T) {
	repo, mock := newReviewTestFixture(t)
	defer mock.Close()

	mock.ExpectQuery("SELECT perfume_id FROM reviews").
		WithArgs("u1", entity.LikedThreshold).
		WillReturnRows(pgxmock.NewRows([]string{"perfume_id"}).AddRow("p1").AddRow("p2"))

	ids, err := repo.LikedPerfumeIDs(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"p1", "p2"}, ids)
}

func TestAlsoLikedByRoundsMatchAverage(t *testing.T) {
	repo, mock := newReviewTestFixture(t)
	defer mock.Close()

	mock.ExpectQuery("SELECT p.id, p.name, p.brand").
		WithArgs("p1", entity.LikedThreshold, 10).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "name", "brand", "image_url", "category",
			"average_rating", "total_reviews", "match_count", "match_avg",
		}).AddRow("p2", "Aventus", "Creed", "", entity.CategoryMen, 4.5, 20, 3, 4.666666))

	out, err := repo.AlsoLikedBy(context.Background(), "p1", 10)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, 3, out[0].MatchCount)
	assert.InDelta(t, 4.7, out[0].MatchAvgRating, 1e-9)
}

func TestTrendingSinceOrdersByWindow(t *testing.T) {
	repo, mock := newReviewTestFixture(t)
	defer mock.Close()

	since := time.Now().AddDate(0, 0, -7)
	mock.ExpectQuery("SELECT p.id, p.name, p.brand").
		WithArgs(since, 10).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "name", "brand", "image_url", "category",
			"average_rating", "total_reviews", "recent_reviews", "recent_avg",
		}).
			AddRow("p1", "Jazz Club", "Maison Margiela", "", entity.CategoryUnisex, 4.2, 40, 9, 4.333333).
			AddRow("p2", "Aventus", "Creed", "", entity.CategoryMen, 4.5, 200, 5, 4.8))

	out, err := repo.TrendingSince(context.Background(), since, 10)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "p1", out[0].PerfumeID)
	assert.Equal(t, 9, out[0].RecentReviews)
	assert.InDelta(t, 4.3, out[0].RecentAvgRating, 1e-9)
}
