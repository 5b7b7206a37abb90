package postgres

import (
	"context"
	"testing"

	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scentlog/scentlog/internal/domain"
)

func newDiscussionTestFixture(t *testing.T) (*DiscussionRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	return NewDiscussionRepository(mock), mock
}

func TestDiscussionToggleLikeOn(t *testing.T) {
	repo, mock := newDiscussionTestFixture(t)
	defer mock.Close()

	mock.ExpectExec("INSERT INTO discussion_likes").
		WithArgs("d1", "u1").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectQuery("SELECT count").
		WithArgs("d1").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(3))

	liked, count, err := repo.ToggleLike(context.Background(), "d1", "u1")
	require.NoError(t, err)
	assert.True(t, liked)
	assert.Equal(t, 3, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDiscussionToggleLikeOff(t *testing.T) {
	repo, mock := newDiscussionTestFixture(t)
	defer mock.Close()

	// Conflict on insert means the like already existed; the toggle removes it.
	mock.ExpectExec("INSERT INTO discussion_likes").
		WithArgs("d1", "u1").
		WillReturnResult(pgxmock.NewResult("INSERT", 0))
	mock.ExpectExec("DELETE FROM discussion_likes").
		WithArgs("d1", "u1").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectQuery("SELECT count").
		WithArgs("d1").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(2))

	liked, count, err := repo.ToggleLike(context.Background(), "d1", "u1")
	require.NoError(t, err)
	assert.False(t, liked)
	assert.Equal(t, 2, count)
}

func TestToggleReplyLikeMissingReply(t *testing.T) {
	repo, mock := newDiscussionTestFixture(t)
	defer mock.Close()

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("r1", "d1").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))

	_, _, err := repo.ToggleReplyLike(context.Background(), "d1", "r1", "u1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDiscussionDeleteNotFound(t *testing.T) {
	repo, mock := newDiscussionTestFixture(t)
	defer mock.Close()

	mock.ExpectExec("DELETE FROM discussions").
		WithArgs("gone").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := repo.Delete(context.Background(), "gone")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
