package postgres

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/scentlog/scentlog/internal/domain"
)

func TestMapError(t *testing.T) {
	assert.NoError(t, mapError(nil))
	assert.ErrorIs(t, mapError(pgx.ErrNoRows), domain.ErrNotFound)
	assert.ErrorIs(t, mapError(&pgconn.PgError{Code: pgUniqueViolation}), domain.ErrConflict)
	assert.ErrorIs(t, mapError(&pgconn.PgError{Code: pgForeignKeyViolation}), domain.ErrNotFound)

	opaque := errors.New("connection refused")
	assert.Equal(t, opaque, mapError(opaque))
}

func TestPageOffset(t *testing.T) {
	limit, offset := pageOffset(0, 0, 10)
	assert.Equal(t, 10, limit)
	assert.Equal(t, 0, offset)

	limit, offset = pageOffset(1, 20, 10)
	assert.Equal(t, 20, limit)
	assert.Equal(t, 0, offset)

	limit, offset = pageOffset(3, 20, 10)
	assert.Equal(t, 20, limit)
	assert.Equal(t, 40, offset)

	limit, offset = pageOffset(2, -5, 10)
	assert.Equal(t, 10, limit)
	assert.Equal(t, 10, offset)
}
