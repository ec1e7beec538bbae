package listings

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"listings-search/internal/common/database"
	apperrors "listings-search/internal/common/errors"
	"listings-search/internal/common/logger"
	"listings-search/internal/search"
)

func newMockRepository(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := NewRepository(database.NewPostgresFromDB(db), logger.NewTestLogger(t), time.Second)
	return repo, mock
}

func testCompiledQuery() search.CompiledQuery {
	return search.CompiledQuery{
		Query:       `SELECT l.*, 0 AS effective_priority FROM listings l WHERE l.status = $1 ORDER BY l.created_at DESC LIMIT $2 OFFSET $3`,
		Values:      []interface{}{"available", 10, 0},
		CountQuery:  `SELECT COUNT(*) FROM listings l WHERE l.status = $1`,
		CountValues: []interface{}{"available"},
		Page:        1,
		Limit:       10,
	}
}

func listingRow(rows *sqlmock.Rows, id int64, title string) *sqlmock.Rows {
	return rows.AddRow(
		id, title, "well lit and spacious", "available", "Rent",
		"Apartment", 2_500_000.0, "yearly", "Lekki", "Lagos",
		2, 2, 1, 1, nil,
		"{pool,parking}", false, nil, 7,
		nil, 120, time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC), 3,
	)
}

func TestRepository_Search(t *testing.T) {
	repo, mock := newMockRepository(t)
	cq := testCompiledQuery()

	rows := sqlmock.NewRows(listingColumns)
	rows = listingRow(rows, 1, "2 Bedroom Apartment in Lekki")
	rows = listingRow(rows, 2, "Self-Contain in Yaba")

	mock.ExpectQuery(regexp.QuoteMeta(cq.Query)).
		WithArgs("available", 10, 0).
		WillReturnRows(rows)
	mock.ExpectQuery(regexp.QuoteMeta(cq.CountQuery)).
		WithArgs("available").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(42))

	result, err := repo.Search(context.Background(), cq)
	require.NoError(t, err)
	require.Len(t, result.Listings, 2)

	first := result.Listings[0]
	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, "2 Bedroom Apartment in Lekki", first.Title)
	assert.Equal(t, "Apartment", first.PropertyType)
	assert.Equal(t, "yearly", first.RentalPeriod)
	require.NotNil(t, first.Bedrooms)
	assert.Equal(t, 2, *first.Bedrooms)
	assert.Nil(t, first.LandSize)
	assert.Equal(t, []string{"pool", "parking"}, []string(first.Amenities))
	require.NotNil(t, first.AgentID)
	assert.Equal(t, int64(7), *first.AgentID)
	assert.Nil(t, first.AgencyID)
	assert.Equal(t, 3, first.EffectivePriority)

	assert.Equal(t, 42, result.TotalCount)
	assert.Equal(t, 1, result.Page)
	assert.Equal(t, 10, result.Limit)
	assert.Equal(t, 5, result.TotalPages)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Search_EmptyResult(t *testing.T) {
	repo, mock := newMockRepository(t)
	cq := testCompiledQuery()

	mock.ExpectQuery(regexp.QuoteMeta(cq.Query)).
		WillReturnRows(sqlmock.NewRows(listingColumns))
	mock.ExpectQuery(regexp.QuoteMeta(cq.CountQuery)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	result, err := repo.Search(context.Background(), cq)
	require.NoError(t, err)
	assert.Empty(t, result.Listings)
	assert.NotNil(t, result.Listings, "empty result must marshal as [], not null")
	assert.Equal(t, 0, result.TotalCount)
	assert.Equal(t, 0, result.TotalPages)
}

func TestRepository_Search_QueryError(t *testing.T) {
	repo, mock := newMockRepository(t)
	cq := testCompiledQuery()

	mock.ExpectQuery(regexp.QuoteMeta(cq.Query)).
		WillReturnError(errors.New("connection reset"))

	_, err := repo.Search(context.Background(), cq)
	require.Error(t, err)

	var stdErr *apperrors.StandardError
	require.ErrorAs(t, err, &stdErr)
	assert.Equal(t, apperrors.ErrCodeQueryExecutionFailed, stdErr.Code)
}

func TestRepository_Search_CountError(t *testing.T) {
	repo, mock := newMockRepository(t)
	cq := testCompiledQuery()

	mock.ExpectQuery(regexp.QuoteMeta(cq.Query)).
		WillReturnRows(sqlmock.NewRows(listingColumns))
	mock.ExpectQuery(regexp.QuoteMeta(cq.CountQuery)).
		WillReturnError(errors.New("relation vanished"))

	_, err := repo.Search(context.Background(), cq)
	require.Error(t, err)

	var stdErr *apperrors.StandardError
	require.ErrorAs(t, err, &stdErr)
	assert.Equal(t, apperrors.ErrCodeQueryExecutionFailed, stdErr.Code)
}
