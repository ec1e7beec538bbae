package listings

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"listings-search/internal/common/database"
	"listings-search/internal/common/logger"
	"listings-search/internal/lexicon"
	"listings-search/internal/search"
)

func newTestService(t *testing.T) (*Service, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	log := logger.NewTestLogger(t)
	compiler := search.NewCompiler(lexicon.Default(), search.Config{})
	repo := NewRepository(database.NewPostgresFromDB(db), log, time.Second)
	cache := NewCache(database.NewRedisFromClient(client), time.Minute, log)

	return NewService(compiler, repo, cache, nil, log), mock
}

func TestService_Search_CachesSecondCall(t *testing.T) {
	svc, mock := newTestService(t)
	ctx := context.Background()

	req := &search.SearchRequest{Search: "2 bedroom flat in yaba"}
	actor := search.ActorContext{Role: search.RoleGuest}

	cq := svc.compiler.BuildListingsQuery(req, actor)

	rows := sqlmock.NewRows(listingColumns)
	rows = listingRow(rows, 1, "2 Bedroom Flat in Yaba")

	// Only one database round trip is expected across two identical calls.
	mock.ExpectQuery(regexp.QuoteMeta(cq.Query)).WillReturnRows(rows)
	mock.ExpectQuery(regexp.QuoteMeta(cq.CountQuery)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	first, err := svc.Search(ctx, req, actor)
	require.NoError(t, err)
	require.Len(t, first.Listings, 1)

	second, err := svc.Search(ctx, req, actor)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Search_ErrorsAreNotCached(t *testing.T) {
	svc, mock := newTestService(t)
	ctx := context.Background()

	req := &search.SearchRequest{}
	actor := search.ActorContext{Role: search.RoleAdmin}
	cq := svc.compiler.BuildListingsQuery(req, actor)

	mock.ExpectQuery(regexp.QuoteMeta(cq.Query)).WillReturnError(assert.AnError)

	_, err := svc.Search(ctx, req, actor)
	require.Error(t, err)

	// The failed call must not poison the cache for the retry.
	rows := sqlmock.NewRows(listingColumns)
	mock.ExpectQuery(regexp.QuoteMeta(cq.Query)).WillReturnRows(rows)
	mock.ExpectQuery(regexp.QuoteMeta(cq.CountQuery)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	result, err := svc.Search(ctx, req, actor)
	require.NoError(t, err)
	assert.Equal(t, 0, result.TotalCount)
}
