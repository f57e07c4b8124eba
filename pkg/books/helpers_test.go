package books

import (
	"context"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shishobooks/catalog/pkg/authors"
	"github.com/shishobooks/catalog/pkg/binder"
	"github.com/shishobooks/catalog/pkg/cache"
	"github.com/shishobooks/catalog/pkg/config"
	"github.com/shishobooks/catalog/pkg/database"
	"github.com/shishobooks/catalog/pkg/errcodes"
	"github.com/shishobooks/catalog/pkg/migrations"
	"github.com/shishobooks/catalog/pkg/models"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
)

type testContext struct {
	db      *bun.DB
	cache   cache.Cache
	repo    *countingRepository
	service *Service
}

func newTestContext(t *testing.T) *testContext {
	t.Helper()

	db, err := database.New(config.NewForTest())
	require.NoError(t, err)
	t.Cleanup(func() {
		db.Close()
	})

	_, err = migrations.BringUpToDate(context.Background(), db)
	require.NoError(t, err)

	c, err := cache.NewMemory(cache.MemoryConfig{
		Capacity:           1000,
		NumShards:          4,
		TTL:                time.Hour,
		EvictionPercentage: 10,
	})
	require.NoError(t, err)

	repo := &countingRepository{Repository: NewRepository(db)}
	return &testContext{
		db:      db,
		cache:   c,
		repo:    repo,
		service: NewService(repo, authors.NewRepository(db), c, time.Hour),
	}
}

func (tc *testContext) insertAuthor(t *testing.T, name string) *models.Author {
	t.Helper()

	author := &models.Author{Name: name, Bio: name + " bio", BirthDate: models.NewDate(1980, time.March, 4)}
	id, err := authors.NewRepository(tc.db).Insert(context.Background(), author)
	require.NoError(t, err)
	require.NotZero(t, id)
	return author
}

func (tc *testContext) createBook(t *testing.T, title string, authorID int) *models.Book {
	t.Helper()

	book, err := tc.service.CreateBook(context.Background(), &models.Book{
		Title:       title,
		Description: title + " description",
		PublishDate: models.NewDate(2001, time.June, 9),
		Author:      models.AuthorRef(authorID),
	})
	require.NoError(t, err)
	return book
}

func (tc *testContext) countBooks(t *testing.T) int {
	t.Helper()

	n, err := tc.db.NewSelect().Model((*models.Book)(nil)).Count(context.Background())
	require.NoError(t, err)
	return n
}

// countingRepository counts the reads that reach the database.
type countingRepository struct {
	Repository
	listPage atomic.Int32
	joined   atomic.Int32
}

func (r *countingRepository) ListPage(ctx context.Context, limit, offset int) ([]Row, error) {
	r.listPage.Add(1)
	return r.Repository.ListPage(ctx, limit, offset)
}

func (r *countingRepository) RetrieveWithAuthor(ctx context.Context, id int) (*RowWithAuthor, error) {
	r.joined.Add(1)
	return r.Repository.RetrieveWithAuthor(ctx, id)
}

func newEchoContext(t *testing.T, method, path, payload string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	b, err := binder.New()
	require.NoError(t, err)
	e.Binder = b
	e.HTTPErrorHandler = errcodes.NewHandler().Handle

	req := httptest.NewRequest(method, path, strings.NewReader(payload))
	if payload != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rr := httptest.NewRecorder()
	return e.NewContext(req, rr), rr
}
