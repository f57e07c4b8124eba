package authors

import (
	"context"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
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

func setupTestDB(t *testing.T) *bun.DB {
	t.Helper()

	db, err := database.New(config.NewForTest())
	require.NoError(t, err)

	_, err = migrations.BringUpToDate(context.Background(), db)
	require.NoError(t, err)

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

func newTestCache(t *testing.T) cache.Cache {
	t.Helper()

	c, err := cache.NewMemory(cache.MemoryConfig{
		Capacity:           1000,
		NumShards:          4,
		TTL:                time.Hour,
		EvictionPercentage: 10,
	})
	require.NoError(t, err)
	return c
}

// countingRepository counts the reads that reach the database.
type countingRepository struct {
	Repository
	listPage  atomic.Int32
	retrieve  atomic.Int32
	listBooks atomic.Int32
}

func (r *countingRepository) ListPage(ctx context.Context, limit, offset int) ([]Row, error) {
	r.listPage.Add(1)
	return r.Repository.ListPage(ctx, limit, offset)
}

func (r *countingRepository) Retrieve(ctx context.Context, id int) (*models.Author, error) {
	r.retrieve.Add(1)
	return r.Repository.Retrieve(ctx, id)
}

func (r *countingRepository) ListBooks(ctx context.Context, id int) ([]*models.Book, error) {
	r.listBooks.Add(1)
	return r.Repository.ListBooks(ctx, id)
}

// failingInvalidation serves reads from the wrapped store but cannot drop
// tags.
type failingInvalidation struct {
	cache.Cache
}

func (failingInvalidation) InvalidateTag(context.Context, string) error {
	return errors.New("cache unavailable")
}

func insertAuthor(t *testing.T, db bun.IDB, name string) *models.Author {
	t.Helper()

	author := &models.Author{Name: name, Bio: name + " bio", BirthDate: models.NewDate(1980, time.March, 4)}
	id, err := NewRepository(db).Insert(context.Background(), author)
	require.NoError(t, err)
	require.NotZero(t, id)
	return author
}

func insertBook(t *testing.T, db bun.IDB, title string, authorID *int) *models.Book {
	t.Helper()

	now := time.Now()
	book := &models.Book{
		CreatedAt:   now,
		UpdatedAt:   now,
		Title:       title,
		Description: title + " description",
		PublishDate: models.NewDate(2001, time.June, 9),
		AuthorID:    authorID,
	}
	_, err := db.NewInsert().Model(book).Returning("id").Exec(context.Background())
	require.NoError(t, err)
	return book
}

func newTestContext(t *testing.T, method, path, payload string) (echo.Context, *httptest.ResponseRecorder) {
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
