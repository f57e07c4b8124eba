package testutils

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/shishobooks/catalog/pkg/authors"
	"github.com/shishobooks/catalog/pkg/books"
	"github.com/shishobooks/catalog/pkg/cache"
	"github.com/shishobooks/catalog/pkg/models"
	"github.com/shishobooks/catalog/pkg/seeder"
	"github.com/uptrace/bun"
)

type handler struct {
	db    *bun.DB
	cache cache.Cache
}

// seed generates authors and books.
// POST /test/seed.
func (h *handler) seed(c echo.Context) error {
	ctx := c.Request().Context()

	// An empty body seeds with the defaults.
	c.Set("disallow_empty_body", false)
	opts := seeder.Options{}
	if err := c.Bind(&opts); err != nil {
		return errors.WithStack(err)
	}

	result, err := seeder.Seed(ctx, h.db, opts)
	if err != nil {
		return errors.Wrap(err, "failed to seed catalog")
	}

	cache.Invalidate(ctx, h.cache, authors.CacheTag, books.CacheTag)

	return errors.WithStack(c.JSON(http.StatusCreated, result))
}

// deleteCatalogResponse is the response body for deleting all catalog data.
type deleteCatalogResponse struct {
	Authors int64 `json:"authors"`
	Books   int64 `json:"books"`
}

// deleteCatalog deletes every book and author and restarts their ids.
// DELETE /test/catalog.
func (h *handler) deleteCatalog(c echo.Context) error {
	ctx := c.Request().Context()
	resp := deleteCatalogResponse{}

	err := h.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		res, err := tx.NewDelete().Model((*models.Book)(nil)).Where("1=1").Exec(ctx)
		if err != nil {
			return errors.Wrap(err, "failed to delete books")
		}
		resp.Books, _ = res.RowsAffected()

		res, err = tx.NewDelete().Model((*models.Author)(nil)).Where("1=1").Exec(ctx)
		if err != nil {
			return errors.Wrap(err, "failed to delete authors")
		}
		resp.Authors, _ = res.RowsAffected()

		_, err = tx.ExecContext(ctx, `DELETE FROM sqlite_sequence WHERE name IN ('authors', 'books')`)
		return errors.Wrap(err, "failed to reset ids")
	})
	if err != nil {
		return errors.WithStack(err)
	}

	cache.Invalidate(ctx, h.cache, authors.CacheTag, books.CacheTag)

	return errors.WithStack(c.JSON(http.StatusOK, resp))
}
