package seeder

import (
	"context"
	"testing"

	"github.com/shishobooks/catalog/pkg/config"
	"github.com/shishobooks/catalog/pkg/database"
	"github.com/shishobooks/catalog/pkg/migrations"
	"github.com/shishobooks/catalog/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
)

func setupTestDB(t *testing.T) *bun.DB {
	t.Helper()

	db, err := database.New(config.NewForTest())
	require.NoError(t, err)
	t.Cleanup(func() {
		db.Close()
	})

	_, err = migrations.BringUpToDate(context.Background(), db)
	require.NoError(t, err)
	return db
}

func TestSeed(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("defaults", func(tt *testing.T) {
		db := setupTestDB(tt)

		result, err := Seed(ctx, db, Options{})
		require.NoError(tt, err)
		assert.Equal(tt, 12, result.Authors)
		assert.Equal(tt, 36, result.Books)
		assert.NotEmpty(tt, result.RunID)

		n, err := db.NewSelect().Model((*models.Author)(nil)).Count(ctx)
		require.NoError(tt, err)
		assert.Equal(tt, 12, n)

		n, err = db.NewSelect().Model((*models.Book)(nil)).Where("author_id IS NOT NULL").Count(ctx)
		require.NoError(tt, err)
		assert.Equal(tt, 36, n)
	})

	t.Run("custom counts", func(tt *testing.T) {
		db := setupTestDB(tt)

		result, err := Seed(ctx, db, Options{Authors: 2, BooksPerAuthor: 5})
		require.NoError(tt, err)
		assert.Equal(tt, 2, result.Authors)
		assert.Equal(tt, 10, result.Books)
	})

	t.Run("generated dates pass the payload rules", func(tt *testing.T) {
		db := setupTestDB(tt)

		_, err := Seed(ctx, db, Options{Authors: 60, BooksPerAuthor: 2})
		require.NoError(tt, err)

		var authorsList []*models.Author
		require.NoError(tt, db.NewSelect().Model(&authorsList).Scan(ctx))
		for _, a := range authorsList {
			assert.True(tt, a.BirthDate.After(models.NewDate(1970, 1, 1).Time), a.BirthDate.String())
		}

		var booksList []*models.Book
		require.NoError(tt, db.NewSelect().Model(&booksList).Scan(ctx))
		for _, b := range booksList {
			assert.True(tt, b.PublishDate.After(models.NewDate(1930, 1, 1).Time), b.PublishDate.String())
		}
	})
}
