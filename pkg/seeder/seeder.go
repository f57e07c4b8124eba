// Package seeder fills the catalog with generated authors and books.
package seeder

import (
	"context"
	"fmt"
	"time"

	"github.com/creasty/defaults"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
	"github.com/shishobooks/catalog/pkg/authors"
	"github.com/shishobooks/catalog/pkg/books"
	"github.com/shishobooks/catalog/pkg/models"
	"github.com/uptrace/bun"
)

type Options struct {
	Authors        int `json:"authors" default:"12" validate:"min=1,max=1000"`
	BooksPerAuthor int `json:"books_per_author" default:"3" validate:"min=1,max=100"`
}

type Result struct {
	RunID   string `json:"run_id"`
	Authors int    `json:"authors"`
	Books   int    `json:"books"`
}

// Seed inserts opts.Authors authors with opts.BooksPerAuthor books each in a
// single transaction. Zero options take their defaults. Generated names carry
// a short run id so repeated runs can be told apart.
func Seed(ctx context.Context, db bun.IDB, opts Options) (*Result, error) {
	if err := defaults.Set(&opts); err != nil {
		return nil, errors.WithStack(err)
	}

	runID := uuid.New().String()
	log := logger.FromContext(ctx).ID(runID)
	result := &Result{RunID: runID}
	tag := runID[:8]

	err := db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		authorRepo := authors.NewRepository(tx)
		bookRepo := books.NewRepository(tx)

		for i := 0; i < opts.Authors; i++ {
			author := &models.Author{
				Name:      fmt.Sprintf("Author %d (%s)", i+1, tag),
				Bio:       fmt.Sprintf("Generated author %d of seed run %s.", i+1, tag),
				BirthDate: models.NewDate(1971+i%50, time.Month(1+i%12), 1+i%28),
			}
			id, err := authorRepo.Insert(ctx, author)
			if err != nil {
				return errors.WithStack(err)
			}
			result.Authors++

			for j := 0; j < opts.BooksPerAuthor; j++ {
				book := &models.Book{
					Title:       fmt.Sprintf("Book %d by author %d (%s)", j+1, i+1, tag),
					Description: fmt.Sprintf("Generated book %d of author %d.", j+1, i+1),
					PublishDate: models.NewDate(1931+(i*opts.BooksPerAuthor+j)%90, time.Month(1+j%12), 1+j%28),
					AuthorID:    &id,
				}
				if _, err := bookRepo.Insert(ctx, book); err != nil {
					return errors.WithStack(err)
				}
				result.Books++
			}
		}
		return nil
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	log.Info("catalog seeded", logger.Data{"authors": result.Authors, "books": result.Books})
	return result, nil
}
