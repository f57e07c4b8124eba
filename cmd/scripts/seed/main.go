package main

import (
	"context"
	"fmt"

	"github.com/jessevdk/go-flags"
	"github.com/robinjoseph08/golib/logger"
	"github.com/shishobooks/catalog/pkg/config"
	"github.com/shishobooks/catalog/pkg/database"
	"github.com/shishobooks/catalog/pkg/migrations"
	"github.com/shishobooks/catalog/pkg/seeder"
)

func main() {
	ctx := context.Background()
	log := logger.New()

	var opts struct {
		Authors        int `short:"a" long:"authors" default:"12" description:"Number of authors to create"`
		BooksPerAuthor int `short:"b" long:"books-per-author" default:"3" description:"Number of books to create for each author"`
	}

	if _, err := flags.Parse(&opts); err != nil {
		log.Err(err).Fatal("flags parse error")
	}

	cfg, err := config.New()
	if err != nil {
		log.Err(err).Fatal("config error")
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Err(err).Fatal("database error")
	}
	defer db.Close()

	if _, err := migrations.BringUpToDate(ctx, db); err != nil {
		log.Err(err).Fatal("migrations error")
	}

	result, err := seeder.Seed(log.WithContext(ctx), db, seeder.Options{
		Authors:        opts.Authors,
		BooksPerAuthor: opts.BooksPerAuthor,
	})
	if err != nil {
		log.Err(err).Fatal("seed error")
	}

	fmt.Printf("Seeded %d authors and %d books (run %s)\n", result.Authors, result.Books, result.RunID)
}
