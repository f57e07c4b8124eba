package authors

import (
	"context"
	"database/sql"
	"time"

	"github.com/pkg/errors"
	"github.com/shishobooks/catalog/pkg/models"
	"github.com/uptrace/bun"
)

// Row is one author of a listing page. TotalRecords is the number of authors
// across every page.
type Row struct {
	TotalRecords int         `bun:"total_records"`
	ID           int         `bun:"id"`
	Name         string      `bun:"name"`
	Bio          string      `bun:"bio"`
	BirthDate    models.Date `bun:"birth_date"`
}

// Repository is the persistence port of the author service.
//
// Retrieve returns nil without an error when the author does not exist.
// Insert returns the new id, or 0 when no row was written. Save and Delete
// return the number of rows they affected.
type Repository interface {
	ListPage(ctx context.Context, limit, offset int) ([]Row, error)
	Retrieve(ctx context.Context, id int) (*models.Author, error)
	ListBooks(ctx context.Context, id int) ([]*models.Book, error)
	Insert(ctx context.Context, author *models.Author) (int, error)
	Save(ctx context.Context, author *models.Author) (int64, error)
	Delete(ctx context.Context, id int) (int64, error)
}

type repository struct {
	db bun.IDB
}

func NewRepository(db bun.IDB) Repository {
	return &repository{db}
}

func (r *repository) ListPage(ctx context.Context, limit, offset int) ([]Row, error) {
	rows := []Row{}
	err := r.db.NewSelect().
		TableExpr("authors AS a").
		ColumnExpr("COUNT(*) OVER() AS total_records").
		ColumnExpr("a.id, a.name, a.bio, a.birth_date").
		OrderExpr("a.id DESC").
		Limit(limit).
		Offset(offset).
		Scan(ctx, &rows)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return rows, nil
}

func (r *repository) Retrieve(ctx context.Context, id int) (*models.Author, error) {
	author := &models.Author{}
	err := r.db.NewSelect().
		Model(author).
		Column("id", "created_at", "updated_at", "name", "bio", "birth_date").
		Where("a.id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.WithStack(err)
	}
	return author, nil
}

func (r *repository) ListBooks(ctx context.Context, id int) ([]*models.Book, error) {
	books := []*models.Book{}
	err := r.db.NewSelect().
		Model(&books).
		Column("id", "title", "description", "publish_date", "author_id").
		Join("JOIN authors AS a ON a.id = b.author_id").
		Where("a.id = ?", id).
		Order("b.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return books, nil
}

func (r *repository) Insert(ctx context.Context, author *models.Author) (int, error) {
	now := time.Now()
	author.CreatedAt = now
	author.UpdatedAt = now

	_, err := r.db.NewInsert().
		Model(author).
		Returning("id").
		Exec(ctx)
	if err != nil {
		return 0, errors.WithStack(err)
	}
	return author.ID, nil
}

func (r *repository) Save(ctx context.Context, author *models.Author) (int64, error) {
	author.UpdatedAt = time.Now()

	res, err := r.db.NewUpdate().
		Model(author).
		Column("name", "bio", "birth_date", "updated_at").
		WherePK().
		Exec(ctx)
	if err != nil {
		return 0, errors.WithStack(err)
	}
	n, err := res.RowsAffected()
	return n, errors.WithStack(err)
}

func (r *repository) Delete(ctx context.Context, id int) (int64, error) {
	res, err := r.db.NewDelete().
		Model((*models.Author)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return 0, errors.WithStack(err)
	}
	n, err := res.RowsAffected()
	return n, errors.WithStack(err)
}
