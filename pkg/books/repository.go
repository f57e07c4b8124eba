package books

import (
	"context"
	"database/sql"
	"time"

	"github.com/pkg/errors"
	"github.com/shishobooks/catalog/pkg/models"
	"github.com/uptrace/bun"
)

// Row is one book of a listing page. TotalRecords is the number of books
// across every page.
type Row struct {
	TotalRecords int         `bun:"total_records"`
	ID           int         `bun:"id"`
	Title        string      `bun:"title"`
	Description  string      `bun:"description"`
	PublishDate  models.Date `bun:"publish_date"`
	AuthorID     *int        `bun:"author_id"`
}

// RowWithAuthor is a book joined with its author. The author columns are all
// null when the book has no author or its author no longer exists.
type RowWithAuthor struct {
	ID              int         `bun:"id"`
	Title           string      `bun:"title"`
	Description     string      `bun:"description"`
	PublishDate     models.Date `bun:"publish_date"`
	AuthorID        *int        `bun:"author_id"`
	AuthorName      *string     `bun:"author_name"`
	AuthorBio       *string     `bun:"author_bio"`
	AuthorBirthDate models.Date `bun:"author_birth_date"`
}

// Repository is the persistence port of the book service. It follows the
// same conventions as the author repository: absent rows are nil, Insert
// returns 0 when nothing was written, and Save and Delete return the number
// of affected rows.
type Repository interface {
	ListPage(ctx context.Context, limit, offset int) ([]Row, error)
	Retrieve(ctx context.Context, id int) (*models.Book, error)
	RetrieveWithAuthor(ctx context.Context, id int) (*RowWithAuthor, error)
	Insert(ctx context.Context, book *models.Book) (int, error)
	Save(ctx context.Context, book *models.Book) (int64, error)
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
		TableExpr("books AS b").
		ColumnExpr("COUNT(*) OVER() AS total_records").
		ColumnExpr("b.id, b.title, b.description, b.publish_date, b.author_id").
		OrderExpr("b.id DESC").
		Limit(limit).
		Offset(offset).
		Scan(ctx, &rows)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return rows, nil
}

func (r *repository) Retrieve(ctx context.Context, id int) (*models.Book, error) {
	book := &models.Book{}
	err := r.db.NewSelect().
		Model(book).
		Column("id", "created_at", "updated_at", "title", "description", "publish_date", "author_id").
		Where("b.id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.WithStack(err)
	}
	return book, nil
}

func (r *repository) RetrieveWithAuthor(ctx context.Context, id int) (*RowWithAuthor, error) {
	row := &RowWithAuthor{}
	err := r.db.NewSelect().
		TableExpr("books AS b").
		ColumnExpr("b.id, b.title, b.description, b.publish_date").
		// The author id comes from the joined row so a dangling reference
		// reads as no author.
		ColumnExpr("a.id AS author_id, a.name AS author_name, a.bio AS author_bio, a.birth_date AS author_birth_date").
		Join("LEFT JOIN authors AS a ON a.id = b.author_id").
		Where("b.id = ?", id).
		Limit(1).
		Scan(ctx, row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.WithStack(err)
	}
	return row, nil
}

func (r *repository) Insert(ctx context.Context, book *models.Book) (int, error) {
	now := time.Now()
	book.CreatedAt = now
	book.UpdatedAt = now

	_, err := r.db.NewInsert().
		Model(book).
		Returning("id").
		Exec(ctx)
	if err != nil {
		return 0, errors.WithStack(err)
	}
	return book.ID, nil
}

func (r *repository) Save(ctx context.Context, book *models.Book) (int64, error) {
	book.UpdatedAt = time.Now()

	res, err := r.db.NewUpdate().
		Model(book).
		Column("title", "description", "publish_date", "author_id", "updated_at").
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
		Model((*models.Book)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return 0, errors.WithStack(err)
	}
	n, err := res.RowsAffected()
	return n, errors.WithStack(err)
}
