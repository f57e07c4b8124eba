package books

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/shishobooks/catalog/pkg/authors"
	"github.com/shishobooks/catalog/pkg/cache"
	"github.com/shishobooks/catalog/pkg/errcodes"
	"github.com/shishobooks/catalog/pkg/models"
	"github.com/shishobooks/catalog/pkg/pagination"
)

// CacheTag groups every cached book read.
const CacheTag = "books"

const resource = "Book"

// AuthorLookup resolves the author a book refers to. Retrieve returns nil
// when the author does not exist.
type AuthorLookup interface {
	Retrieve(ctx context.Context, id int) (*models.Author, error)
}

type Page struct {
	Books    []*models.Book      `json:"books"`
	Metadata pagination.Metadata `json:"metadata"`
}

type Service struct {
	repo    Repository
	authors AuthorLookup
	cache   cache.Cache
	ttl     time.Duration
}

func NewService(repo Repository, authors AuthorLookup, c cache.Cache, ttl time.Duration) *Service {
	return &Service{repo, authors, c, ttl}
}

func (svc *Service) ListBooks(ctx context.Context, criteria pagination.Criteria) (*Page, error) {
	key := cache.Key(CacheTag, criteria.Page, criteria.PageSize)

	return cache.Remember(ctx, svc.cache, CacheTag, key, svc.ttl, func(ctx context.Context) (*Page, error) {
		rows, err := svc.repo.ListPage(ctx, criteria.Limit(), criteria.Offset())
		if err != nil {
			return nil, errors.WithStack(err)
		}

		page := &Page{Books: make([]*models.Book, 0, len(rows))}
		if len(rows) > 0 {
			page.Metadata = pagination.CalculateMetadata(rows[0].TotalRecords, criteria.Page, criteria.PageSize)
		}
		for _, row := range rows {
			book := &models.Book{
				ID:          row.ID,
				Title:       row.Title,
				Description: row.Description,
				PublishDate: row.PublishDate,
				AuthorID:    row.AuthorID,
			}
			if row.AuthorID != nil {
				book.Author = models.AuthorRef(*row.AuthorID)
			}
			page.Books = append(page.Books, book)
		}
		return page, nil
	})
}

// RetrieveBookWithAuthor returns the book with its author's id, name, bio and
// birth date filled in.
func (svc *Service) RetrieveBookWithAuthor(ctx context.Context, id int) (*models.Book, error) {
	key := cache.Key(CacheTag, id)

	return cache.Remember(ctx, svc.cache, CacheTag, key, svc.ttl, func(ctx context.Context) (*models.Book, error) {
		row, err := svc.repo.RetrieveWithAuthor(ctx, id)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		if row == nil {
			return nil, errcodes.NotFound(resource)
		}

		book := &models.Book{
			ID:          row.ID,
			Title:       row.Title,
			Description: row.Description,
			PublishDate: row.PublishDate,
			AuthorID:    row.AuthorID,
		}
		if row.AuthorID != nil {
			book.Author = &models.Author{
				ID:        *row.AuthorID,
				Name:      deref(row.AuthorName),
				Bio:       deref(row.AuthorBio),
				BirthDate: row.AuthorBirthDate,
			}
		}
		return book, nil
	})
}

// CreateBook persists a book that must reference an existing author.
func (svc *Service) CreateBook(ctx context.Context, book *models.Book) (*models.Book, error) {
	authorID := book.ReferencedAuthorID()
	if authorID == nil {
		return nil, errcodes.ValidationError(`"author_id" is required`)
	}
	if err := svc.checkAuthor(ctx, *authorID); err != nil {
		return nil, err
	}
	book.AuthorID = authorID

	id, err := svc.repo.Insert(ctx, book)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if id == 0 {
		return nil, errcodes.CreateFailed(resource)
	}
	book.ID = id

	cache.Invalidate(ctx, svc.cache, CacheTag, authors.CacheTag)
	return book, nil
}

func (svc *Service) UpdateBook(ctx context.Context, id int, patch Patch) (*models.Book, error) {
	existing, err := svc.retrieve(ctx, id)
	if err != nil {
		return nil, err
	}

	merged := Merge(existing, patch)
	if merged.AuthorID != nil {
		if err := svc.checkAuthor(ctx, *merged.AuthorID); err != nil {
			return nil, err
		}
	}

	n, err := svc.repo.Save(ctx, merged)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if n < 1 {
		return nil, errcodes.UpdateFailed(resource)
	}

	cache.Invalidate(ctx, svc.cache, CacheTag, authors.CacheTag)
	return merged, nil
}

func (svc *Service) DeleteBook(ctx context.Context, id int) error {
	if _, err := svc.retrieve(ctx, id); err != nil {
		return err
	}

	n, err := svc.repo.Delete(ctx, id)
	if err != nil {
		return errors.WithStack(err)
	}
	if n < 1 {
		return errcodes.DeleteFailed(resource)
	}

	cache.Invalidate(ctx, svc.cache, CacheTag, authors.CacheTag)
	return nil
}

func (svc *Service) retrieve(ctx context.Context, id int) (*models.Book, error) {
	book, err := svc.repo.Retrieve(ctx, id)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if book == nil {
		return nil, errcodes.NotFound(resource)
	}
	return book, nil
}

func (svc *Service) checkAuthor(ctx context.Context, id int) error {
	author, err := svc.authors.Retrieve(ctx, id)
	if err != nil {
		return errors.WithStack(err)
	}
	if author == nil {
		return errcodes.ReferenceNotFound("Author")
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
