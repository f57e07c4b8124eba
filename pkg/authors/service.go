package authors

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/shishobooks/catalog/pkg/cache"
	"github.com/shishobooks/catalog/pkg/errcodes"
	"github.com/shishobooks/catalog/pkg/models"
	"github.com/shishobooks/catalog/pkg/pagination"
)

// CacheTag groups every cached author read. It is invalidated whenever an
// author or a book is written, since an author's book list is cached under it.
const CacheTag = "authors"

// Cached books embed their author, so author writes drop them too.
const booksCacheTag = "books"

const resource = "Author"

type Page struct {
	Authors  []*models.Author    `json:"authors"`
	Metadata pagination.Metadata `json:"metadata"`
}

type Service struct {
	repo  Repository
	cache cache.Cache
	ttl   time.Duration
}

func NewService(repo Repository, c cache.Cache, ttl time.Duration) *Service {
	return &Service{repo, c, ttl}
}

func (svc *Service) ListAuthors(ctx context.Context, criteria pagination.Criteria) (*Page, error) {
	key := cache.Key(CacheTag, criteria.Page, criteria.PageSize)

	return cache.Remember(ctx, svc.cache, CacheTag, key, svc.ttl, func(ctx context.Context) (*Page, error) {
		rows, err := svc.repo.ListPage(ctx, criteria.Limit(), criteria.Offset())
		if err != nil {
			return nil, errors.WithStack(err)
		}

		page := &Page{Authors: make([]*models.Author, 0, len(rows))}
		if len(rows) > 0 {
			page.Metadata = pagination.CalculateMetadata(rows[0].TotalRecords, criteria.Page, criteria.PageSize)
		}
		for _, row := range rows {
			page.Authors = append(page.Authors, &models.Author{
				ID:        row.ID,
				Name:      row.Name,
				Bio:       row.Bio,
				BirthDate: row.BirthDate,
			})
		}
		return page, nil
	})
}

func (svc *Service) RetrieveAuthor(ctx context.Context, id int) (*models.Author, error) {
	key := cache.Key(CacheTag, id)

	return cache.Remember(ctx, svc.cache, CacheTag, key, svc.ttl, func(ctx context.Context) (*models.Author, error) {
		return svc.retrieve(ctx, id)
	})
}

// ListAuthorBooks returns the books written by the author. Each book only
// carries the author's id.
func (svc *Service) ListAuthorBooks(ctx context.Context, id int) ([]*models.Book, error) {
	if _, err := svc.retrieve(ctx, id); err != nil {
		return nil, err
	}

	key := cache.Key(CacheTag, id, "books")

	return cache.Remember(ctx, svc.cache, CacheTag, key, svc.ttl, func(ctx context.Context) ([]*models.Book, error) {
		books, err := svc.repo.ListBooks(ctx, id)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		for _, b := range books {
			b.Author = models.AuthorRef(id)
		}
		return books, nil
	})
}

func (svc *Service) CreateAuthor(ctx context.Context, author *models.Author) (*models.Author, error) {
	id, err := svc.repo.Insert(ctx, author)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if id == 0 {
		return nil, errcodes.CreateFailed(resource)
	}
	author.ID = id

	cache.Invalidate(ctx, svc.cache, CacheTag, booksCacheTag)
	return author, nil
}

func (svc *Service) UpdateAuthor(ctx context.Context, id int, patch Patch) (*models.Author, error) {
	existing, err := svc.retrieve(ctx, id)
	if err != nil {
		return nil, err
	}

	merged := Merge(existing, patch)
	n, err := svc.repo.Save(ctx, merged)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if n < 1 {
		return nil, errcodes.UpdateFailed(resource)
	}

	cache.Invalidate(ctx, svc.cache, CacheTag, booksCacheTag)
	return merged, nil
}

func (svc *Service) DeleteAuthor(ctx context.Context, id int) error {
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

	cache.Invalidate(ctx, svc.cache, CacheTag, booksCacheTag)
	return nil
}

func (svc *Service) retrieve(ctx context.Context, id int) (*models.Author, error) {
	author, err := svc.repo.Retrieve(ctx, id)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if author == nil {
		return nil, errcodes.NotFound(resource)
	}
	return author, nil
}
