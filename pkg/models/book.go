package models

import (
	"time"

	"github.com/uptrace/bun"
)

type Book struct {
	bun.BaseModel `bun:"table:books,alias:b"`

	ID          int       `bun:",pk,nullzero" json:"id"`
	CreatedAt   time.Time `json:"created_at,omitzero"`
	UpdatedAt   time.Time `json:"updated_at,omitzero"`
	Title       string    `bun:",notnull" json:"title"`
	Description string    `bun:",notnull" json:"description"`
	PublishDate Date      `bun:",notnull" json:"publish_date"`
	AuthorID    *int      `bun:",nullzero" json:"-"`
	Author      *Author   `bun:"rel:belongs-to,join:author_id=id" json:"author"`
}

// ReferencedAuthorID is the id of the book's author, or nil when the book has
// no author.
func (b *Book) ReferencedAuthorID() *int {
	if b.Author == nil {
		return nil
	}
	id := b.Author.ID
	return &id
}
