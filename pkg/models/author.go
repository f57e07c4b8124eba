package models

import (
	"time"

	"github.com/uptrace/bun"
)

type Author struct {
	bun.BaseModel `bun:"table:authors,alias:a"`

	ID        int       `bun:",pk,nullzero" json:"id"`
	CreatedAt time.Time `json:"created_at,omitzero"`
	UpdatedAt time.Time `json:"updated_at,omitzero"`
	Name      string    `bun:",notnull" json:"name,omitempty"`
	Bio       string    `bun:",notnull" json:"bio,omitempty"`
	BirthDate Date      `bun:",notnull" json:"birth_date,omitzero"`
}

// AuthorRef returns an author reference that only carries an id.
func AuthorRef(id int) *Author {
	return &Author{ID: id}
}
