package books

import (
	"github.com/shishobooks/catalog/pkg/models"
	"github.com/shishobooks/catalog/pkg/optional"
)

// Patch holds the fields of a partial update. Unset fields keep the
// persisted value.
type Patch struct {
	Title       optional.Value[string]
	Description optional.Value[string]
	PublishDate optional.Value[models.Date]
	AuthorID    optional.Value[int]
}

// Merge returns a copy of existing with every set field of patch applied.
//
// An unset AuthorID keeps the persisted author, so a patch can move a book to
// another author but never clear it. The merged book's Author carries only
// the id.
func Merge(existing *models.Book, patch Patch) *models.Book {
	merged := *existing
	merged.Title = patch.Title.Or(existing.Title)
	merged.Description = patch.Description.Or(existing.Description)
	merged.PublishDate = patch.PublishDate.Or(existing.PublishDate)

	merged.AuthorID = nil
	if existing.AuthorID != nil {
		id := *existing.AuthorID
		merged.AuthorID = &id
	}
	if id, ok := patch.AuthorID.Get(); ok {
		merged.AuthorID = &id
	}

	merged.Author = nil
	if merged.AuthorID != nil {
		merged.Author = models.AuthorRef(*merged.AuthorID)
	}
	return &merged
}
