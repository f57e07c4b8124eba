package authors

import (
	"github.com/shishobooks/catalog/pkg/models"
	"github.com/shishobooks/catalog/pkg/optional"
)

// Patch holds the fields of a partial update. Unset fields keep the
// persisted value.
type Patch struct {
	Name      optional.Value[string]
	Bio       optional.Value[string]
	BirthDate optional.Value[models.Date]
}

// Merge returns a copy of existing with every set field of patch applied.
// existing is not modified.
func Merge(existing *models.Author, patch Patch) *models.Author {
	merged := *existing
	merged.Name = patch.Name.Or(existing.Name)
	merged.Bio = patch.Bio.Or(existing.Bio)
	merged.BirthDate = patch.BirthDate.Or(existing.BirthDate)
	return &merged
}
