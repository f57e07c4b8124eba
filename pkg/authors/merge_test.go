package authors

import (
	"testing"
	"time"

	"github.com/shishobooks/catalog/pkg/models"
	"github.com/shishobooks/catalog/pkg/optional"
	"github.com/stretchr/testify/assert"
)

func TestMerge(t *testing.T) {
	t.Parallel()

	existing := &models.Author{
		ID:        7,
		Name:      "Samsul",
		Bio:       "Novel writer",
		BirthDate: models.NewDate(2020, time.January, 1),
	}

	t.Run("empty patch keeps every field", func(tt *testing.T) {
		merged := Merge(existing, Patch{})
		assert.Equal(tt, existing, merged)
		assert.NotSame(tt, existing, merged)
	})

	t.Run("set fields win", func(tt *testing.T) {
		merged := Merge(existing, Patch{
			Bio:       optional.Some("Poet"),
			BirthDate: optional.Some(models.NewDate(1999, time.December, 31)),
		})
		assert.Equal(tt, 7, merged.ID)
		assert.Equal(tt, "Samsul", merged.Name)
		assert.Equal(tt, "Poet", merged.Bio)
		assert.Equal(tt, "1999-12-31", merged.BirthDate.String())
	})

	t.Run("an explicitly set empty value is applied", func(tt *testing.T) {
		merged := Merge(existing, Patch{Name: optional.Some("")})
		assert.Equal(tt, "", merged.Name)
	})

	t.Run("does not modify existing", func(tt *testing.T) {
		_ = Merge(existing, Patch{Name: optional.Some("Other")})
		assert.Equal(tt, "Samsul", existing.Name)
	})
}
