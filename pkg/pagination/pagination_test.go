package pagination

import (
	"testing"

	"github.com/segmentio/encoding/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateMetadata(t *testing.T) {
	t.Parallel()

	t.Run("empty when there are no records", func(tt *testing.T) {
		for _, c := range []Criteria{{1, 10}, {10000, 1}, {3, 7}} {
			m := CalculateMetadata(0, c.Page, c.PageSize)
			assert.True(tt, m.IsEmpty())
		}
	})

	t.Run("last page rounds up", func(tt *testing.T) {
		tests := []struct {
			total    int
			pageSize int
			lastPage int
		}{
			{1, 10, 1},
			{10, 10, 1},
			{11, 10, 2},
			{36, 10, 4},
			{36, 1, 36},
			{7, 3, 3},
		}
		for _, test := range tests {
			m := CalculateMetadata(test.total, 2, test.pageSize)
			assert.Equal(tt, test.lastPage, m.LastPage, "total=%d page_size=%d", test.total, test.pageSize)
			assert.Equal(tt, 1, m.FirstPage)
			assert.Equal(tt, 2, m.CurrentPage)
			assert.Equal(tt, test.pageSize, m.PageSize)
			assert.Equal(tt, test.total, m.TotalRecords)
		}
	})

	t.Run("empty metadata marshals to an empty object", func(tt *testing.T) {
		b, err := json.Marshal(CalculateMetadata(0, 1, 10))
		require.NoError(tt, err)
		assert.JSONEq(tt, `{}`, string(b))
	})
}

func TestCriteria(t *testing.T) {
	t.Parallel()

	c := NewCriteria(3, 25)
	assert.Equal(t, 25, c.Limit())
	assert.Equal(t, 50, c.Offset())

	c = NewCriteria(0, 0)
	assert.Equal(t, DefaultPage, c.Page)
	assert.Equal(t, DefaultPageSize, c.PageSize)
	assert.Equal(t, 0, c.Offset())
}

func TestQuery_Criteria(t *testing.T) {
	t.Parallel()

	three, fifty := 3, 50

	assert.Equal(t, Criteria{Page: 1, PageSize: 10}, Query{}.Criteria())
	assert.Equal(t, Criteria{Page: 3, PageSize: 10}, Query{Page: &three}.Criteria())
	assert.Equal(t, Criteria{Page: 1, PageSize: 50}, Query{PageSize: &fifty}.Criteria())
}
