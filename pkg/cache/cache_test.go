package cache

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/shishobooks/catalog/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

func TestRemember(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	m := newTestMemory(t)

	calls := 0
	load := func(context.Context) ([]item, error) {
		calls++
		return []item{{ID: 1, Name: "Samsul"}}, nil
	}

	first, err := Remember(ctx, m, "authors", "authors_1_10", time.Hour, load)
	require.NoError(t, err)
	second, err := Remember(ctx, m, "authors", "authors_1_10", time.Hour, load)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, calls)

	_, err = Remember(ctx, m, "authors", "authors_9", time.Hour, func(context.Context) (*item, error) {
		return nil, errors.New("not there")
	})
	assert.EqualError(t, err, "not there")
}

func TestKey(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "authors_1_10", Key("authors", 1, 10))
	assert.Equal(t, "books_7", Key("books", 7))
	assert.Equal(t, "authors_3_books", Key("authors", 3, "books"))
}

func TestNew(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	cfg := config.NewForTest()
	c, err := New(ctx, cfg)
	require.NoError(t, err)
	assert.IsType(t, &Memory{}, c)

	cfg.CacheDriver = config.CacheDriverNone
	c, err = New(ctx, cfg)
	require.NoError(t, err)

	calls := 0
	for i := 0; i < 2; i++ {
		_, err = c.GetOrCompute(ctx, "t", "k", time.Hour, counting(&calls, "v"))
		require.NoError(t, err)
	}
	assert.Equal(t, 2, calls, "noop store always computes")

	cfg.CacheDriver = "bogus"
	_, err = New(ctx, cfg)
	assert.Error(t, err)
}

type brokenTags struct {
	Noop
	tags []string
}

func (b *brokenTags) InvalidateTag(_ context.Context, tag string) error {
	b.tags = append(b.tags, tag)
	return errors.New("unreachable")
}

func TestInvalidate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("drops every tag", func(tt *testing.T) {
		m := newTestMemory(tt)
		calls := 0
		_, err := m.GetOrCompute(ctx, "authors", "authors_1", time.Hour, counting(&calls, "a"))
		require.NoError(tt, err)
		_, err = m.GetOrCompute(ctx, "books", "books_1", time.Hour, counting(&calls, "b"))
		require.NoError(tt, err)

		Invalidate(ctx, m, "authors", "books")

		_, err = m.GetOrCompute(ctx, "authors", "authors_1", time.Hour, counting(&calls, "a"))
		require.NoError(tt, err)
		_, err = m.GetOrCompute(ctx, "books", "books_1", time.Hour, counting(&calls, "b"))
		require.NoError(tt, err)
		assert.Equal(tt, 4, calls)
	})

	t.Run("keeps going after a failure", func(tt *testing.T) {
		b := &brokenTags{}
		Invalidate(ctx, b, "authors", "books")
		assert.Equal(tt, []string{"authors", "books"}, b.tags)
	})
}
