// Package cache implements cache-aside storage with tag-scoped invalidation.
//
// Stores hold encoded bytes. Remember layers typed values on top of a store
// by JSON encoding them, so the same service code runs against the in-process
// store and against redis.
package cache

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
	"github.com/segmentio/encoding/json"
	"github.com/shishobooks/catalog/pkg/config"
)

// ComputeFunc produces the encoded value for a key on a cache miss.
type ComputeFunc func(ctx context.Context) ([]byte, error)

// Cache is a key/value store where every entry belongs to a tag.
//
// GetOrCompute returns the value stored under key, or calls compute, stores
// its result under key with the given ttl and returns it. An error from
// compute is returned as is and nothing is stored. Concurrent misses on the
// same key may each call compute.
//
// InvalidateTag removes every entry stored under tag.
type Cache interface {
	GetOrCompute(ctx context.Context, tag, key string, ttl time.Duration, compute ComputeFunc) ([]byte, error)
	InvalidateTag(ctx context.Context, tag string) error
	Close() error
}

// Remember is the typed form of GetOrCompute.
func Remember[T any](ctx context.Context, c Cache, tag, key string, ttl time.Duration, compute func(ctx context.Context) (T, error)) (T, error) {
	var (
		computed T
		fresh    bool
	)

	data, err := c.GetOrCompute(ctx, tag, key, ttl, func(ctx context.Context) ([]byte, error) {
		v, err := compute(ctx)
		if err != nil {
			return nil, err
		}
		computed, fresh = v, true
		b, err := json.Marshal(v)
		return b, errors.WithStack(err)
	})
	if err != nil {
		var zero T
		return zero, err
	}
	if fresh {
		return computed, nil
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return v, errors.Wrapf(err, "failed to decode cached value for %s", key)
	}
	return v, nil
}

// Invalidate drops every entry under each tag. A failure is logged and not
// returned because the write that triggered it has already been committed.
func Invalidate(ctx context.Context, c Cache, tags ...string) {
	for _, tag := range tags {
		if err := c.InvalidateTag(ctx, tag); err != nil {
			logger.FromContext(ctx).Err(err).Warn("failed to invalidate cache tag", logger.Data{"tag": tag})
		}
	}
}

// Key joins parts with underscores, e.g. Key("authors", 1, 10) is
// "authors_1_10".
func Key(parts ...interface{}) string {
	s := make([]string, len(parts))
	for i, p := range parts {
		s[i] = fmt.Sprint(p)
	}
	return strings.Join(s, "_")
}

// New builds the store selected by cfg.CacheDriver.
func New(ctx context.Context, cfg *config.Config) (Cache, error) {
	switch cfg.CacheDriver {
	case config.CacheDriverMemory, "":
		return NewMemory(MemoryConfig{
			Capacity:           cfg.CacheCapacity,
			NumShards:          cfg.CacheShards,
			TTL:                cfg.CacheTTL,
			EvictionPercentage: cfg.CacheEvictionPercentage,
		})
	case config.CacheDriverRedis:
		return NewRedis(ctx, RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			Prefix:   cfg.CachePrefix,
		})
	case config.CacheDriverNone:
		return Noop{}, nil
	default:
		return nil, errors.Errorf("unknown cache driver %q", cfg.CacheDriver)
	}
}

// Noop never stores anything, so every read is computed.
type Noop struct{}

func (Noop) GetOrCompute(ctx context.Context, _, _ string, _ time.Duration, compute ComputeFunc) ([]byte, error) {
	return compute(ctx)
}

func (Noop) InvalidateTag(context.Context, string) error {
	return nil
}

func (Noop) Close() error {
	return nil
}
