package cache

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/robinjoseph08/golib/logger"
)

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	// Prefix namespaces every key so several deployments can share a server.
	Prefix string
}

// Redis stores entries as plain string values with their own expiry, and
// each tag as a SET holding the keys stored under it.
type Redis struct {
	client *redis.Client
	prefix string
}

func NewRedis(ctx context.Context, cfg RedisConfig) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     10,
		MinIdleConns: 5,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, errors.Wrapf(err, "redis ping failed for %s", cfg.Addr)
	}

	return &Redis{client: client, prefix: cfg.Prefix}, nil
}

func (r *Redis) GetOrCompute(ctx context.Context, tag, key string, ttl time.Duration, compute ComputeFunc) ([]byte, error) {
	k := r.key(key)

	data, err := r.client.Get(ctx, k).Bytes()
	if err == nil {
		return data, nil
	}
	if !errors.Is(err, redis.Nil) {
		return nil, errors.WithStack(err)
	}

	data, err = compute(ctx)
	if err != nil {
		return nil, err
	}

	// The tag is written first so an entry can never exist without being
	// reachable from its tag.
	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.SAdd(ctx, r.tagKey(tag), k)
		pipe.Set(ctx, k, data, ttl)
		return nil
	})
	if err != nil {
		logger.FromContext(ctx).Warn("failed to store cache entry", logger.Data{"key": k, "tag": tag, "error": err.Error()})
	}

	return data, nil
}

func (r *Redis) InvalidateTag(ctx context.Context, tag string) error {
	tk := r.tagKey(tag)

	keys, err := r.client.SMembers(ctx, tk).Result()
	if err != nil {
		return errors.WithStack(err)
	}
	if len(keys) == 0 {
		return nil
	}

	// Only the members read above are removed from the tag, so keys stored
	// in the meantime stay registered.
	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, keys...)
		pipe.SRem(ctx, tk, toInterfaces(keys)...)
		return nil
	})
	return errors.WithStack(err)
}

// Ping reports whether the redis server is reachable.
func (r *Redis) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return errors.WithStack(r.client.Ping(ctx).Err())
}

func (r *Redis) Close() error {
	return errors.WithStack(r.client.Close())
}

func (r *Redis) key(key string) string {
	if r.prefix == "" {
		return key
	}
	return r.prefix + ":" + key
}

func (r *Redis) tagKey(tag string) string {
	return r.key("tag:" + tag)
}

func toInterfaces(keys []string) []interface{} {
	out := make([]interface{}, len(keys))
	for i, k := range keys {
		out[i] = k
	}
	return out
}
