package cache

import (
	"context"
	"sync"
	"time"

	"github.com/viccon/sturdyc"
)

type MemoryConfig struct {
	// Capacity is the maximum number of entries held at once.
	Capacity int
	// NumShards splits the store to reduce lock contention.
	NumShards int
	// TTL bounds the lifetime of every entry. A shorter ttl passed to
	// GetOrCompute wins, a longer one is cut down to this.
	TTL time.Duration
	// EvictionPercentage is the share of entries dropped when Capacity is hit.
	EvictionPercentage int
}

type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "cache config error in field " + e.Field + ": " + e.Message
}

func (c MemoryConfig) Validate() error {
	if c.Capacity <= 0 {
		return &ConfigError{Field: "Capacity", Message: "must be greater than 0"}
	}
	if c.NumShards <= 0 {
		return &ConfigError{Field: "NumShards", Message: "must be greater than 0"}
	}
	if c.TTL <= 0 {
		return &ConfigError{Field: "TTL", Message: "must be greater than 0"}
	}
	if c.EvictionPercentage < 1 || c.EvictionPercentage > 100 {
		return &ConfigError{Field: "EvictionPercentage", Message: "must be between 1 and 100"}
	}
	return nil
}

type entry struct {
	data      []byte
	expiresAt time.Time
}

// Memory is an in-process store backed by sturdyc. Tags are tracked in a
// registry from tag to the keys stored under it. Keys that sturdyc evicted or
// that expired are pruned from the registry once it outgrows the capacity.
type Memory struct {
	client   *sturdyc.Client[entry]
	now      func() time.Time
	capacity int

	mu      sync.Mutex
	tags    map[string]map[string]struct{}
	tracked int
}

func NewMemory(cfg MemoryConfig) (*Memory, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	client := sturdyc.New[entry](cfg.Capacity, cfg.NumShards, cfg.TTL, cfg.EvictionPercentage)

	return &Memory{
		client:   client,
		now:      time.Now,
		capacity: cfg.Capacity,
		tags:     map[string]map[string]struct{}{},
	}, nil
}

func (m *Memory) GetOrCompute(ctx context.Context, tag, key string, ttl time.Duration, compute ComputeFunc) ([]byte, error) {
	if e, ok := m.client.Get(key); ok {
		if m.now().Before(e.expiresAt) {
			return e.data, nil
		}
		m.client.Delete(key)
	}

	// The key is registered before it can be stored, so an invalidation
	// that races with the compute still finds it.
	m.track(tag, key)

	e, err := m.client.GetOrFetch(ctx, key, func(ctx context.Context) (entry, error) {
		data, err := compute(ctx)
		if err != nil {
			return entry{}, err
		}
		return entry{data: data, expiresAt: m.now().Add(ttl)}, nil
	})
	if err != nil {
		m.untrack(tag, key)
		return nil, err
	}
	// An invalidation may have run while compute was in flight and dropped
	// the registration. Register again so the next one removes this entry.
	m.track(tag, key)
	return e.data, nil
}

func (m *Memory) InvalidateTag(_ context.Context, tag string) error {
	m.mu.Lock()
	keys := m.tags[tag]
	delete(m.tags, tag)
	m.tracked -= len(keys)
	m.mu.Unlock()

	for key := range keys {
		m.client.Delete(key)
	}
	return nil
}

func (m *Memory) Close() error {
	return nil
}

func (m *Memory) track(tag, key string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	keys, ok := m.tags[tag]
	if !ok {
		keys = map[string]struct{}{}
		m.tags[tag] = keys
	}
	if _, ok := keys[key]; ok {
		return
	}
	keys[key] = struct{}{}
	m.tracked++

	if m.tracked > 2*m.capacity {
		m.prune(tag, key)
	}
}

// untrack removes a registration left by a failed compute, unless another
// caller stored the key in the meantime.
func (m *Memory) untrack(tag, key string) {
	if _, ok := m.client.Get(key); ok {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.remove(tag, key)
}

// prune drops every registered key the store no longer holds, except the one
// being registered. m.mu must be held.
func (m *Memory) prune(keepTag, keepKey string) {
	now := m.now()
	for tag, keys := range m.tags {
		for key := range keys {
			if tag == keepTag && key == keepKey {
				continue
			}
			if e, ok := m.client.Get(key); !ok || !now.Before(e.expiresAt) {
				m.remove(tag, key)
			}
		}
	}
}

// remove requires m.mu to be held.
func (m *Memory) remove(tag, key string) {
	keys, ok := m.tags[tag]
	if !ok {
		return
	}
	if _, ok := keys[key]; !ok {
		return
	}
	delete(keys, key)
	m.tracked--
	if len(keys) == 0 {
		delete(m.tags, tag)
	}
}
