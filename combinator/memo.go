package combinator

import (
	"context"
	"fmt"
	"sync"

	"github.com/goccy/go-json"

	"github.com/kbukum/lazykit/observability"
)

// KeyFunc derives a cache key from call input. Inputs that are equal by
// value must produce equal keys.
type KeyFunc[I any] func(I) (string, error)

// keyer is implemented by inputs that know their own cache key, such as Args.
type keyer interface {
	Key() (string, error)
}

// DefaultKey uses the input's own Key method when it has one and its JSON
// encoding otherwise.
func DefaultKey[I any](in I) (string, error) {
	if k, ok := any(in).(keyer); ok {
		return k.Key()
	}
	b, err := json.Marshal(in)
	if err != nil {
		return "", fmt.Errorf("encoding cache key: %w", err)
	}
	return string(b), nil
}

// CacheStats reports memo cache effectiveness.
type CacheStats struct {
	Hits   int
	Misses int
	Size   int
}

// MemoCache remembers the results of successful calls keyed by input.
// Each wrapped callable gets its own table, so wrapping two callables with
// one cache never mixes their results; Len, Stats and Clear span all tables.
// Failures are never stored, and entries live until Clear is called.
// The lock is held only around map access, so a memoized callable may
// call itself recursively.
type MemoCache[I, O any] struct {
	key     KeyFunc[I]
	metrics *observability.Metrics

	mu     sync.Mutex
	tables []map[string]O
	hits   int
	misses int
}

// NewMemoCache creates an empty cache. A nil key uses DefaultKey.
func NewMemoCache[I, O any](key KeyFunc[I]) *MemoCache[I, O] {
	if key == nil {
		key = DefaultKey[I]
	}
	return &MemoCache[I, O]{key: key}
}

// WithMetrics records every lookup as a hit or miss on metrics.
func (c *MemoCache[I, O]) WithMetrics(metrics *observability.Metrics) *MemoCache[I, O] {
	c.metrics = metrics
	return c
}

// Wrap returns inner memoized through this cache.
func (c *MemoCache[I, O]) Wrap(inner Callable[I, O]) Callable[I, O] {
	entries := make(map[string]O)
	c.mu.Lock()
	c.tables = append(c.tables, entries)
	c.mu.Unlock()
	return &memoCallable[I, O]{inner: inner, cache: c, entries: entries}
}

// Combinator returns Wrap as a Combinator for use in Chain.
func (c *MemoCache[I, O]) Combinator() Combinator[I, O] {
	return c.Wrap
}

// Clear drops every entry and resets the counters.
func (c *MemoCache[I, O]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, entries := range c.tables {
		clear(entries)
	}
	c.hits, c.misses = 0, 0
}

// Len returns the number of cached entries.
func (c *MemoCache[I, O]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.size()
}

// Stats returns a snapshot of the cache counters.
func (c *MemoCache[I, O]) Stats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return CacheStats{Hits: c.hits, Misses: c.misses, Size: c.size()}
}

// size requires c.mu.
func (c *MemoCache[I, O]) size() int {
	n := 0
	for _, entries := range c.tables {
		n += len(entries)
	}
	return n
}

func (c *MemoCache[I, O]) lookup(entries map[string]O, key string) (O, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	out, ok := entries[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return out, ok
}

func (c *MemoCache[I, O]) store(entries map[string]O, key string, out O) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entries[key] = out
}

type memoCallable[I, O any] struct {
	inner   Callable[I, O]
	cache   *MemoCache[I, O]
	entries map[string]O
}

func (m *memoCallable[I, O]) Name() string { return m.inner.Name() }

func (m *memoCallable[I, O]) Call(ctx context.Context, in I) (O, error) {
	key, err := m.cache.key(in)
	if err != nil {
		// Unkeyable input bypasses the cache.
		return m.inner.Call(ctx, in)
	}

	out, hit := m.cache.lookup(m.entries, key)
	if m.cache.metrics != nil {
		m.cache.metrics.RecordCacheLookup(ctx, m.inner.Name(), hit)
	}
	if hit {
		return out, nil
	}

	out, err = m.inner.Call(ctx, in)
	if err != nil {
		return out, err
	}
	m.cache.store(m.entries, key, out)
	return out, nil
}
