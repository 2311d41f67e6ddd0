// SPDX-License-Identifier: MIT

package ert

import (
	"fmt"
	"strconv"
	"sync"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru"

	"github.com/katalvlaran/massdecomp/chem"
)

// DefaultCacheSize is the number of tables a Cache keeps by default.
const DefaultCacheSize = 16

// Cache is a bounded, concurrency-safe store of residue tables keyed by
// alphabet and precision. Each key is built at most once while it stays
// cached; readers of a published table never lock.
type Cache struct {
	mu     sync.Mutex // serializes builds
	tables *lru.Cache
	builds atomic.Int64
}

// NewCache returns a Cache holding at most size tables.
func NewCache(size int) (*Cache, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrBadCacheSize, size)
	}
	tables, err := lru.New(size)
	if err != nil {
		return nil, fmt.Errorf("ert: create lru: %w", err)
	}

	return &Cache{tables: tables}, nil
}

// Get returns the table for alphabet, building it on first request.
func (c *Cache) Get(alphabet *chem.Alphabet, opts ...Option) (*Table, error) {
	if alphabet == nil || alphabet.Len() == 0 {
		return nil, ErrEmptyAlphabet
	}
	cfg := gatherOptions(opts)
	key := cacheKey(alphabet, cfg.Precision)

	if v, ok := c.tables.Get(key); ok {
		return v.(*Table), nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// another goroutine may have published it while we waited
	if v, ok := c.tables.Get(key); ok {
		return v.(*Table), nil
	}
	t, err := Build(alphabet, WithPrecision(cfg.Precision))
	if err != nil {
		return nil, err
	}
	c.builds.Add(1)
	c.tables.Add(key, t)

	return t, nil
}

// Len returns the number of cached tables.
func (c *Cache) Len() int { return c.tables.Len() }

// Builds returns how many tables this cache has built so far.
func (c *Cache) Builds() int64 { return c.builds.Load() }

// Purge drops every cached table.
func (c *Cache) Purge() { c.tables.Purge() }

func cacheKey(a *chem.Alphabet, precision float64) string {
	return a.Key() + "|" + strconv.FormatFloat(precision, 'g', -1, 64)
}
