// Copyright (C) 2020-2026, Timewave Computer Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package witness

import (
	"container/list"
	"sync"

	"github.com/timewave-computer/causality/id"
)

// Cache is a size-bounded witness cache keyed by witness Id, adapted
// from the DAG witness cache's generic LRU. It is capped by total byte
// budget only; the number of entries is not limited.
type Cache struct {
	mu        sync.Mutex
	policy    Policy
	ll        *list.List
	entries   map[id.Id]*list.Element
	capBytes  int64
	curBytes  int64
}

type cacheEntry struct {
	key id.Id
	w   *Witness
}

// NewCache constructs a witness cache bounded by the given policy's
// MaxInputBytes (total cached trace bytes across all entries).
func NewCache(policy Policy) *Cache {
	return &Cache{
		policy:   policy,
		ll:       list.New(),
		entries:  make(map[id.Id]*list.Element),
		capBytes: policy.MaxInputBytes,
	}
}

// Put admits a witness into the cache, evicting least-recently-used
// entries until the byte budget is satisfied.
func (c *Cache) Put(w *Witness) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := w.Id()
	if el, ok := c.entries[key]; ok {
		c.curBytes -= el.Value.(cacheEntry).w.TraceBytes
		c.ll.MoveToFront(el)
		el.Value = cacheEntry{key: key, w: w}
		c.curBytes += w.TraceBytes
		c.evict()
		return
	}

	el := c.ll.PushFront(cacheEntry{key: key, w: w})
	c.entries[key] = el
	c.curBytes += w.TraceBytes
	c.evict()
}

// Get retrieves a cached witness by Id, promoting it to most-recently-used.
func (c *Cache) Get(key id.Id) (*Witness, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	c.ll.MoveToFront(el)
	return el.Value.(cacheEntry).w, true
}

// Len reports the number of cached witnesses.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ll.Len()
}

func (c *Cache) evict() {
	for c.capBytes > 0 && c.curBytes > c.capBytes {
		el := c.ll.Back()
		if el == nil {
			return
		}
		en := el.Value.(cacheEntry)
		delete(c.entries, en.key)
		c.curBytes -= en.w.TraceBytes
		c.ll.Remove(el)
	}
}
