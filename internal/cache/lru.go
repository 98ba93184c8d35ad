package cache

import (
	"container/list"
	"sync"
)

// LRUCache is the in-process tier. Values are the JSON payloads the
// multi-tier cache also writes to Redis.
type LRUCache struct {
	capacity int
	entries  map[string]*list.Element
	recency  *list.List
	mu       sync.Mutex
}

type entry struct {
	key   string
	value string
}

func NewLRUCache(capacity int) *LRUCache {
	return &LRUCache{
		capacity: capacity,
		entries:  make(map[string]*list.Element),
		recency:  list.New(),
	}
}

func (c *LRUCache) Get(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, found := c.entries[key]
	if !found {
		return "", false
	}
	c.recency.MoveToFront(elem)
	return elem.Value.(*entry).value, true
}

func (c *LRUCache) Set(key, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, found := c.entries[key]; found {
		c.recency.MoveToFront(elem)
		elem.Value.(*entry).value = value
		return
	}

	c.entries[key] = c.recency.PushFront(&entry{key, value})

	if c.recency.Len() > c.capacity {
		oldest := c.recency.Back()
		c.recency.Remove(oldest)
		delete(c.entries, oldest.Value.(*entry).key)
	}
}

func (c *LRUCache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, found := c.entries[key]; found {
		c.recency.Remove(elem)
		delete(c.entries, key)
	}
}

func (c *LRUCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.recency.Len()
}
