package presskit

import (
	"errors"
	"log"
	"sync"
	"time"
)

// ErrNotFound is returned when a requested document does not exist.
var ErrNotFound = errors.New("presskit: document not found")

// DocCache is an in-memory cache of loaded documents with TTL, used by the
// serve mode so on-demand renders do not re-read the content dir on every
// request.
type DocCache struct {
	mu      sync.RWMutex
	docs    []Document
	fetched time.Time
	ttl     time.Duration
	store   *Store
}

// NewDocCache creates a DocCache backed by the given Store.
func NewDocCache(s *Store, ttl time.Duration) *DocCache {
	return &DocCache{store: s, ttl: ttl}
}

func (c *DocCache) valid() bool {
	return c.docs != nil && time.Since(c.fetched) < c.ttl
}

// Invalidate clears the cache so the next read triggers a fresh load.
func (c *DocCache) Invalidate() {
	c.mu.Lock()
	c.docs = nil
	c.mu.Unlock()
}

func (c *DocCache) load() error {
	if c.valid() {
		return nil
	}
	docs, warnings, err := c.store.Load()
	if err != nil {
		return err
	}
	for _, w := range warnings {
		log.Printf("presskit: skipping %s", w)
	}
	c.docs = docs
	c.fetched = time.Now()
	return nil
}

// ensureLoaded returns cached documents after ensuring the cache is fresh.
// It tries a read lock first; only takes a write lock if a reload is needed.
func (c *DocCache) ensureLoaded() ([]Document, error) {
	c.mu.RLock()
	if c.valid() {
		docs := c.docs
		c.mu.RUnlock()
		return docs, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.load(); err != nil {
		return nil, err
	}
	return c.docs, nil
}

// List returns all routable documents, newest first.
func (c *DocCache) List() ([]Document, error) {
	return c.ensureLoaded()
}

// Get returns a single document by slug from the cache.
func (c *DocCache) Get(slug string) (Document, error) {
	docs, err := c.ensureLoaded()
	if err != nil {
		return Document{}, err
	}
	for _, d := range docs {
		if d.Slug == slug {
			return d, nil
		}
	}
	return Document{}, ErrNotFound
}
