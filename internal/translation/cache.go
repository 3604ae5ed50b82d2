package translation

import (
	"context"
	"sync"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"codeberg.org/snonux/ai1900/internal/lang"
)

// DefaultMaxEntries bounds the cache when no size is configured
const DefaultMaxEntries = 1024

// CacheKey identifies a cached translation
type CacheKey struct {
	Text   string
	Source lang.Tag
	Target lang.Tag
}

func (k CacheKey) flightKey() string {
	return string(k.Source) + "\x00" + string(k.Target) + "\x00" + k.Text
}

// CacheStats reports cache usage
type CacheStats struct {
	Hits       uint64 // lookups answered without calling the translator
	Misses     uint64 // calls to the translator
	Entries    int
	MaxEntries int // 0 means unbounded
}

// store holds cache entries; implementations are safe for concurrent use
type store interface {
	Get(key CacheKey) (string, bool)
	Add(key CacheKey, value string)
	Len() int
	All() map[CacheKey]string
	Purge()
}

// Cache memoizes a Translator. Failed translations are not cached.
// Concurrent misses for the same key share one underlying call.
type Cache struct {
	next       Translator
	store      store
	maxEntries int
	group      singleflight.Group
	hits       atomic.Uint64
	misses     atomic.Uint64
	log        *zap.SugaredLogger
}

// NewCache wraps next. maxEntries > 0 gives an LRU cache of that size,
// maxEntries <= 0 an unbounded one that lives as long as the process.
func NewCache(next Translator, maxEntries int, log *zap.SugaredLogger) *Cache {
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	c := &Cache{next: next, log: log}
	if maxEntries > 0 {
		l, err := lru.New[CacheKey, string](maxEntries)
		if err == nil {
			c.store = &lruStore{l: l}
			c.maxEntries = maxEntries
		}
	}
	if c.store == nil {
		c.store = &mapStore{m: make(map[CacheKey]string)}
	}
	return c
}

// Translate returns the cached translation of text, calling the wrapped
// translator on a miss. The underlying call is shared by all callers asking
// for the same key and is not cancelled when one of them gives up; a caller
// whose ctx is done gets its ctx error.
func (c *Cache) Translate(ctx context.Context, text string, source, target lang.Tag) (string, error) {
	if source == target {
		return text, nil
	}

	key := CacheKey{Text: text, Source: source, Target: target}
	if out, ok := c.store.Get(key); ok {
		c.hits.Add(1)
		c.log.Debugw("translation cache hit", "source", source, "target", target)
		return out, nil
	}

	ran := false
	ch := c.group.DoChan(key.flightKey(), func() (interface{}, error) {
		ran = true
		if out, ok := c.store.Get(key); ok {
			c.hits.Add(1)
			return out, nil
		}
		c.misses.Add(1)
		out, err := c.next.Translate(context.WithoutCancel(ctx), text, source, target)
		if err != nil {
			return "", err
		}
		c.store.Add(key, out)
		return out, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		if !ran {
			// Served by another caller's call
			c.hits.Add(1)
		}
		return res.Val.(string), nil
	case <-ctx.Done():
		return "", &Failure{Text: text, Source: source, Target: target, Err: ctx.Err()}
	}
}

// Get looks up a cached translation
func (c *Cache) Get(text string, source, target lang.Tag) (string, bool) {
	return c.store.Get(CacheKey{Text: text, Source: source, Target: target})
}

// Add stores a translation
func (c *Cache) Add(text string, source, target lang.Tag, translation string) {
	c.store.Add(CacheKey{Text: text, Source: source, Target: target}, translation)
}

// Len returns the number of cached translations
func (c *Cache) Len() int {
	return c.store.Len()
}

// Entries returns a copy of all cached translations
func (c *Cache) Entries() map[CacheKey]string {
	return c.store.All()
}

// Clear drops all cached translations
func (c *Cache) Clear() {
	n := c.store.Len()
	c.store.Purge()
	c.log.Infow("translation cache cleared", "entries", n)
}

// Stats returns hit/miss counters and the current size
func (c *Cache) Stats() CacheStats {
	return CacheStats{
		Hits:       c.hits.Load(),
		Misses:     c.misses.Load(),
		Entries:    c.store.Len(),
		MaxEntries: c.maxEntries,
	}
}

type lruStore struct {
	l *lru.Cache[CacheKey, string]
}

func (s *lruStore) Get(key CacheKey) (string, bool) { return s.l.Get(key) }
func (s *lruStore) Add(key CacheKey, value string)  { s.l.Add(key, value) }
func (s *lruStore) Len() int                        { return s.l.Len() }
func (s *lruStore) Purge()                          { s.l.Purge() }

func (s *lruStore) All() map[CacheKey]string {
	result := make(map[CacheKey]string)
	for _, k := range s.l.Keys() {
		if v, ok := s.l.Peek(k); ok {
			result[k] = v
		}
	}
	return result
}

type mapStore struct {
	mu sync.RWMutex
	m  map[CacheKey]string
}

func (s *mapStore) Get(key CacheKey) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.m[key]
	return v, ok
}

func (s *mapStore) Add(key CacheKey, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[key] = value
}

func (s *mapStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.m)
}

func (s *mapStore) Purge() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m = make(map[CacheKey]string)
}

func (s *mapStore) All() map[CacheKey]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	// Return a copy to prevent external modification
	result := make(map[CacheKey]string, len(s.m))
	for k, v := range s.m {
		result[k] = v
	}
	return result
}
