package data

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"portfolio-projection/internal/model"
	"portfolio-projection/internal/projection"
)

// CacheObserver is notified of every lookup.
type CacheObserver interface {
	ObserveCache(hit bool)
}

type cacheEntry struct {
	result    *projection.Result
	expiresAt time.Time
}

// ResultCache keeps finished runs of seeded configs in memory. A seeded run
// is deterministic, so replaying it from the cache is indistinguishable
// from recomputing it. Unseeded configs are never cached.
//
// A nil *ResultCache is valid and caches nothing.
type ResultCache struct {
	mu       sync.RWMutex
	store    map[string]*cacheEntry
	ttl      time.Duration
	observer CacheObserver
	now      func() time.Time
	stop     chan struct{}
	stopOnce sync.Once
}

// NewResultCache returns nil when ttl <= 0, which disables caching.
func NewResultCache(ttl time.Duration, observer CacheObserver) *ResultCache {
	if ttl <= 0 {
		return nil
	}
	c := &ResultCache{
		store:    make(map[string]*cacheEntry),
		ttl:      ttl,
		observer: observer,
		now:      time.Now,
		stop:     make(chan struct{}),
	}
	go c.cleanup(cleanupInterval(ttl))
	return c
}

func cleanupInterval(ttl time.Duration) time.Duration {
	if ttl < 5*time.Minute {
		return ttl
	}
	return 5 * time.Minute
}

// Get retrieves a cached result if available and not expired.
func (c *ResultCache) Get(key string) (*projection.Result, bool) {
	if c == nil || key == "" {
		return nil, false
	}

	c.mu.RLock()
	entry, exists := c.store[key]
	c.mu.RUnlock()

	hit := exists && !c.now().After(entry.expiresAt)
	if c.observer != nil {
		c.observer.ObserveCache(hit)
	}
	if !hit {
		return nil, false
	}
	return entry.result, true
}

// Set stores a result in the cache.
func (c *ResultCache) Set(key string, result *projection.Result) {
	if c == nil || key == "" || result == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.store[key] = &cacheEntry{
		result:    result,
		expiresAt: c.now().Add(c.ttl),
	}
}

// Len reports the number of stored entries, expired ones included.
func (c *ResultCache) Len() int {
	if c == nil {
		return 0
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.store)
}

// Clear removes all entries from the cache.
func (c *ResultCache) Clear() {
	if c == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.store = make(map[string]*cacheEntry)
}

// Close stops the cleanup goroutine.
func (c *ResultCache) Close() {
	if c == nil {
		return
	}
	c.stopOnce.Do(func() { close(c.stop) })
}

func (c *ResultCache) evictExpired() {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	for key, entry := range c.store {
		if now.After(entry.expiresAt) {
			delete(c.store, key)
		}
	}
}

// cleanup periodically removes expired entries
func (c *ResultCache) cleanup(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			c.evictExpired()
		}
	}
}

// CacheKey derives a key from every input that affects a run's output.
// It returns "" for unseeded configs.
func CacheKey(cfg model.SimulationConfig) string {
	if cfg.Seed == nil {
		return ""
	}
	keyStr := fmt.Sprintf("%g:%g:%d:%g:%g:%d:%d:%s",
		cfg.InitialAmount,
		cfg.MonthlyContribution,
		cfg.HorizonMonths,
		cfg.AnnualExpectedReturn,
		cfg.AnnualVolatility,
		cfg.ScenarioCount,
		*cfg.Seed,
		cfg.Method(),
	)

	// Hash the key to keep it reasonably sized
	hash := sha256.Sum256([]byte(keyStr))
	return hex.EncodeToString(hash[:])
}
