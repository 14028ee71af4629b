package nws

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/couchcryptid/weather-mcp-service/internal/domain"
	"github.com/couchcryptid/weather-mcp-service/internal/observability"
	"github.com/jonboulle/clockwork"
)

// CachedSource wraps a WeatherSource with an in-memory TTL-bounded LRU cache.
// Only successful results are cached, so transient upstream failures are
// retried on the next call.
type CachedSource struct {
	inner   domain.WeatherSource
	cache   *lruCache
	metrics *observability.Metrics
}

// NewCachedSource creates a cache decorator around a weather source. The clock
// drives entry expiry; production passes a real clock, tests a fake.
func NewCachedSource(inner domain.WeatherSource, maxEntries int, ttl time.Duration, clk clockwork.Clock, metrics *observability.Metrics) *CachedSource {
	return &CachedSource{
		inner:   inner,
		cache:   newLRUCache(maxEntries, ttl, clk),
		metrics: metrics,
	}
}

func (c *CachedSource) ActiveAlerts(ctx context.Context, area string) ([]domain.AlertFeature, error) {
	key := "alerts:" + area
	if v, ok := c.cache.get(key); ok {
		c.metrics.CacheLookups.WithLabelValues("alerts", "hit").Inc()
		return v.([]domain.AlertFeature), nil
	}
	c.metrics.CacheLookups.WithLabelValues("alerts", "miss").Inc()

	features, err := c.inner.ActiveAlerts(ctx, area)
	if err != nil {
		return nil, err
	}
	c.cache.put(key, features)
	return features, nil
}

func (c *CachedSource) GridPoint(ctx context.Context, lat, lon float64) (domain.GridPoint, error) {
	key := fmt.Sprintf("points:%s,%s", formatCoord(lat), formatCoord(lon))
	if v, ok := c.cache.get(key); ok {
		c.metrics.CacheLookups.WithLabelValues("points", "hit").Inc()
		return v.(domain.GridPoint), nil
	}
	c.metrics.CacheLookups.WithLabelValues("points", "miss").Inc()

	point, err := c.inner.GridPoint(ctx, lat, lon)
	if err != nil {
		return domain.GridPoint{}, err
	}
	c.cache.put(key, point)
	return point, nil
}

func (c *CachedSource) ForecastPeriods(ctx context.Context, forecastURL string) ([]domain.ForecastPeriod, error) {
	key := "forecast:" + forecastURL
	if v, ok := c.cache.get(key); ok {
		c.metrics.CacheLookups.WithLabelValues("forecast", "hit").Inc()
		return v.([]domain.ForecastPeriod), nil
	}
	c.metrics.CacheLookups.WithLabelValues("forecast", "miss").Inc()

	periods, err := c.inner.ForecastPeriods(ctx, forecastURL)
	if err != nil {
		return nil, err
	}
	c.cache.put(key, periods)
	return periods, nil
}

// lruCache is a simple thread-safe LRU cache with per-entry expiry.
type lruCache struct {
	maxEntries int
	ttl        time.Duration
	clock      clockwork.Clock

	mu      sync.Mutex
	entries map[string]*entry
	head    *entry // most recently used
	tail    *entry // least recently used
}

type entry struct {
	key     string
	value   any
	expires time.Time
	prev    *entry
	next    *entry
}

func newLRUCache(maxEntries int, ttl time.Duration, clk clockwork.Clock) *lruCache {
	return &lruCache{
		maxEntries: maxEntries,
		ttl:        ttl,
		clock:      clk,
		entries:    make(map[string]*entry),
	}
}

func (c *lruCache) get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.clock.Now().After(e.expires) {
		delete(c.entries, e.key)
		c.remove(e)
		return nil, false
	}
	c.moveToFront(e)
	return e.value, true
}

func (c *lruCache) put(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	expires := c.clock.Now().Add(c.ttl)

	if e, ok := c.entries[key]; ok {
		e.value = value
		e.expires = expires
		c.moveToFront(e)
		return
	}

	e := &entry{key: key, value: value, expires: expires}
	c.entries[key] = e
	c.addToFront(e)

	if len(c.entries) > c.maxEntries {
		c.evictTail()
	}
}

func (c *lruCache) moveToFront(e *entry) {
	if e == c.head {
		return
	}
	c.remove(e)
	c.addToFront(e)
}

func (c *lruCache) addToFront(e *entry) {
	e.next = c.head
	e.prev = nil
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *lruCache) remove(e *entry) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}
}

func (c *lruCache) evictTail() {
	if c.tail == nil {
		return
	}
	delete(c.entries, c.tail.key)
	c.remove(c.tail)
}
