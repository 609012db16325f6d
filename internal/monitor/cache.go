package monitor

import (
	"context"
	"sync"
	"time"

	"github.com/yourusername/canvas-grid/internal/logging"
	"github.com/yourusername/canvas-grid/internal/types"
)

// DefaultCacheTTL bounds how stale cached monitor geometry may get
const DefaultCacheTTL = 5 * time.Second

// Cache memoizes a Lister for a fixed time-to-live. A zero TTL disables
// caching. Safe for concurrent use.
type Cache struct {
	source Lister
	ttl    time.Duration
	clock  func() time.Time

	mu        sync.Mutex
	monitors  []types.MonitorInfo
	fetchedAt time.Time
}

// CacheOption configures a Cache
type CacheOption func(*Cache)

// WithClock replaces time.Now, for tests
func WithClock(clock func() time.Time) CacheOption {
	return func(c *Cache) { c.clock = clock }
}

// NewCache wraps source with a TTL cache
func NewCache(source Lister, ttl time.Duration, opts ...CacheOption) *Cache {
	c := &Cache{
		source: source,
		ttl:    ttl,
		clock:  time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListMonitors returns cached monitors, refreshing them once the TTL expires
func (c *Cache) ListMonitors(ctx context.Context) ([]types.MonitorInfo, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock()
	if c.monitors != nil && c.ttl > 0 && now.Sub(c.fetchedAt) < c.ttl {
		out := make([]types.MonitorInfo, len(c.monitors))
		copy(out, c.monitors)
		return out, nil
	}

	monitors, err := c.source.ListMonitors(ctx)
	if err != nil {
		return nil, err
	}
	logging.Debug().Int("count", len(monitors)).Msg("refreshed monitors")

	c.monitors = monitors
	c.fetchedAt = now

	out := make([]types.MonitorInfo, len(monitors))
	copy(out, monitors)
	return out, nil
}

// GetMonitor returns one monitor by index
func (c *Cache) GetMonitor(ctx context.Context, index int) (types.MonitorInfo, error) {
	monitors, err := c.ListMonitors(ctx)
	if err != nil {
		return types.MonitorInfo{}, err
	}
	return find(monitors, index)
}

// Invalidate drops cached monitors so the next call refetches
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.monitors = nil
}
