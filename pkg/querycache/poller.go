package querycache

import (
	"context"
	"sync"
	"time"

	"github.com/DenserMeerkat/fr-frontend-next/pkg/logger"
)

// AllowedIntervals are the refetch intervals the UI offers.
var AllowedIntervals = []time.Duration{
	time.Second,
	5 * time.Second,
	10 * time.Second,
	time.Minute,
	5 * time.Minute,
}

// DefaultInterval is used until the user picks another one.
const DefaultInterval = 5 * time.Minute

// IsAllowedInterval reports whether d is one of the offered intervals.
func IsAllowedInterval(d time.Duration) bool {
	for _, a := range AllowedIntervals {
		if d == a {
			return true
		}
	}
	return false
}

// Poller invalidates the live-data keys on a fixed interval so the next read
// refetches. It can be paused (hidden window, closed panel) and retuned at
// runtime.
type Poller struct {
	cache *Cache

	mu       sync.Mutex
	interval time.Duration
	paused   bool
	retune   chan struct{}
	done     chan struct{}
	once     sync.Once
}

// NewPoller creates a poller over the cache. interval falls back to
// DefaultInterval when it is not one of AllowedIntervals.
func NewPoller(cache *Cache, interval time.Duration) *Poller {
	if !IsAllowedInterval(interval) {
		interval = DefaultInterval
	}
	return &Poller{
		cache:    cache,
		interval: interval,
		retune:   make(chan struct{}, 1),
		done:     make(chan struct{}),
	}
}

// Interval returns the current refetch interval.
func (p *Poller) Interval() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.interval
}

// SetInterval switches the refetch cadence. Intervals outside
// AllowedIntervals are ignored.
func (p *Poller) SetInterval(d time.Duration) {
	if !IsAllowedInterval(d) {
		logger.Warnf("[poller] ignoring unsupported interval %s", d)
		return
	}
	p.mu.Lock()
	p.interval = d
	p.mu.Unlock()
	p.kick()
}

// Pause stops invalidation ticks without stopping the loop.
func (p *Poller) Pause() {
	p.mu.Lock()
	p.paused = true
	p.mu.Unlock()
}

// Resume re-enables invalidation ticks.
func (p *Poller) Resume() {
	p.mu.Lock()
	p.paused = false
	p.mu.Unlock()
	p.kick()
}

// Stop ends the polling loop.
func (p *Poller) Stop() {
	p.once.Do(func() { close(p.done) })
}

func (p *Poller) kick() {
	select {
	case p.retune <- struct{}{}:
	default:
	}
}

// Start runs the polling loop until ctx is cancelled or Stop is called.
func (p *Poller) Start(ctx context.Context) {
	ticker := time.NewTicker(p.Interval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-p.done:
			return
		case <-p.retune:
			ticker.Reset(p.Interval())
		case <-ticker.C:
			p.tick()
		}
	}
}

// tick marks the live-data keys stale. Slow-moving catalogs (symbol list,
// symbol details) keep their long windows and are left alone.
func (p *Poller) tick() {
	p.mu.Lock()
	paused := p.paused
	p.mu.Unlock()
	if paused {
		return
	}

	n := 0
	n += p.cache.Invalidate(Keys.Stocks.Prices())
	n += p.cache.Invalidate(Keys.Stocks.Periods())
	n += p.cache.Invalidate(Keys.Orders.All())
	n += p.cache.Invalidate(Keys.Portfolio.All())
	n += p.cache.Invalidate(Keys.Cash.All())
	logger.Debugf("[poller] marked %d entries stale", n)
}
