package querycache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsAllowedInterval(t *testing.T) {
	for _, d := range AllowedIntervals {
		assert.True(t, IsAllowedInterval(d))
	}
	assert.False(t, IsAllowedInterval(0))
	assert.False(t, IsAllowedInterval(2*time.Second))
	assert.False(t, IsAllowedInterval(time.Hour))
}

func TestNewPollerRejectsUnknownInterval(t *testing.T) {
	cache := NewCache()
	defer cache.Close()

	p := NewPoller(cache, 7*time.Second)
	assert.Equal(t, DefaultInterval, p.Interval())
}

func TestSetIntervalIgnoresUnknown(t *testing.T) {
	cache := NewCache()
	defer cache.Close()

	p := NewPoller(cache, time.Second)
	p.SetInterval(42 * time.Second)
	assert.Equal(t, time.Second, p.Interval())

	p.SetInterval(5 * time.Second)
	assert.Equal(t, 5*time.Second, p.Interval())
}

func TestPollerTickMarksLiveDataStale(t *testing.T) {
	cache := NewCache()
	defer cache.Close()

	cache.Set(Keys.Stocks.LatestPrice("aapl"), 1, time.Hour)
	cache.Set(Keys.Cash.Detail(), 2, time.Hour)
	cache.Set(Keys.Stocks.SymbolList(), 3, time.Hour)

	p := NewPoller(cache, time.Second)
	p.tick()

	assert.True(t, cache.IsStale(Keys.Stocks.LatestPrice("aapl")))
	assert.True(t, cache.IsStale(Keys.Cash.Detail()))
	assert.False(t, cache.IsStale(Keys.Stocks.SymbolList()), "catalog keeps its long window")
}

func TestPollerPauseSkipsTicks(t *testing.T) {
	cache := NewCache()
	defer cache.Close()
	cache.Set(Keys.Cash.Detail(), 1, time.Hour)

	p := NewPoller(cache, time.Second)
	p.Pause()
	p.tick()
	assert.False(t, cache.IsStale(Keys.Cash.Detail()))

	p.Resume()
	p.tick()
	assert.True(t, cache.IsStale(Keys.Cash.Detail()))
}

func TestPollerStopsOnContextCancel(t *testing.T) {
	cache := NewCache()
	defer cache.Close()

	p := NewPoller(cache, time.Second)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		p.Start(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("poller did not stop after context cancellation")
	}
}
