package notify

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DenserMeerkat/fr-frontend-next/pkg/api"
)

func TestPushAndListNewestFirst(t *testing.T) {
	c := NewCenter()
	c.Push(LevelInfo, "first")
	c.Push(LevelSuccess, "second")

	list := c.List()
	require.Len(t, list, 2)
	assert.Equal(t, "second", list[0].Message)
	assert.Equal(t, "first", list[1].Message)
	assert.NotEmpty(t, list[0].ID)
	assert.False(t, list[0].CreatedAt.IsZero())
}

func TestCapacityDropsOldest(t *testing.T) {
	c := NewCenter()
	for i := 0; i < defaultCapacity+5; i++ {
		c.Push(LevelInfo, fmt.Sprintf("msg %d", i))
	}

	list := c.List()
	require.Len(t, list, defaultCapacity)
	assert.Equal(t, fmt.Sprintf("msg %d", defaultCapacity+4), list[0].Message)
	assert.Equal(t, "msg 5", list[len(list)-1].Message)
}

func TestClear(t *testing.T) {
	c := NewCenter()
	c.Push(LevelError, "boom")
	require.Equal(t, 1, c.Len())

	c.Clear()
	assert.Zero(t, c.Len())
	assert.Empty(t, c.List())
}

func TestObserveOrdersFirstSightIsSilent(t *testing.T) {
	c := NewCenter()
	out := c.ObserveOrders([]api.Order{
		{ID: 1, StockTicker: "AAPL", StatusCode: api.OrderStatusPending},
	})
	assert.Empty(t, out)
	assert.Zero(t, c.Len())
}

func TestObserveOrdersEmitsOnStatusChange(t *testing.T) {
	c := NewCenter()
	c.ObserveOrders([]api.Order{
		{ID: 1, StockTicker: "AAPL", StatusCode: api.OrderStatusPending},
		{ID: 2, StockTicker: "MSFT", StatusCode: api.OrderStatusPending},
	})

	out := c.ObserveOrders([]api.Order{
		{ID: 1, StockTicker: "AAPL", StatusCode: api.OrderStatusSuccess},
		{ID: 2, StockTicker: "MSFT", StatusCode: api.OrderStatusPending},
	})
	require.Len(t, out, 1)
	assert.Equal(t, LevelSuccess, out[0].Level)
	assert.Equal(t, "Order #1 AAPL: Pending -> Success", out[0].Message)

	// Unchanged orders stay quiet on later polls.
	out = c.ObserveOrders([]api.Order{
		{ID: 1, StockTicker: "AAPL", StatusCode: api.OrderStatusSuccess},
	})
	assert.Empty(t, out)
}

func TestObserveOrdersLevels(t *testing.T) {
	c := NewCenter()
	c.ObserveOrders([]api.Order{
		{ID: 1, StockTicker: "AAPL", StatusCode: api.OrderStatusPending},
		{ID: 2, StockTicker: "TSLA", StatusCode: api.OrderStatusPending},
		{ID: 3, StockTicker: "NVDA", StatusCode: api.OrderStatusPending},
	})

	out := c.ObserveOrders([]api.Order{
		{ID: 1, StockTicker: "AAPL", StatusCode: api.OrderStatusProcessing},
		{ID: 2, StockTicker: "TSLA", StatusCode: api.OrderStatusFailed},
		{ID: 3, StockTicker: "NVDA", StatusCode: api.OrderStatusSuccess},
	})
	require.Len(t, out, 3)

	levels := map[string]Level{}
	for _, n := range out {
		levels[n.Message] = n.Level
	}
	assert.Equal(t, LevelInfo, levels["Order #1 AAPL: Pending -> Processing"])
	assert.Equal(t, LevelError, levels["Order #2 TSLA: Pending -> Failed"])
	assert.Equal(t, LevelSuccess, levels["Order #3 NVDA: Pending -> Success"])
}
