// Package notify keeps a bounded in-memory feed of dashboard notifications.
// Entries are transient; only the panel's open state outlives the process.
package notify

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/DenserMeerkat/fr-frontend-next/pkg/api"
	"github.com/DenserMeerkat/fr-frontend-next/pkg/view"
)

// Level classifies a notification for display.
type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Notification is one feed entry.
type Notification struct {
	ID        string
	Level     Level
	Message   string
	CreatedAt time.Time
}

// defaultCapacity bounds the feed; the oldest entries are dropped first.
const defaultCapacity = 50

// Center is the notification feed plus the order-status diff state.
type Center struct {
	mu       sync.Mutex
	items    []Notification
	capacity int
	statuses map[int64]api.OrderStatus
}

// NewCenter creates an empty feed.
func NewCenter() *Center {
	return &Center{
		capacity: defaultCapacity,
		statuses: make(map[int64]api.OrderStatus),
	}
}

// Push appends a notification and returns it.
func (c *Center) Push(level Level, message string) Notification {
	n := Notification{
		ID:        uuid.NewString(),
		Level:     level,
		Message:   message,
		CreatedAt: time.Now(),
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append(c.items, n)
	if len(c.items) > c.capacity {
		c.items = c.items[len(c.items)-c.capacity:]
	}
	return n
}

// List returns the feed newest first.
func (c *Center) List() []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Notification, len(c.items))
	for i, n := range c.items {
		out[len(c.items)-1-i] = n
	}
	return out
}

// Clear empties the feed.
func (c *Center) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
}

// Len reports the number of entries.
func (c *Center) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// ObserveOrders diffs the polled order list against the previous poll and
// emits one notification per status change. The first observation of an
// order only records it.
func (c *Center) ObserveOrders(orders []api.Order) []Notification {
	c.mu.Lock()
	type change struct {
		order api.Order
		from  api.OrderStatus
	}
	var changes []change
	for _, o := range orders {
		prev, seen := c.statuses[o.ID]
		c.statuses[o.ID] = o.StatusCode
		if seen && prev != o.StatusCode {
			changes = append(changes, change{order: o, from: prev})
		}
	}
	c.mu.Unlock()

	var out []Notification
	for _, ch := range changes {
		level := LevelInfo
		switch ch.order.StatusCode {
		case api.OrderStatusSuccess:
			level = LevelSuccess
		case api.OrderStatusFailed:
			level = LevelError
		}
		out = append(out, c.Push(level, orderChangeMessage(ch.order, ch.from)))
	}
	return out
}

func orderChangeMessage(o api.Order, from api.OrderStatus) string {
	return fmt.Sprintf("Order #%d %s: %s -> %s",
		o.ID, o.StockTicker, view.StatusLabel(from), view.StatusLabel(o.StatusCode))
}
