package querycache

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/DenserMeerkat/fr-frontend-next/pkg/api"
	"github.com/DenserMeerkat/fr-frontend-next/pkg/logger"
	"github.com/DenserMeerkat/fr-frontend-next/pkg/view"
)

// ValidationError is a pre-flight rejection. No request was sent; the cache
// is untouched.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Mutations runs writes against the trading backend and applies the cache
// fan-out on success. Failed writes leave the cache exactly as it was.
type Mutations struct {
	cache  *Cache
	orders OrdersAPI
	cash   CashAPI
}

// NewMutations wires the mutation layer to a cache and the write-side clients.
func NewMutations(cache *Cache, orders OrdersAPI, cash CashAPI) *Mutations {
	return &Mutations{cache: cache, orders: orders, cash: cash}
}

// CreateOrder submits an order. Volume is clamped into the accepted range
// before submission. On success the order lists and portfolio are marked
// stale, and the created order is appended to the cached default list so it
// shows up before the refetch lands.
func (m *Mutations) CreateOrder(ctx context.Context, req api.CreateOrderRequest) (api.Order, error) {
	if req.StockTicker == "" {
		return api.Order{}, &ValidationError{Field: "stockTicker", Reason: "must not be empty"}
	}
	if req.BuyOrSell != api.OrderTypeBuy && req.BuyOrSell != api.OrderTypeSell {
		return api.Order{}, &ValidationError{Field: "buyOrSell", Reason: "must be BUY or SELL"}
	}

	req.StockTicker = api.NormalizeTicker(req.StockTicker)
	req.Volume = view.ClampVolume(req.Volume)

	order, err := m.orders.CreateOrder(ctx, req)
	if err != nil {
		return api.Order{}, err
	}

	m.cache.Invalidate(Keys.Orders.All())
	m.cache.Invalidate(Keys.Portfolio.All())

	m.cache.Update(Keys.Orders.List(api.OrderFilters{}), func(old interface{}, ok bool) interface{} {
		list, _ := old.([]api.Order)
		return append(list, order)
	})
	m.cache.Invalidate(Keys.Orders.ByTicker(order.StockTicker))

	logger.Infof("[mutations] order %d created: %s %s x%d", order.ID, order.BuyOrSell, order.StockTicker, order.Volume)
	return order, nil
}

// Deposit adds funds and marks the cached balance stale on success.
func (m *Mutations) Deposit(ctx context.Context, amount decimal.Decimal) (api.Cash, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return api.Cash{}, &ValidationError{Field: "amount", Reason: "must be greater than zero"}
	}

	cash, err := m.cash.Deposit(ctx, amount)
	if err != nil {
		return api.Cash{}, err
	}
	m.cache.Invalidate(Keys.Cash.Detail())
	return cash, nil
}

// Withdraw removes funds. Requests exceeding the last cached balance are
// rejected before any network call; the check is advisory and the backend
// remains the authority. Withdrawing the full balance is allowed.
func (m *Mutations) Withdraw(ctx context.Context, amount decimal.Decimal) (api.Cash, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return api.Cash{}, &ValidationError{Field: "amount", Reason: "must be greater than zero"}
	}
	if cached, ok := m.cache.Get(Keys.Cash.Detail()); ok {
		if balance, castOK := cached.(api.Cash); castOK && amount.GreaterThan(balance.Balance) {
			return api.Cash{}, &ValidationError{
				Field:  "amount",
				Reason: fmt.Sprintf("exceeds available balance %s", balance.Balance.String()),
			}
		}
	}

	cash, err := m.cash.Withdraw(ctx, amount)
	if err != nil {
		return api.Cash{}, err
	}
	m.cache.Invalidate(Keys.Cash.Detail())
	return cash, nil
}
