package querycache

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/DenserMeerkat/fr-frontend-next/pkg/api"
	"github.com/DenserMeerkat/fr-frontend-next/pkg/logger"
)

// ErrDisabled marks a read whose required parameter is absent. It is a
// guard, not a failure: the caller simply has nothing to ask for yet.
var ErrDisabled = errors.New("query disabled: required parameter missing")

// Staleness windows per query, matching how live each view needs to be.
const (
	staleSymbolList   = time.Hour
	staleSymbolDetail = 30 * time.Minute
	staleLatestPrice  = 10 * time.Second
	staleRecentPrices = 30 * time.Second
	stalePricesAtTime = 10 * time.Minute
	stalePeriodStats  = 5 * time.Minute
	staleOrders       = 0 // order lists always refetch on access
	staleOrderDetail  = 2 * time.Minute
	stalePortfolio    = time.Minute
	staleSummary      = 30 * time.Second
	staleCash         = time.Minute
)

// backgroundRefreshTimeout bounds the detached refetch of a stale entry.
const backgroundRefreshTimeout = 30 * time.Second

// StocksAPI is the slice of the stocks client the query layer needs.
type StocksAPI interface {
	GetSymbolList(ctx context.Context) ([]api.StockSymbol, error)
	GetSymbolDetails(ctx context.Context, symbol string) (api.StockSymbol, error)
	GetLatestStockPrice(ctx context.Context, symbol string) (api.StockPrice, error)
	GetNRecentStockPrices(ctx context.Context, symbol string, count int) ([]api.StockPrice, error)
	GetPeriodStats(ctx context.Context, symbol string, periodNumber int) (api.StockPeriod, error)
	GetPricesAtTime(ctx context.Context, symbol string, count int, at time.Time) ([]api.StockPrice, error)
}

// OrdersAPI is the slice of the orders client the query layer needs.
type OrdersAPI interface {
	GetOrders(ctx context.Context, filters api.OrderFilters) ([]api.Order, error)
	GetOrderByID(ctx context.Context, id int64) (api.Order, error)
	CreateOrder(ctx context.Context, req api.CreateOrderRequest) (api.Order, error)
}

// PortfolioAPI is the slice of the portfolio client the query layer needs.
type PortfolioAPI interface {
	GetPortfolio(ctx context.Context) ([]api.Portfolio, error)
	GetPortfolioByTicker(ctx context.Context, ticker string) (*api.Portfolio, error)
	GetPortfolioSummary(ctx context.Context) (api.PortfolioSummary, error)
}

// CashAPI is the slice of the cash client the query layer needs.
type CashAPI interface {
	GetCashBalance(ctx context.Context) (api.Cash, error)
	Deposit(ctx context.Context, amount decimal.Decimal) (api.Cash, error)
	Withdraw(ctx context.Context, amount decimal.Decimal) (api.Cash, error)
}

// Queries serves reads through the cache. Fresh entries are returned as-is;
// stale entries are returned immediately while a background refetch runs;
// misses fetch synchronously.
type Queries struct {
	cache     *Cache
	stocks    StocksAPI
	orders    OrdersAPI
	portfolio PortfolioAPI
	cash      CashAPI

	refreshMu  sync.Mutex
	refreshing map[string]struct{}
}

// NewQueries wires the query layer to a cache and the domain clients.
func NewQueries(cache *Cache, stocks StocksAPI, orders OrdersAPI, portfolio PortfolioAPI, cash CashAPI) *Queries {
	return &Queries{
		cache:      cache,
		stocks:     stocks,
		orders:     orders,
		portfolio:  portfolio,
		cash:       cash,
		refreshing: make(map[string]struct{}),
	}
}

// Cache exposes the underlying cache for mutations and tests.
func (q *Queries) Cache() *Cache { return q.cache }

// fetch implements stale-while-revalidate for one key.
func fetch[T any](ctx context.Context, q *Queries, key Key, staleAfter time.Duration, fn func(context.Context) (T, error)) (T, error) {
	if v, ok := q.cache.Get(key); ok {
		if cached, castOK := v.(T); castOK {
			if !q.cache.IsStale(key) {
				return cached, nil
			}
			refreshAsync(q, key, staleAfter, fn)
			return cached, nil
		}
	}

	val, err := fn(ctx)
	if err != nil {
		var zero T
		return zero, err
	}
	q.cache.Set(key, val, staleAfter)
	return val, nil
}

// refreshAsync refetches a stale entry off the caller's path. At most one
// refresh per key runs at a time; the result lands only under its own key,
// so reads under other parameters are never clobbered.
func refreshAsync[T any](q *Queries, key Key, staleAfter time.Duration, fn func(context.Context) (T, error)) {
	ks := key.String()
	q.refreshMu.Lock()
	if _, busy := q.refreshing[ks]; busy {
		q.refreshMu.Unlock()
		return
	}
	q.refreshing[ks] = struct{}{}
	q.refreshMu.Unlock()

	go func() {
		defer func() {
			q.refreshMu.Lock()
			delete(q.refreshing, ks)
			q.refreshMu.Unlock()
		}()

		ctx, cancel := context.WithTimeout(context.Background(), backgroundRefreshTimeout)
		defer cancel()

		val, err := fn(ctx)
		if err != nil {
			logger.Debugf("[querycache] background refresh %s failed: %v", ks, err)
			return
		}
		q.cache.Set(key, val, staleAfter)
	}()
}

// SymbolList returns the symbol catalog.
func (q *Queries) SymbolList(ctx context.Context) ([]api.StockSymbol, error) {
	return fetch(ctx, q, Keys.Stocks.SymbolList(), staleSymbolList, q.stocks.GetSymbolList)
}

// SymbolDetails returns details for one symbol.
func (q *Queries) SymbolDetails(ctx context.Context, symbol string) (api.StockSymbol, error) {
	if symbol == "" {
		return api.StockSymbol{}, ErrDisabled
	}
	return fetch(ctx, q, Keys.Stocks.SymbolDetail(symbol), staleSymbolDetail,
		func(ctx context.Context) (api.StockSymbol, error) {
			return q.stocks.GetSymbolDetails(ctx, symbol)
		})
}

// LatestPrice returns the most recent tick for a symbol.
func (q *Queries) LatestPrice(ctx context.Context, symbol string) (api.StockPrice, error) {
	if symbol == "" {
		return api.StockPrice{}, ErrDisabled
	}
	return fetch(ctx, q, Keys.Stocks.LatestPrice(symbol), staleLatestPrice,
		func(ctx context.Context) (api.StockPrice, error) {
			return q.stocks.GetLatestStockPrice(ctx, symbol)
		})
}

// RecentPrices returns up to count recent ticks.
func (q *Queries) RecentPrices(ctx context.Context, symbol string, count int) ([]api.StockPrice, error) {
	if symbol == "" || count <= 0 {
		return nil, ErrDisabled
	}
	return fetch(ctx, q, Keys.Stocks.RecentPrices(symbol, count), staleRecentPrices,
		func(ctx context.Context) ([]api.StockPrice, error) {
			return q.stocks.GetNRecentStockPrices(ctx, symbol, count)
		})
}

// PricesAtTime returns ticks ending at a wall-clock time.
func (q *Queries) PricesAtTime(ctx context.Context, symbol string, count int, at time.Time) ([]api.StockPrice, error) {
	if symbol == "" || count <= 0 || at.IsZero() {
		return nil, ErrDisabled
	}
	clock := at.Format("15:04:05")
	return fetch(ctx, q, Keys.Stocks.PricesAtTime(symbol, count, clock), stalePricesAtTime,
		func(ctx context.Context) ([]api.StockPrice, error) {
			return q.stocks.GetPricesAtTime(ctx, symbol, count, at)
		})
}

// PeriodStats returns the aggregate for one (symbol, period).
func (q *Queries) PeriodStats(ctx context.Context, symbol string, periodNumber int) (api.StockPeriod, error) {
	if symbol == "" || periodNumber == 0 {
		return api.StockPeriod{}, ErrDisabled
	}
	return fetch(ctx, q, Keys.Stocks.PeriodStats(symbol, periodNumber), stalePeriodStats,
		func(ctx context.Context) (api.StockPeriod, error) {
			return q.stocks.GetPeriodStats(ctx, symbol, periodNumber)
		})
}

// Orders lists orders matching the filters.
func (q *Queries) Orders(ctx context.Context, filters api.OrderFilters) ([]api.Order, error) {
	return fetch(ctx, q, Keys.Orders.List(filters), staleOrders,
		func(ctx context.Context) ([]api.Order, error) {
			return q.orders.GetOrders(ctx, filters)
		})
}

// OrderByID returns one order.
func (q *Queries) OrderByID(ctx context.Context, id int64) (api.Order, error) {
	if id == 0 {
		return api.Order{}, ErrDisabled
	}
	return fetch(ctx, q, Keys.Orders.Detail(id), staleOrderDetail,
		func(ctx context.Context) (api.Order, error) {
			return q.orders.GetOrderByID(ctx, id)
		})
}

// OrdersByTicker lists orders scoped to one ticker.
func (q *Queries) OrdersByTicker(ctx context.Context, ticker string) ([]api.Order, error) {
	if ticker == "" {
		return nil, ErrDisabled
	}
	return q.Orders(ctx, api.OrderFilters{StockTicker: api.NormalizeTicker(ticker)})
}

// PortfolioList returns all holdings.
func (q *Queries) PortfolioList(ctx context.Context) ([]api.Portfolio, error) {
	return fetch(ctx, q, Keys.Portfolio.List(), stalePortfolio, q.portfolio.GetPortfolio)
}

// PortfolioByTicker returns one holding, nil when the ticker is not held.
func (q *Queries) PortfolioByTicker(ctx context.Context, ticker string) (*api.Portfolio, error) {
	if ticker == "" {
		return nil, ErrDisabled
	}
	return fetch(ctx, q, Keys.Portfolio.Detail(ticker), stalePortfolio,
		func(ctx context.Context) (*api.Portfolio, error) {
			return q.portfolio.GetPortfolioByTicker(ctx, ticker)
		})
}

// PortfolioSummary returns the derived aggregate.
func (q *Queries) PortfolioSummary(ctx context.Context) (api.PortfolioSummary, error) {
	return fetch(ctx, q, Keys.Portfolio.Summary(), staleSummary, q.portfolio.GetPortfolioSummary)
}

// CashBalance returns the account balance.
func (q *Queries) CashBalance(ctx context.Context) (api.Cash, error) {
	return fetch(ctx, q, Keys.Cash.Detail(), staleCash, q.cash.GetCashBalance)
}
