// Package querycache keeps fetched upstream data in an in-memory cache
// addressed by hierarchical keys, refreshes it according to per-query
// staleness windows, and applies the write-path invalidation fan-out.
package querycache

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/DenserMeerkat/fr-frontend-next/pkg/api"
)

// Key is an ordered sequence of segments. Child keys append to their
// parent's segments, so invalidating a parent key covers every key nested
// beneath it.
type Key []string

// String renders the key for map addressing and logs.
func (k Key) String() string {
	return strings.Join(k, "/")
}

// HasPrefix reports whether k sits at or below prefix in the hierarchy.
func (k Key) HasPrefix(prefix Key) bool {
	if len(prefix) > len(k) {
		return false
	}
	for i, seg := range prefix {
		if k[i] != seg {
			return false
		}
	}
	return true
}

func (k Key) child(segments ...string) Key {
	out := make(Key, 0, len(k)+len(segments))
	out = append(out, k...)
	out = append(out, segments...)
	return out
}

// filterSegment encodes a filter struct canonically. encoding/json emits
// struct fields in declaration order, so structurally equal filters always
// produce equal segments.
func filterSegment(v interface{}) string {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%+v", v)
	}
	return string(b)
}

func symbolSegment(symbol string) string {
	return strings.ToLower(strings.TrimSpace(symbol))
}

// CashKeys addresses the cash domain.
type CashKeys struct{}

func (CashKeys) All() Key      { return Key{"cash"} }
func (c CashKeys) Detail() Key { return c.All().child("detail", "balance") }

// OrderKeys addresses the orders domain.
type OrderKeys struct{}

func (OrderKeys) All() Key     { return Key{"orders"} }
func (o OrderKeys) Lists() Key { return o.All().child("list") }
func (o OrderKeys) List(filters api.OrderFilters) Key {
	filters.StockTicker = api.NormalizeTicker(filters.StockTicker)
	return o.Lists().child(filterSegment(filters))
}
func (o OrderKeys) Details() Key        { return o.All().child("detail") }
func (o OrderKeys) Detail(id int64) Key { return o.Details().child(fmt.Sprintf("%d", id)) }

// ByTicker addresses the same entry as List with only a ticker filter.
func (o OrderKeys) ByTicker(ticker string) Key {
	return o.List(api.OrderFilters{StockTicker: api.NormalizeTicker(ticker)})
}

func (o OrderKeys) ByType(orderType api.OrderType) Key {
	return o.List(api.OrderFilters{BuyOrSell: orderType})
}

// PortfolioKeys addresses the portfolio domain.
type PortfolioKeys struct{}

func (PortfolioKeys) All() Key       { return Key{"portfolio"} }
func (p PortfolioKeys) Lists() Key   { return p.All().child("list") }
func (p PortfolioKeys) List() Key    { return p.Lists() }
func (p PortfolioKeys) Details() Key { return p.All().child("detail") }
func (p PortfolioKeys) Detail(ticker string) Key {
	return p.Details().child(api.NormalizeTicker(ticker))
}
func (p PortfolioKeys) Summaries() Key { return p.All().child("summary") }
func (p PortfolioKeys) Summary() Key   { return p.Summaries() }

// StockKeys addresses the stocks domain: symbols, prices, period stats.
type StockKeys struct{}

func (StockKeys) All() Key          { return Key{"stocks"} }
func (s StockKeys) Symbols() Key    { return s.All().child("symbols") }
func (s StockKeys) SymbolList() Key { return s.Symbols().child("list") }
func (s StockKeys) SymbolDetail(symbol string) Key {
	return s.Symbols().child("details", symbolSegment(symbol))
}

func (s StockKeys) Prices() Key { return s.All().child("prices") }
func (s StockKeys) LatestPrice(symbol string) Key {
	return s.Prices().child("latest", symbolSegment(symbol))
}
func (s StockKeys) RecentPrices(symbol string, count int) Key {
	return s.Prices().child("recent", symbolSegment(symbol), fmt.Sprintf("%d", count))
}
func (s StockKeys) PricesAtTime(symbol string, count int, clock string) Key {
	return s.Prices().child("at-time", symbolSegment(symbol), fmt.Sprintf("%d", count), clock)
}

func (s StockKeys) Periods() Key { return s.All().child("periods") }
func (s StockKeys) PeriodStats(symbol string, periodNumber int) Key {
	return s.Periods().child("stats", symbolSegment(symbol), fmt.Sprintf("%d", periodNumber))
}

// Keys groups the four domain namespaces.
var Keys = struct {
	Cash      CashKeys
	Orders    OrderKeys
	Portfolio PortfolioKeys
	Stocks    StockKeys
}{}
