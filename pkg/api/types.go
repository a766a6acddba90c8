// Package api provides typed clients for the two upstream services: the
// StockFeed market-data API and the trading backend (orders, portfolio,
// cash). Entities are plain value records; nothing here holds state.
package api

import (
	"strings"

	"github.com/shopspring/decimal"
)

// OrderType is the side of an order.
type OrderType string

const (
	OrderTypeBuy  OrderType = "BUY"
	OrderTypeSell OrderType = "SELL"
)

// OrderStatus is the server-reported order state. Transitions happen
// upstream only: pending -> processing -> success | failed.
type OrderStatus int

const (
	OrderStatusPending    OrderStatus = 0
	OrderStatusProcessing OrderStatus = 1
	OrderStatusSuccess    OrderStatus = 2
	OrderStatusFailed     OrderStatus = 3
)

// StockSymbol identifies a tradable instrument on the feed.
type StockSymbol struct {
	Symbol      string `json:"symbol"`
	CompanyName string `json:"companyName"`
	SymbolID    int    `json:"symbolId"`
}

// StockPrice is one observed tick. Sequences fetched from the feed are
// ordered newest-first.
type StockPrice struct {
	Symbol       string          `json:"symbol"`
	CompanyName  string          `json:"companyName"`
	Price        decimal.Decimal `json:"price"`
	PeriodNumber int             `json:"periodNumber"`
	TimeStamp    FeedTime        `json:"timeStamp"`
}

// StockPeriod aggregates open/close/min/max over one trading period.
type StockPeriod struct {
	Symbol          string          `json:"symbol"`
	SymbolID        int             `json:"symbolId"`
	OpeningPrice    decimal.Decimal `json:"openingPrice"`
	ClosingPrice    decimal.Decimal `json:"closingPrice"`
	MaxPrice        decimal.Decimal `json:"maxPrice"`
	MinPrice        decimal.Decimal `json:"minPrice"`
	PeriodStartTime FeedTime        `json:"periodStartTime"`
	PeriodEndTime   FeedTime        `json:"periodEndTime"`
	PeriodNumber    int             `json:"periodNumber"`
}

// Order as reported by the trading backend.
type Order struct {
	ID          int64           `json:"id"`
	StockTicker string          `json:"stockTicker"`
	Price       decimal.Decimal `json:"price"`
	Volume      int             `json:"volume"`
	BuyOrSell   OrderType       `json:"buyOrSell"`
	StatusCode  OrderStatus     `json:"statusCode"`
	CreatedAt   TradeTime       `json:"createdAt"`
}

// Portfolio is one holding row; recomputed server-side after fills.
type Portfolio struct {
	StockTicker string          `json:"stockTicker"`
	Value       decimal.Decimal `json:"value"`
	Volume      int             `json:"volume"`
	TradeTime   TradeTime       `json:"tradeTime"`
}

// PortfolioSummary is derived client-side from the full holdings list.
type PortfolioSummary struct {
	TotalValue  decimal.Decimal
	TotalStocks int
	TopHoldings []Portfolio
}

// Cash is the singleton account balance.
type Cash struct {
	Balance decimal.Decimal `json:"balance"`
}

// CreateOrderRequest is the order-entry payload.
type CreateOrderRequest struct {
	StockTicker string          `json:"stockTicker"`
	Price       decimal.Decimal `json:"price"`
	Volume      int             `json:"volume"`
	BuyOrSell   OrderType       `json:"buyOrSell"`
}

// OrderFilters narrows order-list queries. Zero values are omitted from the
// request and from cache keys.
type OrderFilters struct {
	StockTicker string       `json:"stockTicker,omitempty"`
	BuyOrSell   OrderType    `json:"buyOrSell,omitempty"`
	StatusCode  *OrderStatus `json:"statusCode,omitempty"`
	Page        int          `json:"page,omitempty"`
	Limit       int          `json:"limit,omitempty"`
}

// NormalizeTicker maps a ticker to its canonical upper-case form. Tickers
// compare case-insensitively everywhere but display upper-case.
func NormalizeTicker(ticker string) string {
	return strings.ToUpper(strings.TrimSpace(ticker))
}
