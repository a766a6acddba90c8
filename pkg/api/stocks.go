package api

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/DenserMeerkat/fr-frontend-next/pkg/transport"
)

// StocksClient reads symbols, prices and period aggregates from the
// StockFeed service.
type StocksClient struct {
	t *transport.Client
}

// NewStocksClient wraps a market-data transport.
func NewStocksClient(t *transport.Client) *StocksClient {
	return &StocksClient{t: t}
}

// GetSymbolList fetches the full symbol catalog.
func (c *StocksClient) GetSymbolList(ctx context.Context) ([]StockSymbol, error) {
	var symbols []StockSymbol
	if err := c.t.Get(ctx, "/StockFeed/GetSymbolList", nil, &symbols); err != nil {
		return nil, err
	}
	return symbols, nil
}

// GetSymbolDetails fetches details for one symbol. The feed answers with a
// list; an empty list means the symbol does not exist.
func (c *StocksClient) GetSymbolDetails(ctx context.Context, symbol string) (StockSymbol, error) {
	var symbols []StockSymbol
	path := fmt.Sprintf("/StockFeed/GetSymbolDetails/%s", url.PathEscape(symbol))
	if err := c.t.Get(ctx, path, nil, &symbols); err != nil {
		return StockSymbol{}, err
	}
	if len(symbols) == 0 {
		return StockSymbol{}, &NotFoundError{What: "symbol details", Key: symbol}
	}
	return symbols[0], nil
}

// GetLatestStockPrice returns the most recent tick for a symbol. The feed
// returns prices newest-first, so the first element is the latest.
func (c *StocksClient) GetLatestStockPrice(ctx context.Context, symbol string) (StockPrice, error) {
	var prices []StockPrice
	path := fmt.Sprintf("/StockFeed/GetStockPricesForSymbol/%s", url.PathEscape(symbol))
	if err := c.t.Get(ctx, path, nil, &prices); err != nil {
		return StockPrice{}, err
	}
	if len(prices) == 0 {
		return StockPrice{}, &NotFoundError{What: "price data", Key: symbol}
	}
	return prices[0], nil
}

// GetNRecentStockPrices returns up to count recent ticks, newest-first.
func (c *StocksClient) GetNRecentStockPrices(ctx context.Context, symbol string, count int) ([]StockPrice, error) {
	var prices []StockPrice
	path := fmt.Sprintf("/StockFeed/GetStockPricesForSymbol/%s", url.PathEscape(symbol))
	params := transport.Params{"HowManyValues": count}
	if err := c.t.Get(ctx, path, params, &prices); err != nil {
		return nil, err
	}
	return prices, nil
}

// GetPeriodStats returns the open/close/min/max aggregate for one period.
func (c *StocksClient) GetPeriodStats(ctx context.Context, symbol string, periodNumber int) (StockPeriod, error) {
	var periods []StockPeriod
	path := fmt.Sprintf("/StockFeed/GetOpenCloseMinMaxForSymbolAndPeriodNumber/%s", url.PathEscape(symbol))
	params := transport.Params{"PeriodNumber": periodNumber}
	if err := c.t.Get(ctx, path, params, &periods); err != nil {
		return StockPeriod{}, err
	}
	if len(periods) == 0 {
		return StockPeriod{}, &NotFoundError{What: "period data", Key: fmt.Sprintf("%s period %d", symbol, periodNumber)}
	}
	return periods[0], nil
}

// GetPricesAtTime returns up to count ticks ending at the given wall-clock
// time. The transport serializes WhatTime as HH:MM:SS.
func (c *StocksClient) GetPricesAtTime(ctx context.Context, symbol string, count int, at time.Time) ([]StockPrice, error) {
	var prices []StockPrice
	path := fmt.Sprintf("/StockFeed/GetStockPricesForSymbol/%s", url.PathEscape(symbol))
	params := transport.Params{"HowManyValues": count, "WhatTime": at}
	if err := c.t.Get(ctx, path, params, &prices); err != nil {
		return nil, err
	}
	return prices, nil
}
