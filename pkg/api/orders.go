package api

import (
	"context"
	"fmt"

	"github.com/DenserMeerkat/fr-frontend-next/pkg/transport"
)

// envelope is the trading backend's response wrapper.
type envelope[T any] struct {
	Data    T      `json:"data"`
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// OrdersClient reads and creates orders on the trading backend.
type OrdersClient struct {
	t *transport.Client
}

// NewOrdersClient wraps a trading transport.
func NewOrdersClient(t *transport.Client) *OrdersClient {
	return &OrdersClient{t: t}
}

// GetOrders lists orders matching the filters.
func (c *OrdersClient) GetOrders(ctx context.Context, filters OrderFilters) ([]Order, error) {
	params := transport.Params{}
	if filters.StockTicker != "" {
		params["stockTicker"] = NormalizeTicker(filters.StockTicker)
	}
	if filters.BuyOrSell != "" {
		params["buyOrSell"] = string(filters.BuyOrSell)
	}
	if filters.StatusCode != nil {
		params["statusCode"] = int(*filters.StatusCode)
	}
	if filters.Page > 0 {
		params["page"] = filters.Page
	}
	if filters.Limit > 0 {
		params["limit"] = filters.Limit
	}

	var resp envelope[[]Order]
	if err := c.t.Get(ctx, "/orders", params, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// GetOrderByID fetches a single order.
func (c *OrdersClient) GetOrderByID(ctx context.Context, id int64) (Order, error) {
	var resp envelope[Order]
	if err := c.t.Get(ctx, fmt.Sprintf("/orders/%d", id), nil, &resp); err != nil {
		return Order{}, err
	}
	return resp.Data, nil
}

// GetOrdersByTicker is sugar over GetOrders with a ticker filter.
func (c *OrdersClient) GetOrdersByTicker(ctx context.Context, ticker string) ([]Order, error) {
	return c.GetOrders(ctx, OrderFilters{StockTicker: NormalizeTicker(ticker)})
}

// GetOrdersByType is sugar over GetOrders with a side filter.
func (c *OrdersClient) GetOrdersByType(ctx context.Context, orderType OrderType) ([]Order, error) {
	return c.GetOrders(ctx, OrderFilters{BuyOrSell: orderType})
}

// CreateOrder submits a new order and returns the server's record of it.
func (c *OrdersClient) CreateOrder(ctx context.Context, req CreateOrderRequest) (Order, error) {
	req.StockTicker = NormalizeTicker(req.StockTicker)
	var resp envelope[Order]
	if err := c.t.Post(ctx, "/orders", req, &resp); err != nil {
		return Order{}, err
	}
	return resp.Data, nil
}
