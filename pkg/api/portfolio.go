package api

import (
	"context"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/DenserMeerkat/fr-frontend-next/pkg/transport"
)

// topHoldingsCount is how many rows GetPortfolioSummary keeps.
const topHoldingsCount = 5

// PortfolioClient reads holdings from the trading backend. The backend only
// exposes the full list; per-ticker lookup and the summary are derived here.
type PortfolioClient struct {
	t *transport.Client
}

// NewPortfolioClient wraps a trading transport.
func NewPortfolioClient(t *transport.Client) *PortfolioClient {
	return &PortfolioClient{t: t}
}

// GetPortfolio lists all holdings.
func (c *PortfolioClient) GetPortfolio(ctx context.Context) ([]Portfolio, error) {
	var resp envelope[[]Portfolio]
	if err := c.t.Get(ctx, "/portfolio", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// GetPortfolioByTicker filters the full list client-side; there is no
// dedicated upstream endpoint. Returns nil when the ticker is not held.
func (c *PortfolioClient) GetPortfolioByTicker(ctx context.Context, ticker string) (*Portfolio, error) {
	rows, err := c.GetPortfolio(ctx)
	if err != nil {
		return nil, err
	}
	for i := range rows {
		if strings.EqualFold(rows[i].StockTicker, ticker) {
			return &rows[i], nil
		}
	}
	return nil, nil
}

// GetPortfolioSummary aggregates total value, holding count, and the top
// holdings by value.
func (c *PortfolioClient) GetPortfolioSummary(ctx context.Context) (PortfolioSummary, error) {
	rows, err := c.GetPortfolio(ctx)
	if err != nil {
		return PortfolioSummary{}, err
	}

	total := decimal.Zero
	for _, row := range rows {
		total = total.Add(row.Value)
	}

	sorted := make([]Portfolio, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Value.GreaterThan(sorted[j].Value)
	})
	if len(sorted) > topHoldingsCount {
		sorted = sorted[:topHoldingsCount]
	}

	return PortfolioSummary{
		TotalValue:  total,
		TotalStocks: len(rows),
		TopHoldings: sorted,
	}, nil
}
