package api_test

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DenserMeerkat/fr-frontend-next/internal/mockfeed"
	"github.com/DenserMeerkat/fr-frontend-next/pkg/api"
	"github.com/DenserMeerkat/fr-frontend-next/pkg/transport"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	m.Run()
}

func newTestUpstream(t *testing.T) (*api.StocksClient, *api.OrdersClient, *api.PortfolioClient, *api.CashClient) {
	t.Helper()
	ts := httptest.NewServer(mockfeed.NewServer().Router())
	t.Cleanup(ts.Close)

	market := transport.NewMarketClient(ts.URL+"/api/stock", 5*time.Second)
	trading := transport.NewTradingClient(ts.URL+"/api/trading", 5*time.Second)
	return api.NewStocksClient(market), api.NewOrdersClient(trading),
		api.NewPortfolioClient(trading), api.NewCashClient(trading)
}

func TestGetSymbolList(t *testing.T) {
	stocks, _, _, _ := newTestUpstream(t)

	symbols, err := stocks.GetSymbolList(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, symbols)

	seen := make(map[string]bool)
	for _, s := range symbols {
		assert.NotEmpty(t, s.Symbol)
		assert.NotEmpty(t, s.CompanyName)
		assert.False(t, seen[s.Symbol], "duplicate symbol %s", s.Symbol)
		seen[s.Symbol] = true
	}
	assert.True(t, seen["aapl"])
}

func TestGetSymbolDetailsNotFound(t *testing.T) {
	stocks, _, _, _ := newTestUpstream(t)

	_, err := stocks.GetSymbolDetails(context.Background(), "nope")
	var nf *api.NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "nope", nf.Key)
}

func TestGetNRecentStockPrices(t *testing.T) {
	stocks, _, _, _ := newTestUpstream(t)

	prices, err := stocks.GetNRecentStockPrices(context.Background(), "aapl", 10)
	require.NoError(t, err)
	require.NotEmpty(t, prices)
	assert.LessOrEqual(t, len(prices), 10)

	for _, p := range prices {
		assert.Equal(t, "aapl", p.Symbol)
		assert.True(t, p.Price.IsPositive())
	}

	// Newest first.
	for i := 1; i < len(prices); i++ {
		assert.True(t, !prices[i].TimeStamp.After(prices[i-1].TimeStamp.Time),
			"prices out of order at %d", i)
	}
}

func TestGetLatestStockPrice(t *testing.T) {
	stocks, _, _, _ := newTestUpstream(t)

	price, err := stocks.GetLatestStockPrice(context.Background(), "msft")
	require.NoError(t, err)
	assert.Equal(t, "msft", price.Symbol)
	assert.True(t, price.Price.IsPositive())

	_, err = stocks.GetLatestStockPrice(context.Background(), "nope")
	var nf *api.NotFoundError
	assert.True(t, errors.As(err, &nf))
}

func TestGetPeriodStats(t *testing.T) {
	stocks, _, _, _ := newTestUpstream(t)

	stats, err := stocks.GetPeriodStats(context.Background(), "aapl", 0)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.PeriodNumber)
	assert.True(t, stats.MaxPrice.GreaterThanOrEqual(stats.MinPrice))
	assert.True(t, stats.OpeningPrice.GreaterThanOrEqual(stats.MinPrice))
	assert.True(t, stats.ClosingPrice.LessThanOrEqual(stats.MaxPrice))

	// Periods in the future have no data yet.
	_, err = stocks.GetPeriodStats(context.Background(), "aapl", 10_000)
	var nf *api.NotFoundError
	assert.True(t, errors.As(err, &nf))
}

func TestCreateAndListOrders(t *testing.T) {
	_, orders, _, _ := newTestUpstream(t)
	ctx := context.Background()

	created, err := orders.CreateOrder(ctx, api.CreateOrderRequest{
		StockTicker: "aapl",
		Volume:      10,
		BuyOrSell:   api.OrderTypeBuy,
		Price:       decimal.NewFromInt(100),
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "AAPL", created.StockTicker)
	assert.Equal(t, api.OrderStatusPending, created.StatusCode)
	assert.False(t, created.CreatedAt.IsZero())

	list, err := orders.GetOrders(ctx, api.OrderFilters{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, created.ID, list[0].ID)

	byTicker, err := orders.GetOrdersByTicker(ctx, "aapl")
	require.NoError(t, err)
	assert.Len(t, byTicker, 1)

	other, err := orders.GetOrdersByTicker(ctx, "msft")
	require.NoError(t, err)
	assert.Empty(t, other)

	got, err := orders.GetOrderByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
}

func TestCreateOrderUnknownTicker(t *testing.T) {
	_, orders, _, _ := newTestUpstream(t)

	_, err := orders.CreateOrder(context.Background(), api.CreateOrderRequest{
		StockTicker: "zzzz",
		Volume:      1,
		BuyOrSell:   api.OrderTypeBuy,
	})
	var re *transport.RequestError
	require.True(t, errors.As(err, &re))
	assert.Equal(t, 404, re.Status)
	assert.Contains(t, re.Message, "ZZZZ")
}

func TestCashDepositWithdraw(t *testing.T) {
	_, _, _, cash := newTestUpstream(t)
	ctx := context.Background()

	start, err := cash.GetCashBalance(ctx)
	require.NoError(t, err)

	after, err := cash.Deposit(ctx, decimal.NewFromInt(500))
	require.NoError(t, err)
	assert.True(t, after.Balance.Equal(start.Balance.Add(decimal.NewFromInt(500))))

	after, err = cash.Withdraw(ctx, decimal.NewFromInt(200))
	require.NoError(t, err)
	assert.True(t, after.Balance.Equal(start.Balance.Add(decimal.NewFromInt(300))))
}

func TestWithdrawInsufficientBalance(t *testing.T) {
	_, _, _, cash := newTestUpstream(t)

	_, err := cash.Withdraw(context.Background(), decimal.NewFromInt(1_000_000))
	var re *transport.RequestError
	require.True(t, errors.As(err, &re))
	assert.Equal(t, 400, re.Status)
	assert.Contains(t, re.Message, "insufficient")
}

func TestPortfolioEmptyAndSummary(t *testing.T) {
	_, _, portfolio, _ := newTestUpstream(t)
	ctx := context.Background()

	rows, err := portfolio.GetPortfolio(ctx)
	require.NoError(t, err)
	assert.Empty(t, rows)

	row, err := portfolio.GetPortfolioByTicker(ctx, "aapl")
	require.NoError(t, err)
	assert.Nil(t, row)

	summary, err := portfolio.GetPortfolioSummary(ctx)
	require.NoError(t, err)
	assert.Zero(t, summary.TotalStocks)
	assert.True(t, summary.TotalValue.IsZero())
}
