package querycache

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/DenserMeerkat/fr-frontend-next/pkg/api"
)

// mockStocks counts calls and returns canned data or an injected error.
type mockStocks struct {
	mu    sync.Mutex
	calls map[string]int
	err   error

	symbols []api.StockSymbol
	price   api.StockPrice
	prices  []api.StockPrice
	period  api.StockPeriod
}

func newMockStocks() *mockStocks {
	return &mockStocks{calls: make(map[string]int)}
}

func (m *mockStocks) record(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls[name]++
}

func (m *mockStocks) callCount(name string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[name]
}

func (m *mockStocks) totalCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.calls {
		n += c
	}
	return n
}

func (m *mockStocks) GetSymbolList(ctx context.Context) ([]api.StockSymbol, error) {
	m.record("GetSymbolList")
	return m.symbols, m.err
}

func (m *mockStocks) GetSymbolDetails(ctx context.Context, symbol string) (api.StockSymbol, error) {
	m.record("GetSymbolDetails")
	if len(m.symbols) > 0 {
		return m.symbols[0], m.err
	}
	return api.StockSymbol{}, m.err
}

func (m *mockStocks) GetLatestStockPrice(ctx context.Context, symbol string) (api.StockPrice, error) {
	m.record("GetLatestStockPrice")
	return m.price, m.err
}

func (m *mockStocks) GetNRecentStockPrices(ctx context.Context, symbol string, count int) ([]api.StockPrice, error) {
	m.record("GetNRecentStockPrices")
	return m.prices, m.err
}

func (m *mockStocks) GetPeriodStats(ctx context.Context, symbol string, periodNumber int) (api.StockPeriod, error) {
	m.record("GetPeriodStats")
	return m.period, m.err
}

func (m *mockStocks) GetPricesAtTime(ctx context.Context, symbol string, count int, at time.Time) ([]api.StockPrice, error) {
	m.record("GetPricesAtTime")
	return m.prices, m.err
}

// mockOrders counts calls and can fail on demand.
type mockOrders struct {
	mu      sync.Mutex
	calls   map[string]int
	err     error
	orders  []api.Order
	created api.Order
}

func newMockOrders() *mockOrders {
	return &mockOrders{calls: make(map[string]int)}
}

func (m *mockOrders) record(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls[name]++
}

func (m *mockOrders) callCount(name string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[name]
}

func (m *mockOrders) GetOrders(ctx context.Context, filters api.OrderFilters) ([]api.Order, error) {
	m.record("GetOrders")
	return m.orders, m.err
}

func (m *mockOrders) GetOrderByID(ctx context.Context, id int64) (api.Order, error) {
	m.record("GetOrderByID")
	for _, o := range m.orders {
		if o.ID == id {
			return o, m.err
		}
	}
	return api.Order{}, m.err
}

func (m *mockOrders) CreateOrder(ctx context.Context, req api.CreateOrderRequest) (api.Order, error) {
	m.record("CreateOrder")
	if m.err != nil {
		return api.Order{}, m.err
	}
	created := m.created
	if created.ID == 0 {
		created = api.Order{
			ID:          1,
			StockTicker: api.NormalizeTicker(req.StockTicker),
			Price:       req.Price,
			Volume:      req.Volume,
			BuyOrSell:   req.BuyOrSell,
		}
	}
	return created, nil
}

// mockPortfolio serves fixed holdings.
type mockPortfolio struct {
	mu       sync.Mutex
	calls    map[string]int
	err      error
	holdings []api.Portfolio
	summary  api.PortfolioSummary
}

func newMockPortfolio() *mockPortfolio {
	return &mockPortfolio{calls: make(map[string]int)}
}

func (m *mockPortfolio) record(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls[name]++
}

func (m *mockPortfolio) callCount(name string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[name]
}

func (m *mockPortfolio) GetPortfolio(ctx context.Context) ([]api.Portfolio, error) {
	m.record("GetPortfolio")
	return m.holdings, m.err
}

func (m *mockPortfolio) GetPortfolioByTicker(ctx context.Context, ticker string) (*api.Portfolio, error) {
	m.record("GetPortfolioByTicker")
	for i := range m.holdings {
		if m.holdings[i].StockTicker == api.NormalizeTicker(ticker) {
			return &m.holdings[i], m.err
		}
	}
	return nil, m.err
}

func (m *mockPortfolio) GetPortfolioSummary(ctx context.Context) (api.PortfolioSummary, error) {
	m.record("GetPortfolioSummary")
	return m.summary, m.err
}

// mockCash counts calls so tests can assert no network was touched.
type mockCash struct {
	mu      sync.Mutex
	calls   map[string]int
	err     error
	balance decimal.Decimal
}

func newMockCash(balance decimal.Decimal) *mockCash {
	return &mockCash{calls: make(map[string]int), balance: balance}
}

func (m *mockCash) record(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls[name]++
}

func (m *mockCash) callCount(name string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[name]
}

func (m *mockCash) totalCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.calls {
		n += c
	}
	return n
}

func (m *mockCash) GetCashBalance(ctx context.Context) (api.Cash, error) {
	m.record("GetCashBalance")
	return api.Cash{Balance: m.balance}, m.err
}

func (m *mockCash) Deposit(ctx context.Context, amount decimal.Decimal) (api.Cash, error) {
	m.record("Deposit")
	if m.err != nil {
		return api.Cash{}, m.err
	}
	m.mu.Lock()
	m.balance = m.balance.Add(amount)
	balance := m.balance
	m.mu.Unlock()
	return api.Cash{Balance: balance}, nil
}

func (m *mockCash) Withdraw(ctx context.Context, amount decimal.Decimal) (api.Cash, error) {
	m.record("Withdraw")
	if m.err != nil {
		return api.Cash{}, m.err
	}
	m.mu.Lock()
	m.balance = m.balance.Sub(amount)
	balance := m.balance
	m.mu.Unlock()
	return api.Cash{Balance: balance}, nil
}
