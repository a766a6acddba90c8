package querycache

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/DenserMeerkat/fr-frontend-next/pkg/api"
)

func TestKeyHasPrefix(t *testing.T) {
	tests := []struct {
		name   string
		key    Key
		prefix Key
		want   bool
	}{
		{"exact match", Key{"orders", "list"}, Key{"orders", "list"}, true},
		{"parent prefix", Key{"orders", "list", "x"}, Key{"orders"}, true},
		{"root prefix", Key{"cash", "detail"}, Key{}, true},
		{"different domain", Key{"orders", "list"}, Key{"portfolio"}, false},
		{"prefix longer than key", Key{"orders"}, Key{"orders", "list"}, false},
		{"sibling segment", Key{"orders", "detail", "1"}, Key{"orders", "list"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.key.HasPrefix(tt.prefix))
		})
	}
}

func TestOrderListKeyDeterministic(t *testing.T) {
	status := api.OrderStatusPending
	a := Keys.Orders.List(api.OrderFilters{StockTicker: "aapl", StatusCode: &status, Limit: 10})
	b := Keys.Orders.List(api.OrderFilters{StockTicker: "AAPL", StatusCode: &status, Limit: 10})
	assert.Equal(t, a.String(), b.String())

	c := Keys.Orders.List(api.OrderFilters{StockTicker: "AAPL", Limit: 20})
	assert.NotEqual(t, a.String(), c.String())
}

func TestByTickerMatchesTickerOnlyList(t *testing.T) {
	byTicker := Keys.Orders.ByTicker("msft")
	list := Keys.Orders.List(api.OrderFilters{StockTicker: "MSFT"})
	assert.Equal(t, list.String(), byTicker.String())
}

func TestKeyHierarchy(t *testing.T) {
	assert.True(t, Keys.Orders.Detail(7).HasPrefix(Keys.Orders.All()))
	assert.True(t, Keys.Orders.List(api.OrderFilters{}).HasPrefix(Keys.Orders.Lists()))
	assert.True(t, Keys.Portfolio.Detail("aapl").HasPrefix(Keys.Portfolio.All()))
	assert.True(t, Keys.Stocks.LatestPrice("aapl").HasPrefix(Keys.Stocks.Prices()))
	assert.True(t, Keys.Stocks.RecentPrices("aapl", 20).HasPrefix(Keys.Stocks.Prices()))
	assert.True(t, Keys.Cash.Detail().HasPrefix(Keys.Cash.All()))
	assert.False(t, Keys.Stocks.SymbolList().HasPrefix(Keys.Stocks.Prices()))
}

func TestSymbolKeysCaseInsensitive(t *testing.T) {
	assert.Equal(t,
		Keys.Stocks.LatestPrice("AAPL").String(),
		Keys.Stocks.LatestPrice("aapl").String())
	assert.Equal(t,
		Keys.Portfolio.Detail("nvda").String(),
		Keys.Portfolio.Detail("NVDA").String())
}
