// Package view holds the pure computations behind the dashboard panels:
// price deltas, chart bounds, holding rollups, and order presentation.
package view

import (
	"github.com/shopspring/decimal"

	"github.com/DenserMeerkat/fr-frontend-next/pkg/api"
)

// Volume limits accepted by the trading backend.
const (
	MinOrderVolume = 1
	MaxOrderVolume = 1000
)

// OthersLabel names the rollup row in TopHoldings.
const OthersLabel = "Others"

// PriceDelta is the movement across a recent price window.
type PriceDelta struct {
	Change  decimal.Decimal
	Percent decimal.Decimal
}

// PriceChange computes the delta of a newest-first price series against its
// oldest point. Fewer than two points, or a zero reference price, yields a
// zero delta.
func PriceChange(series []api.StockPrice) PriceDelta {
	if len(series) < 2 {
		return PriceDelta{}
	}
	newest := series[0].Price
	oldest := series[len(series)-1].Price

	change := newest.Sub(oldest)
	if oldest.IsZero() {
		return PriceDelta{Change: change}
	}
	percent := change.Div(oldest).Mul(decimal.NewFromInt(100)).Round(2)
	return PriceDelta{Change: change, Percent: percent}
}

// chartBufferRatio pads the chart range so extremes never sit on the frame.
var chartBufferRatio = decimal.NewFromFloat(0.05)

// ChartBounds returns the y-axis range for a price series: min and max padded
// by 5% of the range, or by 1 when the series is flat. Empty input yields
// zero bounds.
func ChartBounds(prices []decimal.Decimal) (lo, hi decimal.Decimal) {
	if len(prices) == 0 {
		return decimal.Zero, decimal.Zero
	}

	min, max := prices[0], prices[0]
	for _, p := range prices[1:] {
		if p.LessThan(min) {
			min = p
		}
		if p.GreaterThan(max) {
			max = p
		}
	}

	buffer := max.Sub(min).Mul(chartBufferRatio)
	if buffer.IsZero() {
		buffer = decimal.NewFromInt(1)
	}
	return min.Sub(buffer), max.Add(buffer)
}

// Average returns the mean of values rounded to 2 decimals, zero for empty
// input.
func Average(values []decimal.Decimal) decimal.Decimal {
	if len(values) == 0 {
		return decimal.Zero
	}
	sum := decimal.Zero
	for _, v := range values {
		sum = sum.Add(v)
	}
	return sum.Div(decimal.NewFromInt(int64(len(values)))).Round(2)
}

// TopHoldings returns up to n rows by descending value plus an "Others" row
// aggregating the remainder. rows must already be sorted by value descending
// (GetPortfolioSummary returns them that way).
func TopHoldings(rows []api.Portfolio, n int) []api.Portfolio {
	if n <= 0 || len(rows) <= n {
		out := make([]api.Portfolio, len(rows))
		copy(out, rows)
		return out
	}

	out := make([]api.Portfolio, 0, n+1)
	out = append(out, rows[:n]...)

	others := api.Portfolio{StockTicker: OthersLabel}
	for _, row := range rows[n:] {
		others.Value = others.Value.Add(row.Value)
		others.Volume += row.Volume
	}
	return append(out, others)
}

// ClampVolume forces an order volume into the accepted range.
func ClampVolume(volume int) int {
	if volume < MinOrderVolume {
		return MinOrderVolume
	}
	if volume > MaxOrderVolume {
		return MaxOrderVolume
	}
	return volume
}

// StatusLabel renders an order status for tables and logs.
func StatusLabel(s api.OrderStatus) string {
	switch s {
	case api.OrderStatusPending:
		return "Pending"
	case api.OrderStatusProcessing:
		return "Processing"
	case api.OrderStatusSuccess:
		return "Success"
	case api.OrderStatusFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// StatusColor maps an order status to an ANSI-256 color for lipgloss styles.
func StatusColor(s api.OrderStatus) string {
	switch s {
	case api.OrderStatusPending:
		return "220" // yellow
	case api.OrderStatusProcessing:
		return "39" // blue
	case api.OrderStatusSuccess:
		return "42" // green
	case api.OrderStatusFailed:
		return "196" // red
	default:
		return "245" // grey
	}
}
