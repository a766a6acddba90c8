package mockfeed

import (
	"math"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"

	"github.com/DenserMeerkat/fr-frontend-next/pkg/api"
)

// Tick spacing and period length of the synthetic feed. A trading day is
// sliced into ten-minute periods numbered from midnight.
const (
	tickSeconds     = 5
	ticksPerPeriod  = 120
	defaultTicks    = 20
	maxTicksPerCall = 500
)

// priceAt returns the deterministic price of a symbol at tick n of the day.
// A slow sine wave gives the day a shape; per-tick seeded noise gives it
// texture. The same (symbol, tick) always yields the same price.
func priceAt(sym api.StockSymbol, n int) decimal.Decimal {
	base := float64(30 + sym.SymbolID%470)
	wave := base * 0.05 * math.Sin(2*math.Pi*float64(n)/720)

	rng := rand.New(rand.NewSource(int64(sym.SymbolID)*1_000_003 + int64(n)))
	noise := (rng.Float64() - 0.5) * base * 0.01

	return decimal.NewFromFloat(base + wave + noise).Round(2)
}

// tickIndex maps a moment to its tick number within the day.
func tickIndex(at time.Time) int {
	secs := at.Hour()*3600 + at.Minute()*60 + at.Second()
	return secs / tickSeconds
}

// tickTime maps a tick number back to the wall-clock moment on at's day.
func tickTime(at time.Time, n int) time.Time {
	midnight := time.Date(at.Year(), at.Month(), at.Day(), 0, 0, 0, 0, at.Location())
	return midnight.Add(time.Duration(n*tickSeconds) * time.Second)
}

// pricesEndingAt builds a newest-first series of count ticks ending at the
// tick covering `at`.
func pricesEndingAt(sym api.StockSymbol, at time.Time, count int) []api.StockPrice {
	if count <= 0 {
		count = defaultTicks
	}
	if count > maxTicksPerCall {
		count = maxTicksPerCall
	}

	end := tickIndex(at)
	out := make([]api.StockPrice, 0, count)
	for n := end; n > end-count && n >= 0; n-- {
		out = append(out, api.StockPrice{
			Symbol:       sym.Symbol,
			CompanyName:  sym.CompanyName,
			Price:        priceAt(sym, n),
			PeriodNumber: n / ticksPerPeriod,
			TimeStamp:    api.FeedTime{Time: tickTime(at, n)},
		})
	}
	return out
}

// periodStats aggregates open/close/min/max over one period of the day.
// Future periods have no data.
func periodStats(sym api.StockSymbol, day time.Time, periodNumber int) (api.StockPeriod, bool) {
	if periodNumber < 0 {
		return api.StockPeriod{}, false
	}
	start := periodNumber * ticksPerPeriod
	if start > tickIndex(day) {
		return api.StockPeriod{}, false
	}

	end := start + ticksPerPeriod - 1
	if now := tickIndex(day); end > now {
		end = now
	}

	open := priceAt(sym, start)
	closing := priceAt(sym, end)
	min, max := open, open
	for n := start; n <= end; n++ {
		p := priceAt(sym, n)
		if p.LessThan(min) {
			min = p
		}
		if p.GreaterThan(max) {
			max = p
		}
	}

	return api.StockPeriod{
		Symbol:          sym.Symbol,
		SymbolID:        sym.SymbolID,
		OpeningPrice:    open,
		ClosingPrice:    closing,
		MaxPrice:        max,
		MinPrice:        min,
		PeriodStartTime: api.FeedTime{Time: tickTime(day, start)},
		PeriodEndTime:   api.FeedTime{Time: tickTime(day, end)},
		PeriodNumber:    periodNumber,
	}, true
}
