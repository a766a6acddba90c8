package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/DenserMeerkat/fr-frontend-next/internal/config"
	"github.com/DenserMeerkat/fr-frontend-next/pkg/api"
	"github.com/DenserMeerkat/fr-frontend-next/pkg/logger"
	"github.com/DenserMeerkat/fr-frontend-next/pkg/querycache"
	"github.com/DenserMeerkat/fr-frontend-next/pkg/transport"
	"github.com/DenserMeerkat/fr-frontend-next/pkg/view"
)

var (
	upStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	downStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	dimStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

func main() {
	symbol := flag.String("symbol", "", "stock symbol to watch (required)")
	configPath := flag.String("config", "config.yaml", "path to config file")
	interval := flag.Duration("interval", 0, "poll interval (overrides config)")
	flag.Parse()

	if *symbol == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	if err := logger.Init(logger.Config{Level: cfg.LogLevel, OutputFile: cfg.LogFile}); err != nil {
		log.Fatalf("init logger: %v", err)
	}

	poll := cfg.RefetchInterval
	if *interval > 0 && querycache.IsAllowedInterval(*interval) {
		poll = *interval
	}

	market := transport.NewMarketClient(cfg.MarketBaseURL, cfg.RequestTimeout)
	cache := querycache.NewCache()
	defer cache.Close()
	queries := querycache.NewQueries(cache,
		api.NewStocksClient(market), nil, nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		cancel()
	}()

	details, err := queries.SymbolDetails(ctx, *symbol)
	if err != nil {
		log.Fatalf("symbol %s: %v", *symbol, err)
	}
	fmt.Printf("Watching %s (%s) every %s\n\n",
		api.NormalizeTicker(details.Symbol), details.CompanyName, poll)

	ticker := time.NewTicker(poll)
	defer ticker.Stop()

	var last decimal.Decimal
	printTick(ctx, queries, *symbol, &last)
	for {
		select {
		case <-ctx.Done():
			fmt.Println("\nshutting down")
			return
		case <-ticker.C:
			cache.Invalidate(querycache.Keys.Stocks.LatestPrice(*symbol))
			printTick(ctx, queries, *symbol, &last)
		}
	}
}

func printTick(ctx context.Context, queries *querycache.Queries, symbol string, last *decimal.Decimal) {
	price, err := queries.LatestPrice(ctx, symbol)
	if err != nil {
		logger.Errorf("fetch latest price: %v", err)
		return
	}

	delta := view.PriceChange([]api.StockPrice{price, {Price: *last}})
	line := fmt.Sprintf("%s  %s  %s",
		dimStyle.Render(price.TimeStamp.WallClock()),
		api.NormalizeTicker(price.Symbol),
		price.Price.StringFixed(2))

	switch {
	case last.IsZero():
		fmt.Println(line)
	case delta.Change.IsNegative():
		fmt.Println(line + "  " + downStyle.Render(fmt.Sprintf("▼ %s", delta.Change.Abs().StringFixed(2))))
	case delta.Change.IsPositive():
		fmt.Println(line + "  " + upStyle.Render(fmt.Sprintf("▲ %s", delta.Change.StringFixed(2))))
	default:
		fmt.Println(line + dimStyle.Render("  ="))
	}
	*last = price.Price
}
