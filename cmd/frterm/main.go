package main

import (
	"context"
	"flag"
	"log"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/DenserMeerkat/fr-frontend-next/internal/config"
	"github.com/DenserMeerkat/fr-frontend-next/internal/notify"
	"github.com/DenserMeerkat/fr-frontend-next/internal/prefs"
	"github.com/DenserMeerkat/fr-frontend-next/pkg/api"
	"github.com/DenserMeerkat/fr-frontend-next/pkg/logger"
	"github.com/DenserMeerkat/fr-frontend-next/pkg/querycache"
	"github.com/DenserMeerkat/fr-frontend-next/pkg/transport"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	if err := logger.Init(logger.Config{Level: cfg.LogLevel, OutputFile: cfg.LogFile, ConsoleOff: true}); err != nil {
		log.Fatalf("init logger: %v", err)
	}

	store, err := prefs.Open(cfg.DataDir)
	if err != nil {
		log.Fatalf("open preference store: %v", err)
	}
	defer store.Close()

	market := transport.NewMarketClient(cfg.MarketBaseURL, cfg.RequestTimeout)
	trading := transport.NewTradingClient(cfg.TradingBaseURL, cfg.RequestTimeout)

	cache := querycache.NewCache()
	defer cache.Close()

	ordersClient := api.NewOrdersClient(trading)
	cashClient := api.NewCashClient(trading)
	queries := querycache.NewQueries(cache,
		api.NewStocksClient(market),
		ordersClient,
		api.NewPortfolioClient(trading),
		cashClient)
	mutations := querycache.NewMutations(cache, ordersClient, cashClient)

	poller := querycache.NewPoller(cache, store.RefetchInterval())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go poller.Start(ctx)
	defer poller.Stop()

	m := newModel(deps{
		queries:   queries,
		mutations: mutations,
		cache:     cache,
		poller:    poller,
		prefs:     store,
		notify:    notify.NewCenter(),
	})

	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithReportFocus())
	if _, err := program.Run(); err != nil {
		log.Fatalf("run dashboard: %v", err)
	}
}
