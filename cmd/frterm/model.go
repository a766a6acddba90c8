package main

import (
	"context"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/DenserMeerkat/fr-frontend-next/internal/notify"
	"github.com/DenserMeerkat/fr-frontend-next/internal/prefs"
	"github.com/DenserMeerkat/fr-frontend-next/pkg/api"
	"github.com/DenserMeerkat/fr-frontend-next/pkg/logger"
	"github.com/DenserMeerkat/fr-frontend-next/pkg/querycache"
	"github.com/DenserMeerkat/fr-frontend-next/pkg/view"
)

// sparkPoints is how many recent ticks feed the sparkline.
const sparkPoints = 40

// fetchTimeout bounds one snapshot refresh.
const fetchTimeout = 15 * time.Second

type deps struct {
	queries   *querycache.Queries
	mutations *querycache.Mutations
	cache     *querycache.Cache
	poller    *querycache.Poller
	prefs     *prefs.Store
	notify    *notify.Center
}

// snapshot is everything one render needs, assembled off the UI loop.
type snapshot struct {
	symbols   []api.StockSymbol
	latest    api.StockPrice
	delta     view.PriceDelta
	stats     api.StockPeriod
	recent    []api.StockPrice
	portfolio []api.Portfolio
	summary   api.PortfolioSummary
	orders    []api.Order
	cash      api.Cash
	fetchedAt time.Time
	err       error
}

type mode int

const (
	modeNormal mode = iota
	modeOrderForm
	modeBalance
)

type orderForm struct {
	side   api.OrderType
	volume string
}

type balanceForm struct {
	withdraw bool
	amount   string
}

type model struct {
	deps deps

	snap      snapshot
	selected  int
	mode      mode
	order     orderForm
	balance   balanceForm
	notifOpen bool
	status    string
	width     int
	height    int
}

func newModel(d deps) model {
	return model{
		deps:      d,
		notifOpen: d.prefs.NotifPanelOpen(),
		order:     orderForm{side: api.OrderTypeBuy},
	}
}

type snapshotMsg snapshot

type tickMsg time.Time

func (m model) Init() tea.Cmd {
	return tea.Batch(m.fetch(), m.tick())
}

func (m model) tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// fetch assembles the next snapshot through the query layer. Fresh cache
// entries answer immediately; stale ones answer immediately too and refresh
// in the background, so this stays cheap between poll intervals.
func (m model) fetch() tea.Cmd {
	queries := m.deps.queries
	selected := m.selectedSymbol()

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		var snap snapshot
		snap.fetchedAt = time.Now()

		var err error
		if snap.symbols, err = queries.SymbolList(ctx); err != nil {
			snap.err = err
			return snapshotMsg(snap)
		}
		if selected == "" && len(snap.symbols) > 0 {
			selected = snap.symbols[0].Symbol
		}

		if selected != "" {
			if snap.latest, err = queries.LatestPrice(ctx, selected); err != nil {
				snap.err = err
			}
			if snap.recent, err = queries.RecentPrices(ctx, selected, sparkPoints); err != nil {
				if snap.err == nil {
					snap.err = err
				}
			} else {
				snap.delta = view.PriceChange(snap.recent)
			}
			if stats, err := queries.PeriodStats(ctx, selected, snap.latest.PeriodNumber); err == nil {
				snap.stats = stats
			}
		}

		if snap.portfolio, err = queries.PortfolioList(ctx); err != nil && snap.err == nil {
			snap.err = err
		}
		if summary, err := queries.PortfolioSummary(ctx); err == nil {
			snap.summary = summary
		}
		if snap.orders, err = queries.Orders(ctx, api.OrderFilters{}); err != nil && snap.err == nil {
			snap.err = err
		}
		if cash, err := queries.CashBalance(ctx); err == nil {
			snap.cash = cash
		}

		return snapshotMsg(snap)
	}
}

func (m model) selectedSymbol() string {
	if m.selected >= 0 && m.selected < len(m.snap.symbols) {
		return m.snap.symbols[m.selected].Symbol
	}
	return ""
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.FocusMsg:
		m.deps.poller.Resume()
		return m, nil

	case tea.BlurMsg:
		m.deps.poller.Pause()
		return m, nil

	case snapshotMsg:
		snap := snapshot(msg)
		m.deps.notify.ObserveOrders(snap.orders)
		m.snap = snap
		if m.selected >= len(snap.symbols) {
			m.selected = 0
		}
		return m, nil

	case tickMsg:
		return m, tea.Batch(m.fetch(), m.tick())

	case tea.KeyMsg:
		switch m.mode {
		case modeOrderForm:
			return m.updateOrderForm(msg)
		case modeBalance:
			return m.updateBalanceForm(msg)
		default:
			return m.updateNormal(msg)
		}
	}
	return m, nil
}

func (m model) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "up", "k":
		if m.selected > 0 {
			m.selected--
			return m, m.fetch()
		}
	case "down", "j":
		if m.selected < len(m.snap.symbols)-1 {
			m.selected++
			return m, m.fetch()
		}
	case "o":
		m.mode = modeOrderForm
		m.order = orderForm{side: api.OrderTypeBuy}
		m.status = ""
	case "b":
		m.mode = modeBalance
		m.balance = balanceForm{}
		m.status = ""
	case "n":
		m.notifOpen = !m.notifOpen
		if err := m.deps.prefs.SetNotifPanelOpen(m.notifOpen); err != nil {
			logger.Warnf("persist panel flag: %v", err)
		}
	case "i":
		next := nextInterval(m.deps.poller.Interval())
		m.deps.poller.SetInterval(next)
		if err := m.deps.prefs.SetRefetchInterval(next); err != nil {
			logger.Warnf("persist interval: %v", err)
		}
		m.status = "refetch interval: " + next.String()
	case "r":
		m.deps.cache.InvalidateAll()
		return m, m.fetch()
	}
	return m, nil
}

func nextInterval(current time.Duration) time.Duration {
	for i, d := range querycache.AllowedIntervals {
		if d == current {
			return querycache.AllowedIntervals[(i+1)%len(querycache.AllowedIntervals)]
		}
	}
	return querycache.DefaultInterval
}

func (m model) updateOrderForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeNormal
	case "tab":
		if m.order.side == api.OrderTypeBuy {
			m.order.side = api.OrderTypeSell
		} else {
			m.order.side = api.OrderTypeBuy
		}
	case "backspace":
		if len(m.order.volume) > 0 {
			m.order.volume = m.order.volume[:len(m.order.volume)-1]
		}
	case "enter":
		return m.submitOrder()
	default:
		if s := msg.String(); len(s) == 1 && s >= "0" && s <= "9" && len(m.order.volume) < 4 {
			m.order.volume += s
		}
	}
	return m, nil
}

func (m model) submitOrder() (tea.Model, tea.Cmd) {
	symbol := m.selectedSymbol()
	volume, err := strconv.Atoi(m.order.volume)
	if err != nil || symbol == "" {
		m.status = "enter a volume first"
		return m, nil
	}

	req := api.CreateOrderRequest{
		StockTicker: symbol,
		Volume:      volume,
		BuyOrSell:   m.order.side,
		Price:       m.snap.latest.Price,
	}
	mutations := m.deps.mutations
	center := m.deps.notify
	m.mode = modeNormal
	m.status = "submitting order..."

	return m, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		order, err := mutations.CreateOrder(ctx, req)
		if err != nil {
			center.Push(notify.LevelError, "Order rejected: "+err.Error())
		} else {
			center.Push(notify.LevelInfo, "Order #"+strconv.FormatInt(order.ID, 10)+" placed")
		}
		return tickMsg(time.Now())
	}
}

func (m model) updateBalanceForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeNormal
	case "tab":
		m.balance.withdraw = !m.balance.withdraw
	case "backspace":
		if len(m.balance.amount) > 0 {
			m.balance.amount = m.balance.amount[:len(m.balance.amount)-1]
		}
	case "enter":
		return m.submitBalance()
	default:
		s := msg.String()
		isDigit := len(s) == 1 && s >= "0" && s <= "9"
		isDot := s == "." && !strings.Contains(m.balance.amount, ".")
		if (isDigit || isDot) && len(m.balance.amount) < 12 {
			m.balance.amount += s
		}
	}
	return m, nil
}

func (m model) submitBalance() (tea.Model, tea.Cmd) {
	amount, err := decimal.NewFromString(m.balance.amount)
	if err != nil {
		m.status = "enter an amount first"
		return m, nil
	}

	withdraw := m.balance.withdraw
	mutations := m.deps.mutations
	center := m.deps.notify
	m.mode = modeNormal
	m.status = "submitting..."

	return m, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		var cash api.Cash
		var opErr error
		if withdraw {
			cash, opErr = mutations.Withdraw(ctx, amount)
		} else {
			cash, opErr = mutations.Deposit(ctx, amount)
		}
		if opErr != nil {
			center.Push(notify.LevelError, "Cash operation failed: "+opErr.Error())
		} else {
			center.Push(notify.LevelSuccess, "Balance now "+cash.Balance.StringFixed(2))
		}
		return tickMsg(time.Now())
	}
}
