package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/DenserMeerkat/fr-frontend-next/internal/notify"
	"github.com/DenserMeerkat/fr-frontend-next/pkg/api"
	"github.com/DenserMeerkat/fr-frontend-next/pkg/view"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	upStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	downStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	panelStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("39")).Padding(0, 1)
	errorStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
)

var sparkRunes = []rune("▁▂▃▄▅▆▇█")

func (m model) View() string {
	if len(m.snap.symbols) == 0 {
		if m.snap.err != nil {
			return errorStyle.Render("cannot reach upstream: "+m.snap.err.Error()) + "\n"
		}
		return "loading...\n"
	}

	switch m.mode {
	case modeOrderForm:
		return m.renderOrderForm()
	case modeBalance:
		return m.renderBalanceForm()
	}

	width := m.width - 4
	if width < 80 {
		width = 80
	}
	leftWidth := width / 3
	rightWidth := width - leftWidth - 2

	left := panelStyle.Width(leftWidth).Render(m.renderSymbolList(leftWidth))

	var rightParts []string
	rightParts = append(rightParts, m.renderPricePanel(rightWidth))
	rightParts = append(rightParts, m.renderPortfolioPanel(rightWidth))
	rightParts = append(rightParts, m.renderOrdersPanel(rightWidth))
	if m.notifOpen {
		rightParts = append(rightParts, m.renderNotifPanel(rightWidth))
	}
	right := panelStyle.Width(rightWidth).Render(strings.Join(rightParts, "\n\n"))

	content := lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right)
	return lipgloss.JoinVertical(lipgloss.Left, m.renderHeader(), content, m.renderFooter())
}

func (m model) renderHeader() string {
	header := fmt.Sprintf("Four Real | cash %s | poll %s",
		m.snap.cash.Balance.StringFixed(2), m.deps.poller.Interval())
	if m.snap.err != nil {
		header += "  " + errorStyle.Render(m.snap.err.Error())
	}
	return titleStyle.Padding(0, 1).Render(header)
}

func (m model) renderFooter() string {
	help := "↑/↓ select  o order  b balance  n notifications  i interval  r refresh  q quit"
	if m.status != "" {
		help = m.status + "  |  " + help
	}
	return dimStyle.Padding(0, 1).Render(help)
}

func (m model) renderSymbolList(width int) string {
	var lines []string
	lines = append(lines, titleStyle.Render("Symbols"))
	lines = append(lines, strings.Repeat("─", width-4))

	// Window the list around the selection so it fits the panel.
	visible := m.height - 10
	if visible < 5 {
		visible = 5
	}
	start := 0
	if m.selected >= visible {
		start = m.selected - visible + 1
	}
	end := start + visible
	if end > len(m.snap.symbols) {
		end = len(m.snap.symbols)
	}

	for i := start; i < end; i++ {
		s := m.snap.symbols[i]
		line := fmt.Sprintf("%-6s %s", api.NormalizeTicker(s.Symbol), truncate(s.CompanyName, width-12))
		if i == m.selected {
			line = selectedStyle.Render(line)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (m model) renderPricePanel(width int) string {
	snap := m.snap
	var lines []string
	lines = append(lines, titleStyle.Render("Price"))
	lines = append(lines, strings.Repeat("─", width-4))

	deltaStr := renderDelta(snap.delta)
	lines = append(lines, fmt.Sprintf("%s  %s  %s  %s",
		api.NormalizeTicker(snap.latest.Symbol),
		snap.latest.Price.StringFixed(2),
		deltaStr,
		dimStyle.Render(snap.latest.TimeStamp.WallClock())))

	if spark := renderSparkline(snap.recent, width-6); spark != "" {
		lines = append(lines, spark)
	}

	if snap.stats.Symbol != "" {
		lines = append(lines, fmt.Sprintf("P%d  O:%s C:%s  H:%s L:%s",
			snap.stats.PeriodNumber,
			snap.stats.OpeningPrice.StringFixed(2),
			snap.stats.ClosingPrice.StringFixed(2),
			snap.stats.MaxPrice.StringFixed(2),
			snap.stats.MinPrice.StringFixed(2)))
	}
	return strings.Join(lines, "\n")
}

func renderDelta(d view.PriceDelta) string {
	switch {
	case d.Change.IsPositive():
		return upStyle.Render(fmt.Sprintf("▲ %s (%s%%)", d.Change.StringFixed(2), d.Percent.StringFixed(2)))
	case d.Change.IsNegative():
		return downStyle.Render(fmt.Sprintf("▼ %s (%s%%)", d.Change.Abs().StringFixed(2), d.Percent.Abs().StringFixed(2)))
	default:
		return dimStyle.Render("=")
	}
}

// renderSparkline draws the recent series oldest to newest, scaled into the
// chart bounds.
func renderSparkline(recent []api.StockPrice, width int) string {
	if len(recent) < 2 {
		return ""
	}

	prices := make([]decimal.Decimal, 0, len(recent))
	for i := len(recent) - 1; i >= 0; i-- {
		prices = append(prices, recent[i].Price)
	}
	if len(prices) > width && width > 0 {
		prices = prices[len(prices)-width:]
	}

	lo, hi := view.ChartBounds(prices)
	span := hi.Sub(lo)
	if span.IsZero() {
		return ""
	}

	var b strings.Builder
	levels := int64(len(sparkRunes) - 1)
	for _, p := range prices {
		idx := p.Sub(lo).Mul(decimal.NewFromInt(levels)).Div(span).IntPart()
		if idx < 0 {
			idx = 0
		}
		if idx > levels {
			idx = levels
		}
		b.WriteRune(sparkRunes[idx])
	}
	return b.String()
}

func (m model) renderPortfolioPanel(width int) string {
	snap := m.snap
	var lines []string
	lines = append(lines, titleStyle.Render(fmt.Sprintf("Portfolio  (%d holdings, total %s)",
		snap.summary.TotalStocks, snap.summary.TotalValue.StringFixed(2))))
	lines = append(lines, strings.Repeat("─", width-4))

	rows := view.TopHoldings(snap.summary.TopHoldings, 4)
	if len(rows) == 0 {
		lines = append(lines, dimStyle.Render("no holdings"))
	}
	for _, row := range rows {
		lines = append(lines, fmt.Sprintf("%-8s %8d  %12s",
			row.StockTicker, row.Volume, row.Value.StringFixed(2)))
	}
	return strings.Join(lines, "\n")
}

func (m model) renderOrdersPanel(width int) string {
	var lines []string
	lines = append(lines, titleStyle.Render("Orders"))
	lines = append(lines, strings.Repeat("─", width-4))

	orders := m.snap.orders
	shown := 6
	if len(orders) == 0 {
		lines = append(lines, dimStyle.Render("no orders"))
	}
	// Newest last from the backend; show the tail.
	start := 0
	if len(orders) > shown {
		start = len(orders) - shown
	}
	for _, o := range orders[start:] {
		statusStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(view.StatusColor(o.StatusCode)))
		lines = append(lines, fmt.Sprintf("#%-5d %-6s %-4s %5d @ %-10s %s",
			o.ID, o.StockTicker, o.BuyOrSell, o.Volume,
			o.Price.StringFixed(2),
			statusStyle.Render(view.StatusLabel(o.StatusCode))))
	}
	return strings.Join(lines, "\n")
}

func (m model) renderNotifPanel(width int) string {
	var lines []string
	lines = append(lines, titleStyle.Render("Notifications"))
	lines = append(lines, strings.Repeat("─", width-4))

	items := m.deps.notify.List()
	if len(items) == 0 {
		lines = append(lines, dimStyle.Render("nothing yet"))
	}
	for i, n := range items {
		if i >= 5 {
			lines = append(lines, dimStyle.Render(fmt.Sprintf("... and %d more", len(items)-5)))
			break
		}
		style := dimStyle
		switch n.Level {
		case notify.LevelSuccess:
			style = upStyle
		case notify.LevelError:
			style = downStyle
		}
		lines = append(lines, fmt.Sprintf("%s %s",
			dimStyle.Render(n.CreatedAt.Format("15:04:05")),
			style.Render(truncate(n.Message, width-14))))
	}
	return strings.Join(lines, "\n")
}

func (m model) renderOrderForm() string {
	symbol := api.NormalizeTicker(m.selectedSymbol())
	var lines []string
	lines = append(lines, titleStyle.Render("New Order"))
	lines = append(lines, "")
	lines = append(lines, fmt.Sprintf("Symbol: %s @ %s", symbol, m.snap.latest.Price.StringFixed(2)))
	lines = append(lines, fmt.Sprintf("Side:   %s  (tab to switch)", m.order.side))
	lines = append(lines, fmt.Sprintf("Volume: %s_  (1-%d)", m.order.volume, view.MaxOrderVolume))
	lines = append(lines, "")
	lines = append(lines, dimStyle.Render("enter submit  esc cancel"))
	return panelStyle.Render(strings.Join(lines, "\n")) + "\n"
}

func (m model) renderBalanceForm() string {
	op := "Deposit"
	if m.balance.withdraw {
		op = "Withdraw"
	}
	var lines []string
	lines = append(lines, titleStyle.Render("Cash"))
	lines = append(lines, "")
	lines = append(lines, fmt.Sprintf("Balance: %s", m.snap.cash.Balance.StringFixed(2)))
	lines = append(lines, fmt.Sprintf("Action:  %s  (tab to switch)", op))
	lines = append(lines, fmt.Sprintf("Amount:  %s_", m.balance.amount))
	lines = append(lines, "")
	lines = append(lines, dimStyle.Render("enter submit  esc cancel"))
	return panelStyle.Render(strings.Join(lines, "\n")) + "\n"
}

func truncate(s string, max int) string {
	if max <= 3 || len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
