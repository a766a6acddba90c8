// Package mockfeed serves both upstream contracts on one port for local
// development: the StockFeed market-data API under /api/stock and the
// trading backend under /api/trading. Prices are synthetic but
// deterministic; trading state lives in memory.
package mockfeed

import (
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/DenserMeerkat/fr-frontend-next/pkg/api"
)

// Order lifecycle timing. Orders whose volume is divisible by 7 fail, so a
// failure path is reachable on demand.
const (
	processingAfter = 1 * time.Second
	settledAfter    = 3 * time.Second
)

var startingCash = decimal.NewFromInt(10_000)

type trackedOrder struct {
	api.Order
	placedAt time.Time
	applied  bool
}

// Server holds the mutable trading state behind the gin handlers.
type Server struct {
	mu       sync.Mutex
	now      func() time.Time
	nextID   int64
	orders   []*trackedOrder
	holdings map[string]*api.Portfolio
	cash     decimal.Decimal
}

// NewServer creates a server with an empty book and the starting balance.
func NewServer() *Server {
	return &Server{
		now:      time.Now,
		nextID:   1,
		holdings: make(map[string]*api.Portfolio),
		cash:     startingCash,
	}
}

// Router builds the gin engine with both API groups mounted.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	stock := r.Group("/api/stock/StockFeed")
	stock.GET("/GetSymbolList", s.handleSymbolList)
	stock.GET("/GetSymbolDetails/:symbol", s.handleSymbolDetails)
	stock.GET("/GetStockPricesForSymbol/:symbol", s.handlePrices)
	stock.GET("/GetOpenCloseMinMaxForSymbolAndPeriodNumber/:symbol", s.handlePeriodStats)

	trading := r.Group("/api/trading")
	trading.GET("/orders", s.handleListOrders)
	trading.GET("/orders/:id", s.handleGetOrder)
	trading.POST("/orders", s.handleCreateOrder)
	trading.GET("/portfolio", s.handlePortfolio)
	trading.GET("/cash", s.handleCash)
	trading.PUT("/cash/deposit", s.handleDeposit)
	trading.PUT("/cash/withdraw", s.handleWithdraw)

	return r
}

// --- stock feed handlers: bare JSON arrays, errors as {"message"} ---

func (s *Server) handleSymbolList(c *gin.Context) {
	c.JSON(http.StatusOK, symbolCatalog)
}

func (s *Server) handleSymbolDetails(c *gin.Context) {
	sym, ok := findSymbol(c.Param("symbol"))
	if !ok {
		c.JSON(http.StatusOK, []api.StockSymbol{})
		return
	}
	c.JSON(http.StatusOK, []api.StockSymbol{sym})
}

func (s *Server) handlePrices(c *gin.Context) {
	sym, ok := findSymbol(c.Param("symbol"))
	if !ok {
		c.JSON(http.StatusOK, []api.StockPrice{})
		return
	}

	count := 1
	if raw := c.Query("HowManyValues"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"message": "HowManyValues must be a positive integer"})
			return
		}
		count = n
	}

	at := s.now()
	if raw := c.Query("WhatTime"); raw != "" {
		clock, err := time.ParseInLocation("15:04:05", raw, at.Location())
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "WhatTime must be HH:MM:SS"})
			return
		}
		at = time.Date(at.Year(), at.Month(), at.Day(),
			clock.Hour(), clock.Minute(), clock.Second(), 0, at.Location())
	}

	c.JSON(http.StatusOK, pricesEndingAt(sym, at, count))
}

func (s *Server) handlePeriodStats(c *gin.Context) {
	sym, ok := findSymbol(c.Param("symbol"))
	if !ok {
		c.JSON(http.StatusOK, []api.StockPeriod{})
		return
	}

	periodNumber, err := strconv.Atoi(c.Query("PeriodNumber"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "PeriodNumber must be an integer"})
		return
	}

	stats, ok := periodStats(sym, s.now(), periodNumber)
	if !ok {
		c.JSON(http.StatusOK, []api.StockPeriod{})
		return
	}
	c.JSON(http.StatusOK, []api.StockPeriod{stats})
}

// --- trading handlers: {data, success, message} envelope ---

func respond(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{"data": data, "success": true})
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "message": message})
}

// settle advances order statuses by age and applies fills exactly once.
// Called under s.mu from every trading handler.
func (s *Server) settle() {
	now := s.now()
	for _, o := range s.orders {
		age := now.Sub(o.placedAt)
		switch {
		case age < processingAfter:
			o.StatusCode = api.OrderStatusPending
		case age < settledAfter:
			o.StatusCode = api.OrderStatusProcessing
		case o.Volume%7 == 0:
			o.StatusCode = api.OrderStatusFailed
		default:
			o.StatusCode = api.OrderStatusSuccess
			if !o.applied {
				s.applyFill(o)
				o.applied = true
			}
		}
	}
}

func (s *Server) applyFill(o *trackedOrder) {
	total := o.Price.Mul(decimal.NewFromInt(int64(o.Volume)))
	h, ok := s.holdings[o.StockTicker]
	if !ok {
		h = &api.Portfolio{StockTicker: o.StockTicker}
		s.holdings[o.StockTicker] = h
	}

	if o.BuyOrSell == api.OrderTypeBuy {
		s.cash = s.cash.Sub(total)
		h.Volume += o.Volume
		h.Value = h.Value.Add(total)
	} else {
		s.cash = s.cash.Add(total)
		h.Volume -= o.Volume
		h.Value = h.Value.Sub(total)
	}
	h.TradeTime = api.TradeTime{Time: s.now()}

	if h.Volume <= 0 {
		delete(s.holdings, o.StockTicker)
	}
}

func (s *Server) handleListOrders(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settle()

	ticker := c.Query("stockTicker")
	side := c.Query("buyOrSell")
	statusRaw := c.Query("statusCode")

	out := make([]api.Order, 0, len(s.orders))
	for _, o := range s.orders {
		if ticker != "" && !strings.EqualFold(o.StockTicker, ticker) {
			continue
		}
		if side != "" && string(o.BuyOrSell) != side {
			continue
		}
		if statusRaw != "" {
			code, err := strconv.Atoi(statusRaw)
			if err != nil || api.OrderStatus(code) != o.StatusCode {
				continue
			}
		}
		out = append(out, o.Order)
	}
	respond(c, out)
}

func (s *Server) handleGetOrder(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "order id must be an integer")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.settle()

	for _, o := range s.orders {
		if o.ID == id {
			respond(c, o.Order)
			return
		}
	}
	respondError(c, http.StatusNotFound, "order not found")
}

func (s *Server) handleCreateOrder(c *gin.Context) {
	var req api.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid order payload")
		return
	}
	if req.StockTicker == "" {
		respondError(c, http.StatusBadRequest, "stockTicker is required")
		return
	}
	if req.BuyOrSell != api.OrderTypeBuy && req.BuyOrSell != api.OrderTypeSell {
		respondError(c, http.StatusBadRequest, "buyOrSell must be BUY or SELL")
		return
	}
	if req.Volume <= 0 {
		respondError(c, http.StatusBadRequest, "volume must be positive")
		return
	}
	if _, ok := findSymbol(req.StockTicker); !ok {
		respondError(c, http.StatusNotFound, "unknown ticker "+req.StockTicker)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	price := req.Price
	if price.IsZero() {
		sym, _ := findSymbol(req.StockTicker)
		price = priceAt(sym, tickIndex(s.now()))
	}

	o := &trackedOrder{
		Order: api.Order{
			ID:          s.nextID,
			StockTicker: api.NormalizeTicker(req.StockTicker),
			Price:       price,
			Volume:      req.Volume,
			BuyOrSell:   req.BuyOrSell,
			StatusCode:  api.OrderStatusPending,
			CreatedAt:   api.TradeTime{Time: s.now()},
		},
		placedAt: s.now(),
	}
	s.nextID++
	s.orders = append(s.orders, o)

	respond(c, o.Order)
}

func (s *Server) handlePortfolio(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settle()

	out := make([]api.Portfolio, 0, len(s.holdings))
	for _, h := range s.holdings {
		out = append(out, *h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StockTicker < out[j].StockTicker })
	respond(c, out)
}

func (s *Server) handleCash(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settle()
	c.JSON(http.StatusOK, api.Cash{Balance: s.cash})
}

func (s *Server) handleDeposit(c *gin.Context) {
	amount, err := parseAmount(c.Query("amount"))
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.cash = s.cash.Add(amount)
	c.JSON(http.StatusOK, api.Cash{Balance: s.cash})
}

func (s *Server) handleWithdraw(c *gin.Context) {
	amount, err := parseAmount(c.Query("amount"))
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.settle()
	if amount.GreaterThan(s.cash) {
		respondError(c, http.StatusBadRequest, "insufficient balance")
		return
	}
	s.cash = s.cash.Sub(amount)
	c.JSON(http.StatusOK, api.Cash{Balance: s.cash})
}

func parseAmount(raw string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, errors.New("amount must be a decimal number")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, errors.New("amount must be greater than zero")
	}
	return amount, nil
}
