package api

import (
	"regexp"
	"strings"
	"time"
)

// The StockFeed encodes time two ways: a bare HH:MM:SS wall-clock string
// (a time-of-day within the current trading day) or a full timestamp. The
// trading backend always sends full timestamps. FeedTime and TradeTime give
// both shapes explicit unmarshalers so callers never probe field formats.

var wallClockRe = regexp.MustCompile(`^([0-1]?[0-9]|2[0-3]):[0-5][0-9]:[0-5][0-9]$`)

// feedLayouts are the absolute-timestamp formats the feed has been seen to
// emit, tried in order after the wall-clock form.
var feedLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// FeedTime is a market-feed time value.
type FeedTime struct {
	time.Time
}

// NewFeedTime wraps an absolute time.
func NewFeedTime(t time.Time) FeedTime {
	return FeedTime{Time: t}
}

// ParseFeedTime interprets a bare HH:MM:SS as today at that wall-clock time
// and anything else as an absolute timestamp.
func ParseFeedTime(s string) (FeedTime, error) {
	s = strings.TrimSpace(s)
	if wallClockRe.MatchString(s) {
		clock, err := time.Parse("15:04:05", s)
		if err != nil {
			return FeedTime{}, err
		}
		now := time.Now()
		t := time.Date(now.Year(), now.Month(), now.Day(),
			clock.Hour(), clock.Minute(), clock.Second(), 0, time.Local)
		return FeedTime{Time: t}, nil
	}
	var lastErr error
	for _, layout := range feedLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return FeedTime{Time: t}, nil
		}
		lastErr = err
	}
	return FeedTime{}, lastErr
}

func (t *FeedTime) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		t.Time = time.Time{}
		return nil
	}
	parsed, err := ParseFeedTime(s)
	if err != nil {
		return err
	}
	t.Time = parsed.Time
	return nil
}

// MarshalJSON writes the wall-clock form, the feed's native encoding.
func (t FeedTime) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + t.WallClock() + `"`), nil
}

// WallClock renders the time-of-day as HH:MM:SS.
func (t FeedTime) WallClock() string {
	return t.Format("15:04:05")
}

// TradeTime is a trading-backend timestamp (createdAt, tradeTime).
type TradeTime struct {
	time.Time
}

// NewTradeTime wraps an absolute time.
func NewTradeTime(t time.Time) TradeTime {
	return TradeTime{Time: t}
}

func (t *TradeTime) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		t.Time = time.Time{}
		return nil
	}
	var lastErr error
	for _, layout := range feedLayouts {
		parsed, err := time.Parse(layout, s)
		if err == nil {
			t.Time = parsed
			return nil
		}
		lastErr = err
	}
	return lastErr
}

func (t TradeTime) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + t.Format(time.RFC3339) + `"`), nil
}
