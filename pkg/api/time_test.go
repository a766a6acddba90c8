package api

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFeedTimeWallClock(t *testing.T) {
	got, err := ParseFeedTime("14:30:05")
	require.NoError(t, err)

	now := time.Now()
	assert.Equal(t, now.Year(), got.Year())
	assert.Equal(t, now.Month(), got.Month())
	assert.Equal(t, now.Day(), got.Day())
	assert.Equal(t, 14, got.Hour())
	assert.Equal(t, 30, got.Minute())
	assert.Equal(t, 5, got.Second())
}

func TestParseFeedTimeAbsolute(t *testing.T) {
	tests := []string{
		"2026-09-01T14:30:05Z",
		"2026-09-01T14:30:05",
		"2026-09-01 14:30:05",
	}
	for _, raw := range tests {
		got, err := ParseFeedTime(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, 2026, got.Year(), raw)
		assert.Equal(t, 14, got.Hour(), raw)
	}
}

func TestParseFeedTimeRejectsGarbage(t *testing.T) {
	_, err := ParseFeedTime("not a time")
	assert.Error(t, err)

	// 25:00:00 is not a wall-clock time and no absolute layout matches.
	_, err = ParseFeedTime("25:00:00")
	assert.Error(t, err)
}

func TestFeedTimeWallClockRoundTrip(t *testing.T) {
	// Marshal emits HH:MM:SS; parsing that again must land on the same
	// second of the same day.
	original, err := ParseFeedTime("09:15:42")
	require.NoError(t, err)

	data, err := json.Marshal(original)
	require.NoError(t, err)
	assert.Equal(t, `"09:15:42"`, string(data))

	var parsed FeedTime
	require.NoError(t, json.Unmarshal(data, &parsed))
	assert.True(t, original.Equal(parsed.Time), "got %s, want %s", parsed, original.Time)
}

func TestFeedTimeNull(t *testing.T) {
	var ft FeedTime
	require.NoError(t, json.Unmarshal([]byte("null"), &ft))
	assert.True(t, ft.IsZero())

	data, err := json.Marshal(FeedTime{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(data))
}

func TestFeedTimeInStruct(t *testing.T) {
	var price StockPrice
	raw := `{"symbol":"aapl","price":"187.30","timeStamp":"10:05:00"}`
	require.NoError(t, json.Unmarshal([]byte(raw), &price))
	assert.Equal(t, "10:05:00", price.TimeStamp.WallClock())
}

func TestTradeTimeRoundTrip(t *testing.T) {
	at := time.Date(2026, 9, 1, 10, 30, 0, 0, time.UTC)
	data, err := json.Marshal(TradeTime{Time: at})
	require.NoError(t, err)
	assert.Equal(t, `"2026-09-01T10:30:00Z"`, string(data))

	var parsed TradeTime
	require.NoError(t, json.Unmarshal(data, &parsed))
	assert.True(t, at.Equal(parsed.Time))
}

func TestNormalizeTicker(t *testing.T) {
	assert.Equal(t, "AAPL", NormalizeTicker(" aapl "))
	assert.Equal(t, "MSFT", NormalizeTicker("MsFt"))
	assert.Equal(t, "", NormalizeTicker("  "))
}
