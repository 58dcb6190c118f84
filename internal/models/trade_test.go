package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTradeStatus(t *testing.T) {
	testCases := []struct {
		name     string
		closing  *Closing
		expected Status
	}{
		{name: "Open", closing: nil, expected: StatusOpen},
		{name: "Win", closing: &Closing{ExitPrice: 1.1, ProfitLoss: 12.5}, expected: StatusWin},
		{name: "Loss", closing: &Closing{ExitPrice: 1.1, ProfitLoss: -3}, expected: StatusLoss},
		{name: "Zero profit is a loss", closing: &Closing{ExitPrice: 1.1, ProfitLoss: 0}, expected: StatusLoss},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			trade := Trade{Closing: tc.closing}
			assert.Equal(t, tc.expected, trade.Status())
			assert.Equal(t, tc.closing != nil, trade.IsClosed())
		})
	}
}

func TestTradeClone(t *testing.T) {
	rr := 2.0
	original := Trade{
		ID:       "a",
		Closing:  &Closing{ExitPrice: 1.2, ProfitLoss: 5, RRRatio: &rr},
		Emotions: []string{"calm"},
	}

	c := original.Clone()
	c.Closing.ProfitLoss = 99
	*c.Closing.RRRatio = 7
	c.Emotions[0] = "fear"

	assert.Equal(t, 5.0, original.Closing.ProfitLoss)
	assert.Equal(t, 2.0, *original.Closing.RRRatio)
	assert.Equal(t, "calm", original.Emotions[0])
}

func TestTradeJSON(t *testing.T) {
	date := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	t.Run("Open trade omits derived fields", func(t *testing.T) {
		data, err := json.Marshal(Trade{ID: "x", TradeDate: date, Symbol: "EURUSD", Direction: Buy})
		require.NoError(t, err)
		assert.NotContains(t, string(data), "exitPrice")
		assert.NotContains(t, string(data), "profitLoss")
	})

	t.Run("Closed trade flattens derived fields", func(t *testing.T) {
		rr := 1.5
		data, err := json.Marshal(Trade{ID: "x", TradeDate: date, Closing: &Closing{ExitPrice: 1.09, ProfitLoss: 20, RRRatio: &rr}})
		require.NoError(t, err)
		assert.Contains(t, string(data), `"exitPrice":1.09`)
		assert.Contains(t, string(data), `"rrRatio":1.5`)

		var decoded Trade
		require.NoError(t, json.Unmarshal(data, &decoded))
		require.NotNil(t, decoded.Closing)
		assert.Equal(t, 20.0, decoded.ProfitLoss)
	})
}

func TestTradeUnmarshalOpenClosed(t *testing.T) {
	testCases := []struct {
		name       string
		body       string
		wantClosed bool
		wantExit   float64
		wantProfit float64
	}{
		{name: "No exit price", body: `{"symbol":"EURUSD"}`, wantClosed: false},
		{name: "Null exit price", body: `{"symbol":"EURUSD","exitPrice":null}`, wantClosed: false},
		{name: "Stale derived values without exit", body: `{"symbol":"EURUSD","profitLoss":40,"rrRatio":2,"slPips":10}`, wantClosed: false},
		{name: "Stale derived values with null exit", body: `{"symbol":"EURUSD","exitPrice":null,"profitLoss":40}`, wantClosed: false},
		{name: "Exit price only", body: `{"symbol":"EURUSD","exitPrice":1.0875}`, wantClosed: true, wantExit: 1.0875},
		{name: "Exit price with derived values", body: `{"symbol":"EURUSD","exitPrice":1.0875,"profitLoss":25}`, wantClosed: true, wantExit: 1.0875, wantProfit: 25},
		{name: "Zero exit price stays closed", body: `{"symbol":"EURUSD","exitPrice":0}`, wantClosed: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var trade Trade
			require.NoError(t, json.Unmarshal([]byte(tc.body), &trade))
			assert.Equal(t, "EURUSD", trade.Symbol)
			require.Equal(t, tc.wantClosed, trade.IsClosed())
			if tc.wantClosed {
				assert.Equal(t, tc.wantExit, trade.ExitPrice)
				assert.Equal(t, tc.wantProfit, trade.ProfitLoss)
			} else {
				assert.Equal(t, StatusOpen, trade.Status())
			}
		})
	}

	t.Run("Slice of trades", func(t *testing.T) {
		var trades []Trade
		require.NoError(t, json.Unmarshal([]byte(`[{"id":"a","exitPrice":null},{"id":"b","exitPrice":2}]`), &trades))
		require.Len(t, trades, 2)
		assert.False(t, trades[0].IsClosed())
		assert.True(t, trades[1].IsClosed())
	})

	t.Run("Malformed", func(t *testing.T) {
		var trade Trade
		assert.Error(t, json.Unmarshal([]byte(`{"exitPrice":"high"}`), &trade))
	})
}

func TestTradePatchApply(t *testing.T) {
	symbol := "XAUUSD"
	exit := 2030.0
	notes := "moved stop"
	trade := Trade{Symbol: "EURUSD", LotSize: 0.1, Notes: "orig"}

	TradePatch{Symbol: &symbol, ExitPrice: &exit, Notes: &notes}.Apply(&trade)

	assert.Equal(t, "XAUUSD", trade.Symbol)
	assert.Equal(t, 0.1, trade.LotSize)
	require.NotNil(t, trade.Closing)
	assert.Equal(t, 2030.0, trade.ExitPrice)
	assert.Equal(t, "moved stop", trade.Notes)

	TradePatch{Reopen: true}.Apply(&trade)
	assert.Nil(t, trade.Closing)
}
