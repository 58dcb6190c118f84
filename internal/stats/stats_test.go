package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"trade-journal-go/internal/models"
)

var now = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func closedTrade(id, symbol, timeframe string, date time.Time, profit float64, rr *float64) models.Trade {
	return models.Trade{
		ID: id, Symbol: symbol, Timeframe: timeframe, TradeDate: date,
		Closing: &models.Closing{ExitPrice: 1, ProfitLoss: profit, RRRatio: rr},
	}
}

func openTrade(id, symbol, timeframe string, date time.Time) models.Trade {
	return models.Trade{ID: id, Symbol: symbol, Timeframe: timeframe, TradeDate: date}
}

func ratio(v float64) *float64 { return &v }

func TestComputeEmpty(t *testing.T) {
	s := Compute(nil, now)

	assert.Equal(t, 0, s.TotalTrades)
	assert.Equal(t, 0.0, s.WinRate)
	assert.Equal(t, 0.0, s.TotalProfit)
	assert.Equal(t, 0.0, s.AvgTrade)
	assert.Equal(t, 0.0, s.BestTrade)
	assert.Equal(t, 0.0, s.WorstTrade)
	assert.Equal(t, 0.0, s.AvgRR)
	assert.Equal(t, 0, s.MaxConsecutiveWins)
	assert.Equal(t, 0, s.MaxConsecutiveLosses)
	assert.Empty(t, s.BySymbol)
	assert.Empty(t, s.ByTimeframe)
}

func TestComputeOnlyOpenTrades(t *testing.T) {
	s := Compute([]models.Trade{openTrade("o1", "EURUSD", "H1", now)}, now)

	assert.Equal(t, 1, s.TotalTrades)
	assert.Equal(t, 1, s.OpenTrades)
	assert.Equal(t, 0, s.ClosedTrades)
	assert.Equal(t, 0.0, s.WinRate)
	assert.Equal(t, SymbolStats{TradeCount: 1, OpenCount: 1}, s.BySymbol["EURUSD"])
	assert.Equal(t, TimeframeStats{TradeCount: 1}, s.ByTimeframe["H1"])
}

func TestCompute(t *testing.T) {
	thisMonth := time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC)
	lastMonth := time.Date(2024, 5, 20, 9, 0, 0, 0, time.UTC)
	lastYear := time.Date(2023, 6, 10, 9, 0, 0, 0, time.UTC)

	trades := []models.Trade{
		closedTrade("a", "EURUSD", "H1", lastYear, 100.10, ratio(2)),
		closedTrade("b", "EURUSD", "H1", lastMonth, -50.05, ratio(1.5)),
		closedTrade("c", "XAUUSD", "H4", thisMonth, 37.5, nil),
		closedTrade("d", "XAUUSD", "H4", thisMonth.Add(time.Hour), 0, ratio(1)),
		openTrade("e", "EURUSD", "D1", thisMonth),
	}

	s := Compute(trades, now)

	assert.Equal(t, 5, s.TotalTrades)
	assert.Equal(t, 4, s.ClosedTrades)
	assert.Equal(t, 1, s.OpenTrades)
	assert.Equal(t, 2, s.Wins)
	assert.Equal(t, 2, s.Losses, "zero profit counts as a loss")
	assert.Equal(t, 50.0, s.WinRate)
	assert.Equal(t, 87.55, s.TotalProfit)
	assert.Equal(t, 21.89, s.AvgTrade)
	assert.Equal(t, 100.10, s.BestTrade)
	assert.Equal(t, -50.05, s.WorstTrade)
	assert.Equal(t, 1.5, s.AvgRR)
	assert.Equal(t, 37.5, s.MonthlyProfit)
	assert.Equal(t, 1, s.MaxConsecutiveWins)
	assert.Equal(t, 1, s.MaxConsecutiveLosses)

	assert.Equal(t, SymbolStats{TradeCount: 3, Wins: 1, Losses: 1, OpenCount: 1, ProfitSum: 50.05}, s.BySymbol["EURUSD"])
	assert.Equal(t, SymbolStats{TradeCount: 2, Wins: 1, Losses: 1, ProfitSum: 37.5}, s.BySymbol["XAUUSD"])

	assert.Equal(t, TimeframeStats{TradeCount: 2, ProfitSum: 50.05, WinRate: 50}, s.ByTimeframe["H1"])
	assert.Equal(t, TimeframeStats{TradeCount: 2, ProfitSum: 37.5, WinRate: 50}, s.ByTimeframe["H4"])
	assert.Equal(t, TimeframeStats{TradeCount: 1}, s.ByTimeframe["D1"])
}

func TestWinRateRounding(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	trades := []models.Trade{
		closedTrade("1", "EURUSD", "H1", base, 10, nil),
		closedTrade("2", "EURUSD", "H1", base.Add(time.Hour), -5, nil),
		closedTrade("3", "EURUSD", "H1", base.Add(2*time.Hour), -5, nil),
	}
	assert.Equal(t, 33.3, Compute(trades, now).WinRate)
}

func TestStreaks(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	build := func(profits ...float64) []models.Trade {
		out := make([]models.Trade, len(profits))
		// stored newest first to check that the scan orders by trade date
		for i, p := range profits {
			out[len(profits)-1-i] = closedTrade("", "EURUSD", "H1", base.AddDate(0, 0, i), p, nil)
		}
		return out
	}

	testCases := []struct {
		name           string
		trades         []models.Trade
		expectedWins   int
		expectedLosses int
	}{
		{name: "Mixed", trades: build(10, 20, -5, -5, -5, 30), expectedWins: 2, expectedLosses: 3},
		{name: "All wins", trades: build(1, 2, 3, 4), expectedWins: 4, expectedLosses: 0},
		{name: "Zero profit extends losses", trades: build(-1, 0, -2, 5), expectedWins: 1, expectedLosses: 3},
		{name: "Alternating", trades: build(1, -1, 1, -1), expectedWins: 1, expectedLosses: 1},
		{name: "Empty", trades: nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			wins, losses := Streaks(tc.trades)
			assert.Equal(t, tc.expectedWins, wins)
			assert.Equal(t, tc.expectedLosses, losses)
		})
	}

	t.Run("Open trades are skipped", func(t *testing.T) {
		trades := build(5, 5, -1)
		trades = append(trades, openTrade("o", "EURUSD", "H1", base.AddDate(0, 0, 1)))
		wins, _ := Streaks(trades)
		assert.Equal(t, 2, wins)
	})
}

func TestEquityCurve(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	trades := []models.Trade{
		closedTrade("late", "EURUSD", "H1", base.AddDate(0, 0, 2), -30.25, nil),
		openTrade("open", "EURUSD", "H1", base.AddDate(0, 0, 1)),
		closedTrade("early", "EURUSD", "H1", base, 100.5, nil),
	}

	curve := EquityCurve(trades, 10000)
	require.Len(t, curve, 3)
	assert.Equal(t, EquityPoint{Index: 0, Equity: 10000}, curve[0])
	assert.Equal(t, EquityPoint{Index: 1, TradeID: "early", Equity: 10100.5}, curve[1])
	assert.Equal(t, EquityPoint{Index: 2, TradeID: "late", Equity: 10070.25}, curve[2])

	assert.Equal(t, []EquityPoint{{Index: 0, Equity: 500}}, EquityCurve(nil, 500))
}

func TestMonthly(t *testing.T) {
	trades := []models.Trade{
		closedTrade("a", "EURUSD", "H1", time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC), 20, nil),
		closedTrade("b", "EURUSD", "H4", time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), -10, nil),
		closedTrade("c", "EURUSD", "H1", time.Date(2024, 2, 20, 0, 0, 0, 0, time.UTC), 5.5, nil),
		openTrade("d", "EURUSD", "H1", time.Date(2024, 2, 25, 0, 0, 0, 0, time.UTC)),
	}

	assert.Equal(t, []MonthBucket{
		{Month: "2024-01", Profit: -10, Trades: 1},
		{Month: "2024-02", Profit: 25.5, Trades: 3},
	}, Monthly(trades, ""))

	assert.Equal(t, []MonthBucket{{Month: "2024-02", Profit: 25.5, Trades: 3}}, Monthly(trades, "H1"))
	assert.Empty(t, Monthly(trades, "M15"))
}
