// Package stats derives performance figures from a snapshot of trades.
// Status classification comes from models.Trade.Status so it always agrees with the filter package.
package stats

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"
	"trade-journal-go/internal/models"
)

// SymbolStats aggregates every trade of one symbol.
type SymbolStats struct {
	TradeCount int     `json:"tradeCount"`
	Wins       int     `json:"wins"`
	Losses     int     `json:"losses"`
	OpenCount  int     `json:"openCount"`
	ProfitSum  float64 `json:"profitSum"`
}

// TimeframeStats aggregates every trade of one timeframe. WinRate covers closed trades only.
type TimeframeStats struct {
	TradeCount int     `json:"tradeCount"`
	ProfitSum  float64 `json:"profitSum"`
	WinRate    float64 `json:"winRate"`
}

// Summary holds the derived statistics of a trade set. Every field is zero for an empty set.
type Summary struct {
	TotalTrades          int                       `json:"totalTrades"`
	ClosedTrades         int                       `json:"closedTrades"`
	OpenTrades           int                       `json:"openTrades"`
	Wins                 int                       `json:"wins"`
	Losses               int                       `json:"losses"`
	WinRate              float64                   `json:"winRate"`
	TotalProfit          float64                   `json:"totalProfit"`
	AvgTrade             float64                   `json:"avgTrade"`
	BestTrade            float64                   `json:"bestTrade"`
	WorstTrade           float64                   `json:"worstTrade"`
	AvgRR                float64                   `json:"avgRR"`
	MaxConsecutiveWins   int                       `json:"maxConsecutiveWins"`
	MaxConsecutiveLosses int                       `json:"maxConsecutiveLosses"`
	MonthlyProfit        float64                   `json:"monthlyProfit"`
	BySymbol             map[string]SymbolStats    `json:"bySymbol"`
	ByTimeframe          map[string]TimeframeStats `json:"byTimeframe"`
}

type timeframeAcc struct {
	count, closed, wins int
	profit              decimal.Decimal
}

// Compute derives a Summary. now decides which trades fall in the current calendar month.
func Compute(trades []models.Trade, now time.Time) Summary {
	s := Summary{
		TotalTrades: len(trades),
		BySymbol:    make(map[string]SymbolStats),
		ByTimeframe: make(map[string]TimeframeStats),
	}

	var (
		total, monthly, rrSum decimal.Decimal
		rrCount               int
		best, worst           float64
		timeframes            = make(map[string]*timeframeAcc)
	)
	year, month, _ := now.Date()

	for i := range trades {
		t := &trades[i]
		status := t.Status()

		sym := s.BySymbol[t.Symbol]
		sym.TradeCount++
		tf, ok := timeframes[t.Timeframe]
		if !ok {
			tf = &timeframeAcc{}
			timeframes[t.Timeframe] = tf
		}
		tf.count++

		if status == models.StatusOpen {
			s.OpenTrades++
			sym.OpenCount++
			s.BySymbol[t.Symbol] = sym
			continue
		}

		profit := t.ProfitLoss
		if s.ClosedTrades == 0 || profit > best {
			best = profit
		}
		if s.ClosedTrades == 0 || profit < worst {
			worst = profit
		}
		s.ClosedTrades++
		tf.closed++

		p := decimal.NewFromFloat(profit)
		total = total.Add(p)
		sym.ProfitSum = decimal.NewFromFloat(sym.ProfitSum).Add(p).Round(2).InexactFloat64()
		tf.profit = tf.profit.Add(p)

		if status == models.StatusWin {
			s.Wins++
			sym.Wins++
			tf.wins++
		} else {
			s.Losses++
			sym.Losses++
		}
		s.BySymbol[t.Symbol] = sym

		if t.RRRatio != nil {
			rrSum = rrSum.Add(decimal.NewFromFloat(*t.RRRatio))
			rrCount++
		}

		ty, tm, _ := t.TradeDate.In(now.Location()).Date()
		if ty == year && tm == month {
			monthly = monthly.Add(p)
		}
	}

	for name, acc := range timeframes {
		s.ByTimeframe[name] = TimeframeStats{
			TradeCount: acc.count,
			ProfitSum:  acc.profit.Round(2).InexactFloat64(),
			WinRate:    percent(acc.wins, acc.closed),
		}
	}

	if s.ClosedTrades > 0 {
		s.WinRate = percent(s.Wins, s.ClosedTrades)
		s.TotalProfit = total.Round(2).InexactFloat64()
		s.AvgTrade = total.Div(decimal.NewFromInt(int64(s.ClosedTrades))).Round(2).InexactFloat64()
		s.BestTrade = best
		s.WorstTrade = worst
		s.MonthlyProfit = monthly.Round(2).InexactFloat64()
	}
	if rrCount > 0 {
		s.AvgRR = rrSum.Div(decimal.NewFromInt(int64(rrCount))).Round(2).InexactFloat64()
	}
	s.MaxConsecutiveWins, s.MaxConsecutiveLosses = Streaks(trades)

	return s
}

// percent returns part/whole*100 with one decimal, or 0 when whole is 0.
func percent(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return decimal.NewFromInt(int64(part)).Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(int64(whole))).Round(1).InexactFloat64()
}

// Streaks scans closed trades in trade-date order with a signed run counter and returns the
// longest run of wins and the longest run of losses.
func Streaks(trades []models.Trade) (maxWins, maxLosses int) {
	closed := chronologicalClosed(trades)

	run := 0
	for i := range closed {
		if closed[i].Status() == models.StatusWin {
			if run > 0 {
				run++
			} else {
				run = 1
			}
			maxWins = max(maxWins, run)
		} else {
			if run < 0 {
				run--
			} else {
				run = -1
			}
			maxLosses = max(maxLosses, -run)
		}
	}
	return maxWins, maxLosses
}

// chronologicalClosed returns the closed trades ordered by trade date, ties kept in input order.
func chronologicalClosed(trades []models.Trade) []models.Trade {
	closed := make([]models.Trade, 0, len(trades))
	for i := range trades {
		if trades[i].IsClosed() {
			closed = append(closed, trades[i])
		}
	}
	slices.SortStableFunc(closed, func(a, b models.Trade) int {
		return a.TradeDate.Compare(b.TradeDate)
	})
	return closed
}
