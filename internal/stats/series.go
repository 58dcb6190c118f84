package stats

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/shopspring/decimal"
	"trade-journal-go/internal/models"
)

// EquityPoint is the account balance after a closed trade. The first point is the
// starting balance and has an empty TradeID.
type EquityPoint struct {
	Index   int     `json:"index"`
	TradeID string  `json:"tradeId,omitempty"`
	Equity  float64 `json:"equity"`
}

// EquityCurve replays closed trades in trade-date order on top of startingBalance.
func EquityCurve(trades []models.Trade, startingBalance float64) []EquityPoint {
	closed := chronologicalClosed(trades)

	equity := decimal.NewFromFloat(startingBalance)
	points := make([]EquityPoint, 0, len(closed)+1)
	points = append(points, EquityPoint{Index: 0, Equity: equity.InexactFloat64()})
	for i := range closed {
		equity = equity.Add(decimal.NewFromFloat(closed[i].ProfitLoss))
		points = append(points, EquityPoint{
			Index:   i + 1,
			TradeID: closed[i].ID,
			Equity:  equity.Round(2).InexactFloat64(),
		})
	}
	return points
}

// MonthBucket totals the trades of one calendar month (YYYY-MM).
type MonthBucket struct {
	Month  string  `json:"month"`
	Profit float64 `json:"profit"`
	Trades int     `json:"trades"`
}

// Monthly groups trades by the month of their trade date, oldest month first.
// A non-empty timeframe restricts the series to that timeframe. Open trades count
// towards Trades but contribute no profit.
func Monthly(trades []models.Trade, timeframe string) []MonthBucket {
	type acc struct {
		profit decimal.Decimal
		trades int
	}
	months := make(map[string]*acc)

	for i := range trades {
		t := &trades[i]
		if timeframe != "" && t.Timeframe != timeframe {
			continue
		}
		key := fmt.Sprintf("%04d-%02d", t.TradeDate.Year(), int(t.TradeDate.Month()))
		a, ok := months[key]
		if !ok {
			a = &acc{}
			months[key] = a
		}
		a.trades++
		a.profit = a.profit.Add(decimal.NewFromFloat(t.Profit()))
	}

	out := make([]MonthBucket, 0, len(months))
	for key, a := range months {
		out = append(out, MonthBucket{Month: key, Profit: a.profit.Round(2).InexactFloat64(), Trades: a.trades})
	}
	slices.SortFunc(out, func(a, b MonthBucket) int { return cmp.Compare(a.Month, b.Month) })
	return out
}
