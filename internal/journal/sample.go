package journal

import (
	"context"
	"time"

	"go.uber.org/zap"
	"trade-journal-go/internal/models"
)

type sampleTrade struct {
	daysAgo   int
	hour      int
	symbol    string
	timeframe string
	direction models.Direction
	lot       float64
	entry     float64
	sl        float64
	tp        float64
	exit      float64 // zero for an open trade
	emotions  []string
	notes     string
}

var sampleTrades = []sampleTrade{
	{20, 9, "EURUSD", "H1", models.Buy, 0.1, 1.0850, 1.0820, 1.0900, 1.0875, []string{"confident", "disciplined"}, "Breakout above London range, partial target hit."},
	{16, 14, "XAUUSD", "H4", models.Sell, 0.1, 2050, 2060, 2030, 2046.25, []string{"patient"}, "Rejection at resistance."},
	{12, 10, "GBPUSD", "H1", models.Buy, 0.1, 1.2700, 1.2640, 1.2820, 1.2640, []string{"fomo"}, "Entered late after the move, stopped out."},
	{8, 18, "BTCUSD", "D1", models.Buy, 1, 42000, 41000, 44000, 42120, []string{"calm"}, "Trend continuation, closed early before the weekend."},
	{5, 11, "AUDUSD", "M30", models.Sell, 0.3, 0.6550, 0.6580, 0.6490, 0.6580, []string{"revenge", "anxious"}, `Ignored the "no trade" rule after a loss.`},
	{2, 8, "EURUSD", "M15", models.Sell, 0.2, 1.0900, 1.0930, 1.0840, 0, []string{"focused"}, "Waiting for NY session."},
	{1, 15, "ETHUSD", "H4", models.Buy, 0.5, 2300, 2200, 2500, 0, nil, ""},
	{0, 7, "XAUUSD", "H1", models.Buy, 0.1, 2020, 2010, 2045, 2041, []string{"confident"}, "Clean retest of the Asian low."},
}

// LoadSampleTrades submits a fixed demo set through the normal validation and derivation
// path. Trade dates are relative to the current day.
func (j *Journal) LoadSampleTrades(ctx context.Context) ([]models.Trade, error) {
	y, m, d := j.now().UTC().Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	created := make([]models.Trade, 0, len(sampleTrades))
	for _, s := range sampleTrades {
		trade := models.Trade{
			TradeDate:  today.AddDate(0, 0, -s.daysAgo).Add(time.Duration(s.hour) * time.Hour),
			Symbol:     s.symbol,
			Timeframe:  s.timeframe,
			Direction:  s.direction,
			LotSize:    s.lot,
			EntryPrice: s.entry,
			StopLoss:   s.sl,
			TakeProfit: s.tp,
			Emotions:   s.emotions,
			Notes:      s.notes,
		}
		if s.exit != 0 {
			trade.Closing = &models.Closing{ExitPrice: s.exit}
		}

		t, err := j.SubmitTrade(ctx, trade)
		if err != nil {
			return created, err
		}
		created = append(created, t)
	}

	j.logger.Info("Sample trades loaded", zap.Int("count", len(created)))
	return created, nil
}
