package validator

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"trade-journal-go/internal/models"
)

func validBuy() models.Trade {
	return models.Trade{
		TradeDate:  time.Date(2024, 5, 2, 9, 30, 0, 0, time.UTC),
		Symbol:     "EURUSD",
		Timeframe:  "H1",
		Direction:  models.Buy,
		LotSize:    0.1,
		EntryPrice: 100,
		StopLoss:   95,
		TakeProfit: 110,
	}
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name          string
		mutate        func(tr *models.Trade)
		expectedField string
	}{
		{name: "Valid BUY", mutate: func(tr *models.Trade) {}},
		{name: "Valid SELL", mutate: func(tr *models.Trade) {
			tr.Direction, tr.StopLoss, tr.TakeProfit = models.Sell, 105, 90
		}},
		{name: "Valid closed", mutate: func(tr *models.Trade) { tr.Closing = &models.Closing{ExitPrice: 104} }},
		{name: "Missing date", mutate: func(tr *models.Trade) { tr.TradeDate = time.Time{} }, expectedField: "tradeDate"},
		{name: "Blank symbol", mutate: func(tr *models.Trade) { tr.Symbol = "  " }, expectedField: "symbol"},
		{name: "Missing direction", mutate: func(tr *models.Trade) { tr.Direction = "" }, expectedField: "direction"},
		{name: "Missing stop loss", mutate: func(tr *models.Trade) { tr.StopLoss = 0 }, expectedField: "stopLoss"},
		{name: "Missing take profit", mutate: func(tr *models.Trade) { tr.TakeProfit = 0 }, expectedField: "takeProfit"},
		{name: "Missing lot size", mutate: func(tr *models.Trade) { tr.LotSize = 0 }, expectedField: "lotSize"},
		{name: "Negative lot size", mutate: func(tr *models.Trade) { tr.LotSize = -1 }, expectedField: "lotSize"},
		{name: "Negative entry", mutate: func(tr *models.Trade) { tr.EntryPrice = -100 }, expectedField: "entryPrice"},
		{name: "BUY stop above entry", mutate: func(tr *models.Trade) { tr.StopLoss = 105 }, expectedField: "stopLoss"},
		{name: "BUY stop equal to entry", mutate: func(tr *models.Trade) { tr.StopLoss = 100 }, expectedField: "stopLoss"},
		{name: "BUY target below entry", mutate: func(tr *models.Trade) { tr.TakeProfit = 99 }, expectedField: "takeProfit"},
		{name: "SELL stop below entry", mutate: func(tr *models.Trade) {
			tr.Direction, tr.StopLoss, tr.TakeProfit = models.Sell, 95, 90
		}, expectedField: "stopLoss"},
		{name: "SELL target above entry", mutate: func(tr *models.Trade) {
			tr.Direction, tr.StopLoss, tr.TakeProfit = models.Sell, 105, 101
		}, expectedField: "takeProfit"},
		{name: "Unknown direction", mutate: func(tr *models.Trade) { tr.Direction = "HOLD" }, expectedField: "direction"},
		{name: "Negative exit", mutate: func(tr *models.Trade) { tr.Closing = &models.Closing{ExitPrice: -1} }, expectedField: "exitPrice"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			trade := validBuy()
			tc.mutate(&trade)

			err := Validate(&trade)
			if tc.expectedField == "" {
				assert.NoError(t, err)
				return
			}

			var ve *ValidationError
			require.True(t, errors.As(err, &ve), "expected ValidationError, got %v", err)
			assert.Equal(t, tc.expectedField, ve.Field)
			assert.NotEmpty(t, ve.Reason)
		})
	}
}

func TestValidateFirstFailureWins(t *testing.T) {
	// Both the lot size and the stop placement are wrong; the lot size rule runs first.
	trade := validBuy()
	trade.LotSize = -0.5
	trade.StopLoss = 150

	var ve *ValidationError
	require.ErrorAs(t, Validate(&trade), &ve)
	assert.Equal(t, "lotSize", ve.Field)
}
