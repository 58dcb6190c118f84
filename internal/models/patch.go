package models

import "time"

// TradePatch is a partial trade. Nil fields are left untouched by Apply.
// It doubles as the payload of a Draft.
type TradePatch struct {
	TradeDate  *time.Time `json:"tradeDate,omitempty"`
	Symbol     *string    `json:"symbol,omitempty"`
	Timeframe  *string    `json:"timeframe,omitempty"`
	Direction  *Direction `json:"direction,omitempty"`
	LotSize    *float64   `json:"lotSize,omitempty"`
	EntryPrice *float64   `json:"entryPrice,omitempty"`
	StopLoss   *float64   `json:"stopLoss,omitempty"`
	TakeProfit *float64   `json:"takeProfit,omitempty"`
	ExitPrice  *float64   `json:"exitPrice,omitempty"`
	// Reopen drops the exit price and every value derived from it.
	Reopen     bool      `json:"reopen,omitempty"`
	Emotions   *[]string `json:"emotions,omitempty"`
	Notes      *string   `json:"notes,omitempty"`
	Screenshot *string   `json:"screenshot,omitempty"`
}

// Apply merges the non-nil fields of p into t. Derived values are not recomputed here.
func (p TradePatch) Apply(t *Trade) {
	if p.TradeDate != nil {
		t.TradeDate = *p.TradeDate
	}
	if p.Symbol != nil {
		t.Symbol = *p.Symbol
	}
	if p.Timeframe != nil {
		t.Timeframe = *p.Timeframe
	}
	if p.Direction != nil {
		t.Direction = *p.Direction
	}
	if p.LotSize != nil {
		t.LotSize = *p.LotSize
	}
	if p.EntryPrice != nil {
		t.EntryPrice = *p.EntryPrice
	}
	if p.StopLoss != nil {
		t.StopLoss = *p.StopLoss
	}
	if p.TakeProfit != nil {
		t.TakeProfit = *p.TakeProfit
	}
	if p.Reopen {
		t.Closing = nil
	}
	if p.ExitPrice != nil {
		t.Closing = &Closing{ExitPrice: *p.ExitPrice}
	}
	if p.Emotions != nil {
		t.Emotions = append([]string(nil), (*p.Emotions)...)
	}
	if p.Notes != nil {
		t.Notes = *p.Notes
	}
	if p.Screenshot != nil {
		t.Screenshot = *p.Screenshot
	}
}

// ToTrade builds an unvalidated trade from the patch.
func (p TradePatch) ToTrade() Trade {
	var t Trade
	p.Apply(&t)
	return t
}
