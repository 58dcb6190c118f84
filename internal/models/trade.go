package models

import (
	"encoding/json"
	"time"
)

// Direction is the side of a trade.
type Direction string

const (
	Buy  Direction = "BUY"
	Sell Direction = "SELL"
)

// Valid reports whether d is BUY or SELL.
func (d Direction) Valid() bool {
	return d == Buy || d == Sell
}

// Status is derived from a trade, never stored.
type Status string

const (
	StatusOpen Status = "OPEN"
	StatusWin  Status = "WIN"
	StatusLoss Status = "LOSS"
)

// Closing holds the exit price of a closed trade and everything derived from it.
// A trade carries a Closing if and only if it has been closed.
type Closing struct {
	ExitPrice  float64  `json:"exitPrice"`
	ProfitLoss float64  `json:"profitLoss"`
	RRRatio    *float64 `json:"rrRatio,omitempty"` // nil when the stop-loss distance is zero
	SLPips     float64  `json:"slPips"`
	TPPips     float64  `json:"tpPips"`
}

// Trade is a single journal entry. The embedded *Closing is nil while the trade is open,
// so its JSON form only carries exitPrice/profitLoss/rrRatio/slPips/tpPips once closed.
type Trade struct {
	ID         string    `json:"id"`
	TradeDate  time.Time `json:"tradeDate"`
	Symbol     string    `json:"symbol"`
	Timeframe  string    `json:"timeframe"`
	Direction  Direction `json:"direction"`
	LotSize    float64   `json:"lotSize"`
	EntryPrice float64   `json:"entryPrice"`
	StopLoss   float64   `json:"stopLoss"`
	TakeProfit float64   `json:"takeProfit"`
	*Closing
	Emotions   []string  `json:"emotions,omitempty"`
	Notes      string    `json:"notes,omitempty"`
	Screenshot string    `json:"screenshot,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// UnmarshalJSON treats exitPrice as the only marker of a closed trade. A missing or null
// exitPrice yields an open trade even when stale derived values are present.
func (t *Trade) UnmarshalJSON(data []byte) error {
	type plain Trade
	var wire struct {
		plain
		ExitPrice *float64 `json:"exitPrice"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	*t = Trade(wire.plain)
	if wire.ExitPrice == nil {
		t.Closing = nil
		return nil
	}
	if t.Closing == nil {
		t.Closing = &Closing{}
	}
	t.Closing.ExitPrice = *wire.ExitPrice
	return nil
}

// IsClosed reports whether the trade has an exit price.
func (t *Trade) IsClosed() bool {
	return t.Closing != nil
}

// Profit returns the realized profit, or 0 for an open trade.
func (t *Trade) Profit() float64 {
	if t.Closing == nil {
		return 0
	}
	return t.Closing.ProfitLoss
}

// Status derives OPEN/WIN/LOSS. A closed trade with exactly zero profit is a LOSS.
func (t *Trade) Status() Status {
	switch {
	case t.Closing == nil:
		return StatusOpen
	case t.Closing.ProfitLoss > 0:
		return StatusWin
	default:
		return StatusLoss
	}
}

// Clone returns a deep copy that shares no mutable state with t.
func (t *Trade) Clone() Trade {
	c := *t
	if t.Closing != nil {
		closing := *t.Closing
		if t.Closing.RRRatio != nil {
			rr := *t.Closing.RRRatio
			closing.RRRatio = &rr
		}
		c.Closing = &closing
	}
	if t.Emotions != nil {
		c.Emotions = append([]string(nil), t.Emotions...)
	}
	return c
}

// CloneTrades deep-copies a slice of trades.
func CloneTrades(trades []Trade) []Trade {
	out := make([]Trade, len(trades))
	for i := range trades {
		out[i] = trades[i].Clone()
	}
	return out
}
