// Package validator checks a candidate trade before it is accepted into the journal.
package validator

import (
	"fmt"
	"strings"

	"trade-journal-go/internal/models"
)

// ValidationError names the field whose rule failed.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid trade: %s", e.Reason)
}

func invalid(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// Validate runs the rules in order and reports the first failure:
// required fields, positive lot size, positive entry, then stop-loss/take-profit placement.
func Validate(t *models.Trade) error {
	if err := checkRequired(t); err != nil {
		return err
	}
	if t.LotSize <= 0 {
		return invalid("lotSize", "lot size must be greater than 0, got %g", t.LotSize)
	}
	if t.EntryPrice <= 0 {
		return invalid("entryPrice", "entry price must be greater than 0, got %g", t.EntryPrice)
	}
	if err := checkDirection(t); err != nil {
		return err
	}
	if t.Closing != nil && t.Closing.ExitPrice <= 0 {
		return invalid("exitPrice", "exit price must be greater than 0, got %g", t.Closing.ExitPrice)
	}
	return nil
}

func checkRequired(t *models.Trade) error {
	switch {
	case t.TradeDate.IsZero():
		return invalid("tradeDate", "trade date is required")
	case strings.TrimSpace(t.Symbol) == "":
		return invalid("symbol", "symbol is required")
	case t.Direction == "":
		return invalid("direction", "direction is required")
	case t.EntryPrice == 0:
		return invalid("entryPrice", "entry price is required")
	case t.StopLoss == 0:
		return invalid("stopLoss", "stop loss is required")
	case t.TakeProfit == 0:
		return invalid("takeProfit", "take profit is required")
	case t.LotSize == 0:
		return invalid("lotSize", "lot size is required")
	}
	return nil
}

func checkDirection(t *models.Trade) error {
	switch t.Direction {
	case models.Buy:
		if t.StopLoss >= t.EntryPrice {
			return invalid("stopLoss", "BUY stop loss %g must be below entry %g", t.StopLoss, t.EntryPrice)
		}
		if t.TakeProfit <= t.EntryPrice {
			return invalid("takeProfit", "BUY take profit %g must be above entry %g", t.TakeProfit, t.EntryPrice)
		}
	case models.Sell:
		if t.StopLoss <= t.EntryPrice {
			return invalid("stopLoss", "SELL stop loss %g must be above entry %g", t.StopLoss, t.EntryPrice)
		}
		if t.TakeProfit >= t.EntryPrice {
			return invalid("takeProfit", "SELL take profit %g must be below entry %g", t.TakeProfit, t.EntryPrice)
		}
	default:
		return invalid("direction", "direction must be BUY or SELL, got %q", t.Direction)
	}
	return nil
}
