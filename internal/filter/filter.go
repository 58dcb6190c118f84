// Package filter selects, orders and pages trades for the history and dashboard views.
package filter

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"trade-journal-go/internal/models"
)

// DateWindow is a relative window ending now.
type DateWindow string

const (
	Today       DateWindow = "today"
	Week        DateWindow = "week"
	Month       DateWindow = "month"
	Last3Months DateWindow = "last3months"
)

// Since returns the earliest trade date inside the window. ok is false for an empty
// or unknown window, which means no date filtering.
func (w DateWindow) Since(now time.Time) (since time.Time, ok bool) {
	switch w {
	case Today:
		y, m, d := now.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, now.Location()), true
	case Week:
		return now.AddDate(0, 0, -7), true
	case Month:
		return now.AddDate(0, -1, 0), true
	case Last3Months:
		return now.AddDate(0, -3, 0), true
	default:
		return time.Time{}, false
	}
}

// SortField names the trade attribute to order by.
type SortField string

const (
	ByDate    SortField = "date"
	BySymbol  SortField = "symbol"
	ByProfit  SortField = "profit"
	ByLotSize SortField = "lotSize"
	ByCreated SortField = "created"
)

// SortOrder is asc or desc.
type SortOrder string

const (
	Asc  SortOrder = "asc"
	Desc SortOrder = "desc"
)

// Sort is a field plus direction. The zero value sorts by trade date, newest first.
type Sort struct {
	Field SortField `json:"field"`
	Order SortOrder `json:"order"`
}

// DefaultSort orders by trade date, newest first.
var DefaultSort = Sort{Field: ByDate, Order: Desc}

// ParseSort accepts "field", "field-order" or "field order", e.g. "date-desc" or "profit asc".
// An empty string yields DefaultSort.
func ParseSort(s string) (Sort, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultSort, nil
	}
	parts := strings.FieldsFunc(s, func(r rune) bool { return r == '-' || r == ' ' || r == ':' })
	if len(parts) == 0 || len(parts) > 2 {
		return Sort{}, fmt.Errorf("%w: sort %q", ErrInvalidSpec, s)
	}

	sort := Sort{Field: SortField(parts[0]), Order: Asc}
	if len(parts) > 1 {
		sort.Order = SortOrder(strings.ToLower(parts[1]))
	}

	switch sort.Field {
	case ByDate, BySymbol, ByProfit, ByLotSize, ByCreated:
	default:
		return Sort{}, fmt.Errorf("%w: unknown sort field %q", ErrInvalidSpec, sort.Field)
	}
	if sort.Order != Asc && sort.Order != Desc {
		return Sort{}, fmt.Errorf("%w: unknown sort order %q", ErrInvalidSpec, sort.Order)
	}
	return sort, nil
}

// Spec selects trades. Empty fields do not constrain the result.
type Spec struct {
	Symbol    string           `json:"symbol,omitempty"`
	Direction models.Direction `json:"direction,omitempty"`
	Timeframe string           `json:"timeframe,omitempty"`
	Result    models.Status    `json:"result,omitempty"`
	Date      DateWindow       `json:"date,omitempty"`
	SortBy    Sort             `json:"sortBy"`
}

// ErrInvalidSpec is returned for a direction, result or sort that cannot match any trade.
var ErrInvalidSpec = errors.New("invalid filter")

// Params is the raw user input for a Spec, as read from a query string or flags.
type Params struct {
	Symbol    string
	Direction string
	Timeframe string
	Result    string
	Date      string
	Sort      string
}

// NewSpec builds a Spec from user input. Symbol, direction and result are trimmed and
// upper-cased the same way stored trades are.
func NewSpec(p Params) (Spec, error) {
	sort, err := ParseSort(p.Sort)
	if err != nil {
		return Spec{}, err
	}
	spec := Spec{
		Symbol:    strings.ToUpper(strings.TrimSpace(p.Symbol)),
		Direction: models.Direction(strings.ToUpper(strings.TrimSpace(p.Direction))),
		Timeframe: strings.TrimSpace(p.Timeframe),
		Result:    models.Status(strings.ToUpper(strings.TrimSpace(p.Result))),
		Date:      DateWindow(strings.ToLower(strings.TrimSpace(p.Date))),
		SortBy:    sort,
	}
	if spec.Direction != "" && !spec.Direction.Valid() {
		return Spec{}, fmt.Errorf("%w: direction %q must be BUY or SELL", ErrInvalidSpec, p.Direction)
	}
	switch spec.Result {
	case "", models.StatusOpen, models.StatusWin, models.StatusLoss:
	default:
		return Spec{}, fmt.Errorf("%w: result %q must be WIN, LOSS or OPEN", ErrInvalidSpec, p.Result)
	}
	return spec, nil
}

// Apply returns the trades matching spec, stably sorted. The input slice is not modified
// and the result shares no mutable state with it.
func Apply(trades []models.Trade, spec Spec, now time.Time) []models.Trade {
	since, hasWindow := spec.Date.Since(now)

	out := make([]models.Trade, 0, len(trades))
	for i := range trades {
		t := &trades[i]
		if spec.Symbol != "" && t.Symbol != spec.Symbol {
			continue
		}
		if spec.Direction != "" && t.Direction != spec.Direction {
			continue
		}
		if spec.Timeframe != "" && t.Timeframe != spec.Timeframe {
			continue
		}
		if spec.Result != "" && t.Status() != spec.Result {
			continue
		}
		if hasWindow && t.TradeDate.Before(since) {
			continue
		}
		out = append(out, t.Clone())
	}

	SortTrades(out, spec.SortBy)
	return out
}

// SortTrades stably sorts trades in place. Open trades count as zero profit.
func SortTrades(trades []models.Trade, s Sort) {
	if s.Field == "" {
		s.Field = DefaultSort.Field
	}
	if s.Order == "" {
		s.Order = DefaultSort.Order
	}

	var compare func(a, b *models.Trade) int
	switch s.Field {
	case BySymbol:
		compare = func(a, b *models.Trade) int { return strings.Compare(a.Symbol, b.Symbol) }
	case ByProfit:
		compare = func(a, b *models.Trade) int { return cmp.Compare(a.Profit(), b.Profit()) }
	case ByLotSize:
		compare = func(a, b *models.Trade) int { return cmp.Compare(a.LotSize, b.LotSize) }
	case ByCreated:
		compare = func(a, b *models.Trade) int { return a.CreatedAt.Compare(b.CreatedAt) }
	default:
		compare = func(a, b *models.Trade) int { return a.TradeDate.Compare(b.TradeDate) }
	}

	slices.SortStableFunc(trades, func(a, b models.Trade) int {
		if s.Order == Desc {
			return compare(&b, &a)
		}
		return compare(&a, &b)
	})
}

// Recent returns up to n trades, newest trade date first.
func Recent(trades []models.Trade, n int) []models.Trade {
	out := Apply(trades, Spec{SortBy: DefaultSort}, time.Time{})
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// UniqueSymbols returns the distinct symbols in ascending order.
func UniqueSymbols(trades []models.Trade) []string {
	seen := make(map[string]struct{}, len(trades))
	symbols := make([]string, 0)
	for _, t := range trades {
		if _, ok := seen[t.Symbol]; ok {
			continue
		}
		seen[t.Symbol] = struct{}{}
		symbols = append(symbols, t.Symbol)
	}
	slices.Sort(symbols)
	return symbols
}
