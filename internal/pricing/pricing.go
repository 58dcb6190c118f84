// Package pricing maps prices and lot sizes to pips, profit/loss and risk/reward.
// All functions are pure. Arithmetic runs in decimal so that 1.0875-1.0850 is exactly 0.0025.
package pricing

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
	"trade-journal-go/internal/models"
)

// AssetClass groups symbols that share pip and contract-size conventions.
type AssetClass int

const (
	Forex AssetClass = iota
	Gold
	Crypto
)

func (a AssetClass) String() string {
	switch a {
	case Gold:
		return "Gold"
	case Crypto:
		return "Crypto"
	default:
		return "Forex"
	}
}

// ErrDegenerateRatio is returned when a ratio would divide by a zero stop-loss distance.
var ErrDegenerateRatio = errors.New("risk/reward undefined: stop-loss distance is zero")

var (
	goldMarkers   = []string{"XAU", "GOLD"}
	cryptoMarkers = []string{"BTC", "ETH", "BNB", "XRP", "ADA", "SOL", "DOGE", "CRYPTO"}

	hundred = decimal.NewFromInt(100)
)

// Classify detects the asset class by substring. Gold is checked before Crypto,
// and anything unmatched is Forex, so "XAUBTC" is Gold.
func Classify(symbol string) AssetClass {
	s := strings.ToUpper(symbol)
	if containsAny(s, goldMarkers) {
		return Gold
	}
	if containsAny(s, cryptoMarkers) {
		return Crypto
	}
	return Forex
}

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}

func pipSize(a AssetClass) decimal.Decimal {
	if a == Forex {
		return decimal.New(1, -4)
	}
	return decimal.New(1, -2)
}

func contractSize(a AssetClass) decimal.Decimal {
	switch a {
	case Gold:
		return decimal.NewFromInt(100)
	case Crypto:
		return decimal.NewFromInt(1)
	default:
		return decimal.NewFromInt(100000)
	}
}

// PipSize is the minimum meaningful price increment: 0.0001 for Forex, 0.01 otherwise.
func PipSize(a AssetClass) float64 {
	return pipSize(a).InexactFloat64()
}

// ContractSize is the units per standard lot: Forex 100000, Gold 100, Crypto 1.
func ContractSize(a AssetClass) float64 {
	return contractSize(a).InexactFloat64()
}

// Pips returns |exit-entry| in pips, rounded to 2 decimals. It is symmetric in entry and exit.
func Pips(entry, exit float64, symbol string) float64 {
	delta := decimal.NewFromFloat(exit).Sub(decimal.NewFromFloat(entry)).Abs()
	return delta.Div(pipSize(Classify(symbol))).Round(2).InexactFloat64()
}

// ProfitLoss returns the signed result of a trade in account currency, rounded to 2 decimals.
// For Forex, delta*100000*lots is the same as signed pips * $10 per standard lot.
func ProfitLoss(entry, exit, lotSize float64, direction models.Direction, symbol string) float64 {
	delta := decimal.NewFromFloat(exit).Sub(decimal.NewFromFloat(entry))
	if direction == models.Sell {
		delta = delta.Neg()
	}
	profit := delta.Mul(contractSize(Classify(symbol))).Mul(decimal.NewFromFloat(lotSize))
	return profit.Round(2).InexactFloat64()
}

// RiskReward returns tpPips/slPips rounded to 2 decimals, or ErrDegenerateRatio when slPips is zero.
func RiskReward(slPips, tpPips float64) (float64, error) {
	sl := decimal.NewFromFloat(slPips)
	if sl.IsZero() {
		return 0, ErrDegenerateRatio
	}
	return decimal.NewFromFloat(tpPips).Div(sl).Round(2).InexactFloat64(), nil
}

// Enrich recomputes every derived field of a closed trade from its prices, ignoring whatever
// values were there before. Open trades are left untouched. When the stop-loss distance is
// zero the risk/reward ratio is left nil.
func Enrich(t *models.Trade) {
	if t.Closing == nil {
		return
	}

	slPips := Pips(t.EntryPrice, t.StopLoss, t.Symbol)
	tpPips := Pips(t.EntryPrice, t.TakeProfit, t.Symbol)

	closing := models.Closing{
		ExitPrice:  t.Closing.ExitPrice,
		ProfitLoss: ProfitLoss(t.EntryPrice, t.Closing.ExitPrice, t.LotSize, t.Direction, t.Symbol),
		SLPips:     slPips,
		TPPips:     tpPips,
	}
	if rr, err := RiskReward(slPips, tpPips); err == nil {
		closing.RRRatio = &rr
	}
	t.Closing = &closing
}
