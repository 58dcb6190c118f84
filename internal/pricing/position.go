package pricing

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultMaxRiskPercent caps the share of the balance risked on one trade.
const DefaultMaxRiskPercent = 10.0

var (
	ErrInvalidSizingInput = errors.New("balance, risk percent and stop-loss pips must be positive")
	ErrRiskTooHigh        = errors.New("risk percent exceeds the allowed maximum")
)

// SizingInput describes the account and stop used to size a position.
type SizingInput struct {
	Balance        float64
	RiskPercent    float64
	StopLossPips   float64
	Symbol         string
	MaxRiskPercent float64 // zero means DefaultMaxRiskPercent
}

// PositionSizing is the recommended position for a SizingInput.
type PositionSizing struct {
	RiskAmount   float64 `json:"riskAmount"`
	PipValue     float64 `json:"pipValue"` // per standard lot
	LotSize      float64 `json:"lotSize"`
	PositionSize float64 `json:"positionSize"`
	Unit         string  `json:"unit"`
	RiskPerPip   float64 `json:"riskPerPip"`
}

// PositionSize computes lot size = risk amount / (stop-loss pips * pip value per lot).
//
// Pip value per lot is PipSize * ContractSize: Forex 10, Gold 1, Crypto 0.01. These are
// derived from the same constants as ProfitLoss, so a position of LotSize lots stopped out
// after StopLossPips loses RiskAmount. They deliberately differ from the fixed Gold 0.01 and
// Crypto 1 per-pip figures common in retail calculators, which do not agree with ProfitLoss.
func PositionSize(in SizingInput) (PositionSizing, error) {
	if in.Balance <= 0 || in.RiskPercent <= 0 || in.StopLossPips <= 0 {
		return PositionSizing{}, ErrInvalidSizingInput
	}
	maxRisk := in.MaxRiskPercent
	if maxRisk <= 0 {
		maxRisk = DefaultMaxRiskPercent
	}
	if in.RiskPercent > maxRisk {
		return PositionSizing{}, fmt.Errorf("%w: %.2f%% > %.2f%%", ErrRiskTooHigh, in.RiskPercent, maxRisk)
	}

	class := Classify(in.Symbol)
	slPips := decimal.NewFromFloat(in.StopLossPips)
	riskAmount := decimal.NewFromFloat(in.Balance).Mul(decimal.NewFromFloat(in.RiskPercent)).Div(hundred)
	pipValue := pipSize(class).Mul(contractSize(class))
	lots := riskAmount.Div(slPips.Mul(pipValue))

	return PositionSizing{
		RiskAmount:   riskAmount.Round(2).InexactFloat64(),
		PipValue:     pipValue.InexactFloat64(),
		LotSize:      lots.Round(2).InexactFloat64(),
		PositionSize: lots.Mul(contractSize(class)).Round(2).InexactFloat64(),
		Unit:         positionUnit(in.Symbol, class),
		RiskPerPip:   riskAmount.Div(slPips).Round(2).InexactFloat64(),
	}, nil
}

func positionUnit(symbol string, class AssetClass) string {
	s := strings.ToUpper(symbol)
	switch {
	case class == Gold:
		return "ounce"
	case strings.Contains(s, "BTC"):
		return "BTC"
	case strings.Contains(s, "ETH"):
		return "ETH"
	case class == Crypto:
		return "coins"
	default:
		return "units"
	}
}
