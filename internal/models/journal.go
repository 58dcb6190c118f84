package models

import "time"

// Draft is an unvalidated, partially filled trade kept for later completion.
type Draft struct {
	ID      string     `json:"id"`
	SavedAt time.Time  `json:"savedAt"`
	Trade   TradePatch `json:"trade"`
}

// Template is a reusable set of trade parameters.
type Template struct {
	ID         string    `json:"id"`
	Name       string    `json:"name,omitempty"`
	Symbol     string    `json:"symbol"`
	Timeframe  string    `json:"timeframe"`
	Direction  Direction `json:"direction"`
	LotSize    float64   `json:"lotSize"`
	StopLoss   float64   `json:"stopLoss"`
	TakeProfit float64   `json:"takeProfit"`
	SavedAt    time.Time `json:"savedAt"`
}

// UserProfile personalises the journal. The PIN is not a credential.
type UserProfile struct {
	Username  string    `json:"username"`
	PIN       string    `json:"pin,omitempty"`
	LastLogin time.Time `json:"lastLogin"`
	CreatedAt time.Time `json:"createdAt"`
}

// Settings holds the user's journal preferences.
type Settings struct {
	Currency        string  `json:"currency"`
	StartingBalance float64 `json:"startingBalance"`
	DefaultLotSize  float64 `json:"defaultLotSize"`
	RiskPercent     float64 `json:"riskPercent"`
	PageSize        int     `json:"pageSize"`
}
