package model

// Holding is one constituent of the tracked fund.
// Weight is on the 0-1 scale; fallback sources may cover only the top N,
// so weights within a set need not sum to 1.
type Holding struct {
	Ticker string  `json:"ticker"`
	Name   string  `json:"name"`
	Weight float64 `json:"weight"`
	Sector string  `json:"sector"`
}
