package model

// PriceQuote holds the derived price snapshot for a single ticker.
// Numeric fields are pointers: an unresolved value marshals as null,
// never as zero, so missing data cannot masquerade as "no change".
type PriceQuote struct {
	Price        *float64 `json:"price"`
	PrevClose    *float64 `json:"prev_close"`
	ChangeDollar *float64 `json:"change_dollar"`
	ChangePct    *float64 `json:"change_pct"`
	Valid        bool     `json:"valid"`
}

// EmptyQuote is the all-absent invalid quote used whenever price or
// previous close could not be resolved.
func EmptyQuote() PriceQuote {
	return PriceQuote{Valid: false}
}
