package model

import "time"

// FundSummary is the fund's own quote plus the summed holding contributions.
// TotalContribution approximates the fund's move from its constituents; it is
// not reconciled against ChangePct and the two can diverge when a fallback
// tier returned partial holdings.
type FundSummary struct {
	Price             *float64 `json:"price"`
	ChangeDollar      *float64 `json:"change_dollar"`
	ChangePct         *float64 `json:"change_pct"`
	TotalContribution float64  `json:"total_contribution"`
}

// HoldingRow is one constituent in the assembled result.
// Weight is stored on the percent scale for display (e.g. 9.88).
type HoldingRow struct {
	Ticker       string   `json:"ticker"`
	Name         string   `json:"name"`
	MarketCap    *float64 `json:"market_cap"`
	Weight       float64  `json:"weight"`
	Price        *float64 `json:"price"`
	ChangeDollar *float64 `json:"change_dollar"`
	ChangePct    float64  `json:"change_pct"`
	Contribution float64  `json:"contribution"`
	Valid        bool     `json:"valid"`
}

// AggregateResult is the fully assembled dataset. It is produced by one
// pipeline run, owned by the result cache, and handed out read-only;
// holdings are ordered by descending absolute contribution.
type AggregateResult struct {
	Fund         FundSummary  `json:"fund"`
	Holdings     []HoldingRow `json:"holdings"`
	MarketStatus SessionState `json:"market_status"`
	FetchedAt    time.Time    `json:"fetched_at"`
}
