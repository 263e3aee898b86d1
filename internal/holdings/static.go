package holdings

import (
	"context"

	"github.com/Florana1/market-analyser/internal/model"
)

// Static serves a hardcoded snapshot of the top ~30 constituents with
// approximate weights. It is the last tier and cannot fail.
type Static struct{}

func NewStatic() *Static { return &Static{} }

func (s *Static) Name() string { return "static-snapshot" }

func (s *Static) Fetch(_ context.Context) ([]model.Holding, error) {
	return staticSnapshot(), nil
}

// Approximate top-30 weights as of early 2025. Served only when every live
// source has failed.
func staticSnapshot() []model.Holding {
	return []model.Holding{
		{Ticker: "MSFT", Name: "Microsoft Corp", Weight: 0.0840, Sector: "Technology"},
		{Ticker: "NVDA", Name: "NVIDIA Corp", Weight: 0.0820, Sector: "Technology"},
		{Ticker: "AAPL", Name: "Apple Inc", Weight: 0.0790, Sector: "Technology"},
		{Ticker: "AMZN", Name: "Amazon.com Inc", Weight: 0.0530, Sector: "Consumer Discretionary"},
		{Ticker: "GOOGL", Name: "Alphabet Inc Class A", Weight: 0.0390, Sector: "Communication Services"},
		{Ticker: "META", Name: "Meta Platforms Inc", Weight: 0.0380, Sector: "Communication Services"},
		{Ticker: "GOOG", Name: "Alphabet Inc Class C", Weight: 0.0330, Sector: "Communication Services"},
		{Ticker: "TSLA", Name: "Tesla Inc", Weight: 0.0290, Sector: "Consumer Discretionary"},
		{Ticker: "COST", Name: "Costco Wholesale Corp", Weight: 0.0250, Sector: "Consumer Staples"},
		{Ticker: "AVGO", Name: "Broadcom Inc", Weight: 0.0240, Sector: "Technology"},
		{Ticker: "NFLX", Name: "Netflix Inc", Weight: 0.0170, Sector: "Communication Services"},
		{Ticker: "AMD", Name: "Advanced Micro Devices", Weight: 0.0160, Sector: "Technology"},
		{Ticker: "ADBE", Name: "Adobe Inc", Weight: 0.0130, Sector: "Technology"},
		{Ticker: "QCOM", Name: "QUALCOMM Inc", Weight: 0.0120, Sector: "Technology"},
		{Ticker: "PEP", Name: "PepsiCo Inc", Weight: 0.0120, Sector: "Consumer Staples"},
		{Ticker: "AMAT", Name: "Applied Materials Inc", Weight: 0.0110, Sector: "Technology"},
		{Ticker: "CSCO", Name: "Cisco Systems Inc", Weight: 0.0100, Sector: "Technology"},
		{Ticker: "TXN", Name: "Texas Instruments Inc", Weight: 0.0090, Sector: "Technology"},
		{Ticker: "INTC", Name: "Intel Corp", Weight: 0.0080, Sector: "Technology"},
		{Ticker: "INTU", Name: "Intuit Inc", Weight: 0.0080, Sector: "Technology"},
		{Ticker: "AMGN", Name: "Amgen Inc", Weight: 0.0070, Sector: "Health Care"},
		{Ticker: "ISRG", Name: "Intuitive Surgical Inc", Weight: 0.0070, Sector: "Health Care"},
		{Ticker: "HON", Name: "Honeywell International", Weight: 0.0060, Sector: "Industrials"},
		{Ticker: "BKNG", Name: "Booking Holdings Inc", Weight: 0.0060, Sector: "Consumer Discretionary"},
		{Ticker: "SBUX", Name: "Starbucks Corp", Weight: 0.0060, Sector: "Consumer Discretionary"},
		{Ticker: "GILD", Name: "Gilead Sciences Inc", Weight: 0.0050, Sector: "Health Care"},
		{Ticker: "MDLZ", Name: "Mondelez International", Weight: 0.0050, Sector: "Consumer Staples"},
		{Ticker: "ADP", Name: "Automatic Data Processing", Weight: 0.0050, Sector: "Technology"},
		{Ticker: "PANW", Name: "Palo Alto Networks Inc", Weight: 0.0050, Sector: "Technology"},
		{Ticker: "REGN", Name: "Regeneron Pharmaceuticals", Weight: 0.0040, Sector: "Health Care"},
	}
}
