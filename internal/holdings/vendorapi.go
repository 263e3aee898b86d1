package holdings

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/Florana1/market-analyser/internal/httpx"
	"github.com/Florana1/market-analyser/internal/model"
)

// VendorSummary fetches the quote vendor's condensed top-holdings summary,
// typically ~25 entries. Key names and casing have varied across vendor
// versions, so rows are matched defensively.
type VendorSummary struct {
	URL    string
	Client *httpx.Client
}

func NewVendorSummary(url string, client *httpx.Client) *VendorSummary {
	return &VendorSummary{URL: url, Client: client}
}

func (v *VendorSummary) Name() string { return "vendor-summary" }

func (v *VendorSummary) Fetch(ctx context.Context) ([]model.Holding, error) {
	body, err := v.Client.Get(ctx, v.URL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}

	var payload struct {
		Holdings []map[string]json.RawMessage `json:"holdings"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchemaMismatch, err)
	}
	if len(payload.Holdings) == 0 {
		return nil, fmt.Errorf("%w: no holdings in summary", ErrEmptyResult)
	}

	type row struct {
		ticker, name string
		weight       float64
	}
	rows := make([]row, 0, len(payload.Holdings))
	maxWeight := 0.0

	for _, entry := range payload.Holdings {
		var r row
		for key, raw := range entry {
			k := strings.ToLower(key)
			switch {
			case k == "symbol" || k == "ticker":
				_ = json.Unmarshal(raw, &r.ticker)
			case k == "name" || strings.Contains(k, "holding name") || strings.Contains(k, "description"):
				_ = json.Unmarshal(raw, &r.name)
			case strings.Contains(k, "percent") || strings.Contains(k, "weight") || strings.Contains(k, "holding"):
				// Some vendor versions send the weight as a quoted number.
				if err := json.Unmarshal(raw, &r.weight); err != nil {
					var s string
					if json.Unmarshal(raw, &s) == nil {
						if w, ok := parseWeight(s); ok {
							r.weight = w
						}
					}
				}
			}
		}
		if r.ticker == "" {
			continue
		}
		rows = append(rows, r)
		if math.Abs(r.weight) > maxWeight {
			maxWeight = math.Abs(r.weight)
		}
	}

	// Unit auto-detection: weights above 1.5 cannot be on the 0-1 scale, so
	// the vendor sent percentages.
	scale := 1.0
	if maxWeight > 1.5 {
		scale = 1.0 / 100.0
	}

	var out []model.Holding
	for _, r := range rows {
		h, ok := buildHolding(r.ticker, r.name, r.weight*scale, "Unknown")
		if !ok {
			continue
		}
		out = append(out, h)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: no valid holding rows", ErrEmptyResult)
	}
	return out, nil
}
