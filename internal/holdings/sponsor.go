package holdings

import (
	"context"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/Florana1/market-analyser/internal/httpx"
	"github.com/Florana1/market-analyser/internal/model"
)

// SponsorCSV downloads the fund sponsor's structured holdings export.
// The export carries metadata rows before the true header, percent-formatted
// weight strings, and column names that have shifted over time.
type SponsorCSV struct {
	URL    string
	Client *httpx.Client
}

func NewSponsorCSV(url string, client *httpx.Client) *SponsorCSV {
	return &SponsorCSV{URL: url, Client: client}
}

func (s *SponsorCSV) Name() string { return "sponsor-csv" }

func (s *SponsorCSV) Fetch(ctx context.Context) ([]model.Holding, error) {
	body, err := s.Client.Get(ctx, s.URL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	return parseSponsorCSV(string(body))
}

func parseSponsorCSV(text string) ([]model.Holding, error) {
	lines := strings.Split(text, "\n")

	// The true header row is the first line naming both a ticker-like and a
	// weight column; everything above it is preamble.
	headerIdx := -1
	for i, line := range lines {
		l := strings.ToLower(line)
		if (strings.Contains(l, "ticker") || strings.Contains(l, "holding")) && strings.Contains(l, "weight") {
			headerIdx = i
			break
		}
	}
	if headerIdx < 0 {
		return nil, fmt.Errorf("%w: no header row with ticker and weight columns", ErrSchemaMismatch)
	}

	r := csv.NewReader(strings.NewReader(strings.Join(lines[headerIdx:], "\n")))
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchemaMismatch, err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("%w: header only", ErrEmptyResult)
	}

	cols := map[string]int{}
	for i, h := range records[0] {
		if role := classifyColumn(h); role != "" {
			if _, taken := cols[role]; !taken {
				cols[role] = i
			}
		}
	}
	tickerIdx, okT := cols[colTicker]
	weightIdx, okW := cols[colWeight]
	if !okT || !okW {
		return nil, fmt.Errorf("%w: columns %v lack ticker/weight", ErrSchemaMismatch, records[0])
	}

	cell := func(row []string, idx int, ok bool) string {
		if !ok || idx >= len(row) {
			return ""
		}
		return row[idx]
	}

	nameIdx, okN := cols[colName]
	sectorIdx, okS := cols[colSector]

	var out []model.Holding
	for _, row := range records[1:] {
		if tickerIdx >= len(row) || weightIdx >= len(row) {
			continue
		}
		w, ok := parseWeight(row[weightIdx])
		if !ok {
			continue
		}
		// The sponsor stores weights as percent strings ("9.8840%").
		h, ok := buildHolding(row[tickerIdx], cell(row, nameIdx, okN), w/100, cell(row, sectorIdx, okS))
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
