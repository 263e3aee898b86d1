package prices

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrExtraction means a response arrived but per-ticker series could not be
// derived from it.
var ErrExtraction = errors.New("price extraction failed")

// seriesTable is the uniform internal shape all vendor layouts normalize to:
// ticker -> field -> values, nulls preserved.
type seriesTable map[string]map[string][]*float64

var knownFields = map[string]bool{
	"open": true, "high": true, "low": true, "close": true,
	"volume": true, "timestamp": true,
}

// normalizeBatch converts a batched chart response into a seriesTable.
//
// The vendor has shipped three layouts over time:
//   - ticker-major: {"AAPL": {"close": [...]}, "MSFT": {...}}   (multi, newer)
//   - field-major:  {"close": {"AAPL": [...], "MSFT": [...]}}   (multi, older)
//   - flat:         {"close": [...], "timestamp": [...]}        (single ticker)
//
// The shape is inspected once here so no layout branching leaks into the
// price derivation.
func normalizeBatch(body []byte, tickers []string) (seriesTable, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(body, &top); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrExtraction, err)
	}
	if len(top) == 0 {
		return seriesTable{}, nil
	}

	wanted := make(map[string]string, len(tickers)) // upper -> requested form
	for _, t := range tickers {
		wanted[strings.ToUpper(t)] = t
	}

	tickerKeys := 0
	fieldKeys := 0
	for k := range top {
		if _, ok := wanted[strings.ToUpper(k)]; ok {
			tickerKeys++
		} else if knownFields[strings.ToLower(k)] {
			fieldKeys++
		}
	}

	switch {
	case tickerKeys > 0:
		return normalizeTickerMajor(top, wanted)
	case fieldKeys > 0:
		return normalizeFieldMajor(top, wanted, tickers)
	default:
		return nil, fmt.Errorf("%w: unrecognized response layout", ErrExtraction)
	}
}

func normalizeTickerMajor(top map[string]json.RawMessage, wanted map[string]string) (seriesTable, error) {
	out := seriesTable{}
	for key, raw := range top {
		upper := strings.ToUpper(key)
		if _, ok := wanted[upper]; !ok {
			continue
		}
		var fields map[string][]*float64
		if err := json.Unmarshal(raw, &fields); err != nil {
			// One malformed ticker block must not sink the batch.
			continue
		}
		byField := make(map[string][]*float64, len(fields))
		for f, vals := range fields {
			byField[strings.ToLower(f)] = vals
		}
		out[upper] = byField
	}
	return out, nil
}

func normalizeFieldMajor(top map[string]json.RawMessage, wanted map[string]string, tickers []string) (seriesTable, error) {
	out := seriesTable{}
	for key, raw := range top {
		field := strings.ToLower(key)
		if !knownFields[field] {
			continue
		}

		// Probe the value: object of per-ticker arrays means field-major,
		// a bare array is the flat single-ticker layout.
		var perTicker map[string][]*float64
		if err := json.Unmarshal(raw, &perTicker); err == nil {
			for tk, vals := range perTicker {
				upper := strings.ToUpper(tk)
				if _, ok := wanted[upper]; !ok {
					continue
				}
				if out[upper] == nil {
					out[upper] = map[string][]*float64{}
				}
				out[upper][field] = vals
			}
			continue
		}

		var flat []*float64
		if err := json.Unmarshal(raw, &flat); err != nil {
			continue
		}
		if len(tickers) != 1 {
			return nil, fmt.Errorf("%w: flat series for %d tickers", ErrExtraction, len(tickers))
		}
		upper := strings.ToUpper(tickers[0])
		if out[upper] == nil {
			out[upper] = map[string][]*float64{}
		}
		out[upper][field] = flat
	}
	return out, nil
}

// series returns the named field for a ticker, or nil when absent.
func (t seriesTable) series(ticker, field string) []*float64 {
	if t == nil {
		return nil
	}
	fields, ok := t[strings.ToUpper(ticker)]
	if !ok {
		return nil
	}
	return fields[strings.ToLower(field)]
}

// compact drops nulls, keeping order.
func compact(vals []*float64) []float64 {
	out := make([]float64, 0, len(vals))
	for _, v := range vals {
		if v != nil {
			out = append(out, *v)
		}
	}
	return out
}
