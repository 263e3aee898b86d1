package holdings

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/Florana1/market-analyser/internal/model"
)

// tickerRe accepts real equity tickers only: 1-5 uppercase letters with an
// optional single-letter class suffix (BRK-B style). Bond CUSIPs, cash rows
// and footnote junk in sponsor exports all fail this.
var tickerRe = regexp.MustCompile(`^[A-Z]{1,5}(-[A-Z])?$`)

// ValidTicker reports whether s satisfies the ticker format invariant.
func ValidTicker(s string) bool {
	return tickerRe.MatchString(s)
}

// Column roles recognized across source schemas.
const (
	colTicker = "ticker"
	colName   = "name"
	colWeight = "weight"
	colSector = "sector"
)

// classifyColumn maps a raw header to a role via case-insensitive substring
// matching against the synonym set the sources are known to use. Unknown
// headers map to "".
func classifyColumn(header string) string {
	h := strings.ToLower(strings.TrimSpace(header))
	switch {
	case h == "ticker" || h == "symbol" || strings.Contains(h, "holding ticker"):
		return colTicker
	case h == "name" || h == "company" || strings.Contains(h, "security name") ||
		strings.Contains(h, "holding name") || strings.Contains(h, "description"):
		return colName
	case strings.Contains(h, "weight"):
		return colWeight
	case strings.Contains(h, "sector"):
		return colSector
	}
	return ""
}

// parseWeight parses a weight cell that may carry a percent sign ("9.8840%")
// or already be a bare number. The result stays on whatever scale the source
// used; unit auto-detection is the caller's concern.
func parseWeight(s string) (float64, bool) {
	s = strings.TrimSpace(strings.ReplaceAll(s, "%", ""))
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0, false
	}
	w, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return w, true
}

// buildHolding assembles a Holding from normalized cells, enforcing the
// ticker invariant. Percent-scale weights must already be divided down.
func buildHolding(ticker, name string, weight float64, sector string) (model.Holding, bool) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	if !ValidTicker(ticker) {
		return model.Holding{}, false
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = ticker
	}
	return model.Holding{Ticker: ticker, Name: name, Weight: weight, Sector: sector}, true
}

func sortByWeightDesc(hs []model.Holding) {
	sort.SliceStable(hs, func(i, j int) bool { return hs[i].Weight > hs[j].Weight })
}
