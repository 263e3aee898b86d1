package holdings

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"golang.org/x/net/html"

	"github.com/Florana1/market-analyser/internal/httpx"
	"github.com/Florana1/market-analyser/internal/model"
)

// RankPage scrapes a public index-ranking page. The page embeds one or more
// HTML tables; the holdings table is picked by its headers, or the first
// table is taken as a best guess.
type RankPage struct {
	URL    string
	Client *httpx.Client
}

func NewRankPage(url string, client *httpx.Client) *RankPage {
	return &RankPage{URL: url, Client: client}
}

func (r *RankPage) Name() string { return "rank-page" }

func (r *RankPage) Fetch(ctx context.Context) ([]model.Holding, error) {
	body, err := r.Client.Get(ctx, r.URL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}

	tables, err := extractTables(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchemaMismatch, err)
	}
	if len(tables) == 0 {
		return nil, fmt.Errorf("%w: no tables in page", ErrSchemaMismatch)
	}

	table := pickHoldingsTable(tables)
	return parseRankTable(table)
}

// extractTables collects every <table> as rows of cell text.
func extractTables(body []byte) ([][][]string, error) {
	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	var tables [][][]string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "table" {
			if rows := tableRows(n); len(rows) > 0 {
				tables = append(tables, rows)
			}
			return // nested tables are not a thing on these pages
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return tables, nil
}

func tableRows(table *html.Node) [][]string {
	var rows [][]string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "tr" {
			var cells []string
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				collectCells(c, &cells)
			}
			if len(cells) > 0 {
				rows = append(rows, cells)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(table)
	return rows
}

func collectCells(n *html.Node, cells *[]string) {
	if n.Type == html.ElementNode && (n.Data == "td" || n.Data == "th") {
		*cells = append(*cells, strings.TrimSpace(nodeText(n)))
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectCells(c, cells)
	}
}

func nodeText(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.WriteString(nodeText(c))
	}
	return b.String()
}

// pickHoldingsTable prefers the table whose header row names both a
// symbol-like and a weight-like column, falling back to the first table.
func pickHoldingsTable(tables [][][]string) [][]string {
	for _, t := range tables {
		header := strings.ToLower(strings.Join(t[0], "|"))
		if (strings.Contains(header, "symbol") || strings.Contains(header, "ticker")) &&
			strings.Contains(header, "weight") {
			return t
		}
	}
	return tables[0]
}

func parseRankTable(rows [][]string) ([]model.Holding, error) {
	cols := map[string]int{}
	for i, h := range rows[0] {
		if role := classifyColumn(h); role != "" {
			if _, taken := cols[role]; !taken {
				cols[role] = i
			}
		}
	}
	tickerIdx, okT := cols[colTicker]
	weightIdx, okW := cols[colWeight]
	if !okT || !okW {
		return nil, fmt.Errorf("%w: unexpected columns %v", ErrSchemaMismatch, rows[0])
	}
	nameIdx, okN := cols[colName]

	var out []model.Holding
	for _, row := range rows[1:] {
		if tickerIdx >= len(row) || weightIdx >= len(row) {
			continue
		}
		w, ok := parseWeight(row[weightIdx])
		if !ok || w <= 0 {
			continue
		}
		name := ""
		if okN && nameIdx < len(row) {
			name = row[nameIdx]
		}
		// Ranking pages show weight as percent ("8.89").
		h, ok := buildHolding(row[tickerIdx], name, w/100, "")
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
