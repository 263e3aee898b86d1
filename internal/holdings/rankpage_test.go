package holdings

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Florana1/market-analyser/internal/httpx"
)

const rankingPage = `<html><body>
<table>
  <tr><th>Date</th><th>Event</th></tr>
  <tr><td>2025-06-02</td><td>Rebalance</td></tr>
</table>
<table>
  <thead><tr><th>#</th><th>Company</th><th>Symbol</th><th>Weight</th><th>Price</th></tr></thead>
  <tbody>
    <tr><td>1</td><td>Microsoft Corp</td><td>MSFT</td><td>8.89</td><td>430.00</td></tr>
    <tr><td>2</td><td>Apple Inc</td><td>AAPL</td><td>8.10%</td><td>195.00</td></tr>
    <tr><td>3</td><td>Stale Row</td><td>XYZ</td><td>0.00</td><td>1.00</td></tr>
    <tr><td>4</td><td>Bad Symbol</td><td>TOOLONGSYM</td><td>1.00</td><td>1.00</td></tr>
  </tbody>
</table>
</body></html>`

func TestRankPage_PicksTableWithSymbolAndWeight(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(rankingPage))
	}))
	defer srv.Close()

	src := NewRankPage(srv.URL, httpx.New(time.Second, ""))
	hs, err := src.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, hs, 2, "zero-weight and malformed tickers dropped")

	assert.Equal(t, "MSFT", hs[0].Ticker)
	assert.Equal(t, "Microsoft Corp", hs[0].Name)
	assert.InDelta(t, 0.0889, hs[0].Weight, 1e-9)
	assert.InDelta(t, 0.0810, hs[1].Weight, 1e-9)
	assert.Empty(t, hs[0].Sector)
}

func TestRankPage_SingleTable(t *testing.T) {
	page := `<html><body><table>
	<tr><th>Ticker</th><th>Weight</th></tr>
	<tr><td>NVDA</td><td>8.2</td></tr>
	</table></body></html>`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(page))
	}))
	defer srv.Close()

	hs, err := NewRankPage(srv.URL, httpx.New(time.Second, "")).Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, hs, 1)
	assert.Equal(t, "NVDA", hs[0].Ticker)
}

func TestRankPage_FallsBackToFirstTableWhenNoneMatch(t *testing.T) {
	// No table names both a symbol and a weight column; the first one is
	// taken as a best guess and then fails normalization.
	page := `<html><body>
	<table><tr><th>Date</th><th>Event</th></tr><tr><td>x</td><td>y</td></tr></table>
	<table><tr><th>Rank</th><th>Note</th></tr><tr><td>1</td><td>z</td></tr></table>
	</body></html>`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(page))
	}))
	defer srv.Close()

	_, err := NewRankPage(srv.URL, httpx.New(time.Second, "")).Fetch(context.Background())
	assert.ErrorIs(t, err, ErrSchemaMismatch)
}

func TestRankPage_NoTables(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html><body><p>nothing here</p></body></html>"))
	}))
	defer srv.Close()

	_, err := NewRankPage(srv.URL, httpx.New(time.Second, "")).Fetch(context.Background())
	assert.ErrorIs(t, err, ErrSchemaMismatch)
}

func TestRankPage_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // shut down before the request

	_, err := NewRankPage(srv.URL, httpx.New(time.Second, "")).Fetch(context.Background())
	assert.ErrorIs(t, err, ErrSourceUnavailable)
}
