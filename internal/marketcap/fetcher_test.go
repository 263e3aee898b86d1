package marketcap

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Florana1/market-analyser/internal/httpx"
)

func TestFetchAll_PerTickerIsolation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.Contains(r.URL.Path, "AAPL"):
			fmt.Fprint(w, `{"marketCap": 3000000000000}`)
		case strings.Contains(r.URL.Path, "MSFT"):
			http.Error(w, "nope", http.StatusInternalServerError)
		default:
			fmt.Fprint(w, `{"marketCap": null}`)
		}
	}))
	defer srv.Close()

	f := NewFetcher(srv.URL, httpx.New(time.Second, ""), 8, zerolog.Nop())
	got := f.FetchAll(context.Background(), []string{"AAPL", "MSFT", "GILD"})

	require.Len(t, got, 3)
	require.NotNil(t, got["AAPL"])
	assert.Equal(t, 3e12, *got["AAPL"])
	assert.Nil(t, got["MSFT"], "HTTP failure yields absent, not an error")
	assert.Nil(t, got["GILD"], "null cap yields absent")
}

func TestFetchAll_EmptyInput(t *testing.T) {
	f := NewFetcher("http://unused", httpx.New(time.Second, ""), 8, zerolog.Nop())
	assert.Empty(t, f.FetchAll(context.Background(), nil))
}

func TestFetchAll_BoundedConcurrency(t *testing.T) {
	var inFlight, peak int64
	var mu sync.Mutex

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt64(&inFlight, 1)
		mu.Lock()
		if n > peak {
			peak = n
		}
		mu.Unlock()
		time.Sleep(5 * time.Millisecond)
		atomic.AddInt64(&inFlight, -1)
		fmt.Fprint(w, `{"marketCap": 1}`)
	}))
	defer srv.Close()

	f := NewFetcher(srv.URL, httpx.New(time.Second, ""), 3, zerolog.Nop())
	tickers := make([]string, 12)
	for i := range tickers {
		tickers[i] = fmt.Sprintf("T%c", 'A'+i)
	}
	got := f.FetchAll(context.Background(), tickers)

	assert.Len(t, got, 12)
	mu.Lock()
	defer mu.Unlock()
	assert.LessOrEqual(t, peak, int64(3), "worker ceiling must hold")
}

func TestFetchAll_ClassShareNormalizedInRequest(t *testing.T) {
	var path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		fmt.Fprint(w, `{"marketCap": 9e11}`)
	}))
	defer srv.Close()

	f := NewFetcher(srv.URL, httpx.New(time.Second, ""), 2, zerolog.Nop())
	got := f.FetchAll(context.Background(), []string{"BRK.B"})

	assert.Contains(t, path, "BRK-B")
	require.NotNil(t, got["BRK.B"], "keyed by original ticker")
}
