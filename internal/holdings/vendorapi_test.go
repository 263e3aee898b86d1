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

func vendorServer(t *testing.T, payload string) *VendorSummary {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(payload))
	}))
	t.Cleanup(srv.Close)
	return NewVendorSummary(srv.URL, httpx.New(time.Second, ""))
}

func TestVendorSummary_PercentUnitsAutoDetected(t *testing.T) {
	src := vendorServer(t, `{"holdings":[
		{"Symbol":"MSFT","Name":"Microsoft Corp","holdingPercent":8.4},
		{"Symbol":"AAPL","Name":"Apple Inc","holdingPercent":7.9}
	]}`)

	hs, err := src.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, hs, 2)
	assert.InDelta(t, 0.084, hs[0].Weight, 1e-9, "values above 1.5 are percentages")
	assert.Equal(t, "Unknown", hs[0].Sector)
}

func TestVendorSummary_FractionUnitsKept(t *testing.T) {
	src := vendorServer(t, `{"holdings":[
		{"ticker":"MSFT","name":"Microsoft Corp","weight":0.084},
		{"ticker":"AAPL","name":"Apple Inc","weight":0.079}
	]}`)

	hs, err := src.Fetch(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 0.084, hs[0].Weight, 1e-9, "0-1 scale passes through")
}

func TestVendorSummary_QuotedWeights(t *testing.T) {
	src := vendorServer(t, `{"holdings":[
		{"SYMBOL":"NVDA","DESCRIPTION":"NVIDIA Corp","WEIGHT":"8.20"}
	]}`)

	hs, err := src.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, hs, 1)
	assert.Equal(t, "NVDA", hs[0].Ticker)
	assert.Equal(t, "NVIDIA Corp", hs[0].Name)
	assert.InDelta(t, 0.082, hs[0].Weight, 1e-9)
}

func TestVendorSummary_EmptyAndMalformed(t *testing.T) {
	_, err := vendorServer(t, `{"holdings":[]}`).Fetch(context.Background())
	assert.ErrorIs(t, err, ErrEmptyResult)

	_, err = vendorServer(t, `{not json`).Fetch(context.Background())
	assert.ErrorIs(t, err, ErrSchemaMismatch)
}
