package prices

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeBatch_TickerMajor(t *testing.T) {
	body := []byte(`{
		"AAPL": {"Close": [195.1, null, 195.4], "timestamp": [1, 2, 3]},
		"MSFT": {"Close": [430.0]}
	}`)
	table, err := normalizeBatch(body, []string{"AAPL", "MSFT"})
	require.NoError(t, err)

	s := table.series("aapl", "CLOSE")
	require.Len(t, s, 3, "field and ticker lookups are case-insensitive")
	assert.Nil(t, s[1], "nulls preserved")
	assert.Equal(t, []float64{195.1, 195.4}, compact(s))
	assert.Equal(t, []float64{430.0}, compact(table.series("MSFT", "close")))
}

func TestNormalizeBatch_FieldMajor(t *testing.T) {
	body := []byte(`{
		"close": {"AAPL": [195.1, 195.4], "MSFT": [430.0]},
		"volume": {"AAPL": [100, 200], "MSFT": [300]}
	}`)
	table, err := normalizeBatch(body, []string{"AAPL", "MSFT"})
	require.NoError(t, err)

	assert.Equal(t, []float64{195.1, 195.4}, compact(table.series("AAPL", "close")))
	assert.Equal(t, []float64{300}, compact(table.series("MSFT", "volume")))
}

func TestNormalizeBatch_FlatSingleTicker(t *testing.T) {
	body := []byte(`{"close": [194.0, null, 195.5], "timestamp": [1, 2, 3]}`)
	table, err := normalizeBatch(body, []string{"AAPL"})
	require.NoError(t, err)
	assert.Equal(t, []float64{194.0, 195.5}, compact(table.series("AAPL", "close")))
}

func TestNormalizeBatch_FlatLayoutForManyTickersRejected(t *testing.T) {
	body := []byte(`{"close": [194.0, 195.5]}`)
	_, err := normalizeBatch(body, []string{"AAPL", "MSFT"})
	assert.ErrorIs(t, err, ErrExtraction)
}

func TestNormalizeBatch_UnrecognizedLayout(t *testing.T) {
	_, err := normalizeBatch([]byte(`{"whatever": 1}`), []string{"AAPL"})
	assert.ErrorIs(t, err, ErrExtraction)

	_, err = normalizeBatch([]byte(`not json`), []string{"AAPL"})
	assert.ErrorIs(t, err, ErrExtraction)
}

func TestNormalizeBatch_MalformedTickerBlockIsolated(t *testing.T) {
	body := []byte(`{
		"AAPL": {"close": [195.1]},
		"MSFT": "oops"
	}`)
	table, err := normalizeBatch(body, []string{"AAPL", "MSFT"})
	require.NoError(t, err)
	assert.NotNil(t, table.series("AAPL", "close"))
	assert.Nil(t, table.series("MSFT", "close"), "bad block dropped, batch survives")
}

func TestNormalizeBatch_ExtraTickersIgnored(t *testing.T) {
	body := []byte(`{"close": {"AAPL": [1.0], "SPY": [2.0]}}`)
	table, err := normalizeBatch(body, []string{"AAPL"})
	require.NoError(t, err)
	assert.NotNil(t, table.series("AAPL", "close"))
	assert.Nil(t, table.series("SPY", "close"))
}
