package navapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const schemePayload = `{
  "meta": {
    "fund_house": "Example Mutual Fund",
    "scheme_type": "Open Ended Schemes",
    "scheme_category": "Equity Scheme - Flexi Cap Fund",
    "scheme_code": 120503,
    "scheme_name": "Example Flexi Cap Fund - Direct Plan - Growth"
  },
  "data": [
    {"date": "03-01-2023", "nav": "102.50000"},
    {"date": "02-01-2023", "nav": "101.00000"},
    {"date": "01-01-2023", "nav": "100.00000"}
  ],
  "status": "SUCCESS"
}`

func newTestServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(WithBaseURL(server.URL))
}

func TestFetchScheme(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/mf/120503", r.URL.Path)
		w.Write([]byte(schemePayload))
	})

	payload, err := client.FetchScheme(context.Background(), 120503)
	require.NoError(t, err)

	assert.Equal(t, 120503, payload.Meta.SchemeCode)
	assert.Equal(t, "Example Mutual Fund", payload.Meta.FundHouse)
	require.Len(t, payload.Data, 3)
	assert.Equal(t, "03-01-2023", payload.Data[0].Date)
	assert.True(t, payload.Data[0].NAV.Decimal.Equal(decimal.NewFromFloat(102.5)))
}

func TestFetchScheme_EmptyHistory(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"meta":{},"data":[],"status":"SUCCESS"}`))
	})

	_, err := client.FetchScheme(context.Background(), 99999)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no NAV history")
}

func TestFetchScheme_HTTPError(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	})

	_, err := client.FetchScheme(context.Background(), 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 404")
}

func TestFetchSeries_NormalizesChronologically(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(schemePayload))
	})

	series, fallbacks, err := client.FetchSeries(context.Background(), 120503)
	require.NoError(t, err)

	assert.Zero(t, fallbacks)
	require.Len(t, series, 3)
	// API serves newest first; the series comes back oldest first.
	assert.True(t, series[0].NAV.Equal(decimal.NewFromInt(100)))
	assert.True(t, series[2].NAV.Equal(decimal.NewFromFloat(102.5)))
	assert.True(t, series[0].Date.Before(series[1].Date))
}

func TestSearch(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/mf/search", r.URL.Path)
		assert.Equal(t, "flexi cap", r.URL.Query().Get("q"))
		w.Write([]byte(`[{"schemeCode":120503,"schemeName":"Example Flexi Cap Fund"}]`))
	})

	matches, err := client.Search(context.Background(), "flexi cap")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, 120503, matches[0].SchemeCode)
}

func TestFetchScheme_ContextCancelled(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(schemePayload))
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.FetchScheme(ctx, 120503)
	assert.Error(t, err)
}
