package hyperliquid

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const fixture = `[
  {"universe": [
    {"name": "BTC", "szDecimals": 5},
    {"name": "ETH", "szDecimals": 4},
    {"name": "SOL", "szDecimals": 2}
  ]},
  [
    {"funding": "0.0000125", "markPx": "97123.5", "openInterest": "1"},
    {"funding": "-0.0000042", "markPx": "3421.77", "openInterest": "1"},
    {"funding": "0.0001", "markPx": "214.503", "openInterest": "1"}
  ]
]`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, 2*time.Second, 30*time.Second, zap.NewNop())
}

func TestFetch_ExistingSymbol(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		_, _ = w.Write([]byte(fixture))
	})

	q, ok, err := c.Fetch(context.Background(), "BTC")
	require.NoError(t, err)
	require.True(t, ok)
	assert.InDelta(t, 0.00125, q.FundingRatePercent, 1e-12) // 100 × raw fraction
	assert.InDelta(t, 97123.5, q.MarkPrice, 1e-9)

	// Negative funding keeps its sign.
	q, ok, err = c.Fetch(context.Background(), "ETH")
	require.NoError(t, err)
	require.True(t, ok)
	assert.InDelta(t, -0.00042, q.FundingRatePercent, 1e-12)
}

func TestFetch_UnknownSymbol(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(fixture))
	})

	_, ok, err := c.Fetch(context.Background(), "DOGE")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestExists(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(fixture))
	})

	for _, sym := range []string{"BTC", "ETH", "SOL"} {
		ok, err := c.Exists(context.Background(), sym)
		require.NoError(t, err)
		assert.True(t, ok, sym)
	}
	ok, err := c.Exists(context.Background(), "XRP")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFetch_ServerError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, ok, err := c.Fetch(context.Background(), "BTC")
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestFetch_MalformedBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"not": "an array"}`))
	})

	_, ok, err := c.Fetch(context.Background(), "BTC")
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestSnapshotCache_SingleUpstreamRequest(t *testing.T) {
	var calls int64
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt64(&calls, 1)
		_, _ = w.Write([]byte(fixture))
	})

	ctx := context.Background()
	for _, sym := range []string{"BTC", "ETH", "SOL", "BTC"} {
		_, _, err := c.Fetch(ctx, sym)
		require.NoError(t, err)
	}
	_, err := c.Exists(ctx, "BTC")
	require.NoError(t, err)

	assert.EqualValues(t, 1, atomic.LoadInt64(&calls))
}
