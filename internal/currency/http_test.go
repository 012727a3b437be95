package currency_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ktnkk/crosslist/internal/cache"
	"github.com/ktnkk/crosslist/internal/currency"
)

func newRateCache(t *testing.T) *cache.Memory {
	t.Helper()

	c := cache.NewMemory(time.Minute)
	t.Cleanup(c.Close)
	return c
}

func TestHTTP_Convert(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "JPY", r.URL.Query().Get("base"))
		assert.Equal(t, "USD", r.URL.Query().Get("symbols"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"base":"JPY","rates":{"USD":0.0067}}`))
	}))
	defer server.Close()

	conv := currency.NewHTTP(server.URL, newRateCache(t), time.Hour)

	got, err := conv.Convert(context.Background(), 15000, "JPY", "USD")
	require.NoError(t, err)
	assert.InDelta(t, 100.50, got, 0.001)
}

func TestHTTP_Rate_Cached(t *testing.T) {
	t.Parallel()

	var calls atomic.Int64

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(`{"base":"JPY","rates":{"USD":0.0067}}`))
	}))
	defer server.Close()

	conv := currency.NewHTTP(server.URL, newRateCache(t), time.Hour)

	for range 3 {
		rate, err := conv.Rate(context.Background(), "JPY", "USD")
		require.NoError(t, err)
		assert.InDelta(t, 0.0067, rate, 0.00001)
	}

	assert.Equal(t, int64(1), calls.Load(), "cached rate must not refetch")
}

func TestHTTP_Rate_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		handler http.HandlerFunc
		wantMsg string
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusServiceUnavailable)
			},
			wantMsg: "status 503",
		},
		{
			name: "invalid json",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`not json`))
			},
			wantMsg: "parsing rate response",
		},
		{
			name: "missing symbol",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{"base":"JPY","rates":{}}`))
			},
			wantMsg: "no rate for USD",
		},
		{
			name: "non-positive rate",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{"base":"JPY","rates":{"USD":0}}`))
			},
			wantMsg: "non-positive rate",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(tt.handler)
			defer server.Close()

			conv := currency.NewHTTP(server.URL, newRateCache(t), time.Hour)

			_, err := conv.Rate(context.Background(), "JPY", "USD")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestHTTP_Refresh(t *testing.T) {
	t.Parallel()

	var calls atomic.Int64

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(`{"base":"JPY","rates":{"USD":0.0070}}`))
	}))
	defer server.Close()

	conv := currency.NewHTTP(server.URL, newRateCache(t), time.Hour)

	// Warm the cache, then force a refresh past it.
	_, err := conv.Rate(context.Background(), "JPY", "USD")
	require.NoError(t, err)
	require.Equal(t, int64(1), calls.Load())

	require.NoError(t, conv.Refresh(context.Background(), []string{"JPY/USD"}))
	assert.Equal(t, int64(2), calls.Load())

	rate, err := conv.Rate(context.Background(), "JPY", "USD")
	require.NoError(t, err)
	assert.InDelta(t, 0.0070, rate, 0.00001)
	assert.Equal(t, int64(2), calls.Load())
}

func TestHTTP_Refresh_InvalidPair(t *testing.T) {
	t.Parallel()

	conv := currency.NewHTTP("http://localhost:1", newRateCache(t), time.Hour)

	err := conv.Refresh(context.Background(), []string{"JPYUSD"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid currency pair "JPYUSD"`)
}
