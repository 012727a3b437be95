package currency_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ktnkk/crosslist/internal/currency"
)

func TestFixed_Convert(t *testing.T) {
	t.Parallel()

	conv := currency.NewFixed(map[string]float64{
		"JPY/USD": 0.0067,
	})

	tests := []struct {
		name    string
		amount  float64
		from    string
		to      string
		want    float64
		wantErr string
	}{
		{
			name:   "jpy to usd",
			amount: 15000,
			from:   "JPY",
			to:     "USD",
			want:   100.50,
		},
		{
			name:   "rounds to two decimals",
			amount: 1999,
			from:   "JPY",
			to:     "USD",
			want:   13.39,
		},
		{
			name:   "same currency is identity",
			amount: 42.42,
			from:   "USD",
			to:     "USD",
			want:   42.42,
		},
		{
			name:   "inverse pair",
			amount: 67,
			from:   "USD",
			to:     "JPY",
			want:   10000,
		},
		{
			name:    "unknown pair",
			amount:  10,
			from:    "EUR",
			to:      "GBP",
			wantErr: "no exchange rate configured for EUR/GBP",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := conv.Convert(context.Background(), tt.amount, tt.from, tt.to)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 0.001)
		})
	}
}

func TestPair(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "JPY/USD", currency.Pair("JPY", "USD"))
}
