package emissions

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEstimateOffset(t *testing.T) {
	tests := []struct {
		name       string
		kg         float64
		price      float64
		wantTonnes float64
		wantCost   string
	}{
		{
			name: "typical day",
			kg:   12.5, price: 15.0,
			wantTonnes: 0.0125,
			wantCost:   "0.19",
		},
		{
			name: "one tonne",
			kg:   1000, price: 15.0,
			wantTonnes: 1.0,
			wantCost:   "15",
		},
		{
			name: "custom price",
			kg:   2000, price: 42.5,
			wantTonnes: 2.0,
			wantCost:   "85",
		},
		{
			name: "negative emissions treated as zero",
			kg:   -5, price: 15.0,
			wantTonnes: 0,
			wantCost:   "0",
		},
		{
			name: "zero price falls back to default",
			kg:   1000, price: 0,
			wantTonnes: 1.0,
			wantCost:   "15",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EstimateOffset(tt.kg, tt.price)
			assert.InDelta(t, tt.wantTonnes, got.Tonnes, 1e-9)
			assert.True(t, got.CostUSD.Equal(decimal.RequireFromString(tt.wantCost)),
				"cost %s, want %s", got.CostUSD, tt.wantCost)

			// The quoted portfolio always covers the full amount.
			require.NotEmpty(t, got.Mix)
			shareSum := 0.0
			for _, p := range got.Mix {
				shareSum += p.Share
			}
			assert.InDelta(t, 1.0, shareSum, 1e-9)
		})
	}
}
