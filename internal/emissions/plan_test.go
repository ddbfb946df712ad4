package emissions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForecastWeek(t *testing.T) {
	tests := []struct {
		name    string
		history []float64
		want    float64
	}{
		{name: "empty history projects zero", history: nil, want: 0},
		{name: "single day", history: []float64{4.2}, want: 4.2},
		{name: "short history averages all", history: []float64{2, 4}, want: 3},
		{
			name:    "long history uses trailing week",
			history: []float64{100, 100, 100, 7, 7, 7, 7, 7, 7, 7},
			want:    7,
		},
		{name: "negative days floored", history: []float64{-3, 5}, want: 2.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ForecastWeek(tt.history)
			require.Len(t, got, 7)
			for _, v := range got {
				assert.InDelta(t, tt.want, v, 1e-9)
			}
		})
	}
}

func TestWeeklyGoal(t *testing.T) {
	tests := []struct {
		name         string
		currentSum   float64
		remaining    int
		target       float64
		wantRequired float64
		wantDelta    float64
	}{
		{
			name:       "week over, nothing to plan",
			currentSum: 30, remaining: 0, target: 40,
			wantRequired: 0, wantDelta: 0,
		},
		{
			// 20 kg left over 4 days = 5/day; elapsed 3 days averaged 20/3.
			name:       "mid-week pace",
			currentSum: 20, remaining: 4, target: 40,
			wantRequired: 5, wantDelta: 5 - 20.0/3.0,
		},
		{
			name:       "target already hit",
			currentSum: 50, remaining: 2, target: 40,
			wantRequired: 0, wantDelta: -10,
		},
		{
			name:       "fresh week",
			currentSum: 0, remaining: 7, target: 35,
			wantRequired: 5, wantDelta: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WeeklyGoal(tt.currentSum, tt.remaining, tt.target)
			assert.InDelta(t, tt.wantRequired, got.RequiredPerDay, 1e-9)
			assert.InDelta(t, tt.wantDelta, got.DeltaVsCurrentAvg, 1e-9)
		})
	}
}
