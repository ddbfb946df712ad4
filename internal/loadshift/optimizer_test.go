package loadshift

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridleaf/carboncast/internal/intensity"
	"github.com/gridleaf/carboncast/internal/refdata"
)

// flatProfile builds a profile at the given level with selected hour overrides.
func flatProfile(level float64, overrides map[int]float64) intensity.Profile {
	var p intensity.Profile
	for h := range p.Values {
		p.Values[h] = level
	}
	for h, v := range overrides {
		p.Values[h] = v
	}
	return p
}

func TestEvaluate(t *testing.T) {
	// Reference scenario: 15 kWh at hour 18 (0.35) vs the 03:00 minimum (0.22).
	profile := flatProfile(0.35, map[int]float64{3: 0.22})

	got := Evaluate(profile, Task{Name: "Dishwasher", Kwh: 15, Hour: 18})

	assert.InDelta(t, 0.35, got.CurrentIntensity, 1e-9)
	assert.InDelta(t, 5.25, got.EstimatedCO2, 1e-9)
	assert.Equal(t, 3, got.OptimalHour)
	assert.InDelta(t, 3.30, got.OptimalCO2, 1e-9)
	assert.InDelta(t, 1.95, got.SavingsKg, 1e-9)
	assert.InDelta(t, 0.3714, got.SavingsPct, 1e-3)
}

func TestEvaluateEdgeCases(t *testing.T) {
	tests := []struct {
		name        string
		profile     intensity.Profile
		task        Task
		wantSavings float64
		wantPct     float64
		wantOptimal int
	}{
		{
			name:        "task already at optimal hour",
			profile:     flatProfile(0.30, map[int]float64{5: 0.10}),
			task:        Task{Kwh: 10, Hour: 5},
			wantSavings: 0,
			wantPct:     0,
			wantOptimal: 5,
		},
		{
			name:        "zero kwh yields zero savings and zero pct",
			profile:     flatProfile(0.30, map[int]float64{2: 0.10}),
			task:        Task{Kwh: 0, Hour: 18},
			wantSavings: 0,
			wantPct:     0,
			wantOptimal: 2,
		},
		{
			name:        "flat profile ties break to hour 0",
			profile:     flatProfile(0.25, nil),
			task:        Task{Kwh: 8, Hour: 12},
			wantSavings: 0,
			wantPct:     0,
			wantOptimal: 0,
		},
		{
			name:        "hour wraps around the day",
			profile:     flatProfile(0.40, map[int]float64{1: 0.20}),
			task:        Task{Kwh: 10, Hour: 25},
			wantSavings: 0,
			wantPct:     0,
			wantOptimal: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(tt.profile, tt.task)
			assert.InDelta(t, tt.wantSavings, got.SavingsKg, 1e-9)
			assert.InDelta(t, tt.wantPct, got.SavingsPct, 1e-9)
			assert.Equal(t, tt.wantOptimal, got.OptimalHour)
		})
	}
}

func TestEvaluateInvariants(t *testing.T) {
	// optimalCO2 <= estimatedCO2 and savingsPct in [0,1] for every catalog
	// profile and a spread of tasks.
	cat, err := refdata.Load()
	require.NoError(t, err)

	for _, code := range cat.RegionCodes() {
		for _, season := range refdata.Seasons {
			profile, err := intensity.BuildProfile(cat, code, season)
			require.NoError(t, err)

			for hour := 0; hour < refdata.HoursPerDay; hour += 5 {
				got := Evaluate(profile, Task{Kwh: 3.5, Hour: hour})
				assert.LessOrEqual(t, got.OptimalCO2, got.EstimatedCO2,
					"%s/%s hour %d", code, season, hour)
				assert.GreaterOrEqual(t, got.SavingsPct, 0.0)
				assert.LessOrEqual(t, got.SavingsPct, 1.0)
			}
		}
	}
}

func TestCompare(t *testing.T) {
	profile := flatProfile(0.35, map[int]float64{3: 0.22})

	tasks := []Task{
		{Name: "Dishwasher", Kwh: 15, Hour: 18},
		{Name: "EV Charge", Kwh: 30, Hour: 20},
		{Name: "Night pump", Kwh: 5, Hour: 3},
	}

	got := Compare(profile, tasks)
	require.Len(t, got.Rows, 3)

	// 15*(0.35-0.22) + 30*(0.35-0.22) + 0
	assert.InDelta(t, 1.95+3.90, got.TotalSavingsKg, 1e-9)
	require.NotNil(t, got.Best)
	assert.Equal(t, "EV Charge", got.Best.Task.Name)
}

func TestCompareEmptyTaskList(t *testing.T) {
	got := Compare(flatProfile(0.3, nil), nil)

	assert.Empty(t, got.Rows)
	assert.Zero(t, got.TotalSavingsKg)
	assert.Nil(t, got.Best)
}

func TestCompareBestTieGoesToEarliestTask(t *testing.T) {
	profile := flatProfile(0.35, map[int]float64{3: 0.22})
	tasks := []Task{
		{Name: "first", Kwh: 10, Hour: 18},
		{Name: "second", Kwh: 10, Hour: 18},
	}

	got := Compare(profile, tasks)
	require.NotNil(t, got.Best)
	assert.Equal(t, "first", got.Best.Task.Name)
}

func TestAnnualize(t *testing.T) {
	// Reference scenario: 3 kWh daily, peak-offpeak gap 0.13 kg/kWh, $15/t.
	profile := flatProfile(0.35, map[int]float64{3: 0.22})

	got := Annualize(profile, 3.0, 18, 15.0)

	assert.Equal(t, 3, got.BestHour)
	assert.InDelta(t, 0.39, got.DailyKg, 1e-9)
	assert.InDelta(t, 11.7, got.MonthlyKg, 1e-9)
	assert.InDelta(t, 142.35, got.YearlyKg, 1e-9)
	assert.True(t, got.YearlyCostUSD.Equal(decimal.RequireFromString("2.14")),
		"yearly cost %s", got.YearlyCostUSD)
	assert.InDelta(t, 0.13/0.35, got.SavingsPct, 1e-9)
}

func TestAnnualizeAtBestHour(t *testing.T) {
	profile := flatProfile(0.35, map[int]float64{3: 0.22})

	got := Annualize(profile, 3.0, 3, 15.0)
	assert.Zero(t, got.DailyKg)
	assert.Zero(t, got.YearlyKg)
	assert.True(t, got.YearlyCostUSD.IsZero())
	assert.Zero(t, got.SavingsPct)
}

func TestAnnualizeZeroLoad(t *testing.T) {
	profile := flatProfile(0.35, map[int]float64{3: 0.22})

	got := Annualize(profile, 0, 18, 15.0)
	assert.Zero(t, got.DailyKg)
	assert.Zero(t, got.SavingsPct)
}

func TestTopNLowHours(t *testing.T) {
	profile := flatProfile(0.5, map[int]float64{
		4:  0.10,
		14: 0.20,
		2:  0.20, // ties sort by hour
		22: 0.30,
	})

	got := TopNLowHours(profile, 4)
	require.Len(t, got, 4)
	assert.Equal(t, 4, got[0].Hour)
	assert.Equal(t, 2, got[1].Hour)
	assert.Equal(t, 14, got[2].Hour)
	assert.Equal(t, 22, got[3].Hour)

	assert.Nil(t, TopNLowHours(profile, 0))
	assert.Len(t, TopNLowHours(profile, 100), refdata.HoursPerDay)
}
