package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridleaf/carboncast/internal/emissions"
	"github.com/gridleaf/carboncast/internal/gridmix"
	"github.com/gridleaf/carboncast/internal/intensity"
	"github.com/gridleaf/carboncast/internal/loadshift"
	"github.com/gridleaf/carboncast/internal/refdata"
)

func TestNewEnvelope(t *testing.T) {
	env := NewEnvelope("estimate", map[string]int{"x": 1})

	assert.Equal(t, "estimate", env.Kind)
	assert.Len(t, env.RunID, 26, "ULID string length")
	assert.False(t, env.GeneratedAt.IsZero())

	// Run IDs are unique per envelope.
	other := NewEnvelope("estimate", nil)
	assert.NotEqual(t, env.RunID, other.RunID)
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	env := NewEnvelope("profile", map[string]string{"region": "FR"})
	require.NoError(t, WriteJSON(&buf, env))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "profile", decoded["kind"])
	assert.NotEmpty(t, decoded["run_id"])
}

func TestWriteEstimateTable(t *testing.T) {
	est := Estimate{
		Region: "EU-avg",
		Season: "winter",
		Result: emissions.Result{
			Total: 12.5,
			PerActivity: map[string]float64{
				"electricity_kwh": 2.5,
				"bus_km":          10.0,
			},
			PerCategory: map[refdata.Category]float64{
				refdata.CategoryEnergy:    2.5,
				refdata.CategoryTransport: 10.0,
			},
			Electricity: gridmix.Factor{
				Region: "EU-avg", Base: 0.28, Implied: 0.2348, Effective: 0.25,
			},
		},
		Score: &emissions.Score{Value: 72, Rating: "Good", Note: "note text"},
	}

	var buf bytes.Buffer
	WriteEstimateTable(&buf, est)
	out := buf.String()

	assert.Contains(t, out, "Household Footprint Estimate")
	assert.Contains(t, out, "Region: EU-avg")
	assert.Contains(t, out, "12.50 kg CO2e")
	assert.Contains(t, out, "electricity_kwh")
	assert.Contains(t, out, "transport")
	assert.Contains(t, out, "72/100 (Good)")
	assert.NotContains(t, out, "unknown region")
}

func TestWriteEstimateTableFallbackNote(t *testing.T) {
	est := Estimate{
		Region:         "EU-avg",
		Season:         "summer",
		RegionFallback: true,
		Result:         emissions.Result{},
	}

	var buf bytes.Buffer
	WriteEstimateTable(&buf, est)
	assert.Contains(t, buf.String(), "unknown region requested, using EU-avg")
}

func TestWriteProfileTable(t *testing.T) {
	profile := intensity.Profile{Region: "FR", Template: "flat"}
	for h := range profile.Values {
		profile.Values[h] = 0.07
	}
	profile.Values[3] = 0.05
	profile.Values[18] = 0.09

	view := ProfileView{
		Profile:  profile,
		Season:   "winter",
		LowHours: []loadshift.HourIntensity{{Hour: 3, Intensity: 0.05}},
	}

	var buf bytes.Buffer
	WriteProfileTable(&buf, view)
	out := buf.String()

	assert.Contains(t, out, "Region: FR")
	// 24 hour rows plus header material.
	assert.Equal(t, 24, strings.Count(out, ":00 0."), "one row per hour")
	assert.Contains(t, out, "03:00 0.050")
	assert.Contains(t, out, "Lowest-intensity hours:")
}

func TestWriteShiftTable(t *testing.T) {
	cmp := loadshift.Comparison{
		Rows: []loadshift.Evaluation{
			{
				Task:             loadshift.Task{Name: "laundry", Kwh: 15, Hour: 18},
				CurrentIntensity: 0.35,
				EstimatedCO2:     5.25,
				OptimalHour:      3,
				OptimalIntensity: 0.22,
				OptimalCO2:       3.30,
				SavingsKg:        1.95,
				SavingsPct:       0.3714,
			},
		},
		TotalSavingsKg: 1.95,
	}
	cmp.Best = &cmp.Rows[0]

	var buf bytes.Buffer
	WriteShiftTable(&buf, ShiftView{Region: "EU-avg", Season: "winter", Comparison: cmp})
	out := buf.String()

	assert.Contains(t, out, "laundry")
	assert.Contains(t, out, "18:00")
	assert.Contains(t, out, "1.95 kg CO2e")
	assert.Contains(t, out, "37.1%")
	assert.Contains(t, out, "Best opportunity: laundry -> 03:00")
}

func TestWriteShiftTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	WriteShiftTable(&buf, ShiftView{Region: "FR", Season: "summer"})
	assert.Contains(t, buf.String(), "No tasks to evaluate")
}

func TestWriteAnnualTable(t *testing.T) {
	view := AnnualView{
		Region:      "EU-avg",
		Season:      "winter",
		DailyKwh:    3.0,
		CurrentHour: 18,
		Projection: loadshift.Projection{
			BestHour:         3,
			CurrentIntensity: 0.35,
			BestIntensity:    0.22,
			DailyKg:          0.39,
			MonthlyKg:        11.7,
			YearlyKg:         142.35,
			YearlyCostUSD:    decimal.RequireFromString("2.14"),
			SavingsPct:       0.3714,
		},
	}

	var buf bytes.Buffer
	WriteAnnualTable(&buf, view)
	out := buf.String()

	assert.Contains(t, out, "18:00 -> 03:00")
	assert.Contains(t, out, "142.35 kg CO2e")
	assert.Contains(t, out, "$2.14/year")
}

func TestWritePlanTable(t *testing.T) {
	t.Run("forecast only", func(t *testing.T) {
		var buf bytes.Buffer
		WritePlanTable(&buf, PlanView{
			History:  []float64{10, 12},
			Forecast: []float64{11, 11, 11, 11, 11, 11, 11},
		})
		out := buf.String()
		assert.Contains(t, out, "2 day(s) recorded")
		assert.Contains(t, out, "day 7: 11.00 kg CO2e")
		assert.NotContains(t, out, "Weekly target")
	})

	t.Run("with tightening goal", func(t *testing.T) {
		var buf bytes.Buffer
		WritePlanTable(&buf, PlanView{
			History:  []float64{20, 20},
			Forecast: []float64{20, 20, 20, 20, 20, 20, 20},
			Goal:     &emissions.GoalPlan{RequiredPerDay: 12, DeltaVsCurrentAvg: -8},
			TargetKg: 100,
		})
		out := buf.String()
		assert.Contains(t, out, "Weekly target: 100.00 kg CO2e")
		assert.Contains(t, out, "tighten by 8.00 kg CO2e/day")
	})
}

func TestWriteOffsetTable(t *testing.T) {
	quote := emissions.EstimateOffset(2500, 15)

	var buf bytes.Buffer
	WriteOffsetTable(&buf, quote)
	out := buf.String()

	assert.Contains(t, out, "2.500 t CO2e")
	assert.Contains(t, out, "$15.00/tonne")
	assert.Contains(t, out, "$37.50")
	assert.Contains(t, out, "Reforestation")
	assert.Contains(t, out, "40.0%")
}

func TestWriteRegionsTable(t *testing.T) {
	rows := []RegionRow{
		{Code: "FR", Base: 0.07, Implied: 0.049, Source: "illustrative"},
		{Code: "CN", Base: 0.58, Implied: 0.5765},
	}

	var buf bytes.Buffer
	WriteRegionsTable(&buf, rows)
	out := buf.String()

	assert.Contains(t, out, "FR")
	assert.Contains(t, out, "0.070")
	assert.Contains(t, out, "CN")
}

func TestWriteDevicesTable(t *testing.T) {
	rows := []DeviceRow{
		{Name: "Refrigerator", Category: "Kitchen", PowerW: 150, Hours: 24},
		{Name: "Space Heater", Category: "Climate", PowerW: 1500, Hours: 3},
	}

	var buf bytes.Buffer
	WriteDevicesTable(&buf, rows)
	out := buf.String()

	assert.Contains(t, out, "Kitchen:")
	assert.Contains(t, out, "Climate:")
	// Categories are sorted, so Climate renders before Kitchen.
	assert.Less(t, strings.Index(out, "Climate:"), strings.Index(out, "Kitchen:"))
	assert.Contains(t, out, "Refrigerator")
}
