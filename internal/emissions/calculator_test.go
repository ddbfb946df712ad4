package emissions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridleaf/carboncast/internal/gridmix"
	"github.com/gridleaf/carboncast/internal/refdata"
)

func testTable(t *testing.T) refdata.ActivityTable {
	t.Helper()
	cat, err := refdata.Load()
	require.NoError(t, err)
	return cat.Activities()
}

// staticElectricity charges electricity at the static table factor, which
// keeps expected values easy to read in tests.
func staticElectricity(t *testing.T) gridmix.Factor {
	t.Helper()
	return gridmix.Factor{Region: "static", Effective: testTable(t)[electricityKey].Factor}
}

func TestCalculate(t *testing.T) {
	table := testTable(t)

	tests := []struct {
		name        string
		entry       Entry
		electricity gridmix.Factor
		opts        []Option
		wantTotal   float64
		wantErr     error
	}{
		{
			name:        "single activity",
			entry:       Entry{"bus_km": 10},
			electricity: gridmix.Factor{Effective: 0.233},
			wantTotal:   1.2,
		},
		{
			name:        "electricity uses effective factor not table factor",
			entry:       Entry{"electricity_kwh": 10},
			electricity: gridmix.Factor{Region: "FR", Effective: 0.07},
			wantTotal:   0.7,
		},
		{
			name:        "non-electricity activities ignore the effective factor",
			entry:       Entry{"meat_kg": 0.2},
			electricity: gridmix.Factor{Region: "FR", Effective: 0.07},
			wantTotal:   5.4,
		},
		{
			name:        "mixed entry",
			entry:       Entry{"electricity_kwh": 4.0, "petrol_liter": 2.0, "meat_kg": 0.1},
			electricity: gridmix.Factor{Effective: 0.28},
			// 4*0.28 + 2*0.235 + 0.1*27 = 1.12 + 0.47 + 2.7
			wantTotal: 4.29,
		},
		{
			name:        "unknown activity ignored by default",
			entry:       Entry{"teleporter_trips": 3, "bus_km": 10},
			electricity: gridmix.Factor{Effective: 0.233},
			wantTotal:   1.2,
		},
		{
			name:        "unknown activity rejected in strict mode",
			entry:       Entry{"teleporter_trips": 3},
			electricity: gridmix.Factor{Effective: 0.233},
			opts:        []Option{Strict()},
			wantErr:     ErrUnknownActivity,
		},
		{
			name:        "negative quantity rejected",
			entry:       Entry{"bus_km": -5},
			electricity: gridmix.Factor{Effective: 0.233},
			wantErr:     ErrInvalidQuantity,
		},
		{
			name:        "zero quantities contribute nothing",
			entry:       Entry{"bus_km": 0, "meat_kg": 0},
			electricity: gridmix.Factor{Effective: 0.233},
			wantTotal:   0,
		},
		{
			name:        "display-style keys normalized",
			entry:       Entry{"Electricity (kWh)": 10},
			electricity: gridmix.Factor{Effective: 0.233},
			wantTotal:   2.33,
		},
		{
			name:        "zero-factor activity tracked as zero",
			entry:       Entry{"bicycle_km": 25},
			electricity: gridmix.Factor{Effective: 0.233},
			wantTotal:   0,
		},
		{
			name:        "empty entry",
			entry:       Entry{},
			electricity: gridmix.Factor{Effective: 0.233},
			wantTotal:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Calculate(table, tt.entry, tt.electricity, tt.opts...)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.wantTotal, got.Total, 1e-9)
		})
	}
}

func TestCalculateCategorySumsMatchTotal(t *testing.T) {
	table := testTable(t)
	electricity := staticElectricity(t)

	entry := Entry{
		"electricity_kwh": 6.5,
		"natural_gas_m3":  1.2,
		"petrol_liter":    3.0,
		"train_km":        40,
		"meat_kg":         0.15,
		"dairy_kg":        0.3,
	}

	result, err := Calculate(table, entry, electricity)
	require.NoError(t, err)

	categorySum := 0.0
	for _, kg := range result.PerCategory {
		categorySum += kg
	}
	assert.InDelta(t, result.Total, categorySum, 1e-9)

	activitySum := 0.0
	for _, kg := range result.PerActivity {
		activitySum += kg
	}
	assert.InDelta(t, result.Total, activitySum, 1e-9)
}

func TestCalculateAdditivity(t *testing.T) {
	// calculate(A union B) over disjoint keys equals the per-activity sum of
	// the separate calculations.
	table := testTable(t)
	electricity := staticElectricity(t)

	entryA := Entry{"electricity_kwh": 3.0, "bus_km": 12}
	entryB := Entry{"meat_kg": 0.2, "diesel_liter": 1.5}

	combined := Entry{}
	for k, v := range entryA {
		combined[k] = v
	}
	for k, v := range entryB {
		combined[k] = v
	}

	resultA, err := Calculate(table, entryA, electricity)
	require.NoError(t, err)
	resultB, err := Calculate(table, entryB, electricity)
	require.NoError(t, err)
	resultAB, err := Calculate(table, combined, electricity)
	require.NoError(t, err)

	assert.InDelta(t, resultA.Total+resultB.Total, resultAB.Total, 1e-9)
	for key, kg := range resultA.PerActivity {
		assert.InDelta(t, kg, resultAB.PerActivity[key], 1e-9, "activity %s", key)
	}
	for key, kg := range resultB.PerActivity {
		assert.InDelta(t, kg, resultAB.PerActivity[key], 1e-9, "activity %s", key)
	}
}

func TestNormalizeKey(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{input: "electricity_kwh", want: "electricity_kwh"},
		{input: "Electricity (kWh)", want: "electricity_kwh"},
		{input: "  Bus km ", want: "bus_km"},
		{input: "FLIGHT-SHORT-KM", want: "flight_short_km"},
		{input: "meat  (kg)", want: "meat_kg"},
		{input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeKey(tt.input))
		})
	}
}
