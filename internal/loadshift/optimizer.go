// Package loadshift finds lower-carbon operating hours for deferrable
// household loads against an hourly intensity profile, and projects the
// annual effect of making a shift permanent.
package loadshift

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/gridleaf/carboncast/internal/intensity"
	"github.com/gridleaf/carboncast/internal/refdata"
)

// Projection horizon constants. A flat 365-day year and a 30-day month are
// the documented approximations: no leap years, no day-of-week weighting.
const (
	daysPerYear  = 365
	daysPerMonth = 30
	kgPerTonne   = 1000.0
)

// Task is one deferrable load: a name, its energy use in kWh, and the hour
// it currently runs at.
type Task struct {
	Name string  `json:"name"`
	Kwh  float64 `json:"kwh"`
	Hour int     `json:"hour"`
}

// Evaluation is the single-task optimization result.
type Evaluation struct {
	Task Task `json:"task"`

	// CurrentIntensity is the profile value at the task's hour (kg CO2/kWh).
	CurrentIntensity float64 `json:"current_intensity"`

	// EstimatedCO2 is kWh x current intensity.
	EstimatedCO2 float64 `json:"estimated_co2_kg"`

	// OptimalHour is the argmin of the profile; ties break to the
	// smallest hour index.
	OptimalHour int `json:"optimal_hour"`

	// OptimalIntensity is the profile value at OptimalHour.
	OptimalIntensity float64 `json:"optimal_intensity"`

	// OptimalCO2 is kWh x optimal intensity.
	OptimalCO2 float64 `json:"optimal_co2_kg"`

	// SavingsKg is the emission reduction from moving the task, floored at 0.
	SavingsKg float64 `json:"savings_kg"`

	// SavingsPct is SavingsKg as a fraction of EstimatedCO2, in [0, 1].
	// Defined as 0 when EstimatedCO2 is 0.
	SavingsPct float64 `json:"savings_pct"`
}

// Evaluate computes the optimal hour and savings for one task. Hours
// outside [0, 24) wrap around the day.
func Evaluate(profile intensity.Profile, task Task) Evaluation {
	optimalHour, optimalIntensity := profile.Min()
	current := profile.At(task.Hour)

	estimated := task.Kwh * current
	optimal := task.Kwh * optimalIntensity

	savings := estimated - optimal
	if savings < 0 {
		savings = 0
	}
	pct := 0.0
	if estimated > 0 {
		pct = savings / estimated
	}

	return Evaluation{
		Task:             task,
		CurrentIntensity: current,
		EstimatedCO2:     estimated,
		OptimalHour:      optimalHour,
		OptimalIntensity: optimalIntensity,
		OptimalCO2:       optimal,
		SavingsKg:        savings,
		SavingsPct:       pct,
	}
}

// Comparison is the multi-task optimization result.
type Comparison struct {
	// Rows holds one Evaluation per task, in input order.
	Rows []Evaluation `json:"rows"`

	// TotalSavingsKg sums the per-task savings.
	TotalSavingsKg float64 `json:"total_savings_kg"`

	// Best points at the row with the largest savings, nil when Rows is
	// empty. Ties resolve to the earliest task.
	Best *Evaluation `json:"best_opportunity,omitempty"`
}

// Compare evaluates every task against the profile. An empty task list is
// not an error: it produces empty rows and zero totals.
func Compare(profile intensity.Profile, tasks []Task) Comparison {
	cmp := Comparison{Rows: make([]Evaluation, 0, len(tasks))}
	for _, task := range tasks {
		row := Evaluate(profile, task)
		cmp.Rows = append(cmp.Rows, row)
		cmp.TotalSavingsKg += row.SavingsKg
	}
	for i := range cmp.Rows {
		if cmp.Best == nil || cmp.Rows[i].SavingsKg > cmp.Best.SavingsKg {
			cmp.Best = &cmp.Rows[i]
		}
	}
	return cmp
}

// Projection annualizes the savings of shifting a recurring daily load to
// the profile's best hour.
type Projection struct {
	BestHour         int     `json:"best_hour"`
	CurrentIntensity float64 `json:"current_intensity"`
	BestIntensity    float64 `json:"best_intensity"`

	// DailyKg is the kg CO2e saved per day by the shift.
	DailyKg float64 `json:"daily_savings_kg"`

	// MonthlyKg is DailyKg x 30.
	MonthlyKg float64 `json:"monthly_savings_kg"`

	// YearlyKg is DailyKg x 365.
	YearlyKg float64 `json:"yearly_savings_kg"`

	// YearlyCostUSD values the yearly savings at the given offset price,
	// rounded to cents.
	YearlyCostUSD decimal.Decimal `json:"yearly_cost_usd"`

	// SavingsPct is the daily reduction as a fraction of the task's
	// current emissions, in [0, 1].
	SavingsPct float64 `json:"savings_pct"`
}

// Annualize projects the yearly effect of moving dailyKwh of recurring
// load from currentHour to the profile's best hour, valuing the avoided
// emissions at costPerTonneUSD.
func Annualize(profile intensity.Profile, dailyKwh float64, currentHour int, costPerTonneUSD float64) Projection {
	bestHour, bestIntensity := profile.Min()
	current := profile.At(currentHour)

	daily := dailyKwh * (current - bestIntensity)
	if daily < 0 {
		daily = 0
	}
	yearly := daily * daysPerYear

	cost := decimal.NewFromFloat(yearly / kgPerTonne).
		Mul(decimal.NewFromFloat(costPerTonneUSD)).
		Round(2)

	pct := 0.0
	if estimated := dailyKwh * current; estimated > 0 {
		pct = daily / estimated
	}

	return Projection{
		BestHour:         bestHour,
		CurrentIntensity: current,
		BestIntensity:    bestIntensity,
		DailyKg:          daily,
		MonthlyKg:        daily * daysPerMonth,
		YearlyKg:         yearly,
		YearlyCostUSD:    cost,
		SavingsPct:       pct,
	}
}

// HourIntensity pairs an hour of day with its intensity.
type HourIntensity struct {
	Hour      int     `json:"hour"`
	Intensity float64 `json:"intensity"`
}

// TopNLowHours returns the n lowest-intensity hours, sorted ascending by
// intensity and then by hour on ties. n is clamped to [0, 24].
func TopNLowHours(profile intensity.Profile, n int) []HourIntensity {
	if n <= 0 {
		return nil
	}
	if n > refdata.HoursPerDay {
		n = refdata.HoursPerDay
	}

	hours := make([]HourIntensity, refdata.HoursPerDay)
	for h := range profile.Values {
		hours[h] = HourIntensity{Hour: h, Intensity: profile.Values[h]}
	}
	sort.Slice(hours, func(i, j int) bool {
		if hours[i].Intensity != hours[j].Intensity {
			return hours[i].Intensity < hours[j].Intensity
		}
		return hours[i].Hour < hours[j].Hour
	})
	return hours[:n]
}
