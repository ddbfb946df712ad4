package emissions

// daysPerWeek is the horizon of the flat forecast and the goal planner.
const daysPerWeek = 7

// ForecastWeek projects the next seven daily totals as a flat line at the
// trailing average of the last seven history entries (or all of them when
// fewer exist). Deliberately simple: the engine has no weekday weighting
// and no trend model. Negative history values are floored at zero.
func ForecastWeek(history []float64) []float64 {
	sum, n := 0.0, 0
	start := 0
	if len(history) > daysPerWeek {
		start = len(history) - daysPerWeek
	}
	for _, v := range history[start:] {
		if v < 0 {
			v = 0
		}
		sum += v
		n++
	}

	base := 0.0
	if n > 0 {
		base = sum / float64(n)
	}

	forecast := make([]float64, daysPerWeek)
	for i := range forecast {
		forecast[i] = base
	}
	return forecast
}

// GoalPlan is the outcome of a weekly emissions goal check.
type GoalPlan struct {
	// RequiredPerDay is the average kg CO2e per remaining day needed to
	// land on the target.
	RequiredPerDay float64 `json:"required_per_day"`

	// DeltaVsCurrentAvg is RequiredPerDay minus the average of the days
	// already elapsed. Negative means the pace must tighten.
	DeltaVsCurrentAvg float64 `json:"delta_vs_current_avg"`
}

// WeeklyGoal computes the per-day budget for the rest of the week given
// the kg accumulated so far, the days remaining, and the weekly target.
// With no days remaining the plan is all zeros: the week is decided.
func WeeklyGoal(currentWeekSum float64, remainingDays int, targetWeekSum float64) GoalPlan {
	if remainingDays <= 0 {
		return GoalPlan{}
	}
	if remainingDays > daysPerWeek {
		remainingDays = daysPerWeek
	}

	needed := targetWeekSum - currentWeekSum
	if needed < 0 {
		needed = 0
	}
	required := needed / float64(remainingDays)

	elapsed := daysPerWeek - remainingDays
	currentAvg := required
	if elapsed > 0 {
		currentAvg = currentWeekSum / float64(elapsed)
	}

	return GoalPlan{
		RequiredPerDay:    required,
		DeltaVsCurrentAvg: required - currentAvg,
	}
}
