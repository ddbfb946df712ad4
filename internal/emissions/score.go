package emissions

import (
	"math"

	"github.com/gridleaf/carboncast/internal/refdata"
)

// Daily per-category baselines in kg CO2e and the category weights used to
// blend category scores into the overall 0-100 score. Illustrative figures,
// tuned so a typical household lands mid-range.
//
//nolint:gochecknoglobals // Fixed scoring constants, never mutated.
var (
	scoreBaselines = map[refdata.Category]float64{
		refdata.CategoryEnergy:    8.0,
		refdata.CategoryTransport: 6.0,
		refdata.CategoryMeals:     5.0,
	}
	scoreWeights = map[refdata.Category]float64{
		refdata.CategoryEnergy:    0.45,
		refdata.CategoryTransport: 0.35,
		refdata.CategoryMeals:     0.20,
	}
)

// Rating labels for score bands.
const (
	RatingExcellent        = "Excellent"
	RatingGood             = "Good"
	RatingModerate         = "Moderate"
	RatingNeedsImprovement = "Needs improvement"
)

// Score is an efficiency rating of one day's emissions against simple
// per-category baselines. 100 means far below baseline.
type Score struct {
	// Value is the weighted overall score in [0, 100].
	Value int `json:"value"`

	// PerCategory holds each category's own 0-100 score.
	PerCategory map[refdata.Category]int `json:"per_category"`

	// Rating is the banded label for Value.
	Rating string `json:"rating"`

	// Note is a single guidance sentence targeting the worst category.
	Note string `json:"note"`
}

// EfficiencyScore rates a calculation result against the category
// baselines. Emissions at baseline score 50; under-baseline days climb
// toward 100, over-baseline days drop off steeply.
func EfficiencyScore(result Result) Score {
	perCategory := make(map[refdata.Category]int, len(scoreBaselines))
	worst := refdata.CategoryEnergy
	worstScore := math.MaxInt

	for category, baseline := range scoreBaselines {
		ratio := result.PerCategory[category] / baseline
		var s float64
		if ratio <= 1.0 {
			s = 100.0 - ratio*50.0
		} else {
			// Penalize over-baseline usage more steeply.
			s = 50.0 - (ratio-1.0)*70.0
		}
		score := int(math.Round(clampScore(s)))
		perCategory[category] = score
		if score < worstScore {
			worst, worstScore = category, score
		}
	}

	overall := 0.0
	for category, weight := range scoreWeights {
		overall += weight * float64(perCategory[category])
	}
	value := int(math.Round(clampScore(overall)))

	return Score{
		Value:       value,
		PerCategory: perCategory,
		Rating:      rating(value),
		Note:        guidance(worst),
	}
}

func clampScore(s float64) float64 {
	return math.Max(0.0, math.Min(100.0, s))
}

func rating(value int) string {
	switch {
	case value >= 85:
		return RatingExcellent
	case value >= 70:
		return RatingGood
	case value >= 50:
		return RatingModerate
	default:
		return RatingNeedsImprovement
	}
}

func guidance(worst refdata.Category) string {
	switch worst {
	case refdata.CategoryEnergy:
		return "Focus on electricity and gas usage: standby power, thermostat setpoints, efficient appliances."
	case refdata.CategoryTransport:
		return "Shift trips to lower-carbon modes (walk, bike, transit) or consolidate car journeys."
	case refdata.CategoryMeals:
		return "Try more plant-forward meals and reduce high-impact ingredients on heavy days."
	default:
		return ""
	}
}
