// Package emissions converts a day's activity quantities into kg CO2e
// totals, with per-activity and per-category breakdowns, and carries the
// scoring, offset, and planning helpers layered on top of those totals.
package emissions

import (
	"fmt"
	"strings"

	"github.com/gridleaf/carboncast/internal/gridmix"
	"github.com/gridleaf/carboncast/internal/refdata"
)

// electricityKey is the activity whose factor is replaced by the resolved
// effective electricity factor.
const electricityKey = "electricity_kwh"

// Entry holds one day's quantities keyed by activity identifier. Missing
// activities count as zero. Entries are ephemeral: built per calculation,
// never persisted by the engine.
type Entry map[string]float64

// Result is the outcome of one calculation.
type Result struct {
	// Total is the day's emissions in kg CO2e.
	Total float64 `json:"total_kg"`

	// PerActivity maps normalized activity identifiers to their kg CO2e
	// contribution. Zero contributions are omitted.
	PerActivity map[string]float64 `json:"per_activity"`

	// PerCategory aggregates PerActivity by the fixed activity-category
	// mapping. Category totals sum to Total exactly.
	PerCategory map[refdata.Category]float64 `json:"per_category"`

	// Electricity is the resolved factor the electricity activity was
	// charged at, echoed for display.
	Electricity gridmix.Factor `json:"electricity"`
}

// Option adjusts calculation policy.
type Option func(*options)

type options struct {
	strict bool
}

// Strict makes unknown activity identifiers an error instead of ignoring
// them. The lenient default is the documented forward-compatibility policy.
func Strict() Option {
	return func(o *options) { o.strict = true }
}

// NormalizeKey canonicalizes an activity identifier: lowercase, with runs
// of non-alphanumeric characters collapsed into single underscores, so
// "Electricity (kWh)" matches "electricity_kwh".
func NormalizeKey(key string) string {
	var b strings.Builder
	b.Grow(len(key))
	pendingSep := false
	for _, r := range strings.ToLower(strings.TrimSpace(key)) {
		isWord := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if !isWord {
			pendingSep = b.Len() > 0
			continue
		}
		if pendingSep {
			b.WriteByte('_')
			pendingSep = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Calculate multiplies each activity quantity by its emission factor and
// aggregates the results. The electricity activity is charged at the
// resolved effective factor; every other activity uses the static table.
//
// Negative quantities return ErrInvalidQuantity. Unknown identifiers are
// ignored unless Strict() is given. Zero and missing quantities contribute
// nothing, silently.
func Calculate(
	table refdata.ActivityTable,
	entry Entry,
	electricity gridmix.Factor,
	opts ...Option,
) (Result, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	result := Result{
		PerActivity: make(map[string]float64),
		PerCategory: make(map[refdata.Category]float64),
		Electricity: electricity,
	}

	for rawKey, quantity := range entry {
		key := NormalizeKey(rawKey)
		factor, known := table[key]
		if !known {
			if o.strict {
				return Result{}, fmt.Errorf("%w: %q", ErrUnknownActivity, rawKey)
			}
			continue
		}
		if quantity < 0 {
			return Result{}, fmt.Errorf("%w: %q is %v", ErrInvalidQuantity, rawKey, quantity)
		}

		perUnit := factor.Factor
		if key == electricityKey {
			perUnit = electricity.Effective
		}

		kg := perUnit * quantity
		if kg == 0 {
			continue
		}
		result.PerActivity[key] += kg
		result.PerCategory[factor.Category] += kg
		result.Total += kg
	}

	return result, nil
}
