// Package refdata holds the immutable reference tables the emissions engine
// computes over: per-activity emission factors, regional grid mixes, device
// power presets, and normalized 24-hour intensity shape templates.
//
// Everything here is loaded once at startup from embedded YAML catalogs
// (optionally overridden from disk) and treated as read-only for the
// lifetime of the process.
package refdata

// HoursPerDay is the length of every intensity curve.
const HoursPerDay = 24

// Category groups activities for reporting purposes.
type Category string

// The fixed activity categories. Device presets carry their own free-form
// category tags (Kitchen, Climate, ...) which are unrelated to these.
const (
	CategoryEnergy    Category = "Energy"
	CategoryTransport Category = "Transport"
	CategoryMeals     Category = "Meals"
)

// ActivityFactor is the emission factor for one activity identifier.
type ActivityFactor struct {
	// Factor is kg CO2e emitted per unit of the activity.
	Factor float64 `yaml:"factor" json:"factor"`

	// Category assigns the activity to a reporting category.
	Category Category `yaml:"category" json:"category"`
}

// ActivityTable maps activity identifiers (electricity_kwh, petrol_liter,
// meat_kg, ...) to their emission factors. The key set is closed at load
// time; no activities are created at runtime.
type ActivityTable map[string]ActivityFactor

// GridMix maps generation source names (coal, gas, nuclear, ...) to their
// fractional share of a region's electricity generation. Shares are
// non-negative and sum to 1.0 within a small tolerance.
type GridMix map[string]float64

// sourceIntensities holds approximate emission intensities per generation
// source in kg CO2 per kWh, used to derive a mix's implied intensity.
//
//nolint:gochecknoglobals // Fixed physical constants, never mutated.
var sourceIntensities = map[string]float64{
	"coal":       0.9,
	"gas":        0.45,
	"oil":        0.7,
	"nuclear":    0.012,
	"hydro":      0.01,
	"wind":       0.01,
	"solar":      0.05,
	"biomass":    0.10,
	"geothermal": 0.038,
}

// SourceIntensity returns the per-kWh emission intensity for a generation
// source name, or (0, false) for unknown sources.
func SourceIntensity(source string) (float64, bool) {
	v, ok := sourceIntensities[source]
	return v, ok
}

// ImpliedIntensity derives the mix's emission intensity in kg CO2/kWh as
// the share-weighted sum of per-source intensities. Unknown sources and
// non-positive shares contribute nothing. Pure function of the mix.
func (m GridMix) ImpliedIntensity() float64 {
	total := 0.0
	for source, share := range m {
		if share <= 0 {
			continue
		}
		intensity, ok := sourceIntensities[source]
		if !ok {
			continue
		}
		total += share * intensity
	}
	return total
}

// Share returns the fractional share for a source, 0 if absent.
func (m GridMix) Share(source string) float64 {
	return m[source]
}

// Sum returns the total of all shares. Valid catalogs keep this within
// MixSumTolerance of 1.0.
func (m GridMix) Sum() float64 {
	total := 0.0
	for _, share := range m {
		total += share
	}
	return total
}

// RegionMeta carries provenance for a region's factors. Display only; the
// engine never branches on it.
type RegionMeta struct {
	Source  string `yaml:"source" json:"source"`
	Version string `yaml:"version" json:"version"`
	URL     string `yaml:"url" json:"url"`
}

// Region is one entry of the region catalog.
type Region struct {
	// Code is the catalog key (FR, EU-avg, US-CA, ...).
	Code string `yaml:"-" json:"code"`

	// BaseElectricityFactor is the authoritative kg CO2e/kWh figure for the
	// region. It may differ from the mix's implied intensity because it can
	// come from an independent source.
	BaseElectricityFactor float64 `yaml:"-" json:"base_electricity_factor"`

	// Mix is the region's generation mix.
	Mix GridMix `yaml:"grid_mix" json:"grid_mix"`

	// Meta is provenance metadata for display.
	Meta RegionMeta `yaml:"__meta__" json:"meta"`
}

// DevicePreset describes a household appliance used to derive an
// electricity quantity for an ActivityEntry. The engine itself is agnostic
// to how a kWh figure was produced; presets are a convenience layer.
type DevicePreset struct {
	// Name is the catalog key ("Washing Machine", "Central AC", ...).
	Name string `yaml:"-" json:"name"`

	// PowerW is nominal power draw in watts.
	PowerW float64 `yaml:"power_w" json:"power_w"`

	// HoursPerDay is nominal daily usage hours.
	HoursPerDay float64 `yaml:"hours_per_day" json:"hours_per_day"`

	// Category is a free-form grouping tag (Kitchen, Climate, ...).
	Category string `yaml:"category" json:"category"`

	// SeasonalHours optionally overrides HoursPerDay per season.
	// Authors encode these explicitly; nothing is computed.
	SeasonalHours map[string]float64 `yaml:"seasonal_hours,omitempty" json:"seasonal_hours,omitempty"`
}

// ShapeTemplate is a normalized 24-point intensity curve pattern.
// Curves are stored relative (mean ~1.0) and scaled to a region's
// intensity basis when a profile is built.
type ShapeTemplate struct {
	// Name is the catalog key (flat, solar_heavy, winter_dual_peak, ...).
	Name string `json:"name"`

	// Curve is the season-independent default shape.
	Curve []float64 `json:"curve"`

	// Seasons optionally carries explicit per-season sub-shapes, e.g. a
	// shallower midday dip for solar_heavy in winter.
	Seasons map[string][]float64 `json:"seasons,omitempty"`
}

// CurveFor returns the template's curve for a season, falling back to the
// default curve when no season-specific sub-shape is authored.
func (t ShapeTemplate) CurveFor(season Season) []float64 {
	if c, ok := t.Seasons[season.String()]; ok {
		return c
	}
	return t.Curve
}
