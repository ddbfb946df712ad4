// Package intensity models hour-of-day carbon intensity for a region and
// season. A normalized 24-point shape template is selected from the
// region's grid composition (falling back to season defaults), then scaled
// to the region's intensity basis. Profiles are deterministic: the same
// (region, season, basis) always produces the same curve, with no
// smoothing or hysteresis across recomputations.
package intensity

import (
	"github.com/gridleaf/carboncast/internal/gridmix"
	"github.com/gridleaf/carboncast/internal/refdata"
)

// Template names the modeler selects between.
const (
	TemplateFlat             = "flat"
	TemplateEveningPeak      = "evening_peak"
	TemplateWinterDualPeak   = "winter_dual_peak"
	TemplateSpringSolar      = "spring_solar"
	TemplateAutumnTransition = "autumn_transition"
	TemplateSolarHeavy       = "solar_heavy"
	TemplateWindHeavy        = "wind_heavy"
	TemplateCoalHeavy        = "coal_heavy"
)

// Region-pattern thresholds. A region whose mix crosses one of these takes
// the matching template regardless of season; season then only picks the
// template's sub-shape.
const (
	solarHeavyShare = 0.15
	windHeavyShare  = 0.20
	coalHeavyShare  = 0.50
)

// regionRule maps a grid-mix predicate to a template name. Rules are
// evaluated in order; the first match wins.
type regionRule struct {
	template string
	matches  func(refdata.GridMix) bool
}

//nolint:gochecknoglobals // Fixed decision table, never mutated.
var regionRules = []regionRule{
	{TemplateSolarHeavy, func(m refdata.GridMix) bool { return m.Share("solar") > solarHeavyShare }},
	{TemplateWindHeavy, func(m refdata.GridMix) bool { return m.Share("wind") > windHeavyShare }},
	{TemplateCoalHeavy, func(m refdata.GridMix) bool { return m.Share("coal") > coalHeavyShare }},
}

//nolint:gochecknoglobals // Fixed decision table, never mutated.
var seasonDefaults = map[refdata.Season]string{
	refdata.SeasonSpring: TemplateSpringSolar,
	refdata.SeasonSummer: TemplateEveningPeak,
	refdata.SeasonAutumn: TemplateAutumnTransition,
	refdata.SeasonWinter: TemplateWinterDualPeak,
}

// TemplateFor returns the shape template name for a grid mix and season:
// region-pattern rules first, season default otherwise. Exported so the
// precedence order is testable in isolation.
func TemplateFor(mix refdata.GridMix, season refdata.Season) string {
	for _, rule := range regionRules {
		if rule.matches(mix) {
			return rule.template
		}
	}
	if tmpl, ok := seasonDefaults[season]; ok {
		return tmpl
	}
	return TemplateFlat
}

// Profile is a 24-value carbon intensity curve in kg CO2/kWh, indexed by
// hour of day.
type Profile struct {
	// Region is the catalog code the profile was built for.
	Region string `json:"region"`

	// Season the profile models.
	Season refdata.Season `json:"-"`

	// Template is the shape template the curve was built from.
	Template string `json:"template"`

	// Basis is the intensity figure the curve was scaled to.
	Basis gridmix.Basis `json:"-"`

	// Values holds the hourly intensities.
	Values [refdata.HoursPerDay]float64 `json:"values"`
}

// At returns the intensity at an hour, wrapping out-of-range input into
// [0, 24).
func (p Profile) At(hour int) float64 {
	hour %= refdata.HoursPerDay
	if hour < 0 {
		hour += refdata.HoursPerDay
	}
	return p.Values[hour]
}

// Min returns the lowest intensity hour and its value; ties resolve to the
// smallest hour index.
func (p Profile) Min() (hour int, value float64) {
	value = p.Values[0]
	for h := 1; h < refdata.HoursPerDay; h++ {
		if p.Values[h] < value {
			hour, value = h, p.Values[h]
		}
	}
	return hour, value
}

// Max returns the highest intensity hour and its value; ties resolve to the
// smallest hour index.
func (p Profile) Max() (hour int, value float64) {
	value = p.Values[0]
	for h := 1; h < refdata.HoursPerDay; h++ {
		if p.Values[h] > value {
			hour, value = h, p.Values[h]
		}
	}
	return hour, value
}

// Mean returns the average intensity across the day.
func (p Profile) Mean() float64 {
	sum := 0.0
	for _, v := range p.Values {
		sum += v
	}
	return sum / refdata.HoursPerDay
}

// Option adjusts how BuildProfile constructs the curve.
type Option func(*options)

type options struct {
	basis    gridmix.Basis
	template string
}

// WithBasis scales the curve to the given intensity basis instead of the
// region's stored base factor.
func WithBasis(b gridmix.Basis) Option {
	return func(o *options) { o.basis = b }
}

// WithTemplate forces a specific shape template, bypassing the decision
// table. The template must exist in the catalog.
func WithTemplate(name string) Option {
	return func(o *options) { o.template = name }
}

// BuildProfile produces the intensity curve for (region, season). The
// chosen template is renormalized to mean 1.0 and scaled by the region's
// intensity basis, so the curve's mean equals the basis value.
//
// Unknown regions return refdata.ErrUnknownRegion (same fallback policy as
// the resolver: callers substitute refdata.DefaultRegion).
func BuildProfile(cat *refdata.Catalog, code string, season refdata.Season, opts ...Option) (Profile, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	region, err := cat.Region(code)
	if err != nil {
		return Profile{}, err
	}

	templateName := o.template
	if templateName == "" {
		templateName = TemplateFor(region.Mix, season)
	}
	tmpl, err := cat.Template(templateName)
	if err != nil {
		return Profile{}, err
	}

	basisValue := region.BaseElectricityFactor
	if o.basis == gridmix.BasisImplied {
		basisValue = region.Mix.ImpliedIntensity()
	}

	profile := Profile{
		Region:   region.Code,
		Season:   season,
		Template: templateName,
		Basis:    o.basis,
	}
	for hour, v := range normalize(tmpl.CurveFor(season)) {
		profile.Values[hour] = basisValue * v
	}
	return profile, nil
}

// BuildProfileOrDefault builds the profile, substituting
// refdata.DefaultRegion when the code is unknown. The returned bool
// reports whether the fallback was taken.
func BuildProfileOrDefault(
	cat *refdata.Catalog,
	code string,
	season refdata.Season,
	opts ...Option,
) (Profile, bool, error) {
	profile, err := BuildProfile(cat, code, season, opts...)
	if err == nil {
		return profile, false, nil
	}
	profile, err = BuildProfile(cat, refdata.DefaultRegion, season, opts...)
	if err != nil {
		return Profile{}, false, err
	}
	return profile, true, nil
}

// normalize rescales a curve to mean 1.0, flooring negatives at zero.
// Degenerate all-zero curves come back flat.
func normalize(curve []float64) [refdata.HoursPerDay]float64 {
	var out [refdata.HoursPerDay]float64
	sum := 0.0
	for hour, v := range curve {
		if v < 0 {
			v = 0
		}
		out[hour] = v
		sum += v
	}
	if sum <= 0 {
		for hour := range out {
			out[hour] = 1.0
		}
		return out
	}
	mean := sum / refdata.HoursPerDay
	for hour := range out {
		out[hour] /= mean
	}
	return out
}
