// Package gridmix resolves a region's grid composition into the effective
// electricity emission factor charged per kWh.
//
// Two intensity bases exist for every region: the stored base factor (an
// authoritative per-region figure) and the implied intensity derived from
// the generation mix. The base factor is what gets charged unless a caller
// explicitly opts into the implied basis; the implied value is always
// computed and exposed for display.
package gridmix

import (
	"fmt"

	"github.com/gridleaf/carboncast/internal/refdata"
)

// MaxRenewableAdjust caps the renewable slider. Inputs outside [0, MaxRenewableAdjust]
// are clamped, not rejected; silent saturation keeps the slider meaningful
// for any input.
const MaxRenewableAdjust = 0.8

// Basis selects which per-region intensity figure the effective factor is
// built from.
type Basis int

const (
	// BasisBase charges the region's stored electricity factor.
	BasisBase Basis = iota

	// BasisImplied charges the intensity derived from the generation mix.
	BasisImplied
)

// String returns the basis name used in flags and reports.
func (b Basis) String() string {
	switch b {
	case BasisBase:
		return "base"
	case BasisImplied:
		return "implied"
	default:
		return fmt.Sprintf("Basis(%d)", int(b))
	}
}

// ParseBasis converts a flag value into a Basis. Empty input selects BasisBase.
func ParseBasis(s string) (Basis, error) {
	switch s {
	case "", "base":
		return BasisBase, nil
	case "implied":
		return BasisImplied, nil
	default:
		return 0, fmt.Errorf("invalid intensity basis %q (want base or implied)", s)
	}
}

// Factor is the fully resolved electricity emission factor for one region.
type Factor struct {
	// Region is the catalog code the factor was resolved for.
	Region string `json:"region"`

	// Base is the region's stored electricity factor in kg CO2e/kWh.
	Base float64 `json:"base"`

	// Implied is the intensity derived from the region's generation mix.
	Implied float64 `json:"implied"`

	// Basis records which of the two figures Effective was built from.
	Basis Basis `json:"-"`

	// RenewableAdjust is the clamped renewable fraction actually applied.
	RenewableAdjust float64 `json:"renewable_adjust"`

	// Effective is the factor charged per kWh of electricity:
	// basis value x (1 - RenewableAdjust).
	Effective float64 `json:"effective"`

	// Meta is the region's provenance metadata, carried for display.
	Meta refdata.RegionMeta `json:"meta"`
}

// Option adjusts how Resolve builds the effective factor.
type Option func(*options)

type options struct {
	basis           Basis
	renewableAdjust float64
}

// WithBasis selects the intensity basis (default BasisBase).
func WithBasis(b Basis) Option {
	return func(o *options) { o.basis = b }
}

// WithRenewableAdjust applies a renewable scale-down fraction r. The
// effective factor becomes basis x (1 - clamp(r, 0, MaxRenewableAdjust)).
func WithRenewableAdjust(r float64) Option {
	return func(o *options) { o.renewableAdjust = r }
}

// Resolve looks up the region and produces its effective electricity
// factor. Pure function of (catalog, code, opts); same inputs always yield
// the same Factor, so results are freely memoizable.
//
// Returns refdata.ErrUnknownRegion for codes absent from the catalog;
// callers are expected to fall back to refdata.DefaultRegion rather than
// abort the whole calculation.
func Resolve(cat *refdata.Catalog, code string, opts ...Option) (Factor, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	region, err := cat.Region(code)
	if err != nil {
		return Factor{}, err
	}

	implied := region.Mix.ImpliedIntensity()
	basisValue := region.BaseElectricityFactor
	if o.basis == BasisImplied {
		basisValue = implied
	}

	adjust := clampAdjust(o.renewableAdjust)
	return Factor{
		Region:          region.Code,
		Base:            region.BaseElectricityFactor,
		Implied:         implied,
		Basis:           o.basis,
		RenewableAdjust: adjust,
		Effective:       basisValue * (1.0 - adjust),
	}, nil
}

// ResolveOrDefault resolves code, substituting refdata.DefaultRegion when
// the code is unknown. The returned bool reports whether the fallback was
// taken. Convenience for callers that treat bad region input as a
// user-input issue rather than a fault.
func ResolveOrDefault(cat *refdata.Catalog, code string, opts ...Option) (Factor, bool, error) {
	factor, err := Resolve(cat, code, opts...)
	if err == nil {
		return factor, false, nil
	}
	factor, err = Resolve(cat, refdata.DefaultRegion, opts...)
	if err != nil {
		return Factor{}, false, err
	}
	return factor, true, nil
}

func clampAdjust(r float64) float64 {
	if r < 0 {
		return 0
	}
	if r > MaxRenewableAdjust {
		return MaxRenewableAdjust
	}
	return r
}
