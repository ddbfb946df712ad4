package refdata

import (
	"fmt"
	"strings"
)

// Season identifies one of the four meteorological seasons.
// The set is closed: profiles and device overrides are authored per season,
// nothing is interpolated between them.
type Season int

const (
	// SeasonSpring covers March-May shapes (solar ramp-up).
	SeasonSpring Season = iota

	// SeasonSummer covers June-August shapes (evening AC peak).
	SeasonSummer

	// SeasonAutumn covers September-November shapes (transition period).
	SeasonAutumn

	// SeasonWinter covers December-February shapes (dual heating peaks).
	SeasonWinter
)

// Seasons lists all valid seasons in calendar order.
//
//nolint:gochecknoglobals // Fixed enumeration, never mutated.
var Seasons = []Season{SeasonSpring, SeasonSummer, SeasonAutumn, SeasonWinter}

// String returns the lowercase season name used in catalog files.
func (s Season) String() string {
	switch s {
	case SeasonSpring:
		return "spring"
	case SeasonSummer:
		return "summer"
	case SeasonAutumn:
		return "autumn"
	case SeasonWinter:
		return "winter"
	default:
		return fmt.Sprintf("Season(%d)", int(s))
	}
}

// ParseSeason converts a user-supplied season string into a Season.
// Matching is case-insensitive and "fall" is accepted as an alias for
// autumn. Anything else returns ErrInvalidSeason.
func ParseSeason(s string) (Season, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "spring":
		return SeasonSpring, nil
	case "summer":
		return SeasonSummer, nil
	case "autumn", "fall":
		return SeasonAutumn, nil
	case "winter":
		return SeasonWinter, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidSeason, s)
	}
}
