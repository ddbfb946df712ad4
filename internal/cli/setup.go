package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/gridleaf/carboncast/internal/config"
	"github.com/gridleaf/carboncast/internal/devices"
	"github.com/gridleaf/carboncast/internal/emissions"
	"github.com/gridleaf/carboncast/internal/gridmix"
	"github.com/gridleaf/carboncast/internal/intensity"
	"github.com/gridleaf/carboncast/internal/loadshift"
	"github.com/gridleaf/carboncast/internal/refdata"
)

// runtime bundles the loaded catalog, configuration, and memoized
// resolvers shared by one command execution.
type runtime struct {
	cfg      *config.Config
	catalog  *refdata.Catalog
	resolver *gridmix.MemoResolver
	profiles *intensity.MemoBuilder
}

// newRuntime loads the catalog (honoring --regions-file and the config
// override) and builds the memoized resolvers.
func newRuntime(cmd *cobra.Command) (*runtime, error) {
	cfg := config.GetGlobalConfig()

	regionsFile, _ := cmd.Flags().GetString("regions-file")
	if regionsFile == "" {
		regionsFile = cfg.RegionsFile
	}

	var cat *refdata.Catalog
	var err error
	if regionsFile != "" {
		cat, err = refdata.LoadWithRegionFile(regionsFile)
	} else {
		cat, err = refdata.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}

	return &runtime{
		cfg:      cfg,
		catalog:  cat,
		resolver: gridmix.NewMemoResolver(cat),
		profiles: intensity.NewMemoBuilder(cat),
	}, nil
}

// resolveFactor resolves the electricity factor through the memoized
// resolver, substituting the default region for unknown codes. The
// returned bool reports whether the fallback was taken.
func (rt *runtime) resolveFactor(code string, basis gridmix.Basis, adjust float64) (gridmix.Factor, bool, error) {
	factor, err := rt.resolver.Resolve(code, basis, adjust)
	if err == nil {
		return factor, false, nil
	}
	if !errors.Is(err, refdata.ErrUnknownRegion) {
		return gridmix.Factor{}, false, err
	}
	factor, err = rt.resolver.Resolve(refdata.DefaultRegion, basis, adjust)
	if err != nil {
		return gridmix.Factor{}, false, err
	}
	return factor, true, nil
}

// buildProfile builds the hourly profile through the memoized builder,
// substituting the default region for unknown codes. The returned bool
// reports whether the fallback was taken.
func (rt *runtime) buildProfile(code string, season refdata.Season, basis gridmix.Basis) (intensity.Profile, bool, error) {
	profile, err := rt.profiles.Build(code, season, basis)
	if err == nil {
		return profile, false, nil
	}
	if !errors.Is(err, refdata.ErrUnknownRegion) {
		return intensity.Profile{}, false, err
	}
	profile, err = rt.profiles.Build(refdata.DefaultRegion, season, basis)
	if err != nil {
		return intensity.Profile{}, false, err
	}
	return profile, true, nil
}

// regionCode resolves the region for a command: --region flag first,
// then the configured default.
func (rt *runtime) regionCode(cmd *cobra.Command) string {
	if region, _ := cmd.Flags().GetString("region"); region != "" {
		return region
	}
	return rt.cfg.DefaultRegion
}

// outputFormat resolves the render format: --output flag first, then the
// configured default.
func (rt *runtime) outputFormat(cmd *cobra.Command) string {
	if format, _ := cmd.Flags().GetString("output"); format != "" {
		return format
	}
	if rt.cfg.OutputFormat != "" {
		return rt.cfg.OutputFormat
	}
	return outputFormatTable
}

// basis resolves the factor basis: --basis flag first, then config.
func (rt *runtime) basis(cmd *cobra.Command) (gridmix.Basis, error) {
	name := rt.cfg.Basis
	if flag, _ := cmd.Flags().GetString("basis"); flag != "" {
		name = flag
	}
	if name == "" {
		return gridmix.BasisBase, nil
	}
	return gridmix.ParseBasis(name)
}

// season resolves the season: --season flag first, then the calendar.
func season(cmd *cobra.Command) (refdata.Season, error) {
	if flag, _ := cmd.Flags().GetString("season"); flag != "" {
		return refdata.ParseSeason(flag)
	}
	return SeasonFromMonth(time.Now().Month()), nil
}

// SeasonFromMonth maps a calendar month to a northern-hemisphere season.
func SeasonFromMonth(month time.Month) refdata.Season {
	switch month {
	case time.March, time.April, time.May:
		return refdata.SeasonSpring
	case time.June, time.July, time.August:
		return refdata.SeasonSummer
	case time.September, time.October, time.November:
		return refdata.SeasonAutumn
	default:
		return refdata.SeasonWinter
	}
}

// ParseActivityFlags parses repeated --activity key=value flags into an
// activity entry. Repeated keys accumulate.
func ParseActivityFlags(pairs []string) (emissions.Entry, error) {
	entry := make(emissions.Entry, len(pairs))
	for _, pair := range pairs {
		key, value, found := strings.Cut(pair, "=")
		if !found {
			return nil, fmt.Errorf("invalid activity %q: expected key=value", pair)
		}
		key = strings.TrimSpace(key)
		if key == "" {
			return nil, fmt.Errorf("invalid activity %q: empty key", pair)
		}
		quantity, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid activity %q: %w", pair, err)
		}
		entry[key] += quantity
	}
	return entry, nil
}

// ParseDeviceFlags parses repeated --device "name[:count]" flags into
// device selections. The count follows the last colon, so device names
// containing colons still parse.
func ParseDeviceFlags(specs []string) ([]devices.Selection, error) {
	selections := make([]devices.Selection, 0, len(specs))
	for _, spec := range specs {
		name := strings.TrimSpace(spec)
		count := 1
		if idx := strings.LastIndex(spec, ":"); idx >= 0 {
			if n, err := strconv.Atoi(strings.TrimSpace(spec[idx+1:])); err == nil {
				name = strings.TrimSpace(spec[:idx])
				count = n
			}
		}
		if name == "" {
			return nil, fmt.Errorf("invalid device %q: empty name", spec)
		}
		if count < 1 {
			return nil, fmt.Errorf("invalid device %q: count must be >= 1", spec)
		}
		selections = append(selections, devices.Selection{Device: name, Count: count})
	}
	return selections, nil
}

// ParseTaskFlags parses repeated --task name:kwh:hour flags. The kWh and
// hour fields follow the last two colons, so task names containing
// colons still parse.
func ParseTaskFlags(specs []string) ([]loadshift.Task, error) {
	tasks := make([]loadshift.Task, 0, len(specs))
	for _, spec := range specs {
		hourIdx := strings.LastIndex(spec, ":")
		if hourIdx < 0 {
			return nil, fmt.Errorf("invalid task %q: expected name:kwh:hour", spec)
		}
		kwhIdx := strings.LastIndex(spec[:hourIdx], ":")
		if kwhIdx < 0 {
			return nil, fmt.Errorf("invalid task %q: expected name:kwh:hour", spec)
		}

		name := strings.TrimSpace(spec[:kwhIdx])
		if name == "" {
			return nil, fmt.Errorf("invalid task %q: empty name", spec)
		}

		kwh, err := strconv.ParseFloat(strings.TrimSpace(spec[kwhIdx+1:hourIdx]), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid task %q: bad kwh: %w", spec, err)
		}
		if kwh < 0 {
			return nil, fmt.Errorf("invalid task %q: kwh must be >= 0", spec)
		}

		hour, err := strconv.Atoi(strings.TrimSpace(spec[hourIdx+1:]))
		if err != nil {
			return nil, fmt.Errorf("invalid task %q: bad hour: %w", spec, err)
		}

		tasks = append(tasks, loadshift.Task{Name: name, Kwh: kwh, Hour: hour})
	}
	return tasks, nil
}

// ParseHistoryFlag parses a comma-separated list of daily kg totals.
func ParseHistoryFlag(s string) ([]float64, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	history := make([]float64, 0, len(parts))
	for _, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid history value %q: %w", part, err)
		}
		history = append(history, v)
	}
	return history, nil
}
