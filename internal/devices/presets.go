// Package devices turns household appliance presets into daily electricity
// quantities. The emissions engine never sees devices; it only sees the
// kWh figure this package derives.
package devices

import (
	"sort"

	"github.com/gridleaf/carboncast/internal/emissions"
	"github.com/gridleaf/carboncast/internal/refdata"
)

const wattsPerKilowatt = 1000.0

// electricityKey is the activity the derived kWh lands on.
const electricityKey = "electricity_kwh"

// UsageHours returns the preset's daily usage hours for a season, honoring
// the authored seasonal override when one exists.
func UsageHours(preset refdata.DevicePreset, season refdata.Season) float64 {
	if hours, ok := preset.SeasonalHours[season.String()]; ok {
		return hours
	}
	return preset.HoursPerDay
}

// DailyKilowattHours returns the preset's daily consumption for a season.
func DailyKilowattHours(preset refdata.DevicePreset, season refdata.Season) float64 {
	return preset.PowerW * UsageHours(preset, season) / wattsPerKilowatt
}

// Selection is one chosen device with a count (two LED bulbs, one fridge).
type Selection struct {
	Device string `json:"device"`
	Count  int    `json:"count"`
}

// ElectricityEntry sums the selections' seasonal consumption into an
// activity entry holding a single electricity_kwh quantity, ready to merge
// into a calculation. Unknown device names return refdata.ErrUnknownDevice.
func ElectricityEntry(cat *refdata.Catalog, selections []Selection, season refdata.Season) (emissions.Entry, error) {
	total := 0.0
	for _, sel := range selections {
		preset, err := cat.Device(sel.Device)
		if err != nil {
			return nil, err
		}
		count := sel.Count
		if count < 1 {
			count = 1
		}
		total += float64(count) * DailyKilowattHours(preset, season)
	}
	return emissions.Entry{electricityKey: total}, nil
}

// ByCategory groups the catalog's presets by their category tag, with
// device names sorted inside each group.
func ByCategory(cat *refdata.Catalog) map[string][]string {
	groups := make(map[string][]string)
	for _, name := range cat.DeviceNames() {
		preset, err := cat.Device(name)
		if err != nil {
			continue
		}
		groups[preset.Category] = append(groups[preset.Category], name)
	}
	for _, names := range groups {
		sort.Strings(names)
	}
	return groups
}
