package refdata

import (
	"embed"
	"fmt"
	"math"
	"os"
	"sort"

	"github.com/Masterminds/semver/v3"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// DefaultRegion is the documented fallback applied by callers when a
// requested region code is not in the catalog.
const DefaultRegion = "EU-avg"

// MixSumTolerance is the allowed deviation of a grid mix's share sum from 1.0.
const MixSumTolerance = 0.01

// schemaConstraint is the catalog schema_version range this binary accepts.
const schemaConstraint = "^1.0"

//go:embed data/regions.yaml data/activities.yaml data/devices.yaml data/shapes.yaml
var catalogFS embed.FS

// Catalog is the full immutable reference data set. Build one with Load at
// process start and treat it as read-only thereafter; concurrent readers
// need no coordination.
type Catalog struct {
	// SchemaVersion is the region catalog's declared schema version.
	SchemaVersion string

	regions    map[string]Region
	activities ActivityTable
	devices    map[string]DevicePreset
	templates  map[string]ShapeTemplate
}

// regionsFile mirrors the on-disk region catalog layout.
type regionsFile struct {
	SchemaVersion string                `yaml:"schema_version"`
	Regions       map[string]regionSpec `yaml:"regions"`
}

// regionSpec is one raw region entry. The electricity factor travels in a
// generic factors map to keep the file format open for future factor kinds.
type regionSpec struct {
	Meta    RegionMeta         `yaml:"__meta__"`
	Factors map[string]float64 `yaml:"factors"`
	GridMix GridMix            `yaml:"grid_mix"`
}

type activitiesFile struct {
	Activities map[string]ActivityFactor `yaml:"activities"`
}

type devicesFile struct {
	Devices map[string]DevicePreset `yaml:"devices"`
}

type shapesFile struct {
	Templates map[string]struct {
		Curve   []float64            `yaml:"curve"`
		Seasons map[string][]float64 `yaml:"seasons"`
	} `yaml:"templates"`
}

// Load builds the catalog from the embedded reference data.
func Load() (*Catalog, error) {
	raw, err := catalogFS.ReadFile("data/regions.yaml")
	if err != nil {
		return nil, fmt.Errorf("reading embedded region catalog: %w", err)
	}
	return load(raw)
}

// LoadWithRegionFile builds the catalog with the region table read from
// path instead of the embedded default. Activities, devices, and shape
// templates always come from the embedded catalogs. On read failure the
// embedded region table is used and a warning is logged, mirroring the
// fallback policy for unknown regions: bad user data degrades, it does not
// crash.
func LoadWithRegionFile(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		log.Warn().Err(err).Str("path", path).
			Msg("region catalog override unreadable, using embedded catalog")
		return Load()
	}
	cat, err := load(raw)
	if err != nil {
		log.Warn().Err(err).Str("path", path).
			Msg("region catalog override invalid, using embedded catalog")
		return Load()
	}
	return cat, nil
}

func load(regionsRaw []byte) (*Catalog, error) {
	var rf regionsFile
	if err := yaml.Unmarshal(regionsRaw, &rf); err != nil {
		return nil, fmt.Errorf("parsing region catalog: %w", err)
	}
	if err := checkSchema(rf.SchemaVersion); err != nil {
		return nil, err
	}

	var af activitiesFile
	if err := readEmbedded("data/activities.yaml", &af); err != nil {
		return nil, err
	}
	var df devicesFile
	if err := readEmbedded("data/devices.yaml", &df); err != nil {
		return nil, err
	}
	var sf shapesFile
	if err := readEmbedded("data/shapes.yaml", &sf); err != nil {
		return nil, err
	}

	cat := &Catalog{
		SchemaVersion: rf.SchemaVersion,
		regions:       make(map[string]Region, len(rf.Regions)),
		activities:    make(ActivityTable, len(af.Activities)),
		devices:       make(map[string]DevicePreset, len(df.Devices)),
		templates:     make(map[string]ShapeTemplate, len(sf.Templates)),
	}

	for code, spec := range rf.Regions {
		region := Region{
			Code:                  code,
			BaseElectricityFactor: spec.Factors["electricity_kwh"],
			Mix:                   spec.GridMix,
			Meta:                  spec.Meta,
		}
		if err := validateRegion(region); err != nil {
			return nil, err
		}
		cat.regions[code] = region
	}
	if _, ok := cat.regions[DefaultRegion]; !ok {
		return nil, fmt.Errorf("%w: fallback region %q missing", ErrInvalidCatalog, DefaultRegion)
	}

	for id, factor := range af.Activities {
		if factor.Factor < 0 {
			return nil, fmt.Errorf("%w: activity %q has negative factor %v",
				ErrInvalidCatalog, id, factor.Factor)
		}
		switch factor.Category {
		case CategoryEnergy, CategoryTransport, CategoryMeals:
		default:
			return nil, fmt.Errorf("%w: activity %q has unknown category %q",
				ErrInvalidCatalog, id, factor.Category)
		}
		cat.activities[id] = factor
	}

	for name, preset := range df.Devices {
		preset.Name = name
		if err := validateDevice(preset); err != nil {
			return nil, err
		}
		cat.devices[name] = preset
	}

	for name, spec := range sf.Templates {
		tmpl := ShapeTemplate{Name: name, Curve: spec.Curve, Seasons: spec.Seasons}
		if err := validateTemplate(tmpl); err != nil {
			return nil, err
		}
		cat.templates[name] = tmpl
	}

	return cat, nil
}

func readEmbedded(name string, out any) error {
	raw, err := catalogFS.ReadFile(name)
	if err != nil {
		return fmt.Errorf("reading embedded catalog %s: %w", name, err)
	}
	if err := yaml.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("parsing embedded catalog %s: %w", name, err)
	}
	return nil
}

func checkSchema(version string) error {
	v, err := semver.NewVersion(version)
	if err != nil {
		return fmt.Errorf("%w: %q is not a valid version", ErrUnsupportedSchema, version)
	}
	constraint, err := semver.NewConstraint(schemaConstraint)
	if err != nil {
		return fmt.Errorf("parsing schema constraint: %w", err)
	}
	if !constraint.Check(v) {
		return fmt.Errorf("%w: %s does not satisfy %s", ErrUnsupportedSchema, version, schemaConstraint)
	}
	return nil
}

func validateRegion(r Region) error {
	if r.BaseElectricityFactor < 0 {
		return fmt.Errorf("%w: region %q has negative electricity factor",
			ErrInvalidCatalog, r.Code)
	}
	for source, share := range r.Mix {
		if share < 0 {
			return fmt.Errorf("%w: region %q mix source %q has negative share",
				ErrInvalidCatalog, r.Code, source)
		}
	}
	if sum := r.Mix.Sum(); math.Abs(sum-1.0) > MixSumTolerance {
		return fmt.Errorf("%w: region %q mix shares sum to %.4f",
			ErrInvalidCatalog, r.Code, sum)
	}
	return nil
}

func validateDevice(p DevicePreset) error {
	if p.PowerW < 0 || p.HoursPerDay < 0 || p.HoursPerDay > HoursPerDay {
		return fmt.Errorf("%w: device %q has invalid power/hours",
			ErrInvalidCatalog, p.Name)
	}
	for season, hours := range p.SeasonalHours {
		if _, err := ParseSeason(season); err != nil {
			return fmt.Errorf("%w: device %q seasonal override: %w",
				ErrInvalidCatalog, p.Name, err)
		}
		if hours < 0 || hours > HoursPerDay {
			return fmt.Errorf("%w: device %q has invalid %s hours %v",
				ErrInvalidCatalog, p.Name, season, hours)
		}
	}
	return nil
}

func validateTemplate(t ShapeTemplate) error {
	if err := validateCurve(t.Name, t.Curve); err != nil {
		return err
	}
	for season, curve := range t.Seasons {
		if _, err := ParseSeason(season); err != nil {
			return fmt.Errorf("%w: template %q sub-shape: %w",
				ErrInvalidCatalog, t.Name, err)
		}
		if err := validateCurve(t.Name+"/"+season, curve); err != nil {
			return err
		}
	}
	return nil
}

func validateCurve(name string, curve []float64) error {
	if len(curve) != HoursPerDay {
		return fmt.Errorf("%w: template %q has %d points, want %d",
			ErrInvalidCatalog, name, len(curve), HoursPerDay)
	}
	for hour, v := range curve {
		if v < 0 {
			return fmt.Errorf("%w: template %q has negative value at hour %d",
				ErrInvalidCatalog, name, hour)
		}
	}
	return nil
}

// Region looks up a region by code. Returns ErrUnknownRegion (wrapped with
// the code) when absent; callers fall back to DefaultRegion.
func (c *Catalog) Region(code string) (Region, error) {
	region, ok := c.regions[code]
	if !ok {
		return Region{}, fmt.Errorf("%w: %q", ErrUnknownRegion, code)
	}
	return region, nil
}

// Activities returns the activity factor table.
func (c *Catalog) Activities() ActivityTable {
	return c.activities
}

// Device looks up a device preset by name.
func (c *Catalog) Device(name string) (DevicePreset, error) {
	preset, ok := c.devices[name]
	if !ok {
		return DevicePreset{}, fmt.Errorf("%w: %q", ErrUnknownDevice, name)
	}
	return preset, nil
}

// Template looks up a shape template by name.
func (c *Catalog) Template(name string) (ShapeTemplate, error) {
	tmpl, ok := c.templates[name]
	if !ok {
		return ShapeTemplate{}, fmt.Errorf("%w: %q", ErrUnknownTemplate, name)
	}
	return tmpl, nil
}

// RegionCodes returns all catalog region codes, sorted.
func (c *Catalog) RegionCodes() []string {
	codes := make([]string, 0, len(c.regions))
	for code := range c.regions {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// DeviceNames returns all device preset names, sorted.
func (c *Catalog) DeviceNames() []string {
	names := make([]string, 0, len(c.devices))
	for name := range c.devices {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// TemplateNames returns all shape template names, sorted.
func (c *Catalog) TemplateNames() []string {
	names := make([]string, 0, len(c.templates))
	for name := range c.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
