// Package config loads and holds the application configuration.
//
// Configuration is resolved in three layers, later layers winning:
// built-in defaults, the config file at $CARBONCAST_HOME/config.yaml
// (default ~/.carboncast/config.yaml), and CARBONCAST_* environment
// variables. CLI flags are applied on top by the caller.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/gridleaf/carboncast/internal/logging"
	"github.com/gridleaf/carboncast/internal/refdata"
)

// Environment variables recognized on top of the config file.
const (
	EnvHome         = "CARBONCAST_HOME"
	EnvRegion       = "CARBONCAST_REGION"
	EnvBasis        = "CARBONCAST_BASIS"
	EnvRegionsFile  = "CARBONCAST_REGIONS_FILE"
	EnvCostPerTonne = "CARBONCAST_COST_PER_TONNE"
	EnvLogLevel     = "CARBONCAST_LOG_LEVEL"
	EnvLogFormat    = "CARBONCAST_LOG_FORMAT"
)

// configFileName is the file looked up inside the carboncast home directory.
const configFileName = "config.yaml"

// defaultCostPerTonneUSD matches the default offset price used by the
// emissions package.
const defaultCostPerTonneUSD = 15.0

// LoggingConfig is the logging section of the config file.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

// ToLoggingConfig bridges the config file section to the logging package.
// A non-empty File implies file output.
func (lc LoggingConfig) ToLoggingConfig() logging.Config {
	output := logging.OutputStderr
	if lc.File != "" {
		output = logging.OutputFile
	}
	return logging.Config{
		Level:  lc.Level,
		Format: lc.Format,
		Output: output,
		File:   lc.File,
	}
}

// Config is the resolved application configuration.
type Config struct {
	// DefaultRegion is the grid region used when no --region flag is given.
	DefaultRegion string `yaml:"default_region"`

	// Basis selects the electricity factor basis: "base" or "implied".
	Basis string `yaml:"basis"`

	// RegionsFile optionally points at a YAML catalog overriding the
	// embedded region data.
	RegionsFile string `yaml:"regions_file"`

	// CostPerTonneUSD prices avoided emissions in annual projections
	// and offset quotes.
	CostPerTonneUSD float64 `yaml:"cost_per_tonne_usd"`

	// OutputFormat is the default render format: "table" or "json".
	OutputFormat string `yaml:"output_format"`

	Logging LoggingConfig `yaml:"logging"`
}

// New returns a Config populated with built-in defaults.
func New() *Config {
	return &Config{
		DefaultRegion:   refdata.DefaultRegion,
		Basis:           "base",
		CostPerTonneUSD: defaultCostPerTonneUSD,
		OutputFormat:    "table",
		Logging: LoggingConfig{
			Level:  "info",
			Format: logging.FormatConsole,
		},
	}
}

// HomeDir returns the carboncast home directory: $CARBONCAST_HOME when
// set, otherwise ~/.carboncast.
func HomeDir() string {
	if home := os.Getenv(EnvHome); home != "" {
		return home
	}
	userHome, err := os.UserHomeDir()
	if err != nil {
		return ".carboncast"
	}
	return filepath.Join(userHome, ".carboncast")
}

// Load resolves the full configuration: defaults, then the config file
// if present, then environment overrides. A missing config file is not
// an error; a malformed one is.
func Load() (*Config, error) {
	cfg := New()

	path := filepath.Join(HomeDir(), configFileName)
	if err := cfg.mergeFile(path); err != nil {
		return nil, err
	}

	cfg.applyEnv(os.Getenv)
	return cfg, nil
}

// mergeFile overlays values from a YAML file onto cfg. Absent file is a
// no-op.
func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}

// applyEnv overlays CARBONCAST_* environment variables. The lookup
// function is injected for testability.
func (c *Config) applyEnv(getenv func(string) string) {
	if v := getenv(EnvRegion); v != "" {
		c.DefaultRegion = v
	}
	if v := getenv(EnvBasis); v != "" {
		c.Basis = v
	}
	if v := getenv(EnvRegionsFile); v != "" {
		c.RegionsFile = v
	}
	if v := getenv(EnvCostPerTonne); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 {
			c.CostPerTonneUSD = f
		}
	}
	if v := getenv(EnvLogLevel); v != "" {
		c.Logging.Level = v
	}
	if v := getenv(EnvLogFormat); v != "" {
		c.Logging.Format = v
	}
}

// Global configuration, set once during CLI startup.
var (
	globalConfig   *Config      //nolint:gochecknoglobals // Set once at startup, read by commands
	globalConfigMu sync.RWMutex //nolint:gochecknoglobals // Protects globalConfig
)

// SetGlobalConfig stores the resolved configuration for the process.
func SetGlobalConfig(cfg *Config) {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
}

// GetGlobalConfig returns the stored configuration, or defaults when
// startup has not run yet.
func GetGlobalConfig() *Config {
	globalConfigMu.RLock()
	defer globalConfigMu.RUnlock()
	if globalConfig == nil {
		return New()
	}
	return globalConfig
}
