// Package cli wires the carboncast commands: footprint estimation,
// hourly intensity profiles, load-shift analysis, annual projections,
// weekly planning, offsets, and catalog listings.
package cli

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/gridleaf/carboncast/internal/config"
	"github.com/gridleaf/carboncast/internal/logging"
)

// Output formats accepted by --output.
const (
	outputFormatTable = "table"
	outputFormatJSON  = "json"
)

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// NewRootCmd creates the root Cobra command for the carboncast CLI.
// It loads configuration, wires logging, and registers the subcommands.
func NewRootCmd(ver string) *cobra.Command {
	var logResult *logging.Result

	cmd := &cobra.Command{
		Use:     "carboncast",
		Short:   "Household carbon footprint and load-shift estimator",
		Long:    "Carboncast: estimate household CO2 emissions, find cleaner hours for deferrable loads, and plan reductions",
		Version: ver,
		Example: rootCmdExample,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			config.SetGlobalConfig(cfg)

			result := setupLogging(cmd, cfg)
			logResult = &result
			return nil
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			if logResult != nil {
				return logResult.Close()
			}
			return nil
		},
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().String("region", "", "grid region code (default from config)")
	cmd.PersistentFlags().String("output", "", "output format (table, json)")
	cmd.PersistentFlags().String("regions-file", "", "YAML file overriding the embedded region catalog")

	cmd.AddCommand(
		NewEstimateCmd(), NewProfileCmd(), NewShiftCmd(), NewAnnualCmd(),
		NewPlanCmd(), NewOffsetCmd(), NewRegionsCmd(), NewDevicesCmd(),
	)

	return cmd
}

// setupLogging configures logging from config, environment, and the
// --debug flag, and attaches the logger to the command context.
func setupLogging(cmd *cobra.Command, cfg *config.Config) logging.Result {
	loggingCfg := cfg.Logging

	debug, _ := cmd.Flags().GetBool("debug")
	if debug {
		loggingCfg.Level = "debug"
		loggingCfg.Format = logging.FormatConsole
		loggingCfg.File = ""
	}

	result := logging.New(loggingCfg.ToLoggingConfig())
	logger = logging.ComponentLogger(result.Logger, "cli")

	if result.FallbackUsed {
		cmd.PrintErrf("Warning: could not open log file, logging to stderr: %s\n", result.FallbackReason)
	}

	ctx := logger.WithContext(cmd.Context())
	cmd.SetContext(ctx)

	logger.Debug().Ctx(ctx).Str("command", cmd.Name()).Msg("command started")
	return result
}

const rootCmdExample = `  # Estimate a day's footprint from activities
  carboncast estimate --activity electricity_kwh=10 --activity bus_km=12 --activity meat_kg=0.2

  # Add device presets on top of metered usage
  carboncast estimate --region US-CA --device "Space Heater" --device "LED Bulb (10W):6"

  # Show the hourly intensity profile for winter
  carboncast profile --region DE --season winter

  # Find the cleanest hour for the laundry
  carboncast shift --task laundry:15:18

  # Project a year of shifting the dishwasher
  carboncast annual --daily-kwh 3 --hour 18

  # Forecast next week and check a reduction goal
  carboncast plan --history 10,12,11,9 --target 70 --days-remaining 3

  # Price offsetting a year of emissions
  carboncast offset --kg 2500

  # List grid regions and device presets
  carboncast regions
  carboncast devices`
