package cli

import (
	"github.com/spf13/cobra"

	"github.com/gridleaf/carboncast/internal/devices"
	"github.com/gridleaf/carboncast/internal/emissions"
	"github.com/gridleaf/carboncast/internal/logging"
	"github.com/gridleaf/carboncast/internal/report"
)

// EstimateParams holds the flag values for the estimate command.
// Exported for testing.
type EstimateParams struct {
	Activities      []string
	Devices         []string
	Season          string
	Basis           string
	RenewableAdjust float64
	Strict          bool
	Offset          bool
	OffsetPrice     float64
}

// NewEstimateCmd creates the "estimate" subcommand: one day's household
// footprint from activity quantities and device presets.
func NewEstimateCmd() *cobra.Command {
	var params EstimateParams

	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Estimate a day's household CO2 footprint",
		Long: `Convert activity quantities into kg CO2e using the region's grid data.

Electricity is charged at the region's effective factor; everything else
uses the static activity table. Device presets add their seasonal daily
consumption on top of any metered electricity.

Examples:
  carboncast estimate --activity electricity_kwh=10 --activity bus_km=12
  carboncast estimate --region FR --device "Washing Machine" --device "LED Bulb (10W):6"
  carboncast estimate --renewable-adjust 0.3 --offset`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runEstimate(cmd, params)
		},
	}

	cmd.Flags().StringArrayVar(&params.Activities, "activity", nil,
		"activity quantity key=value (repeatable)")
	cmd.Flags().StringArrayVar(&params.Devices, "device", nil,
		`device preset "name[:count]" (repeatable)`)
	cmd.Flags().StringVar(&params.Season, "season", "", "season (spring, summer, autumn, winter)")
	cmd.Flags().StringVar(&params.Basis, "basis", "", "electricity factor basis (base, implied)")
	cmd.Flags().Float64Var(&params.RenewableAdjust, "renewable-adjust", 0,
		"household renewable fraction in [0, 0.8]")
	cmd.Flags().BoolVar(&params.Strict, "strict", false, "reject unknown activity keys")
	cmd.Flags().BoolVar(&params.Offset, "offset", false, "include an offset cost quote")
	cmd.Flags().Float64Var(&params.OffsetPrice, "offset-price", 0,
		"offset price per tonne USD (default from config)")

	return cmd
}

func runEstimate(cmd *cobra.Command, params EstimateParams) error {
	ctx := cmd.Context()
	log := logging.FromContext(ctx)

	rt, err := newRuntime(cmd)
	if err != nil {
		return err
	}

	entry, err := ParseActivityFlags(params.Activities)
	if err != nil {
		return err
	}

	seasonVal, err := season(cmd)
	if err != nil {
		return err
	}
	basis, err := rt.basis(cmd)
	if err != nil {
		return err
	}

	// Device presets contribute electricity on top of metered usage.
	if len(params.Devices) > 0 {
		selections, parseErr := ParseDeviceFlags(params.Devices)
		if parseErr != nil {
			return parseErr
		}
		deviceEntry, devErr := devices.ElectricityEntry(rt.catalog, selections, seasonVal)
		if devErr != nil {
			return devErr
		}
		for key, kwh := range deviceEntry {
			entry[key] += kwh
		}
	}

	region := rt.regionCode(cmd)
	factor, fellBack, err := rt.resolveFactor(region, basis, params.RenewableAdjust)
	if err != nil {
		return err
	}
	if fellBack {
		log.Warn().Ctx(ctx).Str("region", region).Msg("unknown region, using default")
	}

	var opts []emissions.Option
	if params.Strict {
		opts = append(opts, emissions.Strict())
	}
	result, err := emissions.Calculate(rt.catalog.Activities(), entry, factor, opts...)
	if err != nil {
		return err
	}

	score := emissions.EfficiencyScore(result)
	est := report.Estimate{
		Region:         factor.Region,
		Season:         seasonVal.String(),
		RegionFallback: fellBack,
		Result:         result,
		Score:          &score,
	}

	if params.Offset {
		price := params.OffsetPrice
		if price <= 0 {
			price = rt.cfg.CostPerTonneUSD
		}
		quote := emissions.EstimateOffset(result.Total, price)
		est.Offset = &quote
	}

	log.Debug().Ctx(ctx).
		Str("region", factor.Region).
		Float64("total_kg", result.Total).
		Int("activities", len(result.PerActivity)).
		Msg("estimate complete")

	if rt.outputFormat(cmd) == outputFormatJSON {
		return report.WriteJSON(cmd.OutOrStdout(), report.NewEnvelope("estimate", est))
	}
	report.WriteEstimateTable(cmd.OutOrStdout(), est)
	return nil
}
