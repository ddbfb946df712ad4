package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/gridleaf/carboncast/internal/loadshift"
	"github.com/gridleaf/carboncast/internal/logging"
	"github.com/gridleaf/carboncast/internal/report"
)

// AnnualParams holds the flag values for the annual command.
// Exported for testing.
type AnnualParams struct {
	DailyKwh     float64
	Hour         int
	Season       string
	Basis        string
	CostPerTonne float64
}

// NewAnnualCmd creates the "annual" subcommand: project the yearly
// effect of a permanent load shift.
func NewAnnualCmd() *cobra.Command {
	var params AnnualParams

	cmd := &cobra.Command{
		Use:   "annual",
		Short: "Project a year of shifting a recurring load",
		Long: `Annualize the savings of moving a recurring daily load to the region's
cleanest hour, valuing the avoided emissions at the configured offset price.

Examples:
  carboncast annual --daily-kwh 3 --hour 18
  carboncast annual --daily-kwh 5 --hour 20 --region PL --cost-per-tonne 25`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAnnual(cmd, params)
		},
	}

	cmd.Flags().Float64Var(&params.DailyKwh, "daily-kwh", 0, "recurring daily load in kWh")
	cmd.Flags().IntVar(&params.Hour, "hour", 0, "hour the load currently runs at (0-23)")
	cmd.Flags().StringVar(&params.Season, "season", "", "season (spring, summer, autumn, winter)")
	cmd.Flags().StringVar(&params.Basis, "basis", "", "intensity basis (base, implied)")
	cmd.Flags().Float64Var(&params.CostPerTonne, "cost-per-tonne", 0,
		"offset price per tonne USD (default from config)")

	return cmd
}

func runAnnual(cmd *cobra.Command, params AnnualParams) error {
	ctx := cmd.Context()
	log := logging.FromContext(ctx)

	if params.DailyKwh <= 0 {
		return errors.New("--daily-kwh must be > 0")
	}

	rt, err := newRuntime(cmd)
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

	region := rt.regionCode(cmd)
	profile, fellBack, err := rt.buildProfile(region, seasonVal, basis)
	if err != nil {
		return err
	}
	if fellBack {
		log.Warn().Ctx(ctx).Str("region", region).Msg("unknown region, using default")
	}

	costPerTonne := params.CostPerTonne
	if costPerTonne <= 0 {
		costPerTonne = rt.cfg.CostPerTonneUSD
	}

	projection := loadshift.Annualize(profile, params.DailyKwh, params.Hour, costPerTonne)
	view := report.AnnualView{
		Region:      profile.Region,
		Season:      seasonVal.String(),
		DailyKwh:    params.DailyKwh,
		CurrentHour: params.Hour,
		Projection:  projection,
	}

	log.Debug().Ctx(ctx).
		Float64("yearly_savings_kg", projection.YearlyKg).
		Msg("annual projection complete")

	if rt.outputFormat(cmd) == outputFormatJSON {
		return report.WriteJSON(cmd.OutOrStdout(), report.NewEnvelope("annual", view))
	}
	report.WriteAnnualTable(cmd.OutOrStdout(), view)
	return nil
}
