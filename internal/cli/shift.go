package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/gridleaf/carboncast/internal/loadshift"
	"github.com/gridleaf/carboncast/internal/logging"
	"github.com/gridleaf/carboncast/internal/report"
)

// ShiftParams holds the flag values for the shift command.
// Exported for testing.
type ShiftParams struct {
	Tasks  []string
	Season string
	Basis  string
}

// NewShiftCmd creates the "shift" subcommand: find cleaner hours for
// deferrable loads.
func NewShiftCmd() *cobra.Command {
	var params ShiftParams

	cmd := &cobra.Command{
		Use:   "shift",
		Short: "Find lower-carbon hours for deferrable loads",
		Long: `Evaluate deferrable tasks against the region's hourly intensity profile
and report the cleanest hour and potential savings for each.

Examples:
  carboncast shift --task laundry:15:18
  carboncast shift --task laundry:15:18 --task dishwasher:3:20 --region DE`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runShift(cmd, params)
		},
	}

	cmd.Flags().StringArrayVar(&params.Tasks, "task", nil,
		"deferrable task name:kwh:hour (repeatable)")
	cmd.Flags().StringVar(&params.Season, "season", "", "season (spring, summer, autumn, winter)")
	cmd.Flags().StringVar(&params.Basis, "basis", "", "intensity basis (base, implied)")

	return cmd
}

func runShift(cmd *cobra.Command, params ShiftParams) error {
	ctx := cmd.Context()
	log := logging.FromContext(ctx)

	if len(params.Tasks) == 0 {
		return errors.New("at least one --task is required")
	}

	rt, err := newRuntime(cmd)
	if err != nil {
		return err
	}

	tasks, err := ParseTaskFlags(params.Tasks)
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

	comparison := loadshift.Compare(profile, tasks)
	view := report.ShiftView{
		Region:     profile.Region,
		Season:     seasonVal.String(),
		Comparison: comparison,
	}

	log.Debug().Ctx(ctx).
		Int("tasks", len(tasks)).
		Float64("total_savings_kg", comparison.TotalSavingsKg).
		Msg("shift analysis complete")

	if rt.outputFormat(cmd) == outputFormatJSON {
		return report.WriteJSON(cmd.OutOrStdout(), report.NewEnvelope("shift", view))
	}
	report.WriteShiftTable(cmd.OutOrStdout(), view)
	return nil
}
