package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/gridleaf/carboncast/internal/emissions"
	"github.com/gridleaf/carboncast/internal/report"
)

// PlanParams holds the flag values for the plan command.
// Exported for testing.
type PlanParams struct {
	History       string
	TargetKg      float64
	DaysRemaining int
}

// NewPlanCmd creates the "plan" subcommand: the seven-day forecast and
// optional weekly goal check.
func NewPlanCmd() *cobra.Command {
	var params PlanParams

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Forecast the next week and check a reduction goal",
		Long: `Project the next seven daily totals from recent history and, given a
weekly target, compute the per-day budget for the rest of the week.

Examples:
  carboncast plan --history 10,12,11,9,10,13,11
  carboncast plan --history 10,12,11,9 --target 70 --days-remaining 3`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPlan(cmd, params)
		},
	}

	cmd.Flags().StringVar(&params.History, "history", "",
		"comma-separated recent daily totals in kg CO2e")
	cmd.Flags().Float64Var(&params.TargetKg, "target", 0, "weekly target in kg CO2e")
	cmd.Flags().IntVar(&params.DaysRemaining, "days-remaining", 0,
		"days left in the week (required with --target)")

	return cmd
}

func runPlan(cmd *cobra.Command, params PlanParams) error {
	history, err := ParseHistoryFlag(params.History)
	if err != nil {
		return err
	}
	if len(history) == 0 {
		return errors.New("--history is required")
	}

	view := report.PlanView{
		History:  history,
		Forecast: emissions.ForecastWeek(history),
	}

	if params.TargetKg > 0 {
		if params.DaysRemaining <= 0 {
			return errors.New("--days-remaining must be > 0 when --target is set")
		}
		weekSum := 0.0
		for _, v := range history {
			weekSum += v
		}
		goal := emissions.WeeklyGoal(weekSum, params.DaysRemaining, params.TargetKg)
		view.Goal = &goal
		view.TargetKg = params.TargetKg
	}

	rt, err := newRuntime(cmd)
	if err != nil {
		return err
	}
	if rt.outputFormat(cmd) == outputFormatJSON {
		return report.WriteJSON(cmd.OutOrStdout(), report.NewEnvelope("plan", view))
	}
	report.WritePlanTable(cmd.OutOrStdout(), view)
	return nil
}
