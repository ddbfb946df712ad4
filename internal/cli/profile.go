package cli

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/gridleaf/carboncast/internal/intensity"
	"github.com/gridleaf/carboncast/internal/loadshift"
	"github.com/gridleaf/carboncast/internal/logging"
	"github.com/gridleaf/carboncast/internal/report"
	"github.com/gridleaf/carboncast/internal/tui"
)

// ProfileParams holds the flag values for the profile command.
// Exported for testing.
type ProfileParams struct {
	Season      string
	Basis       string
	Template    string
	Top         int
	Interactive bool
}

// defaultTopLowHours is how many cleanest hours the listing shows.
const defaultTopLowHours = 3

// NewProfileCmd creates the "profile" subcommand: the 24-hour carbon
// intensity curve for a region and season.
func NewProfileCmd() *cobra.Command {
	var params ProfileParams

	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show the hourly carbon intensity profile",
		Long: `Render the region's 24-hour carbon intensity curve for a season.

The curve's shape follows the region's generation mix (solar dip, wind
variability, flat coal baseload) and its level is scaled to the region's
intensity.

Examples:
  carboncast profile --region DE --season winter
  carboncast profile --region US-CA --basis implied --top 5
  carboncast profile --interactive`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runProfile(cmd, params)
		},
	}

	cmd.Flags().StringVar(&params.Season, "season", "", "season (spring, summer, autumn, winter)")
	cmd.Flags().StringVar(&params.Basis, "basis", "", "intensity basis (base, implied)")
	cmd.Flags().StringVar(&params.Template, "template", "", "force a specific shape template")
	cmd.Flags().IntVar(&params.Top, "top", defaultTopLowHours, "number of lowest-intensity hours to list")
	cmd.Flags().BoolVar(&params.Interactive, "interactive", false, "browse the profile interactively")

	return cmd
}

func runProfile(cmd *cobra.Command, params ProfileParams) error {
	ctx := cmd.Context()
	log := logging.FromContext(ctx)

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
	var profile intensity.Profile
	var fellBack bool
	if params.Template != "" {
		// A forced template bypasses the memo: the cache key does not
		// carry the template name.
		profile, fellBack, err = intensity.BuildProfileOrDefault(rt.catalog, region, seasonVal,
			intensity.WithBasis(basis), intensity.WithTemplate(params.Template))
	} else {
		profile, fellBack, err = rt.buildProfile(region, seasonVal, basis)
	}
	if err != nil {
		return err
	}
	if fellBack {
		log.Warn().Ctx(ctx).Str("region", region).Msg("unknown region, using default")
	}

	if params.Interactive {
		return runProfileTUI(cmd, profile, seasonVal.String())
	}

	view := report.ProfileView{
		Profile:  profile,
		Season:   seasonVal.String(),
		LowHours: loadshift.TopNLowHours(profile, params.Top),
	}

	log.Debug().Ctx(ctx).
		Str("region", profile.Region).
		Str("template", profile.Template).
		Msg("profile built")

	if rt.outputFormat(cmd) == outputFormatJSON {
		return report.WriteJSON(cmd.OutOrStdout(), report.NewEnvelope("profile", view))
	}
	report.WriteProfileTable(cmd.OutOrStdout(), view)
	return nil
}

// runProfileTUI launches the interactive hourly profile browser.
func runProfileTUI(cmd *cobra.Command, profile intensity.Profile, seasonName string) error {
	if !isTerminal(os.Stdin) {
		return errors.New("interactive mode requires a terminal")
	}

	model := tui.NewProfileModel(profile, seasonName)
	program := tea.NewProgram(model, tea.WithInput(cmd.InOrStdin()), tea.WithOutput(cmd.OutOrStdout()))

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("running interactive profile: %w", err)
	}
	return nil
}
