package cli

import (
	"github.com/spf13/cobra"

	"github.com/gridleaf/carboncast/internal/report"
)

// NewRegionsCmd creates the "regions" subcommand: list the catalog's
// grid regions with their base and implied intensities.
func NewRegionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "regions",
		Short: "List available grid regions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := newRuntime(cmd)
			if err != nil {
				return err
			}

			codes := rt.catalog.RegionCodes()
			rows := make([]report.RegionRow, 0, len(codes))
			for _, code := range codes {
				region, regErr := rt.catalog.Region(code)
				if regErr != nil {
					return regErr
				}
				rows = append(rows, report.RegionRow{
					Code:    region.Code,
					Base:    region.BaseElectricityFactor,
					Implied: region.Mix.ImpliedIntensity(),
					Source:  region.Meta.Source,
				})
			}

			if rt.outputFormat(cmd) == outputFormatJSON {
				return report.WriteJSON(cmd.OutOrStdout(), report.NewEnvelope("regions", rows))
			}
			report.WriteRegionsTable(cmd.OutOrStdout(), rows)
			return nil
		},
	}
}
