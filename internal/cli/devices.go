package cli

import (
	"github.com/spf13/cobra"

	"github.com/gridleaf/carboncast/internal/report"
)

// NewDevicesCmd creates the "devices" subcommand: list the household
// device presets with their typical power draw and daily hours.
func NewDevicesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "devices",
		Short: "List household device presets",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := newRuntime(cmd)
			if err != nil {
				return err
			}

			names := rt.catalog.DeviceNames()
			rows := make([]report.DeviceRow, 0, len(names))
			for _, name := range names {
				preset, devErr := rt.catalog.Device(name)
				if devErr != nil {
					return devErr
				}
				rows = append(rows, report.DeviceRow{
					Name:     preset.Name,
					Category: preset.Category,
					PowerW:   preset.PowerW,
					Hours:    preset.HoursPerDay,
				})
			}

			if rt.outputFormat(cmd) == outputFormatJSON {
				return report.WriteJSON(cmd.OutOrStdout(), report.NewEnvelope("devices", rows))
			}
			report.WriteDevicesTable(cmd.OutOrStdout(), rows)
			return nil
		},
	}
}
