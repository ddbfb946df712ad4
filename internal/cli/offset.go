package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/gridleaf/carboncast/internal/emissions"
	"github.com/gridleaf/carboncast/internal/report"
)

// OffsetParams holds the flag values for the offset command.
// Exported for testing.
type OffsetParams struct {
	Kg    float64
	Price float64
}

// NewOffsetCmd creates the "offset" subcommand: price offsetting an
// emission amount.
func NewOffsetCmd() *cobra.Command {
	var params OffsetParams

	cmd := &cobra.Command{
		Use:   "offset",
		Short: "Price offsetting an emission amount",
		Long: `Quote the cost of offsetting a kg CO2e amount against the illustrative
project portfolio.

Examples:
  carboncast offset --kg 2500
  carboncast offset --kg 2500 --price 22.5`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runOffset(cmd, params)
		},
	}

	cmd.Flags().Float64Var(&params.Kg, "kg", 0, "emissions to offset in kg CO2e")
	cmd.Flags().Float64Var(&params.Price, "price", 0,
		"offset price per tonne USD (default from config)")

	return cmd
}

func runOffset(cmd *cobra.Command, params OffsetParams) error {
	if params.Kg <= 0 {
		return errors.New("--kg must be > 0")
	}

	rt, err := newRuntime(cmd)
	if err != nil {
		return err
	}

	price := params.Price
	if price <= 0 {
		price = rt.cfg.CostPerTonneUSD
	}

	quote := emissions.EstimateOffset(params.Kg, price)

	if rt.outputFormat(cmd) == outputFormatJSON {
		return report.WriteJSON(cmd.OutOrStdout(), report.NewEnvelope("offset", quote))
	}
	report.WriteOffsetTable(cmd.OutOrStdout(), quote)
	return nil
}
