package cmd

import (
	"github.com/spf13/cobra"
	"github.com/stemerlini/fusion-plots/binding"
	"github.com/stemerlini/fusion-plots/report"
	"github.com/stemerlini/fusion-plots/validation"
)

func newEnergyCmd(opts *rootOptions) *cobra.Command {
	var (
		format    string
		normalize bool
		symbol    string
	)

	energyCmd := &cobra.Command{
		Use:   "energy",
		Short: "energy prints the binding energy of every isotope in MeV.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			outputFormat, err := report.ParseFormat(format)
			if err != nil {
				return err
			}
			if symbol != "" {
				if err := validation.NewDataValidator().ValidateSymbol(symbol); err != nil {
					return err
				}
			}

			table, err := opts.load(cmd.Context())
			if err != nil {
				return err
			}

			if symbol != "" {
				if table, err = table.BySymbol(symbol); err != nil {
					return err
				}
			}

			points, err := binding.Curve(table, normalize)
			if err != nil {
				return err
			}

			return report.Write(cmd.OutOrStdout(), outputFormat, points, normalize)
		},
	}

	flags := energyCmd.Flags()
	flags.StringVarP(&format, "format", "o", "table", "output format: table, json or yaml")
	flags.BoolVar(&normalize, "normalize", true, "divide by the mass number (binding energy per nucleon)")
	flags.StringVar(&symbol, "symbol", "", "only print isotopes of this element")
	return energyCmd
}
