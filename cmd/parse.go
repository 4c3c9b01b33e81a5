package cmd

import (
	"github.com/spf13/cobra"
	"github.com/stemerlini/fusion-plots/report"
	"github.com/stemerlini/fusion-plots/validation"
)

func newParseCmd(opts *rootOptions) *cobra.Command {
	var (
		format string
		symbol string
	)

	parseCmd := &cobra.Command{
		Use:   "parse",
		Short: "parse prints the NIST isotope table.",
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

			if outputFormat == report.FormatTable {
				return report.WriteTable(cmd.OutOrStdout(), table)
			}
			nuclides, err := table.Nuclides()
			if err != nil {
				return err
			}
			return report.Write(cmd.OutOrStdout(), outputFormat, nuclides, false)
		},
	}

	flags := parseCmd.Flags()
	flags.StringVarP(&format, "format", "o", "table", "output format: table, json or yaml")
	flags.StringVar(&symbol, "symbol", "", "only print isotopes of this element")
	return parseCmd
}
