package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/stemerlini/fusion-plots/interfaces"
	"github.com/stemerlini/fusion-plots/nistparser/entities"
	"github.com/stemerlini/fusion-plots/report"
	"github.com/stemerlini/fusion-plots/validation"
)

func newQualityCmd(opts *rootOptions) *cobra.Command {
	var format string

	qualityCmd := &cobra.Command{
		Use:   "quality",
		Short: "quality reports suspicious records of the NIST table.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			outputFormat, err := report.ParseFormat(format)
			if err != nil {
				return err
			}

			table, err := opts.load(cmd.Context())
			if err != nil {
				return err
			}

			quality := validation.NewDataValidator().ReportDataQuality(table)
			if outputFormat != report.FormatTable {
				return report.Write(cmd.OutOrStdout(), outputFormat, quality, false)
			}
			writeQualitySummary(cmd, quality)
			return nil
		},
	}

	qualityCmd.Flags().StringVarP(&format, "format", "o", "table", "output format: table, json or yaml")
	return qualityCmd
}

func writeQualitySummary(cmd *cobra.Command, quality *interfaces.DataQualityReport) {
	w := cmd.OutOrStdout()
	if !quality.Consistent {
		fmt.Fprintln(w, "consistent: false")
		for _, f := range entities.Fields() {
			fmt.Fprintf(w, "%s: %d values\n", strings.ToLower(f.Label()), quality.ColumnLengths[f.Label()])
		}
		return
	}
	fmt.Fprintf(w, "records: %d\n", quality.Records)
	fmt.Fprintf(w, "mass number mismatches: %d %v\n", len(quality.MassNumberMismatches), quality.MassNumberMismatches)
	fmt.Fprintf(w, "duplicate isotopes: %d %v\n", len(quality.DuplicateIsotopes), quality.DuplicateIsotopes)
	fmt.Fprintf(w, "missing symbols: %d %v\n", len(quality.MissingSymbols), quality.MissingSymbols)
	fmt.Fprintf(w, "non positive atomic masses: %d %v\n", len(quality.NonPositiveAtomicMass), quality.NonPositiveAtomicMass)
}
