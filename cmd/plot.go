package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/stemerlini/fusion-plots/binding"
	"github.com/stemerlini/fusion-plots/logging"
	"github.com/stemerlini/fusion-plots/report"
)

// stdoutPath makes plot write the image to standard output
const stdoutPath = "-"

func newPlotCmd(opts *rootOptions) *cobra.Command {
	var (
		output    string
		format    string
		normalize bool
	)

	plotCmd := &cobra.Command{
		Use:   "plot",
		Short: "plot draws the binding energy curve to a png, svg or pdf file.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := opts.load(cmd.Context())
			if err != nil {
				return err
			}

			points, err := binding.Curve(table, normalize)
			if err != nil {
				return err
			}

			if output == stdoutPath {
				return report.RenderCurve(cmd.OutOrStdout(), points, normalize, format)
			}
			if err := report.PlotCurve(points, normalize, output); err != nil {
				return err
			}

			peak, _ := binding.Peak(points)
			logging.Info("Binding energy curve written", "path", output, "points", len(points), "peak", peak.AtomicSymbol)
			fmt.Fprintln(cmd.OutOrStdout(), output)
			return nil
		},
	}

	flags := plotCmd.Flags()
	flags.StringVar(&output, "out", "binding_energy.png", "output file, the extension selects png, svg or pdf; - writes to stdout")
	flags.StringVar(&format, "format", "png", "image format when writing to stdout: png, svg or pdf")
	flags.BoolVar(&normalize, "normalize", true, "plot the binding energy per nucleon")
	return plotCmd
}
