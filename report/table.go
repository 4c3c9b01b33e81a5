// Package report renders nuclide tables and binding energy curves as text,
// JSON, YAML and plots.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/stemerlini/fusion-plots/binding"
	"github.com/stemerlini/fusion-plots/nistparser/entities"
	"gopkg.in/yaml.v3"
)

// Format is an output format for the parse and energy commands
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// ParseFormat accepts table, json and yaml (yml), case insensitively
func ParseFormat(value string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "table", "text":
		return FormatTable, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown output format %q, expected table, json or yaml", value)
	}
}

// WriteTable prints one aligned row per isotope. A ragged table is refused
// before anything is written.
func WriteTable(w io.Writer, table *entities.NuclideTable) error {
	nuclides, err := table.Nuclides()
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t\n",
		entities.AtomicNumber.Label(), entities.AtomicSymbol.Label(),
		entities.MassNumber.Label(), entities.RelativeAtomicMass.Label())

	for _, n := range nuclides {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%s\t\n",
			n.AtomicNumber, n.AtomicSymbol, n.MassNumber, formatFloat(n.RelativeAtomicMass))
	}
	return tw.Flush()
}

// WriteCurveTable prints the binding energy of every point in MeV
func WriteCurveTable(w io.Writer, points []binding.Point, normalized bool) error {
	energyHeader := "Binding Energy (MeV)"
	if normalized {
		energyHeader = "Binding Energy per Nucleon (MeV)"
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t\n",
		entities.AtomicNumber.Label(), entities.AtomicSymbol.Label(), entities.MassNumber.Label(), energyHeader)

	for _, p := range points {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%.6f\t\n", p.AtomicNumber, p.AtomicSymbol, p.MassNumber, p.Energy)
	}
	return tw.Flush()
}

// WriteJSON writes v as indented JSON followed by a newline
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode json: %w", err)
	}
	return nil
}

// WriteYAML writes v as a YAML document
func WriteYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode yaml: %w", err)
	}
	return enc.Close()
}

// Write dispatches on format. JSON and YAML receive data as is, the table
// format needs a nuclide table or a curve.
func Write(w io.Writer, format Format, data any, normalized bool) error {
	switch format {
	case FormatJSON:
		return WriteJSON(w, data)
	case FormatYAML:
		return WriteYAML(w, data)
	case FormatTable:
		switch v := data.(type) {
		case *entities.NuclideTable:
			return WriteTable(w, v)
		case []binding.Point:
			return WriteCurveTable(w, v, normalized)
		default:
			return fmt.Errorf("cannot print %T as a table", data)
		}
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
