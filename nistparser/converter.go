package nistparser

import (
	"strconv"
	"strings"

	"github.com/stemerlini/fusion-plots/nistparser/entities"
)

// ToNuclideTable converts the text columns of a raw table into numbers.
// Columns are converted independently, so a ragged raw table yields an
// equally ragged numeric table.
func ToNuclideTable(raw *entities.RawTable) (*entities.NuclideTable, error) {
	table := entities.NewNuclideTable()
	if raw == nil {
		return table, nil
	}

	for _, f := range entities.Fields() {
		if !f.IsNumeric() {
			continue
		}
		values, err := parseColumn(*raw.Column(f), f)
		if err != nil {
			return nil, err
		}
		*table.NumericColumn(f) = values
	}
	table.AtomicSymbol = append(table.AtomicSymbol, raw.AtomicSymbol...)

	return table, nil
}

func parseColumn(values []string, field entities.Field) ([]float64, error) {
	out := make([]float64, 0, len(values))
	for i, v := range values {
		number, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return nil, &MalformedRecordError{Record: i, Field: field, Value: v, Err: err}
		}
		out = append(out, number)
	}
	return out, nil
}
