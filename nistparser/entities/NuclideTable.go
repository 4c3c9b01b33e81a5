package entities

import (
	"errors"
	"fmt"
	"strings"
)

// ErrRaggedTable reports columns of different lengths
var ErrRaggedTable = errors.New("table columns differ in length")

// NuclideTable holds isotope records as parallel columns.
// Index i across all four slices refers to the same isotope, in source order.
type NuclideTable struct {
	AtomicNumber       []float64
	AtomicSymbol       []string
	MassNumber         []float64
	RelativeAtomicMass []float64
}

// NewNuclideTable returns an empty table with all four columns allocated.
func NewNuclideTable() *NuclideTable {
	return &NuclideTable{
		AtomicNumber:       make([]float64, 0),
		AtomicSymbol:       make([]string, 0),
		MassNumber:         make([]float64, 0),
		RelativeAtomicMass: make([]float64, 0),
	}
}

// Len returns the number of records, taken from the atomic number column.
func (t *NuclideTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.AtomicNumber)
}

// Lengths returns the length of every column.
func (t *NuclideTable) Lengths() map[Field]int {
	if t == nil {
		return map[Field]int{}
	}
	return map[Field]int{
		AtomicNumber:       len(t.AtomicNumber),
		AtomicSymbol:       len(t.AtomicSymbol),
		MassNumber:         len(t.MassNumber),
		RelativeAtomicMass: len(t.RelativeAtomicMass),
	}
}

// IsConsistent reports whether all columns have the same length.
func (t *NuclideTable) IsConsistent() bool {
	return sameLengths(t.Lengths())
}

// Append concatenates the records of other after the records of t.
func (t *NuclideTable) Append(other *NuclideTable) {
	if other == nil {
		return
	}
	t.AtomicNumber = append(t.AtomicNumber, other.AtomicNumber...)
	t.AtomicSymbol = append(t.AtomicSymbol, other.AtomicSymbol...)
	t.MassNumber = append(t.MassNumber, other.MassNumber...)
	t.RelativeAtomicMass = append(t.RelativeAtomicMass, other.RelativeAtomicMass...)
}

// NumericColumn returns a pointer to the column backing a numeric field.
func (t *NuclideTable) NumericColumn(f Field) *[]float64 {
	switch f {
	case AtomicNumber:
		return &t.AtomicNumber
	case MassNumber:
		return &t.MassNumber
	case RelativeAtomicMass:
		return &t.RelativeAtomicMass
	}
	return nil
}

// CheckConsistent returns an error wrapping ErrRaggedTable when the columns
// differ in length.
func (t *NuclideTable) CheckConsistent() error {
	if t.IsConsistent() {
		return nil
	}
	return fmt.Errorf("%w (%s)", ErrRaggedTable, FormatLengths(t.Lengths()))
}

// Nuclides returns the table as rows. A ragged table has no rows: index i no
// longer names one isotope once a column is short.
func (t *NuclideTable) Nuclides() ([]Nuclide, error) {
	if err := t.CheckConsistent(); err != nil {
		return nil, err
	}
	rows := make([]Nuclide, 0, t.Len())
	for i := 0; i < t.Len(); i++ {
		rows = append(rows, Nuclide{
			AtomicNumber:       int(t.AtomicNumber[i]),
			AtomicSymbol:       t.AtomicSymbol[i],
			MassNumber:         int(t.MassNumber[i]),
			RelativeAtomicMass: t.RelativeAtomicMass[i],
		})
	}
	return rows, nil
}

// Select returns a new table with the records at the given indexes, in that order.
func (t *NuclideTable) Select(indexes []int) (*NuclideTable, error) {
	if err := t.CheckConsistent(); err != nil {
		return nil, err
	}
	out := NewNuclideTable()
	for _, i := range indexes {
		if i < 0 || i >= t.Len() {
			return nil, fmt.Errorf("record %d out of range [0, %d)", i, t.Len())
		}
		out.AtomicNumber = append(out.AtomicNumber, t.AtomicNumber[i])
		out.AtomicSymbol = append(out.AtomicSymbol, t.AtomicSymbol[i])
		out.MassNumber = append(out.MassNumber, t.MassNumber[i])
		out.RelativeAtomicMass = append(out.RelativeAtomicMass, t.RelativeAtomicMass[i])
	}
	return out, nil
}

// BySymbol returns the isotopes of one element as a new table.
func (t *NuclideTable) BySymbol(symbol string) (*NuclideTable, error) {
	var indexes []int
	if t != nil {
		for i, s := range t.AtomicSymbol {
			if s == symbol {
				indexes = append(indexes, i)
			}
		}
	}
	return t.Select(indexes)
}

// FormatLengths renders column lengths in field order,
// e.g. "Atomic Number=2, Atomic Symbol=2, Mass Number=1, Relative Atomic Mass=2".
func FormatLengths(lengths map[Field]int) string {
	parts := make([]string, 0, len(lengths))
	for _, f := range Fields() {
		if l, ok := lengths[f]; ok {
			parts = append(parts, fmt.Sprintf("%s=%d", f.Label(), l))
		}
	}
	return strings.Join(parts, ", ")
}

func sameLengths(lengths map[Field]int) bool {
	first := lengths[AtomicNumber]
	for _, l := range lengths {
		if l != first {
			return false
		}
	}
	return true
}
