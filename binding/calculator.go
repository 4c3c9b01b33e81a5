// Package binding derives mass numbers and nuclear binding energies from a
// parsed NIST table using a plain mass balance of nucleons and electrons.
package binding

import (
	"fmt"
	"math"

	"github.com/samber/lo"
	"github.com/stemerlini/fusion-plots/nistparser/entities"
)

const (
	// AtomicMassUnit is the energy equivalent of 1 u, in MeV
	AtomicMassUnit = 931.494095
	// Particle masses in u
	NeutronMass  = 1.00866491588
	ProtonMass   = 1.00727646688
	ElectronMass = 0.00054858
)

// ShapeMismatchError reports a table the calculator cannot work on: columns
// of different lengths or values that are not finite numbers.
type ShapeMismatchError struct {
	Reason  string
	Lengths map[entities.Field]int
}

func (e *ShapeMismatchError) Error() string {
	if e.Lengths == nil {
		return "shape mismatch: " + e.Reason
	}
	return fmt.Sprintf("shape mismatch: %s (%s)", e.Reason, entities.FormatLengths(e.Lengths))
}

// Unwrap exposes entities.ErrRaggedTable when the mismatch is about column lengths
func (e *ShapeMismatchError) Unwrap() error {
	if e.Lengths == nil {
		return nil
	}
	return entities.ErrRaggedTable
}

// MassNumber rounds every relative atomic mass to the nearest integer.
// Halves round to even, like numpy's around.
func MassNumber(table *entities.NuclideTable) ([]float64, error) {
	if table == nil {
		return nil, &ShapeMismatchError{Reason: "nil table"}
	}
	if err := checkFinite(table.RelativeAtomicMass, entities.RelativeAtomicMass); err != nil {
		return nil, err
	}

	return lo.Map(table.RelativeAtomicMass, func(mass float64, _ int) float64 {
		return math.RoundToEven(mass)
	}), nil
}

// BindingEnergy returns the binding energy of every isotope in MeV, per
// nucleon when normalize is set:
//
//	defect = ((A-Z)*m_n + Z*(m_p+m_e) - M) * amu
//
// where A is the rounded mass number, Z the atomic number and M the relative
// atomic mass. The table is left untouched.
func BindingEnergy(table *entities.NuclideTable, normalize bool) ([]float64, error) {
	if err := checkShape(table); err != nil {
		return nil, err
	}

	massNumbers, err := MassNumber(table)
	if err != nil {
		return nil, err
	}

	energies := make([]float64, len(massNumbers))
	for i, a := range massNumbers {
		z := table.AtomicNumber[i]
		neutrons := a - z
		defect := (neutrons*NeutronMass + z*(ProtonMass+ElectronMass) - table.RelativeAtomicMass[i]) * AtomicMassUnit

		if !normalize {
			energies[i] = defect
			continue
		}
		if a == 0 {
			return nil, &ShapeMismatchError{Reason: fmt.Sprintf("record %d has a mass number of zero", i)}
		}
		energies[i] = defect / a
	}

	return energies, nil
}

func checkShape(table *entities.NuclideTable) error {
	if table == nil {
		return &ShapeMismatchError{Reason: "nil table"}
	}
	if len(table.AtomicNumber) != len(table.RelativeAtomicMass) {
		return &ShapeMismatchError{Reason: "column lengths differ", Lengths: table.Lengths()}
	}
	return checkFinite(table.AtomicNumber, entities.AtomicNumber)
}

func checkFinite(values []float64, field entities.Field) error {
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return &ShapeMismatchError{Reason: fmt.Sprintf("record %d: %s is not a finite number", i, field.Label())}
		}
	}
	return nil
}
