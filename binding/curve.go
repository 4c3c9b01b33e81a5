package binding

import (
	"github.com/samber/lo"
	"github.com/stemerlini/fusion-plots/nistparser/entities"
)

// Point is one isotope on the binding energy curve.
type Point struct {
	AtomicSymbol string  `json:"atomicSymbol" yaml:"atomicSymbol"`
	AtomicNumber int     `json:"atomicNumber" yaml:"atomicNumber"`
	MassNumber   int     `json:"massNumber" yaml:"massNumber"`
	Energy       float64 `json:"bindingEnergy" yaml:"bindingEnergy"`
}

// Curve pairs every isotope with its binding energy. Unlike BindingEnergy it
// needs all four columns aligned.
func Curve(table *entities.NuclideTable, normalize bool) ([]Point, error) {
	if table != nil && !table.IsConsistent() {
		return nil, &ShapeMismatchError{Reason: "column lengths differ", Lengths: table.Lengths()}
	}
	energies, err := BindingEnergy(table, normalize)
	if err != nil {
		return nil, err
	}
	massNumbers, err := MassNumber(table)
	if err != nil {
		return nil, err
	}

	return lo.Map(energies, func(energy float64, i int) Point {
		return Point{
			AtomicSymbol: table.AtomicSymbol[i],
			AtomicNumber: int(table.AtomicNumber[i]),
			MassNumber:   int(massNumbers[i]),
			Energy:       energy,
		}
	}), nil
}

// Peak returns the most tightly bound isotope of the curve.
func Peak(points []Point) (Point, bool) {
	if len(points) == 0 {
		return Point{}, false
	}
	return lo.MaxBy(points, func(a, b Point) bool {
		return a.Energy > b.Energy
	}), true
}
