package entities

// Nuclide is one row of a NuclideTable.
type Nuclide struct {
	AtomicNumber       int     `json:"atomicNumber" yaml:"atomicNumber"`
	AtomicSymbol       string  `json:"atomicSymbol" yaml:"atomicSymbol"`
	MassNumber         int     `json:"massNumber" yaml:"massNumber"`
	RelativeAtomicMass float64 `json:"relativeAtomicMass" yaml:"relativeAtomicMass"`
}
