package entities

// Field identifies one of the four isotope properties read from NIST data.
type Field int

const (
	AtomicNumber Field = iota
	AtomicSymbol
	MassNumber
	RelativeAtomicMass
)

var fieldLabels = [...]string{
	AtomicNumber:       "Atomic Number",
	AtomicSymbol:       "Atomic Symbol",
	MassNumber:         "Mass Number",
	RelativeAtomicMass: "Relative Atomic Mass",
}

// Label returns the exact identifier NIST uses for the field, e.g. "Atomic Number".
func (f Field) Label() string {
	if f < 0 || int(f) >= len(fieldLabels) {
		return "Unknown"
	}
	return fieldLabels[f]
}

func (f Field) String() string {
	return f.Label()
}

// IsNumeric reports whether the field holds a number (every field but the symbol).
func (f Field) IsNumeric() bool {
	return f != AtomicSymbol
}

// Fields returns every known field in declaration order.
func Fields() []Field {
	return []Field{AtomicNumber, AtomicSymbol, MassNumber, RelativeAtomicMass}
}
