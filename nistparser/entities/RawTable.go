package entities

// RawTable holds isotope records exactly as read from a NIST text dump.
// Values are kept as text; numeric coercion is a separate step.
type RawTable struct {
	AtomicNumber       []string
	AtomicSymbol       []string
	MassNumber         []string
	RelativeAtomicMass []string
}

// NewRawTable returns an empty raw table.
func NewRawTable() *RawTable {
	return &RawTable{
		AtomicNumber:       make([]string, 0),
		AtomicSymbol:       make([]string, 0),
		MassNumber:         make([]string, 0),
		RelativeAtomicMass: make([]string, 0),
	}
}

// Column returns a pointer to the column backing field f.
func (t *RawTable) Column(f Field) *[]string {
	switch f {
	case AtomicNumber:
		return &t.AtomicNumber
	case AtomicSymbol:
		return &t.AtomicSymbol
	case MassNumber:
		return &t.MassNumber
	case RelativeAtomicMass:
		return &t.RelativeAtomicMass
	}
	return nil
}

// Add appends value to the column of field f.
func (t *RawTable) Add(f Field, value string) {
	if col := t.Column(f); col != nil {
		*col = append(*col, value)
	}
}

func (t *RawTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.AtomicNumber)
}

func (t *RawTable) Lengths() map[Field]int {
	return map[Field]int{
		AtomicNumber:       len(t.AtomicNumber),
		AtomicSymbol:       len(t.AtomicSymbol),
		MassNumber:         len(t.MassNumber),
		RelativeAtomicMass: len(t.RelativeAtomicMass),
	}
}

func (t *RawTable) IsConsistent() bool {
	return sameLengths(t.Lengths())
}
