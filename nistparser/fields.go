package nistparser

import (
	"strings"

	"github.com/stemerlini/fusion-plots/nistparser/entities"
)

// labels indexes every known field by its NIST label; both input modes
// classify lines through it.
var labels = func() map[string]entities.Field {
	m := make(map[string]entities.Field)
	for _, f := range entities.Fields() {
		m[f.Label()] = f
	}
	return m
}()

// lookupField resolves an exact, already trimmed tag.
func lookupField(tag string) (entities.Field, bool) {
	f, ok := labels[tag]
	return f, ok
}

// matchLabelPrefix returns the field whose label starts the line.
func matchLabelPrefix(line string) (entities.Field, bool) {
	for _, f := range entities.Fields() {
		if strings.HasPrefix(line, f.Label()) {
			return f, true
		}
	}
	return 0, false
}

// stripUncertainty drops a parenthesized uncertainty suffix, e.g. "4.002602(2)" -> "4.002602".
// Text before the parenthesis is kept untouched.
func stripUncertainty(value string) string {
	if idx := strings.IndexByte(value, '('); idx >= 0 {
		return value[:idx]
	}
	return value
}
