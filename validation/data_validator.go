// Package validation provides data validation functionality for parsed NIST tables
// and for user input reaching the HTTP API.
package validation

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/stemerlini/fusion-plots/interfaces"
	"github.com/stemerlini/fusion-plots/logging"
	"github.com/stemerlini/fusion-plots/nistparser/entities"
)

// Element symbols: one capital letter followed by up to two lowercase letters
var symbolRegex = regexp.MustCompile(`^[A-Z][a-z]{0,2}$`)

// DataValidatorImpl implements the interfaces.DataValidator interface
type DataValidatorImpl struct{}

// NewDataValidator creates a new data validator
func NewDataValidator() interfaces.DataValidator {
	return &DataValidatorImpl{}
}

// ValidateSymbol checks that input looks like an element symbol ("Fe", "Uue", "D")
func (v *DataValidatorImpl) ValidateSymbol(input string) error {
	if input == "" {
		return fmt.Errorf("symbol cannot be empty")
	}
	if len(input) > 3 {
		return fmt.Errorf("symbol too long: %d characters (max 3)", len(input))
	}
	if !symbolRegex.MatchString(input) {
		return fmt.Errorf("invalid symbol %q: expected a capital letter followed by up to two lowercase letters", input)
	}
	return nil
}

// ReportDataQuality generates a data quality report, record by record. A
// ragged table has no records to inspect, its column lengths are reported
// instead.
func (v *DataValidatorImpl) ReportDataQuality(table *entities.NuclideTable) *interfaces.DataQualityReport {
	report := &interfaces.DataQualityReport{
		Consistent:            true,
		MassNumberMismatches:  []int{},
		DuplicateIsotopes:     []int{},
		MissingSymbols:        []int{},
		NonPositiveAtomicMass: []int{},
	}
	if table == nil {
		return report
	}

	records, err := table.Nuclides()
	if err != nil {
		logging.Warn("Data quality report on a ragged table", "error", err)
		report.Consistent = false
		report.ColumnLengths = make(map[string]int, len(entities.Fields()))
		for f, l := range table.Lengths() {
			report.ColumnLengths[f.Label()] = l
		}
		return report
	}
	report.Records = len(records)

	type isotope struct{ z, a int }
	seen := make(map[isotope]bool, len(records))

	for i, n := range records {
		rounded := math.RoundToEven(n.RelativeAtomicMass)
		if float64(n.MassNumber) != rounded {
			report.MassNumberMismatches = append(report.MassNumberMismatches, i)
		}

		key := isotope{z: n.AtomicNumber, a: n.MassNumber}
		if seen[key] {
			report.DuplicateIsotopes = append(report.DuplicateIsotopes, i)
		}
		seen[key] = true

		if strings.TrimSpace(n.AtomicSymbol) == "" {
			report.MissingSymbols = append(report.MissingSymbols, i)
		}

		if n.RelativeAtomicMass <= 0 {
			report.NonPositiveAtomicMass = append(report.NonPositiveAtomicMass, i)
		}
	}

	if len(report.MassNumberMismatches) > 0 {
		logging.Warn("Parsed mass numbers differ from rounded relative atomic masses",
			"count", len(report.MassNumberMismatches))
	}
	if len(report.DuplicateIsotopes) > 0 {
		logging.Warn("Duplicate isotopes detected", "count", len(report.DuplicateIsotopes))
	}

	return report
}
