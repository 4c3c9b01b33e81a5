// Package interfaces defines the core abstractions shared by the CLI and
// the HTTP API so that data sources can be swapped in tests.
package interfaces

import (
	"context"
	"net/http"

	"github.com/stemerlini/fusion-plots/nistparser/entities"
)

// Source selects where NIST data is read from. Either field may be empty,
// but not both.
type Source struct {
	URL  string `json:"url,omitempty"`
	File string `json:"file,omitempty"`
}

// DataQualityReport summarizes suspicious records of a parsed table
type DataQualityReport struct {
	Records               int            `json:"records"`
	Consistent            bool           `json:"consistent"`
	ColumnLengths         map[string]int `json:"column_lengths,omitempty"` // set when the columns differ in length
	MassNumberMismatches  []int `json:"mass_number_mismatches"`   // indexes where the parsed mass number differs from the rounded atomic mass
	DuplicateIsotopes     []int `json:"duplicate_isotopes"`       // indexes repeating an earlier (Z, A) pair
	MissingSymbols        []int `json:"missing_symbols"`          // indexes with an empty symbol
	NonPositiveAtomicMass []int `json:"non_positive_atomic_mass"` // indexes with a zero or negative relative atomic mass
}

// Parser defines the contract for reading NIST data.
type Parser interface {
	// Load reads every configured source into a new table and returns it with
	// the number of non-fatal warnings encountered
	Load(ctx context.Context, source Source) (*entities.NuclideTable, int, error)
}

// DataValidator defines the contract for validation of tables and user input.
type DataValidator interface {
	// ValidateSymbol checks a user supplied element symbol
	ValidateSymbol(input string) error

	// ReportDataQuality inspects a table record by record
	ReportDataQuality(table *entities.NuclideTable) *DataQualityReport
}

// HealthChecker tracks the outcome of source loads for the health endpoint.
type HealthChecker interface {
	// RecordLoad stores the result of a load attempt
	RecordLoad(records int, err error)

	// HealthCheck returns the status, details and the HTTP code to answer with
	HealthCheck() (status string, data map[string]any, httpStatus int)
}

// HTTPHandler defines the contract for the API endpoints.
type HTTPHandler interface {
	ServeNuclides(w http.ResponseWriter, r *http.Request)
	ServeBindingEnergy(w http.ResponseWriter, r *http.Request)
	ServeQuality(w http.ResponseWriter, r *http.Request)
	HealthCheck(w http.ResponseWriter, r *http.Request)
}
