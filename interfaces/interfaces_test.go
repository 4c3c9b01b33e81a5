package interfaces

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stemerlini/fusion-plots/nistparser/entities"
)

// MockParser implements Parser for testing
type MockParser struct {
	table *entities.NuclideTable
	err   error
	calls []Source
}

func (m *MockParser) Load(ctx context.Context, source Source) (*entities.NuclideTable, int, error) {
	m.calls = append(m.calls, source)
	if m.err != nil {
		return nil, 0, m.err
	}
	return m.table, 0, nil
}

// MockDataValidator implements DataValidator for testing
type MockDataValidator struct {
	invalid map[string]bool
}

func (m *MockDataValidator) ValidateSymbol(input string) error {
	if m.invalid[input] {
		return errors.New("invalid symbol")
	}
	return nil
}

func (m *MockDataValidator) ReportDataQuality(table *entities.NuclideTable) *DataQualityReport {
	return &DataQualityReport{Records: table.Len()}
}

// MockHealthChecker implements HealthChecker for testing
type MockHealthChecker struct {
	records int
	err     error
}

func (m *MockHealthChecker) RecordLoad(records int, err error) {
	m.records = records
	m.err = err
}

func (m *MockHealthChecker) HealthCheck() (string, map[string]any, int) {
	if m.err != nil {
		return "degraded", map[string]any{"records": m.records}, http.StatusServiceUnavailable
	}
	return "healthy", map[string]any{"records": m.records}, http.StatusOK
}

// MockHTTPHandler implements HTTPHandler for testing
type MockHTTPHandler struct{}

func (m *MockHTTPHandler) ServeNuclides(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func (m *MockHTTPHandler) ServeBindingEnergy(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func (m *MockHTTPHandler) ServeQuality(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func (m *MockHTTPHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func TestParserInterface(t *testing.T) {
	table := &entities.NuclideTable{AtomicNumber: []float64{1}, AtomicSymbol: []string{"H"}}
	var parser Parser = &MockParser{table: table}

	got, warnings, err := parser.Load(context.Background(), Source{File: "isotopes.txt"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if got != table || warnings != 0 {
		t.Errorf("Expected the mock table without warnings, got %v (%d)", got, warnings)
	}

	failing := &MockParser{err: errors.New("boom")}
	if _, _, err := failing.Load(context.Background(), Source{URL: "http://localhost"}); err == nil {
		t.Error("Expected error from failing parser")
	}
	if len(failing.calls) != 1 || failing.calls[0].URL != "http://localhost" {
		t.Errorf("Expected the source to be recorded, got %v", failing.calls)
	}
}

func TestDataValidatorInterface(t *testing.T) {
	var validator DataValidator = &MockDataValidator{invalid: map[string]bool{"xx": true}}

	if err := validator.ValidateSymbol("He"); err != nil {
		t.Errorf("Expected He to be valid, got %v", err)
	}
	if err := validator.ValidateSymbol("xx"); err == nil {
		t.Error("Expected xx to be invalid")
	}

	report := validator.ReportDataQuality(&entities.NuclideTable{AtomicNumber: []float64{1, 2}})
	if report.Records != 2 {
		t.Errorf("Expected 2 records, got %d", report.Records)
	}
}

func TestHealthCheckerInterface(t *testing.T) {
	var checker HealthChecker = &MockHealthChecker{}

	checker.RecordLoad(10, nil)
	status, data, code := checker.HealthCheck()
	if status != "healthy" || code != http.StatusOK || data["records"] != 10 {
		t.Errorf("Unexpected health: %s %d %v", status, code, data)
	}

	checker.RecordLoad(0, errors.New("unreachable"))
	if status, _, code := checker.HealthCheck(); status != "degraded" || code != http.StatusServiceUnavailable {
		t.Errorf("Expected degraded/503, got %s/%d", status, code)
	}
}

func TestHTTPHandlerInterface(t *testing.T) {
	var handler HTTPHandler = &MockHTTPHandler{}

	endpoints := []http.HandlerFunc{
		handler.ServeNuclides,
		handler.ServeBindingEnergy,
		handler.ServeQuality,
		handler.HealthCheck,
	}
	for _, endpoint := range endpoints {
		rr := httptest.NewRecorder()
		endpoint(rr, httptest.NewRequest(http.MethodGet, "/", nil))
		if rr.Code != http.StatusOK {
			t.Errorf("Expected 200, got %d", rr.Code)
		}
	}
}

func TestCompileTimeChecks(t *testing.T) {
	var _ Parser = (*MockParser)(nil)
	var _ DataValidator = (*MockDataValidator)(nil)
	var _ HealthChecker = (*MockHealthChecker)(nil)
	var _ HTTPHandler = (*MockHTTPHandler)(nil)
}
