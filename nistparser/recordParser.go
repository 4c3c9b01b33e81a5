package nistparser

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/stemerlini/fusion-plots/logging"
	"github.com/stemerlini/fusion-plots/metrics"
	"github.com/stemerlini/fusion-plots/nistparser/entities"
)

// ParseRecords parses a NIST text dump made of "tag = value" lines with an
// empty line after each isotope. Values are kept as text with their
// uncertainty suffix removed; unknown tags are ignored.
//
// At every empty line, and at the end of input, the columns are compared.
// A length mismatch produces an InconsistentRecordWarning; parsing goes on.
func ParseRecords(r io.Reader) (*entities.RawTable, []InconsistentRecordWarning, error) {
	table := entities.NewRawTable()
	var warnings []InconsistentRecordWarning

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	lineCount := 0
	ignoredTags := 0
	pendingRecord := false

	checkBoundary := func(line int) {
		if table.IsConsistent() {
			return
		}
		warning := InconsistentRecordWarning{Line: line, Lengths: table.Lengths()}
		warnings = append(warnings, warning)
		metrics.InconsistentRecordsTotal.Inc()
		logging.Warn("Inconsistent record in NIST data, columns have different lengths",
			"line", line,
			"lengths", formatLengths(warning.Lengths))
	}

	for scanner.Scan() {
		lineCount++
		line := strings.TrimSuffix(scanner.Text(), "\r")

		if line == "" {
			checkBoundary(lineCount)
			pendingRecord = false
			continue
		}

		tag, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		pendingRecord = true

		field, ok := lookupField(strings.TrimSpace(tag))
		if !ok {
			ignoredTags++
			continue
		}
		table.Add(field, stripUncertainty(strings.TrimSpace(value)))
	}

	if err := scanner.Err(); err != nil {
		return nil, warnings, fmt.Errorf("scanner error at line %d: %w", lineCount, err)
	}

	// The last record is often not followed by an empty line
	if pendingRecord {
		checkBoundary(lineCount)
	}

	metrics.RecordsParsedTotal.WithLabelValues(metrics.ModeRecords).Add(float64(table.Len()))
	logging.Debug("NIST records parsed",
		"total_lines", lineCount,
		"ignored_tags", ignoredTags,
		"warnings", len(warnings),
		"records_parsed", table.Len())

	return table, warnings, nil
}
