package nistparser

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/stemerlini/fusion-plots/logging"
	"github.com/stemerlini/fusion-plots/metrics"
	"github.com/stemerlini/fusion-plots/nistparser/entities"
)

const maxLineSize = 1 * 1024 * 1024

var errMissingEquals = errors.New("no '=' after label")

// ParseLines parses the line stream served by the NIST composition query.
// Lines starting with a known label ("Atomic Number = 1") are appended to the
// matching column; every other line is skipped. A numeric value that does not
// parse aborts the whole parse with a *MalformedRecordError.
func ParseLines(lines []string) (*entities.NuclideTable, error) {
	table := entities.NewNuclideTable()
	skippedLines := 0

	for i, line := range lines {
		matched, err := parseLine(table, line, i+1)
		if err != nil {
			return nil, err
		}
		if !matched {
			skippedLines++
		}
	}

	metrics.RecordsParsedTotal.WithLabelValues(metrics.ModeLines).Add(float64(table.Len()))
	logging.Debug("NIST line stream parsed",
		"total_lines", len(lines),
		"skipped_lines", skippedLines,
		"records_parsed", table.Len())

	return table, nil
}

// ParseStream reads r line by line and parses it like ParseLines.
func ParseStream(r io.Reader) (*entities.NuclideTable, error) {
	lines, err := readLines(r)
	if err != nil {
		return nil, err
	}
	return ParseLines(lines)
}

// parseLine appends the value carried by line, if any, and reports whether
// the line matched a label.
func parseLine(table *entities.NuclideTable, line string, lineNumber int) (bool, error) {
	field, ok := matchLabelPrefix(line)
	if !ok {
		return false, nil
	}

	label := field.Label()
	eq := strings.IndexByte(line[len(label):], '=')
	if eq < 0 {
		return true, &MalformedRecordError{Line: lineNumber, Field: field, Value: line, Err: errMissingEquals}
	}
	valueStart := len(label) + eq + 1
	value := strings.TrimSpace(stripUncertainty(line[valueStart:]))

	if field == entities.AtomicSymbol {
		table.AtomicSymbol = append(table.AtomicSymbol, value)
		return true, nil
	}

	number, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return true, &MalformedRecordError{Line: lineNumber, Field: field, Value: value, Err: err}
	}

	switch field {
	case entities.AtomicNumber:
		table.AtomicNumber = append(table.AtomicNumber, number)
	case entities.MassNumber:
		table.MassNumber = append(table.MassNumber, number)
	case entities.RelativeAtomicMass:
		table.RelativeAtomicMass = append(table.RelativeAtomicMass, number)
	}
	return true, nil
}

func readLines(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanner error: %w", err)
	}
	return lines, nil
}
