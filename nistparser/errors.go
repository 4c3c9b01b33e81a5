package nistparser

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/stemerlini/fusion-plots/nistparser/entities"
)

var (
	// ErrTransport matches every *TransportError
	ErrTransport = errors.New("nist transport error")
	// ErrMalformedRecord matches every *MalformedRecordError
	ErrMalformedRecord = errors.New("malformed nist record")
)

// TransportError reports a remote fetch that did not answer 200 OK.
// StatusCode is zero when no response was received at all.
type TransportError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("failed to fetch %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("unexpected http status %d while fetching %s", e.StatusCode, e.URL)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}

// MalformedRecordError reports a numeric field that could not be parsed.
// Line is set for line-stream input, Record for coercion of raw tables.
type MalformedRecordError struct {
	Line   int
	Record int
	Field  entities.Field
	Value  string
	Err    error
}

func (e *MalformedRecordError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: invalid %s value %q: %v", e.Line, e.Field.Label(), e.Value, e.Err)
	}
	return fmt.Sprintf("record %d: invalid %s value %q: %v", e.Record, e.Field.Label(), e.Value, e.Err)
}

func (e *MalformedRecordError) Unwrap() error {
	return e.Err
}

func (e *MalformedRecordError) Is(target error) bool {
	return target == ErrMalformedRecord
}

// InconsistentRecordWarning is raised at a record boundary of a text dump
// when the field columns do not all have the same length. It is not fatal.
type InconsistentRecordWarning struct {
	Line    int
	Lengths map[entities.Field]int
}

func (w InconsistentRecordWarning) Error() string {
	return fmt.Sprintf("line %d: inconsistent record lengths (%s)", w.Line, formatLengths(w.Lengths))
}

func formatLengths(lengths map[entities.Field]int) string {
	parts := make([]string, 0, len(lengths))
	for f, l := range lengths {
		parts = append(parts, fmt.Sprintf("%s=%d", f.Label(), l))
	}
	sort.Strings(parts)
	return strings.Join(parts, ", ")
}
