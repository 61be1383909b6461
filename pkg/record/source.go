// Package record provides the ordered, replayable record source that feeds
// the label batch.
//
// Records come from delimited text input: the first row names the fields,
// every following row becomes one [Record]. The field order of the header is
// preserved so callers can offer it for field selection.
package record

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// FieldID is the required field holding the label identifier encoded into
// the optical symbol.
const FieldID = "lid"

// Record maps field names to values for one input row. A Record is immutable
// once read.
type Record map[string]string

// ID returns the label identifier, or "" when absent.
func (r Record) ID() string {
	return r[FieldID]
}

// Get returns the value for field and whether the record carries it.
func (r Record) Get(field string) (string, bool) {
	v, ok := r[field]
	return v, ok
}

// Source is an ordered, replayable sequence of records plus the ordered
// field names discovered from the header.
type Source struct {
	fields  []string
	records []Record
}

// ReadCSV parses delimited input into a Source. The first row is the header;
// header cells are trimmed and stripped of stray quotes. Rows shorter than
// the header leave the trailing fields unset.
func ReadCSV(r io.Reader) (*Source, error) {
	cr := csv.NewReader(r)
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1 // tolerate ragged rows

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("input has no header row")
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	fields := make([]string, 0, len(header))
	for _, h := range header {
		fields = append(fields, cleanHeader(h))
	}

	var records []Record
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", len(records)+2, err)
		}

		rec := make(Record, len(fields))
		for i, field := range fields {
			if i < len(row) {
				rec[field] = strings.TrimSpace(row[i])
			}
		}
		records = append(records, rec)
	}

	return &Source{fields: fields, records: records}, nil
}

// cleanHeader normalizes one header cell: surrounding whitespace and any
// quote characters left over from loose quoting are removed.
func cleanHeader(h string) string {
	h = strings.TrimSpace(h)
	return strings.ReplaceAll(h, `"`, "")
}

// Fields returns the ordered field names from the header. The returned slice
// must not be modified.
func (s *Source) Fields() []string {
	return s.fields
}

// Records returns all records in input order. The same slice is returned on
// every call, so the source can be replayed.
func (s *Source) Records() []Record {
	return s.records
}

// Len returns the number of records.
func (s *Source) Len() int {
	return len(s.records)
}

// HasField reports whether the header named field.
func (s *Source) HasField(field string) bool {
	for _, f := range s.fields {
		if f == field {
			return true
		}
	}
	return false
}
