package dataset

import (
	"encoding/json"
	"fmt"
)

// Dataset is the full in-memory collection of records after a successful load.
// It is never mutated once built.
type Dataset struct {
	records []Record
}

// New builds a Dataset from records. The slice is copied.
func New(records []Record) *Dataset {
	cp := make([]Record, len(records))
	copy(cp, records)
	return &Dataset{records: cp}
}

// Parse decodes a JSON array of objects into a Dataset.
func Parse(data []byte) (*Dataset, error) {
	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, &DecodeError{Err: err}
	}
	if records == nil {
		// "null" decodes without error but is not a dataset.
		return nil, &DecodeError{Err: fmt.Errorf("expected JSON array, got null")}
	}
	return New(records), nil
}

// Len returns the number of records.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.records)
}

// At returns the record at index i.
func (d *Dataset) At(i int) Record {
	return d.records[i]
}

// Slice returns a copy of records [lo, hi), clipped to the available length.
func (d *Dataset) Slice(lo, hi int) []Record {
	n := d.Len()
	if lo < 0 {
		lo = 0
	}
	if hi > n {
		hi = n
	}
	if lo >= hi {
		return []Record{}
	}

	out := make([]Record, hi-lo)
	copy(out, d.records[lo:hi])
	return out
}
