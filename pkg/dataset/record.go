// Package dataset loads the crowdfunding project dataset and exposes it as an
// immutable, ordered sequence of records.
package dataset

import (
	"bytes"
	"encoding/json"
)

// Field names read from each project record.
const (
	FieldPercentageFunded = "percentage.funded"
	FieldAmountPledged    = "amt.pledged"
)

// Record is one project entry. It is kept opaque: every key of the source
// object is retained and only the fields above are ever read.
type Record map[string]json.RawMessage

// PercentageFunded returns the "percentage.funded" value as received.
func (r Record) PercentageFunded() string {
	return r.Display(FieldPercentageFunded)
}

// AmountPledged returns the "amt.pledged" value as received.
func (r Record) AmountPledged() string {
	return r.Display(FieldAmountPledged)
}

// Display renders a field for output without interpreting it.
// Strings lose their quotes, other JSON literals are shown verbatim, and
// missing or null fields render as an empty string.
func (r Record) Display(field string) string {
	raw, ok := r[field]
	if !ok {
		return ""
	}

	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}

	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return s
		}
	}

	return string(raw)
}
