package output

import "github.com/crimson-sun/intake/internal/model"

// FormatRecord returns a copy of the record with fields stripped according to
// the explain setting. Without explain the analysis is dropped (omitted from
// JSON via omitempty) and only the draft or the error remains.
func FormatRecord(r model.Record, explain bool) model.Record {
	if !explain {
		r.Analysis = nil
	}
	return r
}
