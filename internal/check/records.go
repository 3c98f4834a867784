package check

import (
	"github.com/JonMunkholm/sizecat/internal/catalog"
	"github.com/JonMunkholm/sizecat/internal/sizes"
)

// RecordResult is the reconciliation outcome for one record.
type RecordResult struct {
	File     string
	Line     int
	Name     string
	HasSizes bool
	Result   Result
	Err      error // Decode failure; Result is unset when non-nil
}

// Mismatch reports whether the record decoded but disagrees with its total.
func (rr RecordResult) Mismatch() bool {
	return rr.Err == nil && !rr.Result.OK
}

// ReconcileAll reconciles every record against its declared total.
// Decode failures are attached to the record's result and never stop the run.
func ReconcileAll(records []catalog.Product, codec *sizes.Codec) []RecordResult {
	out := make([]RecordResult, len(records))
	for i, p := range records {
		rr := RecordResult{File: p.File, Line: p.Line, Name: p.Label()}

		q, err := decodeProduct(p, codec)
		if err != nil {
			rr.Err = err
			out[i] = rr
			continue
		}

		rr.HasSizes = len(q) > 0
		rr.Result = Reconcile(q, p.Total)
		out[i] = rr
	}
	return out
}

// Mismatches filters results down to records that decoded but disagree with
// their declared totals.
func Mismatches(results []RecordResult) []RecordResult {
	var out []RecordResult
	for _, rr := range results {
		if rr.Mismatch() {
			out = append(out, rr)
		}
	}
	return out
}
