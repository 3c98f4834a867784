// Package check cross-checks decoded size breakdowns against declared totals
// and aggregates size statistics over a catalog.
//
// Nothing here mutates the records it reads. Decode failures and mismatches
// are reported as values; no condition in this package aborts a batch.
package check

import (
	"fmt"

	"github.com/JonMunkholm/sizecat/internal/sizes"
)

// Result is the outcome of reconciling one breakdown with its declared total.
type Result struct {
	OK       bool
	Expected int // The declared total
	Actual   int // Sum of the breakdown
}

// MismatchWarning describes well-formed data whose sum disagrees with its
// declared total. It is a reporting signal, not an error.
type MismatchWarning struct {
	Expected int
	Actual   int
}

func (w MismatchWarning) String() string {
	return fmt.Sprintf("size quantities sum to %d, declared total is %d", w.Actual, w.Expected)
}

// Warning returns the mismatch carried by r, or nil when r is OK.
func (r Result) Warning() *MismatchWarning {
	if r.OK {
		return nil
	}
	return &MismatchWarning{Expected: r.Expected, Actual: r.Actual}
}

// Reconcile compares the sum of q with declared.
//
// An empty breakdown has nothing to cross-check and is always OK.
// Absent sizes count as zero.
func Reconcile(q sizes.Quantities, declared int) Result {
	actual := sizes.Sum(q)
	if len(q) == 0 {
		return Result{OK: true, Expected: declared, Actual: actual}
	}
	return Result{
		OK:       actual == declared,
		Expected: declared,
		Actual:   actual,
	}
}
