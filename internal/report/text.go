// Package report renders aggregate reports and reconciliation results.
package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/JonMunkholm/sizecat/internal/check"
)

// Options controls what a report includes.
type Options struct {
	Title          string
	RunID          string
	MaxDiagnostics int // 0 means unlimited
	Rejected       int // Rows the record source rejected before checking
}

// Text writes a human-readable report to w.
func Text(w io.Writer, r check.Report, results []check.RecordResult, opts Options) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	p := func(format string, args ...any) {
		fmt.Fprintf(tw, format, args...)
	}

	if opts.Title != "" {
		p("%s\n", opts.Title)
	}
	if opts.RunID != "" {
		p("Run:\t%s\n", opts.RunID)
	}
	p("Products:\t%d\n", r.Total)
	if opts.Rejected > 0 {
		p("Rejected rows:\t%d\n", opts.Rejected)
	}
	p("With size information:\t%d\t(%.1f%%)\n", r.WithSizes, r.WithSizesPercent())
	p("Without size information:\t%d\t(%.1f%%)\n", r.WithoutSizes, r.WithoutSizesPercent())
	p("With size block in description:\t%d\t(%.1f%%)\n", r.Tagged, r.TaggedPercent())

	p("\nSize\tProducts\tOf products with sizes\n")
	for _, code := range r.Sizes {
		p("%s\t%d\t%.1f%%\n", code, r.PerSize[code], r.SizePercent(code))
	}

	if len(r.Categories) > 0 {
		p("\nCategory\tProducts\n")
		for _, name := range r.CategoryNames() {
			p("%s\t%d\n", name, r.Categories[name])
		}
	}

	mismatches := check.Mismatches(results)
	p("\nTotals reconciled:\t%d\n", len(results)-len(mismatches)-countErrors(results))
	p("Total mismatches:\t%d\n", len(mismatches))
	for _, rr := range limit(mismatches, opts.MaxDiagnostics) {
		p("  %s\t%s\t%s\n", location(rr.File, rr.Line), rr.Name, rr.Result.Warning())
	}

	p("\nMalformed size fields:\t%d\n", len(r.Diagnostics))
	for _, d := range limit(r.Diagnostics, opts.MaxDiagnostics) {
		p("  %s\t%s\t[%s] %v\n", location(d.File, d.Line), d.Name, d.Code, d.Err)
	}

	return tw.Flush()
}

// location names a record as "line 4" or "a.csv line 4".
func location(file string, line int) string {
	if file == "" {
		return fmt.Sprintf("line %d", line)
	}
	return fmt.Sprintf("%s line %d", file, line)
}

func countErrors(results []check.RecordResult) int {
	n := 0
	for _, rr := range results {
		if rr.Err != nil {
			n++
		}
	}
	return n
}

func limit[T any](items []T, max int) []T {
	if max > 0 && len(items) > max {
		return items[:max]
	}
	return items
}
