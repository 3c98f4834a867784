package report

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/JonMunkholm/sizecat/internal/catalog"
	"github.com/JonMunkholm/sizecat/internal/check"
	"github.com/JonMunkholm/sizecat/internal/sizes"
)

// WriteAnnotated writes every flagged row as CSV with a leading Status column.
// A row is flagged when the record source rejected it, its size field failed
// to decode, or its breakdown disagrees with its declared total. Reports the
// number of rows written.
func WriteAnnotated(w io.Writer, read *catalog.ReadResult, results []check.RecordResult, codec *sizes.Codec) (int, error) {
	cw := csv.NewWriter(w)

	header := append([]string{"Status", "Line"}, read.Header...)
	if err := cw.Write(header); err != nil {
		return 0, fmt.Errorf("writing header: %w", err)
	}

	written := 0
	for _, rej := range read.Rejected {
		if err := cw.Write(annotate("rejected: "+rej.Reason, rej.Line, rej.Data)); err != nil {
			return written, err
		}
		written++
	}

	byLine := make(map[int]check.RecordResult, len(results))
	for _, rr := range results {
		byLine[rr.Line] = rr
	}

	for _, p := range read.Products {
		rr, ok := byLine[p.Line]
		if !ok {
			continue
		}

		var status string
		switch {
		case rr.Err != nil:
			status = "malformed sizes: " + rr.Err.Error()
		case rr.Mismatch():
			status = "mismatch: " + rr.Result.Warning().String()
		default:
			continue
		}

		row := p.Raw
		if row == nil {
			row = catalog.Row(p, read.Layout, read.Header, codec)
		}
		if err := cw.Write(annotate(status, p.Line, row)); err != nil {
			return written, err
		}
		written++
	}

	cw.Flush()
	return written, cw.Error()
}

func annotate(status string, line int, data []string) []string {
	return append([]string{status, fmt.Sprint(line)}, data...)
}
