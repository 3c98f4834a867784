package check

import (
	"sort"

	"github.com/JonMunkholm/sizecat/internal/catalog"
	"github.com/JonMunkholm/sizecat/internal/core"
	"github.com/JonMunkholm/sizecat/internal/sizes"
)

// Diagnostic records a size field that failed to decode.
type Diagnostic struct {
	File  string
	Line  int
	Name  string
	Field string
	Code  string // Support code from core.MapError
	Err   error
}

// Report is the aggregate of size statistics over a set of records.
//
// Only raw counts are stored. Percentages are derived on demand, so partial
// reports from separate shards combine exactly with Merge.
type Report struct {
	Sizes        []sizes.Code // Vocabulary order for rendering
	Total        int
	WithSizes    int
	WithoutSizes int
	Tagged       int // Records whose description carries a size block
	PerSize      map[sizes.Code]int
	Categories   map[string]int
	Diagnostics  []Diagnostic
}

// NewReport returns an empty report for the codec's vocabulary.
func NewReport(codec *sizes.Codec) Report {
	return Report{
		Sizes:      codec.Sizes(),
		PerSize:    make(map[sizes.Code]int),
		Categories: make(map[string]int),
	}
}

// Aggregate reduces records into a Report.
//
// A record whose field fails to decode counts as without sizes, is left out
// of the per-size tallies, and adds a Diagnostic. Each record contributes
// independently, so the result does not depend on record order.
func Aggregate(records []catalog.Product, codec *sizes.Codec) Report {
	r := NewReport(codec)
	for _, p := range records {
		r.add(p, codec)
	}
	return r
}

func (r *Report) add(p catalog.Product, codec *sizes.Codec) {
	r.Total++
	r.Categories[p.Category]++
	if p.Tagged(codec) {
		r.Tagged++
	}

	q, err := decodeProduct(p, codec)
	if err != nil {
		r.WithoutSizes++
		field, _ := p.SizeField(codec)
		r.Diagnostics = append(r.Diagnostics, Diagnostic{
			File:  p.File,
			Line:  p.Line,
			Name:  p.Label(),
			Field: field,
			Code:  core.ErrorCode(err),
			Err:   err,
		})
		return
	}
	if len(q) == 0 {
		r.WithoutSizes++
		return
	}

	r.WithSizes++
	for code, qty := range q {
		if qty > 0 {
			r.PerSize[code]++
		}
	}
}

// decodeProduct returns p's breakdown. Products without size information
// yield an empty map and no error.
func decodeProduct(p catalog.Product, codec *sizes.Codec) (sizes.Quantities, error) {
	field, ok := p.SizeField(codec)
	if !ok {
		return sizes.Quantities{}, nil
	}
	return codec.Decode(field)
}

// Merge combines two partial reports by adding their counts.
// Diagnostics are ordered by file, then line.
func Merge(a, b Report) Report {
	out := Report{
		Sizes:        a.Sizes,
		Total:        a.Total + b.Total,
		WithSizes:    a.WithSizes + b.WithSizes,
		WithoutSizes: a.WithoutSizes + b.WithoutSizes,
		Tagged:       a.Tagged + b.Tagged,
		PerSize:      make(map[sizes.Code]int, len(a.PerSize)),
		Categories:   make(map[string]int, len(a.Categories)),
	}
	if out.Sizes == nil {
		out.Sizes = b.Sizes
	}
	for _, src := range []Report{a, b} {
		for code, n := range src.PerSize {
			out.PerSize[code] += n
		}
		for cat, n := range src.Categories {
			out.Categories[cat] += n
		}
	}
	out.Diagnostics = append(append([]Diagnostic(nil), a.Diagnostics...), b.Diagnostics...)
	sort.SliceStable(out.Diagnostics, func(i, j int) bool {
		di, dj := out.Diagnostics[i], out.Diagnostics[j]
		if di.File != dj.File {
			return di.File < dj.File
		}
		return di.Line < dj.Line
	})
	return out
}

// WithSizesPercent is the share of all records carrying size information.
func (r Report) WithSizesPercent() float64 {
	return percent(r.WithSizes, r.Total)
}

// WithoutSizesPercent is the share of all records without size information.
func (r Report) WithoutSizesPercent() float64 {
	return percent(r.WithoutSizes, r.Total)
}

// TaggedPercent is the share of all records carrying a size block.
func (r Report) TaggedPercent() float64 {
	return percent(r.Tagged, r.Total)
}

// SizePercent is the share of records with size information that stock
// code. The denominator is WithSizes, not Total.
func (r Report) SizePercent(code sizes.Code) float64 {
	return percent(r.PerSize[code], r.WithSizes)
}

// CategoryNames returns category names sorted by descending count, then name.
func (r Report) CategoryNames() []string {
	names := make([]string, 0, len(r.Categories))
	for name := range r.Categories {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		ci, cj := r.Categories[names[i]], r.Categories[names[j]]
		if ci != cj {
			return ci > cj
		}
		return names[i] < names[j]
	})
	return names
}

func percent(n, of int) float64 {
	if of == 0 {
		return 0
	}
	return float64(n) * 100 / float64(of)
}
