package report

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/JonMunkholm/sizecat/internal/check"
)

// HTML returns a component rendering the report as a standalone page.
func HTML(r check.Report, results []check.RecordResult, opts Options) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		e := templ.EscapeString[string]

		title := opts.Title
		if title == "" {
			title = "Catalog size report"
		}

		b.WriteString("<!DOCTYPE html>\n<html><head><meta charset=\"utf-8\"><title>")
		b.WriteString(e(title))
		b.WriteString("</title></head><body>\n<h1>")
		b.WriteString(e(title))
		b.WriteString("</h1>\n")
		if opts.RunID != "" {
			fmt.Fprintf(&b, "<p class=\"run\">Run %s</p>\n", e(opts.RunID))
		}

		b.WriteString("<table class=\"summary\">\n")
		row(&b, "Products", fmt.Sprint(r.Total), "")
		if opts.Rejected > 0 {
			row(&b, "Rejected rows", fmt.Sprint(opts.Rejected), "")
		}
		row(&b, "With size information", fmt.Sprint(r.WithSizes), pct(r.WithSizesPercent()))
		row(&b, "Without size information", fmt.Sprint(r.WithoutSizes), pct(r.WithoutSizesPercent()))
		row(&b, "With size block in description", fmt.Sprint(r.Tagged), pct(r.TaggedPercent()))
		b.WriteString("</table>\n")

		b.WriteString("<h2>Sizes</h2>\n<table class=\"sizes\">\n<tr><th>Size</th><th>Products</th><th>Of products with sizes</th></tr>\n")
		for _, code := range r.Sizes {
			row(&b, string(code), fmt.Sprint(r.PerSize[code]), pct(r.SizePercent(code)))
		}
		b.WriteString("</table>\n")

		if len(r.Categories) > 0 {
			b.WriteString("<h2>Categories</h2>\n<table class=\"categories\">\n")
			for _, name := range r.CategoryNames() {
				row(&b, name, fmt.Sprint(r.Categories[name]), "")
			}
			b.WriteString("</table>\n")
		}

		mismatches := limit(check.Mismatches(results), opts.MaxDiagnostics)
		if len(mismatches) > 0 {
			b.WriteString("<h2>Total mismatches</h2>\n<ul class=\"mismatches\">\n")
			for _, rr := range mismatches {
				fmt.Fprintf(&b, "<li>%s, %s: %s</li>\n", e(location(rr.File, rr.Line)), e(rr.Name), e(rr.Result.Warning().String()))
			}
			b.WriteString("</ul>\n")
		}

		diags := limit(r.Diagnostics, opts.MaxDiagnostics)
		if len(diags) > 0 {
			b.WriteString("<h2>Malformed size fields</h2>\n<ul class=\"diagnostics\">\n")
			for _, d := range diags {
				fmt.Fprintf(&b, "<li>%s, %s: [%s] %s</li>\n", e(location(d.File, d.Line)), e(d.Name), e(d.Code), e(d.Err.Error()))
			}
			b.WriteString("</ul>\n")
		}

		b.WriteString("</body></html>\n")

		if err := ctx.Err(); err != nil {
			return err
		}
		_, err := io.WriteString(w, b.String())
		return err
	})
}

func row(b *strings.Builder, label, value, share string) {
	e := templ.EscapeString[string]
	fmt.Fprintf(b, "<tr><td>%s</td><td>%s</td><td>%s</td></tr>\n", e(label), e(value), e(share))
}

func pct(v float64) string {
	return fmt.Sprintf("%.1f%%", v)
}
