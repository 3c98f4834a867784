package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/JonMunkholm/sizecat/internal/core"
	"github.com/JonMunkholm/sizecat/internal/sizes"
)

// Write writes products as CSV in the given layout.
//
// Size fields are written as the products carry them; the zero-omission
// policy is decided when a product is built, not here.
func Write(w io.Writer, layout core.Layout, products []Product, codec *sizes.Codec) error {
	cw := csv.NewWriter(w)

	header := layout.Header(codeStrings(codec))
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, p := range products {
		if err := cw.Write(Row(p, layout, header, codec)); err != nil {
			return fmt.Errorf("writing product %d: %w", i+1, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// Row renders p as cells matching header.
func Row(p Product, layout core.Layout, header []string, codec *sizes.Codec) []string {
	c := layout.Columns
	values := map[string]string{
		c.ID:          p.ID,
		c.Name:        p.Name,
		c.Category:    p.Category,
		c.Price:       p.Price.String(),
		c.Total:       strconv.Itoa(p.Total),
		c.Description: p.Description,
	}

	switch layout.Source {
	case core.SizesInColumn:
		cell := p.SizeCell
		if p.SizeMissing {
			cell = codec.NoInfo()
		}
		values[c.Sizes] = cell
	case core.SizesPerColumn:
		if p.Columns == nil {
			break
		}
		for _, code := range codec.Sizes() {
			values[layout.SizeColumn(string(code))] = strconv.Itoa(p.Columns[code])
		}
	}

	row := make([]string, len(header))
	for i, h := range header {
		row[i] = values[h]
	}
	return row
}
