// Package catalog reads and writes product catalogs as CSV.
//
// A Product carries exactly one size representation, chosen by its layout:
// an encoded field in its own column, a block embedded in the description,
// or one quantity column per size.
package catalog

import (
	"github.com/shopspring/decimal"

	"github.com/JonMunkholm/sizecat/internal/core"
	"github.com/JonMunkholm/sizecat/internal/sizes"
)

// Product is one catalog row. Products are values; readers and checkers
// never mutate them.
type Product struct {
	File        string // Source file name, empty for generated products
	Line        int    // 1-based source line, 0 for generated products
	ID          string
	Name        string
	Category    string
	Price       decimal.Decimal
	Total       int // Declared total quantity
	Description string

	Source core.SizeSource

	// SizeCell is the encoded field for SizesInColumn.
	SizeCell string
	// SizeMissing is set when the record source saw no value for SizeCell.
	SizeMissing bool
	// Columns holds per-size quantities for SizesPerColumn.
	Columns sizes.Quantities

	// Raw is the source row as read, nil for generated products.
	Raw []string
}

// SizeField returns the product's encoded size field.
//
// It reports false when the product carries no size information: a missing
// cell, an absent block, or a per-size layout with no columns. Absence is a
// valid state, so decoding errors are left to the caller.
func (p Product) SizeField(c *sizes.Codec) (string, bool) {
	switch p.Source {
	case core.SizesInColumn:
		if p.SizeMissing {
			return "", false
		}
		return p.SizeCell, true
	case core.SizesInDescription:
		return c.Extract(p.Description)
	case core.SizesPerColumn:
		if p.Columns == nil {
			return "", false
		}
		return c.Encode(p.Columns, false), true
	default:
		return "", false
	}
}

// Tagged reports whether the description carries a size block.
func (p Product) Tagged(c *sizes.Codec) bool {
	return c.HasBlock(p.Description)
}

// Label names the product for diagnostics.
func (p Product) Label() string {
	if p.Name != "" {
		return p.Name
	}
	return p.ID
}
