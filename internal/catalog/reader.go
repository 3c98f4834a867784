package catalog

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/JonMunkholm/sizecat/internal/core"
	"github.com/JonMunkholm/sizecat/internal/sizes"
)

// ContextCheckInterval is how often (in rows) Read checks for cancellation.
var ContextCheckInterval = 100

// headerScanRows bounds how far Read looks for the header row.
const headerScanRows = 10

// ErrNoHeader is returned when no row carries the layout's required columns.
var ErrNoHeader = errors.New("no header row found")

// RowError describes a row rejected by validation.
type RowError struct {
	File   string
	Line   int
	Reason string
	Data   []string
}

func (e RowError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("%s line %d: %s", e.File, e.Line, e.Reason)
	}
	return fmt.Sprintf("line %d: %s", e.Line, e.Reason)
}

// ReadResult holds the products accepted from a file and the rows rejected.
type ReadResult struct {
	Layout   core.Layout
	Header   []string
	Products []Product
	Rejected []RowError
}

// ReadOptions tunes how cells are interpreted.
type ReadOptions struct {
	// File names the source in products and row errors.
	File string

	// MissingMarkers are cell values meaning "no value", compared
	// case-insensitively. Empty cells are always missing.
	MissingMarkers []string
}

func (o ReadOptions) missing(cell string) bool {
	if cell == "" {
		return true
	}
	for _, m := range o.MissingMarkers {
		if strings.EqualFold(cell, m) {
			return true
		}
	}
	return false
}

// Read parses a catalog file in the given layout.
//
// Rows failing validation are collected in Rejected and never abort the read.
// Size fields are not decoded here; see package check.
func Read(ctx context.Context, r io.Reader, layout core.Layout, codec *sizes.Codec, opts ReadOptions) (*ReadResult, error) {
	cr := csv.NewReader(core.WrapForStreaming(r))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("empty file")
	}

	codes := codeStrings(codec)
	specs := layout.Specs(codes)

	headerRow := core.FindHeaderRow(records, specs, headerScanRows)
	if headerRow < 0 {
		_, herr := core.ValidateHeaders(records[0], specs)
		return nil, fmt.Errorf("%w for layout %q: %v", ErrNoHeader, layout.Key, herr)
	}

	header := records[headerRow]
	idx := core.MakeHeaderIndex(header)
	validator := core.NewRowValidator(specs, idx)

	result := &ReadResult{Layout: layout, Header: header}
	for i, row := range records[headerRow+1:] {
		line := headerRow + i + 2

		if i%ContextCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("read cancelled at line %d: %w", line, err)
			}
		}

		if core.IsEmptyRow(row) {
			continue
		}

		if res := validator.ValidateRow(row); !res.Valid {
			reasons := make([]string, len(res.Errors))
			for j, e := range res.Errors {
				reasons[j] = e.Error()
			}
			result.Rejected = append(result.Rejected, RowError{
				File:   opts.File,
				Line:   line,
				Reason: strings.Join(reasons, "; "),
				Data:   row,
			})
			continue
		}

		p, err := buildProduct(row, idx, layout, codec, opts)
		if err != nil {
			result.Rejected = append(result.Rejected, RowError{File: opts.File, Line: line, Reason: err.Error(), Data: row})
			continue
		}
		p.File = opts.File
		p.Line = line
		p.Raw = row
		result.Products = append(result.Products, p)
	}

	return result, nil
}

func buildProduct(row []string, idx core.HeaderIndex, layout core.Layout, codec *sizes.Codec, opts ReadOptions) (Product, error) {
	c := layout.Columns
	p := Product{
		ID:          idx.Cell(row, c.ID),
		Name:        idx.Cell(row, c.Name),
		Category:    idx.Cell(row, c.Category),
		Description: idx.Cell(row, c.Description),
		Source:      layout.Source,
	}

	price, err := core.ParsePrice(idx.Cell(row, c.Price))
	if err != nil {
		return Product{}, err
	}
	p.Price = price

	total, err := core.ParseCount(idx.Cell(row, c.Total))
	if err != nil {
		return Product{}, err
	}
	p.Total = total

	switch layout.Source {
	case core.SizesInColumn:
		p.SizeCell = idx.Cell(row, c.Sizes)
		p.SizeMissing = opts.missing(p.SizeCell)
	case core.SizesPerColumn:
		for _, code := range codec.Sizes() {
			cell := idx.Cell(row, layout.SizeColumn(string(code)))
			if opts.missing(cell) {
				continue
			}
			qty, err := core.ParseCount(cell)
			if err != nil {
				return Product{}, fmt.Errorf("%s: %w", layout.SizeColumn(string(code)), err)
			}
			if p.Columns == nil {
				p.Columns = make(sizes.Quantities)
			}
			p.Columns[code] = qty
		}
	}

	return p, nil
}

func codeStrings(codec *sizes.Codec) []string {
	codes := codec.Sizes()
	out := make([]string, len(codes))
	for i, c := range codes {
		out[i] = string(c)
	}
	return out
}
