package core

// convert.go provides conversion functions for catalog cells.
//
// These functions handle the messy reality of spreadsheet exports:
//   - Currency symbols and thousand separators in prices
//   - Excel formula prefixes (="value")
//   - Integer cells exported as "12.0"

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

// numericRegex validates that a string is a valid numeric format after cleanup.
// Matches integers, decimals, and scientific notation; group 3 is the exponent.
var numericRegex = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

// cleanNumber strips currency symbols, separators and the accounting
// "(123)" negative form.
func cleanNumber(s string) string {
	s = strings.TrimSpace(s)

	isNegative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		isNegative = true
		s = strings.TrimSpace(s[1 : len(s)-1])
	}

	s = strings.NewReplacer(
		"$", "",
		"€", "", // Euro
		"£", "", // Pound
		"₫", "", // Dong
		"VND", "",
		",", "",
		" ", "",
	).Replace(s)

	if isNegative {
		s = "-" + s
	}
	return s
}

// maxExponent bounds scientific notation in numeric cells.
const maxExponent = 1000

// ToPgNumeric converts a string to pgtype.Numeric.
// Returns invalid for empty or unparseable input.
//
// pgtype's text form has no exponent, so "1.5e3" scans the mantissa and
// folds the exponent into Numeric.Exp.
func ToPgNumeric(s string) pgtype.Numeric {
	s = cleanNumber(s)
	m := numericRegex.FindStringSubmatch(s)
	if m == nil {
		return pgtype.Numeric{Valid: false}
	}

	var n pgtype.Numeric
	if err := n.Scan(strings.TrimSuffix(s, m[3])); err != nil {
		return pgtype.Numeric{Valid: false}
	}
	if m[3] != "" {
		exp, err := strconv.Atoi(m[3][1:])
		if err != nil || exp > maxExponent || exp < -maxExponent {
			return pgtype.Numeric{Valid: false}
		}
		n.Exp += int32(exp)
	}
	return n
}

// ParsePrice converts a price cell to a decimal. It accepts exactly what
// ToPgNumeric accepts, minus negative values.
func ParsePrice(s string) (decimal.Decimal, error) {
	n := ToPgNumeric(s)
	if !n.Valid || n.Int == nil {
		return decimal.Zero, fmt.Errorf("invalid number %q", s)
	}
	d := decimal.NewFromBigInt(n.Int, n.Exp)
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("invalid number %q: negative price", s)
	}
	return d, nil
}

// ParseCount converts a quantity cell to a non-negative int.
// Spreadsheet exports often write integers as "12.0"; a zero fraction is accepted.
func ParseCount(s string) (int, error) {
	s = strings.TrimSpace(s)
	if whole, frac, ok := strings.Cut(s, "."); ok && strings.Trim(frac, "0") == "" {
		s = whole
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid count %q", s)
	}
	if n < 0 {
		return 0, fmt.Errorf("invalid count %q: negative", s)
	}
	return n, nil
}

// MakeHeaderIndex creates a HeaderIndex from a header row.
// Keys are lowercased for case-insensitive matching.
func MakeHeaderIndex(header []string) HeaderIndex {
	idx := make(HeaderIndex, len(header))
	for i, h := range header {
		key := strings.ToLower(CleanCell(h))
		if _, dup := idx[key]; !dup {
			idx[key] = i
		}
	}
	return idx
}

// Cell returns the cleaned value of the named column, or "" when the column
// is absent or the row is short.
func (h HeaderIndex) Cell(row []string, name string) string {
	pos, ok := h[strings.ToLower(name)]
	if !ok || pos >= len(row) {
		return ""
	}
	return CleanCell(row[pos])
}

// CleanCell removes common spreadsheet artifacts from a cell value:
// - Trims whitespace
// - Removes Excel formula prefix (="...")
// - Removes surrounding quotes
func CleanCell(s string) string {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "=\"") && strings.HasSuffix(s, "\"") {
		s = s[2 : len(s)-1]
	} else if strings.HasPrefix(s, "=") {
		s = s[1:]
	}

	return strings.TrimSpace(strings.Trim(s, `"'`))
}
