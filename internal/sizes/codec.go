// Package sizes encodes per-size stock counts for a product.
//
// A breakdown travels in one of two textual forms:
//
//   - a flat field, "S:5,M:8,L:10,XL:7", stored in its own column
//   - an embedded block, "[SIZES]S:5,M:8,L:10,XL:7[/SIZES]", appended to a
//     free-text description after a blank line
//
// Both forms are driven by a Codec, which carries the ordered size vocabulary
// and the sentinel/marker literals. Catalog variants differ in vocabulary
// (4-size vs 5-size), so nothing here hard-codes one.
package sizes

import (
	"fmt"
	"strings"
)

// Code is a size label such as "S" or "2XL".
type Code string

// Quantities maps a size to its stock count. Absent sizes are zero.
// An empty map means no breakdown is available.
type Quantities map[Code]int

// Defaults used when a profile does not override them.
const (
	DefaultNoInfo   = "No information"
	DefaultOpenTag  = "[SIZES]"
	DefaultCloseTag = "[/SIZES]"

	// NoInfoVietnamese is the sentinel in Vietnamese-language exports.
	NoInfoVietnamese = "Không có thông tin"
)

// Standard vocabularies seen in the catalog variants.
var (
	FourSizes = []Code{"S", "M", "L", "XL"}
	FiveSizes = []Code{"S", "M", "L", "XL", "2XL"}
)

// Options configures a Codec.
type Options struct {
	Sizes    []Code // Ordered vocabulary
	NoInfo   string // Sentinel meaning "no size information"
	OpenTag  string // Block start marker
	CloseTag string // Block end marker
}

// Codec converts Quantities to and from their textual forms.
// A Codec is immutable after construction and safe to share.
type Codec struct {
	sizes    []Code
	index    map[Code]int
	noInfo   string
	openTag  string
	closeTag string
	blocks   blockMatcher
}

// NewCodec validates opts and builds a Codec.
// Empty sentinel and marker fields fall back to the package defaults.
func NewCodec(opts Options) (*Codec, error) {
	if len(opts.Sizes) == 0 {
		return nil, fmt.Errorf("size vocabulary is empty")
	}

	c := &Codec{
		sizes:    make([]Code, len(opts.Sizes)),
		index:    make(map[Code]int, len(opts.Sizes)),
		noInfo:   opts.NoInfo,
		openTag:  opts.OpenTag,
		closeTag: opts.CloseTag,
	}
	if c.noInfo == "" {
		c.noInfo = DefaultNoInfo
	}
	if c.openTag == "" {
		c.openTag = DefaultOpenTag
	}
	if c.closeTag == "" {
		c.closeTag = DefaultCloseTag
	}
	if c.openTag == c.closeTag {
		return nil, fmt.Errorf("open and close markers must differ (both %q)", c.openTag)
	}

	for i, code := range opts.Sizes {
		if code == "" {
			return nil, fmt.Errorf("size %d is empty", i+1)
		}
		if strings.ContainsAny(string(code), ":, \t\r\n") {
			return nil, fmt.Errorf("size %q contains a separator or whitespace", code)
		}
		if _, dup := c.index[code]; dup {
			return nil, fmt.Errorf("size %q listed twice", code)
		}
		c.index[code] = i
		c.sizes[i] = code
	}

	c.blocks = newBlockMatcher(c.openTag, c.closeTag)
	return c, nil
}

// MustCodec is NewCodec for static vocabularies; it panics on error.
func MustCodec(opts Options) *Codec {
	c, err := NewCodec(opts)
	if err != nil {
		panic(fmt.Sprintf("sizes: %v", err))
	}
	return c
}

// Sizes returns a copy of the vocabulary in order.
func (c *Codec) Sizes() []Code {
	out := make([]Code, len(c.sizes))
	copy(out, c.sizes)
	return out
}

// NoInfo returns the sentinel string.
func (c *Codec) NoInfo() string { return c.noInfo }

// Markers returns the block start and end markers.
func (c *Codec) Markers() (open, close string) { return c.openTag, c.closeTag }

// Known reports whether code is in the vocabulary.
func (c *Codec) Known(code Code) bool {
	_, ok := c.index[code]
	return ok
}

// Encode writes q as a flat field in vocabulary order.
//
// With omitZero, zero-quantity sizes are dropped. An empty map, or one whose
// entries are all dropped, encodes to the sentinel. Keys outside the
// vocabulary are not written.
func (c *Codec) Encode(q Quantities, omitZero bool) string {
	if len(q) == 0 {
		return c.noInfo
	}
	s := c.join(q, omitZero)
	if s == "" {
		return c.noInfo
	}
	return s
}

func (c *Codec) join(q Quantities, omitZero bool) string {
	var b strings.Builder
	for _, code := range c.sizes {
		qty := q[code]
		if omitZero && qty == 0 {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, "%s:%d", code, qty)
	}
	return b.String()
}

// Decode parses a flat field. The sentinel decodes to an empty map.
//
// The returned map holds only the sizes present in field; callers must treat
// absent sizes as zero. Any malformed input yields a *FormatError.
func (c *Codec) Decode(field string) (Quantities, error) {
	field = strings.TrimSpace(field)
	if field == c.noInfo {
		return Quantities{}, nil
	}
	if field == "" {
		return nil, &FormatError{Field: field, Reason: "empty field"}
	}

	entries := strings.Split(field, ",")
	q := make(Quantities, len(entries))
	for i, entry := range entries {
		code, qty, kind, err := c.parseEntry(entry)
		if err != nil {
			return nil, &FormatError{Field: field, Entry: i + 1, Kind: kind, Reason: err.Error()}
		}
		if _, dup := q[code]; dup {
			return nil, &FormatError{Field: field, Entry: i + 1, Kind: Repeated, Reason: fmt.Sprintf("size %q repeated", code)}
		}
		q[code] = qty
	}
	return q, nil
}

func (c *Codec) parseEntry(entry string) (Code, int, Kind, error) {
	entry = strings.TrimSpace(entry)
	if entry == "" {
		return "", 0, Malformed, fmt.Errorf("empty entry")
	}

	name, num, ok := strings.Cut(entry, ":")
	if !ok {
		return "", 0, Malformed, fmt.Errorf("entry %q is not SIZE:QTY", entry)
	}

	code := Code(strings.TrimSpace(name))
	if !c.Known(code) {
		return "", 0, UnknownSize, fmt.Errorf("unknown size %q", code)
	}

	qty, err := parseQuantity(strings.TrimSpace(num))
	if err != nil {
		return "", 0, BadQuantity, fmt.Errorf("size %s: %w", code, err)
	}
	return code, qty, Malformed, nil
}

// parseQuantity accepts only unsigned decimal digits.
func parseQuantity(s string) (int, error) {
	if s == "" {
		return 0, fmt.Errorf("missing quantity")
	}
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("quantity %q is not a non-negative integer", s)
		}
		if n > (maxQuantity-int(r-'0'))/10 {
			return 0, fmt.Errorf("quantity %q out of range", s)
		}
		n = n*10 + int(r-'0')
	}
	return n, nil
}

const maxQuantity = 1<<31 - 1

// Normalize returns a vocabulary-complete copy of q with absent sizes set
// to zero. Keys outside the vocabulary are dropped.
func (c *Codec) Normalize(q Quantities) Quantities {
	out := make(Quantities, len(c.sizes))
	for _, code := range c.sizes {
		out[code] = q[code]
	}
	return out
}

// Equal compares two maps with absent sizes treated as zero.
func (c *Codec) Equal(a, b Quantities) bool {
	for _, code := range c.sizes {
		if a[code] != b[code] {
			return false
		}
	}
	return true
}

// Sum returns the total quantity across all sizes in q.
func Sum(q Quantities) int {
	total := 0
	for _, qty := range q {
		total += qty
	}
	return total
}
