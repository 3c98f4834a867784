package sizes

import (
	"errors"
	"fmt"
)

// ErrFormat matches any *FormatError via errors.Is.
var ErrFormat = errors.New("malformed size field")

// Kind classifies what is wrong with a size field.
type Kind int

const (
	Malformed   Kind = iota // Not SIZE:QTY pairs joined by commas
	UnknownSize             // A code outside the vocabulary
	BadQuantity             // Missing, signed, fractional or oversized quantity
	Repeated                // The same code twice
)

// FormatError reports a size field that could not be decoded.
type FormatError struct {
	Field  string // The offending field, trimmed
	Entry  int    // 1-based entry position, 0 when the whole field is at fault
	Kind   Kind
	Reason string
}

func (e *FormatError) Error() string {
	if e.Entry > 0 {
		return fmt.Sprintf("malformed size field %q: entry %d: %s", e.Field, e.Entry, e.Reason)
	}
	return fmt.Sprintf("malformed size field %q: %s", e.Field, e.Reason)
}

func (e *FormatError) Is(target error) bool {
	return target == ErrFormat
}
