package core

// FieldType represents the expected data type for a catalog column.
type FieldType int

const (
	FieldText FieldType = iota
	FieldNumeric
	FieldInt
	FieldSizes
)

// FieldSpec defines validation rules for a single column.
type FieldSpec struct {
	Name       string              // Column header name
	Type       FieldType           // Expected data type
	Required   bool                // Column must exist in the header
	AllowEmpty bool                // If true, empty values are allowed even when Required
	Normalizer func(string) string // Optional transformation function
}

// HeaderIndex maps column names (lowercase) to their position in a row.
type HeaderIndex map[string]int

// SizeSource says where a layout keeps its size breakdown.
type SizeSource int

const (
	// SizesInColumn keeps an encoded field in its own column.
	SizesInColumn SizeSource = iota
	// SizesInDescription embeds a marker-wrapped block in the description.
	SizesInDescription
	// SizesPerColumn spreads quantities over one column per size.
	SizesPerColumn
)

func (s SizeSource) String() string {
	switch s {
	case SizesInColumn:
		return "column"
	case SizesInDescription:
		return "description"
	case SizesPerColumn:
		return "per-size columns"
	default:
		return "unknown"
	}
}

// Columns names the columns a layout maps onto product fields.
// An empty name means the layout has no such column.
type Columns struct {
	ID          string
	Name        string
	Category    string
	Price       string
	Total       string
	Sizes       string // SizesInColumn only
	Description string
	SizePrefix  string // SizesPerColumn: header is SizePrefix + code
}

// Layout describes one catalog file shape.
type Layout struct {
	Key     string // Unique identifier: "flat"
	Label   string // Display name
	Source  SizeSource
	Columns Columns
}

// SizeColumn returns the header of the per-size column for code.
func (l Layout) SizeColumn(code string) string {
	return l.Columns.SizePrefix + code
}
