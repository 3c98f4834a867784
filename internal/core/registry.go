package core

import (
	"fmt"
	"sort"
	"sync"
)

var (
	registry   = make(map[string]Layout)
	registryMu sync.RWMutex
)

// Built-in layout keys.
const (
	LayoutFlat      = "flat"
	LayoutDescribed = "described"
	LayoutColumns   = "columns"
)

func init() {
	Register(Layout{
		Key:    LayoutFlat,
		Label:  "Import sheet with a size column",
		Source: SizesInColumn,
		Columns: Columns{
			ID:       "ID",
			Name:     "Name",
			Category: "Category",
			Price:    "Price",
			Total:    "Stock",
			Sizes:    "Sizes",
		},
	})
	Register(Layout{
		Key:    LayoutDescribed,
		Label:  "Catalog with sizes in the description",
		Source: SizesInDescription,
		Columns: Columns{
			Name:        "Name",
			Category:    "Category",
			Price:       "Price",
			Total:       "Quantity",
			Description: "Description",
		},
	})
	Register(Layout{
		Key:    LayoutColumns,
		Label:  "Template with one column per size",
		Source: SizesPerColumn,
		Columns: Columns{
			Name:        "Name",
			Category:    "Category",
			Price:       "Price",
			Total:       "Total",
			Description: "Description",
			SizePrefix:  "Size ",
		},
	})
}

// Register adds a layout to the registry.
// Panics if a layout with the same key is already registered.
func Register(l Layout) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if _, exists := registry[l.Key]; exists {
		panic(fmt.Sprintf("layout already registered: %s", l.Key))
	}
	registry[l.Key] = l
}

// Get returns a layout by key.
func Get(key string) (Layout, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	l, ok := registry[key]
	return l, ok
}

// All returns all registered layouts sorted by key.
func All() []Layout {
	registryMu.RLock()
	defer registryMu.RUnlock()

	result := make([]Layout, 0, len(registry))
	for _, l := range registry {
		result = append(result, l)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Key < result[j].Key
	})
	return result
}

// Header returns the column headers of l in write order.
// codes is the size vocabulary, used only by per-size layouts.
func (l Layout) Header(codes []string) []string {
	specs := l.Specs(codes)
	header := make([]string, len(specs))
	for i, spec := range specs {
		header[i] = spec.Name
	}
	return header
}

// Specs returns the field specifications of l.
//
// The size column allows empty cells: the record source treats an empty cell
// as missing size information, not as a malformed field.
func (l Layout) Specs(codes []string) []FieldSpec {
	c := l.Columns
	var specs []FieldSpec
	add := func(name string, ft FieldType, required, allowEmpty bool) {
		if name != "" {
			specs = append(specs, FieldSpec{Name: name, Type: ft, Required: required, AllowEmpty: allowEmpty})
		}
	}

	add(c.ID, FieldText, false, true)
	add(c.Name, FieldText, true, false)
	add(c.Category, FieldText, true, false)
	add(c.Price, FieldNumeric, true, false)

	if l.Source == SizesPerColumn {
		for _, code := range codes {
			add(l.SizeColumn(code), FieldInt, true, true)
		}
	}

	add(c.Total, FieldInt, true, false)

	if l.Source == SizesInColumn {
		add(c.Sizes, FieldSizes, true, true)
	}

	add(c.Description, FieldText, false, true)
	return specs
}
