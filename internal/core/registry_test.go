package core

import (
	"reflect"
	"testing"
)

func TestBuiltinLayouts(t *testing.T) {
	all := All()
	keys := make([]string, len(all))
	for i, l := range all {
		keys[i] = l.Key
	}
	want := []string{LayoutColumns, LayoutDescribed, LayoutFlat}
	if !reflect.DeepEqual(keys, want) {
		t.Errorf("All() keys = %v, want %v", keys, want)
	}
}

func TestLayoutHeader(t *testing.T) {
	codes := []string{"S", "M", "L"}

	tests := []struct {
		key  string
		want []string
	}{
		{LayoutFlat, []string{"ID", "Name", "Category", "Price", "Stock", "Sizes"}},
		{LayoutDescribed, []string{"Name", "Category", "Price", "Quantity", "Description"}},
		{LayoutColumns, []string{"Name", "Category", "Price", "Size S", "Size M", "Size L", "Total", "Description"}},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			l, ok := Get(tt.key)
			if !ok {
				t.Fatalf("layout %q not registered", tt.key)
			}
			if got := l.Header(codes); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Header() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLayoutSpecs(t *testing.T) {
	l, _ := Get(LayoutColumns)
	for _, spec := range l.Specs([]string{"S"}) {
		switch spec.Name {
		case "Size S":
			if spec.Type != FieldInt || !spec.Required || !spec.AllowEmpty {
				t.Errorf("size column spec = %+v", spec)
			}
		case "Description":
			if spec.Required {
				t.Errorf("description should be optional")
			}
		}
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic on duplicate registration")
		}
	}()
	Register(Layout{Key: LayoutFlat})
}

func TestSizeSourceString(t *testing.T) {
	if SizesInDescription.String() != "description" {
		t.Errorf("String() = %q", SizesInDescription.String())
	}
	if SizeSource(99).String() != "unknown" {
		t.Errorf("String() = %q", SizeSource(99).String())
	}
}
