package entity

import (
	"reflect"
	"slices"

	"github.com/pkg/errors"
)

// Column describes one grid column over rows of type T.
// Field names a field of T, Render computes the cell instead when set.
type Column[T any] struct {
	Header string
	Field  string
	Width  int
	Render func(row T) string
}

// Cell returns the cell text for a row.
func (col Column[T]) Cell(row T) string {

	if col.Render != nil {
		return col.Render(row)
	}

	val, _ := Lookup(row, col.Field)
	return val.String()
}

// CheckColumns errors when a column neither renders nor names a field of T.
func CheckColumns[T any](columns []Column[T]) (err error) {

	names, known := FieldNames(reflect.TypeFor[T]())

	for _, col := range columns {
		if col.Render != nil {
			continue
		}
		if col.Field == "" {
			err = errors.Errorf("column %q has neither field nor render", col.Header)
			return
		}
		if known && !slices.Contains(names, col.Field) {
			err = errors.Errorf("column %q: no field %q on %s", col.Header, col.Field, reflect.TypeFor[T]())
			return
		}
	}
	return
}

// Layout overrides the presentation of a column, matched by header.
type Layout struct {
	Header string `yaml:"header"`
	Width  int    `yaml:"width,omitempty"`
	Hidden bool   `yaml:"hidden,omitempty"`
}

// ApplyLayout returns columns with widths and visibility overridden.
func ApplyLayout[T any](columns []Column[T], layouts []Layout) []Column[T] {

	if len(layouts) == 0 {
		return columns
	}

	byHeader := map[string]Layout{}
	for _, lo := range layouts {
		byHeader[lo.Header] = lo
	}

	out := make([]Column[T], 0, len(columns))
	for _, col := range columns {
		lo, ok := byHeader[col.Header]
		if ok && lo.Hidden {
			continue
		}
		if ok && lo.Width > 0 {
			col.Width = lo.Width
		}
		out = append(out, col)
	}
	return out
}
