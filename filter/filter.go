// Package filter narrows rows by a free-text query.
package filter

import (
	"slices"
	"strings"

	nt "dasbor/entity"
)

// Rows returns the rows where any field contains query, case-insensitively.
// Order is preserved and an empty query passes every row.
func Rows[T any](rows []T, query string) []T {
	return RowsBy(rows, query)
}

// RowsBy is Rows restricted to the named fields.
// With no names given, every field is considered.
func RowsBy[T any](rows []T, query string, names ...string) []T {

	needle := strings.ToLower(query)
	if needle == "" {
		return rows
	}

	out := make([]T, 0, len(rows))
	for _, row := range rows {
		if match(row, needle, names) {
			out = append(out, row)
		}
	}
	return out
}

// Match reports whether any field of row contains query, case-insensitively.
func Match(row any, query string) bool {
	return match(row, strings.ToLower(query), nil)
}

// unexported

func match(row any, needle string, names []string) bool {

	if needle == "" {
		return true
	}

	for _, fld := range nt.Fields(row) {
		if len(names) > 0 && !slices.Contains(names, fld.Name) {
			continue
		}
		if strings.Contains(strings.ToLower(fld.Value.String()), needle) {
			return true
		}
	}
	return false
}
