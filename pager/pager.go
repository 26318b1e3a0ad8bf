// Package pager windows an ordered sequence of rows into pages.
package pager

import (
	"slices"

	"github.com/pkg/errors"
)

// DefaultSize is the page width a fresh pager starts with.
const DefaultSize = 5

// Sizes are the page widths offered by the size selector.
var Sizes = []int{5, 10, 15}

// Pager tracks the current page over count rows.
// Its index always points at an existing page, the empty set having one empty page.
type Pager struct {
	index int
	size  int
	count int
}

// New creates a pager, falling back to DefaultSize for unsupported sizes.
func New(size int) Pager {

	if !slices.Contains(Sizes, size) {
		size = DefaultSize
	}
	return Pager{size: size}
}

// Index returns the zero-based current page.
func (pgr Pager) Index() int {
	return pgr.index
}

// Size returns the page width.
func (pgr Pager) Size() int {
	return pgr.size
}

// Count returns the number of rows being paged.
func (pgr Pager) Count() int {
	return pgr.count
}

// PageCount returns the number of pages, never less than one.
func (pgr Pager) PageCount() int {

	if pgr.count == 0 {
		return 1
	}
	return (pgr.count + pgr.size - 1) / pgr.size
}

// CanPrevious reports whether a previous page exists.
func (pgr Pager) CanPrevious() bool {
	return pgr.index > 0
}

// CanNext reports whether a next page exists.
func (pgr Pager) CanNext() bool {
	return pgr.index < pgr.PageCount()-1
}

// Next moves to the next page, staying put on the last.
func (pgr Pager) Next() Pager {

	if pgr.CanNext() {
		pgr.index++
	}
	return pgr
}

// Previous moves to the previous page, staying put on the first.
func (pgr Pager) Previous() Pager {

	if pgr.CanPrevious() {
		pgr.index--
	}
	return pgr
}

// Goto moves to index, clamped to existing pages.
func (pgr Pager) Goto(index int) Pager {

	pgr.index = index
	return pgr.clamp()
}

// SetCount updates the row count and re-clamps the index.
func (pgr Pager) SetCount(count int) Pager {

	pgr.count = max(count, 0)
	return pgr.clamp()
}

// SetSize changes the page width, keeping the first visible row on screen.
func (pgr Pager) SetSize(size int) (Pager, error) {

	if !slices.Contains(Sizes, size) {
		return pgr, errors.Errorf("unsupported page size %d", size)
	}

	first := pgr.index * pgr.size
	pgr.size = size
	pgr.index = first / size

	return pgr.clamp(), nil
}

// CycleSize steps to the next of Sizes, wrapping around.
func (pgr Pager) CycleSize() Pager {

	idx := slices.Index(Sizes, pgr.size)
	next := Sizes[(idx+1)%len(Sizes)]

	pgr, _ = pgr.SetSize(next)
	return pgr
}

// Bounds returns the half-open row range of the current page.
func (pgr Pager) Bounds() (lo, hi int) {

	lo = min(pgr.index*pgr.size, pgr.count)
	hi = min(lo+pgr.size, pgr.count)
	return
}

// Slice returns the rows on the current page.
// The pager is synced to len(rows) first, so a stale count cannot overrun.
func Slice[T any](pgr Pager, rows []T) []T {

	lo, hi := pgr.SetCount(len(rows)).Bounds()
	return rows[lo:hi]
}

// unexported

func (pgr Pager) clamp() Pager {

	last := pgr.PageCount() - 1
	pgr.index = min(max(pgr.index, 0), last)
	return pgr
}
