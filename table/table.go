// Package table is the generic presentation shell shared by every resource screen.
//
// A Table owns its query box, pager, selection and the two creation dialogs,
// but knows nothing of the resource behind its rows: columns, rows and the
// variant are handed in by the caller.
package table

import (
	"context"

	"github.com/pkg/errors"

	"dasbor/board/piece"
	nt "dasbor/entity"
	"dasbor/filter"
	"dasbor/form"
	"dasbor/pager"
	"dasbor/submit"
	"dasbor/variant"
)

type focus int

const (
	focusGrid focus = iota
	focusSearch
	focusDialog
)

// Config is the configurable fields of Table.
type Config[T any] struct {
	// Owner names the rows' source, echoed in RefetchMsg.
	Owner    string
	Columns  []nt.Column[T]
	Rows     []T
	Variant  variant.Variant
	PageSize int
}

// Table displays rows through the filter and pager, and hosts creation dialogs.
type Table[T any] struct {
	owner   string
	columns []nt.Column[T]
	rows    []T

	query    string
	search   piece.TextInput
	pager    pager.Pager
	selected int
	focus    focus

	entity submit.Dialog
	image  submit.Dialog
	active variant.Dialog
	form   form.Form

	width  int
	height int

	ctx    context.Context
	poster submit.Poster
	logger nt.Logger
}

// New creates a Table from Config.
func (cfg Config[T]) New(ctx context.Context, poster submit.Poster, lgr nt.Logger) (tbl Table[T], err error) {

	err = nt.CheckColumns(cfg.Columns)
	if err != nil {
		err = errors.Wrapf(err, "failed to check columns for %s", cfg.Owner)
		return
	}

	entity, err := submit.New(variant.EntityDialog, cfg.Variant)
	if err != nil {
		return
	}
	image, err := submit.New(variant.ImageDialog, cfg.Variant)
	if err != nil {
		return
	}

	tbl = Table[T]{
		owner:   cfg.Owner,
		columns: cfg.Columns,
		search:  piece.NewTextInput("", 200),
		pager:   pager.New(cfg.PageSize),
		entity:  entity,
		image:   image,
		ctx:     ctx,
		poster:  poster,
		logger:  lgr,
	}

	tbl = tbl.SetRows(cfg.Rows)
	return
}

// Owner returns the name echoed in refetch requests.
func (tbl Table[T]) Owner() string {
	return tbl.owner
}

// SetRows replaces the rows, keeping query and page where they still apply.
func (tbl Table[T]) SetRows(rows []T) Table[T] {

	tbl.rows = rows
	return tbl.sync()
}

// Rows returns every row handed in.
func (tbl Table[T]) Rows() []T {
	return tbl.rows
}

// Filtered returns the rows matching the query, before paging.
func (tbl Table[T]) Filtered() []T {
	return filter.Rows(tbl.rows, tbl.query)
}

// Page returns the rows on screen.
func (tbl Table[T]) Page() []T {
	return pager.Slice(tbl.pager, tbl.Filtered())
}

// Pager returns the paging state.
func (tbl Table[T]) Pager() pager.Pager {
	return tbl.pager
}

// Query returns the table's own search text.
func (tbl Table[T]) Query() string {
	return tbl.query
}

// SetQuery changes the search text, re-clamping the page.
func (tbl Table[T]) SetQuery(query string) Table[T] {

	tbl.query = query
	if tbl.search.Value() != query {
		tbl.search = piece.NewTextInput(query, 200)
	}
	return tbl.sync()
}

// NextPage moves forward a page, if there is one.
func (tbl Table[T]) NextPage() Table[T] {

	tbl.pager = tbl.pager.Next()
	return tbl.sync()
}

// PreviousPage moves back a page, if there is one.
func (tbl Table[T]) PreviousPage() Table[T] {

	tbl.pager = tbl.pager.Previous()
	return tbl.sync()
}

// SetPageSize changes the page width.
func (tbl Table[T]) SetPageSize(size int) (Table[T], error) {

	pgr, err := tbl.pager.SetSize(size)
	if err != nil {
		return tbl, err
	}

	tbl.pager = pgr
	return tbl.sync(), nil
}

// CyclePageSize steps through the offered page widths.
func (tbl Table[T]) CyclePageSize() Table[T] {

	tbl.pager = tbl.pager.CycleSize()
	return tbl.sync()
}

// Select moves the cursor to row idx of the current page.
func (tbl Table[T]) Select(idx int) Table[T] {

	tbl.selected = idx
	return tbl.sync()
}

// Selected returns the row under the cursor.
func (tbl Table[T]) Selected() (row T, ok bool) {

	page := tbl.Page()
	if tbl.selected < 0 || tbl.selected >= len(page) {
		return
	}
	return page[tbl.selected], true
}

// Dialog returns one of the creation dialogs.
func (tbl Table[T]) Dialog(kind variant.Dialog) submit.Dialog {

	if kind == variant.ImageDialog {
		return tbl.image
	}
	return tbl.entity
}

// Active returns the dialog on screen, if any.
func (tbl Table[T]) Active() variant.Dialog {
	return tbl.active
}

// OpenDialog shows a creation dialog with an empty draft.
// Dialogs the variant does not create through stay closed.
func (tbl Table[T]) OpenDialog(kind variant.Dialog) Table[T] {

	if tbl.active != variant.NoDialog {
		return tbl
	}

	dlg := tbl.Dialog(kind).Open()
	if !dlg.Visible() {
		return tbl
	}

	spec := dlg.Spec()
	tbl = tbl.setDialog(dlg)
	tbl.active = kind
	tbl.form = form.New(spec.Title, spec.Fields, nil)
	tbl.focus = focusDialog
	return tbl
}

// CloseDialog cancels the dialog on screen, abandoning any request in flight.
func (tbl Table[T]) CloseDialog() Table[T] {

	if tbl.active == variant.NoDialog {
		return tbl
	}

	tbl = tbl.setDialog(tbl.Dialog(tbl.active).Cancel())
	tbl.active = variant.NoDialog
	tbl.focus = focusGrid
	return tbl
}

// SetField types value into field of the open dialog.
func (tbl Table[T]) SetField(field, value string) Table[T] {

	if tbl.active == variant.NoDialog {
		return tbl
	}
	return tbl.setDialog(tbl.Dialog(tbl.active).Set(field, value))
}

// Capturing reports whether keys are going to a text box or dialog.
func (tbl Table[T]) Capturing() bool {
	return tbl.focus != focusGrid
}

// unexported

func (tbl Table[T]) setDialog(dlg submit.Dialog) Table[T] {

	if dlg.Kind() == variant.ImageDialog {
		tbl.image = dlg
	} else {
		tbl.entity = dlg
	}
	return tbl
}

func (tbl Table[T]) sync() Table[T] {

	count := len(tbl.Filtered())
	tbl.pager = tbl.pager.SetCount(count)

	lo, hi := tbl.pager.Bounds()
	tbl.selected = min(max(tbl.selected, 0), max(hi-lo-1, 0))
	return tbl
}
