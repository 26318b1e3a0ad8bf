// Package page composes fetch, pre-filter, edit and delete around the table for one resource.
package page

import (
	"context"
	"fmt"
	"slices"

	tea "charm.land/bubbletea/v2"
	"github.com/pkg/errors"

	"dasbor/detail"
	"dasbor/edit"
	nt "dasbor/entity"
	"dasbor/filter"
	"dasbor/form"
	"dasbor/message"
	"dasbor/table"
	"dasbor/variant"
)

// Client is what a page needs from the api.
type Client interface {
	List(ctx context.Context, path string, out any) error
	Post(ctx context.Context, path string, pl nt.Payload) error
	Put(ctx context.Context, path string, pl nt.Payload) error
	PutJSON(ctx context.Context, path string, obj any) error
	Delete(ctx context.Context, path string) error
}

// EditStyle is how existing rows are edited, if at all.
type EditStyle int

const (
	NoEdit EditStyle = iota
	ModalEdit
	InlineEdit
)

// Options are the user-configurable bits of a page.
type Options struct {
	PageSize int
	Layouts  []nt.Layout
}

// Resource describes one REST collection and how its page behaves.
type Resource[T any] struct {
	Title   string
	Noun    string
	Path    string
	Columns []nt.Column[T]
	Variant variant.Variant
	Id      func(row T) int
	// Less orders rows after each fetch, leaving server order when nil.
	Less func(a, b T) int
	// SearchFields restricts the dashboard search to these fields.
	SearchFields []string
	Edit         EditStyle
	EditFields   []variant.Field
	Seed         func(row T) map[string]string
	Deletable    bool
}

type mode int

const (
	modeTable mode = iota
	modeDetail
	modeConfirm
	modeEdit
)

type fetchedMsg[T any] struct {
	owner string
	rows  []T
	err   error
}

type deletedMsg struct {
	owner string
	id    int
	err   error
}

// Page is a screen listing one resource.
type Page[T any] struct {
	res   Resource[T]
	spec  variant.Spec
	table table.Table[T]

	rows    []T
	search  string
	loading bool

	mode      mode
	detail    detail.Panel
	modal     edit.Modal
	inline    edit.Inline
	form      form.Form
	confirmId int

	width  int
	height int

	ctx    context.Context
	client Client
	logger nt.Logger
}

// New creates a page for the resource.
func (res Resource[T]) New(ctx context.Context, clnt Client, lgr nt.Logger, opt Options) (pg Page[T], err error) {

	if res.Id == nil {
		err = errors.Errorf("resource %s has no id accessor", res.Path)
		return
	}

	cfg := table.Config[T]{
		Owner:    res.Path,
		Columns:  nt.ApplyLayout(res.Columns, opt.Layouts),
		Variant:  res.Variant,
		PageSize: opt.PageSize,
	}
	tbl, err := cfg.New(ctx, clnt, lgr)
	if err != nil {
		err = errors.Wrapf(err, "failed to create table for %s", res.Title)
		return
	}

	pg = Page[T]{
		res:     res,
		table:   tbl,
		loading: true,
		ctx:     ctx,
		client:  clnt,
		logger:  lgr,
	}

	if !res.Variant.IsNone() {
		pg.spec, err = variant.Resolve(res.Variant)
		if err != nil {
			return
		}
	}

	if res.Edit == ModalEdit {
		pg.modal = edit.NewModal(fieldNames(pg.editFields())...)
	}
	return
}

// Title names the page for tabs.
func (pg Page[T]) Title() string {
	return pg.res.Title
}

// Capturing reports whether the page is taking text or modal input.
func (pg Page[T]) Capturing() bool {
	return pg.mode != modeTable || pg.table.Capturing()
}

// Table returns the page's table.
func (pg Page[T]) Table() table.Table[T] {
	return pg.table
}

// Rows returns every fetched row.
func (pg Page[T]) Rows() []T {
	return pg.rows
}

func (pg Page[T]) Init() tea.Cmd {
	return pg.fetch()
}

func (pg Page[T]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case fetchedMsg[T]:
		if msg.owner != pg.res.Path {
			return pg, nil
		}
		pg.loading = false
		if msg.err != nil {
			pg.logger.Error(pg.ctx, "failed to fetch", msg.err, "path", pg.res.Path)
			return pg, message.ErrorCmd(msg.err)
		}
		pg.rows = msg.rows
		pg.logger.Info(pg.ctx, "fetched", "path", pg.res.Path, "count", len(msg.rows))
		return pg.refilter(), nil

	case message.RefetchMsg:
		if msg.Owner == pg.res.Path {
			return pg, pg.fetch()
		}

	case message.SearchMsg:
		pg.search = msg.Query
		return pg.refilter(), nil

	case message.SizeMsg:
		pg.width = msg.Width
		pg.height = msg.Height
		pg.table, _ = pg.table.Update(msg)
		pg.detail, _ = pg.detail.Update(msg)

	case deletedMsg:
		return pg.deleted(msg)

	case edit.SavedMsg:
		return pg.saved(msg)

	case tea.PasteMsg:
		if pg.mode == modeEdit {
			return pg.editInput(msg)
		}
		var cmd tea.Cmd
		pg.table, cmd = pg.table.Update(msg)
		return pg, cmd

	case tea.KeyPressMsg:
		return pg.key(msg)

	default:
		// submission outcomes and anything else the table may want
		var cmd tea.Cmd
		pg.table, cmd = pg.table.Update(msg)
		return pg, cmd
	}

	return pg, nil
}

func (pg Page[T]) View() tea.View {
	return tea.NewView(pg.Render())
}

// unexported

func (pg Page[T]) key(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {

	switch pg.mode {
	case modeDetail:
		switch msg.String() {
		case "esc", "enter", "q":
			pg.mode = modeTable
			return pg, nil
		}
		pg.detail, _ = pg.detail.Update(msg)
		return pg, nil

	case modeConfirm:
		switch msg.String() {
		case "y":
			pg.mode = modeTable
			return pg, pg.delete(pg.confirmId)
		case "n", "esc":
			pg.mode = modeTable
		}
		return pg, nil

	case modeEdit:
		return pg.editKey(msg)
	}

	if pg.table.Capturing() {
		var cmd tea.Cmd
		pg.table, cmd = pg.table.Update(msg)
		return pg, cmd
	}

	switch msg.String() {
	case "r":
		return pg, pg.fetch()

	case "enter":
		row, ok := pg.table.Selected()
		if ok {
			pg.detail = pg.detail.Show(fmt.Sprintf("%s #%d", pg.res.Noun, pg.res.Id(row)), row)
			pg.mode = modeDetail
		}
		return pg, nil

	case "d":
		row, ok := pg.table.Selected()
		if ok && pg.res.Deletable {
			pg.confirmId = pg.res.Id(row)
			pg.mode = modeConfirm
		}
		return pg, nil

	case "e":
		row, ok := pg.table.Selected()
		if ok {
			return pg.beginEdit(row)
		}
		return pg, nil
	}

	var cmd tea.Cmd
	pg.table, cmd = pg.table.Update(msg)
	return pg, cmd
}

func (pg Page[T]) fetch() tea.Cmd {

	ctx := pg.ctx
	clnt := pg.client
	path := pg.res.Path
	less := pg.res.Less

	return func() tea.Msg {
		var rows []T
		err := clnt.List(ctx, path, &rows)
		if err != nil {
			return fetchedMsg[T]{owner: path, err: errors.Wrapf(err, "failed to fetch %s", path)}
		}

		if less != nil {
			slices.SortStableFunc(rows, less)
		}
		return fetchedMsg[T]{owner: path, rows: rows}
	}
}

func (pg Page[T]) delete(id int) tea.Cmd {

	ctx := pg.ctx
	clnt := pg.client
	owner := pg.res.Path

	return func() tea.Msg {
		err := clnt.Delete(ctx, fmt.Sprintf("%s/%d", owner, id))
		return deletedMsg{owner: owner, id: id, err: err}
	}
}

func (pg Page[T]) deleted(msg deletedMsg) (tea.Model, tea.Cmd) {

	if msg.owner != pg.res.Path {
		return pg, nil
	}

	if msg.err != nil {
		pg.logger.Error(pg.ctx, "failed to delete", msg.err, "path", pg.res.Path, "id", msg.id)
		return pg, message.ErrorCmd(errors.Wrapf(msg.err, "failed to delete %s #%d", pg.res.Noun, msg.id))
	}

	pg.logger.Info(pg.ctx, "deleted", "path", pg.res.Path, "id", msg.id)
	pg.rows = slices.DeleteFunc(slices.Clone(pg.rows), func(row T) bool {
		return pg.res.Id(row) == msg.id
	})
	return pg.refilter(), message.StatusCmd(fmt.Sprintf("Deleted %s #%d", pg.res.Noun, msg.id))
}

// refilter applies the dashboard search before handing rows to the table.
func (pg Page[T]) refilter() Page[T] {

	rows := filter.RowsBy(pg.rows, pg.search, pg.res.SearchFields...)
	pg.table = pg.table.SetRows(rows)
	return pg
}

func fieldNames(fields []variant.Field) []string {

	names := make([]string, 0, len(fields))
	for _, fld := range fields {
		names = append(names, fld.Name)
	}
	return names
}
