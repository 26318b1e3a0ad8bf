package table

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"

	"dasbor/form"
	"dasbor/style"
	"dasbor/submit"
	"dasbor/variant"
)

const dialogHelp = "tab: next field  ctrl+s: submit  esc: cancel"

// Render draws the table, or the open dialog centered over its area.
func (tbl Table[T]) Render() string {

	if tbl.active != variant.NoDialog {
		return form.Overlay(tbl.width, tbl.height, tbl.renderDialog())
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		tbl.renderToolbar(),
		"",
		tbl.renderGrid(),
		"",
		tbl.renderPagination(),
	)
}

// unexported

func (tbl Table[T]) renderToolbar() string {

	query := tbl.search.Render()
	if tbl.focus == focusSearch {
		query = style.FocusStyle.Render(query + " ")
	} else if query == "" {
		query = style.MutedStyle.Render("Search...")
	}

	parts := []string{"/ " + query}
	for _, dlg := range []submit.Dialog{tbl.entity, tbl.image} {
		if dlg.Enabled() {
			parts = append(parts, style.MutedStyle.Render(hotkey(dlg.Kind())+": ")+dlg.Spec().Title)
		}
	}

	return strings.Join(parts, "    ")
}

func (tbl Table[T]) renderGrid() string {

	headers := make([]string, len(tbl.columns))
	for i, col := range tbl.columns {
		headers[i] = col.Header
	}

	page := tbl.Page()
	if len(page) == 0 {
		return style.MutedStyle.Render("No data")
	}

	rows := make([][]string, len(page))
	for i, row := range page {
		cells := make([]string, len(tbl.columns))
		for j, col := range tbl.columns {
			cell := strings.ReplaceAll(col.Cell(row), "\n", " ")
			cells[j] = style.Truncate(cell, col.Width)
		}
		rows[i] = cells
	}

	lgt := table.New().
		Headers(headers...).
		Rows(rows...).
		StyleFunc(style.RowStyler(tbl.selected))
	style.StyleTable(lgt)

	return lgt.Render()
}

func (tbl Table[T]) renderPagination() string {

	pgr := tbl.pager

	previous := "p: Previous"
	if !pgr.CanPrevious() {
		previous = style.MutedStyle.Render(previous)
	}
	next := "n: Next"
	if !pgr.CanNext() {
		next = style.MutedStyle.Render(next)
	}

	return strings.Join([]string{
		fmt.Sprintf("Page %d of %d", pgr.Index()+1, pgr.PageCount()),
		fmt.Sprintf("Show %d", pgr.Size()) + style.MutedStyle.Render(" (s)"),
		previous,
		next,
	}, "    ")
}

func (tbl Table[T]) renderDialog() string {

	dlg := tbl.Dialog(tbl.active)

	help := dialogHelp
	if dlg.State() == submit.Submitting {
		help = "submitting..."
	}
	return tbl.form.Render(dlg.ErrText(), help)
}

func hotkey(kind variant.Dialog) string {

	if kind == variant.ImageDialog {
		return "i"
	}
	return "a"
}
