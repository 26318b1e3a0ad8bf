package page

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"dasbor/form"
	"dasbor/style"
)

const editHelp = "tab: next field  ctrl+s: save  esc: cancel"

// Render draws whichever mode the page is in.
func (pg Page[T]) Render() string {

	if pg.loading && len(pg.rows) == 0 {
		return style.MutedStyle.Render("Loading " + pg.res.Title + "...")
	}

	switch pg.mode {
	case modeDetail:
		return lipgloss.JoinVertical(lipgloss.Left,
			pg.detail.Render(),
			"",
			style.MutedStyle.Render("esc: back  up/down: scroll"),
		)

	case modeConfirm:
		text := fmt.Sprintf("Delete %s #%d?\n\n%s", pg.res.Noun, pg.confirmId, style.MutedStyle.Render("y: delete  n: keep"))
		return form.Overlay(pg.width, pg.height, style.DialogStyle.Render(text))

	case modeEdit:
		if pg.res.Edit == ModalEdit {
			return form.Overlay(pg.width, pg.height, pg.form.Render(pg.modal.ErrText(), pg.help(pg.modal.Saving())))
		}
		return lipgloss.JoinVertical(lipgloss.Left,
			pg.table.Render(),
			"",
			pg.form.Render(pg.inline.ErrText(), pg.help(pg.inline.Saving())),
		)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		pg.table.Render(),
		"",
		style.MutedStyle.Render(pg.hints()),
	)
}

// unexported

func (pg Page[T]) help(saving bool) string {

	if saving {
		return "saving..."
	}
	return editHelp
}

func (pg Page[T]) hints() string {

	hints := []string{"enter: details"}
	if pg.res.Edit != NoEdit {
		hints = append(hints, "e: edit")
	}
	if pg.res.Deletable {
		hints = append(hints, "d: delete")
	}
	hints = append(hints, "r: refresh")

	return strings.Join(hints, "  ")
}
