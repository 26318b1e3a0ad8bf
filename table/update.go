package table

import (
	"fmt"

	tea "charm.land/bubbletea/v2"

	"dasbor/board/piece"
	nt "dasbor/entity"
	"dasbor/message"
	"dasbor/submit"
	"dasbor/variant"
)

// Update handles sizing, submission outcomes and keys.
func (tbl Table[T]) Update(msg tea.Msg) (Table[T], tea.Cmd) {
	switch msg := msg.(type) {

	case message.SizeMsg:
		tbl.width = msg.Width
		tbl.height = msg.Height

	case submit.DoneMsg:
		return tbl.complete(msg)

	case tea.PasteMsg:
		return tbl.typeInto(msg)

	case tea.KeyPressMsg:
		switch tbl.focus {
		case focusDialog:
			return tbl.dialogKey(msg)
		case focusSearch:
			return tbl.searchKey(msg)
		default:
			return tbl.gridKey(msg)
		}
	}

	return tbl, nil
}

// Submit posts the open dialog's draft.
// The image is read from the path typed into the form first.
func (tbl Table[T]) Submit() (Table[T], tea.Cmd) {

	if tbl.active == variant.NoDialog {
		return tbl, nil
	}

	dlg := tbl.Dialog(tbl.active)
	if dlg.State() != submit.Open {
		return tbl, nil
	}

	// the draft image always follows the path on screen
	path := tbl.form.Value(nt.ImageField)
	if path == "" {
		dlg = dlg.Detach()
	} else {
		dlg = dlg.Attach(path)
		if dlg.ErrText() != "" {
			return tbl.setDialog(dlg), nil
		}
	}

	dlg, cmd := dlg.Submit(tbl.ctx, tbl.poster)
	if cmd != nil {
		tbl.logger.Info(tbl.ctx, "submitting", "variant", dlg.Spec().Name, "endpoint", dlg.Spec().Endpoint, "attempt", dlg.Attempt())
	}
	return tbl.setDialog(dlg), cmd
}

// unexported

func (tbl Table[T]) complete(msg submit.DoneMsg) (Table[T], tea.Cmd) {

	dlg := tbl.Dialog(msg.Dialog)
	if dlg.Attempt() == "" || dlg.Attempt() != msg.Attempt {
		return tbl, nil
	}

	dlg, refetch := dlg.Complete(msg)
	tbl = tbl.setDialog(dlg)

	spec := dlg.Spec()
	if !refetch {
		tbl.logger.Error(tbl.ctx, "failed to submit", msg.Err, "variant", spec.Name, "attempt", msg.Attempt)
		return tbl, nil
	}

	tbl.logger.Info(tbl.ctx, "submitted", "variant", spec.Name, "attempt", msg.Attempt)
	if tbl.active == msg.Dialog {
		tbl.active = variant.NoDialog
		tbl.focus = focusGrid
	}

	return tbl, tea.Batch(
		message.RefetchCmd(tbl.owner),
		message.StatusCmd(fmt.Sprintf("Added %s", spec.Noun)),
	)
}

func (tbl Table[T]) dialogKey(msg tea.KeyPressMsg) (Table[T], tea.Cmd) {

	switch msg.String() {
	case "esc":
		return tbl.CloseDialog(), nil
	case "ctrl+s":
		return tbl.Submit()
	}

	return tbl.typeInto(msg)
}

func (tbl Table[T]) typeInto(msg tea.Msg) (Table[T], tea.Cmd) {

	switch tbl.focus {
	case focusSearch:
		upd, cmd := tbl.search.Update(msg)
		tbl.search = upd.(piece.TextInput)
		return tbl.SetQuery(tbl.search.Value()), cmd

	case focusDialog:
		if tbl.Dialog(tbl.active).State() != submit.Open {
			return tbl, nil
		}

		frm, changed, cmd := tbl.form.Update(msg)
		tbl.form = frm
		if changed != "" && changed != nt.ImageField {
			tbl = tbl.SetField(changed, frm.Value(changed))
		}
		return tbl, cmd
	}

	return tbl, nil
}

func (tbl Table[T]) searchKey(msg tea.KeyPressMsg) (Table[T], tea.Cmd) {

	switch msg.String() {
	case "esc", "enter":
		tbl.focus = focusGrid
		return tbl, nil
	}

	return tbl.typeInto(msg)
}

func (tbl Table[T]) gridKey(msg tea.KeyPressMsg) (Table[T], tea.Cmd) {

	switch msg.String() {
	case "/":
		tbl.focus = focusSearch
	case "esc":
		tbl = tbl.SetQuery("")
	case "n", "right":
		tbl = tbl.NextPage()
	case "p", "left":
		tbl = tbl.PreviousPage()
	case "s":
		tbl = tbl.CyclePageSize()
	case "up", "k":
		tbl = tbl.Select(tbl.selected - 1)
	case "down", "j":
		tbl = tbl.Select(tbl.selected + 1)
	case "a":
		tbl = tbl.OpenDialog(variant.EntityDialog)
	case "i":
		tbl = tbl.OpenDialog(variant.ImageDialog)
	}

	return tbl, nil
}
