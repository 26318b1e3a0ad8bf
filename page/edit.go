package page

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"github.com/pkg/errors"

	"dasbor/api"
	"dasbor/edit"
	nt "dasbor/entity"
	"dasbor/form"
	"dasbor/message"
	"dasbor/variant"
)

// Editing reports whether an edit is under way, and of which row.
func (pg Page[T]) Editing() (id int, ok bool) {

	switch pg.res.Edit {
	case ModalEdit:
		return pg.modal.Id(), pg.modal.Visible()
	case InlineEdit:
		return pg.inline.Editing()
	}
	return
}

// Save persists the edit under way.
func (pg Page[T]) Save() (Page[T], tea.Cmd) {

	var cmd tea.Cmd

	switch pg.res.Edit {
	case ModalEdit:
		if !pg.modal.Visible() || pg.modal.Saving() {
			return pg, nil
		}

		path := pg.form.Value(nt.ImageField)
		if path == "" {
			pg.modal = pg.modal.Detach()
		} else {
			pg.modal = pg.modal.Attach(path)
			if pg.modal.ErrText() != "" {
				return pg, nil
			}
		}

		err := pg.spec.ValidateUpdate(pg.modal.Draft())
		if err != nil {
			pg.modal = pg.modal.Fail(err)
			return pg, nil
		}
		pg.modal, cmd = pg.modal.Save(pg.ctx, pg.res.Path, pg.putMultipart)

	case InlineEdit:
		if _, ok := pg.inline.Editing(); !ok || pg.inline.Saving() {
			return pg, nil
		}

		err := pg.validateInline(pg.inline.Draft())
		if err != nil {
			pg.inline = pg.inline.Fail(err)
			return pg, nil
		}
		pg.inline, cmd = pg.inline.Save(pg.ctx, pg.res.Path, pg.putJson)
	}

	if cmd != nil {
		id, _ := pg.Editing()
		pg.logger.Info(pg.ctx, "saving", "path", pg.res.Path, "id", id)
	}
	return pg, cmd
}

// CancelEdit abandons the edit under way.
func (pg Page[T]) CancelEdit() Page[T] {

	pg.modal = pg.modal.Cancel()
	pg.inline = pg.inline.Cancel()
	pg.mode = modeTable
	return pg
}

// unexported

func (pg Page[T]) editFields() []variant.Field {

	if len(pg.res.EditFields) > 0 {
		return pg.res.EditFields
	}
	return pg.spec.Fields
}

func (pg Page[T]) beginEdit(row T) (tea.Model, tea.Cmd) {

	if pg.res.Edit == NoEdit || pg.res.Seed == nil {
		return pg, nil
	}

	id := pg.res.Id(row)
	seed := pg.res.Seed(row)

	switch pg.res.Edit {
	case ModalEdit:
		mdl, err := pg.modal.Open(id, seed)
		if err != nil {
			err = errors.Wrapf(err, "failed to edit %s #%d", pg.res.Noun, id)
			return pg, message.ErrorCmd(err)
		}
		pg.modal = mdl

		// the current image stays unless a new one is picked
		seed = nil
		for _, fld := range pg.editFields() {
			if !fld.Image {
				if seed == nil {
					seed = map[string]string{}
				}
				seed[fld.Name] = mdl.Draft().Get(fld.Name)
			}
		}

	case InlineEdit:
		pg.inline = pg.inline.Begin(id, seed)
	}

	pg.form = form.New(fmt.Sprintf("Edit %s #%d", pg.res.Noun, id), pg.editFields(), seed)
	pg.mode = modeEdit
	return pg, nil
}

func (pg Page[T]) editKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {

	switch msg.String() {
	case "esc":
		return pg.CancelEdit(), nil
	case "ctrl+s":
		return pg.Save()
	}
	return pg.editInput(msg)
}

func (pg Page[T]) editInput(msg tea.Msg) (tea.Model, tea.Cmd) {

	if pg.modal.Saving() || pg.inline.Saving() {
		return pg, nil
	}

	frm, changed, cmd := pg.form.Update(msg)
	pg.form = frm
	if changed == "" || changed == nt.ImageField {
		return pg, cmd
	}

	value := frm.Value(changed)
	pg.modal = pg.modal.Set(changed, value)
	pg.inline = pg.inline.Set(changed, value)
	return pg, cmd
}

func (pg Page[T]) saved(msg edit.SavedMsg) (tea.Model, tea.Cmd) {

	if msg.Owner != pg.res.Path {
		return pg, nil
	}

	id, _ := pg.Editing()
	if msg.Err != nil {
		pg.logger.Error(pg.ctx, "failed to save", msg.Err, "path", pg.res.Path, "id", id, "attempt", msg.Attempt)
		msg.Err = errors.New(pg.failureText(msg.Err))
	}

	var saved bool
	switch pg.res.Edit {
	case ModalEdit:
		pg.modal, saved = pg.modal.Complete(msg)
	case InlineEdit:
		pg.inline, saved = pg.inline.Complete(msg)
	}

	if !saved {
		return pg, nil
	}

	pg.logger.Info(pg.ctx, "saved", "path", pg.res.Path, "id", id, "attempt", msg.Attempt)
	pg.mode = modeTable
	return pg, tea.Batch(
		pg.fetch(),
		message.StatusCmd(fmt.Sprintf("Updated %s #%d", pg.res.Noun, id)),
	)
}

func (pg Page[T]) failureText(err error) string {

	if msg, ok := api.Message(err); ok {
		return msg
	}
	return fmt.Sprintf("Failed to update %s", pg.res.Noun)
}

func (pg Page[T]) validateInline(dft nt.Draft) error {

	missing := []string{}
	for _, fld := range pg.res.EditFields {
		if dft.Empty(fld.Name) {
			missing = append(missing, fld.Name)
		}
	}

	if len(missing) > 0 {
		return &variant.MissingError{Fields: missing}
	}
	return nil
}

func (pg Page[T]) putMultipart(ctx context.Context, id int, dft nt.Draft) (err error) {

	pl, err := pg.spec.UpdatePayload(dft)
	if err != nil {
		return
	}

	err = pg.client.Put(ctx, fmt.Sprintf("%s/%d", pg.res.Path, id), pl)
	return
}

func (pg Page[T]) putJson(ctx context.Context, id int, dft nt.Draft) (err error) {

	obj := map[string]string{}
	for _, fld := range pg.res.EditFields {
		obj[fld.Name] = dft.Get(fld.Name)
	}

	err = pg.client.PutJSON(ctx, fmt.Sprintf("%s/%d", pg.res.Path, id), obj)
	return
}
