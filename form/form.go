// Package form renders a board of inputs as a dialog.
package form

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"dasbor/board"
	"dasbor/board/piece"
	"dasbor/style"
	"dasbor/variant"
)

const maxInput = 2000

// Form is a titled stack of text inputs, one per field.
type Form struct {
	title  string
	fields []variant.Field
	board  board.Board
}

// New creates a form for fields, seeding inputs from seed.
// Image fields take a path to the file to upload.
func New(title string, fields []variant.Field, seed map[string]string) Form {

	ranks := make([]board.Rank, 0, len(fields))
	for _, fld := range fields {
		label := fld.Label
		if fld.Image {
			label += " (path)"
		}
		ranks = append(ranks, board.NewRank(fld.Name, label, piece.NewTextInput(seed[fld.Name], maxInput)))
	}

	return Form{
		title:  title,
		fields: fields,
		board:  board.New(ranks...),
	}
}

// Update moves between fields on tab and shift+tab, passing anything else to the focused input.
// changed is the field whose value was edited, if any.
func (frm Form) Update(msg tea.Msg) (upd Form, changed string, cmd tea.Cmd) {

	if key, ok := msg.(tea.KeyPressMsg); ok {
		switch key.String() {
		case "tab", "down":
			frm.board = frm.board.Next()
			return frm, "", nil
		case "shift+tab", "up":
			frm.board = frm.board.Previous()
			return frm, "", nil
		}
	}

	focused := frm.board.Key()
	before := frm.board.Value(focused)

	frm.board, cmd = frm.board.Update(msg)

	if frm.board.Value(focused) != before {
		changed = focused
	}
	return frm, changed, cmd
}

// Focused returns the field being edited.
func (frm Form) Focused() string {
	return frm.board.Key()
}

// Value returns the current input for field.
func (frm Form) Value(field string) string {
	return frm.board.Value(field)
}

// Values returns all inputs by field.
func (frm Form) Values() map[string]string {
	return frm.board.Values()
}

// Fields returns the fields the form was built for.
func (frm Form) Fields() []variant.Field {
	return frm.fields
}

// Render draws the form as a bordered dialog with an optional error and help line.
func (frm Form) Render(errText, help string) string {

	var content strings.Builder

	content.WriteString(style.TitleStyle.Render(frm.title))
	content.WriteString("\n\n")
	content.WriteString(frm.board.Render(style.FocusStyle))

	if errText != "" {
		content.WriteString("\n\n" + style.ErrorStyle.Render(errText))
	}
	if help != "" {
		content.WriteString("\n\n" + style.MutedStyle.Render(help))
	}

	return style.DialogStyle.Render(content.String())
}

// Overlay centers a dialog in a width by height area.
func Overlay(width, height int, dialog string) string {

	if width <= 0 || height <= 0 {
		return dialog
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, dialog)
}
