// Package piece provides the pieces a board is built from.
package piece

import (
	tea "charm.land/bubbletea/v2"

	"dasbor/board"
)

// Label is read-only text.
type Label struct {
	text string
}

func NewLabel(text string) Label {
	return Label{text: text}
}

func (l Label) Update(msg tea.Msg) (board.Piece, tea.Cmd) {
	return l, nil
}

func (l Label) Render() string {
	return l.text
}

func (l Label) Value() string {
	return l.text
}
