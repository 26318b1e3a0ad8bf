package board_test

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/stretchr/testify/assert"

	"dasbor/board"
	"dasbor/board/piece"
)

func form() board.Board {
	return board.New(
		board.NewRank("name", "Name", piece.NewTextInput("", 0)),
		board.NewRank("company", "Company", piece.NewTextInput("Acme", 0)),
		board.NewRank("note", "Note", piece.NewLabel("read only")),
	)
}

func TestNavigation(t *testing.T) {

	brd := form()
	assert.Equal(t, "name", brd.Key())

	brd = brd.MoveUp()
	assert.Equal(t, 0, brd.Position())

	brd = brd.MoveDown().MoveDown().MoveDown()
	assert.Equal(t, 2, brd.Position())

	brd = brd.Next()
	assert.Equal(t, "name", brd.Key())

	brd = brd.Previous()
	assert.Equal(t, "note", brd.Key())

	assert.Equal(t, "", board.New().Key())
	assert.Equal(t, 0, board.New().Next().Position())
}

func TestUpdate(t *testing.T) {

	orig := form()
	brd, _ := orig.Update(tea.KeyPressMsg{Code: 'z', Text: "z"})

	assert.Equal(t, "z", brd.Value("name"))
	assert.Equal(t, "", orig.Value("name"))
	assert.Equal(t, map[string]string{"name": "z", "company": "Acme", "note": "read only"}, brd.Values())
}

func TestRender(t *testing.T) {

	out := form().Render(lipgloss.NewStyle())
	assert.Contains(t, out, "> Name     ")
	assert.Contains(t, out, "  Company  Acme")
}
