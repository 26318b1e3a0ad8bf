// Package board lays out labelled input pieces as ranks of a form.
package board

import (
	"slices"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

// Piece is one interactive square of a board.
type Piece interface {
	Update(msg tea.Msg) (Piece, tea.Cmd)
	Render() string
	Value() string
}

// Rank is a labelled piece, keyed by the field it edits.
type Rank struct {
	key   string
	label string
	piece Piece
}

// NewRank creates a rank.
func NewRank(key, label string, piece Piece) Rank {
	return Rank{key: key, label: label, piece: piece}
}

// Key returns the field the rank edits.
func (rnk Rank) Key() string {
	return rnk.key
}

// Board is a vertical stack of ranks with one in focus.
//
// Board is designed for immutable use in bubbletea/Elm architecture:
// navigation returns a new Board and Update clones the ranks slice before
// replacing the focused piece, so earlier copies never see the change.
type Board struct {
	ranks    []Rank
	position int
}

// New creates a board.
func New(ranks ...Rank) Board {
	return Board{ranks: ranks}
}

// Len returns the number of ranks.
func (brd Board) Len() int {
	return len(brd.ranks)
}

// Position returns the index of the focused rank.
func (brd Board) Position() int {
	return brd.position
}

// Key returns the field of the focused rank.
func (brd Board) Key() string {

	if len(brd.ranks) == 0 {
		return ""
	}
	return brd.ranks[brd.position].key
}

// MoveUp focuses the previous rank, stopping at the first.
func (brd Board) MoveUp() Board {

	if brd.position > 0 {
		brd.position--
	}
	return brd
}

// MoveDown focuses the next rank, stopping at the last.
func (brd Board) MoveDown() Board {

	if brd.position < len(brd.ranks)-1 {
		brd.position++
	}
	return brd
}

// Next focuses the next rank, wrapping to the first.
func (brd Board) Next() Board {

	if len(brd.ranks) > 0 {
		brd.position = (brd.position + 1) % len(brd.ranks)
	}
	return brd
}

// Previous focuses the previous rank, wrapping to the last.
func (brd Board) Previous() Board {

	if len(brd.ranks) > 0 {
		brd.position = (brd.position - 1 + len(brd.ranks)) % len(brd.ranks)
	}
	return brd
}

// Update forwards msg to the focused piece.
func (brd Board) Update(msg tea.Msg) (Board, tea.Cmd) {

	if len(brd.ranks) == 0 {
		return brd, nil
	}

	piece, cmd := brd.ranks[brd.position].piece.Update(msg)

	brd.ranks = slices.Clone(brd.ranks)
	brd.ranks[brd.position].piece = piece
	return brd, cmd
}

// Value returns the value of the piece editing key.
func (brd Board) Value(key string) string {

	for _, rnk := range brd.ranks {
		if rnk.key == key {
			return rnk.piece.Value()
		}
	}
	return ""
}

// Values returns every piece value by key.
func (brd Board) Values() map[string]string {

	values := map[string]string{}
	for _, rnk := range brd.ranks {
		values[rnk.key] = rnk.piece.Value()
	}
	return values
}

// Render draws the ranks as "label: value" lines, highlighting the focused one.
func (brd Board) Render(focus lipgloss.Style) string {

	width := 0
	for _, rnk := range brd.ranks {
		width = max(width, lipgloss.Width(rnk.label))
	}

	lines := make([]string, 0, len(brd.ranks))
	for i, rnk := range brd.ranks {
		prefix := "  "
		value := rnk.piece.Render()
		if i == brd.position {
			prefix = "> "
			value = focus.Render(value + " ")
		}
		label := rnk.label + strings.Repeat(" ", width-lipgloss.Width(rnk.label))
		lines = append(lines, prefix+label+"  "+value)
	}

	return strings.Join(lines, "\n")
}
