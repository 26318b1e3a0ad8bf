package piece

import (
	tea "charm.land/bubbletea/v2"

	"dasbor/board"
)

// TextInput is an editable text field.
type TextInput struct {
	value     []rune
	cursor    int
	maxLength int
}

func NewTextInput(value string, maxLength int) TextInput {
	if maxLength <= 0 {
		maxLength = 100 // Default max length
	}
	runes := []rune(value)
	return TextInput{
		value:     runes,
		cursor:    len(runes),
		maxLength: maxLength,
	}
}

func (t TextInput) Update(msg tea.Msg) (board.Piece, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.PasteMsg:
		t = t.insert(msg.Content)

	case tea.KeyPressMsg:
		switch msg.String() {
		case "backspace":
			if t.cursor > 0 {
				t.value = append(t.value[:t.cursor-1:t.cursor-1], t.value[t.cursor:]...)
				t.cursor--
			}
		case "delete":
			if t.cursor < len(t.value) {
				t.value = append(t.value[:t.cursor:t.cursor], t.value[t.cursor+1:]...)
			}
		case "left":
			if t.cursor > 0 {
				t.cursor--
			}
		case "right":
			if t.cursor < len(t.value) {
				t.cursor++
			}
		case "home", "ctrl+a":
			t.cursor = 0
		case "end", "ctrl+e":
			t.cursor = len(t.value)
		case "ctrl+u":
			t.value = nil
			t.cursor = 0
		default:
			if msg.Mod == 0 || msg.Mod == tea.ModShift {
				t = t.insert(msg.Text)
			}
		}
	}
	return t, nil
}

func (t TextInput) Value() string {
	return string(t.value)
}

func (t TextInput) Cursor() int {
	return t.cursor
}

func (t TextInput) Render() string {
	return string(t.value)
}

// unexported

func (t TextInput) insert(text string) TextInput {

	runes := []rune(text)
	if len(runes) == 0 || len(t.value)+len(runes) > t.maxLength {
		return t
	}

	value := make([]rune, 0, len(t.value)+len(runes))
	value = append(value, t.value[:t.cursor]...)
	value = append(value, runes...)
	value = append(value, t.value[t.cursor:]...)

	t.value = value
	t.cursor += len(runes)
	return t
}
