// Package detail shows one row as indented json.
package detail

import (
	"encoding/json"
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/pkg/errors"
	"github.com/tidwall/gjson"

	"dasbor/message"
	"dasbor/style"
)

// Panel displays a single record, scrolling when it outgrows its height.
type Panel struct {
	title        string
	contentLines []string // Rendered content split into lines (cached)

	width        int
	height       int
	ScrollOffset int // Line offset for scrolling content
}

// Show replaces the record on display.
func (pnl Panel) Show(title string, row any) Panel {

	pnl.title = title
	pnl.ScrollOffset = 0

	lines, err := contentLines(row)
	if err != nil {
		lines = []string{"Error pretty-printing JSON: " + err.Error()}
	}
	pnl.contentLines = lines
	return pnl
}

// Lines returns the rendered record.
func (pnl Panel) Lines() []string {
	return pnl.contentLines
}

func (pnl Panel) Update(msg tea.Msg) (Panel, tea.Cmd) {

	switch msg := msg.(type) {

	case message.SizeMsg:
		pnl.width = msg.Width
		pnl.height = msg.Height - 2 // title and spacer
		pnl.ScrollOffset = min(pnl.ScrollOffset, pnl.maxScroll())

	case tea.KeyPressMsg:
		switch msg.String() {
		case "up", "k":
			if pnl.ScrollOffset > 0 {
				pnl.ScrollOffset--
			}
		case "down", "j":
			if pnl.ScrollOffset < pnl.maxScroll() {
				pnl.ScrollOffset++
			}
		case "pgup":
			pnl.ScrollOffset = max(pnl.ScrollOffset-pnl.height, 0)
		case "pgdown":
			pnl.ScrollOffset = min(pnl.ScrollOffset+pnl.height, pnl.maxScroll())
		}
	}

	return pnl, nil
}

// Render draws the visible portion of the record.
func (pnl Panel) Render() string {

	if pnl.contentLines == nil {
		return style.MutedStyle.Render("Nothing selected")
	}

	visibleLines := pnl.contentLines[pnl.ScrollOffset:]
	if pnl.height > 0 && len(visibleLines) > pnl.height {
		visibleLines = visibleLines[:pnl.height]
	}

	return style.TitleStyle.Render(pnl.title) + "\n\n" + strings.Join(visibleLines, "\n")
}

// unexported

func (pnl Panel) maxScroll() int {

	if pnl.height <= 0 || len(pnl.contentLines) <= pnl.height {
		return 0
	}
	return len(pnl.contentLines) - pnl.height
}

// contentLines renders a row as indented json, expanding string fields that hold json themselves.
func contentLines(row any) (lines []string, err error) {

	data, err := json.Marshal(row)
	if err != nil {
		err = errors.Wrapf(err, "failed to marshal row")
		return
	}

	var obj any
	err = json.Unmarshal(data, &obj)
	if err != nil {
		err = errors.Wrapf(err, "failed to unmarshal row")
		return
	}

	if fields, ok := obj.(map[string]any); ok {
		for key, val := range fields {
			fields[key] = expand(val)
		}
	}

	var buf strings.Builder
	encoder := json.NewEncoder(&buf)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)

	err = encoder.Encode(obj)
	if err != nil {
		err = errors.Wrapf(err, "failed to encode row")
		return
	}

	content := strings.TrimSuffix(buf.String(), "\n")
	lines = strings.Split(content, "\n")
	return
}

// expand parses strings holding a json object or array, leaving anything else be.
func expand(val any) any {

	str, ok := val.(string)
	if !ok || !gjson.Valid(str) {
		return val
	}

	res := gjson.Parse(str)
	if !res.IsObject() && !res.IsArray() {
		return val
	}
	return res.Value()
}
