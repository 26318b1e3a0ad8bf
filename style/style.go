package style

import (
	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
)

var (
	BackgroundColor  = lipgloss.Color("234")                                 // Dark warm grey
	BorderColor      = lipgloss.Color("240")                                 // Subtle warm grey
	TableBorderStyle = lipgloss.NewStyle().Foreground(BorderColor)           // Subtle warm grey border
	HlRowStyle       = lipgloss.NewStyle().Background(lipgloss.Color("235")) // Very subtle warm grey row
	FocusStyle       = lipgloss.NewStyle().Background(BorderColor)           // Field being edited
	MutedStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("246")) // Warm muted grey text
	ErrorStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("203")) // Soft red
	TitleStyle       = lipgloss.NewStyle().Bold(true)
	TabStyle         = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("246"))
	ActiveTabStyle   = lipgloss.NewStyle().Padding(0, 1).Bold(true).Underline(true)
	HeaderStyle      = lipgloss.NewStyle().Bold(true)
	UnStyle          = lipgloss.NewStyle()

	DialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(BorderColor).
			Padding(1, 2).
			Width(60)
)

// RowStyler returns a StyleFunc highlighting the row under the cursor and bolding the header.
func RowStyler(selectedRow int) func(row, col int) lipgloss.Style {
	return func(row, col int) lipgloss.Style {
		switch row {
		case table.HeaderRow:
			return HeaderStyle
		case selectedRow:
			return HlRowStyle
		}
		return UnStyle
	}
}

// StyleTable draws a rule under the header and no other borders.
func StyleTable(tbl *table.Table) {

	rule := lipgloss.Border{Top: "─", Middle: "─", MiddleLeft: "─", MiddleRight: "─"}

	tbl.Border(rule).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderColumn(false).
		BorderHeader(true).
		BorderStyle(TableBorderStyle)
}

// Truncate shortens s to width cells, marking the cut with an ellipsis.
func Truncate(s string, width int) string {

	if width <= 0 || lipgloss.Width(s) <= width {
		return s
	}

	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}
