package dasbor

import (
	"strings"

	"charm.land/lipgloss/v2"

	"dasbor/style"
)

const footerHelp = "tab: next  ctrl+f: search  ctrl+c: quit"

// RenderFooter renders status on the left and help on the right.
// An error replaces the status until the next key press.
func RenderFooter(status, errorString string, width int) string {

	left := style.MutedStyle.Render(status)
	if errorString != "" {
		left = style.ErrorStyle.Render(errorString)
	}
	right := style.MutedStyle.Render(footerHelp)

	padding := width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
	}

	return left + strings.Repeat(" ", padding) + right
}
