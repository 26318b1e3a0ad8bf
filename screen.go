package dasbor

import tea "charm.land/bubbletea/v2"

// Screen is one tab of the dashboard.
type Screen interface {
	tea.Model
	// Title names the tab
	Title() string
	// Capturing is true while the screen wants every key, for typing or a dialog
	Capturing() bool
	// Render draws the screen into the area last given by message.SizeMsg
	Render() string
}
