package message

import tea "charm.land/bubbletea/v2"

// ErrorCmd returns a command to surface an error
func ErrorCmd(err error) tea.Cmd {
	return func() tea.Msg {
		return ErrorMsg{Err: err}
	}
}

// StatusCmd returns a command to show a status line
func StatusCmd(text string) tea.Cmd {
	return func() tea.Msg {
		return StatusMsg{Text: text}
	}
}

// RefetchCmd returns a command to request fresh rows for owner
func RefetchCmd(owner string) tea.Cmd {
	return func() tea.Msg {
		return RefetchMsg{Owner: owner}
	}
}
