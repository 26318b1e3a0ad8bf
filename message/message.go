// Package message holds the messages passed between the dashboard's models.
package message

// ErrorMsg contains an error
type ErrorMsg struct {
	Err error
}

// StatusMsg contains a line for the footer
type StatusMsg struct {
	Text string
}

// RefetchMsg signals that the rows owned by Owner are stale
type RefetchMsg struct {
	Owner string
}

// SearchMsg contains the dashboard-wide search query
type SearchMsg struct {
	Query string
}

// SizeMsg is the area available to a screen
type SizeMsg struct {
	Width  int
	Height int
}
