package dasbor

import (
	"context"
	"slices"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"dasbor/board/piece"
	nt "dasbor/entity"
	"dasbor/message"
	"dasbor/style"
)

const (
	headerHeight = 2
	footerHeight = 2
)

// Model is the bubbletea model for the dashboard, one tab per screen.
type Model struct {
	screens []Screen
	current int

	search    piece.TextInput
	searching bool

	status      string
	errorString string

	width  int
	height int

	ctx    context.Context
	logger nt.Logger
}

// NewModel creates a Model showing the first of screens.
func NewModel(ctx context.Context, lgr nt.Logger, screens ...Screen) Model {
	return Model{
		screens: screens,
		search:  piece.NewTextInput("", 200),
		ctx:     ctx,
		logger:  lgr,
	}
}

// Current returns the screen on display.
func (m Model) Current() Screen {
	return m.screens[m.current]
}

// Screens returns every screen, in tab order.
func (m Model) Screens() []Screen {
	return m.screens
}

// Query returns the dashboard search text.
func (m Model) Query() string {
	return m.search.Value()
}

func (m Model) Init() tea.Cmd {

	cmds := make([]tea.Cmd, 0, len(m.screens))
	for _, scr := range m.screens {
		cmds = append(cmds, scr.Init())
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {

	switch msg := msg.(type) {

	case message.ErrorMsg:
		m.logger.Error(m.ctx, "error msg", msg.Err)
		m.errorString = msg.Err.Error()
		return m, nil

	case message.StatusMsg:
		m.status = msg.Text
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		return m.broadcast(message.SizeMsg{
			Width:  msg.Width,
			Height: max(msg.Height-headerHeight-footerHeight, 0),
		})

	case tea.KeyPressMsg:
		m.errorString = ""

		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.searching {
			return m.searchKey(msg)
		}

		if !m.Current().Capturing() {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "tab":
				m.current = (m.current + 1) % len(m.screens)
				m.status = ""
				return m, nil
			case "shift+tab":
				m.current = (m.current - 1 + len(m.screens)) % len(m.screens)
				m.status = ""
				return m, nil
			case "ctrl+f":
				m.searching = true
				return m, nil
			}
		}
		return m.forward(msg)

	case tea.PasteMsg:
		if m.searching {
			return m.typeSearch(msg)
		}
		return m.forward(msg)
	}

	// fetch results, submit and save outcomes are for whichever screen owns them
	return m.broadcast(msg)
}

func (m Model) View() tea.View {

	if m.width == 0 {
		return tea.NewView("Loading...")
	}

	view := tea.NewView(lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		"",
		lipgloss.NewStyle().Height(max(m.height-headerHeight-footerHeight, 0)).Render(m.Current().Render()),
		"",
		RenderFooter(m.status, m.errorString, m.width),
	))
	view.AltScreen = true
	return view
}

// unexported

func (m Model) searchKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {

	switch msg.String() {
	case "esc", "enter":
		m.searching = false
		return m, nil
	}
	return m.typeSearch(msg)
}

func (m Model) typeSearch(msg tea.Msg) (tea.Model, tea.Cmd) {

	before := m.search.Value()

	upd, _ := m.search.Update(msg)
	m.search = upd.(piece.TextInput)

	if m.search.Value() == before {
		return m, nil
	}
	return m.broadcast(message.SearchMsg{Query: m.search.Value()})
}

func (m Model) forward(msg tea.Msg) (tea.Model, tea.Cmd) {

	mdl, cmd := m.Current().Update(msg)

	m.screens = slices.Clone(m.screens)
	m.screens[m.current] = mdl.(Screen)
	return m, cmd
}

func (m Model) broadcast(msg tea.Msg) (tea.Model, tea.Cmd) {

	screens := make([]Screen, len(m.screens))
	cmds := make([]tea.Cmd, 0, len(m.screens))

	for i, scr := range m.screens {
		mdl, cmd := scr.Update(msg)
		screens[i] = mdl.(Screen)
		cmds = append(cmds, cmd)
	}

	m.screens = screens
	return m, tea.Batch(cmds...)
}

func (m Model) renderHeader() string {

	tabs := make([]string, 0, len(m.screens))
	for i, scr := range m.screens {
		if i == m.current {
			tabs = append(tabs, style.ActiveTabStyle.Render(scr.Title()))
		} else {
			tabs = append(tabs, style.TabStyle.Render(scr.Title()))
		}
	}

	query := m.search.Render()
	switch {
	case m.searching:
		query = style.FocusStyle.Render(query + " ")
	case query == "":
		query = style.MutedStyle.Render("ctrl+f to search")
	}

	return strings.Join(tabs, "") + "   " + query
}
