package page

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/pkg/errors"

	nt "dasbor/entity"
	"dasbor/filter"
	"dasbor/message"
	"dasbor/style"
	"dasbor/table"
	"dasbor/variant"
)

const (
	LogsPath    = "/api/logs"
	summaryDays = 7
)

// Activity is a queryable copy of the login and logout log.
type Activity interface {
	Replace(ctx context.Context, entries []nt.LogEntry) error
	ByAction(ctx context.Context, action string) ([]nt.LogEntry, error)
	Daily(ctx context.Context, now time.Time, days int) ([]nt.DayCount, error)
	Devices(ctx context.Context) ([]nt.DeviceCount, error)
}

type activityMsg struct {
	login   []nt.LogEntry
	logout  []nt.LogEntry
	daily   []nt.DayCount
	devices []nt.DeviceCount
	err     error
}

// Logs is the screen of login and logout activity.
type Logs struct {
	login  table.Table[nt.LogEntry]
	logout table.Table[nt.LogEntry]
	focus  string

	loginRows  []nt.LogEntry
	logoutRows []nt.LogEntry
	daily      []nt.DayCount
	devices    []nt.DeviceCount

	search  string
	loading bool

	ctx    context.Context
	client Client
	store  Activity
	logger nt.Logger
	now    func() time.Time
}

// NewLogs creates the activity screen, loading fetched entries into store.
func NewLogs(ctx context.Context, clnt Client, store Activity, lgr nt.Logger, loc *time.Location, opt Options) (lgs Logs, err error) {

	columns := nt.ApplyLayout(logColumns(loc), opt.Layouts)

	login, err := table.Config[nt.LogEntry]{
		Owner:    LogsPath,
		Columns:  columns,
		Variant:  variant.None(),
		PageSize: opt.PageSize,
	}.New(ctx, clnt, lgr)
	if err != nil {
		err = errors.Wrapf(err, "failed to create login table")
		return
	}

	logout, err := table.Config[nt.LogEntry]{
		Owner:    LogsPath,
		Columns:  columns,
		Variant:  variant.None(),
		PageSize: opt.PageSize,
	}.New(ctx, clnt, lgr)
	if err != nil {
		err = errors.Wrapf(err, "failed to create logout table")
		return
	}

	lgs = Logs{
		login:   login,
		logout:  logout,
		focus:   nt.LoginAction,
		loading: true,
		ctx:     ctx,
		client:  clnt,
		store:   store,
		logger:  lgr,
		now:     time.Now,
	}
	return
}

func (lgs Logs) Title() string {
	return "Logs"
}

func (lgs Logs) Capturing() bool {
	return lgs.focused().Capturing()
}

// Login returns the table of logins.
func (lgs Logs) Login() table.Table[nt.LogEntry] {
	return lgs.login
}

// Logout returns the table of logouts.
func (lgs Logs) Logout() table.Table[nt.LogEntry] {
	return lgs.logout
}

// Daily returns the per day counts for the summary.
func (lgs Logs) Daily() []nt.DayCount {
	return lgs.daily
}

// Devices returns the per device class counts for the summary.
func (lgs Logs) Devices() []nt.DeviceCount {
	return lgs.devices
}

func (lgs Logs) Init() tea.Cmd {
	return lgs.fetch()
}

func (lgs Logs) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case activityMsg:
		lgs.loading = false
		if msg.err != nil {
			lgs.logger.Error(lgs.ctx, "failed to load activity", msg.err)
			return lgs, message.ErrorCmd(msg.err)
		}
		lgs.loginRows = msg.login
		lgs.logoutRows = msg.logout
		lgs.daily = msg.daily
		lgs.devices = msg.devices
		return lgs.refilter(), nil

	case message.RefetchMsg:
		if msg.Owner == LogsPath {
			return lgs, lgs.fetch()
		}

	case message.SearchMsg:
		lgs.search = msg.Query
		return lgs.refilter(), nil

	case message.SizeMsg:
		// the summary takes four lines, the two titles one each
		half := message.SizeMsg{Width: msg.Width, Height: max(msg.Height-6, 0) / 2}
		lgs.login, _ = lgs.login.Update(half)
		lgs.logout, _ = lgs.logout.Update(half)

	case tea.KeyPressMsg:
		if !lgs.Capturing() {
			switch msg.String() {
			case "r":
				return lgs, lgs.fetch()
			case "f":
				lgs.focus = other(lgs.focus)
				return lgs, nil
			}
		}
		return lgs.updateFocused(msg)

	case tea.PasteMsg:
		return lgs.updateFocused(msg)
	}

	return lgs, nil
}

func (lgs Logs) View() tea.View {
	return tea.NewView(lgs.Render())
}

// Render draws the summary above the two tables.
func (lgs Logs) Render() string {

	if lgs.loading && lgs.loginRows == nil && lgs.logoutRows == nil {
		return style.MutedStyle.Render("Loading Logs...")
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		lgs.renderSummary(),
		"",
		lgs.heading(nt.LoginAction, "Logins"),
		lgs.login.Render(),
		"",
		lgs.heading(nt.LogoutAction, "Logouts"),
		lgs.logout.Render(),
		"",
		style.MutedStyle.Render("f: switch table  r: refresh"),
	)
}

// unexported

func (lgs Logs) fetch() tea.Cmd {

	ctx := lgs.ctx
	clnt := lgs.client
	store := lgs.store
	now := lgs.now()

	return func() tea.Msg {
		msg, err := loadActivity(ctx, clnt, store, now)
		if err != nil {
			return activityMsg{err: err}
		}
		return msg
	}
}

func loadActivity(ctx context.Context, clnt Client, store Activity, now time.Time) (msg activityMsg, err error) {

	entries := []nt.LogEntry{}
	err = clnt.List(ctx, LogsPath, &entries)
	if err != nil {
		err = errors.Wrapf(err, "failed to fetch logs")
		return
	}

	err = store.Replace(ctx, entries)
	if err != nil {
		err = errors.Wrapf(err, "failed to store logs")
		return
	}

	msg.login, err = store.ByAction(ctx, nt.LoginAction)
	if err != nil {
		err = errors.Wrapf(err, "failed to query logins")
		return
	}

	msg.logout, err = store.ByAction(ctx, nt.LogoutAction)
	if err != nil {
		err = errors.Wrapf(err, "failed to query logouts")
		return
	}

	msg.daily, err = store.Daily(ctx, now, summaryDays)
	if err != nil {
		err = errors.Wrapf(err, "failed to summarize days")
		return
	}

	msg.devices, err = store.Devices(ctx)
	if err != nil {
		err = errors.Wrapf(err, "failed to summarize devices")
		return
	}
	return
}

func (lgs Logs) refilter() Logs {

	lgs.login = lgs.login.SetRows(filter.Rows(lgs.loginRows, lgs.search))
	lgs.logout = lgs.logout.SetRows(filter.Rows(lgs.logoutRows, lgs.search))
	return lgs
}

func (lgs Logs) focused() table.Table[nt.LogEntry] {

	if lgs.focus == nt.LogoutAction {
		return lgs.logout
	}
	return lgs.login
}

func (lgs Logs) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {

	var cmd tea.Cmd
	if lgs.focus == nt.LogoutAction {
		lgs.logout, cmd = lgs.logout.Update(msg)
	} else {
		lgs.login, cmd = lgs.login.Update(msg)
	}
	return lgs, cmd
}

func (lgs Logs) heading(action, text string) string {

	if lgs.focus == action {
		return style.TitleStyle.Render("> " + text)
	}
	return style.MutedStyle.Render("  " + text)
}

func (lgs Logs) renderSummary() string {

	days := make([]string, 0, len(lgs.daily))
	logins, logouts := 0, 0
	for _, day := range lgs.daily {
		days = append(days, fmt.Sprintf("%s %d/%d", day.Day, day.Login, day.Logout))
		logins += day.Login
		logouts += day.Logout
	}

	devices := make([]string, 0, len(lgs.devices))
	for _, dev := range lgs.devices {
		devices = append(devices, fmt.Sprintf("%s %d", dev.Class, dev.Count))
	}

	return strings.Join([]string{
		style.TitleStyle.Render(fmt.Sprintf("Last %d days: %d logins, %d logouts", summaryDays, logins, logouts)),
		style.MutedStyle.Render("in/out  ") + strings.Join(days, "  "),
		style.MutedStyle.Render("devices ") + strings.Join(devices, "  "),
	}, "\n")
}

func logColumns(loc *time.Location) []nt.Column[nt.LogEntry] {
	return []nt.Column[nt.LogEntry]{
		{Header: "Device", Width: 20, Render: func(row nt.LogEntry) string {
			return nt.ParseDevice(row.DeviceInfo).Name
		}},
		{Header: "Details", Width: 30, Render: func(row nt.LogEntry) string {
			return nt.ParseDevice(row.DeviceInfo).Details
		}},
		{Header: "IP", Width: 16, Render: func(row nt.LogEntry) string {
			if row.IpAddress != "" {
				return row.IpAddress
			}
			return nt.ParseDevice(row.DeviceInfo).Ip
		}},
		{Header: "Class", Width: 8, Render: func(row nt.LogEntry) string {
			return nt.DeviceClass(row.DeviceInfo)
		}},
		{Header: "Time", Width: 16, Render: func(row nt.LogEntry) string {
			return Stamp(loc, row.Timestamp)
		}},
	}
}

func other(action string) string {

	if action == nt.LoginAction {
		return nt.LogoutAction
	}
	return nt.LoginAction
}
