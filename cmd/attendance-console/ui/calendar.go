package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type eventsLoadedMsg []Event

type openFormMsg struct{}

type openUsersMsg struct{}

type CalendarModel struct {
	Session *Session
	Table   table.Model
	Mine    bool
	Status  string
	Err     error
}

func NewCalendarModel(s *Session, width, height int) CalendarModel {
	columns := []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Time", Width: 13},
		{Title: "Type", Width: 14},
		{Title: "Who", Width: 20},
		{Title: "Notes", Width: 28},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(height-10),
	)

	sStyle := table.DefaultStyles()
	sStyle.Header = sStyle.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	sStyle.Selected = sStyle.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(sStyle)

	return CalendarModel{Session: s, Table: t}
}

func (m CalendarModel) Init() tea.Cmd { return m.refreshCmd }

func (m CalendarModel) refreshCmd() tea.Msg {
	var (
		events []Event
		err    error
	)
	if m.Mine {
		events, err = m.Session.MyEvents()
	} else {
		events, err = m.Session.TeamEvents()
	}
	if err != nil {
		return errMsg(err)
	}
	return eventsLoadedMsg(events)
}

func (m CalendarModel) Update(msg tea.Msg) (CalendarModel, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "r":
			return m, m.refreshCmd
		case "m":
			m.Mine = !m.Mine
			return m, m.refreshCmd
		case "n":
			return m, func() tea.Msg { return openFormMsg{} }
		case "u":
			if m.Session.Staff() {
				return m, func() tea.Msg { return openUsersMsg{} }
			}
		case "q":
			return m, tea.Quit
		}

	case eventsLoadedMsg:
		rows := make([]table.Row, 0, len(msg))
		for _, e := range msg {
			who := e.FullName
			if who == "" && m.Session.User != nil {
				who = m.Session.User.FullName
			}
			rows = append(rows, table.Row{e.EventDate, timeRange(e.StartTime, e.EndTime), e.Type, who, strOrEmpty(e.Notes)})
		}
		m.Table.SetRows(rows)
		m.Err = nil

	case errMsg:
		m.Err = msg
	}

	m.Table, cmd = m.Table.Update(msg)
	return m, cmd
}

func (m CalendarModel) View() string {
	var b strings.Builder
	if m.Mine {
		b.WriteString(titleStyle.Render("My Events") + "\n\n")
	} else {
		b.WriteString(titleStyle.Render("Team Calendar") + "\n\n")
	}
	b.WriteString(m.Table.View())
	b.WriteString("\n\n")
	help := "'r' refresh, 'm' mine/team, 'n' new event, 'q' quit"
	if m.Session.Staff() {
		help += ", 'u' users"
	}
	b.WriteString(blurredStyle.Render(help))

	if m.Status != "" {
		b.WriteString("\n" + statusMessageStyle(m.Status))
	}
	if m.Err != nil {
		b.WriteString("\n" + errorMessageStyle(m.Err.Error()))
	}
	return b.String()
}

func timeRange(start, end *string) string {
	if start == nil && end == nil {
		return "all day"
	}
	return strOrEmpty(start) + "-" + strOrEmpty(end)
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
