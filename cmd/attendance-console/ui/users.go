package ui

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type usersLoadedMsg []User

type usersStatusMsg string

type backToCalendarMsg struct{}

// UsersModel is the staff administration view: role toggling, user deletion
// and the CSV export download.
type UsersModel struct {
	Session *Session
	Table   table.Model
	Users   []User
	Status  string
	Err     error
}

func NewUsersModel(s *Session, width, height int) UsersModel {
	columns := []table.Column{
		{Title: "ID", Width: 6},
		{Title: "ID Number", Width: 12},
		{Title: "Name", Width: 24},
		{Title: "Role", Width: 10},
		{Title: "Color", Width: 9},
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

	return UsersModel{Session: s, Table: t}
}

func (m UsersModel) Init() tea.Cmd { return m.refreshCmd }

func (m UsersModel) refreshCmd() tea.Msg {
	users, err := m.Session.Users()
	if err != nil {
		return errMsg(err)
	}
	return usersLoadedMsg(users)
}

func (m UsersModel) selected() *User {
	row := m.Table.SelectedRow()
	if len(row) == 0 {
		return nil
	}
	id, err := strconv.ParseUint(row[0], 10, 32)
	if err != nil {
		return nil
	}
	for i := range m.Users {
		if m.Users[i].ID == uint(id) {
			return &m.Users[i]
		}
	}
	return nil
}

func (m UsersModel) Update(msg tea.Msg) (UsersModel, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "r":
			return m, m.refreshCmd
		case "t":
			if u := m.selected(); u != nil {
				next := "staff"
				if u.Role == "staff" {
					next = "developer"
				}
				return m, func() tea.Msg {
					if err := m.Session.UpdateRole(u.ID, next); err != nil {
						return errMsg(err)
					}
					return m.refreshCmd()
				}
			}
		case "d":
			if u := m.selected(); u != nil {
				return m, func() tea.Msg {
					if err := m.Session.DeleteUser(u.ID); err != nil {
						return errMsg(err)
					}
					return m.refreshCmd()
				}
			}
		case "x":
			return m, m.exportCmd
		case "esc":
			return m, func() tea.Msg { return backToCalendarMsg{} }
		case "q":
			return m, tea.Quit
		}

	case usersLoadedMsg:
		m.Users = msg
		rows := make([]table.Row, 0, len(msg))
		for _, u := range msg {
			rows = append(rows, table.Row{strconv.FormatUint(uint64(u.ID), 10), u.IDNumber, u.FullName, u.Role, u.Color})
		}
		m.Table.SetRows(rows)
		m.Err = nil

	case usersStatusMsg:
		m.Status = string(msg)
		m.Err = nil

	case errMsg:
		m.Err = msg
	}

	m.Table, cmd = m.Table.Update(msg)
	return m, cmd
}

func (m UsersModel) exportCmd() tea.Msg {
	body, err := m.Session.ExportCSV()
	if err != nil {
		return errMsg(err)
	}
	name := "team-calendar.csv"
	if err := os.WriteFile(name, body, 0o644); err != nil {
		return errMsg(err)
	}
	return usersStatusMsg(fmt.Sprintf("exported %d bytes to %s", len(body), name))
}

func (m UsersModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Users") + "\n\n")
	b.WriteString(m.Table.View())
	b.WriteString("\n\n")
	b.WriteString(blurredStyle.Render("'t' toggle role, 'd' delete, 'x' export CSV, 'r' refresh, Esc back"))
	if m.Status != "" {
		b.WriteString("\n" + statusMessageStyle(m.Status))
	}
	if m.Err != nil {
		b.WriteString("\n" + errorMessageStyle(m.Err.Error()))
	}
	return b.String()
}
