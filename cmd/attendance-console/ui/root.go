package ui

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"
)

type state int

const (
	stateLogin state = iota
	stateCalendar
	stateEventForm
	stateUsers
)

type RootModel struct {
	State    state
	Session  *Session
	Login    LoginModel
	Calendar CalendarModel
	Form     EventFormModel
	Users    UsersModel
	Quitting bool
	width    int
	height   int
}

func NewRootModel(serverURL string) RootModel {
	s := NewSession(serverURL)
	return RootModel{
		State:   stateLogin,
		Session: s,
		Login:   NewLoginModel(s),
	}
}

func (m RootModel) Init() tea.Cmd {
	return m.Login.Init()
}

func (m RootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.Calendar.Table.SetHeight(max(msg.Height-10, 3))
		m.Users.Table.SetHeight(max(msg.Height-10, 3))

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.Quitting = true
			return m, tea.Quit
		}

	case errMsg:
		// a stale token bounces the whole UI back to login
		if errors.Is(msg, ErrSessionExpired) {
			m.State = stateLogin
			m.Login = NewLoginModel(m.Session)
			m.Login.Err = msg
			return m, m.Login.Init()
		}
	}

	switch m.State {
	case stateLogin:
		if _, ok := msg.(loginDoneMsg); ok {
			m.State = stateCalendar
			m.Calendar = NewCalendarModel(m.Session, m.width, m.height)
			return m, m.Calendar.Init()
		}
		newLogin, cmd := m.Login.Update(msg)
		m.Login = newLogin
		cmds = append(cmds, cmd)

	case stateCalendar:
		switch msg.(type) {
		case openFormMsg:
			m.State = stateEventForm
			m.Form = NewEventFormModel(m.Session)
			return m, m.Form.Init()
		case openUsersMsg:
			m.State = stateUsers
			m.Users = NewUsersModel(m.Session, m.width, m.height)
			return m, m.Users.Init()
		}
		newCal, cmd := m.Calendar.Update(msg)
		m.Calendar = newCal
		cmds = append(cmds, cmd)

	case stateEventForm:
		switch msg.(type) {
		case eventCreatedMsg, formCancelledMsg:
			m.State = stateCalendar
			return m, m.Calendar.Init()
		}
		newForm, cmd := m.Form.Update(msg)
		m.Form = newForm
		cmds = append(cmds, cmd)

	case stateUsers:
		if _, ok := msg.(backToCalendarMsg); ok {
			m.State = stateCalendar
			return m, m.Calendar.Init()
		}
		newUsers, cmd := m.Users.Update(msg)
		m.Users = newUsers
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m RootModel) View() string {
	if m.Quitting {
		return "Bye!\n"
	}
	switch m.State {
	case stateLogin:
		return m.Login.View()
	case stateCalendar:
		return m.Calendar.View()
	case stateEventForm:
		return m.Form.View()
	case stateUsers:
		return m.Users.View()
	}
	return "Unknown state"
}
