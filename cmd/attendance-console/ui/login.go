package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type errMsg error

type loginDoneMsg struct{}

type LoginModel struct {
	Session  *Session
	Inputs   []textinput.Model
	FocusIdx int
	Signup   bool
	Err      error
}

const (
	inputIDNumber = iota
	inputFullName
)

func NewLoginModel(s *Session) LoginModel {
	inputs := make([]textinput.Model, 2)

	inputs[inputIDNumber] = textinput.New()
	inputs[inputIDNumber].Placeholder = "123456789"
	inputs[inputIDNumber].Prompt = "ID number: "
	inputs[inputIDNumber].Focus()

	inputs[inputFullName] = textinput.New()
	inputs[inputFullName].Placeholder = "Dana Levi"
	inputs[inputFullName].Prompt = "Full name: "

	return LoginModel{Session: s, Inputs: inputs}
}

func (m LoginModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m LoginModel) Update(msg tea.Msg) (LoginModel, tea.Cmd) {
	cmds := make([]tea.Cmd, len(m.Inputs))

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEnter:
			return m, m.submitCmd
		case tea.KeyTab, tea.KeyDown:
			m.nextInput()
		case tea.KeyShiftTab, tea.KeyUp:
			m.prevInput()
		case tea.KeyCtrlN:
			// toggle between login and signup
			m.Signup = !m.Signup
			m.Err = nil
		}
	case errMsg:
		m.Err = msg
	}

	for i := range m.Inputs {
		m.Inputs[i], cmds[i] = m.Inputs[i].Update(msg)
	}
	return m, tea.Batch(cmds...)
}

func (m *LoginModel) nextInput() {
	if !m.Signup {
		return
	}
	m.Inputs[m.FocusIdx].Blur()
	m.FocusIdx = (m.FocusIdx + 1) % len(m.Inputs)
	m.Inputs[m.FocusIdx].Focus()
}

func (m *LoginModel) prevInput() {
	if !m.Signup {
		return
	}
	m.Inputs[m.FocusIdx].Blur()
	m.FocusIdx--
	if m.FocusIdx < 0 {
		m.FocusIdx = len(m.Inputs) - 1
	}
	m.Inputs[m.FocusIdx].Focus()
}

func (m LoginModel) submitCmd() tea.Msg {
	idNumber := strings.TrimSpace(m.Inputs[inputIDNumber].Value())
	if m.Signup {
		fullName := strings.TrimSpace(m.Inputs[inputFullName].Value())
		if err := m.Session.Signup(idNumber, fullName); err != nil {
			return errMsg(err)
		}
		return loginDoneMsg{}
	}
	if err := m.Session.Login(idNumber); err != nil {
		return errMsg(err)
	}
	return loginDoneMsg{}
}

func (m LoginModel) View() string {
	var b strings.Builder

	if m.Signup {
		b.WriteString(titleStyle.Render("Team Attendance - Sign Up") + "\n\n")
		b.WriteString(m.Inputs[inputIDNumber].View() + "\n")
		b.WriteString(m.Inputs[inputFullName].View())
	} else {
		b.WriteString(titleStyle.Render("Team Attendance - Login") + "\n\n")
		b.WriteString(m.Inputs[inputIDNumber].View())
	}

	b.WriteString("\n\n")
	b.WriteString(blurredStyle.Render("Enter to submit, Ctrl+N to switch login/signup"))

	if m.Err != nil {
		b.WriteString("\n\n")
		b.WriteString(errorMessageStyle(m.Err.Error()))
	}
	return b.String()
}
