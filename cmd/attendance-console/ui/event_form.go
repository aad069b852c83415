package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type eventCreatedMsg struct{}

type formCancelledMsg struct{}

type EventFormModel struct {
	Session  *Session
	Inputs   []textinput.Model
	Labels   []string
	FocusIdx int
	Err      error
}

const (
	formDate = iota
	formStart
	formEnd
	formType
	formNotes
	formTarget // staff only: record on behalf of another id_number
)

func NewEventFormModel(s *Session) EventFormModel {
	labels := []string{"Date (YYYY-MM-DD): ", "Start (HH:MM): ", "End (HH:MM): ", "Type: ", "Notes: "}
	placeholders := []string{"2026-08-28", "09:00", "17:00", "vacation", ""}
	if s.Staff() {
		labels = append(labels, "For ID number: ")
		placeholders = append(placeholders, s.User.IDNumber)
	}

	inputs := make([]textinput.Model, len(labels))
	for i := range inputs {
		inputs[i] = textinput.New()
		inputs[i].Prompt = labels[i]
		inputs[i].Placeholder = placeholders[i]
	}
	inputs[formDate].Focus()

	return EventFormModel{Session: s, Inputs: inputs, Labels: labels}
}

func (m EventFormModel) Init() tea.Cmd { return textinput.Blink }

func (m EventFormModel) Update(msg tea.Msg) (EventFormModel, tea.Cmd) {
	cmds := make([]tea.Cmd, len(m.Inputs))

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEsc:
			return m, func() tea.Msg { return formCancelledMsg{} }
		case tea.KeyEnter:
			if m.FocusIdx == len(m.Inputs)-1 {
				return m, m.submitCmd
			}
			m.nextInput()
		case tea.KeyTab, tea.KeyDown:
			m.nextInput()
		case tea.KeyShiftTab, tea.KeyUp:
			m.prevInput()
		}
	case errMsg:
		m.Err = msg
	}

	for i := range m.Inputs {
		m.Inputs[i], cmds[i] = m.Inputs[i].Update(msg)
	}
	return m, tea.Batch(cmds...)
}

func (m *EventFormModel) nextInput() {
	m.Inputs[m.FocusIdx].Blur()
	m.FocusIdx = (m.FocusIdx + 1) % len(m.Inputs)
	m.Inputs[m.FocusIdx].Focus()
}

func (m *EventFormModel) prevInput() {
	m.Inputs[m.FocusIdx].Blur()
	m.FocusIdx--
	if m.FocusIdx < 0 {
		m.FocusIdx = len(m.Inputs) - 1
	}
	m.Inputs[m.FocusIdx].Focus()
}

func (m EventFormModel) submitCmd() tea.Msg {
	req := map[string]interface{}{
		"event_date": strings.TrimSpace(m.Inputs[formDate].Value()),
		"type":       strings.TrimSpace(m.Inputs[formType].Value()),
	}
	if v := strings.TrimSpace(m.Inputs[formStart].Value()); v != "" {
		req["start_time"] = v
	}
	if v := strings.TrimSpace(m.Inputs[formEnd].Value()); v != "" {
		req["end_time"] = v
	}
	if v := strings.TrimSpace(m.Inputs[formNotes].Value()); v != "" {
		req["notes"] = v
	}
	if len(m.Inputs) > formTarget {
		if v := strings.TrimSpace(m.Inputs[formTarget].Value()); v != "" {
			req["id_number_target"] = v
		}
	}
	if err := m.Session.CreateEvent(req); err != nil {
		return errMsg(err)
	}
	return eventCreatedMsg{}
}

func (m EventFormModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("New Event") + "\n\n")
	for i := range m.Inputs {
		b.WriteString(m.Inputs[i].View())
		b.WriteRune('\n')
	}
	b.WriteString("\n")
	b.WriteString(blurredStyle.Render("Tab to move, Enter on last field to save, Esc to cancel"))
	if m.Err != nil {
		b.WriteString("\n\n" + errorMessageStyle(m.Err.Error()))
	}
	return b.String()
}
