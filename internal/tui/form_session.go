package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/xlevchenko/TwinTalk/models"
)

func (m appModel) openForm() (tea.Model, tea.Cmd) {
	m.screen = screenNewSession
	m.formErr = ""
	m.categoryIdx = 0
	m.titleInput.Reset()
	return m, m.titleInput.Focus()
}

func (m appModel) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.esc):
		m.screen = screenList
		m.titleInput.Blur()
		return m, nil
	case key.Matches(msg, keys.tab):
		m.categoryIdx = (m.categoryIdx + 1) % len(models.KnownCategories)
		return m, nil
	case key.Matches(msg, keys.backtab):
		m.categoryIdx = (m.categoryIdx - 1 + len(models.KnownCategories)) % len(models.KnownCategories)
		return m, nil
	case key.Matches(msg, keys.enter):
		session, err := m.controller.CreateNewSession(m.titleInput.Value(), models.KnownCategories[m.categoryIdx])
		if err != nil {
			m.formErr = humanizeError(err)
			return m, nil
		}
		m.titleInput.Blur()
		m.sessions = m.controller.Snapshot().Sessions
		m.idx = 0
		return m.openChat(session.ID)
	}

	var cmd tea.Cmd
	m.titleInput, cmd = m.titleInput.Update(msg)
	return m, cmd
}

func (m appModel) viewForm() string {
	var b strings.Builder

	b.WriteString(m.titleInput.View())
	b.WriteString("\n\nCategory: ")
	for i, c := range models.KnownCategories {
		if i == m.categoryIdx {
			b.WriteString(selectedStyle.Render("[" + string(c) + "]"))
		} else {
			b.WriteString(" " + string(c) + " ")
		}
		b.WriteString(" ")
	}
	if m.formErr != "" {
		b.WriteString("\n\n")
		b.WriteString(errorStyle.Render(m.formErr))
	}

	return renderPage("New conversation", b.String(), "enter: create  tab/shift+tab: category  esc: cancel")
}
