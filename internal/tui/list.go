package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func (m appModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, keys.up):
		if m.idx > 0 {
			m.idx--
		}
	case key.Matches(msg, keys.down):
		if m.idx < len(m.sessions)-1 {
			m.idx++
		}
	case key.Matches(msg, keys.enter):
		if len(m.sessions) == 0 {
			return m, nil
		}
		return m.openChat(m.sessions[m.idx].ID)
	case key.Matches(msg, keys.newSession):
		return m.openForm()
	case key.Matches(msg, keys.sync):
		return m.startSync()
	case key.Matches(msg, keys.buildInfo):
		m.showBuildInfo = true
	}

	return m, nil
}

func (m appModel) viewList() string {
	var b strings.Builder

	switch {
	case len(m.sessions) == 0 && m.syncing:
		b.WriteString("Loading...")
	case len(m.sessions) == 0:
		b.WriteString("No conversations yet. Press n to start one.")
	default:
		for i, s := range m.sessions {
			line := fmt.Sprintf("%s  [%s]  %s  (%d)",
				fitText(s.Title, 40),
				s.Category,
				shortTime(s.Date, m.now()),
				len(s.Messages),
			)
			if i == m.idx {
				b.WriteString(selectedStyle.Render("> " + line))
			} else {
				b.WriteString("  " + line)
			}
			if s.Summary != "" {
				b.WriteString("\n    ")
				b.WriteString(faintStyle.Render(fitText(s.Summary, 70)))
			}
			if i < len(m.sessions)-1 {
				b.WriteString("\n")
			}
		}
	}

	return renderPage("TwinTalk", b.String(), "enter: open  n: new  s: sync  v: about  q: quit")
}
