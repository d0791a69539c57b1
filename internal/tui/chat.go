package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/xlevchenko/TwinTalk/models"
)

// chat screen chrome: title, dividers, input and help lines
const chatChromeHeight = 10

func (m appModel) openChat(sessionID string) (tea.Model, tea.Cmd) {
	m.screen = screenChat
	m.activeID = sessionID
	m.selecting = false
	m.input.Reset()
	cmd := m.input.Focus()
	m.resizeViewport()
	m.refreshViewport()
	return m, cmd
}

func (m appModel) updateChat(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.selecting {
		return m.updateSelection(msg)
	}

	switch {
	case key.Matches(msg, keys.esc):
		m.screen = screenList
		m.activeID = ""
		m.input.Blur()
		return m, nil
	case key.Matches(msg, keys.tab):
		s, ok := m.activeSession()
		if !ok || len(s.Messages) == 0 {
			return m, nil
		}
		m.selecting = true
		m.msgIdx = len(s.Messages) - 1
		m.input.Blur()
		m.refreshViewport()
		return m, nil
	case key.Matches(msg, keys.enter):
		text := m.input.Value()
		if strings.TrimSpace(text) == "" {
			return m, nil
		}
		m.input.Reset()
		m.sending++
		return m, tea.Batch(m.cmdSend(m.activeID, text), m.spinner.Tick)
	case msg.Type == tea.KeyPgUp || msg.Type == tea.KeyPgDown:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m appModel) updateSelection(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s, _ := m.activeSession()

	switch {
	case key.Matches(msg, keys.esc), key.Matches(msg, keys.tab):
		m.selecting = false
		cmd := m.input.Focus()
		m.refreshViewport()
		return m, cmd
	case key.Matches(msg, keys.up):
		if m.msgIdx > 0 {
			m.msgIdx--
		}
	case key.Matches(msg, keys.down):
		if m.msgIdx < len(s.Messages)-1 {
			m.msgIdx++
		}
	case key.Matches(msg, keys.copy):
		if m.msgIdx < 0 || m.msgIdx >= len(s.Messages) {
			return m, nil
		}
		if err := writeClipboard(s.Messages[m.msgIdx].Text); err != nil {
			m.status = "Copy failed: " + err.Error()
		} else {
			m.status = "Copied"
		}
		return m, clearStatusAfter(statusTTL)
	}

	m.refreshViewport()
	return m, nil
}

func (m *appModel) resizeViewport() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	m.viewport.Width = max(m.width-4, 20)
	m.viewport.Height = max(m.height-chatChromeHeight, 3)
	m.input.Width = max(m.width-8, 20)
}

func (m *appModel) refreshViewport() {
	if m.screen != screenChat {
		return
	}
	s, ok := m.activeSession()
	if !ok {
		m.viewport.SetContent("This conversation is not available.")
		return
	}

	m.viewport.SetContent(m.renderMessages(s))
	if !m.selecting {
		m.viewport.GotoBottom()
	}
}

func (m appModel) renderMessages(s models.Session) string {
	if len(s.Messages) == 0 {
		return faintStyle.Render("No messages yet. Say hello.")
	}

	var b strings.Builder
	for i, msg := range s.Messages {
		author := userStyle.Render("You")
		if msg.Sender == models.SenderAI {
			author = aiStyle.Render("Twin")
		}

		cursor := "  "
		if m.selecting && i == m.msgIdx {
			cursor = selectedStyle.Render("> ")
		}

		fmt.Fprintf(&b, "%s%s  %s%s\n", cursor, author, faintStyle.Render(shortTime(msg.Timestamp, m.now())), statusMark(msg))
		for _, line := range strings.Split(msg.Text, "\n") {
			b.WriteString("    ")
			b.WriteString(line)
			b.WriteString("\n")
		}
		if i < len(s.Messages)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m appModel) viewChat() string {
	s, ok := m.activeSession()
	title := "Conversation"
	if ok {
		title = fmt.Sprintf("%s  [%s]", s.Title, s.Category)
	}

	help := "enter: send  tab: select messages  pgup/pgdn: scroll  ctrl+r: sync  esc: back"
	if m.selecting {
		help = "up/down: move  c: copy  tab/esc: back to input"
	}

	return renderPage(title, m.viewport.View()+"\n\n"+m.input.View(), help)
}
