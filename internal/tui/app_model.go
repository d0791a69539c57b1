package tui

import (
	"context"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/xlevchenko/TwinTalk/internal/service"
	"github.com/xlevchenko/TwinTalk/models"
)

type screen int

const (
	screenList screen = iota
	screenChat
	screenNewSession
)

const statusTTL = 3 * time.Second

// writeClipboard is replaced in tests.
var writeClipboard = clipboard.WriteAll

// appModel is the root bubbletea model. It renders the latest controller
// snapshot and turns key presses into controller calls.
type appModel struct {
	ctx        context.Context
	controller service.SessionController
	snapshots  <-chan service.Snapshot
	buildInfo  models.AppBuildInfo
	now        func() time.Time

	screen   screen
	sessions []models.Session
	lastErr  error
	idx      int
	activeID string

	syncing bool
	sending int
	spinner spinner.Model
	status  string

	input     textinput.Model
	viewport  viewport.Model
	selecting bool
	msgIdx    int

	titleInput  textinput.Model
	categoryIdx int
	formErr     string

	showBuildInfo bool
	quitting      bool
	width         int
	height        int
}

func newAppModel(ctx context.Context, controller service.SessionController, snapshots <-chan service.Snapshot, buildInfo models.AppBuildInfo) appModel {
	s := spinner.New()
	s.Spinner = spinner.MiniDot

	input := textinput.New()
	input.Placeholder = "Type a message"
	input.CharLimit = 4000
	input.Width = 60

	title := textinput.New()
	title.Placeholder = "Title"
	title.CharLimit = 120
	title.Width = 40

	return appModel{
		ctx:        ctx,
		controller: controller,
		snapshots:  snapshots,
		buildInfo:  buildInfo,
		now:        time.Now,
		spinner:    s,
		input:      input,
		viewport:   viewport.New(80, 20),
		titleInput: title,
		syncing:    true,
	}
}

func (m appModel) Init() tea.Cmd {
	return tea.Batch(
		waitForSnapshot(m.snapshots),
		m.cmdSync(),
		m.spinner.Tick,
	)
}

func waitForSnapshot(ch <-chan service.Snapshot) tea.Cmd {
	return func() tea.Msg {
		snap, ok := <-ch
		if !ok {
			return subscriptionClosedMsg{}
		}
		return snapshotMsg(snap)
	}
}

func (m appModel) cmdSync() tea.Cmd {
	return func() tea.Msg {
		return syncDoneMsg{err: m.controller.LoadSessions(m.ctx)}
	}
}

func (m appModel) cmdSend(sessionID, text string) tea.Cmd {
	return func() tea.Msg {
		return sendDoneMsg{err: m.controller.SendMessage(m.ctx, text, sessionID)}
	}
}

func clearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return clearStatusMsg{} })
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case snapshotMsg:
		m.applySnapshot(service.Snapshot(msg))
		return m, waitForSnapshot(m.snapshots)
	case subscriptionClosedMsg:
		return m, nil
	case syncDoneMsg:
		m.syncing = false
		if msg.err == nil {
			m.status = "Synced"
			return m, clearStatusAfter(statusTTL)
		}
		return m, nil
	case sendDoneMsg:
		if m.sending > 0 {
			m.sending--
		}
		return m, nil
	case clearStatusMsg:
		m.status = ""
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resizeViewport()
		m.refreshViewport()
		return m, nil
	case tea.KeyMsg:
		return m.updateKeys(msg)
	}

	var cmd tea.Cmd
	switch m.screen {
	case screenChat:
		m.input, cmd = m.input.Update(msg)
	case screenNewSession:
		m.titleInput, cmd = m.titleInput.Update(msg)
	}
	return m, cmd
}

func (m appModel) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.forceQuit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, keys.dismiss):
		m.controller.ClearError()
		m.lastErr = nil
		return m, nil
	case key.Matches(msg, keys.syncAlways):
		return m.startSync()
	}

	if m.showBuildInfo {
		if key.Matches(msg, keys.esc) || key.Matches(msg, keys.buildInfo) {
			m.showBuildInfo = false
		}
		return m, nil
	}

	switch m.screen {
	case screenChat:
		return m.updateChat(msg)
	case screenNewSession:
		return m.updateForm(msg)
	default:
		return m.updateList(msg)
	}
}

func (m appModel) startSync() (tea.Model, tea.Cmd) {
	if m.syncing {
		return m, nil
	}
	m.syncing = true
	m.status = "Syncing..."
	return m, tea.Batch(m.cmdSync(), m.spinner.Tick)
}

func (m *appModel) applySnapshot(snap service.Snapshot) {
	m.sessions = snap.Sessions
	m.lastErr = snap.LastErr

	if m.idx >= len(m.sessions) {
		m.idx = len(m.sessions) - 1
	}
	if m.idx < 0 {
		m.idx = 0
	}

	if s, ok := m.activeSession(); ok && m.msgIdx >= len(s.Messages) {
		m.msgIdx = max(len(s.Messages)-1, 0)
	}
	m.refreshViewport()
}

func (m appModel) activeSession() (models.Session, bool) {
	if m.activeID == "" {
		return models.Session{}, false
	}
	for _, s := range m.sessions {
		if s.ID == m.activeID {
			return s, true
		}
	}
	return m.controller.Session(m.activeID)
}

func (m appModel) View() string {
	if m.quitting {
		return ""
	}
	if m.showBuildInfo {
		return appStyle.Render(renderBuildInfoWindow(m.buildInfo))
	}

	var body string
	switch m.screen {
	case screenChat:
		body = m.viewChat()
	case screenNewSession:
		body = m.viewForm()
	default:
		body = m.viewList()
	}

	var b strings.Builder
	if banner := renderErrorBanner(m.lastErr, m.width); banner != "" {
		b.WriteString(banner)
		b.WriteString("\n")
	}
	b.WriteString(body)
	if line := m.statusLine(); line != "" {
		b.WriteString("\n")
		b.WriteString(line)
	}

	return appStyle.Render(b.String())
}

func (m appModel) statusLine() string {
	parts := make([]string, 0, 3)
	if m.syncing {
		parts = append(parts, m.spinner.View()+" syncing")
	}
	if m.sending > 0 {
		parts = append(parts, m.spinner.View()+" waiting for reply")
	}
	if m.status != "" && !m.syncing {
		parts = append(parts, m.status)
	}
	return faintStyle.Render(strings.Join(parts, "   "))
}
