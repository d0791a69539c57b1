package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xlevchenko/TwinTalk/internal/adapter"
	"github.com/xlevchenko/TwinTalk/internal/service"
	"github.com/xlevchenko/TwinTalk/models"
)

// fakeController records calls and serves a fixed session list.
type fakeController struct {
	service.SessionController

	sessions   []models.Session
	lastErr    error
	sent       []string
	sendErr    error
	loads      int
	cleared    int
	createdCat models.Category
}

func (f *fakeController) LoadSessions(context.Context) error {
	f.loads++
	return nil
}

func (f *fakeController) SendMessage(_ context.Context, text, sessionID string) error {
	f.sent = append(f.sent, sessionID+":"+text)
	return f.sendErr
}

func (f *fakeController) CreateNewSession(title string, category models.Category) (models.Session, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return models.Session{}, service.ErrEmptySessionTitle
	}
	f.createdCat = category
	s := models.Session{ID: "new", Title: title, Category: category, Messages: []models.Message{}}
	f.sessions = append([]models.Session{s}, f.sessions...)
	return s, nil
}

func (f *fakeController) Snapshot() service.Snapshot {
	return service.Snapshot{Sessions: models.CloneSessions(f.sessions), LastErr: f.lastErr}
}

func (f *fakeController) Session(id string) (models.Session, bool) {
	for _, s := range f.sessions {
		if s.ID == id {
			return s.Clone(), true
		}
	}
	return models.Session{}, false
}

func (f *fakeController) ClearError() {
	f.cleared++
	f.lastErr = nil
}

func testSessions() []models.Session {
	return []models.Session{
		{
			ID: "s1", Title: "Promotion", Category: models.CategoryCareer, Date: "2024-05-01T09:00:00Z",
			Messages: []models.Message{
				{ID: "m1", Text: "first", Sender: models.SenderUser, Timestamp: "2024-05-01T09:00:00Z", Status: models.StatusSent},
				{ID: "m2", Text: "second", Sender: models.SenderAI, Timestamp: "2024-05-01T09:00:05Z", Status: models.StatusSent},
			},
		},
		{ID: "s2", Title: "Evening", Category: models.CategoryEmotions, Date: "2024-04-20T18:30:00Z", Messages: []models.Message{}},
	}
}

func newTestModel(t *testing.T) (appModel, *fakeController) {
	t.Helper()

	ctrl := &fakeController{sessions: testSessions()}
	m := newAppModel(context.Background(), ctrl, make(chan service.Snapshot), models.NewAppBuildInfo("1.0.0", "", ""))
	m = update(t, m, snapshotMsg(ctrl.Snapshot()))
	return m, ctrl
}

func update(t *testing.T, m appModel, msg tea.Msg) appModel {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(appModel)
	require.True(t, ok)
	return out
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// runCmd executes cmd and flattens batches.
func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, runCmd(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func TestAppModel_SnapshotRendersList(t *testing.T) {
	m, _ := newTestModel(t)

	view := m.View()
	assert.Contains(t, view, "Promotion")
	assert.Contains(t, view, "Evening")
	assert.Contains(t, view, "(2)")
}

func TestAppModel_SnapshotRearmsSubscription(t *testing.T) {
	ch := make(chan service.Snapshot, 1)
	ctrl := &fakeController{}
	m := newAppModel(context.Background(), ctrl, ch, models.AppBuildInfo{})

	ch <- service.Snapshot{Sessions: testSessions()}
	msgs := runCmd(waitForSnapshot(ch))
	require.Len(t, msgs, 1)

	_, cmd := m.Update(msgs[0])
	require.NotNil(t, cmd)

	close(ch)
	assert.Equal(t, []tea.Msg{subscriptionClosedMsg{}}, runCmd(cmd))
}

func TestAppModel_SyncDone(t *testing.T) {
	m, ctrl := newTestModel(t)
	require.True(t, m.syncing)

	msgs := runCmd(m.cmdSync())
	require.Len(t, msgs, 1)
	assert.Equal(t, 1, ctrl.loads)

	m = update(t, m, msgs[0])
	assert.False(t, m.syncing)
	assert.Equal(t, "Synced", m.status)
}

func TestAppModel_ListNavigationAndOpen(t *testing.T) {
	m, _ := newTestModel(t)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, m.idx)
	m = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, m.idx)
	m = update(t, m, keyRunes("k"))
	assert.Equal(t, 0, m.idx)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, screenChat, m.screen)
	assert.Equal(t, "s1", m.activeID)
	assert.Contains(t, m.View(), "second")

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, screenList, m.screen)
	assert.Empty(t, m.activeID)
}

func TestAppModel_SendMessage(t *testing.T) {
	m, ctrl := newTestModel(t)
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	m = update(t, m, keyRunes("hello"))
	assert.Equal(t, "hello", m.input.Value())

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(appModel)
	assert.Empty(t, m.input.Value())
	assert.Equal(t, 1, m.sending)

	var done tea.Msg
	for _, msg := range runCmd(cmd) {
		if d, ok := msg.(sendDoneMsg); ok {
			done = d
		}
	}
	require.NotNil(t, done)
	assert.Equal(t, []string{"s1:hello"}, ctrl.sent)

	m = update(t, m, done)
	assert.Equal(t, 0, m.sending)
}

func TestAppModel_BlankMessageIsIgnored(t *testing.T) {
	m, ctrl := newTestModel(t)
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = update(t, m, keyRunes("   "))

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.Empty(t, ctrl.sent)
}

func TestAppModel_CopySelectedMessage(t *testing.T) {
	var copied string
	orig := writeClipboard
	writeClipboard = func(text string) error {
		copied = text
		return nil
	}
	t.Cleanup(func() { writeClipboard = orig })

	m, _ := newTestModel(t)
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	require.True(t, m.selecting)
	assert.Equal(t, 1, m.msgIdx)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	m = update(t, m, keyRunes("c"))

	assert.Equal(t, "first", copied)
	assert.Equal(t, "Copied", m.status)

	writeClipboard = func(string) error { return errors.New("no clipboard") }
	m = update(t, m, keyRunes("c"))
	assert.Contains(t, m.status, "no clipboard")

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.selecting)
	assert.Equal(t, screenChat, m.screen)
}

func TestAppModel_NewSessionForm(t *testing.T) {
	m, ctrl := newTestModel(t)

	m = update(t, m, keyRunes("n"))
	require.Equal(t, screenNewSession, m.screen)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, screenNewSession, m.screen)
	assert.Equal(t, "A title is required", m.formErr)
	assert.Contains(t, m.View(), "A title is required")

	m = update(t, m, keyRunes("Weekly plan"))
	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, screenChat, m.screen)
	assert.Equal(t, "new", m.activeID)
	assert.Equal(t, models.KnownCategories[2], ctrl.createdCat)
	assert.Len(t, m.sessions, 3)
}

func TestAppModel_ErrorBanner(t *testing.T) {
	m, ctrl := newTestModel(t)

	offline := &adapter.Error{Kind: adapter.KindNetworkUnavailable}
	ctrl.lastErr = offline
	m = update(t, m, snapshotMsg(ctrl.Snapshot()))
	assert.Contains(t, m.View(), "No network connection")

	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlX})
	assert.Nil(t, m.lastErr)
	assert.Equal(t, 1, ctrl.cleared)
	assert.NotContains(t, m.View(), "No network connection")
}

func TestAppModel_BuildInfo(t *testing.T) {
	m, _ := newTestModel(t)

	m = update(t, m, keyRunes("v"))
	assert.Contains(t, m.View(), "Version: 1.0.0")

	// list keys are ignored while the window is open
	m = update(t, m, keyRunes("n"))
	assert.Equal(t, screenList, m.screen)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.showBuildInfo)
}

func TestAppModel_Quit(t *testing.T) {
	m, _ := newTestModel(t)

	next, cmd := m.Update(keyRunes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, next.View())

	// q is text inside a conversation
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = update(t, m, keyRunes("q"))
	assert.Equal(t, "q", m.input.Value())
}

func TestAppModel_SnapshotClampsSelection(t *testing.T) {
	m, _ := newTestModel(t)
	m = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	require.Equal(t, 1, m.idx)

	m = update(t, m, snapshotMsg(service.Snapshot{Sessions: testSessions()[:1]}))
	assert.Equal(t, 0, m.idx)

	m = update(t, m, syncDoneMsg{})
	m = update(t, m, snapshotMsg(service.Snapshot{}))
	assert.Equal(t, 0, m.idx)
	assert.Contains(t, m.View(), "No conversations yet")
}
