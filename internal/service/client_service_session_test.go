package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/xlevchenko/TwinTalk/internal/adapter"
	"github.com/xlevchenko/TwinTalk/internal/config"
	"github.com/xlevchenko/TwinTalk/internal/logger"
	"github.com/xlevchenko/TwinTalk/internal/mock"
	"github.com/xlevchenko/TwinTalk/internal/store"
	"github.com/xlevchenko/TwinTalk/models"
)

// fakeSync returns canned results and records the pending overlay.
type fakeSync struct {
	mu      sync.Mutex
	out     []models.Session
	err     error
	pending [][]models.Session
}

func (f *fakeSync) Sync(_ context.Context, pending ...models.Session) ([]models.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pending = append(f.pending, pending)
	return models.CloneSessions(f.out), f.err
}

// seqIDs hands out id-1, id-2, ...
type seqIDs struct {
	mu sync.Mutex
	n  int
}

func (s *seqIDs) Generate() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	return fmt.Sprintf("id-%d", s.n)
}

func newTestController(syncSvc SyncService, replies ReplySource) *sessionController {
	c := NewSessionController(syncSvc, replies, &seqIDs{}, logger.Nop()).(*sessionController)
	c.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }
	return c
}

func remoteFixture() []models.Session {
	return []models.Session{
		sess("s1", "2024-05-01T09:00:00Z",
			msg("m1", "2024-05-01T09:00:00Z", models.SenderUser),
			msg("m2", "2024-05-01T09:00:05Z", models.SenderAI),
		),
		sess("s2", "2024-04-20T18:30:00Z"),
	}
}

// ── LoadSessions ─────────────────────────────────────────────────────────────

func TestSessionController_LoadSessions_ReplacesList(t *testing.T) {
	c := newTestController(&fakeSync{out: remoteFixture()}, nil)

	require.NoError(t, c.LoadSessions(context.Background()))

	snap := c.Snapshot()
	assert.Equal(t, []string{"s1", "s2"}, ids(snap.Sessions))
	assert.Len(t, snap.Sessions[0].Messages, 2)
	assert.NoError(t, snap.LastErr)
}

func TestSessionController_LoadSessions_FailureKeepsList(t *testing.T) {
	syncSvc := &fakeSync{out: remoteFixture()}
	c := newTestController(syncSvc, nil)
	require.NoError(t, c.LoadSessions(context.Background()))

	syncSvc.out = []models.Session{sess("cached", "d")}
	syncSvc.err = adapter.ErrTimeout

	err := c.LoadSessions(context.Background())

	assert.ErrorIs(t, err, adapter.ErrTimeout)
	assert.Equal(t, []string{"s1", "s2"}, ids(c.Snapshot().Sessions))
	assert.ErrorIs(t, c.LastError(), adapter.ErrTimeout)
}

func TestSessionController_LoadSessions_ColdOfflineStartShowsCache(t *testing.T) {
	c := newTestController(&fakeSync{out: []models.Session{sess("cached", "d")}, err: adapter.ErrNetworkUnavailable}, nil)

	err := c.LoadSessions(context.Background())

	require.Error(t, err)
	assert.Equal(t, []string{"cached"}, ids(c.Snapshot().Sessions))
}

func TestSessionController_LoadSessions_SuccessClearsError(t *testing.T) {
	syncSvc := &fakeSync{err: adapter.ErrTimeout}
	c := newTestController(syncSvc, nil)
	_ = c.LoadSessions(context.Background())
	require.Error(t, c.LastError())

	syncSvc.err = nil
	syncSvc.out = remoteFixture()
	require.NoError(t, c.LoadSessions(context.Background()))

	assert.NoError(t, c.LastError())
}

func TestSessionController_LoadSessions_PassesMemoryAsOverlay(t *testing.T) {
	syncSvc := &fakeSync{}
	c := newTestController(syncSvc, nil)
	created, err := c.CreateNewSession("Plans", models.CategoryProductivity)
	require.NoError(t, err)

	syncSvc.out = []models.Session{created}
	require.NoError(t, c.LoadSessions(context.Background()))

	require.Len(t, syncSvc.pending, 1)
	assert.Equal(t, []string{created.ID}, ids(syncSvc.pending[0]))
}

// ── SendMessage ──────────────────────────────────────────────────────────────

func TestSessionController_SendMessage_EmptyTextIsNoop(t *testing.T) {
	ctrl := gomock.NewController(t)
	replies := mock.NewMockReplySource(ctrl) // no calls expected
	c := newTestController(&fakeSync{out: remoteFixture()}, replies)
	require.NoError(t, c.LoadSessions(context.Background()))
	before := c.Snapshot()

	for _, text := range []string{"", "   ", "\n\t"} {
		require.NoError(t, c.SendMessage(context.Background(), text, "s1"))
	}

	assert.Equal(t, before, c.Snapshot())
}

func TestSessionController_SendMessage_UnknownSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	replies := mock.NewMockReplySource(ctrl)
	c := newTestController(&fakeSync{out: remoteFixture()}, replies)
	require.NoError(t, c.LoadSessions(context.Background()))

	err := c.SendMessage(context.Background(), "hello", "nope")

	assert.ErrorIs(t, err, ErrSessionNotFound)
	snap := c.Snapshot()
	assert.Len(t, snap.Sessions[0].Messages, 2)
	assert.Len(t, snap.Sessions[1].Messages, 0)
}

func TestSessionController_SendMessage_AppendsReply(t *testing.T) {
	ctrl := gomock.NewController(t)
	replies := mock.NewMockReplySource(ctrl)
	c := newTestController(&fakeSync{out: remoteFixture()}, replies)
	require.NoError(t, c.LoadSessions(context.Background()))

	replies.EXPECT().
		Deliver(gomock.Any(), "s2", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, m models.Message) (*models.Message, error) {
			// the optimistic message is already visible
			s, ok := c.Session("s2")
			assert.True(t, ok)
			assert.Len(t, s.Messages, 1)
			assert.Equal(t, models.StatusPending, m.Status)
			assert.Equal(t, "hello", m.Text)
			assert.Equal(t, models.SenderUser, m.Sender)
			return &models.Message{Text: "hi there"}, nil
		})

	require.NoError(t, c.SendMessage(context.Background(), "hello", "s2"))

	s, _ := c.Session("s2")
	require.Len(t, s.Messages, 2)
	assert.Equal(t, "id-1", s.Messages[0].ID)
	assert.Equal(t, "2024-05-01T12:00:00.000Z", s.Messages[0].Timestamp)
	assert.Equal(t, models.StatusSent, s.Messages[0].Status)
	assert.Equal(t, models.SenderAI, s.Messages[1].Sender)
	assert.Equal(t, "id-2", s.Messages[1].ID)
	assert.Equal(t, models.StatusSent, s.Messages[1].Status)
}

func TestSessionController_SendMessage_FailureMarksFailed(t *testing.T) {
	ctrl := gomock.NewController(t)
	replies := mock.NewMockReplySource(ctrl)
	c := newTestController(&fakeSync{out: remoteFixture()}, replies)
	require.NoError(t, c.LoadSessions(context.Background()))

	sendErr := &adapter.Error{Kind: adapter.KindServerError, StatusCode: 500}
	replies.EXPECT().Deliver(gomock.Any(), "s1", gomock.Any()).Return(nil, sendErr)

	err := c.SendMessage(context.Background(), "hello", "s1")

	assert.ErrorIs(t, err, adapter.ErrServerError)
	s, _ := c.Session("s1")
	require.Len(t, s.Messages, 3)
	assert.Equal(t, models.StatusFailed, s.Messages[2].Status)
	assert.ErrorIs(t, c.LastError(), adapter.ErrServerError)

	c.ClearError()
	assert.NoError(t, c.LastError())
}

func TestSessionController_SendMessage_NilReplyOnlySettles(t *testing.T) {
	ctrl := gomock.NewController(t)
	replies := mock.NewMockReplySource(ctrl)
	c := newTestController(&fakeSync{out: remoteFixture()}, replies)
	require.NoError(t, c.LoadSessions(context.Background()))

	replies.EXPECT().Deliver(gomock.Any(), "s1", gomock.Any()).Return(nil, nil)

	require.NoError(t, c.SendMessage(context.Background(), "hello", "s1"))

	s, _ := c.Session("s1")
	require.Len(t, s.Messages, 3)
	assert.Equal(t, models.StatusSent, s.Messages[2].Status)
}

func TestSessionController_SendMessage_SurvivesCallerCancellation(t *testing.T) {
	c := newTestController(&fakeSync{out: remoteFixture()}, NewSimulatedReplySource(20*time.Millisecond, ""))
	require.NoError(t, c.LoadSessions(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, c.SendMessage(ctx, "hello", "s2"))

	s, _ := c.Session("s2")
	require.Len(t, s.Messages, 2)
	assert.Equal(t, config.DefaultReplyText, s.Messages[1].Text)
}

// ── CreateNewSession ─────────────────────────────────────────────────────────

func TestSessionController_CreateNewSession(t *testing.T) {
	c := newTestController(&fakeSync{out: remoteFixture()}, nil)
	require.NoError(t, c.LoadSessions(context.Background()))

	created, err := c.CreateNewSession("  Weekly review ", "")

	require.NoError(t, err)
	assert.Equal(t, "id-1", created.ID)
	assert.Equal(t, "Weekly review", created.Title)
	assert.Equal(t, models.CategoryOther, created.Category)
	assert.Equal(t, "2024-05-01T12:00:00.000Z", created.Date)
	assert.NotNil(t, created.Messages)
	assert.Equal(t, []string{"id-1", "s1", "s2"}, ids(c.Snapshot().Sessions))

	_, err = c.CreateNewSession(" ", models.CategoryCareer)
	assert.ErrorIs(t, err, ErrEmptySessionTitle)
}

// ── Snapshot / Subscribe ─────────────────────────────────────────────────────

func TestSessionController_SnapshotIsDeepCopy(t *testing.T) {
	c := newTestController(&fakeSync{out: remoteFixture()}, nil)
	require.NoError(t, c.LoadSessions(context.Background()))

	snap := c.Snapshot()
	snap.Sessions[0].Messages[0].Text = "mutated"
	snap.Sessions[0].Title = "mutated"

	s, _ := c.Session("s1")
	assert.Equal(t, "text m1", s.Messages[0].Text)
	assert.Equal(t, "title s1", s.Title)
}

func TestSessionController_SubscribeDeliversLatest(t *testing.T) {
	c := newTestController(&fakeSync{out: remoteFixture()}, nil)

	updates, unsubscribe := c.Subscribe()

	initial := <-updates
	assert.Empty(t, initial.Sessions)

	require.NoError(t, c.LoadSessions(context.Background()))
	_, err := c.CreateNewSession("one", models.CategoryCareer)
	require.NoError(t, err)

	// only the latest snapshot is buffered
	latest := <-updates
	assert.Len(t, latest.Sessions, 3)
	select {
	case extra := <-updates:
		t.Fatalf("unexpected stale snapshot: %+v", extra)
	default:
	}

	unsubscribe()
	unsubscribe()
	_, open := <-updates
	assert.False(t, open)

	// publishing after unsubscribe must not panic
	_, err = c.CreateNewSession("two", models.CategoryCareer)
	require.NoError(t, err)
}

func TestSessionController_ConcurrentSendsKeepEveryMessage(t *testing.T) {
	c := newTestController(&fakeSync{out: remoteFixture()}, NewSimulatedReplySource(time.Millisecond, "ok"))
	require.NoError(t, c.LoadSessions(context.Background()))

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			assert.NoError(t, c.SendMessage(context.Background(), fmt.Sprintf("msg %d", i), "s2"))
		}(i)
	}
	wg.Wait()

	s, _ := c.Session("s2")
	assert.Len(t, s.Messages, 20)
	for _, m := range s.Messages {
		assert.Equal(t, models.StatusSent, m.Status)
	}
}

func TestAdoptSynced_KeepsConcurrentChanges(t *testing.T) {
	settled := msg("u1", "2024-05-01T10:00:00Z", models.SenderUser)
	settled.Status = models.StatusSent
	appended := msg("u2", "2024-05-01T10:01:00Z", models.SenderUser)
	appended.Status = models.StatusPending
	current := []models.Session{sess("s1", "d", settled, appended), sess("new", "2024-06-01T00:00:00Z")}

	stale := msg("u1", "2024-05-01T10:00:00Z", models.SenderUser)
	stale.Status = models.StatusPending
	fresh := []models.Session{sess("s1", "d", stale)}

	got := adoptSynced(current, fresh)

	require.Equal(t, []string{"s1", "new"}, ids(got))
	require.Equal(t, []string{"u1", "u2"}, keys(got[0].Messages))
	assert.Equal(t, models.StatusSent, got[0].Messages[0].Status)
	assert.Equal(t, models.StatusPending, got[0].Messages[1].Status)
}

func TestSessionController_SendMessage_SkipsDuplicateReply(t *testing.T) {
	ctrl := gomock.NewController(t)
	replies := mock.NewMockReplySource(ctrl)
	c := newTestController(&fakeSync{out: remoteFixture()}, replies)
	require.NoError(t, c.LoadSessions(context.Background()))

	shared := models.Message{ID: "a1", Text: "same frame", Sender: models.SenderAI, Timestamp: "2024-05-01T12:00:01.000Z"}
	replies.EXPECT().Deliver(gomock.Any(), "s2", gomock.Any()).Return(&shared, nil).Times(2)

	require.NoError(t, c.SendMessage(context.Background(), "one", "s2"))
	require.NoError(t, c.SendMessage(context.Background(), "two", "s2"))

	s, _ := c.Session("s2")
	assert.Equal(t, []string{"id-1", "id-2", "a1"}, keys(s.Messages))
}

func TestSessionController_SendMessage_ReplyKeepsTimestampOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	replies := mock.NewMockReplySource(ctrl)
	c := newTestController(&fakeSync{out: remoteFixture()}, replies)
	require.NoError(t, c.LoadSessions(context.Background()))

	// server clock is a minute behind
	replies.EXPECT().Deliver(gomock.Any(), "s2", gomock.Any()).
		Return(&models.Message{ID: "a1", Text: "early", Sender: models.SenderAI, Timestamp: "2024-05-01T11:59:00.000Z"}, nil)

	require.NoError(t, c.SendMessage(context.Background(), "hello", "s2"))

	s, _ := c.Session("s2")
	assert.Equal(t, []string{"a1", "id-1"}, keys(s.Messages))
}

// memoryRepo is a LocalSessionRepository kept in a map.
type memoryRepo struct {
	mu       sync.Mutex
	sessions map[string]models.Session
}

func (r *memoryRepo) ReadAll(context.Context) ([]models.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		out = append(out, s.Clone())
	}
	models.SortSessions(out)
	return out, nil
}

func (r *memoryRepo) UpsertAll(_ context.Context, sessions ...models.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range sessions {
		r.sessions[s.ID] = s.Clone()
	}
	return nil
}

// reIDRemote stores posted messages under its own IDs, srv-1, srv-2, ...
type reIDRemote struct {
	mu       sync.Mutex
	sessions []models.Session
	n        int
}

func (r *reIDRemote) FetchSessions(context.Context) ([]models.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return models.CloneSessions(r.sessions), nil
}

func (r *reIDRemote) SendMessage(_ context.Context, message models.Message, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.sessions {
		if r.sessions[i].ID != sessionID {
			continue
		}
		r.n++
		message.ID = fmt.Sprintf("srv-%d", r.n)
		message.Status = ""
		r.sessions[i].Messages = append(r.sessions[i].Messages, message)
		return nil
	}
	return errors.New("unknown session")
}

func TestSessionController_HTTPReplies_RemoteIDsDoNotDuplicate(t *testing.T) {
	repo := &memoryRepo{sessions: map[string]models.Session{}}
	remote := &reIDRemote{sessions: remoteFixture()}

	syncSvc := NewClientSyncService(&store.ClientStorages{SessionRepository: repo}, remote, config.ClientWorkers{}, logger.Nop())
	c := newTestController(syncSvc, NewHTTPReplySource(remote))
	ctx := context.Background()

	require.NoError(t, c.LoadSessions(ctx))
	require.NoError(t, c.SendMessage(ctx, "hello", "s2"))

	for range 2 {
		require.NoError(t, c.LoadSessions(ctx))

		s, ok := c.Session("s2")
		require.True(t, ok)
		assert.Equal(t, []string{"srv-1"}, keys(s.Messages))
		assert.Equal(t, models.StatusSent, s.Messages[0].Status)

		stored, err := repo.ReadAll(ctx)
		require.NoError(t, err)
		for _, st := range stored {
			if st.ID == "s2" {
				assert.Equal(t, []string{"srv-1"}, keys(st.Messages))
			}
		}
	}
}

// ── end to end ───────────────────────────────────────────────────────────────

func TestSessionController_EndToEnd(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockRepo := mock.NewMockLocalSessionRepository(ctrl)
	mockAdapter := mock.NewMockSessionAdapter(ctrl)

	mockRepo.EXPECT().ReadAll(gomock.Any()).Return([]models.Session{}, nil).AnyTimes()
	mockRepo.EXPECT().UpsertAll(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockAdapter.EXPECT().FetchSessions(gomock.Any()).Return(remoteFixture(), nil)

	syncSvc := NewClientSyncService(&store.ClientStorages{SessionRepository: mockRepo}, mockAdapter, config.ClientWorkers{}, logger.Nop())
	c := NewSessionController(syncSvc, NewSimulatedReplySource(100*time.Millisecond, ""), &seqIDs{}, logger.Nop())

	require.NoError(t, c.LoadSessions(context.Background()))
	snap := c.Snapshot()
	require.Equal(t, []string{"s1", "s2"}, ids(snap.Sessions))
	assert.Len(t, snap.Sessions[0].Messages, 2)
	assert.Len(t, snap.Sessions[1].Messages, 0)

	done := make(chan error, 1)
	go func() { done <- c.SendMessage(context.Background(), "hello", "s1") }()

	require.Eventually(t, func() bool {
		s, _ := c.Session("s1")
		return len(s.Messages) == 3
	}, time.Second, 5*time.Millisecond)

	require.NoError(t, <-done)
	s, _ := c.Session("s1")
	require.Len(t, s.Messages, 4)
	assert.Equal(t, models.SenderAI, s.Messages[3].Sender)
	assert.Equal(t, "hello", s.Messages[2].Text)
}

func TestSessionController_SendMessage_ErrorKinds(t *testing.T) {
	ctrl := gomock.NewController(t)
	replies := mock.NewMockReplySource(ctrl)
	c := newTestController(&fakeSync{out: remoteFixture()}, replies)
	require.NoError(t, c.LoadSessions(context.Background()))

	replies.EXPECT().Deliver(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("plain"))

	err := c.SendMessage(context.Background(), "x", "s1")

	assert.EqualError(t, err, "plain")
}
