package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/xlevchenko/TwinTalk/internal/logger"
	"github.com/xlevchenko/TwinTalk/internal/utils"
	"github.com/xlevchenko/TwinTalk/models"
)

// Snapshot is a consistent copy of the controller state.
type Snapshot struct {
	Sessions []models.Session
	LastErr  error
}

// SessionController owns the in-memory session list shown to the user.
type SessionController interface {
	// LoadSessions runs a sync cycle and adopts its result. On failure the
	// current list is kept and the error is recorded; a still empty list
	// adopts the cached sessions returned alongside the error.
	LoadSessions(ctx context.Context) error

	// SendMessage appends a pending user message to sessionID, delivers it
	// and applies the outcome. Blank text is ignored. It blocks until the
	// reply has been applied or delivery failed.
	SendMessage(ctx context.Context, text, sessionID string) error

	// CreateNewSession adds an empty session in memory only. It is persisted
	// by the next LoadSessions.
	CreateNewSession(title string, category models.Category) (models.Session, error)

	Snapshot() Snapshot
	Session(id string) (models.Session, bool)
	LastError() error
	ClearError()

	// Subscribe returns a channel primed with the current snapshot that then
	// carries the latest snapshot after every mutation, and a func that
	// closes it.
	Subscribe() (<-chan Snapshot, func())
}

type sessionController struct {
	syncService SyncService
	replies     ReplySource
	ids         utils.IDGenerator
	now         func() time.Time

	mu          sync.Mutex
	sessions    []models.Session
	lastErr     error
	subscribers map[int]chan Snapshot
	nextSubID   int

	logger *logger.Logger
}

// NewSessionController builds a controller with an empty session list.
func NewSessionController(syncService SyncService, replies ReplySource, ids utils.IDGenerator, logger *logger.Logger) SessionController {
	return &sessionController{
		syncService: syncService,
		replies:     replies,
		ids:         ids,
		now:         time.Now,
		sessions:    []models.Session{},
		subscribers: make(map[int]chan Snapshot),
		logger:      logger,
	}
}

// LoadSessions implements SessionController.
func (c *sessionController) LoadSessions(ctx context.Context) error {
	ctx = context.WithoutCancel(ctx)

	c.mu.Lock()
	pending := models.CloneSessions(c.sessions)
	c.mu.Unlock()

	fresh, err := c.syncService.Sync(ctx, pending...)

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		c.lastErr = err
		if len(c.sessions) == 0 && len(fresh) > 0 {
			c.sessions = models.CloneSessions(fresh)
		}
		c.logger.Warn().
			Err(err).
			Str("func", "sessionController.LoadSessions").
			Int("sessions", len(c.sessions)).
			Msg("failed to load sessions")
		c.publishLocked()
		return err
	}

	c.sessions = adoptSynced(c.sessions, fresh)
	c.lastErr = nil
	c.publishLocked()
	return nil
}

// adoptSynced takes fresh as the new list while keeping whatever changed in
// current during the sync: sessions created and messages appended meanwhile,
// and delivery outcomes that settled a pending message.
func adoptSynced(current, fresh []models.Session) []models.Session {
	merged, _ := unionSessions(context.Background(), current, fresh, false)
	dropEchoes(merged, fresh)

	settled := make(map[string]map[string]models.DeliveryStatus, len(current))
	for _, s := range current {
		for _, m := range s.Messages {
			if m.Status == models.StatusPending || m.Status == "" {
				continue
			}
			if settled[s.ID] == nil {
				settled[s.ID] = make(map[string]models.DeliveryStatus)
			}
			settled[s.ID][m.Key()] = m.Status
		}
	}

	for i := range merged {
		for j, m := range merged[i].Messages {
			if m.Status != models.StatusPending {
				continue
			}
			if status, ok := settled[merged[i].ID][m.Key()]; ok {
				merged[i].Messages[j].Status = status
			}
		}
	}

	return merged
}

// dropEchoes removes in-memory messages that fresh already holds under an ID
// assigned by the backend, as the merge does for the stored list.
func dropEchoes(merged, fresh []models.Session) {
	freshByID := make(map[string][]models.Message, len(fresh))
	for _, s := range fresh {
		freshByID[s.ID] = s.Messages
	}

	for i := range merged {
		freshMessages, ok := freshByID[merged[i].ID]
		if !ok {
			continue
		}
		keys := make(map[string]struct{}, len(freshMessages))
		for _, m := range freshMessages {
			keys[m.Key()] = struct{}{}
		}

		kept := make([]models.Message, 0, len(merged[i].Messages))
		for _, m := range merged[i].Messages {
			if _, inFresh := keys[m.Key()]; !inFresh && isEchoed(m, freshMessages) {
				continue
			}
			kept = append(kept, m)
		}
		merged[i].Messages = kept
	}
}

// SendMessage implements SessionController.
func (c *sessionController) SendMessage(ctx context.Context, text, sessionID string) error {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	c.mu.Lock()
	idx := c.indexLocked(sessionID)
	if idx < 0 {
		c.mu.Unlock()
		return ErrSessionNotFound
	}

	userMessage := models.Message{
		ID:        c.ids.Generate(),
		Text:      text,
		Sender:    models.SenderUser,
		Timestamp: models.FormatTimestamp(c.now()),
		Status:    models.StatusPending,
	}
	c.sessions[idx].Messages = append(c.sessions[idx].Messages, userMessage)
	models.SortMessages(c.sessions[idx].Messages)
	c.publishLocked()
	c.mu.Unlock()

	reply, err := c.replies.Deliver(context.WithoutCancel(ctx), sessionID, userMessage)

	c.mu.Lock()
	defer c.mu.Unlock()

	status := models.StatusSent
	if err != nil {
		status = models.StatusFailed
		c.lastErr = err
		c.logger.Warn().
			Err(err).
			Str("func", "sessionController.SendMessage").
			Str("session_id", sessionID).
			Msg("message delivery failed")
	}

	idx = c.indexLocked(sessionID)
	if idx < 0 {
		c.publishLocked()
		return err
	}
	messages := c.sessions[idx].Messages
	for i := range messages {
		if messages[i].Key() == userMessage.Key() {
			messages[i].Status = status
			break
		}
	}

	if err == nil && reply != nil {
		c.appendReplyLocked(idx, c.completeReply(*reply))
	}

	c.publishLocked()
	return err
}

// appendReplyLocked adds reply to the session unless a message with the same
// key is already there, keeping timestamp order.
func (c *sessionController) appendReplyLocked(idx int, reply models.Message) {
	for _, m := range c.sessions[idx].Messages {
		if m.Key() == reply.Key() {
			return
		}
	}
	c.sessions[idx].Messages = append(c.sessions[idx].Messages, reply)
	models.SortMessages(c.sessions[idx].Messages)
}

func (c *sessionController) completeReply(reply models.Message) models.Message {
	if reply.ID == "" {
		reply.ID = c.ids.Generate()
	}
	if reply.Timestamp == "" {
		reply.Timestamp = models.FormatTimestamp(c.now())
	}
	if reply.Sender == "" {
		reply.Sender = models.SenderAI
	}
	reply.Status = models.StatusSent
	return reply
}

// CreateNewSession implements SessionController.
func (c *sessionController) CreateNewSession(title string, category models.Category) (models.Session, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return models.Session{}, ErrEmptySessionTitle
	}
	if category == "" {
		category = models.CategoryOther
	}

	session := models.Session{
		ID:       c.ids.Generate(),
		Date:     models.FormatTimestamp(c.now()),
		Title:    title,
		Category: category,
		Messages: []models.Message{},
	}

	c.mu.Lock()
	c.sessions = append([]models.Session{session}, c.sessions...)
	c.publishLocked()
	c.mu.Unlock()

	c.logger.Debug().
		Str("func", "sessionController.CreateNewSession").
		Str("session_id", session.ID).
		Msg("session created")

	return session.Clone(), nil
}

// Snapshot implements SessionController.
func (c *sessionController) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Session implements SessionController.
func (c *sessionController) Session(id string) (models.Session, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	idx := c.indexLocked(id)
	if idx < 0 {
		return models.Session{}, false
	}
	return c.sessions[idx].Clone(), true
}

// LastError implements SessionController.
func (c *sessionController) LastError() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// ClearError implements SessionController.
func (c *sessionController) ClearError() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.lastErr == nil {
		return
	}
	c.lastErr = nil
	c.publishLocked()
}

// Subscribe implements SessionController. The channel holds one snapshot;
// a slow reader only ever sees the latest one.
func (c *sessionController) Subscribe() (<-chan Snapshot, func()) {
	ch := make(chan Snapshot, 1)

	c.mu.Lock()
	id := c.nextSubID
	c.nextSubID++
	c.subscribers[id] = ch
	ch <- c.snapshotLocked()
	c.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			c.mu.Lock()
			delete(c.subscribers, id)
			c.mu.Unlock()
			close(ch)
		})
	}
}

func (c *sessionController) indexLocked(id string) int {
	for i := range c.sessions {
		if c.sessions[i].ID == id {
			return i
		}
	}
	return -1
}

func (c *sessionController) snapshotLocked() Snapshot {
	return Snapshot{
		Sessions: models.CloneSessions(c.sessions),
		LastErr:  c.lastErr,
	}
}

func (c *sessionController) publishLocked() {
	for _, ch := range c.subscribers {
		// drop the stale snapshot, if any
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- c.snapshotLocked():
		default:
		}
	}
}
