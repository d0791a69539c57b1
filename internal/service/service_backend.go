package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/xlevchenko/TwinTalk/internal/config"
	"github.com/xlevchenko/TwinTalk/internal/logger"
	"github.com/xlevchenko/TwinTalk/internal/store"
	"github.com/xlevchenko/TwinTalk/internal/utils"
	"github.com/xlevchenko/TwinTalk/internal/validators"
	"github.com/xlevchenko/TwinTalk/models"
)

// BackendReplyText is the answer appended by the development backend.
const BackendReplyText = "Thanks for sharing. What would you like to focus on next?"

type backendService struct {
	sessions   store.SessionStore
	validator  validators.Validator
	ids        utils.IDGenerator
	now        func() time.Time
	replyDelay time.Duration

	ctx    context.Context
	cancel context.CancelFunc
	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup

	logger *logger.Logger
}

// NewBackendService builds the backend service over storages.
func NewBackendService(storages *store.Storages, replyDelay time.Duration, ids utils.IDGenerator, logger *logger.Logger) BackendService {
	ctx, cancel := context.WithCancel(context.Background())
	if replyDelay < 0 {
		replyDelay = 0
	}

	return &backendService{
		sessions:   storages.SessionStore,
		validator:  validators.NewMessageValidator(),
		ids:        ids,
		now:        time.Now,
		replyDelay: replyDelay,
		ctx:        ctx,
		cancel:     cancel,
		logger:     logger,
	}
}

func (b *backendService) ListSessions(ctx context.Context) ([]models.Session, error) {
	return b.sessions.List(ctx)
}

func (b *backendService) PostMessage(ctx context.Context, req models.SendMessageRequest) (models.Message, error) {
	message := models.Message{
		Text:      req.Message.Text,
		Sender:    req.Message.Sender,
		Timestamp: req.Message.Timestamp,
	}

	stored, err := b.store(ctx, req.SessionID, message)
	if err != nil {
		return models.Message{}, err
	}

	if !b.track() {
		return stored, nil
	}
	go func() {
		defer b.wg.Done()
		if _, err := b.reply(b.ctx, req.SessionID); err != nil && !errors.Is(err, context.Canceled) {
			b.logger.Error().
				Err(err).
				Str("func", "backendService.PostMessage").
				Str("session_id", req.SessionID).
				Msg("failed to append AI reply")
		}
	}()

	return stored, nil
}

func (b *backendService) Converse(ctx context.Context, sessionID string, message models.Message) (models.Message, error) {
	if _, err := b.store(ctx, sessionID, message); err != nil {
		return models.Message{}, err
	}

	if !b.track() {
		return models.Message{}, context.Canceled
	}
	defer b.wg.Done()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	stop := context.AfterFunc(b.ctx, cancel)
	defer stop()

	return b.reply(ctx, sessionID)
}

func (b *backendService) Close() {
	b.mu.Lock()
	b.closed = true
	b.mu.Unlock()

	b.cancel()
	b.wg.Wait()
}

// track registers a pending reply unless the service is closed.
func (b *backendService) track() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return false
	}
	b.wg.Add(1)
	return true
}

func (b *backendService) store(ctx context.Context, sessionID string, message models.Message) (models.Message, error) {
	if err := b.validator.Validate(ctx, models.NewSendMessageRequest(sessionID, message)); err != nil {
		return models.Message{}, err
	}

	if message.ID == "" {
		message.ID = b.ids.Generate()
	}
	if message.Timestamp == "" {
		message.Timestamp = models.FormatTimestamp(b.now())
	}
	message.Status = ""

	if err := b.sessions.AppendMessage(ctx, sessionID, message); err != nil {
		if errors.Is(err, store.ErrSessionNotFound) {
			return models.Message{}, fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
		}
		return models.Message{}, fmt.Errorf("append message: %w", err)
	}

	return message, nil
}

func (b *backendService) reply(ctx context.Context, sessionID string) (models.Message, error) {
	if b.replyDelay > 0 {
		timer := time.NewTimer(b.replyDelay)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			return models.Message{}, ctx.Err()
		case <-timer.C:
		}
	}

	answer := models.Message{
		ID:        b.ids.Generate(),
		Text:      BackendReplyText,
		Sender:    models.SenderAI,
		Timestamp: models.FormatTimestamp(b.now()),
	}
	if err := b.sessions.AppendMessage(context.WithoutCancel(ctx), sessionID, answer); err != nil {
		return models.Message{}, fmt.Errorf("append reply: %w", err)
	}

	return answer, nil
}

// Services groups the services of the development backend.
type Services struct {
	Backend BackendService
}

// NewServices builds the backend services from cfg and storages.
func NewServices(cfg *config.ServerConfig, storages *store.Storages, logger *logger.Logger) *Services {
	logger.Info().Str("func", "NewServices").Msg("creating new services...")

	return &Services{
		Backend: NewBackendService(storages, cfg.ReplyDelay, utils.NewUUIDGenerator(), logger),
	}
}
