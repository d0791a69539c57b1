package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xlevchenko/TwinTalk/internal/config"
	"github.com/xlevchenko/TwinTalk/internal/logger"
	"github.com/xlevchenko/TwinTalk/internal/store"
	"github.com/xlevchenko/TwinTalk/internal/validators"
	"github.com/xlevchenko/TwinTalk/models"
)

func newTestBackend(t *testing.T, delay time.Duration) (*backendService, store.SessionStore) {
	t.Helper()

	sessions := store.NewMemorySessionStore([]models.Session{{ID: "s1", Title: "one"}}, logger.Nop())
	b := NewBackendService(&store.Storages{SessionStore: sessions}, delay, &seqIDs{}, logger.Nop()).(*backendService)
	b.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }
	t.Cleanup(b.Close)

	return b, sessions
}

func userRequest(sessionID, text string) models.SendMessageRequest {
	return models.SendMessageRequest{
		SessionID: sessionID,
		Message: models.OutgoingMessage{
			Text:      text,
			Sender:    models.SenderUser,
			Timestamp: "2024-05-01T11:59:00.000Z",
		},
	}
}

func TestBackendService_PostMessage(t *testing.T) {
	b, sessions := newTestBackend(t, 0)
	ctx := context.Background()

	stored, err := b.PostMessage(ctx, userRequest("s1", "hello"))
	require.NoError(t, err)
	assert.Equal(t, "id-1", stored.ID)
	assert.Equal(t, "2024-05-01T11:59:00.000Z", stored.Timestamp)

	assert.Eventually(t, func() bool {
		list, _ := sessions.List(ctx)
		return len(list[0].Messages) == 2
	}, time.Second, 5*time.Millisecond)

	list, err := b.ListSessions(ctx)
	require.NoError(t, err)
	reply := list[0].Messages[1]
	assert.Equal(t, models.SenderAI, reply.Sender)
	assert.Equal(t, BackendReplyText, reply.Text)
	assert.Equal(t, "2024-05-01T12:00:00.000Z", reply.Timestamp)
}

func TestBackendService_PostMessage_Validation(t *testing.T) {
	b, sessions := newTestBackend(t, 0)
	ctx := context.Background()

	tests := []struct {
		name string
		req  models.SendMessageRequest
		want error
	}{
		{name: "blank text", req: userRequest("s1", "  \n"), want: validators.ErrEmptyMessageText},
		{name: "missing session id", req: userRequest("", "hi"), want: validators.ErrEmptySessionID},
		{name: "unknown session", req: userRequest("nope", "hi"), want: ErrSessionNotFound},
		{
			name: "unknown sender",
			req: models.SendMessageRequest{
				SessionID: "s1",
				Message:   models.OutgoingMessage{Text: "hi", Sender: "bot"},
			},
			want: validators.ErrUnknownSender,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := b.PostMessage(ctx, tt.req)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	list, _ := sessions.List(ctx)
	assert.Empty(t, list[0].Messages)
}

func TestBackendService_PostMessage_DefaultTimestamp(t *testing.T) {
	b, _ := newTestBackend(t, time.Hour)

	req := userRequest("s1", "hi")
	req.Message.Timestamp = ""
	stored, err := b.PostMessage(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, "2024-05-01T12:00:00.000Z", stored.Timestamp)
}

func TestBackendService_Converse(t *testing.T) {
	b, sessions := newTestBackend(t, 10*time.Millisecond)
	ctx := context.Background()

	reply, err := b.Converse(ctx, "s1", models.Message{ID: "u1", Text: "hello", Sender: models.SenderUser})
	require.NoError(t, err)
	assert.Equal(t, models.SenderAI, reply.Sender)
	assert.NotEmpty(t, reply.ID)

	list, _ := sessions.List(ctx)
	require.Len(t, list[0].Messages, 2)
	assert.Equal(t, "u1", list[0].Messages[0].ID)
	assert.Equal(t, reply.ID, list[0].Messages[1].ID)
}

func TestBackendService_Converse_Cancelled(t *testing.T) {
	b, sessions := newTestBackend(t, time.Hour)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		_, err := b.Converse(ctx, "s1", models.Message{Text: "hello", Sender: models.SenderUser})
		done <- err
	}()

	assert.Eventually(t, func() bool {
		list, _ := sessions.List(context.Background())
		return len(list[0].Messages) == 1
	}, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.True(t, errors.Is(err, context.Canceled))
	case <-time.After(time.Second):
		t.Fatal("Converse did not return after cancellation")
	}
}

func TestBackendService_CloseCancelsPendingReplies(t *testing.T) {
	b, sessions := newTestBackend(t, time.Hour)
	ctx := context.Background()

	_, err := b.PostMessage(ctx, userRequest("s1", "hello"))
	require.NoError(t, err)

	closed := make(chan struct{})
	go func() {
		b.Close()
		close(closed)
	}()

	select {
	case <-closed:
	case <-time.After(time.Second):
		t.Fatal("Close did not return")
	}

	list, _ := sessions.List(ctx)
	assert.Len(t, list[0].Messages, 1)
}

func TestNewServices(t *testing.T) {
	storages, err := store.NewStorages(&config.ServerConfig{}, logger.Nop())
	require.NoError(t, err)

	services := NewServices(&config.ServerConfig{ReplyDelay: time.Millisecond}, storages, logger.Nop())
	require.NotNil(t, services.Backend)
	t.Cleanup(services.Backend.Close)

	list, err := services.Backend.ListSessions(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 2)
}
