package service

import (
	"context"

	"github.com/xlevchenko/TwinTalk/internal/adapter"
	"github.com/xlevchenko/TwinTalk/models"
)

type httpReplySource struct {
	sessionAdapter adapter.SessionAdapter
}

// NewHTTPReplySource posts each message to the backend. The backend's answer
// is not returned: it becomes part of the remote snapshot and arrives with
// the next sync.
func NewHTTPReplySource(sessionAdapter adapter.SessionAdapter) ReplySource {
	return &httpReplySource{sessionAdapter: sessionAdapter}
}

// Deliver implements ReplySource.
func (h *httpReplySource) Deliver(ctx context.Context, sessionID string, userMessage models.Message) (*models.Message, error) {
	if err := h.sessionAdapter.SendMessage(ctx, userMessage, sessionID); err != nil {
		return nil, err
	}
	return nil, nil
}
