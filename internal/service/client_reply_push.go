package service

import (
	"context"
	"fmt"
	"time"

	"github.com/xlevchenko/TwinTalk/internal/adapter"
	"github.com/xlevchenko/TwinTalk/models"
)

type pushReplySource struct {
	push    adapter.PushChannel
	timeout time.Duration
}

// NewPushReplySource sends each message over the push channel and waits up
// to timeout for the first AI frame of the same session.
func NewPushReplySource(push adapter.PushChannel, timeout time.Duration) ReplySource {
	return &pushReplySource{push: push, timeout: timeout}
}

// Deliver implements ReplySource. Running out of time yields
// [adapter.ErrTimeout].
func (p *pushReplySource) Deliver(ctx context.Context, sessionID string, userMessage models.Message) (*models.Message, error) {
	// subscribe first so a fast answer is not lost
	replies, unsubscribe := p.push.Subscribe(sessionID)
	defer unsubscribe()

	if err := p.push.Send(ctx, sessionID, userMessage); err != nil {
		return nil, err
	}

	timer := time.NewTimer(p.timeout)
	defer timer.Stop()

	select {
	case reply, ok := <-replies:
		if !ok {
			return nil, fmt.Errorf("%w: push subscription closed", adapter.ErrNetworkUnavailable)
		}
		return &reply, nil
	case <-timer.C:
		return nil, fmt.Errorf("%w: no reply within %s", adapter.ErrTimeout, p.timeout)
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
