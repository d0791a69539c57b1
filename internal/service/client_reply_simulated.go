package service

import (
	"context"
	"time"

	"github.com/xlevchenko/TwinTalk/internal/config"
	"github.com/xlevchenko/TwinTalk/models"
)

type simulatedReplySource struct {
	delay time.Duration
	text  string
	now   func() time.Time
}

// NewSimulatedReplySource answers every message with text after delay. No
// network is involved.
func NewSimulatedReplySource(delay time.Duration, text string) ReplySource {
	if text == "" {
		text = config.DefaultReplyText
	}
	return &simulatedReplySource{
		delay: delay,
		text:  text,
		now:   time.Now,
	}
}

// Deliver implements ReplySource.
func (s *simulatedReplySource) Deliver(ctx context.Context, _ string, _ models.Message) (*models.Message, error) {
	if s.delay > 0 {
		t := time.NewTimer(s.delay)
		defer t.Stop()

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-t.C:
		}
	}

	return &models.Message{
		Text:      s.text,
		Sender:    models.SenderAI,
		Timestamp: models.FormatTimestamp(s.now()),
		Status:    models.StatusSent,
	}, nil
}
