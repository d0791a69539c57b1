package validators

import (
	"context"
	"fmt"
	"strings"

	"github.com/xlevchenko/TwinTalk/models"
)

// Field names accepted by [MessageValidator].
const (
	FieldSessionID = "session_id"
	FieldText      = "text"
	FieldSender    = "sender"
	FieldTimestamp = "timestamp"
	FieldMessage   = "message"
	FieldFrameType = "frame_type"
)

type MessageValidator struct {
}

func NewMessageValidator() Validator {
	return &MessageValidator{}
}

func (v *MessageValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.Message:
		return v.validateMessage(ctx, value, fields...)
	case *models.Message:
		return v.validateMessage(ctx, *value, fields...)

	case models.SendMessageRequest:
		return v.validateSendMessageRequest(ctx, value, fields...)
	case *models.SendMessageRequest:
		return v.validateSendMessageRequest(ctx, *value, fields...)

	case models.PushEnvelope:
		return v.validatePushEnvelope(ctx, value, fields...)
	case *models.PushEnvelope:
		return v.validatePushEnvelope(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func isKnownSender(s models.Sender) bool {
	return s == models.SenderUser || s == models.SenderAI
}

// validateMessage checks text, sender and timestamp by default. An empty
// timestamp is accepted; the backend stamps it.
func (v *MessageValidator) validateMessage(_ context.Context, message models.Message, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldText, FieldSender, FieldTimestamp}
	}

	for _, f := range fields {
		switch f {
		case FieldText:
			if strings.TrimSpace(message.Text) == "" {
				return ErrEmptyMessageText
			}
		case FieldSender:
			if !isKnownSender(message.Sender) {
				return fmt.Errorf("%w: %q", ErrUnknownSender, message.Sender)
			}
		case FieldTimestamp:
			if message.Timestamp == "" {
				continue
			}
			if _, err := models.ParseTimestamp(message.Timestamp); err != nil {
				return fmt.Errorf("%w: %q", ErrInvalidTimestamp, message.Timestamp)
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *MessageValidator) validateSendMessageRequest(ctx context.Context, req models.SendMessageRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldSessionID, FieldMessage}
	}

	for _, f := range fields {
		switch f {
		case FieldSessionID:
			if strings.TrimSpace(req.SessionID) == "" {
				return ErrEmptySessionID
			}
		case FieldMessage:
			message := models.Message{
				Text:      req.Message.Text,
				Sender:    req.Message.Sender,
				Timestamp: req.Message.Timestamp,
			}
			if err := v.validateMessage(ctx, message); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validatePushEnvelope accepts only user frames with a valid message.
func (v *MessageValidator) validatePushEnvelope(ctx context.Context, frame models.PushEnvelope, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldFrameType, FieldSessionID, FieldMessage}
	}

	for _, f := range fields {
		switch f {
		case FieldFrameType:
			if frame.Type != models.SenderUser {
				return fmt.Errorf("%w: %q", ErrInvalidFrameType, frame.Type)
			}
		case FieldSessionID:
			if strings.TrimSpace(frame.SessionID) == "" {
				return ErrEmptySessionID
			}
		case FieldMessage:
			if err := v.validateMessage(ctx, frame.Message); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}
