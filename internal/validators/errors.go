package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrEmptySessionID   = errors.New("session id is empty")
	ErrEmptyMessageText = errors.New("message text is empty")
	ErrUnknownSender    = errors.New("unknown message sender")
	ErrInvalidTimestamp = errors.New("invalid message timestamp")
	ErrInvalidFrameType = errors.New("invalid push frame type")
)
