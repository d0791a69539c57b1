package service

import "errors"

var (
	// ErrSessionNotFound is returned when a message targets a session the
	// controller does not hold.
	ErrSessionNotFound = errors.New("session not found")

	// ErrEmptySessionTitle is returned when a session is created with a blank
	// title.
	ErrEmptySessionTitle = errors.New("session title is empty")

	// ErrUnknownReplyMode is returned by [NewReplySource] for an unsupported
	// mode.
	ErrUnknownReplyMode = errors.New("unknown reply mode")

	// ErrPushChannelRequired is returned when push replies are requested
	// without a push channel.
	ErrPushChannelRequired = errors.New("push reply mode requires a push channel")
)

