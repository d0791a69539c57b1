package http

import "errors"

var (
	// ErrInvalidJSON is reported when a request body or a WebSocket frame
	// cannot be decoded.
	ErrInvalidJSON = errors.New("invalid JSON was passed")
)
