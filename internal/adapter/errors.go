package adapter

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind is the closed set of transport failure classes.
type Kind int

const (
	KindUnknown Kind = iota
	KindInvalidEndpoint
	KindEmptyBody
	KindMalformedResponse
	KindServerError
	KindNetworkUnavailable
	KindTimeout
	KindDecodingFailed
	KindEncodingFailed
)

func (k Kind) String() string {
	switch k {
	case KindInvalidEndpoint:
		return "invalid endpoint"
	case KindEmptyBody:
		return "empty body"
	case KindMalformedResponse:
		return "malformed response"
	case KindServerError:
		return "server error"
	case KindNetworkUnavailable:
		return "network unavailable"
	case KindTimeout:
		return "timeout"
	case KindDecodingFailed:
		return "decoding failed"
	case KindEncodingFailed:
		return "encoding failed"
	default:
		return "unknown"
	}
}

// Error is the single error type returned by the transport. Every failure
// carries exactly one Kind. StatusCode is set only for KindServerError.
type Error struct {
	Kind       Kind
	StatusCode int
	Cause      error
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Kind == KindServerError {
		msg = fmt.Sprintf("%s: %d %s", msg, e.StatusCode, http.StatusText(e.StatusCode))
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches another *Error of the same Kind. A target with a zero
// StatusCode matches any status, so errors.Is(err, ErrServerError) holds for
// every 4xx and 5xx.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Kind != e.Kind {
		return false
	}
	return t.StatusCode == 0 || t.StatusCode == e.StatusCode
}

// Sentinels for errors.Is. They must not be returned directly.
var (
	ErrUnknown            = &Error{Kind: KindUnknown}
	ErrInvalidEndpoint    = &Error{Kind: KindInvalidEndpoint}
	ErrEmptyBody          = &Error{Kind: KindEmptyBody}
	ErrMalformedResponse  = &Error{Kind: KindMalformedResponse}
	ErrServerError        = &Error{Kind: KindServerError}
	ErrNetworkUnavailable = &Error{Kind: KindNetworkUnavailable}
	ErrTimeout            = &Error{Kind: KindTimeout}
	ErrDecodingFailed     = &Error{Kind: KindDecodingFailed}
	ErrEncodingFailed     = &Error{Kind: KindEncodingFailed}
)

var errPushNotConnected = errors.New("push channel is not connected")

func newError(kind Kind, cause error) *Error {
	return &Error{Kind: kind, Cause: cause}
}

func newServerError(status int, cause error) *Error {
	return &Error{Kind: KindServerError, StatusCode: status, Cause: cause}
}

// KindOf returns the Kind of err, or KindUnknown if err is not a transport
// error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// StatusCode returns the HTTP status carried by a server error, or 0.
func StatusCode(err error) int {
	var e *Error
	if errors.As(err, &e) && e.Kind == KindServerError {
		return e.StatusCode
	}
	return 0
}

// IsRetryable reports whether repeating the same request may succeed:
// connectivity loss, timeouts, 408, 429 and 5xx.
func IsRetryable(err error) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}

	switch e.Kind {
	case KindNetworkUnavailable, KindTimeout:
		return true
	case KindServerError:
		return e.StatusCode == http.StatusRequestTimeout ||
			e.StatusCode == http.StatusTooManyRequests ||
			e.StatusCode >= http.StatusInternalServerError
	default:
		return false
	}
}
