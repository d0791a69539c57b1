// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the transport layer between the TwinTalk client
// and its sessions backend.
//
// [SessionAdapter] is the request/response transport (list sessions, send a
// message); the package ships an HTTP/JSON implementation
// ([NewHTTPSessionAdapter]). [PushChannel] is the optional WebSocket channel
// over which the backend pushes AI replies ([NewPushConnection]).
//
// Every failure is reported as an [*Error] with exactly one [Kind], so callers
// can use [errors.Is] against the sentinels in errors.go (e.g. [ErrTimeout],
// [ErrServerError]) and [IsRetryable] to decide whether a retry makes sense.
// The transport itself never retries.
package adapter

import (
	"context"

	"github.com/xlevchenko/TwinTalk/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/adapter_mock.go -package=mock

// SessionAdapter defines communication with the sessions backend.
type SessionAdapter interface {
	// FetchSessions retrieves the remote snapshot of all sessions. It
	// succeeds only on a 2xx response whose body is a well-formed JSON array;
	// "[]" is a valid empty result, an empty body is [ErrEmptyBody].
	// Sessions are returned in the order the backend sent them.
	FetchSessions(ctx context.Context) ([]models.Session, error)

	// SendMessage posts message to the session identified by sessionID. Only
	// text, sender and timestamp are sent. The response body is ignored and
	// any non-2xx status is an error.
	SendMessage(ctx context.Context, message models.Message, sessionID string) error
}

// PushChannel is a persistent connection over which the user's messages are
// sent and AI replies arrive asynchronously.
type PushChannel interface {
	// Send writes a user frame for sessionID. It fails with
	// [ErrNetworkUnavailable] while the connection is down.
	Send(ctx context.Context, sessionID string, message models.Message) error

	// Subscribe waits for the next AI frame of sessionID. Each frame goes to
	// the oldest open subscription of the session, which then receives
	// nothing further. The returned function unregisters and closes the
	// channel; it is safe to call more than once.
	Subscribe(sessionID string) (<-chan models.Message, func())
}
