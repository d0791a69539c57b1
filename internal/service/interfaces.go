// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/xlevchenko/TwinTalk/models"
)

// SessionMerger defines the pure reconciliation step of a sync cycle.
type SessionMerger interface {
	// MergeSessions unions local and remote by session ID. Remote sessions
	// keep their received order and come first; local-only sessions follow,
	// newest first. Messages are unioned by [models.Message.Key] with the
	// remote copy winning, and each list is sorted ascending by timestamp.
	//
	// ctx is checked between sessions; the context error is returned when it
	// is done.
	MergeSessions(ctx context.Context, local, remote []models.Session) ([]models.Session, error)
}

// BackendService is the domain layer of the development backend.
type BackendService interface {
	ListSessions(ctx context.Context) ([]models.Session, error)

	// PostMessage stores req.Message in req.SessionID and schedules the canned
	// AI answer. It returns the stored message.
	PostMessage(ctx context.Context, req models.SendMessageRequest) (models.Message, error)

	// Converse stores message, waits for the reply delay and returns the
	// stored AI answer.
	Converse(ctx context.Context, sessionID string, message models.Message) (models.Message, error)

	// Close cancels pending replies and waits for them to finish.
	Close()
}
