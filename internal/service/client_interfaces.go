package service

import (
	"context"

	"github.com/xlevchenko/TwinTalk/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_service_mock.go -package=mock

// SyncService reconciles the local session cache with the remote snapshot.
type SyncService interface {
	// Sync reads the cache, unions pending in-memory sessions into it, fetches
	// the remote list and merges the two. The merged list is persisted and
	// returned. On a transport failure the local list is returned together
	// with the error. Store failures are logged and never returned.
	Sync(ctx context.Context, pending ...models.Session) ([]models.Session, error)
}

// ReplySource produces the AI answer to a user message.
type ReplySource interface {
	// Deliver hands userMessage to the backend for sessionID. The returned
	// message, when non-nil, is appended to the session. A nil message with a
	// nil error means the answer will arrive with a later sync.
	Deliver(ctx context.Context, sessionID string, userMessage models.Message) (*models.Message, error)
}
