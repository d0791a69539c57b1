package store

import (
	"context"

	"github.com/xlevchenko/TwinTalk/models"
)

// SessionStore holds the sessions served by the development backend.
type SessionStore interface {
	// List returns every session in fixture order.
	List(ctx context.Context) ([]models.Session, error)
	// AppendMessage adds message to sessionID. An unknown session yields
	// [ErrSessionNotFound].
	AppendMessage(ctx context.Context, sessionID string, message models.Message) error
}
