package store

import (
	"context"

	"github.com/xlevchenko/TwinTalk/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_store_mock.go -package=mock

// LocalSessionRepository is the on-device session cache.
type LocalSessionRepository interface {
	// ReadAll returns every cached session with its messages. An empty cache
	// yields an empty, non-nil slice.
	ReadAll(ctx context.Context) ([]models.Session, error)
	// UpsertAll replaces the stored copy of each given session, messages
	// included. Sessions not mentioned are left untouched.
	UpsertAll(ctx context.Context, sessions ...models.Session) error
}
