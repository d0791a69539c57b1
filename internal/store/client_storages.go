package store

import (
	"context"
	"fmt"

	"github.com/xlevchenko/TwinTalk/internal/config"
	"github.com/xlevchenko/TwinTalk/internal/logger"
)

// ClientStorages groups the client-side repositories handed to the service
// layer.
type ClientStorages struct {
	SessionRepository LocalSessionRepository

	db *DB
}

// NewClientStorages opens the SQLite cache at cfg.DB.DSN, applies pending
// migrations and wires the session repository.
func NewClientStorages(cfg config.ClientStorage, logger *logger.Logger) (*ClientStorages, error) {
	logger.Info().Str("func", "NewClientStorages").Msg("creating new storages...")

	db, err := NewConnectSQLite(context.Background(), cfg.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err = db.Migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &ClientStorages{
		SessionRepository: NewLocalSessionRepository(db, logger),
		db:                db,
	}, nil
}

// Close releases the database handle.
func (s *ClientStorages) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
