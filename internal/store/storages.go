package store

import (
	"fmt"

	"github.com/xlevchenko/TwinTalk/internal/config"
	"github.com/xlevchenko/TwinTalk/internal/logger"
)

// Storages groups the repositories of the development backend.
type Storages struct {
	SessionStore SessionStore
}

// NewStorages seeds the in-memory session store from cfg.FixturePath, or
// from the embedded fixture when no path is set.
func NewStorages(cfg *config.ServerConfig, logger *logger.Logger) (*Storages, error) {
	logger.Info().Str("func", "NewStorages").Msg("creating new storages...")

	sessions, err := LoadFixture(cfg.FixturePath)
	if err != nil {
		return nil, fmt.Errorf("error loading sessions fixture: %w", err)
	}

	logger.Info().
		Str("func", "NewStorages").
		Int("sessions", len(sessions)).
		Str("fixture", cfg.FixturePath).
		Msg("sessions fixture loaded")

	return &Storages{
		SessionStore: NewMemorySessionStore(sessions, logger),
	}, nil
}
