package store

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/xlevchenko/TwinTalk/internal/logger"
	"github.com/xlevchenko/TwinTalk/models"
)

//go:embed fixtures/sessions.json
var defaultFixture []byte

type memorySessionStore struct {
	mu       sync.RWMutex
	sessions []models.Session

	logger *logger.Logger
}

// NewMemorySessionStore seeds the store from sessions.
func NewMemorySessionStore(sessions []models.Session, logger *logger.Logger) SessionStore {
	seed := models.CloneSessions(sessions)
	if seed == nil {
		seed = []models.Session{}
	}
	for i := range seed {
		if seed[i].Messages == nil {
			seed[i].Messages = []models.Message{}
		}
	}
	return &memorySessionStore{sessions: seed, logger: logger}
}

// LoadFixture decodes the sessions file at path, or the embedded fixture
// when path is empty.
func LoadFixture(path string) ([]models.Session, error) {
	data := defaultFixture
	if path != "" {
		var err error
		if data, err = os.ReadFile(path); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrReadingFixture, err)
		}
	}

	var sessions []models.Session
	if err := json.Unmarshal(data, &sessions); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadingFixture, err)
	}
	return sessions, nil
}

func (m *memorySessionStore) List(_ context.Context) ([]models.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return models.CloneSessions(m.sessions), nil
}

func (m *memorySessionStore) AppendMessage(_ context.Context, sessionID string, message models.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.sessions {
		if m.sessions[i].ID != sessionID {
			continue
		}
		m.sessions[i].Messages = append(m.sessions[i].Messages, message)
		m.logger.Debug().
			Str("func", "memorySessionStore.AppendMessage").
			Str("session_id", sessionID).
			Str("sender", string(message.Sender)).
			Msg("message stored")
		return nil
	}

	return ErrSessionNotFound
}
