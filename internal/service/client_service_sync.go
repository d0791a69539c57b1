package service

import (
	"context"
	"sync"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/xlevchenko/TwinTalk/internal/adapter"
	"github.com/xlevchenko/TwinTalk/internal/config"
	"github.com/xlevchenko/TwinTalk/internal/logger"
	"github.com/xlevchenko/TwinTalk/internal/store"
	"github.com/xlevchenko/TwinTalk/models"
)

const defaultRetryBackoff = 500 * time.Millisecond

type clientSyncService struct {
	localStore     store.LocalSessionRepository
	sessionAdapter adapter.SessionAdapter
	merger         SessionMerger

	retries uint64
	backoff time.Duration

	// at most one cycle in flight
	mu sync.Mutex

	logger *logger.Logger
}

// NewClientSyncService wires the synchronizer to the local cache and the
// transport. Retry attempts and the base backoff come from workersCfg.
func NewClientSyncService(
	storages *store.ClientStorages,
	sessionAdapter adapter.SessionAdapter,
	workersCfg config.ClientWorkers,
	logger *logger.Logger,
) SyncService {
	retries := workersCfg.SyncRetries
	if retries < 0 {
		retries = 0
	}
	backoff := workersCfg.SyncRetryBackoff
	if backoff <= 0 {
		backoff = defaultRetryBackoff
	}

	return &clientSyncService{
		localStore:     storages.SessionRepository,
		sessionAdapter: sessionAdapter,
		merger:         NewSessionMerger(),
		retries:        uint64(retries),
		backoff:        backoff,
		logger:         logger,
	}
}

// Sync implements SyncService.
func (s *clientSyncService) Sync(ctx context.Context, pending ...models.Session) ([]models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	local := s.readLocal(ctx)

	if len(pending) > 0 {
		withPending, err := unionSessions(ctx, local, pending, false)
		if err != nil {
			return local, err
		}
		local = withPending
	}

	remote, err := s.fetchRemote(ctx)
	if err != nil {
		s.logger.Warn().
			Err(err).
			Str("func", "clientSyncService.Sync").
			Int("local", len(local)).
			Msg("remote fetch failed, serving local sessions")
		if len(pending) > 0 {
			s.writeLocal(ctx, local)
		}
		return local, err
	}

	merged, err := s.merger.MergeSessions(ctx, local, remote)
	if err != nil {
		s.logger.Err(err).Str("func", "clientSyncService.Sync").Msg("merge aborted")
		return local, err
	}

	s.writeLocal(ctx, merged)

	s.logger.Debug().
		Str("func", "clientSyncService.Sync").
		Int("local", len(local)).
		Int("remote", len(remote)).
		Int("merged", len(merged)).
		Msg("sync cycle finished")

	return merged, nil
}

func (s *clientSyncService) readLocal(ctx context.Context) []models.Session {
	local, err := s.localStore.ReadAll(ctx)
	if err != nil {
		s.logger.Warn().
			Err(err).
			Str("func", "clientSyncService.readLocal").
			Msg("local cache unreadable, continuing with empty list")
		return []models.Session{}
	}
	if local == nil {
		return []models.Session{}
	}
	return local
}

func (s *clientSyncService) writeLocal(ctx context.Context, sessions []models.Session) {
	if len(sessions) == 0 {
		return
	}
	if err := s.localStore.UpsertAll(ctx, sessions...); err != nil {
		s.logger.Warn().
			Err(err).
			Str("func", "clientSyncService.writeLocal").
			Int("sessions", len(sessions)).
			Msg("failed to persist sessions")
	}
}

// fetchRemote retries retryable transport failures with exponential backoff.
func (s *clientSyncService) fetchRemote(ctx context.Context) ([]models.Session, error) {
	backoff := retry.WithMaxRetries(s.retries, retry.NewExponential(s.backoff))

	attempt := 0
	return retry.DoValue(ctx, backoff, func(ctx context.Context) ([]models.Session, error) {
		attempt++
		remote, err := s.sessionAdapter.FetchSessions(ctx)
		if err == nil {
			return remote, nil
		}
		if adapter.IsRetryable(err) {
			s.logger.Debug().
				Err(err).
				Str("func", "clientSyncService.fetchRemote").
				Int("attempt", attempt).
				Msg("retryable fetch failure")
			return nil, retry.RetryableError(err)
		}
		return nil, err
	})
}
