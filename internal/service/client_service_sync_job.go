package service

import (
	"context"
	"sync"
	"time"

	"github.com/xlevchenko/TwinTalk/internal/logger"
)

const defaultSyncInterval = 5 * time.Minute

// SyncJob refreshes the controller in the background.
type SyncJob interface {
	// Start launches the background goroutine. Any previous run is stopped
	// first.
	Start(ctx context.Context)

	// Stop signals the goroutine to exit and blocks until it has.
	Stop()
}

type clientSyncJob struct {
	controller SessionController
	interval   time.Duration

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup

	logger *logger.Logger
}

// NewClientSyncJob creates a job that calls controller.LoadSessions every
// interval, defaulting to 5 minutes. The job is idle until Start is called.
func NewClientSyncJob(controller SessionController, interval time.Duration, logger *logger.Logger) SyncJob {
	if interval <= 0 {
		interval = defaultSyncInterval
	}
	return &clientSyncJob{
		controller: controller,
		interval:   interval,
		logger:     logger,
	}
}

// Start implements SyncJob. The goroutine exits when ctx is cancelled or
// Stop is called.
func (j *clientSyncJob) Start(ctx context.Context) {
	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(j.interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				if err := j.controller.LoadSessions(jobCtx); err != nil {
					j.logger.Debug().Err(err).Str("func", "clientSyncJob.Start").Msg("background sync failed")
				}
			}
		}
	}()
}

// Stop implements SyncJob. Safe to call when the job is not running.
func (j *clientSyncJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}
