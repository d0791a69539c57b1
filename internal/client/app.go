package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/xlevchenko/TwinTalk/internal/logger"
	"github.com/xlevchenko/TwinTalk/internal/service"
	"github.com/xlevchenko/TwinTalk/internal/workers"
)

var errNoUI = errors.New("client: ui is required")

type App struct {
	services *service.ClientServices
	ui       UI
	workers  *workers.Workers

	logger *logger.Logger
}

// NewApp registers the background workers. push is started before the sync
// job and may be nil when replies are not pushed.
func NewApp(services *service.ClientServices, ui UI, push workers.Worker, logger *logger.Logger) (*App, error) {
	if ui == nil {
		return nil, errNoUI
	}
	if services == nil || services.SyncJob == nil {
		return nil, errors.New("client: sync job is required")
	}

	w := workers.NewWorkers(logger)
	if push != nil {
		w.Register("push-connection", push)
	}
	w.Register("sync-job", services.SyncJob)

	return &App{
		services: services,
		ui:       ui,
		workers:  w,
		logger:   logger,
	}, nil
}

// Run starts the workers, blocks in the UI and stops the workers on return.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a.workers.Start(ctx)
	defer a.workers.Stop()

	a.logger.Info().Str("func", "App.Run").Msg("client started")

	if err := a.ui.Run(ctx); err != nil {
		return fmt.Errorf("ui: %w", err)
	}

	a.logger.Info().Str("func", "App.Run").Msg("client stopped")
	return nil
}
