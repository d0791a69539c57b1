package service

import (
	"fmt"

	"github.com/xlevchenko/TwinTalk/internal/adapter"
	"github.com/xlevchenko/TwinTalk/internal/config"
	"github.com/xlevchenko/TwinTalk/internal/logger"
	"github.com/xlevchenko/TwinTalk/internal/store"
	"github.com/xlevchenko/TwinTalk/internal/utils"
)

// ClientServices bundles the client-side services built on one set of
// storages and transports.
type ClientServices struct {
	SyncService       SyncService
	ReplySource       ReplySource
	SessionController SessionController
	SyncJob           SyncJob
}

// NewClientServices wires the synchronizer, reply source, controller and sync
// job. push may be nil unless cfg.App.ReplyMode is push.
func NewClientServices(
	cfg *config.ClientConfig,
	storages *store.ClientStorages,
	sessionAdapter adapter.SessionAdapter,
	push adapter.PushChannel,
	logger *logger.Logger,
) (*ClientServices, error) {
	replies, err := NewReplySource(cfg.App, sessionAdapter, push)
	if err != nil {
		return nil, fmt.Errorf("error creating reply source: %w", err)
	}

	syncSvc := NewClientSyncService(storages, sessionAdapter, cfg.Workers, logger)
	controller := NewSessionController(syncSvc, replies, utils.NewUUIDGenerator(), logger)

	return &ClientServices{
		SyncService:       syncSvc,
		ReplySource:       replies,
		SessionController: controller,
		SyncJob:           NewClientSyncJob(controller, cfg.Workers.SyncInterval, logger),
	}, nil
}
