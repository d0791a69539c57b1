package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/xlevchenko/TwinTalk/internal/adapter"
	"github.com/xlevchenko/TwinTalk/internal/client"
	"github.com/xlevchenko/TwinTalk/internal/config"
	"github.com/xlevchenko/TwinTalk/internal/logger"
	"github.com/xlevchenko/TwinTalk/internal/service"
	"github.com/xlevchenko/TwinTalk/internal/store"
	"github.com/xlevchenko/TwinTalk/internal/tui"
	"github.com/xlevchenko/TwinTalk/internal/workers"
	"github.com/xlevchenko/TwinTalk/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)

	log := logger.NewClientLogger("twintalk-client")
	cfg, err := config.GetClientConfig(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "error getting configs: %v\n", err)
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Info().Str("build", buildInfo.String()).Any("config", cfg).Msg("received configs")

	sessionAdapter, err := adapter.NewHTTPSessionAdapter(cfg.Adapter, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create session adapter")
	}

	var (
		push       adapter.PushChannel
		pushWorker workers.Worker
	)
	if cfg.App.ReplyMode == config.ReplyModePush {
		conn, err := adapter.NewPushConnection(cfg.Adapter, log)
		if err != nil {
			log.Fatal().Err(err).Msg("create push connection")
		}
		push, pushWorker = conn, conn
	}

	localStorage, err := store.NewClientStorages(cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create local storage")
	}
	defer localStorage.Close()

	services, err := service.NewClientServices(cfg, localStorage, sessionAdapter, push, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create client services")
	}

	ui, err := tui.New(services.SessionController, buildInfo, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating ui")
	}

	app, err := client.NewApp(services, ui, pushWorker, log)
	if err != nil {
		log.Fatal().Err(err).Msg("init client app error")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	if err = app.Run(ctx); err != nil {
		log.Error().Err(err).Msg("client run error")
		fmt.Fprintf(os.Stderr, "twintalk: %v\n", err)
		stop()
		localStorage.Close()
		os.Exit(1)
	}
}
