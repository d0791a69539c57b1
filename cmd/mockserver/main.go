package main

import (
	"fmt"
	"os"

	"github.com/xlevchenko/TwinTalk/internal/config"
	"github.com/xlevchenko/TwinTalk/internal/handler/http"
	"github.com/xlevchenko/TwinTalk/internal/logger"
	"github.com/xlevchenko/TwinTalk/internal/server"
	"github.com/xlevchenko/TwinTalk/internal/service"
	"github.com/xlevchenko/TwinTalk/internal/store"
	"github.com/xlevchenko/TwinTalk/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	printBuildInfo(buildInfo)

	log := logger.NewLogger("twintalk-mockserver")
	cfg, err := config.GetServerConfig(os.Args[1:])
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	storages, err := store.NewStorages(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}

	services := service.NewServices(cfg, storages, log)
	defer services.Backend.Close()

	handler := http.NewHandler(services, log)

	srv, err := server.NewServer(handler, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

func printBuildInfo(info models.AppBuildInfo) {
	fmt.Printf("Build version: %s\n", info.BuildVersion())
	fmt.Printf("Build date: %s\n", info.BuildDate())
	fmt.Printf("Build commit: %s\n", info.BuildCommit())
}
