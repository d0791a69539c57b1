package http

import (
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/xlevchenko/TwinTalk/internal/logger"
	"github.com/xlevchenko/TwinTalk/internal/service"
)

type Handler struct {
	services *service.Services
	upgrader websocket.Upgrader

	logger *logger.Logger
}

func NewHandler(services *service.Services, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		upgrader: websocket.Upgrader{
			// the backend is a local development tool; any origin may connect
			CheckOrigin: func(*http.Request) bool { return true },
		},
		logger: logger,
	}
}
