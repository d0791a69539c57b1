package server

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/xlevchenko/TwinTalk/internal/config"
	myHTTP "github.com/xlevchenko/TwinTalk/internal/handler/http"
	"github.com/xlevchenko/TwinTalk/internal/logger"
)

type server struct {
	httpServer *httpServer
	logger     *logger.Logger

	// ready is closed once the listener is bound
	ready chan struct{}
}

func NewServer(handler *myHTTP.Handler, cfg *config.ServerConfig, logger *logger.Logger) (Server, error) {
	logger.Info().Msg("creating new server...")

	if cfg.HTTPAddress == "" {
		return nil, errNoServersAreCreated
	}

	return &server{
		httpServer: newHTTPServer(handler.Init(), cfg.HTTPAddress, logger),
		logger:     logger,
		ready:      make(chan struct{}),
	}, nil
}

func (s *server) RunServer() {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	if err := s.run(ctx); err != nil {
		s.logger.Error().Err(err).Msg("error running server")
	}
}

func (s *server) Shutdown() {
	s.httpServer.Shutdown()
}

// run serves until ctx is done and then shuts the server down gracefully.
func (s *server) run(ctx context.Context) error {
	if err := s.httpServer.listen(); err != nil {
		return err
	}
	close(s.ready)

	served := make(chan struct{})
	s.logger.Info().Str("address", s.httpServer.addr()).Msg("Launching HTTP server")
	go func() {
		defer close(served)
		s.httpServer.RunServer()
	}()

	select {
	case <-ctx.Done():
		s.Shutdown()
	case <-served:
	}
	<-served

	s.logger.Info().Msg("server Shutdown gracefully")
	return nil
}
